// Copyright (c) 2025 The fc2core developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"github.com/faircoin2/fc2core/chainhash"
)

// NoncePoolMessage is the nonce-pool broadcast (spec §4.C9): cvnId(u32) ||
// hashRootBlock(32) || creationTime(u32) || varint n || n x
// SchnorrNonce(64) || msgSig(64).
type NoncePoolMessage struct {
	CvnID         uint32
	HashRootBlock chainhash.Hash
	CreationTime  uint32
	Nonces        []SchnorrNonce
	MsgSig        SchnorrSignature
}

// Command implements Message.
func (m *NoncePoolMessage) Command() string { return "noncepool" }

// SerializeSize implements Message.
func (m *NoncePoolMessage) SerializeSize() int {
	return 4 + chainhash.HashSize + 4 +
		VarIntSerializeSize(uint64(len(m.Nonces))) + SchnorrNonceSize*len(m.Nonces) +
		SchnorrSignatureSize
}

// Serialize implements Message.
func (m *NoncePoolMessage) Serialize(dst []byte) []byte {
	dst = putUint32LE(dst, m.CvnID)
	dst = writeHash(dst, m.HashRootBlock)
	dst = putUint32LE(dst, m.CreationTime)
	dst = WriteVarInt(dst, uint64(len(m.Nonces)))
	for _, n := range m.Nonces {
		dst = append(dst, n[:]...)
	}
	dst = append(dst, m.MsgSig[:]...)
	return dst
}

// DecodeNoncePoolMessage parses a NoncePoolMessage from payload bytes (the
// message's payload, with the envelope already stripped).
func DecodeNoncePoolMessage(payload []byte) (Message, error) {
	total := 0

	cvnID, n, err := readUint32LE(payload[total:])
	if err != nil {
		return nil, err
	}
	total += n

	hashRoot, n, err := readHash(payload[total:])
	if err != nil {
		return nil, err
	}
	total += n

	creationTime, n, err := readUint32LE(payload[total:])
	if err != nil {
		return nil, err
	}
	total += n

	count, n, err := ReadVarIntBounded(payload[total:], MaxBlockSize/SchnorrNonceSize)
	if err != nil {
		return nil, err
	}
	total += n

	nonces := make([]SchnorrNonce, 0, count)
	for i := uint64(0); i < count; i++ {
		raw, n, err := readFixed(payload[total:], SchnorrNonceSize)
		if err != nil {
			return nil, err
		}
		nonce, err := NewSchnorrNonce(raw)
		if err != nil {
			return nil, err
		}
		nonces = append(nonces, nonce)
		total += n
	}

	sigBytes, n, err := readFixed(payload[total:], SchnorrSignatureSize)
	if err != nil {
		return nil, err
	}
	sig, err := NewSchnorrSignature(sigBytes)
	if err != nil {
		return nil, err
	}
	total += n

	return &NoncePoolMessage{
		CvnID:         cvnID,
		HashRootBlock: hashRoot,
		CreationTime:  creationTime,
		Nonces:        nonces,
		MsgSig:        sig,
	}, nil
}

// AddNonce appends a nonce to the pool. Observable contract (spec §4.C9):
// SerializeSize grows by 64 bytes. The message keeps no serialized byte
// cache of its own; callers that cache a serialized form of this message
// must re-derive it afterward.
func (m *NoncePoolMessage) AddNonce(n SchnorrNonce) {
	m.Nonces = append(m.Nonces, n)
}

// RemoveNonce removes the nonce at index i; SerializeSize shrinks by 64
// bytes (spec §4.C9).
func (m *NoncePoolMessage) RemoveNonce(i int) {
	m.Nonces = append(m.Nonces[:i], m.Nonces[i+1:]...)
}
