// Copyright (c) 2025 The fc2core developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"github.com/faircoin2/fc2core/chainhash"
)

// Transaction is the C5 boundary: this core only needs byte-exact parse/
// serialize, a stable id, a sigop count, and a coinbase predicate from a
// transaction. The actual scripting/signature/UTXO engine is explicitly out
// of scope (spec §1) and delegated to an external collaborator; this
// interface is all the block codec and verifier ever touch.
type Transaction interface {
	// TxID returns the transaction's identifying hash.
	TxID() chainhash.Hash

	// SerializeSize returns the number of bytes Serialize would write.
	SerializeSize() int

	// Serialize appends the transaction's wire encoding to dst and
	// returns the extended slice.
	Serialize(dst []byte) []byte

	// SigOpCount returns the number of signature operations this
	// transaction contributes toward the block-level sigop cap
	// (spec §4.C8).
	SigOpCount() int

	// IsCoinbase reports whether this transaction is the block-reward-
	// creating coinbase transaction (spec §4.C8 rule 3).
	IsCoinbase() bool
}

// TransactionDecoder parses a single Transaction starting at the front of
// buf, returning the parsed value and the number of bytes consumed. The
// block codec calls this once per declared transaction count (spec §4.C6
// step 1); a concrete wire format is supplied by the caller via
// DecodeTransactions's decoder argument since C5 is delegated.
type TransactionDecoder func(buf []byte) (Transaction, int, error)

// DecodeTransactions reads n back-to-back transactions from buf using
// decode, honoring the oversize-before-allocate discipline of spec §4.C1:
// the transaction count itself must already have been bounds-checked by the
// caller (via ReadVarIntBounded) before n is passed in here.
func DecodeTransactions(buf []byte, n uint64, decode TransactionDecoder) ([]Transaction, int, error) {
	txs := make([]Transaction, 0, minInt(int(n), 4096))
	total := 0
	for i := uint64(0); i < n; i++ {
		tx, consumed, err := decode(buf[total:])
		if err != nil {
			return nil, 0, err
		}
		txs = append(txs, tx)
		total += consumed
	}
	return txs, total, nil
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// SimpleTransaction is a minimal reference Transaction implementation used
// as a test fixture for block parsing and the merkle engine (spec §1 scopes
// the real scripting engine out; this only needs to exercise the shape a
// real transaction has). It mirrors the shape of the teacher's literal
// genesis coinbase transaction (chaincfg/genesis.go): one input carrying an
// arbitrary "message" payload, one output.
type SimpleTransaction struct {
	Version  uint32
	Coinbase bool
	Message  []byte
	Value    int64
	Script   []byte
	LockTime uint32
}

// TxID implements Transaction.
func (t *SimpleTransaction) TxID() chainhash.Hash {
	return chainhash.DoubleHashH(t.Serialize(nil))
}

// SerializeSize implements Transaction.
func (t *SimpleTransaction) SerializeSize() int {
	return len(t.Serialize(nil))
}

// Serialize implements Transaction. The format is intentionally simple
// (version, coinbase flag, length-prefixed message, value, length-prefixed
// script, locktime) since this type exists only to exercise the block codec
// and merkle engine, not to be a consensus transaction format.
func (t *SimpleTransaction) Serialize(dst []byte) []byte {
	dst = putUint32LE(dst, t.Version)
	if t.Coinbase {
		dst = append(dst, 1)
	} else {
		dst = append(dst, 0)
	}
	dst = WriteVarInt(dst, uint64(len(t.Message)))
	dst = append(dst, t.Message...)
	dst = putUint64LE(dst, uint64(t.Value))
	dst = WriteVarInt(dst, uint64(len(t.Script)))
	dst = append(dst, t.Script...)
	dst = putUint32LE(dst, t.LockTime)
	return dst
}

// SigOpCount implements Transaction. SimpleTransaction carries no script
// interpreter, so it reports a fixed single sigop per non-coinbase input,
// matching the conservative legacy (non-P2SH) sigop-counting convention.
func (t *SimpleTransaction) SigOpCount() int {
	if t.Coinbase {
		return 0
	}
	return 1
}

// IsCoinbase implements Transaction.
func (t *SimpleTransaction) IsCoinbase() bool {
	return t.Coinbase
}

// EncodesHeight reports whether the coinbase's script begins with height
// encoded as a BIP-34 minimally-sized little-endian push: a one-byte length
// followed by that many little-endian magnitude bytes. The block verifier
// uses this (via the optional CoinbaseHeightProver interface) to enforce
// spec §4.C8 rule 4 when the height-in-coinbase rule is active.
func (t *SimpleTransaction) EncodesHeight(height int32) bool {
	want := bip34HeightScript(height)
	if len(t.Script) < len(want) {
		return false
	}
	for i, b := range want {
		if t.Script[i] != b {
			return false
		}
	}
	return true
}

// bip34HeightScript returns the minimal little-endian encoding of height
// prefixed by its own length, the BIP-34 coinbase height-push convention.
func bip34HeightScript(height int32) []byte {
	if height == 0 {
		return []byte{0x01, 0x00}
	}
	v := uint32(height)
	var magnitude []byte
	for v > 0 {
		magnitude = append(magnitude, byte(v))
		v >>= 8
	}
	if len(magnitude) > 0 && magnitude[len(magnitude)-1]&0x80 != 0 {
		magnitude = append(magnitude, 0x00)
	}
	out := make([]byte, 0, len(magnitude)+1)
	out = append(out, byte(len(magnitude)))
	out = append(out, magnitude...)
	return out
}

// DecodeSimpleTransaction parses a SimpleTransaction from buf. It is the
// TransactionDecoder used by this core's own tests.
func DecodeSimpleTransaction(buf []byte) (Transaction, int, error) {
	total := 0

	version, n, err := readUint32LE(buf[total:])
	if err != nil {
		return nil, 0, err
	}
	total += n

	coinbaseFlag, n, err := readFixed(buf[total:], 1)
	if err != nil {
		return nil, 0, err
	}
	total += n

	msgLen, n, err := ReadVarIntBounded(buf[total:], MaxBlockSize)
	if err != nil {
		return nil, 0, err
	}
	total += n
	message, n, err := readFixed(buf[total:], int(msgLen))
	if err != nil {
		return nil, 0, err
	}
	total += n

	value, n, err := readInt64LE(buf[total:])
	if err != nil {
		return nil, 0, err
	}
	total += n

	scriptLen, n, err := ReadVarIntBounded(buf[total:], MaxBlockSize)
	if err != nil {
		return nil, 0, err
	}
	total += n
	script, n, err := readFixed(buf[total:], int(scriptLen))
	if err != nil {
		return nil, 0, err
	}
	total += n

	lockTime, n, err := readUint32LE(buf[total:])
	if err != nil {
		return nil, 0, err
	}
	total += n

	return &SimpleTransaction{
		Version:  version,
		Coinbase: coinbaseFlag[0] != 0,
		Message:  message,
		Value:    value,
		Script:   script,
		LockTime: lockTime,
	}, total, nil
}
