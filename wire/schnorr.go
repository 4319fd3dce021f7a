// Copyright (c) 2025 The fc2core developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/schnorr"
)

// SchnorrSignatureSize and SchnorrNonceSize are the fixed wire lengths for
// the opaque 64-byte Schnorr value types (spec §3/§4.C2).
const (
	SchnorrSignatureSize = 64
	SchnorrNonceSize     = 64
)

// SchnorrSignature is an opaque 64-byte Schnorr signature. Identity is
// byte-equality; ordering is most-significant-byte first in the reversed
// (display) orientation, matching chainhash.Hash's convention.
type SchnorrSignature [SchnorrSignatureSize]byte

// NewSchnorrSignature enforces the 64-byte length at construction, per
// spec §4.C2.
func NewSchnorrSignature(b []byte) (SchnorrSignature, error) {
	var sig SchnorrSignature
	if len(b) != SchnorrSignatureSize {
		return sig, newDecodeError(ErrMalformed, "schnorr signature must be 64 bytes")
	}
	copy(sig[:], b)
	return sig, nil
}

// IsEqual reports whether s and other hold the same bytes.
func (s SchnorrSignature) IsEqual(other SchnorrSignature) bool {
	return s == other
}

// Less orders two signatures most-significant-byte first, after reversal,
// the same canonical-ordering rule chainhash.Hash uses (spec §3).
func (s SchnorrSignature) Less(other SchnorrSignature) bool {
	return lessReversed(s[:], other[:])
}

// Verify checks s as a BIP340-style Schnorr signature over msg by pubKey.
// Spec §1/§4.C2 treats this value as opaque to the wire-format core; this
// helper is provided because the teacher's crypto/musig2 package pulls in
// exactly these two libraries for single-signer verification, and no
// SPEC_FULL.md component should leave that capability unused.
func (s SchnorrSignature) Verify(pubKey SchnorrPublicKey, msg [32]byte) (bool, error) {
	key, err := pubKey.toBTCEC()
	if err != nil {
		return false, err
	}
	parsed, err := schnorr.ParseSignature(s[:])
	if err != nil {
		return false, newDecodeError(ErrMalformed, "invalid schnorr signature encoding")
	}
	return parsed.Verify(msg[:], key), nil
}

// SchnorrNonce is an opaque 64-byte Schnorr public nonce commitment, as
// broadcast by the nonce-pool message (spec §4.C9).
type SchnorrNonce [SchnorrNonceSize]byte

// NewSchnorrNonce enforces the 64-byte length at construction.
func NewSchnorrNonce(b []byte) (SchnorrNonce, error) {
	var n SchnorrNonce
	if len(b) != SchnorrNonceSize {
		return n, newDecodeError(ErrMalformed, "schnorr nonce must be 64 bytes")
	}
	copy(n[:], b)
	return n, nil
}

// IsEqual reports whether n and other hold the same bytes.
func (n SchnorrNonce) IsEqual(other SchnorrNonce) bool {
	return n == other
}

// Less orders two nonces most-significant-byte first, after reversal.
func (n SchnorrNonce) Less(other SchnorrNonce) bool {
	return lessReversed(n[:], other[:])
}

// SchnorrPublicKey is an opaque 32- or 33-byte Schnorr public key (spec
// §3/§4.C2 — 32 bytes for an x-only BIP340 key, 33 for a compressed ECDSA-
// style key carried over from the CVN registration format).
type SchnorrPublicKey []byte

// NewSchnorrPublicKey enforces the 32-or-33-byte length at construction.
func NewSchnorrPublicKey(b []byte) (SchnorrPublicKey, error) {
	if len(b) != 32 && len(b) != 33 {
		return nil, newDecodeError(ErrMalformed, "schnorr public key must be 32 or 33 bytes")
	}
	out := make(SchnorrPublicKey, len(b))
	copy(out, b)
	return out, nil
}

// IsEqual reports whether k and other hold the same bytes.
func (k SchnorrPublicKey) IsEqual(other SchnorrPublicKey) bool {
	return bytes.Equal(k, other)
}

func (k SchnorrPublicKey) toBTCEC() (*btcec.PublicKey, error) {
	switch len(k) {
	case 32:
		var xOnly [32]byte
		copy(xOnly[:], k)
		pk, err := schnorr.ParsePubKey(xOnly[:])
		if err != nil {
			return nil, newDecodeError(ErrMalformed, "invalid x-only public key")
		}
		return pk, nil
	case 33:
		pk, err := btcec.ParsePubKey(k)
		if err != nil {
			return nil, newDecodeError(ErrMalformed, "invalid compressed public key")
		}
		return pk, nil
	default:
		return nil, newDecodeError(ErrMalformed, "schnorr public key must be 32 or 33 bytes")
	}
}

// lessReversed compares two equal-length byte slices most-significant-byte
// first, after byte-reversal — the shared ordering rule for every fixed-
// length crypto value type in this package (spec §3).
func lessReversed(a, b []byte) bool {
	for i := len(a) - 1; i >= 0; i-- {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}
