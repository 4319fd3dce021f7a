// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2025 The fc2core developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package chainhash implements the fixed-length hash type used throughout
// the block engine and consensus verifier: a 32-byte double-SHA-256 digest
// that is stored internally in wire (little-endian) orientation but
// displayed and digested in reversed (big-endian, display) orientation.
package chainhash

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// HashSize is the number of bytes in a hash.
const HashSize = 32

// MaxHashStringSize is the maximum length of a Hash hash string.
const MaxHashStringSize = HashSize * 2

// ErrHashStrSize describes an error that indicates the caller specified a
// hash string that does not have the right number of characters.
var ErrHashStrSize = fmt.Errorf("max hash string length is %v bytes", MaxHashStringSize)

// Hash is a 32-byte array used to represent the double sha256 of data used
// throughout the block engine. It is stored in the same orientation the
// bytes are read off the wire; callers that need the conventional
// big-endian display form must go through Reversed/String.
type Hash [HashSize]byte

// String returns the Hash as the hexadecimal string of the byte-reversed
// hash, matching the convention every block explorer displays hashes in.
func (h Hash) String() string {
	r := h.Reversed()
	return hex.EncodeToString(r[:])
}

// CloneBytes returns a copy of the bytes which represent the hash as a byte
// slice.
func (h *Hash) CloneBytes() []byte {
	newHash := make([]byte, HashSize)
	copy(newHash, h[:])
	return newHash
}

// SetBytes sets the bytes which represent the hash. An error is returned if
// the number of bytes passed in is not HashSize.
func (h *Hash) SetBytes(newHash []byte) error {
	nhlen := len(newHash)
	if nhlen != HashSize {
		return fmt.Errorf("invalid hash length of %v, want %v", nhlen, HashSize)
	}
	copy(h[:], newHash)
	return nil
}

// IsEqual returns true if target is the same hash as h.
func (h *Hash) IsEqual(target *Hash) bool {
	if h == nil && target == nil {
		return true
	}
	if h == nil || target == nil {
		return false
	}
	return *h == *target
}

// Reversed returns a copy of the hash with the byte order reversed. On-wire
// hashes are little-endian; the reversed form is the conventional
// big-endian display/comparison orientation (spec §3).
func (h Hash) Reversed() Hash {
	var r Hash
	for i, b := range h[:] {
		r[HashSize-1-i] = b
	}
	return r
}

// Less reports whether h sorts before other, comparing most-significant byte
// first in the reversed (display) orientation, per spec §3/§4.C2.
func (h Hash) Less(other Hash) bool {
	hr := h.Reversed()
	or := other.Reversed()
	for i := 0; i < HashSize; i++ {
		if hr[i] != or[i] {
			return hr[i] < or[i]
		}
	}
	return false
}

// DigestTag returns a 32-bit summary of the hash suitable for use as a map
// key or hash-table bucket selector. It uses the *last* four bytes of the
// reversed (display) orientation rather than the first, since leading
// display bytes of a proof-of-work-style hash trend toward zero (spec §4.C2).
func (h Hash) DigestTag() uint32 {
	r := h.Reversed()
	return uint32(r[HashSize-4])<<24 | uint32(r[HashSize-3])<<16 |
		uint32(r[HashSize-2])<<8 | uint32(r[HashSize-1])
}

// NewHash returns a new Hash from a byte slice. An error is returned if the
// number of bytes passed in is not HashSize.
func NewHash(newHash []byte) (*Hash, error) {
	var sh Hash
	err := sh.SetBytes(newHash)
	if err != nil {
		return nil, err
	}
	return &sh, nil
}

// NewHashFromStr creates a Hash from a hash string. The string should be
// the hexadecimal string of a byte-reversed hash, but any missing
// characters result in zero padding at the end of the hash.
func NewHashFromStr(hash string) (*Hash, error) {
	ret := new(Hash)
	err := Decode(ret, hash)
	if err != nil {
		return nil, err
	}
	return ret, nil
}

// Decode decodes the byte-reversed hexadecimal string encoding of a Hash to
// a destination.
func Decode(dst *Hash, src string) error {
	// Return error if hash string is too long.
	if len(src) > MaxHashStringSize {
		return ErrHashStrSize
	}

	// Hex decoder expects the hash to be a multiple of two. When not, pad
	// with a leading zero.
	var srcBytes []byte
	if len(src)%2 == 0 {
		srcBytes = []byte(src)
	} else {
		srcBytes = make([]byte, 1+len(src))
		srcBytes[0] = '0'
		copy(srcBytes[1:], src)
	}

	// Hex decode the source bytes to a temporary destination.
	var reversedHash Hash
	_, err := hex.Decode(reversedHash[HashSize-hex.DecodedLen(len(srcBytes)):], srcBytes)
	if err != nil {
		return err
	}

	// Reverse copy from the temporary hash to destination, so it is stored
	// in wire (little-endian) orientation.
	*dst = reversedHash.Reversed()
	return nil
}

// HashB calculates the hash of the given byte slice.
func HashB(b []byte) []byte {
	sum := sha256.Sum256(b)
	return sum[:]
}

// DoubleHashB calculates the double sha256 hash of the given byte slice.
func DoubleHashB(b []byte) []byte {
	first := sha256.Sum256(b)
	second := sha256.Sum256(first[:])
	return second[:]
}

// DoubleHashH calculates the double sha256 hash of the given byte slice and
// returns it as a Hash.
func DoubleHashH(b []byte) Hash {
	first := sha256.Sum256(b)
	second := sha256.Sum256(first[:])
	return Hash(second)
}
