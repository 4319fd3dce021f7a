// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2025 The fc2core developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"encoding/binary"

	"github.com/faircoin2/fc2core/chainhash"
)

// readUint32LE reads a little-endian uint32 from the front of buf.
func readUint32LE(buf []byte) (uint32, int, error) {
	if len(buf) < 4 {
		return 0, 0, newDecodeError(ErrTruncated, "need 4 bytes for uint32")
	}
	return binary.LittleEndian.Uint32(buf[:4]), 4, nil
}

// readUint64LE reads a little-endian uint64 from the front of buf.
func readUint64LE(buf []byte) (uint64, int, error) {
	if len(buf) < 8 {
		return 0, 0, newDecodeError(ErrTruncated, "need 8 bytes for uint64")
	}
	return binary.LittleEndian.Uint64(buf[:8]), 8, nil
}

// readInt64LE reads a little-endian int64 from the front of buf.
func readInt64LE(buf []byte) (int64, int, error) {
	u, n, err := readUint64LE(buf)
	return int64(u), n, err
}

func putUint32LE(dst []byte, v uint32) []byte {
	return append(dst, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
}

func putUint64LE(dst []byte, v uint64) []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, v)
	return append(dst, b...)
}

// readHash consumes 32 bytes and reverses them to produce the logical,
// wire-orientation Hash (spec §4.C1: "Hash-on-wire" — stored reversed vs
// display form).
func readHash(buf []byte) (chainhash.Hash, int, error) {
	var h chainhash.Hash
	if len(buf) < chainhash.HashSize {
		return h, 0, newDecodeError(ErrTruncated, "need 32 bytes for hash")
	}
	for i := 0; i < chainhash.HashSize; i++ {
		h[i] = buf[chainhash.HashSize-1-i]
	}
	return h, chainhash.HashSize, nil
}

// writeHash reverses a logical Hash back into wire orientation and appends
// it to dst.
func writeHash(dst []byte, h chainhash.Hash) []byte {
	var reversed chainhash.Hash
	for i := 0; i < chainhash.HashSize; i++ {
		reversed[i] = h[chainhash.HashSize-1-i]
	}
	return append(dst, reversed[:]...)
}

// readFixed consumes exactly n bytes from buf.
func readFixed(buf []byte, n int) ([]byte, int, error) {
	if len(buf) < n {
		return nil, 0, newDecodeError(ErrTruncated, "need more bytes for fixed-length field")
	}
	out := make([]byte, n)
	copy(out, buf[:n])
	return out, n, nil
}
