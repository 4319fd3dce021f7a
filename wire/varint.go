// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2025 The fc2core developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import "encoding/binary"

// MaxBlockSize is the hard cap on the serialized size of a single block
// message, and the policy cap every oversize check in this package is
// measured against (spec §4.C1).
const MaxBlockSize = 1_000_000

// MaxBlockSigOps is the maximum number of signature operations allowed
// across all transactions in a single block (spec §4.C8).
const MaxBlockSigOps = MaxBlockSize / 50

// varint tag bytes that select the width of the following count, per the
// CompactSize rules in spec §4.C1.
const (
	varIntTag16 = 0xfd
	varIntTag32 = 0xfe
	varIntTag64 = 0xff
)

// VarIntSerializeSize returns the number of bytes it would take to encode
// the passed value as a CompactSize integer.
func VarIntSerializeSize(n uint64) int {
	switch {
	case n < varIntTag16:
		return 1
	case n <= 0xffff:
		return 3
	case n <= 0xffffffff:
		return 5
	default:
		return 9
	}
}

// WriteVarInt writes n to buf using the minimal CompactSize encoding.
func WriteVarInt(buf []byte, n uint64) []byte {
	switch {
	case n < varIntTag16:
		return append(buf, byte(n))
	case n <= 0xffff:
		b := make([]byte, 3)
		b[0] = varIntTag16
		binary.LittleEndian.PutUint16(b[1:], uint16(n))
		return append(buf, b...)
	case n <= 0xffffffff:
		b := make([]byte, 5)
		b[0] = varIntTag32
		binary.LittleEndian.PutUint32(b[1:], uint32(n))
		return append(buf, b...)
	default:
		b := make([]byte, 9)
		b[0] = varIntTag64
		binary.LittleEndian.PutUint64(b[1:], n)
		return append(buf, b...)
	}
}

// ReadVarInt reads a CompactSize-encoded integer from buf, returning the
// value and the number of bytes consumed. Tags are only ever emitted for the
// width they gate (spec §4.C1): a value that fits in a narrower encoding but
// is read through a wider tag is not itself rejected here — canonical-size
// enforcement, where required, is the caller's responsibility.
func ReadVarInt(buf []byte) (uint64, int, error) {
	if len(buf) < 1 {
		return 0, 0, newDecodeError(ErrTruncated, "varint: empty buffer")
	}
	switch buf[0] {
	case varIntTag64:
		if len(buf) < 9 {
			return 0, 0, newDecodeError(ErrTruncated, "varint: need 8 bytes after 0xff tag")
		}
		return binary.LittleEndian.Uint64(buf[1:9]), 9, nil
	case varIntTag32:
		if len(buf) < 5 {
			return 0, 0, newDecodeError(ErrTruncated, "varint: need 4 bytes after 0xfe tag")
		}
		return uint64(binary.LittleEndian.Uint32(buf[1:5])), 5, nil
	case varIntTag16:
		if len(buf) < 3 {
			return 0, 0, newDecodeError(ErrTruncated, "varint: need 2 bytes after 0xfd tag")
		}
		return uint64(binary.LittleEndian.Uint16(buf[1:3])), 3, nil
	default:
		return uint64(buf[0]), 1, nil
	}
}

// ReadVarIntBounded is ReadVarInt plus an oversize check against max before
// the caller allocates anything sized by the result. Spec §4.C1 and the §8
// S5 scenario require this check to happen *before* any large allocation is
// attempted.
func ReadVarIntBounded(buf []byte, max uint64) (uint64, int, error) {
	n, consumed, err := ReadVarInt(buf)
	if err != nil {
		return 0, 0, err
	}
	if n > max {
		return 0, 0, newDecodeError(ErrOversize, "varint exceeds policy cap")
	}
	return n, consumed, nil
}
