package wire

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestVarIntRoundTripFixed(t *testing.T) {
	cases := []uint64{0, 1, 0xfc, 0xfd, 0xffff, 0x10000, 0xffffffff, 0x100000000, ^uint64(0)}
	for _, n := range cases {
		buf := WriteVarInt(nil, n)
		require.Equal(t, VarIntSerializeSize(n), len(buf))
		got, consumed, err := ReadVarInt(buf)
		require.NoError(t, err)
		require.Equal(t, len(buf), consumed)
		require.Equal(t, n, got)
	}
}

func TestVarIntRoundTripProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.Uint64().Draw(rt, "n")
		buf := WriteVarInt(nil, n)
		got, consumed, err := ReadVarInt(buf)
		if err != nil {
			rt.Fatalf("unexpected decode error: %v", err)
		}
		if consumed != len(buf) || got != n {
			rt.Fatalf("round trip mismatch: n=%d got=%d consumed=%d len=%d", n, got, consumed, len(buf))
		}
	})
}

func TestReadVarIntTruncated(t *testing.T) {
	_, _, err := ReadVarInt([]byte{varIntTag64, 1, 2, 3})
	require.Error(t, err)
	var de *DecodeError
	require.ErrorAs(t, err, &de)
	require.Equal(t, ErrTruncated, de.Kind)
}

func TestReadVarIntBoundedRejectsHugeCountBeforeAllocating(t *testing.T) {
	// 0x7FFFFFFF encoded via the 0xfe (u32) tag, as in spec §8 S5.
	buf := WriteVarInt(nil, 0x7FFFFFFF)
	_, _, err := ReadVarIntBounded(buf, MaxBlockSize/60)
	require.Error(t, err)
	var de *DecodeError
	require.ErrorAs(t, err, &de)
	require.Equal(t, ErrOversize, de.Kind)
}
