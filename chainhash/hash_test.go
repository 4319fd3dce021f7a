package chainhash

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashReversedRoundTrip(t *testing.T) {
	var h Hash
	for i := range h {
		h[i] = byte(i)
	}
	r := h.Reversed()
	require.Equal(t, r.Reversed(), h)
	require.False(t, bytes.Equal(h[:], r[:]))
}

func TestHashStringIsReversedHex(t *testing.T) {
	var h Hash
	h[31] = 0xab
	// Display form is the byte-reversed hex, so the last wire byte becomes
	// the leading display byte.
	require.Equal(t, "ab00000000000000000000000000000000000000000000000000000000000000", h.String())
}

func TestNewHashFromStrRoundTrip(t *testing.T) {
	const s = "000000000019d6689c085ae165831e934ff763ae46a2a6c172b3f1b60a8ce26f"
	h, err := NewHashFromStr(s)
	require.NoError(t, err)
	require.Equal(t, s, h.String())
}

func TestDecodeRejectsOversizeString(t *testing.T) {
	var h Hash
	oversize := make([]byte, MaxHashStringSize+1)
	for i := range oversize {
		oversize[i] = 'a'
	}
	err := Decode(&h, string(oversize))
	require.ErrorIs(t, err, ErrHashStrSize)
}

func TestDecodeOddLengthPads(t *testing.T) {
	var h Hash
	err := Decode(&h, "abc")
	require.NoError(t, err)
}

func TestLessOrdersByDisplayMSB(t *testing.T) {
	var a, b Hash
	a[31] = 0x01 // display-leading byte = 0x01
	b[31] = 0x02 // display-leading byte = 0x02
	require.True(t, a.Less(b))
	require.False(t, b.Less(a))
}

func TestDigestTagUsesLastFourBytes(t *testing.T) {
	var h Hash
	// Display-orientation bytes 28..31 are stored bytes 3..0.
	h[3], h[2], h[1], h[0] = 0xde, 0xad, 0xbe, 0xef
	require.Equal(t, uint32(0xdeadbeef), h.DigestTag())
}

func TestIsEqual(t *testing.T) {
	var a, b Hash
	a[0] = 1
	require.False(t, a.IsEqual(&b))
	b[0] = 1
	require.True(t, a.IsEqual(&b))
	var nilA, nilB *Hash
	require.True(t, nilA.IsEqual(nilB))
	require.False(t, nilA.IsEqual(&a))
}

func TestDoubleHashMatchesManualComposition(t *testing.T) {
	data := []byte("faircoin2")
	h1 := DoubleHashB(data)
	h2 := HashB(HashB(data))
	require.Equal(t, h1, h2)

	var want Hash
	copy(want[:], h2)
	require.Equal(t, want, DoubleHashH(data))
}
