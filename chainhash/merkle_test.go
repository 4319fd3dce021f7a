package chainhash

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func leafHash(b byte) Hash {
	var h Hash
	h[0] = b
	return h
}

func TestCalcMerkleRootSingleLeaf(t *testing.T) {
	leaf := leafHash(0x42)
	require.Equal(t, leaf, CalcMerkleRoot([]Hash{leaf}))
}

func TestCalcMerkleRootEmpty(t *testing.T) {
	require.Equal(t, Hash{}, CalcMerkleRoot(nil))
}

func TestCalcMerkleRootOddDuplicatesLast(t *testing.T) {
	a, b, c := leafHash(1), leafHash(2), leafHash(3)
	ab := HashMerkleBranches(a, b)
	cc := HashMerkleBranches(c, c)
	want := HashMerkleBranches(ab, cc)
	require.Equal(t, want, CalcMerkleRoot([]Hash{a, b, c}))
}

func TestCalcMerkleRootDeterministic(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 32).Draw(t, "n")
		ids := make([]Hash, n)
		for i := range ids {
			ids[i] = DoubleHashH([]byte{byte(i)})
		}
		r1 := CalcMerkleRoot(ids)
		r2 := CalcMerkleRoot(ids)
		require.Equal(t, r1, r2)
	})
}
