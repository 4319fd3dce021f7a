package blockchain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMerkleTreeStoreEmpty(t *testing.T) {
	require.Nil(t, MerkleTreeStore(nil))
}

func TestMerkleTreeStoreSingleLeafRootIsLeaf(t *testing.T) {
	ids := idsN(1)
	store := MerkleTreeStore(ids)
	require.Len(t, store, 1)
	require.Equal(t, ids[0], *store[0])
}

// TestMerkleTreeStoreRootMatchesOddLeafDuplicationRoot checks the array's
// final entry (the root) against chainhash.CalcMerkleRoot for leaf counts
// that are a power of two, where no level has a nil padding slot.
func TestMerkleTreeStoreRootMatchesOddLeafDuplicationRoot(t *testing.T) {
	for _, n := range []int{1, 2, 4, 8, 16} {
		ids := idsN(n)
		store := MerkleTreeStore(ids)
		require.NotEmpty(t, store)

		root := store[len(store)-1]
		require.NotNil(t, root)
		require.Equal(t, CalcMerkleRoot(ids), *root,
			"power-of-two leaf count %d should produce identical roots", n)
	}
}

func TestMerkleTreeStoreSizeIsLinearArrayBound(t *testing.T) {
	for _, n := range []int{1, 2, 3, 5, 8, 13} {
		store := MerkleTreeStore(idsN(n))
		nextPoT := nextPowerOfTwo(n)
		require.Len(t, store, nextPoT*2-1)
	}
}

func TestMerkleTreeStoreLeavesMatchInput(t *testing.T) {
	ids := idsN(5)
	store := MerkleTreeStore(ids)
	for i, id := range ids {
		require.NotNil(t, store[i])
		require.Equal(t, id, *store[i])
	}
	// padding past len(ids) up to nextPowerOfTwo is nil.
	nextPoT := nextPowerOfTwo(len(ids))
	for i := len(ids); i < nextPoT; i++ {
		require.Nil(t, store[i])
	}
}

func TestNextPowerOfTwo(t *testing.T) {
	cases := map[int]int{1: 1, 2: 2, 3: 4, 4: 4, 5: 8, 9: 16, 16: 16, 17: 32}
	for n, want := range cases {
		require.Equal(t, want, nextPowerOfTwo(n), "n=%d", n)
	}
}
