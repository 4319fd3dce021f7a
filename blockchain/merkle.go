// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2025 The fc2core developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package blockchain implements the Merkle engine (full root and partial
// Merkle tree build/verify) and the block verifier.
package blockchain

import (
	"math"

	"github.com/faircoin2/fc2core/chainhash"
)

// nextPowerOfTwo returns the next highest power of two from a given number if
// it is not already a power of two. Used to size the linear-array
// representation of a Merkle tree.
func nextPowerOfTwo(n int) int {
	if n&(n-1) == 0 {
		return n
	}
	exponent := uint(math.Log2(float64(n))) + 1
	return 1 << exponent
}

// MerkleTreeStore builds the full Merkle tree over ids and returns it as a
// linear array: leaves occupy the first nextPowerOfTwo(len(ids)) slots
// (nil-padded), and each subsequent level is packed contiguously after it,
// ending with the root as the sole entry in the final level. This is the
// same array layout the teacher's BuildMerkleTreeStore uses for
// btcutil.Tx-backed trees, generalized to operate directly on transaction
// ids since this core's Transaction type is an external interface (spec
// §1/C5) with no tree-specific fields of its own.
//
// Unlike the partial Merkle tree builder (which only needs the root and
// sibling hashes along one verification path), callers auditing a block's
// whole tree structure — e.g. a diagnostic dump of every intermediate node —
// need the full array; that is what this function is for.
//
// A nil slot marks a position with no real hash (a padding leaf past the end
// of ids, or an unfilled internal node past the used part of a level); it is
// never read by the odd-leaf-duplication rule because that rule only
// duplicates the rightmost *used* entry of a level.
func MerkleTreeStore(ids []chainhash.Hash) []*chainhash.Hash {
	if len(ids) == 0 {
		return nil
	}

	nextPoT := nextPowerOfTwo(len(ids))
	arraySize := nextPoT*2 - 1
	merkles := make([]*chainhash.Hash, arraySize)

	for i, id := range ids {
		h := id
		merkles[i] = &h
	}

	offset := nextPoT
	for i := 0; i < arraySize-1; i += 2 {
		switch {
		case merkles[i] == nil:
			merkles[offset] = nil
		case merkles[i+1] == nil:
			newHash := chainhash.HashMerkleBranches(*merkles[i], *merkles[i])
			merkles[offset] = &newHash
		default:
			newHash := chainhash.HashMerkleBranches(*merkles[i], *merkles[i+1])
			merkles[offset] = &newHash
		}
		offset++
	}

	return merkles
}

// CalcMerkleRoot computes the Merkle root over an ordered sequence of
// transaction ids (spec §4.C7 "Full root"). It delegates the pairwise
// hashing algorithm to chainhash.CalcMerkleRoot; this wrapper exists so
// callers needing only the root (the block verifier's rule 5, spec §4.C8)
// don't need MerkleTreeStore's full linear-array representation.
func CalcMerkleRoot(ids []chainhash.Hash) chainhash.Hash {
	return chainhash.CalcMerkleRoot(ids)
}
