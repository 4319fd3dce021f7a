// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2025 The fc2core developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chainhash

// HashMerkleBranches takes two hashes, treated as the left and right tree
// nodes, and returns the hash of their concatenation. Hash is already stored
// in wire orientation, so the two operands are concatenated byte-for-byte
// with no reversal; a Hash's reversed (display) form only matters at
// String()/wire boundaries, never inside the tree itself.
func HashMerkleBranches(left, right Hash) Hash {
	var buf [HashSize * 2]byte
	copy(buf[:HashSize], left[:])
	copy(buf[HashSize:], right[:])
	return DoubleHashH(buf[:])
}

// CalcMerkleRoot builds the full Merkle tree over an ordered sequence of
// leaf ids and returns its root (spec §4.C7 "Full root"). An odd entry at
// the end of any level is paired with itself — the duplication rule that
// the partial-Merkle-tree verifier must specifically guard against (see the
// blockchain package's malleability check).
func CalcMerkleRoot(ids []Hash) Hash {
	if len(ids) == 0 {
		return Hash{}
	}

	level := make([]Hash, len(ids))
	copy(level, ids)

	for len(level) > 1 {
		next := make([]Hash, 0, (len(level)+1)/2)
		for i := 0; i < len(level); i += 2 {
			if i+1 == len(level) {
				next = append(next, HashMerkleBranches(level[i], level[i]))
			} else {
				next = append(next, HashMerkleBranches(level[i], level[i+1]))
			}
		}
		level = next
	}
	return level[0]
}
