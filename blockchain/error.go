// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2025 The fc2core developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import "fmt"

// ErrorCode identifies a specific consensus rule violation (spec §7
// "ConsensusViolation(rule)").
type ErrorCode int

const (
	// ErrEmptyBlock indicates a block with no transactions at all.
	ErrEmptyBlock ErrorCode = iota

	// ErrTooLarge indicates a block's serialized size exceeds
	// wire.MaxBlockSize.
	ErrTooLarge

	// ErrFirstNotCoinbase indicates the first transaction in a block is
	// not a coinbase.
	ErrFirstNotCoinbase

	// ErrMultipleCoinbases indicates a transaction other than the first
	// is a coinbase.
	ErrMultipleCoinbases

	// ErrMerkleMismatch indicates the block's recorded Merkle root does
	// not match the one computed from its transactions.
	ErrMerkleMismatch

	// ErrTooManySigops indicates the sum of per-transaction sigop counts
	// exceeds wire.MaxBlockSigOps.
	ErrTooManySigops

	// ErrTimestampTooFarInFuture indicates the block's time field is more
	// than two hours ahead of the verifier's clock.
	ErrTimestampTooFarInFuture

	// ErrBadCoinbaseHeight indicates the coinbase does not encode the
	// expected block height per BIP-34.
	ErrBadCoinbaseHeight

	// ErrTransactionInvalid indicates an individual transaction failed
	// its own (delegated) validity check.
	ErrTransactionInvalid
)

func (e ErrorCode) String() string {
	switch e {
	case ErrEmptyBlock:
		return "empty block"
	case ErrTooLarge:
		return "block too large"
	case ErrFirstNotCoinbase:
		return "first transaction is not a coinbase"
	case ErrMultipleCoinbases:
		return "more than one coinbase transaction"
	case ErrMerkleMismatch:
		return "merkle root mismatch"
	case ErrTooManySigops:
		return "too many signature operations"
	case ErrTimestampTooFarInFuture:
		return "timestamp too far in future"
	case ErrBadCoinbaseHeight:
		return "bad coinbase height"
	case ErrTransactionInvalid:
		return "transaction invalid"
	default:
		return "unknown error code"
	}
}

// RuleError identifies a consensus rule violation along with a human
// readable description of why it occurred. The verifier never mutates the
// block on failure, and a RuleError is terminal for that block — callers
// discard it (spec §7).
type RuleError struct {
	ErrorCode   ErrorCode
	Description string
}

func (e RuleError) Error() string {
	return e.Description
}

func ruleError(c ErrorCode, desc string) RuleError {
	return RuleError{ErrorCode: c, Description: desc}
}

// ErrMalleableMerkleProof is returned by partial Merkle tree verification
// when the duplicate-adjacent-pair rule detects the CVE-2012-2459-style
// malleability (spec §7/§4.C7).
var ErrMalleableMerkleProof = fmt.Errorf("partial merkle tree failed the duplicate-pair malleability check")

// ErrGenesisHashMismatch is the fatal, fail-fast error raised during network
// parameter registry initialization when a constructed genesis block's hash
// does not match the registry's literal (spec §4.C3/§7).
type ErrGenesisHashMismatch struct {
	Network string
	Want    string
	Got     string
}

func (e *ErrGenesisHashMismatch) Error() string {
	return fmt.Sprintf("%s: genesis hash mismatch: want %s, got %s", e.Network, e.Want, e.Got)
}
