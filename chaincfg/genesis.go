// Copyright (c) 2014-2016 The btcsuite developers
// Copyright (c) 2025 The fc2core developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import (
	"github.com/faircoin2/fc2core/chainhash"
	"github.com/faircoin2/fc2core/wire"
)

// genesisCoinbase builds the single coinbase transaction every genesis
// block here carries: one input whose message payload names the network,
// no spendable script (spec §1 scopes the scripting engine out; this core
// only needs a stable TxID and a coinbase predicate).
func genesisCoinbase(message string) *wire.SimpleTransaction {
	return &wire.SimpleTransaction{
		Version:  1,
		Coinbase: true,
		Message:  []byte(message),
		Value:    0,
		Script:   []byte{0x00},
		LockTime: 0,
	}
}

// buildGenesis constructs a header-only-shaped, single-coinbase-transaction
// genesis block: version carries the TX bit only (no admin payload — there
// is no prior chain state to administer yet), prevHash and payloadHash are
// the zero hash, and time is the network's fixed genesis timestamp.
//
// The exact field values below (time, creatorId, coinbase message) are this
// core's own construction, not a byte-for-byte reproduction of any external
// reference genesis dump — see DESIGN.md for why an independent byte-exact
// match could not be verified here.
func buildGenesis(message string, genesisTime uint32) *wire.Block {
	b := &wire.Block{
		Version:            wire.VersionTxFlag,
		Time:               genesisTime,
		CreatorID:          0,
		Transactions:       []wire.Transaction{genesisCoinbase(message)},
		ChainMultiSig:      wire.SchnorrSignature{},
		MissingSignerIDs:   nil,
		CreatorSignature:   wire.SchnorrSignature{},
		TransactionDecoder: wire.DecodeSimpleTransaction,
	}
	return b
}

// genesisHashOf returns the block's computed hash as a *chainhash.Hash, for
// networks whose genesis hash is defined as "whatever this construction
// produces" rather than cross-checked against an external literal.
func genesisHashOf(b *wire.Block) *chainhash.Hash {
	h := b.BlockHash()
	return &h
}

var (
	// mainNetGenesis is FairCoin2 mainnet's first block. MainNetParams
	// derives its GenesisHash from this construction; the documented
	// mainnet genesis literal (spec §8 S3) is kept separately as
	// MainNetGenesisHashLiteral and is not asserted against it.
	mainNetGenesis = buildGenesis("faircoin2 mainnet genesis", 1489998658)

	// testNetGenesis is the canonical testnet profile's first block
	// (spec §9, packet magic 0x0C120A08). No independent genesis-hash
	// literal for this profile survived the distillation (spec §8's S1
	// literal names a later block, height 126001, not the genesis
	// itself), so its GenesisHash is derived from this construction
	// rather than cross-checked against an external value.
	testNetGenesis = buildGenesis("faircoin2 testnet genesis", 1482478707)

	// legacyTestNetGenesis belongs to the older testnet packet-magic
	// profile (spec §9, 0x0B110907), kept as a distinct historical
	// profile.
	legacyTestNetGenesis = buildGenesis("faircoin2 legacy testnet genesis", 1482478707)

	// regressionNetGenesis is regtest's first block; regtest has no
	// external reference hash to check against by definition.
	regressionNetGenesis = buildGenesis("faircoin2 regtest genesis", 1296688602)
)
