// Copyright (c) 2025 The fc2core developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Command fc2verify loads a single serialized block from disk, decodes it,
// and runs it through the consensus verifier for a chosen network,
// reporting the block's hash, timestamp, and verification result.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/faircoin2/fc2core/blockchain"
	"github.com/faircoin2/fc2core/chaincfg"
	"github.com/faircoin2/fc2core/chainhash"
	"github.com/faircoin2/fc2core/wire"
)

func networkParams(name string) (*chaincfg.Params, error) {
	switch name {
	case "mainnet":
		return &chaincfg.MainNetParams, nil
	case "testnet":
		return &chaincfg.TestNetParams, nil
	case "legacytestnet":
		return &chaincfg.LegacyTestNetParams, nil
	case "regtest":
		return &chaincfg.RegressionNetParams, nil
	default:
		return nil, usageError("unknown network: " + name)
	}
}

func realMain() error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}

	initLogRotator(logFilePath(cfg))
	setLogLevels(cfg.Debug)
	defer logRotator.Close()

	params, err := networkParams(cfg.Network)
	if err != nil {
		return err
	}

	buf, err := os.ReadFile(cfg.BlockFile)
	if err != nil {
		return fmt.Errorf("fc2verify: reading block file: %w", err)
	}

	block, consumed, err := wire.DecodeBlock(buf, wire.DecodeSimpleTransaction)
	if err != nil {
		return fmt.Errorf("fc2verify: decoding block: %w", err)
	}
	if consumed != len(buf) {
		log.Warnf("block file has %d trailing bytes after the block", len(buf)-consumed)
	}

	hash := block.BlockHash()
	blockTime := time.Unix(int64(block.Time), 0).UTC()
	log.Infof("network=%s hash=%s time=%s", params.ID, hash, blockTime.Format(time.RFC3339))

	if cfg.DumpMerkleTree {
		dumpMerkleTree(block)
	}

	verifier := blockchain.NewVerifier()
	heightInCoinbase := blockchain.HeightInCoinbaseFlag(cfg.HeightInCoinbase)
	if err := verifier.Verify(block, cfg.Height, time.Now(), heightInCoinbase); err != nil {
		log.Errorf("verification failed: %v", err)
		return err
	}

	log.Info("verification succeeded")
	return nil
}

// dumpMerkleTree logs every level of b's full Merkle tree, from the leaves
// up to the root, as a diagnostic aid for inspecting how a declared Merkle
// root was derived. It cross-checks the root it computes against
// block.MerkleRoot() purely as a sanity log line; verification itself
// (rule 5 of VerifyTransactions) does its own independent check.
func dumpMerkleTree(block *wire.Block) {
	ids := make([]chainhash.Hash, len(block.Transactions))
	for i, tx := range block.Transactions {
		ids[i] = tx.TxID()
	}

	store := blockchain.MerkleTreeStore(ids)
	if len(store) == 0 {
		log.Warn("merkle tree dump: block has no transactions")
		return
	}

	log.Debugf("merkle tree dump: %d leaves, %d total nodes", len(ids), len(store))
	for i, h := range store {
		if h == nil {
			continue
		}
		log.Debugf("  node[%d] = %s", i, h)
	}

	root := store[len(store)-1]
	if root != nil && *root != block.MerkleRoot() {
		log.Warnf("merkle tree dump root %s does not match recorded merkle root %s", root, block.MerkleRoot())
	}
}

func main() {
	if err := realMain(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
