package main

import (
	"path/filepath"
	"testing"

	"github.com/faircoin2/fc2core/chaincfg"
	"github.com/faircoin2/fc2core/wire"
	"github.com/stretchr/testify/require"
)

func TestNetworkParamsResolvesKnownNames(t *testing.T) {
	cases := map[string]*chaincfg.Params{
		"mainnet":       &chaincfg.MainNetParams,
		"testnet":       &chaincfg.TestNetParams,
		"legacytestnet": &chaincfg.LegacyTestNetParams,
		"regtest":       &chaincfg.RegressionNetParams,
	}
	for name, want := range cases {
		got, err := networkParams(name)
		require.NoError(t, err)
		require.Same(t, want, got)
	}
}

func TestNetworkParamsRejectsUnknownName(t *testing.T) {
	_, err := networkParams("not-a-real-network")
	require.Error(t, err)
}

func TestUsageErrorMessage(t *testing.T) {
	err := usageError("something went wrong")
	require.EqualError(t, err, "fc2verify: something went wrong")
}

func testSimpleTx(n byte, coinbase bool) *wire.SimpleTransaction {
	return &wire.SimpleTransaction{
		Version:  1,
		Coinbase: coinbase,
		Message:  []byte{n},
		Value:    int64(n) * 100,
		Script:   []byte{n, n},
		LockTime: 0,
	}
}

func testBlock() *wire.Block {
	return &wire.Block{
		Version:            wire.VersionTxFlag,
		Time:               1_700_000_000,
		CreatorID:          1,
		Transactions:       []wire.Transaction{testSimpleTx(1, true), testSimpleTx(2, false)},
		ChainMultiSig:      wire.SchnorrSignature{0x01},
		CreatorSignature:   wire.SchnorrSignature{0x02},
		TransactionDecoder: wire.DecodeSimpleTransaction,
	}
}

// TestDumpMerkleTreeDoesNotPanic exercises the diagnostic path behind
// -dumpmerkletree end to end, including the logging backend, against both a
// multi-transaction block and a single-transaction (coinbase-only) one.
func TestDumpMerkleTreeDoesNotPanic(t *testing.T) {
	initLogRotator(filepath.Join(t.TempDir(), "fc2verify.log"))
	defer logRotator.Close()
	setLogLevels("debug")

	require.NotPanics(t, func() { dumpMerkleTree(testBlock()) })

	single := testBlock()
	single.Transactions = single.Transactions[:1]
	require.NotPanics(t, func() { dumpMerkleTree(single) })
}
