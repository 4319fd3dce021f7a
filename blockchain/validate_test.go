package blockchain

import (
	"testing"
	"time"

	"github.com/faircoin2/fc2core/wire"
	"github.com/stretchr/testify/require"
)

func coinbaseTx(height int32, encodeHeight bool) *wire.SimpleTransaction {
	tx := &wire.SimpleTransaction{Version: 1, Coinbase: true, Value: 5000}
	if encodeHeight {
		v := uint32(height)
		var magnitude []byte
		if height == 0 {
			tx.Script = []byte{0x01, 0x00}
			return tx
		}
		for v > 0 {
			magnitude = append(magnitude, byte(v))
			v >>= 8
		}
		script := append([]byte{byte(len(magnitude))}, magnitude...)
		tx.Script = script
	}
	return tx
}

func spendTx(n byte) *wire.SimpleTransaction {
	return &wire.SimpleTransaction{Version: 1, Value: 10, Script: []byte{n}}
}

func buildTestBlock(t *testing.T, txs []wire.Transaction, blockTime uint32) *wire.Block {
	t.Helper()
	b := &wire.Block{
		Version:            wire.VersionTxFlag,
		Time:               blockTime,
		TransactionDecoder: wire.DecodeSimpleTransaction,
	}
	b.SetTransactions(txs)
	return b
}

func TestVerifyHeaderAcceptsCurrentTime(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	b := buildTestBlock(t, []wire.Transaction{coinbaseTx(0, false)}, uint32(now.Unix()))
	require.NoError(t, VerifyHeader(b, now))
}

func TestVerifyHeaderRejectsFarFuture(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	future := uint32(now.Add(3 * time.Hour).Unix())
	b := buildTestBlock(t, []wire.Transaction{coinbaseTx(0, false)}, future)

	err := VerifyHeader(b, now)
	require.Error(t, err)
	var re RuleError
	require.ErrorAs(t, err, &re)
	require.Equal(t, ErrTimestampTooFarInFuture, re.ErrorCode)
}

func TestVerifyTransactionsEmptyBlockRejected(t *testing.T) {
	b := buildTestBlock(t, nil, 0)
	err := VerifyTransactions(b, 0, false)
	require.Error(t, err)
	var re RuleError
	require.ErrorAs(t, err, &re)
	require.Equal(t, ErrEmptyBlock, re.ErrorCode)
}

func TestVerifyTransactionsFirstNotCoinbase(t *testing.T) {
	b := buildTestBlock(t, []wire.Transaction{spendTx(1)}, 0)
	err := VerifyTransactions(b, 0, false)
	require.Error(t, err)
	var re RuleError
	require.ErrorAs(t, err, &re)
	require.Equal(t, ErrFirstNotCoinbase, re.ErrorCode)
}

// TestVerifyTransactionsSwappedCoinbaseRejected covers testable property 5:
// for a block with >=2 transactions, swapping the coinbase with any other
// position yields FirstNotCoinbase (a second coinbase also trips
// MultipleCoinbases, but the first-position check fires first here since
// index 0 is no longer the coinbase).
func TestVerifyTransactionsSwappedCoinbaseRejected(t *testing.T) {
	cb := coinbaseTx(0, false)
	spend := spendTx(1)
	b := buildTestBlock(t, []wire.Transaction{spend, cb}, 0)

	err := VerifyTransactions(b, 0, false)
	require.Error(t, err)
	var re RuleError
	require.ErrorAs(t, err, &re)
	require.Equal(t, ErrFirstNotCoinbase, re.ErrorCode)
}

func TestVerifyTransactionsMultipleCoinbasesRejected(t *testing.T) {
	b := buildTestBlock(t, []wire.Transaction{coinbaseTx(0, false), coinbaseTx(0, false)}, 0)

	err := VerifyTransactions(b, 0, false)
	require.Error(t, err)
	var re RuleError
	require.ErrorAs(t, err, &re)
	require.Equal(t, ErrMultipleCoinbases, re.ErrorCode)
}

// TestVerifyTransactionsMerkleMismatchRejected decodes a block whose wire
// bytes carry a merkleRoot that doesn't match its transactions (the cached
// root DecodeBlock trusts from the header), and checks VerifyTransactions
// catches the divergence on recomputation.
func TestVerifyTransactionsMerkleMismatchRejected(t *testing.T) {
	txs := []wire.Transaction{coinbaseTx(0, false), spendTx(1)}
	b := buildTestBlock(t, txs, 0)
	buf := b.Serialize(nil)

	// The merkleRoot field sits right after the 4-byte version and the
	// 32-byte prevHash.
	for i := 0; i < 32; i++ {
		buf[4+32+i] ^= 0xff
	}

	decoded, _, err := wire.DecodeBlock(buf, wire.DecodeSimpleTransaction)
	require.NoError(t, err)

	err = VerifyTransactions(decoded, 0, false)
	require.Error(t, err)
	var re RuleError
	require.ErrorAs(t, err, &re)
	require.Equal(t, ErrMerkleMismatch, re.ErrorCode)
}

func TestVerifyTransactionsBadCoinbaseHeightRejected(t *testing.T) {
	b := buildTestBlock(t, []wire.Transaction{coinbaseTx(0, false), spendTx(1)}, 0)
	err := VerifyTransactions(b, 100, true)
	require.Error(t, err)
	var re RuleError
	require.ErrorAs(t, err, &re)
	require.Equal(t, ErrBadCoinbaseHeight, re.ErrorCode)
}

func TestVerifyTransactionsGoodCoinbaseHeightAccepted(t *testing.T) {
	b := buildTestBlock(t, []wire.Transaction{coinbaseTx(100, true), spendTx(1)}, 0)
	require.NoError(t, VerifyTransactions(b, 100, true))
}

func TestVerifierSkipsAlreadyVerified(t *testing.T) {
	v := NewVerifier()
	now := time.Unix(1_700_000_000, 0)
	b := buildTestBlock(t, []wire.Transaction{coinbaseTx(0, false)}, uint32(now.Unix()))

	require.NoError(t, v.Verify(b, 0, now, false))
	require.NoError(t, v.Verify(b, 0, now, false))
}
