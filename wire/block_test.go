package wire

import (
	"testing"

	"github.com/faircoin2/fc2core/chainhash"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func simpleTx(n byte, coinbase bool) *SimpleTransaction {
	return &SimpleTransaction{
		Version:  1,
		Coinbase: coinbase,
		Message:  []byte{n},
		Value:    int64(n) * 100,
		Script:   []byte{n, n},
		LockTime: 0,
	}
}

func newTestBlock(version VersionFlags, txs []Transaction) *Block {
	return &Block{
		Version:            version,
		Time:               1_700_000_000,
		CreatorID:           1,
		Transactions:       txs,
		ChainMultiSig:       SchnorrSignature{0x01},
		CreatorSignature:    SchnorrSignature{0x02},
		TransactionDecoder:  DecodeSimpleTransaction,
	}
}

// TestBlockRoundTripFromFields builds a block from typed fields, serializes
// it, decodes the result, and checks the decode reproduces the same logical
// content and that re-serializing the decoded block reproduces the exact
// bytes (testable property 1).
func TestBlockRoundTripFromFields(t *testing.T) {
	txs := []Transaction{simpleTx(1, true), simpleTx(2, false), simpleTx(3, false)}
	b := newTestBlock(VersionTxFlag, txs)
	b.MissingSignerIDs = []uint32{5, 2, 9}

	buf := b.Serialize(nil)

	decoded, n, err := DecodeBlock(buf, DecodeSimpleTransaction)
	require.NoError(t, err)
	require.Equal(t, len(buf), n)

	require.Equal(t, len(txs), len(decoded.Transactions))
	require.Equal(t, []uint32{2, 5, 9}, decoded.MissingSignerIDs)

	again := decoded.Serialize(nil)
	require.Equal(t, buf, again)
}

// TestBlockHashCoversHeaderOnly checks testable property 4: BlockHash equals
// doubleSHA256(first 108 bytes of serialize()), held in wire orientation
// (its String form is the reversed display hash).
func TestBlockHashCoversHeaderOnly(t *testing.T) {
	txs := []Transaction{simpleTx(1, true)}
	b := newTestBlock(VersionTxFlag, txs)

	buf := b.Serialize(nil)
	require.GreaterOrEqual(t, len(buf), HeaderSize)

	want := chainhash.DoubleHashH(buf[:HeaderSize])
	require.Equal(t, want, b.BlockHash())
}

func TestBlockWithAdminPayload(t *testing.T) {
	txs := []Transaction{simpleTx(1, true)}
	version := VersionTxFlag | VersionChainParametersFlag
	b := newTestBlock(version, txs)
	b.AdminMultiSig = SchnorrSignature{0x03}
	b.AdminIDs = []uint32{1}
	b.DynamicParams = &DynamicChainParameters{
		Version:     1,
		Description: "mainnet defaults",
	}

	buf := b.Serialize(nil)
	decoded, n, err := DecodeBlock(buf, DecodeSimpleTransaction)
	require.NoError(t, err)
	require.Equal(t, len(buf), n)
	require.NotNil(t, decoded.DynamicParams)
	require.Equal(t, "mainnet defaults", decoded.DynamicParams.Description)
	require.Equal(t, []uint32{1}, decoded.AdminIDs)

	again := decoded.Serialize(nil)
	require.Equal(t, buf, again)
}

func TestBlockWithCVNsAndChainAdmins(t *testing.T) {
	txs := []Transaction{simpleTx(1, true)}
	version := VersionTxFlag | VersionCVNFlag | VersionChainAdminsFlag
	b := newTestBlock(version, txs)
	key, err := NewSchnorrPublicKey(make([]byte, 32))
	require.NoError(t, err)
	b.CVNs = []CvnInfo{{NodeID: 1, HeightAdded: 10, PubKey: key}}
	b.ChainAdmins = []ChainAdmin{{AdminID: 2, HeightAdded: 20, PubKey: key}}

	buf := b.Serialize(nil)
	decoded, _, err := DecodeBlock(buf, DecodeSimpleTransaction)
	require.NoError(t, err)
	require.Equal(t, 1, len(decoded.CVNs))
	require.Equal(t, uint32(1), decoded.CVNs[0].NodeID)
	require.Equal(t, 1, len(decoded.ChainAdmins))
	require.Equal(t, uint32(2), decoded.ChainAdmins[0].AdminID)
}

// TestBlockSerializeVerbatimWhenUnmutated covers testable property 8: if no
// field is mutated after parse, serialize returns the retained buffer
// verbatim (same backing content, byte for byte).
func TestBlockSerializeVerbatimWhenUnmutated(t *testing.T) {
	txs := []Transaction{simpleTx(1, true), simpleTx(2, false)}
	b := newTestBlock(VersionTxFlag, txs)
	buf := b.Serialize(nil)

	decoded, _, err := DecodeBlock(buf, DecodeSimpleTransaction)
	require.NoError(t, err)

	require.Equal(t, buf, decoded.Serialize(nil))
}

// TestBlockMutationProducesNewBytes covers the other half of testable
// property 8.
func TestBlockMutationProducesNewBytes(t *testing.T) {
	txs := []Transaction{simpleTx(1, true), simpleTx(2, false)}
	b := newTestBlock(VersionTxFlag, txs)
	buf := b.Serialize(nil)

	decoded, _, err := DecodeBlock(buf, DecodeSimpleTransaction)
	require.NoError(t, err)

	decoded.SetCreatorID(decoded.CreatorID + 1)
	require.NotEqual(t, buf, decoded.Serialize(nil))
}

func TestBlockRoundTripProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 6).Draw(t, "n")
		txs := make([]Transaction, n)
		txs[0] = simpleTx(0, true)
		for i := 1; i < n; i++ {
			txs[i] = simpleTx(byte(i), false)
		}
		b := newTestBlock(VersionTxFlag, txs)

		buf := b.Serialize(nil)
		decoded, consumed, err := DecodeBlock(buf, DecodeSimpleTransaction)
		if err != nil {
			t.Fatalf("decode failed: %v", err)
		}
		if consumed != len(buf) {
			t.Fatalf("consumed %d, want %d", consumed, len(buf))
		}
		again := decoded.Serialize(nil)
		if string(again) != string(buf) {
			t.Fatalf("round trip mismatch")
		}
	})
}

// TestCvnInfoSerializeSizeMatchesSerialize checks the precomputed size helper
// against the actual encoded length, the same relationship
// DynamicChainParameters.serializeSize is tested against.
func TestCvnInfoSerializeSizeMatchesSerialize(t *testing.T) {
	key, err := NewSchnorrPublicKey(make([]byte, 32))
	require.NoError(t, err)
	c := CvnInfo{NodeID: 7, HeightAdded: 42, PubKey: key}
	require.Equal(t, c.serializeSize(), len(c.serialize(nil)))
}

func TestChainAdminSerializeSizeMatchesSerialize(t *testing.T) {
	key, err := NewSchnorrPublicKey(make([]byte, 32))
	require.NoError(t, err)
	a := ChainAdmin{AdminID: 9, HeightAdded: 11, PubKey: key}
	require.Equal(t, a.serializeSize(), len(a.serialize(nil)))
}

// TestIDSetSerializeSizeMatchesEncodeIDSet checks idSetSerializeSize against
// encodeIDSet's actual output length for both empty and populated sets.
func TestIDSetSerializeSizeMatchesEncodeIDSet(t *testing.T) {
	for _, ids := range [][]uint32{nil, {1}, {5, 2, 9, 100, 3}} {
		require.Equal(t, idSetSerializeSize(ids), len(encodeIDSet(nil, ids)))
	}
}
