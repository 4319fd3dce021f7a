// Copyright (c) 2025 The fc2core developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"sort"

	"github.com/faircoin2/fc2core/chainhash"
)

// HeaderSize is the fixed length of a block header (spec §4.C6):
// version(4) || prevHash(32) || merkleRoot(32) || payloadHash(32) ||
// time(4) || creatorId(4).
const HeaderSize = 4 + 32 + 32 + 32 + 4 + 4

// CvnInfo describes a certified validator node known to a block's CVN
// section (spec §3). It is immutable once produced by the parser.
type CvnInfo struct {
	NodeID      uint32
	HeightAdded uint32
	PubKey      SchnorrPublicKey
}

func (c *CvnInfo) serializeSize() int {
	return 4 + 4 + schnorrPubKeySerializeSize(c.PubKey)
}

func (c *CvnInfo) serialize(dst []byte) []byte {
	dst = putUint32LE(dst, c.NodeID)
	dst = putUint32LE(dst, c.HeightAdded)
	return putSchnorrPubKey(dst, c.PubKey)
}

func decodeCvnInfo(buf []byte) (CvnInfo, int, error) {
	var c CvnInfo
	total := 0

	nodeID, n, err := readUint32LE(buf[total:])
	if err != nil {
		return c, 0, err
	}
	total += n

	height, n, err := readUint32LE(buf[total:])
	if err != nil {
		return c, 0, err
	}
	total += n

	pubKey, n, err := readSchnorrPubKey(buf[total:])
	if err != nil {
		return c, 0, err
	}
	total += n

	c.NodeID = nodeID
	c.HeightAdded = height
	c.PubKey = pubKey
	return c, total, nil
}

// ChainAdmin has the identical shape to CvnInfo (spec §3).
type ChainAdmin struct {
	AdminID     uint32
	HeightAdded uint32
	PubKey      SchnorrPublicKey
}

func (a *ChainAdmin) serializeSize() int {
	return 4 + 4 + schnorrPubKeySerializeSize(a.PubKey)
}

func (a *ChainAdmin) serialize(dst []byte) []byte {
	dst = putUint32LE(dst, a.AdminID)
	dst = putUint32LE(dst, a.HeightAdded)
	return putSchnorrPubKey(dst, a.PubKey)
}

func decodeChainAdmin(buf []byte) (ChainAdmin, int, error) {
	var a ChainAdmin
	total := 0

	adminID, n, err := readUint32LE(buf[total:])
	if err != nil {
		return a, 0, err
	}
	total += n

	height, n, err := readUint32LE(buf[total:])
	if err != nil {
		return a, 0, err
	}
	total += n

	pubKey, n, err := readSchnorrPubKey(buf[total:])
	if err != nil {
		return a, 0, err
	}
	total += n

	a.AdminID = adminID
	a.HeightAdded = height
	a.PubKey = pubKey
	return a, total, nil
}

// CvnInfo and ChainAdmin public keys are carried on the wire as a one-byte
// length (32 or 33) followed by that many bytes — there is no dedicated
// varint for a field this small.
func schnorrPubKeySerializeSize(k SchnorrPublicKey) int {
	return 1 + len(k)
}

func putSchnorrPubKey(dst []byte, k SchnorrPublicKey) []byte {
	dst = append(dst, byte(len(k)))
	return append(dst, k...)
}

func readSchnorrPubKey(buf []byte) (SchnorrPublicKey, int, error) {
	lenByte, n, err := readFixed(buf, 1)
	if err != nil {
		return nil, 0, err
	}
	total := n

	keyBytes, n, err := readFixed(buf[total:], int(lenByte[0]))
	if err != nil {
		return nil, 0, err
	}
	total += n

	key, err := NewSchnorrPublicKey(keyBytes)
	if err != nil {
		return nil, 0, err
	}
	return key, total, nil
}

// Block is the wire-format block model (spec §3/§4.C6): a fixed 108-byte
// header plus optional body sections gated by bits of the header's version
// word. It carries a lazy byte cache so that serializing an untouched,
// decoded block reproduces the exact input bytes.
type Block struct {
	// Header fields.
	Version     VersionFlags
	PrevHash    chainhash.Hash
	PayloadHash chainhash.Hash
	Time        uint32
	CreatorID   uint32

	// Body fields, all gated by Version bits (spec §3).
	Transactions     []Transaction
	ChainMultiSig    SchnorrSignature
	MissingSignerIDs []uint32
	AdminMultiSig    SchnorrSignature
	AdminIDs         []uint32
	CreatorSignature SchnorrSignature
	CVNs             []CvnInfo
	ChainAdmins      []ChainAdmin
	DynamicParams    *DynamicChainParameters

	// TransactionDecoder is used to parse the transactions section; the
	// transaction codec itself is delegated (spec §1/C5), so a concrete
	// Block needs to be told how to decode one.
	TransactionDecoder TransactionDecoder

	// Cache state (spec §3 "Cache state").
	originalBytes         []byte
	headerBytesValid      bool
	transactionBytesValid bool
	cachedHash            *chainhash.Hash
	cachedMerkleRoot      *chainhash.Hash

	// headerOnly records whether this block was parsed as a header-only
	// record (spec §4.C6 step 1), so a rebuild after mutation stops after
	// the transactions section rather than guessing from field contents.
	// When the TX bit is set, the rebuild writes a zero transaction count
	// even if the parsed record ended directly after the header.
	headerOnly bool
}

// BlockHash returns doubleSHA256(headerBytes), computed over the 108 header
// bytes only (spec §4.C6 "Hashing"). Like every chainhash.Hash it is held
// in wire orientation; its String form is the byte-reversed display hash.
// The result is cached until a setter invalidates it.
func (b *Block) BlockHash() chainhash.Hash {
	if b.cachedHash != nil {
		return *b.cachedHash
	}
	header := b.serializeHeader(nil)
	h := chainhash.DoubleHashH(header)
	b.cachedHash = &h
	return h
}

// MerkleRoot returns the block's Merkle root, computing and caching it from
// the transaction id sequence on first access (spec §4.C6 "Merkle root").
func (b *Block) MerkleRoot() chainhash.Hash {
	if b.cachedMerkleRoot != nil {
		return *b.cachedMerkleRoot
	}
	ids := make([]chainhash.Hash, len(b.Transactions))
	for i, tx := range b.Transactions {
		ids[i] = tx.TxID()
	}
	root := chainhash.CalcMerkleRoot(ids)
	b.cachedMerkleRoot = &root
	return root
}

// GetWork returns 20 − |missingSignerIds|, a placeholder "work" scalar used
// by the chain selector above this core (spec §4.C8, §9 — treat as opaque).
func (b *Block) GetWork() int {
	return 20 - len(b.MissingSignerIDs)
}

// SetTransactions replaces the block's transaction list, invalidating the
// transaction byte cache and the cached Merkle root (spec §3 invariant iii,
// iv).
func (b *Block) SetTransactions(txs []Transaction) {
	b.Transactions = txs
	b.transactionBytesValid = false
	b.cachedMerkleRoot = nil
	b.headerOnly = false
	b.maybeReleaseOriginalBytes()
}

// SetPrevHash mutates a header field, invalidating the header byte cache and
// the cached hash (spec §3 invariant ii).
func (b *Block) SetPrevHash(h chainhash.Hash) {
	b.PrevHash = h
	b.invalidateHeader()
}

// SetPayloadHash mutates a header field, invalidating the header byte cache
// and the cached hash.
func (b *Block) SetPayloadHash(h chainhash.Hash) {
	b.PayloadHash = h
	b.invalidateHeader()
}

// SetTime mutates a header field, invalidating the header byte cache and the
// cached hash.
func (b *Block) SetTime(t uint32) {
	b.Time = t
	b.invalidateHeader()
}

// SetCreatorID mutates a header field, invalidating the header byte cache
// and the cached hash.
func (b *Block) SetCreatorID(id uint32) {
	b.CreatorID = id
	b.invalidateHeader()
}

// SetVersion mutates the version bitmask, invalidating the header byte cache
// and the cached hash. Since the version word also gates which body
// sections are read back, callers must keep the body fields consistent with
// the new bit pattern before serializing again.
func (b *Block) SetVersion(v VersionFlags) {
	b.Version = v
	b.invalidateHeader()
}

func (b *Block) invalidateHeader() {
	b.headerBytesValid = false
	b.cachedHash = nil
	// Invalidating the header also clears the cached Merkle root lazily
	// (spec §3 invariant iv) since the header carries merkleRoot itself.
	b.cachedMerkleRoot = nil
	b.maybeReleaseOriginalBytes()
}

func (b *Block) maybeReleaseOriginalBytes() {
	if !b.headerBytesValid && !b.transactionBytesValid {
		b.originalBytes = nil
	}
}

// DecodeBlock parses a Block from buf using decoder to parse transactions.
// The returned Block retains buf as its original-bytes cache (spec §4.C6
// "Lazy byte cache"), so Serialize on an unmutated result reproduces buf
// verbatim.
func DecodeBlock(buf []byte, decoder TransactionDecoder) (*Block, int, error) {
	if len(buf) < HeaderSize {
		return nil, 0, newDecodeError(ErrTruncated, "block: need 108 bytes for header")
	}

	b := &Block{TransactionDecoder: decoder}
	total := 0

	versionRaw, n, err := readUint32LE(buf[total:])
	if err != nil {
		return nil, 0, err
	}
	b.Version = VersionFlags(versionRaw)
	total += n

	prevHash, n, err := readHash(buf[total:])
	if err != nil {
		return nil, 0, err
	}
	b.PrevHash = prevHash
	total += n

	merkleRoot, n, err := readHash(buf[total:])
	if err != nil {
		return nil, 0, err
	}
	total += n

	payloadHash, n, err := readHash(buf[total:])
	if err != nil {
		return nil, 0, err
	}
	b.PayloadHash = payloadHash
	total += n

	t, n, err := readUint32LE(buf[total:])
	if err != nil {
		return nil, 0, err
	}
	b.Time = t
	total += n

	creatorID, n, err := readUint32LE(buf[total:])
	if err != nil {
		return nil, 0, err
	}
	b.CreatorID = creatorID
	total += n

	headerOnly := false

	// Step 1: transactions section, gated by the TX bit (spec §4.C6
	// "Parse order" step 1). If nothing follows the header, this is a
	// header-only record and parsing ends immediately; otherwise the
	// remaining sections are read unconditionally through
	// creatorSignature, then the admin/CVN/chain-admin/chain-parameters
	// sections gated by their own bits.
	if total >= len(buf) {
		headerOnly = true
	} else if b.Version.Has(VersionTxFlag) {
		n, err := b.MergeMerkleRootAndDecodeTransactions(buf[total:], merkleRoot, decoder)
		if err != nil {
			return nil, 0, err
		}
		total += n
		if len(b.Transactions) == 0 && total >= len(buf) {
			headerOnly = true
		}
	}

	if headerOnly {
		b.headerOnly = true
		b.cachedMerkleRoot = &merkleRoot
		b.originalBytes = cloneBytes(buf[:total])
		b.headerBytesValid = true
		b.transactionBytesValid = true
		return b, total, nil
	}

	chainMultiSig, n, err := readFixed(buf[total:], SchnorrSignatureSize)
	if err != nil {
		return nil, 0, err
	}
	sig, err := NewSchnorrSignature(chainMultiSig)
	if err != nil {
		return nil, 0, err
	}
	b.ChainMultiSig = sig
	total += n

	missingIDs, n, err := decodeIDSet(buf[total:])
	if err != nil {
		return nil, 0, err
	}
	b.MissingSignerIDs = missingIDs
	total += n

	if b.Version.HasAdminPayload() {
		adminMultiSig, n, err := readFixed(buf[total:], SchnorrSignatureSize)
		if err != nil {
			return nil, 0, err
		}
		sig, err := NewSchnorrSignature(adminMultiSig)
		if err != nil {
			return nil, 0, err
		}
		b.AdminMultiSig = sig
		total += n

		adminIDs, n, err := decodeIDSet(buf[total:])
		if err != nil {
			return nil, 0, err
		}
		b.AdminIDs = adminIDs
		total += n
	}

	creatorSig, n, err := readFixed(buf[total:], SchnorrSignatureSize)
	if err != nil {
		return nil, 0, err
	}
	sig, err = NewSchnorrSignature(creatorSig)
	if err != nil {
		return nil, 0, err
	}
	b.CreatorSignature = sig
	total += n

	if b.Version.Has(VersionCVNFlag) {
		count, n, err := ReadVarIntBounded(buf[total:], MaxBlockSize)
		if err != nil {
			return nil, 0, err
		}
		total += n

		cvns := make([]CvnInfo, 0, minInt(int(count), 4096))
		for i := uint64(0); i < count; i++ {
			cvn, n, err := decodeCvnInfo(buf[total:])
			if err != nil {
				return nil, 0, err
			}
			cvns = append(cvns, cvn)
			total += n
		}
		b.CVNs = cvns
	}

	if b.Version.Has(VersionChainAdminsFlag) {
		count, n, err := ReadVarIntBounded(buf[total:], MaxBlockSize)
		if err != nil {
			return nil, 0, err
		}
		total += n

		admins := make([]ChainAdmin, 0, minInt(int(count), 4096))
		for i := uint64(0); i < count; i++ {
			admin, n, err := decodeChainAdmin(buf[total:])
			if err != nil {
				return nil, 0, err
			}
			admins = append(admins, admin)
			total += n
		}
		b.ChainAdmins = admins
	}

	if b.Version.Has(VersionChainParametersFlag) {
		params, n, err := decodeDynamicChainParameters(buf[total:])
		if err != nil {
			return nil, 0, err
		}
		b.DynamicParams = params
		total += n
	}

	b.cachedMerkleRoot = &merkleRoot
	b.originalBytes = cloneBytes(buf[:total])
	b.headerBytesValid = true
	b.transactionBytesValid = true
	return b, total, nil
}

// MergeMerkleRootAndDecodeTransactions parses the transaction count + list
// section (spec §4.C6 step 1) and records the transactions on b, returning
// the number of bytes consumed. It is only called during DecodeBlock;
// merkleRoot is accepted so a future cross-check against the computed root
// can be added without changing the call shape.
func (b *Block) MergeMerkleRootAndDecodeTransactions(buf []byte, merkleRoot chainhash.Hash, decoder TransactionDecoder) (int, error) {
	count, n, err := ReadVarIntBounded(buf, MaxBlockSize)
	if err != nil {
		return 0, err
	}
	total := n

	txs, consumed, err := DecodeTransactions(buf[total:], count, decoder)
	if err != nil {
		return 0, err
	}
	b.Transactions = txs
	total += consumed
	return total, nil
}

// decodeIDSet parses the varint-k-then-k-u32s shape shared by
// missingSignerIds and adminIds (spec §4.C6 step 3/4). Spec §9 freezes the
// observable-outcome interpretation of the source's per-iteration
// reallocation bug: the result is a set containing all k parsed ids, not a
// set that loses earlier entries.
func decodeIDSet(buf []byte) ([]uint32, int, error) {
	k, n, err := ReadVarIntBounded(buf, MaxBlockSize)
	if err != nil {
		return nil, 0, err
	}
	total := n

	ids := make([]uint32, 0, minInt(int(k), 4096))
	for i := uint64(0); i < k; i++ {
		id, n, err := readUint32LE(buf[total:])
		if err != nil {
			return nil, 0, err
		}
		ids = append(ids, id)
		total += n
	}
	return ids, total, nil
}

// encodeIDSet serializes ids in ascending numeric order, the canonical
// output order spec §5/§9 requires for round-trip determinism of a
// semantically-unordered set.
func encodeIDSet(dst []byte, ids []uint32) []byte {
	sorted := make([]uint32, len(ids))
	copy(sorted, ids)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	dst = WriteVarInt(dst, uint64(len(sorted)))
	for _, id := range sorted {
		dst = putUint32LE(dst, id)
	}
	return dst
}

func idSetSerializeSize(ids []uint32) int {
	return VarIntSerializeSize(uint64(len(ids))) + 4*len(ids)
}

// Serialize encodes the block to its wire form. If both byte-cache flags are
// valid and a retained buffer is present, the retained bytes are copied
// verbatim (spec §4.C6 "Lazy byte cache"); otherwise the block is rebuilt
// field-by-field. The retained buffer's length is not compared against a
// rebuild.
func (b *Block) Serialize(dst []byte) []byte {
	if b.headerBytesValid && b.transactionBytesValid && b.originalBytes != nil {
		return append(dst, b.originalBytes...)
	}

	dst = b.serializeHeader(dst)

	if b.Version.Has(VersionTxFlag) {
		dst = WriteVarInt(dst, uint64(len(b.Transactions)))
		for _, tx := range b.Transactions {
			dst = tx.Serialize(dst)
		}
	}

	if b.headerOnly {
		return dst
	}

	dst = append(dst, b.ChainMultiSig[:]...)
	dst = encodeIDSet(dst, b.MissingSignerIDs)

	if b.Version.HasAdminPayload() {
		dst = append(dst, b.AdminMultiSig[:]...)
		dst = encodeIDSet(dst, b.AdminIDs)
	}

	dst = append(dst, b.CreatorSignature[:]...)

	if b.Version.Has(VersionCVNFlag) {
		dst = WriteVarInt(dst, uint64(len(b.CVNs)))
		for i := range b.CVNs {
			dst = b.CVNs[i].serialize(dst)
		}
	}

	if b.Version.Has(VersionChainAdminsFlag) {
		dst = WriteVarInt(dst, uint64(len(b.ChainAdmins)))
		for i := range b.ChainAdmins {
			dst = b.ChainAdmins[i].serialize(dst)
		}
	}

	if b.Version.Has(VersionChainParametersFlag) && b.DynamicParams != nil {
		dst = b.DynamicParams.serialize(dst)
	}

	return dst
}

// serializeHeader writes only the fixed 108-byte header, using the cached
// Merkle root (computing it if necessary) for the merkleRoot field.
func (b *Block) serializeHeader(dst []byte) []byte {
	root := b.MerkleRoot()
	dst = putUint32LE(dst, uint32(b.Version))
	dst = writeHash(dst, b.PrevHash)
	dst = writeHash(dst, root)
	dst = writeHash(dst, b.PayloadHash)
	dst = putUint32LE(dst, b.Time)
	dst = putUint32LE(dst, b.CreatorID)
	return dst
}

func cloneBytes(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
