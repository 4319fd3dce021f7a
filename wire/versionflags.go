// Copyright (c) 2025 The fc2core developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

// VersionFlags is the block "version" bitmask (spec §3/§4.C6). The low byte
// carries an ordinary protocol version number; bits 8-12 gate which of the
// optional body sections follow the fixed header. Spec §9 recommends
// modeling this as a tagged record gated by bit tests on a named value type
// instead of the source's inheritance/instanceof scheme — VersionFlags is
// that value type.
type VersionFlags uint32

// Optional-payload bits, per spec §4.C6.
const (
	VersionTxFlag               VersionFlags = 1 << 8
	VersionCVNFlag              VersionFlags = 1 << 9
	VersionChainParametersFlag  VersionFlags = 1 << 10
	VersionChainAdminsFlag      VersionFlags = 1 << 11
	VersionCoinSupplyFlag       VersionFlags = 1 << 12

	// AdminPayloadMask is the union of bits whose presence implies an
	// admin multisig/admin-id list accompanies the block (spec §4.C6).
	AdminPayloadMask = VersionCVNFlag | VersionChainParametersFlag |
		VersionChainAdminsFlag | VersionCoinSupplyFlag

	// protocolVersionMask isolates the low-byte ordinary protocol
	// version number from the payload-gating bits.
	protocolVersionMask VersionFlags = 0xff
)

// Has reports whether every bit in flag is set in v.
func (v VersionFlags) Has(flag VersionFlags) bool {
	return v&flag == flag
}

// ProtocolVersion returns the low-byte ordinary protocol version number.
func (v VersionFlags) ProtocolVersion() uint32 {
	return uint32(v & protocolVersionMask)
}

// HasAdminPayload reports whether any admin-payload bit is set, per spec
// §4.C6 step 4 ("If version & ADMIN_PAYLOAD_MASK != 0").
func (v VersionFlags) HasAdminPayload() bool {
	return v&AdminPayloadMask != 0
}
