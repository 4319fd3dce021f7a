// Copyright (c) 2013-2024 The btcsuite developers
// Copyright (c) 2025 The fc2core developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"fmt"
	"strconv"
	"strings"
)

// ServiceFlag identifies services supported by a peer on this network.
type ServiceFlag uint64

const (
	// SFNodeNetwork is a flag used to indicate a peer is a full node.
	SFNodeNetwork ServiceFlag = 1 << iota

	// SFNodeBloom is a flag used to indicate a peer supports bloom
	// filtering, the mechanism partial Merkle tree proofs are delivered
	// over (spec §1 "Out of scope: bloom filters beyond the fact that
	// they produce filtered blocks consumed here").
	SFNodeBloom

	// SFNodeCVN is a flag used to indicate a peer is itself a certified
	// validator node and may originate creator signatures.
	SFNodeCVN
)

// Map of service flags back to their constant names for pretty printing.
var sfStrings = map[ServiceFlag]string{
	SFNodeNetwork: "SFNodeNetwork",
	SFNodeBloom:   "SFNodeBloom",
	SFNodeCVN:     "SFNodeCVN",
}

var orderedSFStrings = []ServiceFlag{
	SFNodeNetwork,
	SFNodeBloom,
	SFNodeCVN,
}

// HasFlag returns a bool indicating if the service has the given flag.
func (f ServiceFlag) HasFlag(s ServiceFlag) bool {
	return f&s == s
}

// String returns the ServiceFlag in human-readable form.
func (f ServiceFlag) String() string {
	if f == 0 {
		return "0x0"
	}

	s := ""
	for _, flag := range orderedSFStrings {
		if f&flag == flag {
			s += sfStrings[flag] + "|"
			f -= flag
		}
	}

	s = strings.TrimRight(s, "|")
	if f != 0 {
		s += "|0x" + strconv.FormatUint(uint64(f), 16)
	}
	s = strings.TrimLeft(s, "|")
	return s
}

// BitcoinNet represents which network a message belongs to, keyed by the
// envelope's packet magic (spec §4.C4, §6).
type BitcoinNet uint32

// Per-network packet magics, per spec §6's "values that MUST match" table.
// Two testnet profiles are carried because the corpus's testnet parameter
// files disagree on this value (spec §9 "Open questions"); both are kept as
// distinct, individually addressable network profiles.
const (
	// MainNet is the production network.
	MainNet BitcoinNet = 0xFABFB5DA

	// TestNet is the canonical testnet profile this core verifies against
	// (spec §8 scenario S1).
	TestNet BitcoinNet = 0x0C120A08

	// LegacyTestNet is the older, still-encountered testnet packet magic
	// (spec §9).
	LegacyTestNet BitcoinNet = 0x0B110907

	// RegressionNet is a private, deterministic network for local tests.
	RegressionNet BitcoinNet = 0xDAB5BFFA
)

var bnStrings = map[BitcoinNet]string{
	MainNet:       "MainNet",
	TestNet:       "TestNet",
	LegacyTestNet: "LegacyTestNet",
	RegressionNet: "RegressionNet",
}

// String returns the BitcoinNet in human-readable form.
func (n BitcoinNet) String() string {
	if s, ok := bnStrings[n]; ok {
		return s
	}
	return fmt.Sprintf("Unknown BitcoinNet (%d)", uint32(n))
}
