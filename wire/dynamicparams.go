// Copyright (c) 2025 The fc2core developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import "unicode/utf8"

// DynamicChainParameters is the governance-tunable parameter record carried
// in a block's optional CHAIN_PARAMETERS section (spec §3, §6). Field order
// below is the wire order.
type DynamicChainParameters struct {
	Version                    uint32
	MinAdminSigs               uint32
	MaxAdminSigs               uint32
	BlockSpacingSeconds        uint32
	BlockSpacingGracePeriodSec uint32
	TransactionFeeMicro        int64
	DustThresholdMicro         int64
	MinSuccessiveSignatures    uint32
	BlocksToConsiderForSigCheck uint32
	PercentageOfSignaturesMean uint32
	MaxBlockSize               uint32
	BlockPropagationWaitSec    uint32
	RetryNewSigSetIntervalSec  uint32
	Description                string
}

// serializeSize returns the encoded size in bytes.
func (p *DynamicChainParameters) serializeSize() int {
	return 4*11 + 8*2 + VarIntSerializeSize(uint64(len(p.Description))) + len(p.Description)
}

func (p *DynamicChainParameters) serialize(dst []byte) []byte {
	dst = putUint32LE(dst, p.Version)
	dst = putUint32LE(dst, p.MinAdminSigs)
	dst = putUint32LE(dst, p.MaxAdminSigs)
	dst = putUint32LE(dst, p.BlockSpacingSeconds)
	dst = putUint32LE(dst, p.BlockSpacingGracePeriodSec)
	dst = putUint64LE(dst, uint64(p.TransactionFeeMicro))
	dst = putUint64LE(dst, uint64(p.DustThresholdMicro))
	dst = putUint32LE(dst, p.MinSuccessiveSignatures)
	dst = putUint32LE(dst, p.BlocksToConsiderForSigCheck)
	dst = putUint32LE(dst, p.PercentageOfSignaturesMean)
	dst = putUint32LE(dst, p.MaxBlockSize)
	dst = putUint32LE(dst, p.BlockPropagationWaitSec)
	dst = putUint32LE(dst, p.RetryNewSigSetIntervalSec)
	dst = WriteVarInt(dst, uint64(len(p.Description)))
	dst = append(dst, p.Description...)
	return dst
}

func decodeDynamicChainParameters(buf []byte) (*DynamicChainParameters, int, error) {
	var p DynamicChainParameters
	total := 0

	fields := []*uint32{
		&p.Version, &p.MinAdminSigs, &p.MaxAdminSigs, &p.BlockSpacingSeconds,
		&p.BlockSpacingGracePeriodSec,
	}
	for _, f := range fields {
		v, n, err := readUint32LE(buf[total:])
		if err != nil {
			return nil, 0, err
		}
		*f = v
		total += n
	}

	fee, n, err := readInt64LE(buf[total:])
	if err != nil {
		return nil, 0, err
	}
	p.TransactionFeeMicro = fee
	total += n

	dust, n, err := readInt64LE(buf[total:])
	if err != nil {
		return nil, 0, err
	}
	p.DustThresholdMicro = dust
	total += n

	tailFields := []*uint32{
		&p.MinSuccessiveSignatures, &p.BlocksToConsiderForSigCheck,
		&p.PercentageOfSignaturesMean, &p.MaxBlockSize,
		&p.BlockPropagationWaitSec, &p.RetryNewSigSetIntervalSec,
	}
	for _, f := range tailFields {
		v, n, err := readUint32LE(buf[total:])
		if err != nil {
			return nil, 0, err
		}
		*f = v
		total += n
	}

	descLen, n, err := ReadVarIntBounded(buf[total:], MaxBlockSize)
	if err != nil {
		return nil, 0, err
	}
	total += n

	descBytes, n, err := readFixed(buf[total:], int(descLen))
	if err != nil {
		return nil, 0, err
	}
	total += n

	if !utf8.Valid(descBytes) {
		return nil, 0, newDecodeError(ErrMalformed, "dynamic chain parameters: description is not valid utf-8")
	}
	p.Description = string(descBytes)

	return &p, total, nil
}
