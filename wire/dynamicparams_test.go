package wire

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDynamicChainParametersRoundTrip(t *testing.T) {
	p := &DynamicChainParameters{
		Version:                     1,
		MinAdminSigs:                3,
		MaxAdminSigs:                7,
		BlockSpacingSeconds:         180,
		BlockSpacingGracePeriodSec:  60,
		TransactionFeeMicro:         1000,
		DustThresholdMicro:          500,
		MinSuccessiveSignatures:     2,
		BlocksToConsiderForSigCheck: 100,
		PercentageOfSignaturesMean:  70,
		MaxBlockSize:                1_000_000,
		BlockPropagationWaitSec:     10,
		RetryNewSigSetIntervalSec:   30,
		Description:                 "testnet governance profile",
	}

	buf := p.serialize(nil)
	require.Equal(t, p.serializeSize(), len(buf))

	decoded, n, err := decodeDynamicChainParameters(buf)
	require.NoError(t, err)
	require.Equal(t, len(buf), n)
	require.Equal(t, p, decoded)
}

func TestDynamicChainParametersRejectsInvalidUTF8Description(t *testing.T) {
	p := &DynamicChainParameters{Description: "placeholder"}
	buf := p.serialize(nil)

	// Corrupt the description bytes (last len(Description) bytes) to an
	// invalid UTF-8 sequence of the same length.
	desc := buf[len(buf)-len("placeholder"):]
	for i := range desc {
		desc[i] = 0xff
	}

	_, _, err := decodeDynamicChainParameters(buf)
	require.Error(t, err)
	var de *DecodeError
	require.ErrorAs(t, err, &de)
	require.Equal(t, ErrMalformed, de.Kind)
}
