package wire

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAddressMessageRoundTrip(t *testing.T) {
	msg := &AddressMessage{
		Addresses: []PeerAddress{
			{Timestamp: 100, Services: SFNodeNetwork, Port: 41404},
			{Timestamp: 200, Services: SFNodeNetwork | SFNodeBloom, Port: 40404},
		},
	}
	buf := msg.Serialize(nil)
	require.Equal(t, msg.SerializeSize(), len(buf))

	decoded, err := DecodeAddressMessage(buf)
	require.NoError(t, err)
	am := decoded.(*AddressMessage)
	require.Equal(t, msg.Addresses, am.Addresses)
}

func TestAddressMessageAddRemoveAdjustsSize(t *testing.T) {
	msg := &AddressMessage{}
	before := msg.SerializeSize()

	msg.AddAddress(PeerAddress{Timestamp: 1, Port: 1})
	require.Equal(t, before+peerAddressSize, msg.SerializeSize())

	msg.RemoveAddress(0)
	require.Equal(t, before, msg.SerializeSize())
}
