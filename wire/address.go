// Copyright (c) 2025 The fc2core developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

// PeerAddress is a single record in an AddressMessage: timestamp + services
// + ip + port (spec §4.C9).
type PeerAddress struct {
	Timestamp uint32
	Services  ServiceFlag
	IP        [16]byte
	Port      uint16
}

const peerAddressSize = 4 + 8 + 16 + 2

func (a *PeerAddress) serialize(dst []byte) []byte {
	dst = putUint32LE(dst, a.Timestamp)
	dst = putUint64LE(dst, uint64(a.Services))
	dst = append(dst, a.IP[:]...)
	dst = append(dst, byte(a.Port>>8), byte(a.Port))
	return dst
}

func decodePeerAddress(buf []byte) (PeerAddress, int, error) {
	var a PeerAddress
	total := 0

	ts, n, err := readUint32LE(buf[total:])
	if err != nil {
		return a, 0, err
	}
	a.Timestamp = ts
	total += n

	services, n, err := readUint64LE(buf[total:])
	if err != nil {
		return a, 0, err
	}
	a.Services = ServiceFlag(services)
	total += n

	ipBytes, n, err := readFixed(buf[total:], 16)
	if err != nil {
		return a, 0, err
	}
	copy(a.IP[:], ipBytes)
	total += n

	portBytes, n, err := readFixed(buf[total:], 2)
	if err != nil {
		return a, 0, err
	}
	a.Port = uint16(portBytes[0])<<8 | uint16(portBytes[1])
	total += n

	return a, total, nil
}

// AddressMessage is a varint-prefixed sequence of PeerAddress records (spec
// §4.C9). Size-cap and dynamic-length accounting is identical to
// NoncePoolMessage.
type AddressMessage struct {
	Addresses []PeerAddress
}

// Command implements Message.
func (m *AddressMessage) Command() string { return "addr" }

// SerializeSize implements Message.
func (m *AddressMessage) SerializeSize() int {
	return VarIntSerializeSize(uint64(len(m.Addresses))) + peerAddressSize*len(m.Addresses)
}

// Serialize implements Message.
func (m *AddressMessage) Serialize(dst []byte) []byte {
	dst = WriteVarInt(dst, uint64(len(m.Addresses)))
	for i := range m.Addresses {
		dst = m.Addresses[i].serialize(dst)
	}
	return dst
}

// DecodeAddressMessage parses an AddressMessage from payload bytes.
func DecodeAddressMessage(payload []byte) (Message, error) {
	count, n, err := ReadVarIntBounded(payload, MaxBlockSize/peerAddressSize)
	if err != nil {
		return nil, err
	}
	total := n

	addrs := make([]PeerAddress, 0, count)
	for i := uint64(0); i < count; i++ {
		addr, n, err := decodePeerAddress(payload[total:])
		if err != nil {
			return nil, err
		}
		addrs = append(addrs, addr)
		total += n
	}

	return &AddressMessage{Addresses: addrs}, nil
}

// AddAddress appends an address to the message, growing the serialized
// length by peerAddressSize bytes (spec §4.C9, mirroring NoncePoolMessage's
// AddNonce/RemoveNonce contract).
func (m *AddressMessage) AddAddress(a PeerAddress) {
	m.Addresses = append(m.Addresses, a)
}

// RemoveAddress removes the address at index i.
func (m *AddressMessage) RemoveAddress(i int) {
	m.Addresses = append(m.Addresses[:i], m.Addresses[i+1:]...)
}
