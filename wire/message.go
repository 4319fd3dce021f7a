// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2025 The fc2core developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"github.com/faircoin2/fc2core/chainhash"
)

// CommandSize is the fixed, NUL-padded ASCII width of a message command
// name (spec §4.C4).
const CommandSize = 12

// ChecksumSize is the width of the envelope checksum: the first 4 bytes of
// double-SHA-256(payload).
const ChecksumSize = 4

// MessageHeaderSize is the fixed envelope header size: magic(4) +
// command(12) + length(4) + checksum(4).
const MessageHeaderSize = 4 + CommandSize + 4 + ChecksumSize

// Message is any type that can be framed by this package's envelope: a
// command name plus a byte-exact payload codec.
type Message interface {
	Command() string
	SerializeSize() int
	Serialize(dst []byte) []byte
}

// MessageDecoder parses a Message's payload (not the envelope) given its
// declared length-bounded bytes.
type MessageDecoder func(payload []byte) (Message, error)

// UnknownMessage is returned by Deserialize when no decoder is registered
// for the envelope's command; it still round-trips its raw payload
// verbatim (spec §4.C4 "Unknown commands produce an UnknownMessage record
// that still round-trips its raw payload").
type UnknownMessage struct {
	CommandName string
	Payload     []byte
}

// Command implements Message.
func (m *UnknownMessage) Command() string { return m.CommandName }

// SerializeSize implements Message.
func (m *UnknownMessage) SerializeSize() int { return len(m.Payload) }

// Serialize implements Message.
func (m *UnknownMessage) Serialize(dst []byte) []byte {
	return append(dst, m.Payload...)
}

// SeekPastMagic advances buf until the given network's magic bytes are
// found at the front, returning the number of bytes skipped. It fails
// Truncated if the magic is never found before the buffer is exhausted
// (spec §4.C4 "seekPastMagic").
func SeekPastMagic(buf []byte, net BitcoinNet) (int, error) {
	var want [4]byte
	putUint32LE(want[:0], uint32(net))

	skipped := 0
	for {
		if len(buf) < 4 {
			return 0, newDecodeError(ErrTruncated, "seekPastMagic: magic not found before buffer end")
		}
		if buf[0] == want[0] && buf[1] == want[1] && buf[2] == want[2] && buf[3] == want[3] {
			return skipped, nil
		}
		buf = buf[1:]
		skipped++
	}
}

// readHeader parses the 24-byte envelope header from the front of buf
// (spec §4.C4 "readHeader").
func readHeader(buf []byte) (command string, length uint32, checksum [ChecksumSize]byte, consumed int, err error) {
	if len(buf) < MessageHeaderSize {
		err = newDecodeError(ErrTruncated, "message header needs 24 bytes")
		return
	}

	total := 4 // magic already validated/consumed by the caller via SeekPastMagic

	cmdBytes := buf[total : total+CommandSize]
	command = trimCommand(cmdBytes)
	total += CommandSize

	length, n, lerr := readUint32LE(buf[total:])
	if lerr != nil {
		err = lerr
		return
	}
	total += n

	if length > MaxBlockSize {
		err = newDecodeError(ErrOversize, "message length exceeds policy cap")
		return
	}

	copy(checksum[:], buf[total:total+ChecksumSize])
	total += ChecksumSize

	consumed = total
	return
}

func trimCommand(b []byte) string {
	end := len(b)
	for end > 0 && b[end-1] == 0 {
		end--
	}
	return string(b[:end])
}

func padCommand(dst []byte, command string) []byte {
	var buf [CommandSize]byte
	copy(buf[:], command)
	return append(dst, buf[:]...)
}

// Deserialize locates net's magic in buf via SeekPastMagic, then reads one
// full envelope from that point: header, checksum validation, and payload
// dispatch by command (spec §4.C4 "deserialize"). The returned byte count
// includes any bytes skipped before the magic. decoders maps a command
// name to its payload decoder; an unrecognized command yields an
// UnknownMessage rather than an error.
func Deserialize(buf []byte, net BitcoinNet, decoders map[string]MessageDecoder) (Message, int, error) {
	skipped, err := SeekPastMagic(buf, net)
	if err != nil {
		return nil, 0, err
	}
	buf = buf[skipped:]

	command, length, checksum, headerLen, err := readHeader(buf)
	if err != nil {
		return nil, 0, err
	}

	total := skipped + headerLen
	if uint64(len(buf[headerLen:])) < uint64(length) {
		return nil, 0, newDecodeError(ErrTruncated, "message payload shorter than declared length")
	}
	payload := buf[headerLen : headerLen+int(length)]

	gotChecksum := chainhash.DoubleHashB(payload)
	if gotChecksum[0] != checksum[0] || gotChecksum[1] != checksum[1] ||
		gotChecksum[2] != checksum[2] || gotChecksum[3] != checksum[3] {
		return nil, 0, newDecodeError(ErrChecksumMismatch, "envelope checksum does not match payload")
	}
	total += int(length)

	decode, ok := decoders[command]
	if !ok {
		return &UnknownMessage{CommandName: command, Payload: cloneBytes(payload)}, total, nil
	}

	msg, err := decode(payload)
	if err != nil {
		return nil, 0, err
	}
	return msg, total, nil
}

// SerializeMessage frames msg as magic || command || length || checksum ||
// payload for network net.
func SerializeMessage(dst []byte, net BitcoinNet, msg Message) []byte {
	payload := msg.Serialize(nil)
	checksum := chainhash.DoubleHashB(payload)

	dst = putUint32LE(dst, uint32(net))
	dst = padCommand(dst, msg.Command())
	dst = putUint32LE(dst, uint32(len(payload)))
	dst = append(dst, checksum[:ChecksumSize]...)
	dst = append(dst, payload...)
	return dst
}
