// SPDX-FileCopyrightText: 2022 SoftIron Limited <info@softiron.com>
// SPDX-License-Identifier: GNU General Public License v2.0 only WITH Classpath exception 2.0

// Package notify forwards worker.Observer notifications to a remote
// monitor process over a length-prefixed TCP stream, encoded as either
// gob or JSON depending on which EncoderFactory the caller chooses.
package notify

// ReceivedMessage is a message that has been received and partially
// decoded: its ID is already known, but its Data is unpacked lazily into
// a caller-supplied struct.
type ReceivedMessage interface {
	// ID reports the message's ID.
	ID() string

	// Data unpacks the message's data into the given struct.
	Data(data interface{})
}

// EncoderFactory makes an Encoder, including its framer, for a given
// byte connection.
type EncoderFactory interface {
	Make(connection ByteConnection) Encoder
}

// Encoder encodes and decodes messages with struct data, sending and
// receiving them via a Framer.
type Encoder interface {
	// Send encodes the given message and sends it.
	Send(messageID string, data interface{}) error

	// Receive blocks until the next message arrives, and decodes it.
	Receive() (ReceivedMessage, error)
}

// Framer frames and unframes messages sent and received over a stream.
type Framer interface {
	Send(message []byte) error
	Receive() (message []byte, err error)
}

// ByteConnection is a byte-oriented read/write stream. net.Conn
// satisfies this interface.
type ByteConnection interface {
	Read(buffer []byte) (byteCount int, err error)
	Write(buffer []byte) (byteCount int, err error)
}
