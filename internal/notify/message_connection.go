// SPDX-FileCopyrightText: 2022 SoftIron Limited <info@softiron.com>
// SPDX-License-Identifier: GNU General Public License v2.0 only WITH Classpath exception 2.0

// MessageConnection encapsulates a TCP connection to a monitor process,
// over which worker lifecycle Events are sent as framed, encoded
// messages.

package notify

import (
	"fmt"
	"net"
	"time"
)

// ListenTCP listens on address for monitor connections. Each accepted
// connection is reported, wrapped up as a *MessageConnection built with
// the given encoder factory, on the accepted channel.
func ListenTCP(address string, encoders EncoderFactory, accepted chan<- *MessageConnection) (*Listener, error) {
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return nil, err
	}

	go acceptTCP(listener, encoders, accepted)

	return &Listener{listener: listener}, nil
}

// Listener is a handle to a listening TCP socket.
type Listener struct {
	listener net.Listener
}

// StopListening stops accepting new connections.
func (l *Listener) StopListening() {
	l.listener.Close()
}

// ConnectTCP opens a connection to address, encoding messages with
// encoder. A zero timeout means no timeout.
func ConnectTCP(address string, encoder EncoderFactory, timeout time.Duration) (*MessageConnection, error) {
	var dialer net.Dialer
	if timeout != 0 {
		dialer.Timeout = timeout
	}

	conn, err := dialer.Dial("tcp", address)
	if err != nil {
		return nil, fmt.Errorf("failure connecting to %s: %v", address, err)
	}

	return makeMessageConn(conn, encoder), nil
}

// MessageConnection is a message-oriented connection to a single peer.
type MessageConnection struct {
	conn    net.Conn
	encoder Encoder
}

// Close closes the underlying connection.
func (mc *MessageConnection) Close() {
	mc.conn.Close()
}

// RemoteAddr reports the address of the machine at the other end of the
// connection.
func (mc *MessageConnection) RemoteAddr() string {
	return mc.conn.RemoteAddr().String()
}

// Send encodes and sends a single message.
func (mc *MessageConnection) Send(messageID string, data interface{}) error {
	return mc.encoder.Send(messageID, data)
}

// Receive blocks until the next message arrives.
func (mc *MessageConnection) Receive() (ReceivedMessage, error) {
	return mc.encoder.Receive()
}

func makeMessageConn(conn net.Conn, encoderFactory EncoderFactory) *MessageConnection {
	var mc MessageConnection
	mc.conn = conn
	mc.encoder = encoderFactory.Make(conn)
	return &mc
}

// acceptTCP accepts connections until the listener is closed or fails,
// wrapping each one and reporting it on accepted. It must be run as a
// goroutine.
func acceptTCP(listener net.Listener, encoders EncoderFactory, accepted chan<- *MessageConnection) {
	for {
		conn, err := listener.Accept()
		if err != nil {
			return
		}
		accepted <- makeMessageConn(conn, encoders)
	}
}
