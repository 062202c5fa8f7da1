// SPDX-FileCopyrightText: 2022 SoftIron Limited <info@softiron.com>
// SPDX-License-Identifier: GNU General Public License v2.0 only WITH Classpath exception 2.0

// Tests for the pre-length framing protocol.

package notify

import "testing"

// testByteConn is an in-memory ByteConnection used to drive the framer
// without a real socket.
type testByteConn struct {
	readBuf    []byte
	readCalled bool
	writeBytes []byte
}

func makeTestByteConn(toRead []byte) *testByteConn {
	return &testByteConn{readBuf: toRead}
}

func (c *testByteConn) Read(buffer []byte) (int, error) {
	c.readCalled = true
	n := copy(buffer, c.readBuf)
	c.readBuf = c.readBuf[n:]
	return n, nil
}

func (c *testByteConn) Write(buffer []byte) (int, error) {
	c.writeBytes = append(c.writeBytes, buffer...)
	return len(buffer), nil
}

func checkBytes(t *testing.T, want, got []byte) {
	t.Helper()
	if len(want) != len(got) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if want[i] != got[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestPrelenFramerEncodeSmall(t *testing.T) {
	payload := []byte{4, 5}
	expected := []byte{2, 0, 0, 0, 4, 5}

	conn := makeTestByteConn(nil)
	framer := makePreLengthFramer(conn)

	if err := framer.Send(payload); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if conn.readCalled {
		t.Fatal("Send must not read from the connection")
	}
	checkBytes(t, expected, conn.writeBytes)
}

func TestPrelenFramerEncodeLarge(t *testing.T) {
	payload := make([]byte, 300)
	for i := range payload {
		payload[i] = byte(i)
	}
	conn := makeTestByteConn(nil)
	framer := makePreLengthFramer(conn)

	if err := framer.Send(payload); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expectedHeader := []byte{44, 1, 0, 0} // 300 little-endian
	checkBytes(t, expectedHeader, conn.writeBytes[:4])
	checkBytes(t, payload, conn.writeBytes[4:])
}

func TestPrelenFramerDecodeSmall(t *testing.T) {
	readBytes := []byte{3, 0, 0, 0, 4, 5, 6}
	expected := []byte{4, 5, 6}

	conn := makeTestByteConn(readBytes)
	framer := makePreLengthFramer(conn)

	got, err := framer.Receive()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	checkBytes(t, expected, got)
}

func TestPrelenFramerDecodeAcrossMultipleReads(t *testing.T) {
	// testByteConn.Read hands back as much as fits in the buffer it is
	// given, so no single read is ever partial here; this checks that the
	// header and the body, which Receive reads with separate calls, come
	// back as one message.
	readBytes := []byte{2, 0, 0, 0, 9, 10}
	conn := makeTestByteConn(readBytes)
	framer := makePreLengthFramer(conn)

	got, err := framer.Receive()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	checkBytes(t, []byte{9, 10}, got)
}
