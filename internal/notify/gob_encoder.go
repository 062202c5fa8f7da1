// SPDX-FileCopyrightText: 2022 SoftIron Limited <info@softiron.com>
// SPDX-License-Identifier: GNU General Public License v2.0 only WITH Classpath exception 2.0

// The gob encoder: an Encoder that uses encoding/gob for message bodies.

package notify

import (
	"bytes"
	"encoding/gob"
	"fmt"
)

// MakeGobEncoderFactory makes a gob encoder factory.
func MakeGobEncoderFactory() EncoderFactory {
	var factory gobEncoderFactory
	return &factory
}

func (me *gobEncoderFactory) Make(connection ByteConnection) Encoder {
	framer := makePreLengthFramer(connection)
	return makeGobEncoder(framer)
}

func (me *gobEncoder) Send(messageID string, data interface{}) error {
	var buf bytes.Buffer
	idBytes := []byte(messageID)
	buf.WriteByte(byte(len(idBytes)))
	buf.Write(idBytes)

	if data != nil {
		enc := gob.NewEncoder(&buf)
		if err := enc.Encode(data); err != nil {
			return fmt.Errorf("could not gob-encode message: %v", err)
		}
	}

	return me.framer.Send(buf.Bytes())
}

func (me *gobEncoder) Receive() (ReceivedMessage, error) {
	messageBytes, err := me.framer.Receive()
	if err != nil {
		return nil, err
	}

	idLen := int(messageBytes[0])
	id := string(messageBytes[1 : 1+idLen])
	return makeGobReceivedMessage(id, messageBytes[1+idLen:]), nil
}

func (me *gobReceivedMessage) ID() string {
	return me.id
}

func (me *gobReceivedMessage) Data(data interface{}) {
	buf := bytes.NewBuffer(me.messageBytes)
	dec := gob.NewDecoder(buf)
	dec.Decode(data) // best-effort, matching the JSON encoder's Data()
}

type gobEncoderFactory struct{}

type gobEncoder struct {
	framer Framer
}

type gobReceivedMessage struct {
	id           string
	messageBytes []byte
}

func makeGobEncoder(framer Framer) *gobEncoder {
	var encoder gobEncoder
	encoder.framer = framer
	return &encoder
}

func makeGobReceivedMessage(id string, messageBytes []byte) *gobReceivedMessage {
	var m gobReceivedMessage
	m.id = id
	m.messageBytes = messageBytes
	return &m
}
