// SPDX-FileCopyrightText: 2022 SoftIron Limited <info@softiron.com>
// SPDX-License-Identifier: GNU General Public License v2.0 only WITH Classpath exception 2.0

// The JSON encoder: an Encoder that wraps each message in a small
// top-level object carrying the message ID alongside the data.

package notify

import (
	"encoding/json"
	"fmt"
)

// wireMessage is the wire-format envelope shared by every JSON message.
type wireMessage struct {
	ID   string      `json:"id"`
	Data interface{} `json:"data"`
}

// MakeJSONEncoderFactory makes a JSON encoder factory.
func MakeJSONEncoderFactory() EncoderFactory {
	var factory jsonEncoderFactory
	return &factory
}

func (me *jsonEncoderFactory) Make(connection ByteConnection) Encoder {
	framer := makePreLengthFramer(connection)
	return makeJSONEncoder(framer)
}

func (me *jsonEncoder) Send(messageID string, data interface{}) error {
	var message wireMessage
	message.ID = messageID
	message.Data = data

	dataBytes, err := json.Marshal(&message)
	if err != nil {
		return fmt.Errorf("could not json-encode message: %v", err)
	}

	return me.framer.Send(dataBytes)
}

func (me *jsonEncoder) Receive() (ReceivedMessage, error) {
	messageBytes, err := me.framer.Receive()
	if err != nil {
		return nil, err
	}

	var header wireMessage
	if err := json.Unmarshal(messageBytes, &header); err != nil {
		return nil, fmt.Errorf("error processing received message: %v", err)
	}

	return makeJSONReceivedMessage(header.ID, messageBytes), nil
}

func (me *jsonReceivedMessage) ID() string {
	return me.id
}

func (me *jsonReceivedMessage) Data(data interface{}) {
	var message wireMessage
	message.Data = data
	// Already known to be valid JSON from Receive, so the error here is
	// not actionable.
	json.Unmarshal(me.messageBytes, &message)
}

type jsonEncoderFactory struct{}

type jsonEncoder struct {
	framer Framer
}

type jsonReceivedMessage struct {
	id           string
	messageBytes []byte
}

func makeJSONEncoder(framer Framer) *jsonEncoder {
	var encoder jsonEncoder
	encoder.framer = framer
	return &encoder
}

func makeJSONReceivedMessage(id string, messageBytes []byte) *jsonReceivedMessage {
	var m jsonReceivedMessage
	m.id = id
	m.messageBytes = messageBytes
	return &m
}
