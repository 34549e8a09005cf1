package net

import (
	"encoding/json"
	"fmt"

	"FlowScope/internal/flow"
)

// MessageType discriminates feed envelope payloads.
type MessageType string

const (
	// MsgTopology replaces the whole diagram: senders and badges.
	MsgTopology MessageType = "topology"
	// MsgRemoveSender drops one sender and everything under it.
	MsgRemoveSender MessageType = "remove_sender"
	// MsgClear empties the diagram.
	MsgClear MessageType = "clear"
)

// Message is one feed envelope. Site and Seq identify the producer so
// re-shared feeds can be de-duplicated downstream.
type Message struct {
	Type MessageType `json:"type"`
	Site string      `json:"site,omitempty"`
	Seq  uint64      `json:"seq,omitempty"`

	Senders      map[string]flow.SenderArrows    `json:"senders,omitempty"`
	AccessPoints map[string]flow.AccessPointMeta `json:"access_points,omitempty"`
	SenderID     string                          `json:"sender_id,omitempty"`
}

// Encode serializes a message for the wire.
func Encode(msg Message) ([]byte, error) {
	data, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("encode %s message: %w", msg.Type, err)
	}
	return data, nil
}

// Decode parses and validates one wire message.
func Decode(data []byte) (Message, error) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return Message{}, fmt.Errorf("decode feed message: %w", err)
	}
	switch msg.Type {
	case MsgTopology, MsgClear:
	case MsgRemoveSender:
		if msg.SenderID == "" {
			return Message{}, fmt.Errorf("remove_sender message without sender_id")
		}
	default:
		return Message{}, fmt.Errorf("unknown feed message type %q", msg.Type)
	}
	return msg, nil
}
