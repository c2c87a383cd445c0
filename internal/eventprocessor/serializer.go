// Spawnwatch - Live Spawn Map and Scan Coordination
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spawnwatch

package eventprocessor

import (
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/goccy/go-json"

	"github.com/tomtom215/spawnwatch/internal/models"
)

// Metadata keys set on relay messages.
const (
	MetadataKind        = "kind"
	MetadataContentType = "content_type"
)

const contentTypeJSON = "application/json"

// NewLocationMessage encodes a redirect for the next-location subject.
func NewLocationMessage(loc models.LocationRequest) (*message.Message, error) {
	payload, err := json.Marshal(loc)
	if err != nil {
		return nil, fmt.Errorf("marshal location: %w", err)
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set(MetadataKind, "next_location")
	msg.Metadata.Set(MetadataContentType, contentTypeJSON)
	return msg, nil
}

// DecodeLocation reverses NewLocationMessage.
func DecodeLocation(msg *message.Message) (models.LocationRequest, error) {
	var loc models.LocationRequest
	if err := json.Unmarshal(msg.Payload, &loc); err != nil {
		return loc, fmt.Errorf("unmarshal location: %w", err)
	}
	return loc, nil
}

// NewEntityMessage encodes an entity batch the way scanners publish it.
func NewEntityMessage(batch models.EntityBatch) (*message.Message, error) {
	payload, err := json.Marshal(batch)
	if err != nil {
		return nil, fmt.Errorf("marshal entity batch: %w", err)
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set(MetadataKind, "entities")
	msg.Metadata.Set(MetadataContentType, contentTypeJSON)
	return msg, nil
}

// DecodeEntityBatch parses an entity message. Only a payload that is not a
// JSON object fails; bad records are returned as ParseErrors.
func DecodeEntityBatch(msg *message.Message) (models.EntityBatch, []*models.ParseError, error) {
	var raw models.RawEntityBatch
	if err := json.Unmarshal(msg.Payload, &raw); err != nil {
		return models.EntityBatch{}, nil, fmt.Errorf("unmarshal entity batch: %w", err)
	}
	batch, perrs := raw.Decode()
	return batch, perrs, nil
}
