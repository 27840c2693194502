//
// Tencent is pleased to support the open source community by making cloudbase-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// cloudbase-agent-go is licensed under the Apache License Version 2.0.
//
//

// Package event defines the typed AG-UI protocol events exchanged between an
// agent and its UI client, together with their camelCase wire form.
package event

import (
	"fmt"
	"time"
)

// Type represents the type of AG-UI event.
type Type string

// AG-UI event type constants, matching the protocol specification.
const (
	TypeRunStarted  Type = "RUN_STARTED"
	TypeRunFinished Type = "RUN_FINISHED"
	TypeRunError    Type = "RUN_ERROR"

	TypeStepStarted  Type = "STEP_STARTED"
	TypeStepFinished Type = "STEP_FINISHED"

	TypeTextMessageStart   Type = "TEXT_MESSAGE_START"
	TypeTextMessageContent Type = "TEXT_MESSAGE_CONTENT"
	TypeTextMessageChunk   Type = "TEXT_MESSAGE_CHUNK"
	TypeTextMessageEnd     Type = "TEXT_MESSAGE_END"

	TypeToolCallStart  Type = "TOOL_CALL_START"
	TypeToolCallArgs   Type = "TOOL_CALL_ARGS"
	TypeToolCallEnd    Type = "TOOL_CALL_END"
	TypeToolCallResult Type = "TOOL_CALL_RESULT"

	TypeThinkingStart              Type = "THINKING_START"
	TypeThinkingTextMessageContent Type = "THINKING_TEXT_MESSAGE_CONTENT"
	TypeThinkingEnd                Type = "THINKING_END"

	TypeStateSnapshot    Type = "STATE_SNAPSHOT"
	TypeStateDelta       Type = "STATE_DELTA"
	TypeMessagesSnapshot Type = "MESSAGES_SNAPSHOT"

	TypeRaw    Type = "RAW"
	TypeCustom Type = "CUSTOM"
)

// validTypes is a map for O(1) lookup of valid event types.
var validTypes = map[Type]bool{
	TypeRunStarted:                 true,
	TypeRunFinished:                true,
	TypeRunError:                   true,
	TypeStepStarted:                true,
	TypeStepFinished:               true,
	TypeTextMessageStart:           true,
	TypeTextMessageContent:         true,
	TypeTextMessageChunk:           true,
	TypeTextMessageEnd:             true,
	TypeToolCallStart:              true,
	TypeToolCallArgs:               true,
	TypeToolCallEnd:                true,
	TypeToolCallResult:             true,
	TypeThinkingStart:              true,
	TypeThinkingTextMessageContent: true,
	TypeThinkingEnd:                true,
	TypeStateSnapshot:              true,
	TypeStateDelta:                 true,
	TypeMessagesSnapshot:           true,
	TypeRaw:                        true,
	TypeCustom:                     true,
}

// Event defines the common interface for all AG-UI events.
type Event interface {
	// Type returns the event type.
	Type() Type

	// Timestamp returns the event timestamp (Unix milliseconds).
	Timestamp() *int64

	// SetTimestamp sets the event timestamp.
	SetTimestamp(timestamp int64)

	// Validate validates the event structure and content.
	Validate() error

	// ToJSON serializes the event to its camelCase wire form.
	ToJSON() ([]byte, error)

	// GetBaseEvent returns the underlying base event.
	GetBaseEvent() *BaseEvent
}

// BaseEvent provides common fields and functionality for all events.
type BaseEvent struct {
	EventType   Type   `json:"type"`
	TimestampMs *int64 `json:"timestamp,omitempty"`
	RawEvent    any    `json:"rawEvent,omitempty"`
}

// Type returns the event type.
func (b *BaseEvent) Type() Type {
	return b.EventType
}

// Timestamp returns the event timestamp.
func (b *BaseEvent) Timestamp() *int64 {
	return b.TimestampMs
}

// SetTimestamp sets the event timestamp.
func (b *BaseEvent) SetTimestamp(timestamp int64) {
	b.TimestampMs = &timestamp
}

// GetBaseEvent returns the base event.
func (b *BaseEvent) GetBaseEvent() *BaseEvent {
	return b
}

// NewBaseEvent creates a new base event with the given type and current timestamp.
func NewBaseEvent(eventType Type) *BaseEvent {
	now := time.Now().UnixMilli()
	return &BaseEvent{
		EventType:   eventType,
		TimestampMs: &now,
	}
}

// Validate validates the base event structure.
func (b *BaseEvent) Validate() error {
	if b.EventType == "" {
		return fmt.Errorf("event validation failed: type field is required")
	}
	if !validTypes[b.EventType] {
		return fmt.Errorf("event validation failed: invalid event type %q", b.EventType)
	}
	return nil
}
