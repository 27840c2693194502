//
// Tencent is pleased to support the open source community by making cloudbase-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// cloudbase-agent-go is licensed under the Apache License Version 2.0.
//
//

package event

import (
	"fmt"

	json "github.com/goccy/go-json"
)

// StateSnapshotEvent carries a full replacement of the shared state.
type StateSnapshotEvent struct {
	*BaseEvent
	Snapshot any `json:"snapshot"`
}

// NewStateSnapshotEvent creates a new state snapshot event.
func NewStateSnapshotEvent(snapshot any) *StateSnapshotEvent {
	return &StateSnapshotEvent{
		BaseEvent: NewBaseEvent(TypeStateSnapshot),
		Snapshot:  snapshot,
	}
}

// Validate validates the state snapshot event.
func (e *StateSnapshotEvent) Validate() error {
	if err := e.BaseEvent.Validate(); err != nil {
		return err
	}
	if e.Snapshot == nil {
		return fmt.Errorf("STATE_SNAPSHOT validation failed: snapshot field is required")
	}
	return nil
}

// ToJSON serializes the event to JSON.
func (e *StateSnapshotEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// StateDeltaEvent carries a JSON Patch (RFC 6902) list applied to the shared state.
type StateDeltaEvent struct {
	*BaseEvent
	Delta []JSONPatchOperation `json:"delta"`
}

// JSONPatchOperation is a single RFC 6902 operation.
type JSONPatchOperation struct {
	Op    string `json:"op"`
	Path  string `json:"path"`
	From  string `json:"from,omitempty"`
	Value any    `json:"value,omitempty"`
}

// NewStateDeltaEvent creates a new state delta event.
func NewStateDeltaEvent(delta []JSONPatchOperation) *StateDeltaEvent {
	return &StateDeltaEvent{
		BaseEvent: NewBaseEvent(TypeStateDelta),
		Delta:     delta,
	}
}

// Validate validates the state delta event.
func (e *StateDeltaEvent) Validate() error {
	if err := e.BaseEvent.Validate(); err != nil {
		return err
	}
	if len(e.Delta) == 0 {
		return fmt.Errorf("STATE_DELTA validation failed: delta field must not be empty")
	}
	for i, op := range e.Delta {
		switch op.Op {
		case "add", "remove", "replace", "move", "copy", "test":
		default:
			return fmt.Errorf("STATE_DELTA validation failed: operation %d has invalid op %q", i, op.Op)
		}
		if op.Path == "" {
			return fmt.Errorf("STATE_DELTA validation failed: operation %d is missing path", i)
		}
	}
	return nil
}

// ToJSON serializes the event to JSON.
func (e *StateDeltaEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// MessagesSnapshotEvent carries a full replacement of the conversation history.
type MessagesSnapshotEvent struct {
	*BaseEvent
	Messages []Message `json:"messages"`
}

// NewMessagesSnapshotEvent creates a new messages snapshot event.
func NewMessagesSnapshotEvent(messages []Message) *MessagesSnapshotEvent {
	return &MessagesSnapshotEvent{
		BaseEvent: NewBaseEvent(TypeMessagesSnapshot),
		Messages:  messages,
	}
}

// Validate validates the messages snapshot event.
func (e *MessagesSnapshotEvent) Validate() error {
	if err := e.BaseEvent.Validate(); err != nil {
		return err
	}
	for i, m := range e.Messages {
		if m.ID == "" {
			return fmt.Errorf("MESSAGES_SNAPSHOT validation failed: message %d is missing id", i)
		}
		if m.Role == "" {
			return fmt.Errorf("MESSAGES_SNAPSHOT validation failed: message %d is missing role", i)
		}
	}
	return nil
}

// ToJSON serializes the event to JSON.
func (e *MessagesSnapshotEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}
