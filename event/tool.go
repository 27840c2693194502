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

// ToolCallStartEvent indicates the start of a streaming tool call.
type ToolCallStartEvent struct {
	*BaseEvent
	ToolCallID      string `json:"toolCallId"`
	ToolCallName    string `json:"toolCallName"`
	ParentMessageID string `json:"parentMessageId,omitempty"`
}

// ToolCallStartOption configures a tool call start event.
type ToolCallStartOption func(*ToolCallStartEvent)

// WithParentMessageID links the tool call to its parent assistant message.
func WithParentMessageID(messageID string) ToolCallStartOption {
	return func(e *ToolCallStartEvent) {
		e.ParentMessageID = messageID
	}
}

// NewToolCallStartEvent creates a new tool call start event.
func NewToolCallStartEvent(toolCallID, toolCallName string, opt ...ToolCallStartOption) *ToolCallStartEvent {
	e := &ToolCallStartEvent{
		BaseEvent:    NewBaseEvent(TypeToolCallStart),
		ToolCallID:   toolCallID,
		ToolCallName: toolCallName,
	}
	for _, o := range opt {
		o(e)
	}
	return e
}

// Validate validates the tool call start event.
func (e *ToolCallStartEvent) Validate() error {
	if err := e.BaseEvent.Validate(); err != nil {
		return err
	}
	if e.ToolCallID == "" {
		return fmt.Errorf("TOOL_CALL_START validation failed: toolCallId field is required")
	}
	if e.ToolCallName == "" {
		return fmt.Errorf("TOOL_CALL_START validation failed: toolCallName field is required")
	}
	return nil
}

// ToJSON serializes the event to JSON.
func (e *ToolCallStartEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// ToolCallArgsEvent contains one incremental fragment of tool call arguments.
type ToolCallArgsEvent struct {
	*BaseEvent
	ToolCallID string `json:"toolCallId"`
	Delta      string `json:"delta"`
}

// NewToolCallArgsEvent creates a new tool call args event.
func NewToolCallArgsEvent(toolCallID, delta string) *ToolCallArgsEvent {
	return &ToolCallArgsEvent{
		BaseEvent:  NewBaseEvent(TypeToolCallArgs),
		ToolCallID: toolCallID,
		Delta:      delta,
	}
}

// Validate validates the tool call args event.
func (e *ToolCallArgsEvent) Validate() error {
	if err := e.BaseEvent.Validate(); err != nil {
		return err
	}
	if e.ToolCallID == "" {
		return fmt.Errorf("TOOL_CALL_ARGS validation failed: toolCallId field is required")
	}
	return nil
}

// ToJSON serializes the event to JSON.
func (e *ToolCallArgsEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// ToolCallEndEvent indicates the end of a streaming tool call.
type ToolCallEndEvent struct {
	*BaseEvent
	ToolCallID string `json:"toolCallId"`
}

// NewToolCallEndEvent creates a new tool call end event.
func NewToolCallEndEvent(toolCallID string) *ToolCallEndEvent {
	return &ToolCallEndEvent{
		BaseEvent:  NewBaseEvent(TypeToolCallEnd),
		ToolCallID: toolCallID,
	}
}

// Validate validates the tool call end event.
func (e *ToolCallEndEvent) Validate() error {
	if err := e.BaseEvent.Validate(); err != nil {
		return err
	}
	if e.ToolCallID == "" {
		return fmt.Errorf("TOOL_CALL_END validation failed: toolCallId field is required")
	}
	return nil
}

// ToJSON serializes the event to JSON.
func (e *ToolCallEndEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// ToolCallResultEvent carries the result produced by a completed tool call.
type ToolCallResultEvent struct {
	*BaseEvent
	MessageID  string `json:"messageId"`
	ToolCallID string `json:"toolCallId"`
	Content    string `json:"content"`
	Role       string `json:"role,omitempty"`
}

// NewToolCallResultEvent creates a new tool call result event.
func NewToolCallResultEvent(messageID, toolCallID, content string) *ToolCallResultEvent {
	return &ToolCallResultEvent{
		BaseEvent:  NewBaseEvent(TypeToolCallResult),
		MessageID:  messageID,
		ToolCallID: toolCallID,
		Content:    content,
		Role:       RoleTool,
	}
}

// Validate validates the tool call result event.
func (e *ToolCallResultEvent) Validate() error {
	if err := e.BaseEvent.Validate(); err != nil {
		return err
	}
	if e.MessageID == "" {
		return fmt.Errorf("TOOL_CALL_RESULT validation failed: messageId field is required")
	}
	if e.ToolCallID == "" {
		return fmt.Errorf("TOOL_CALL_RESULT validation failed: toolCallId field is required")
	}
	return nil
}

// ToJSON serializes the event to JSON.
func (e *ToolCallResultEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}
