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

// Message is one element of a conversation snapshot.
type Message struct {
	ID         string     `json:"id"`
	Role       string     `json:"role"`
	Content    any        `json:"content,omitempty"`
	Name       string     `json:"name,omitempty"`
	ToolCalls  []ToolCall `json:"toolCalls,omitempty"`
	ToolCallID string     `json:"toolCallId,omitempty"`
}

// Message role constants.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

// ToolCall describes a function invocation requested by an assistant message.
type ToolCall struct {
	ID       string       `json:"id"`
	Type     string       `json:"type"`
	Function FunctionCall `json:"function"`
}

// FunctionCall carries the function name and its JSON-encoded arguments.
type FunctionCall struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// ContentText flattens a message content value into plain text. Structured
// multimodal content keeps only its text parts.
func (m *Message) ContentText() string {
	switch c := m.Content.(type) {
	case string:
		return c
	case []any:
		var out string
		for _, part := range c {
			pm, ok := part.(map[string]any)
			if !ok {
				continue
			}
			if text, ok := pm["text"].(string); ok {
				out += text
			}
		}
		return out
	default:
		return ""
	}
}

// TextMessageStartEvent indicates the start of a streaming text message.
type TextMessageStartEvent struct {
	*BaseEvent
	MessageID string `json:"messageId"`
	Role      string `json:"role,omitempty"`
}

// TextMessageStartOption configures a text message start event.
type TextMessageStartOption func(*TextMessageStartEvent)

// WithRole sets the role for the message.
func WithRole(role string) TextMessageStartOption {
	return func(e *TextMessageStartEvent) {
		e.Role = role
	}
}

// NewTextMessageStartEvent creates a new text message start event.
func NewTextMessageStartEvent(messageID string, opt ...TextMessageStartOption) *TextMessageStartEvent {
	e := &TextMessageStartEvent{
		BaseEvent: NewBaseEvent(TypeTextMessageStart),
		MessageID: messageID,
		Role:      RoleAssistant,
	}
	for _, o := range opt {
		o(e)
	}
	return e
}

// Validate validates the text message start event.
func (e *TextMessageStartEvent) Validate() error {
	if err := e.BaseEvent.Validate(); err != nil {
		return err
	}
	if e.MessageID == "" {
		return fmt.Errorf("TEXT_MESSAGE_START validation failed: messageId field is required")
	}
	return nil
}

// ToJSON serializes the event to JSON.
func (e *TextMessageStartEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// TextMessageContentEvent contains one incremental piece of text message content.
type TextMessageContentEvent struct {
	*BaseEvent
	MessageID string `json:"messageId"`
	Delta     string `json:"delta"`
}

// NewTextMessageContentEvent creates a new text message content event.
func NewTextMessageContentEvent(messageID, delta string) *TextMessageContentEvent {
	return &TextMessageContentEvent{
		BaseEvent: NewBaseEvent(TypeTextMessageContent),
		MessageID: messageID,
		Delta:     delta,
	}
}

// Validate validates the text message content event.
func (e *TextMessageContentEvent) Validate() error {
	if err := e.BaseEvent.Validate(); err != nil {
		return err
	}
	if e.MessageID == "" {
		return fmt.Errorf("TEXT_MESSAGE_CONTENT validation failed: messageId field is required")
	}
	if e.Delta == "" {
		return fmt.Errorf("TEXT_MESSAGE_CONTENT validation failed: delta field must not be empty")
	}
	return nil
}

// ToJSON serializes the event to JSON.
func (e *TextMessageContentEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// TextMessageChunkEvent is an adapter-side shortcut equivalent to a content
// event. The translator rewrites it into TEXT_MESSAGE_CONTENT.
type TextMessageChunkEvent struct {
	*BaseEvent
	MessageID string `json:"messageId,omitempty"`
	Role      string `json:"role,omitempty"`
	Delta     string `json:"delta,omitempty"`
}

// NewTextMessageChunkEvent creates a new text message chunk event.
func NewTextMessageChunkEvent(messageID, delta string) *TextMessageChunkEvent {
	return &TextMessageChunkEvent{
		BaseEvent: NewBaseEvent(TypeTextMessageChunk),
		MessageID: messageID,
		Delta:     delta,
	}
}

// Validate validates the text message chunk event.
func (e *TextMessageChunkEvent) Validate() error {
	return e.BaseEvent.Validate()
}

// ToJSON serializes the event to JSON.
func (e *TextMessageChunkEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// TextMessageEndEvent indicates the end of a streaming text message.
type TextMessageEndEvent struct {
	*BaseEvent
	MessageID string `json:"messageId"`
}

// NewTextMessageEndEvent creates a new text message end event.
func NewTextMessageEndEvent(messageID string) *TextMessageEndEvent {
	return &TextMessageEndEvent{
		BaseEvent: NewBaseEvent(TypeTextMessageEnd),
		MessageID: messageID,
	}
}

// Validate validates the text message end event.
func (e *TextMessageEndEvent) Validate() error {
	if err := e.BaseEvent.Validate(); err != nil {
		return err
	}
	if e.MessageID == "" {
		return fmt.Errorf("TEXT_MESSAGE_END validation failed: messageId field is required")
	}
	return nil
}

// ToJSON serializes the event to JSON.
func (e *TextMessageEndEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}
