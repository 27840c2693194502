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

// ThinkingStartEvent indicates the model has started an internal reasoning phase.
type ThinkingStartEvent struct {
	*BaseEvent
	Title string `json:"title,omitempty"`
}

// ThinkingStartOption configures a thinking start event.
type ThinkingStartOption func(*ThinkingStartEvent)

// WithThinkingTitle sets a display title for the reasoning phase.
func WithThinkingTitle(title string) ThinkingStartOption {
	return func(e *ThinkingStartEvent) {
		e.Title = title
	}
}

// NewThinkingStartEvent creates a new thinking start event.
func NewThinkingStartEvent(opt ...ThinkingStartOption) *ThinkingStartEvent {
	e := &ThinkingStartEvent{
		BaseEvent: NewBaseEvent(TypeThinkingStart),
	}
	for _, o := range opt {
		o(e)
	}
	return e
}

// Validate validates the thinking start event.
func (e *ThinkingStartEvent) Validate() error {
	return e.BaseEvent.Validate()
}

// ToJSON serializes the event to JSON.
func (e *ThinkingStartEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// ThinkingTextMessageContentEvent contains one incremental piece of reasoning text.
type ThinkingTextMessageContentEvent struct {
	*BaseEvent
	Delta string `json:"delta"`
}

// NewThinkingTextMessageContentEvent creates a new thinking text message content event.
func NewThinkingTextMessageContentEvent(delta string) *ThinkingTextMessageContentEvent {
	return &ThinkingTextMessageContentEvent{
		BaseEvent: NewBaseEvent(TypeThinkingTextMessageContent),
		Delta:     delta,
	}
}

// Validate validates the thinking text message content event.
func (e *ThinkingTextMessageContentEvent) Validate() error {
	if err := e.BaseEvent.Validate(); err != nil {
		return err
	}
	if e.Delta == "" {
		return fmt.Errorf("THINKING_TEXT_MESSAGE_CONTENT validation failed: delta field must not be empty")
	}
	return nil
}

// ToJSON serializes the event to JSON.
func (e *ThinkingTextMessageContentEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// ThinkingEndEvent indicates the reasoning phase has ended.
type ThinkingEndEvent struct {
	*BaseEvent
}

// NewThinkingEndEvent creates a new thinking end event.
func NewThinkingEndEvent() *ThinkingEndEvent {
	return &ThinkingEndEvent{
		BaseEvent: NewBaseEvent(TypeThinkingEnd),
	}
}

// Validate validates the thinking end event.
func (e *ThinkingEndEvent) Validate() error {
	return e.BaseEvent.Validate()
}

// ToJSON serializes the event to JSON.
func (e *ThinkingEndEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}
