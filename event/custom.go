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

// CustomEvent carries an application-defined payload outside the standard set.
type CustomEvent struct {
	*BaseEvent
	Name  string `json:"name"`
	Value any    `json:"value,omitempty"`
}

// CustomOption configures a custom event.
type CustomOption func(*CustomEvent)

// WithValue attaches an arbitrary payload to the custom event.
func WithValue(value any) CustomOption {
	return func(e *CustomEvent) {
		e.Value = value
	}
}

// NewCustomEvent creates a new custom event.
func NewCustomEvent(name string, opt ...CustomOption) *CustomEvent {
	e := &CustomEvent{
		BaseEvent: NewBaseEvent(TypeCustom),
		Name:      name,
	}
	for _, o := range opt {
		o(e)
	}
	return e
}

// Validate validates the custom event.
func (e *CustomEvent) Validate() error {
	if err := e.BaseEvent.Validate(); err != nil {
		return err
	}
	if e.Name == "" {
		return fmt.Errorf("CUSTOM validation failed: name field is required")
	}
	return nil
}

// ToJSON serializes the event to JSON.
func (e *CustomEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// RawEvent passes a source event through without interpretation.
type RawEvent struct {
	*BaseEvent
	Event  any    `json:"event"`
	Source string `json:"source,omitempty"`
}

// RawOption configures a raw event.
type RawOption func(*RawEvent)

// WithSource records the system that produced the wrapped event.
func WithSource(source string) RawOption {
	return func(e *RawEvent) {
		e.Source = source
	}
}

// NewRawEvent creates a new raw event.
func NewRawEvent(evt any, opt ...RawOption) *RawEvent {
	e := &RawEvent{
		BaseEvent: NewBaseEvent(TypeRaw),
		Event:     evt,
	}
	for _, o := range opt {
		o(e)
	}
	return e
}

// Validate validates the raw event.
func (e *RawEvent) Validate() error {
	if err := e.BaseEvent.Validate(); err != nil {
		return err
	}
	if e.Event == nil {
		return fmt.Errorf("RAW validation failed: event field is required")
	}
	return nil
}

// ToJSON serializes the event to JSON.
func (e *RawEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}
