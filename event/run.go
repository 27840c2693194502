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

// RunStartedEvent indicates an agent run has started.
type RunStartedEvent struct {
	*BaseEvent
	ThreadID string `json:"threadId"`
	RunID    string `json:"runId"`
}

// NewRunStartedEvent creates a new run started event.
func NewRunStartedEvent(threadID, runID string) *RunStartedEvent {
	return &RunStartedEvent{
		BaseEvent: NewBaseEvent(TypeRunStarted),
		ThreadID:  threadID,
		RunID:     runID,
	}
}

// Validate validates the run started event.
func (e *RunStartedEvent) Validate() error {
	if err := e.BaseEvent.Validate(); err != nil {
		return err
	}
	if e.ThreadID == "" {
		return fmt.Errorf("RUN_STARTED validation failed: threadId field is required")
	}
	if e.RunID == "" {
		return fmt.Errorf("RUN_STARTED validation failed: runId field is required")
	}
	return nil
}

// ToJSON serializes the event to JSON.
func (e *RunStartedEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// RunFinishedEvent indicates an agent run has finished successfully.
type RunFinishedEvent struct {
	*BaseEvent
	ThreadID string `json:"threadId"`
	RunID    string `json:"runId"`
	Result   any    `json:"result,omitempty"`
}

// RunFinishedOption configures a run finished event.
type RunFinishedOption func(*RunFinishedEvent)

// WithRunResult attaches an arbitrary result payload to the run finished event.
func WithRunResult(result any) RunFinishedOption {
	return func(e *RunFinishedEvent) {
		e.Result = result
	}
}

// NewRunFinishedEvent creates a new run finished event.
func NewRunFinishedEvent(threadID, runID string, opt ...RunFinishedOption) *RunFinishedEvent {
	e := &RunFinishedEvent{
		BaseEvent: NewBaseEvent(TypeRunFinished),
		ThreadID:  threadID,
		RunID:     runID,
	}
	for _, o := range opt {
		o(e)
	}
	return e
}

// Validate validates the run finished event.
func (e *RunFinishedEvent) Validate() error {
	if err := e.BaseEvent.Validate(); err != nil {
		return err
	}
	if e.ThreadID == "" {
		return fmt.Errorf("RUN_FINISHED validation failed: threadId field is required")
	}
	if e.RunID == "" {
		return fmt.Errorf("RUN_FINISHED validation failed: runId field is required")
	}
	return nil
}

// ToJSON serializes the event to JSON.
func (e *RunFinishedEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// RunErrorEvent reports that an agent run terminated with an error.
type RunErrorEvent struct {
	*BaseEvent
	Message  string  `json:"message"`
	Code     *string `json:"code,omitempty"`
	ThreadID string  `json:"threadId,omitempty"`
	RunID    string  `json:"runId,omitempty"`
}

// RunErrorOption configures a run error event.
type RunErrorOption func(*RunErrorEvent)

// WithErrorCode sets the machine-readable error code.
func WithErrorCode(code string) RunErrorOption {
	return func(e *RunErrorEvent) {
		e.Code = &code
	}
}

// WithRunErrorIDs attaches the originating thread and run identifiers.
func WithRunErrorIDs(threadID, runID string) RunErrorOption {
	return func(e *RunErrorEvent) {
		e.ThreadID = threadID
		e.RunID = runID
	}
}

// NewRunErrorEvent creates a new run error event.
func NewRunErrorEvent(message string, opt ...RunErrorOption) *RunErrorEvent {
	e := &RunErrorEvent{
		BaseEvent: NewBaseEvent(TypeRunError),
		Message:   message,
	}
	for _, o := range opt {
		o(e)
	}
	return e
}

// Validate validates the run error event.
func (e *RunErrorEvent) Validate() error {
	if err := e.BaseEvent.Validate(); err != nil {
		return err
	}
	if e.Message == "" {
		return fmt.Errorf("RUN_ERROR validation failed: message field is required")
	}
	return nil
}

// ToJSON serializes the event to JSON.
func (e *RunErrorEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// StepStartedEvent indicates a named step within a run has started.
type StepStartedEvent struct {
	*BaseEvent
	StepName string `json:"stepName"`
}

// NewStepStartedEvent creates a new step started event.
func NewStepStartedEvent(stepName string) *StepStartedEvent {
	return &StepStartedEvent{
		BaseEvent: NewBaseEvent(TypeStepStarted),
		StepName:  stepName,
	}
}

// Validate validates the step started event.
func (e *StepStartedEvent) Validate() error {
	if err := e.BaseEvent.Validate(); err != nil {
		return err
	}
	if e.StepName == "" {
		return fmt.Errorf("STEP_STARTED validation failed: stepName field is required")
	}
	return nil
}

// ToJSON serializes the event to JSON.
func (e *StepStartedEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// StepFinishedEvent indicates a named step within a run has finished.
type StepFinishedEvent struct {
	*BaseEvent
	StepName string `json:"stepName"`
}

// NewStepFinishedEvent creates a new step finished event.
func NewStepFinishedEvent(stepName string) *StepFinishedEvent {
	return &StepFinishedEvent{
		BaseEvent: NewBaseEvent(TypeStepFinished),
		StepName:  stepName,
	}
}

// Validate validates the step finished event.
func (e *StepFinishedEvent) Validate() error {
	if err := e.BaseEvent.Validate(); err != nil {
		return err
	}
	if e.StepName == "" {
		return fmt.Errorf("STEP_FINISHED validation failed: stepName field is required")
	}
	return nil
}

// ToJSON serializes the event to JSON.
func (e *StepFinishedEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}
