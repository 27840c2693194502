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

	"go.uber.org/multierr"
)

// ValidateSequence checks that a slice of events forms a well-ordered run:
// RUN_STARTED first, exactly one terminal event last, and balanced
// message and tool call lifecycles. All violations are collected and
// returned as a single combined error.
func ValidateSequence(events []Event) error {
	if len(events) == 0 {
		return fmt.Errorf("sequence validation failed: no events")
	}

	var errs error
	if events[0].Type() != TypeRunStarted {
		errs = multierr.Append(errs, fmt.Errorf("sequence validation failed: first event is %s, want RUN_STARTED", events[0].Type()))
	}

	openMessages := map[string]bool{}
	openToolCalls := map[string]bool{}
	terminated := false

	for i, evt := range events {
		if terminated {
			errs = multierr.Append(errs, fmt.Errorf("sequence validation failed: event %d (%s) follows a terminal event", i, evt.Type()))
			break
		}
		switch e := evt.(type) {
		case *RunStartedEvent:
			if i != 0 {
				errs = multierr.Append(errs, fmt.Errorf("sequence validation failed: duplicate RUN_STARTED at index %d", i))
			}
		case *RunFinishedEvent, *RunErrorEvent:
			terminated = true
		case *TextMessageStartEvent:
			if openMessages[e.MessageID] {
				errs = multierr.Append(errs, fmt.Errorf("sequence validation failed: message %s started twice", e.MessageID))
			}
			openMessages[e.MessageID] = true
		case *TextMessageContentEvent:
			if !openMessages[e.MessageID] {
				errs = multierr.Append(errs, fmt.Errorf("sequence validation failed: content for unopened message %s", e.MessageID))
			}
		case *TextMessageEndEvent:
			if !openMessages[e.MessageID] {
				errs = multierr.Append(errs, fmt.Errorf("sequence validation failed: end for unopened message %s", e.MessageID))
			}
			delete(openMessages, e.MessageID)
		case *ToolCallStartEvent:
			if openToolCalls[e.ToolCallID] {
				errs = multierr.Append(errs, fmt.Errorf("sequence validation failed: tool call %s started twice", e.ToolCallID))
			}
			openToolCalls[e.ToolCallID] = true
		case *ToolCallArgsEvent:
			if !openToolCalls[e.ToolCallID] {
				errs = multierr.Append(errs, fmt.Errorf("sequence validation failed: args for unopened tool call %s", e.ToolCallID))
			}
		case *ToolCallEndEvent:
			if !openToolCalls[e.ToolCallID] {
				errs = multierr.Append(errs, fmt.Errorf("sequence validation failed: end for unopened tool call %s", e.ToolCallID))
			}
			delete(openToolCalls, e.ToolCallID)
		}
	}

	if !terminated {
		errs = multierr.Append(errs, fmt.Errorf("sequence validation failed: missing terminal RUN_FINISHED or RUN_ERROR"))
	}
	for id := range openMessages {
		errs = multierr.Append(errs, fmt.Errorf("sequence validation failed: message %s never ended", id))
	}
	for id := range openToolCalls {
		errs = multierr.Append(errs, fmt.Errorf("sequence validation failed: tool call %s never ended", id))
	}
	return errs
}
