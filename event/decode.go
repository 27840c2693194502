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
	"errors"
	"fmt"

	json "github.com/goccy/go-json"
)

// ErrUnknownEventType is returned by FromJSON when the type discriminator does
// not name a known event.
var ErrUnknownEventType = errors.New("unknown event type")

// decoders maps each event type to a function producing its concrete struct.
var decoders = map[Type]func() Event{
	TypeRunStarted:                 func() Event { return &RunStartedEvent{} },
	TypeRunFinished:                func() Event { return &RunFinishedEvent{} },
	TypeRunError:                   func() Event { return &RunErrorEvent{} },
	TypeStepStarted:                func() Event { return &StepStartedEvent{} },
	TypeStepFinished:               func() Event { return &StepFinishedEvent{} },
	TypeTextMessageStart:           func() Event { return &TextMessageStartEvent{} },
	TypeTextMessageContent:         func() Event { return &TextMessageContentEvent{} },
	TypeTextMessageChunk:           func() Event { return &TextMessageChunkEvent{} },
	TypeTextMessageEnd:             func() Event { return &TextMessageEndEvent{} },
	TypeToolCallStart:              func() Event { return &ToolCallStartEvent{} },
	TypeToolCallArgs:               func() Event { return &ToolCallArgsEvent{} },
	TypeToolCallEnd:                func() Event { return &ToolCallEndEvent{} },
	TypeToolCallResult:             func() Event { return &ToolCallResultEvent{} },
	TypeThinkingStart:              func() Event { return &ThinkingStartEvent{} },
	TypeThinkingTextMessageContent: func() Event { return &ThinkingTextMessageContentEvent{} },
	TypeThinkingEnd:                func() Event { return &ThinkingEndEvent{} },
	TypeStateSnapshot:              func() Event { return &StateSnapshotEvent{} },
	TypeStateDelta:                 func() Event { return &StateDeltaEvent{} },
	TypeMessagesSnapshot:           func() Event { return &MessagesSnapshotEvent{} },
	TypeRaw:                        func() Event { return &RawEvent{} },
	TypeCustom:                     func() Event { return &CustomEvent{} },
}

// FromJSON decodes the wire form of an event into its concrete struct based on
// the type discriminator.
func FromJSON(data []byte) (Event, error) {
	var head struct {
		Type Type `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("parse event: %w", err)
	}
	mk, ok := decoders[head.Type]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEventType, head.Type)
	}
	evt := mk()
	if err := json.Unmarshal(data, evt); err != nil {
		return nil, fmt.Errorf("parse %s event: %w", head.Type, err)
	}
	if evt.GetBaseEvent() == nil {
		setBase(evt, &BaseEvent{EventType: head.Type})
	}
	return evt, nil
}

// setBase installs a base event on a freshly decoded struct whose embedded
// pointer was left nil by the decoder.
func setBase(evt Event, base *BaseEvent) {
	switch e := evt.(type) {
	case *RunStartedEvent:
		e.BaseEvent = base
	case *RunFinishedEvent:
		e.BaseEvent = base
	case *RunErrorEvent:
		e.BaseEvent = base
	case *StepStartedEvent:
		e.BaseEvent = base
	case *StepFinishedEvent:
		e.BaseEvent = base
	case *TextMessageStartEvent:
		e.BaseEvent = base
	case *TextMessageContentEvent:
		e.BaseEvent = base
	case *TextMessageChunkEvent:
		e.BaseEvent = base
	case *TextMessageEndEvent:
		e.BaseEvent = base
	case *ToolCallStartEvent:
		e.BaseEvent = base
	case *ToolCallArgsEvent:
		e.BaseEvent = base
	case *ToolCallEndEvent:
		e.BaseEvent = base
	case *ToolCallResultEvent:
		e.BaseEvent = base
	case *ThinkingStartEvent:
		e.BaseEvent = base
	case *ThinkingTextMessageContentEvent:
		e.BaseEvent = base
	case *ThinkingEndEvent:
		e.BaseEvent = base
	case *StateSnapshotEvent:
		e.BaseEvent = base
	case *StateDeltaEvent:
		e.BaseEvent = base
	case *MessagesSnapshotEvent:
		e.BaseEvent = base
	case *RawEvent:
		e.BaseEvent = base
	case *CustomEvent:
		e.BaseEvent = base
	}
}
