//
// Tencent is pleased to support the open source community by making cloudbase-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// cloudbase-agent-go is licensed under the Apache License Version 2.0.
//
//

// Package translator normalizes adapter event streams into canonical AG-UI
// streams: lifecycle framing, message id continuity, cumulative-to-delta
// conversion and in-band error repair.
package translator

import (
	"context"
	"errors"
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/tidwall/gjson"

	"github.com/tencentcloudbase/cloudbase-agent-go/errs"
	"github.com/tencentcloudbase/cloudbase-agent-go/event"
	"github.com/tencentcloudbase/cloudbase-agent-go/internal/track"
	"github.com/tencentcloudbase/cloudbase-agent-go/log"
)

// Translator rewrites one adapter event into zero or more canonical AG-UI
// events. It is stateful and serves exactly one run.
type Translator interface {
	// Translate translates a single adapter event.
	Translate(ctx context.Context, evt event.Event) ([]event.Event, error)

	// Finish closes the stream when the adapter ends without a terminal
	// event, synthesizing RUN_FINISHED and ending any open message.
	Finish() []event.Event

	// RunError produces the terminal error frame for a failed run. It
	// returns nil when a terminal event was already emitted.
	RunError(message, code string) []event.Event

	// Terminated reports whether a terminal event has been emitted.
	Terminated() bool
}

// New creates a translator for one run. threadID is the request thread id
// used as fallback when adapter events carry none.
func New(ctx context.Context, threadID, runID string) Translator {
	if threadID == "" {
		threadID = "unknown"
	}
	return &translator{
		threadID: threadID,
		runID:    runID,
		buffer:   track.New(),
	}
}

type translator struct {
	threadID         string
	runID            string
	lastMessageID    string
	receivingMessage bool
	started          bool
	terminated       bool
	buffer           *track.Buffer
}

// Translate implements Translator.
func (t *translator) Translate(ctx context.Context, evt event.Event) ([]event.Event, error) {
	if evt == nil {
		return nil, errors.New("event is nil")
	}
	if t.terminated {
		// Everything after a terminal event is discarded.
		log.Debugf("translator: threadID: %s, runID: %s, dropping %s after terminal event",
			t.threadID, t.runID, evt.Type())
		return nil, nil
	}
	if err := evt.GetBaseEvent().Validate(); err != nil {
		log.Debugf("translator: threadID: %s, runID: %s, dropping unknown event: %v", t.threadID, t.runID, err)
		return nil, nil
	}

	var events []event.Event
	if !t.started && evt.Type() != event.TypeRunStarted {
		events = append(events, t.startRun())
	}

	switch e := evt.(type) {
	case *event.RunStartedEvent:
		if t.started {
			return events, nil
		}
		if e.ThreadID != "" {
			t.threadID = e.ThreadID
		}
		events = append(events, t.startRun())
	case *event.RunFinishedEvent:
		events = append(events, t.closeMessage()...)
		if e.ThreadID == "" {
			e.ThreadID = t.threadID
		}
		if e.RunID == "" {
			e.RunID = t.runID
		}
		events = append(events, e)
		t.terminate()
	case *event.RunErrorEvent:
		events = append(events, t.runError(e)...)
	case *event.TextMessageStartEvent:
		events = append(events, t.messageStart(e)...)
	case *event.TextMessageContentEvent:
		events = append(events, t.messageContent(e.MessageID, e.Delta, e.GetBaseEvent().RawEvent)...)
	case *event.TextMessageChunkEvent:
		events = append(events, t.messageContent(e.MessageID, e.Delta, e.GetBaseEvent().RawEvent)...)
	case *event.TextMessageEndEvent:
		if !t.receivingMessage {
			return events, nil
		}
		if e.MessageID == "" {
			e.MessageID = t.lastMessageID
		}
		t.receivingMessage = false
		events = append(events, e)
	case *event.ToolCallStartEvent:
		events = append(events, t.closeMessage()...)
		events = append(events, e)
		if args := initialToolArgs(e.GetBaseEvent().RawEvent); args != "" {
			// Record the fragment so later cumulative payloads reduce
			// against it.
			t.buffer.Delta(t.threadID, t.runID, track.KindToolArgs, e.ToolCallID, args)
			events = append(events, event.NewToolCallArgsEvent(e.ToolCallID, args))
		}
	case *event.ToolCallArgsEvent:
		events = append(events, t.toolArgs(e)...)
	default:
		// Pass-through for the remaining canonical kinds.
		events = append(events, evt)
	}
	return events, nil
}

// Finish implements Translator.
func (t *translator) Finish() []event.Event {
	if t.terminated {
		return nil
	}
	var events []event.Event
	if !t.started {
		events = append(events, t.startRun())
	}
	events = append(events, t.closeMessage()...)
	events = append(events, event.NewRunFinishedEvent(t.threadID, t.runID))
	t.terminate()
	return events
}

// RunError implements Translator.
func (t *translator) RunError(message, code string) []event.Event {
	if t.terminated {
		return nil
	}
	var events []event.Event
	if !t.started {
		events = append(events, t.startRun())
	}
	events = append(events, t.closeMessage()...)
	if code == "" {
		code = errs.CodeInternalError
	}
	events = append(events, event.NewRunErrorEvent(message,
		event.WithErrorCode(code),
		event.WithRunErrorIDs(t.threadID, t.runID)))
	t.terminate()
	return events
}

// Terminated implements Translator.
func (t *translator) Terminated() bool {
	return t.terminated
}

func (t *translator) startRun() event.Event {
	t.started = true
	return event.NewRunStartedEvent(t.threadID, t.runID)
}

func (t *translator) terminate() {
	t.terminated = true
	t.buffer.Drop(t.threadID, t.runID)
}

// runError repairs an adapter RUN_ERROR: a missing code is recovered from the
// message text when possible and defaults to INTERNAL_ERROR.
func (t *translator) runError(e *event.RunErrorEvent) []event.Event {
	message := e.Message
	code := ""
	if e.Code != nil {
		code = *e.Code
	}
	if code == "" {
		if parsedCode, parsedMsg, ok := errs.ParseEmbedded(message); ok {
			code, message = parsedCode, parsedMsg
		}
	}
	log.Errorf("translator: threadID: %s, runID: %s, run error: %s", t.threadID, t.runID, message)
	return t.RunError(message, code)
}

func (t *translator) messageStart(e *event.TextMessageStartEvent) []event.Event {
	if e.MessageID == "" {
		e.MessageID = t.fallbackMessageID()
	}
	var events []event.Event
	if t.receivingMessage && t.lastMessageID != e.MessageID {
		events = append(events, event.NewTextMessageEndEvent(t.lastMessageID))
	} else if t.receivingMessage {
		return nil
	}
	t.lastMessageID = e.MessageID
	t.receivingMessage = true
	events = append(events, e)
	return events
}

// messageContent handles both incremental deltas and cumulative payloads.
// A raw payload carrying data.chunk.content is treated as the cumulative text
// so far and reduced to its unseen suffix.
func (t *translator) messageContent(messageID, delta string, raw any) []event.Event {
	if messageID == "" {
		messageID = t.lastMessageID
	}
	if messageID == "" {
		messageID = t.fallbackMessageID()
	}
	if cumulative, ok := cumulativeContent(raw); ok {
		delta = t.buffer.Delta(t.threadID, t.runID, track.KindMessage, messageID, cumulative)
	}
	if delta == "" {
		return nil
	}
	var events []event.Event
	if t.receivingMessage && t.lastMessageID != messageID {
		events = append(events, event.NewTextMessageEndEvent(t.lastMessageID))
		t.receivingMessage = false
	}
	if !t.receivingMessage {
		t.lastMessageID = messageID
		t.receivingMessage = true
		events = append(events, event.NewTextMessageStartEvent(messageID, event.WithRole(event.RoleAssistant)))
	}
	events = append(events, event.NewTextMessageContentEvent(messageID, delta))
	return events
}

// toolArgs handles cumulative tool argument payloads the same way cumulative
// message content is. Incremental deltas pass through untouched.
func (t *translator) toolArgs(e *event.ToolCallArgsEvent) []event.Event {
	cumulative, ok := cumulativeToolArgs(e.GetBaseEvent().RawEvent)
	if !ok {
		return []event.Event{e}
	}
	delta := t.buffer.Delta(t.threadID, t.runID, track.KindToolArgs, e.ToolCallID, cumulative)
	if delta == "" {
		return nil
	}
	return []event.Event{event.NewToolCallArgsEvent(e.ToolCallID, delta)}
}

// closeMessage ends the message in progress, if any.
func (t *translator) closeMessage() []event.Event {
	if !t.receivingMessage {
		return nil
	}
	t.receivingMessage = false
	return []event.Event{event.NewTextMessageEndEvent(t.lastMessageID)}
}

// fallbackMessageID keeps deltas of an id-less message attached to one stable
// synthetic id for the whole run.
func (t *translator) fallbackMessageID() string {
	return fmt.Sprintf("%s:%s", t.threadID, t.runID)
}

// cumulativeContent extracts the cumulative message text from a raw adapter
// payload, when present at data.chunk.content.
func cumulativeContent(raw any) (string, bool) {
	body, ok := rawJSON(raw)
	if !ok {
		return "", false
	}
	res := gjson.GetBytes(body, "data.chunk.content")
	if !res.Exists() || res.Type != gjson.String {
		return "", false
	}
	return res.String(), true
}

// initialToolArgs extracts a leading arguments fragment attached to a raw
// tool call start payload at data.chunk.toolCallChunks.0.args.
func initialToolArgs(raw any) string {
	args, _ := cumulativeToolArgs(raw)
	return args
}

// cumulativeToolArgs extracts the arguments text carried in a raw tool call
// payload, when present.
func cumulativeToolArgs(raw any) (string, bool) {
	body, ok := rawJSON(raw)
	if !ok {
		return "", false
	}
	res := gjson.GetBytes(body, "data.chunk.toolCallChunks.0.args")
	if !res.Exists() || res.Type != gjson.String {
		return "", false
	}
	return res.String(), true
}

func rawJSON(raw any) ([]byte, bool) {
	switch v := raw.(type) {
	case nil:
		return nil, false
	case []byte:
		return v, true
	case string:
		return []byte(v), true
	case json.RawMessage:
		return v, true
	default:
		body, err := json.Marshal(v)
		if err != nil {
			return nil, false
		}
		return body, true
	}
}
