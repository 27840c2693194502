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
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWireForm(t *testing.T) {
	evt := NewTextMessageContentEvent("msg-1", "hello")
	data, err := evt.ToJSON()
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))
	assert.Equal(t, "TEXT_MESSAGE_CONTENT", m["type"])
	assert.Equal(t, "msg-1", m["messageId"])
	assert.Equal(t, "hello", m["delta"])
	assert.Contains(t, m, "timestamp")
	assert.NotContains(t, m, "rawEvent")
}

func TestRunErrorWireForm(t *testing.T) {
	evt := NewRunErrorEvent("boom",
		WithErrorCode("INTERNAL_ERROR"),
		WithRunErrorIDs("t1", "r1"))
	data, err := evt.ToJSON()
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))
	assert.Equal(t, "RUN_ERROR", m["type"])
	assert.Equal(t, "boom", m["message"])
	assert.Equal(t, "INTERNAL_ERROR", m["code"])
	assert.Equal(t, "t1", m["threadId"])
	assert.Equal(t, "r1", m["runId"])

	// Without a code the field is omitted entirely.
	data, err = NewRunErrorEvent("boom").ToJSON()
	require.NoError(t, err)
	m = nil
	require.NoError(t, json.Unmarshal(data, &m))
	assert.NotContains(t, m, "code")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		evt     Event
		wantErr bool
	}{
		{"run started ok", NewRunStartedEvent("t1", "r1"), false},
		{"run started missing thread", NewRunStartedEvent("", "r1"), true},
		{"run error missing message", NewRunErrorEvent(""), true},
		{"text start ok", NewTextMessageStartEvent("m1"), false},
		{"text start missing id", NewTextMessageStartEvent(""), true},
		{"text content empty delta", NewTextMessageContentEvent("m1", ""), true},
		{"tool start missing name", NewToolCallStartEvent("c1", ""), true},
		{"tool result ok", NewToolCallResultEvent("m1", "c1", "42"), false},
		{"custom missing name", NewCustomEvent(""), true},
		{"state snapshot nil", NewStateSnapshotEvent(nil), true},
		{"state delta bad op", NewStateDeltaEvent([]JSONPatchOperation{{Op: "merge", Path: "/x"}}), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.evt.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFromJSON(t *testing.T) {
	evt, err := FromJSON([]byte(`{"type":"TOOL_CALL_START","toolCallId":"c1","toolCallName":"get_weather","parentMessageId":"m1"}`))
	require.NoError(t, err)
	start, ok := evt.(*ToolCallStartEvent)
	require.True(t, ok)
	assert.Equal(t, "c1", start.ToolCallID)
	assert.Equal(t, "get_weather", start.ToolCallName)
	assert.Equal(t, "m1", start.ParentMessageID)

	_, err = FromJSON([]byte(`{"type":"NOT_A_THING"}`))
	require.ErrorIs(t, err, ErrUnknownEventType)

	_, err = FromJSON([]byte(`{"type":`))
	require.Error(t, err)
}

func TestValidateSequence(t *testing.T) {
	good := []Event{
		NewRunStartedEvent("t1", "r1"),
		NewTextMessageStartEvent("m1"),
		NewTextMessageContentEvent("m1", "hi"),
		NewTextMessageEndEvent("m1"),
		NewRunFinishedEvent("t1", "r1"),
	}
	assert.NoError(t, ValidateSequence(good))

	noStart := []Event{
		NewTextMessageStartEvent("m1"),
		NewTextMessageEndEvent("m1"),
		NewRunFinishedEvent("t1", "r1"),
	}
	assert.Error(t, ValidateSequence(noStart))

	danglingMessage := []Event{
		NewRunStartedEvent("t1", "r1"),
		NewTextMessageStartEvent("m1"),
		NewRunFinishedEvent("t1", "r1"),
	}
	assert.Error(t, ValidateSequence(danglingMessage))

	afterTerminal := []Event{
		NewRunStartedEvent("t1", "r1"),
		NewRunFinishedEvent("t1", "r1"),
		NewTextMessageStartEvent("m1"),
	}
	assert.Error(t, ValidateSequence(afterTerminal))
}

func TestMessageContentText(t *testing.T) {
	m := &Message{Content: "plain"}
	assert.Equal(t, "plain", m.ContentText())

	m = &Message{Content: []any{
		map[string]any{"type": "text", "text": "hello "},
		map[string]any{"type": "image_url", "image_url": map[string]any{"url": "https://x"}},
		map[string]any{"type": "text", "text": "world"},
	}}
	assert.Equal(t, "hello world", m.ContentText())

	m = &Message{}
	assert.Equal(t, "", m.ContentText())
}
