//
// Tencent is pleased to support the open source community by making cloudbase-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// cloudbase-agent-go is licensed under the Apache License Version 2.0.
//
//

package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tencentcloudbase/cloudbase-agent-go/agent"
	"github.com/tencentcloudbase/cloudbase-agent-go/event"
)

func TestChatCompletionsMapsToRunAgentInput(t *testing.T) {
	var seen *agent.RunAgentInput
	factory := func(ctx context.Context, input *agent.RunAgentInput) (agent.Agent, agent.CleanupFunc, error) {
		seen = input
		return &scriptedAgent{events: []event.Event{
			event.NewRunFinishedEvent(input.ThreadID, input.RunID),
		}}, nil, nil
	}
	s := New(factory, WithOpenAICompat())

	body := `{
		"model": "gpt-4o",
		"temperature": 0.2,
		"stream": true,
		"messages": [
			{"role": "system", "content": "be brief"},
			{"role": "assistant", "content": null, "tool_calls": [
				{"id": "c1", "type": "function", "function": {"name": "get_weather", "arguments": "{\"city\":\"SZ\"}"}}
			]},
			{"role": "tool", "tool_call_id": "c1", "content": "sunny"},
			{"role": "user", "content": "thanks"}
		],
		"tools": [
			{"type": "function", "function": {"name": "get_weather", "parameters": {"type": "object"}}}
		]
	}`
	req := httptest.NewRequest(http.MethodPost, "/chat/completions", strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	require.NotNil(t, seen)
	_, err := uuid.Parse(seen.ThreadID)
	assert.NoError(t, err, "threadId generated when header absent")
	_, err = uuid.Parse(seen.RunID)
	assert.NoError(t, err)

	require.Len(t, seen.Messages, 4)
	assert.Equal(t, event.RoleSystem, seen.Messages[0].Role)
	require.Len(t, seen.Messages[1].ToolCalls, 1)
	assert.Equal(t, "get_weather", seen.Messages[1].ToolCalls[0].Function.Name)
	assert.Equal(t, "c1", seen.Messages[2].ToolCallID)
	require.Len(t, seen.Tools, 1)
	assert.Equal(t, "get_weather", seen.Tools[0].Name)

	frames := decodeFrames(t, rec.Body.String())
	assert.NoError(t, event.ValidateSequence(frames))
}

func TestChatCompletionsThreadIDHeader(t *testing.T) {
	var seen *agent.RunAgentInput
	factory := func(ctx context.Context, input *agent.RunAgentInput) (agent.Agent, agent.CleanupFunc, error) {
		seen = input
		return &scriptedAgent{events: []event.Event{
			event.NewRunFinishedEvent(input.ThreadID, input.RunID),
		}}, nil, nil
	}
	s := New(factory, WithOpenAICompat())

	req := httptest.NewRequest(http.MethodPost, "/v1/chat/completions",
		strings.NewReader(`{"model":"m","messages":[{"role":"user","content":"hi"}]}`))
	req.Header.Set("X-AGUI-Thread-ID", "thread-42")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, seen)
	assert.Equal(t, "thread-42", seen.ThreadID)
}

func TestChatCompletionsValidation(t *testing.T) {
	s := New(scriptedFactory(nil, nil), WithOpenAICompat())

	req := httptest.NewRequest(http.MethodPost, "/chat/completions", strings.NewReader(`{"model":"m"}`))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_REQUEST")
}

func TestChatCompletionsDisabledByDefault(t *testing.T) {
	s := New(scriptedFactory(nil, nil))
	req := httptest.NewRequest(http.MethodPost, "/chat/completions", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
