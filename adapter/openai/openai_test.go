//
// Tencent is pleased to support the open source community by making cloudbase-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// cloudbase-agent-go is licensed under the Apache License Version 2.0.
//
//

package openai

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tencentcloudbase/cloudbase-agent-go/agent"
	"github.com/tencentcloudbase/cloudbase-agent-go/event"
)

// chunkServer replays canned chat-completions SSE chunks.
func chunkServer(t *testing.T, chunks []string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)
		w.Header().Set("Content-Type", "text/event-stream")
		for _, chunk := range chunks {
			fmt.Fprintf(w, "data: %s\n\n", chunk)
		}
		fmt.Fprint(w, "data: [DONE]\n\n")
	}))
}

func collect(t *testing.T, a *Agent, input *agent.RunAgentInput) []event.Event {
	t.Helper()
	ch, err := a.Run(context.Background(), input)
	require.NoError(t, err)
	var events []event.Event
	for evt := range ch {
		events = append(events, evt)
	}
	return events
}

func testInput() *agent.RunAgentInput {
	return &agent.RunAgentInput{
		ThreadID: "t1",
		RunID:    "r1",
		Messages: []event.Message{{ID: "m1", Role: event.RoleUser, Content: "hi"}},
	}
}

func TestStreamText(t *testing.T) {
	srv := chunkServer(t, []string{
		`{"id":"cmpl-1","object":"chat.completion.chunk","choices":[{"index":0,"delta":{"role":"assistant","content":"Hel"}}]}`,
		`{"id":"cmpl-1","object":"chat.completion.chunk","choices":[{"index":0,"delta":{"content":"lo"}}]}`,
		`{"id":"cmpl-1","object":"chat.completion.chunk","choices":[{"index":0,"delta":{},"finish_reason":"stop"}]}`,
	})
	defer srv.Close()

	a := New("test-model", WithAPIKey("k"), WithBaseURL(srv.URL+"/"))
	events := collect(t, a, testInput())

	require.NoError(t, event.ValidateSequence(events))
	var text string
	for _, evt := range events {
		if c, ok := evt.(*event.TextMessageContentEvent); ok {
			text += c.Delta
		}
	}
	assert.Equal(t, "Hello", text)
	assert.Equal(t, event.TypeRunFinished, events[len(events)-1].Type())
}

func TestStreamToolCall(t *testing.T) {
	srv := chunkServer(t, []string{
		`{"id":"cmpl-2","object":"chat.completion.chunk","choices":[{"index":0,"delta":{"tool_calls":[{"index":0,"id":"call-1","type":"function","function":{"name":"get_weather","arguments":""}}]}}]}`,
		`{"id":"cmpl-2","object":"chat.completion.chunk","choices":[{"index":0,"delta":{"tool_calls":[{"index":0,"function":{"arguments":"{\"city\":\"SZ\"}"}}]}}]}`,
		`{"id":"cmpl-2","object":"chat.completion.chunk","choices":[{"index":0,"delta":{},"finish_reason":"tool_calls"}]}`,
	})
	defer srv.Close()

	a := New("test-model", WithAPIKey("k"), WithBaseURL(srv.URL+"/"))
	input := testInput()
	input.Tools = []agent.Tool{{
		Name:       "get_weather",
		Parameters: map[string]any{"type": "object"},
	}}
	events := collect(t, a, input)

	require.NoError(t, event.ValidateSequence(events))
	var sawStart, sawArgs bool
	for _, evt := range events {
		switch e := evt.(type) {
		case *event.ToolCallStartEvent:
			sawStart = true
			assert.Equal(t, "call-1", e.ToolCallID)
			assert.Equal(t, "get_weather", e.ToolCallName)
		case *event.ToolCallArgsEvent:
			sawArgs = true
			assert.Equal(t, `{"city":"SZ"}`, e.Delta)
		}
	}
	assert.True(t, sawStart)
	assert.True(t, sawArgs)
}

func TestBackendErrorEmitsRunError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"model overloaded","type":"server_error"}}`, http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	a := New("test-model", WithAPIKey("k"), WithBaseURL(srv.URL+"/"))
	events := collect(t, a, testInput())

	require.NotEmpty(t, events)
	assert.Equal(t, event.TypeRunStarted, events[0].Type())
	last := events[len(events)-1]
	require.Equal(t, event.TypeRunError, last.Type())
	assert.Equal(t, "r1", last.(*event.RunErrorEvent).RunID)
}
