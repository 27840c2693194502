//
// Tencent is pleased to support the open source community by making cloudbase-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// cloudbase-agent-go is licensed under the Apache License Version 2.0.
//
//

package agent

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tencentcloudbase/cloudbase-agent-go/errs"
)

func TestParseRunAgentInput(t *testing.T) {
	body := `{
		"threadId": "t1",
		"messages": [
			{"role": "user", "content": "hello"}
		],
		"tools": [
			{"name": "get_weather", "parameters": {"type": "object", "properties": {"city": {"type": "string"}}}}
		]
	}`
	input, err := ParseRunAgentInput(strings.NewReader(body))
	require.NoError(t, err)
	assert.Equal(t, "t1", input.ThreadID)
	assert.NotEmpty(t, input.RunID, "blank runId gets a generated id")
	assert.NotEmpty(t, input.Messages[0].ID, "blank message id gets a generated id")
	assert.NotNil(t, input.Context)
	assert.NotNil(t, input.State)
	assert.NotNil(t, input.ForwardedProps)
	assert.Equal(t, "hello", input.UserText())
}

func TestParseRunAgentInputErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"malformed json", `{"messages": [`, "Invalid field 'body'"},
		{"no messages", `{"messages": []}`, "Invalid field 'messages'"},
		{"bad role", `{"messages": [{"role": "robot", "content": "x"}]}`, "Invalid field 'messages.0.role'"},
		{"tool message without call id", `{"messages": [{"role": "tool", "content": "42"}]}`, "Invalid field 'messages.0.toolCallId'"},
		{"unnamed tool", `{"messages": [{"role": "user", "content": "x"}], "tools": [{"description": "no name"}]}`, "Invalid field 'tools.0.name'"},
		{"bad schema", `{"messages": [{"role": "user", "content": "x"}], "tools": [{"name": "f", "parameters": {"type": 12}}]}`, "Invalid field 'tools.0.parameters'"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRunAgentInput(strings.NewReader(tt.body))
			require.Error(t, err)
			var agentErr *errs.AgentError
			require.True(t, errors.As(err, &agentErr))
			assert.Equal(t, errs.CodeInvalidRequest, agentErr.Code)
			assert.Contains(t, agentErr.Message, tt.want)
		})
	}
}

func TestRunIDPreserved(t *testing.T) {
	input, err := ParseRunAgentInput(strings.NewReader(`{"runId": "r-42", "messages": [{"role": "user", "content": "x"}]}`))
	require.NoError(t, err)
	assert.Equal(t, "r-42", input.RunID)
}
