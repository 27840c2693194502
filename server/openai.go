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
	"fmt"
	"net/http"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/tencentcloudbase/cloudbase-agent-go/agent"
	"github.com/tencentcloudbase/cloudbase-agent-go/errs"
	"github.com/tencentcloudbase/cloudbase-agent-go/event"
	"github.com/tencentcloudbase/cloudbase-agent-go/log"
)

// threadIDHeader carries the AG-UI thread id on chat-completions requests,
// since the OpenAI wire form has no thread concept.
const threadIDHeader = "X-AGUI-Thread-ID"

// chatCompletionsRequest is the subset of the OpenAI chat-completions body the
// shim understands. Sampling parameters are accepted and discarded.
type chatCompletionsRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Tools    []chatTool    `json:"tools,omitempty"`
	Stream   bool          `json:"stream,omitempty"`
}

type chatMessage struct {
	Role       string         `json:"role"`
	Content    any            `json:"content,omitempty"`
	Name       string         `json:"name,omitempty"`
	ToolCalls  []chatToolCall `json:"tool_calls,omitempty"`
	ToolCallID string         `json:"tool_call_id,omitempty"`
}

type chatToolCall struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Function struct {
		Name      string `json:"name"`
		Arguments string `json:"arguments"`
	} `json:"function"`
}

type chatTool struct {
	Type     string `json:"type"`
	Function struct {
		Name        string         `json:"name"`
		Description string         `json:"description,omitempty"`
		Parameters  map[string]any `json:"parameters,omitempty"`
	} `json:"function"`
}

// handleChatCompletions accepts an OpenAI-style request and serves it through
// the same AG-UI SSE pipeline as send-message.
func (s *Server) handleChatCompletions(w http.ResponseWriter, r *http.Request) {
	streamed := false
	defer func() {
		if rec := recover(); rec != nil {
			err := errs.NewInternalError(fmt.Sprintf("%v", rec))
			if !streamed {
				writeError(w, r, err)
				return
			}
			log.Errorf("server: request %s panicked mid-stream: %v", requestID(r), rec)
		}
	}()

	var req chatCompletionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, errs.NewInvalidRequest(fmt.Sprintf("Invalid field 'body': %v", err)))
		return
	}
	input, err := convertChatCompletions(&req, r.Header.Get(threadIDHeader))
	if err != nil {
		writeError(w, r, err)
		return
	}
	s.run(w, r, input, &streamed)
}

// convertChatCompletions maps the OpenAI request onto a validated
// RunAgentInput. model and sampling parameters are discarded.
func convertChatCompletions(req *chatCompletionsRequest, threadID string) (*agent.RunAgentInput, error) {
	if len(req.Messages) == 0 {
		return nil, errs.NewInvalidRequest("Invalid field 'messages': at least one message is required")
	}
	if threadID == "" {
		threadID = uuid.NewString()
	}
	input := &agent.RunAgentInput{
		ThreadID:       threadID,
		RunID:          uuid.NewString(),
		Messages:       make([]event.Message, 0, len(req.Messages)),
		Tools:          make([]agent.Tool, 0, len(req.Tools)),
		Context:        []agent.Context{},
		State:          map[string]any{},
		ForwardedProps: map[string]any{},
	}
	for i, m := range req.Messages {
		msg := event.Message{
			ID:         uuid.NewString(),
			Role:       m.Role,
			Content:    m.Content,
			Name:       m.Name,
			ToolCallID: m.ToolCallID,
		}
		for _, tc := range m.ToolCalls {
			msg.ToolCalls = append(msg.ToolCalls, event.ToolCall{
				ID:   tc.ID,
				Type: tc.Type,
				Function: event.FunctionCall{
					Name:      tc.Function.Name,
					Arguments: tc.Function.Arguments,
				},
			})
		}
		if msg.Role == event.RoleTool && msg.ToolCallID == "" {
			return nil, errs.NewInvalidRequest(
				fmt.Sprintf("Invalid field 'messages.%d.tool_call_id': required for tool messages", i))
		}
		input.Messages = append(input.Messages, msg)
	}
	for i, t := range req.Tools {
		if t.Function.Name == "" {
			return nil, errs.NewInvalidRequest(fmt.Sprintf("Invalid field 'tools.%d.function.name': name is required", i))
		}
		input.Tools = append(input.Tools, agent.Tool{
			Name:        t.Function.Name,
			Description: t.Function.Description,
			Parameters:  t.Function.Parameters,
		})
	}
	return input, nil
}
