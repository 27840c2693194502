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
	"fmt"
	"io"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/tencentcloudbase/cloudbase-agent-go/errs"
	"github.com/tencentcloudbase/cloudbase-agent-go/event"
)

// RunAgentInput is the body of a send-message request: the conversation
// snapshot plus the tools, contextual strings and shared state the agent may
// use for this run.
type RunAgentInput struct {
	ThreadID       string          `json:"threadId,omitempty"`
	RunID          string          `json:"runId,omitempty"`
	Messages       []event.Message `json:"messages"`
	Tools          []Tool          `json:"tools"`
	Context        []Context       `json:"context"`
	State          map[string]any  `json:"state"`
	ForwardedProps map[string]any  `json:"forwardedProps"`
}

// Tool declares a function the agent may call, with JSON Schema parameters.
type Tool struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Parameters  map[string]any `json:"parameters,omitempty"`
}

// Context is one contextual string supplied by the front end.
type Context struct {
	Description string `json:"description"`
	Value       string `json:"value"`
}

var validRoles = map[string]bool{
	event.RoleSystem:    true,
	event.RoleUser:      true,
	event.RoleAssistant: true,
	event.RoleTool:      true,
}

// ParseRunAgentInput decodes, normalizes and validates a send-message body.
// All failures are reported as INVALID_REQUEST with the offending field named
// in the message.
func ParseRunAgentInput(r io.Reader) (*RunAgentInput, error) {
	var input RunAgentInput
	dec := json.NewDecoder(r)
	if err := dec.Decode(&input); err != nil {
		return nil, errs.NewInvalidRequest(fmt.Sprintf("Invalid field 'body': %v", err))
	}
	input.normalize()
	if err := input.validate(); err != nil {
		return nil, err
	}
	return &input, nil
}

// normalize fills defaults so that downstream code never sees nil collections
// or blank identifiers.
func (in *RunAgentInput) normalize() {
	if in.RunID == "" || strings.TrimSpace(in.RunID) == "" {
		in.RunID = uuid.NewString()
	}
	if in.Tools == nil {
		in.Tools = []Tool{}
	}
	if in.Context == nil {
		in.Context = []Context{}
	}
	if in.State == nil {
		in.State = map[string]any{}
	}
	if in.ForwardedProps == nil {
		in.ForwardedProps = map[string]any{}
	}
	for i := range in.Messages {
		if in.Messages[i].ID == "" {
			in.Messages[i].ID = uuid.NewString()
		}
	}
}

func (in *RunAgentInput) validate() error {
	if in.Messages == nil {
		return errs.NewInvalidRequest("Invalid field 'messages': field required")
	}
	if len(in.Messages) == 0 {
		return errs.NewInvalidRequest("Invalid field 'messages': at least one message is required")
	}
	for i, m := range in.Messages {
		if !validRoles[m.Role] {
			return errs.NewInvalidRequest(fmt.Sprintf("Invalid field 'messages.%d.role': unknown role %q", i, m.Role))
		}
		if m.Role == event.RoleTool && m.ToolCallID == "" {
			return errs.NewInvalidRequest(fmt.Sprintf("Invalid field 'messages.%d.toolCallId': required for tool messages", i))
		}
	}
	for i, tool := range in.Tools {
		if tool.Name == "" {
			return errs.NewInvalidRequest(fmt.Sprintf("Invalid field 'tools.%d.name': name is required", i))
		}
		if tool.Parameters != nil {
			if err := compileSchema(tool.Parameters); err != nil {
				return errs.NewInvalidRequest(fmt.Sprintf("Invalid field 'tools.%d.parameters': %v", i, err))
			}
		}
	}
	return nil
}

// compileSchema checks that a tool's parameters form a valid JSON Schema.
func compileSchema(params map[string]any) error {
	raw, err := json.Marshal(params)
	if err != nil {
		return err
	}
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(string(raw)))
	if err != nil {
		return err
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource("tool.json", doc); err != nil {
		return err
	}
	if _, err := c.Compile("tool.json"); err != nil {
		return err
	}
	return nil
}

// UserText returns the text of the most recent user message, or "".
func (in *RunAgentInput) UserText() string {
	for i := len(in.Messages) - 1; i >= 0; i-- {
		if in.Messages[i].Role == event.RoleUser {
			return in.Messages[i].ContentText()
		}
	}
	return ""
}
