//
// Tencent is pleased to support the open source community by making cloudbase-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// cloudbase-agent-go is licensed under the Apache License Version 2.0.
//
//

// Package agent defines the contract between the AG-UI server and the
// adapter-specific agents it hosts.
package agent

import (
	"context"

	"github.com/tencentcloudbase/cloudbase-agent-go/event"
)

// Agent runs one request and streams typed protocol events back. The returned
// channel is closed by the agent when the run ends; the server translates
// whatever arrived into a well-formed AG-UI stream regardless.
type Agent interface {
	Run(ctx context.Context, input *RunAgentInput) (<-chan event.Event, error)
}

// CleanupFunc releases per-run resources. The server calls it exactly once
// when the stream terminates, on every path including client disconnect.
type CleanupFunc func(ctx context.Context) error

// Factory builds the agent serving one request. cleanup may be nil.
type Factory func(ctx context.Context, input *RunAgentInput) (Agent, CleanupFunc, error)

// The AgentFunc type is an adapter to allow the use of ordinary functions as
// agents.
type AgentFunc func(ctx context.Context, input *RunAgentInput) (<-chan event.Event, error)

// Run calls f(ctx, input).
func (f AgentFunc) Run(ctx context.Context, input *RunAgentInput) (<-chan event.Event, error) {
	return f(ctx, input)
}
