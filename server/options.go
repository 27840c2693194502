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

	"github.com/rs/cors"

	"github.com/tencentcloudbase/cloudbase-agent-go/agent"
)

// Preprocessor mutates a validated input before the agent runs, typically to
// copy authenticated request data into forwardedProps.
type Preprocessor func(r *http.Request, input *agent.RunAgentInput) error

// HealthCheck is a custom probe run by the health endpoint. The returned
// value, if any, is exposed as the document's custom member; a non-nil error
// marks the service unhealthy.
type HealthCheck func(ctx context.Context) (any, error)

// Options holds the server configuration.
type Options struct {
	Address        string
	BasePath       string
	ServiceName    string
	ServiceVersion string
	CORS           *cors.Options
	Healthz        bool
	OpenAICompat   bool
	Preprocessor   Preprocessor
	HealthCheck    HealthCheck
	AgentInfo      map[string]any
}

// Option configures the server.
type Option func(*Options)

// WithAddress sets the listen address for Serve. Defaults to ":8000".
func WithAddress(address string) Option {
	return func(o *Options) { o.Address = address }
}

// WithBasePath mounts all routes under the given prefix. When set, only the
// prefixed send-message route is registered.
func WithBasePath(basePath string) Option {
	return func(o *Options) { o.BasePath = basePath }
}

// WithServiceName sets the service name reported by the health endpoint.
func WithServiceName(name string) Option {
	return func(o *Options) { o.ServiceName = name }
}

// WithServiceVersion sets the service version reported by the health endpoint.
func WithServiceVersion(version string) Option {
	return func(o *Options) { o.ServiceVersion = version }
}

// WithCORS overrides the default permissive CORS policy.
func WithCORS(opts cors.Options) Option {
	return func(o *Options) { o.CORS = &opts }
}

// WithHealthz enables the GET healthz endpoint.
func WithHealthz() Option {
	return func(o *Options) { o.Healthz = true }
}

// WithOpenAICompat enables the POST chat/completions compatibility endpoint.
func WithOpenAICompat() Option {
	return func(o *Options) { o.OpenAICompat = true }
}

// WithRequestPreprocessor installs a hook run after validation and before the
// agent factory.
func WithRequestPreprocessor(p Preprocessor) Option {
	return func(o *Options) { o.Preprocessor = p }
}

// WithHealthCheck installs a custom probe evaluated by the health endpoint.
func WithHealthCheck(check HealthCheck) Option {
	return func(o *Options) { o.HealthCheck = check }
}

// WithAgentInfo attaches static agent metadata to health responses.
func WithAgentInfo(info map[string]any) Option {
	return func(o *Options) { o.AgentInfo = info }
}
