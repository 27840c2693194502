//
// Tencent is pleased to support the open source community by making cloudbase-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// cloudbase-agent-go is licensed under the Apache License Version 2.0.
//
//

package trace

import (
	"context"
	"os"
	"strings"
	"testing"
)

func TestServiceName(t *testing.T) {
	orig := os.Getenv("OTEL_SERVICE_NAME")
	defer func() { _ = os.Setenv("OTEL_SERVICE_NAME", orig) }()

	_ = os.Setenv("OTEL_SERVICE_NAME", "")
	if got := serviceName(); got != defaultServiceName {
		t.Fatalf("expected default service name, got %s", got)
	}
	_ = os.Setenv("OTEL_SERVICE_NAME", "my-bot")
	if got := serviceName(); got != "my-bot" {
		t.Fatalf("expected my-bot, got %s", got)
	}
}

func TestStdoutTracesEnabled(t *testing.T) {
	orig := os.Getenv("AUTO_TRACES_STDOUT")
	defer func() { _ = os.Setenv("AUTO_TRACES_STDOUT", orig) }()

	for _, v := range []string{"true", "1", "yes", "on", "TRUE", "On"} {
		_ = os.Setenv("AUTO_TRACES_STDOUT", v)
		if !stdoutTracesEnabled() {
			t.Fatalf("expected %q to enable stdout traces", v)
		}
	}
	for _, v := range []string{"", "false", "0", "off", "nope"} {
		_ = os.Setenv("AUTO_TRACES_STDOUT", v)
		if stdoutTracesEnabled() {
			t.Fatalf("expected %q to disable stdout traces", v)
		}
	}
}

// TestStartAndClean exercises the happy path of Start and the returned cleanup.
func TestStartAndClean(t *testing.T) {
	ctx := context.Background()
	clean, err := Start(ctx, WithServiceName("trace-test"))
	if err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	if clean == nil {
		t.Fatalf("expected non-nil cleanup function")
	}
	// Start a span to ensure Tracer is initialized.
	_, span := Tracer.Start(ctx, "test-span")
	span.End()
	if err := clean(); err != nil {
		t.Fatalf("clean returned error: %v", err)
	}
}

func TestInjectServerContext(t *testing.T) {
	ctx := context.Background()
	clean, err := Start(ctx, WithServiceName("trace-test"))
	if err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	defer func() { _ = clean() }()

	spanCtx, span := Tracer.Start(ctx, "inject-span")
	defer span.End()

	props := map[string]any{ServerContextKey: "stale inbound value"}
	InjectServerContext(spanCtx, props)

	serverCtx, ok := props[ServerContextKey].(map[string]any)
	if !ok {
		t.Fatalf("expected inbound value to be overwritten with a map, got %T", props[ServerContextKey])
	}
	tp, ok := serverCtx["traceparent"].(string)
	if !ok || !strings.HasPrefix(tp, "00-") {
		t.Fatalf("expected a traceparent entry, got %v", serverCtx)
	}
}
