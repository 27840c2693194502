//
// Tencent is pleased to support the open source community by making cloudbase-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// cloudbase-agent-go is licensed under the Apache License Version 2.0.
//
//

// Package trace wires OpenTelemetry tracing for the AG-UI server and provides
// the bridge that forwards trace context to agents through forwardedProps.
package trace

import (
	"context"
	"os"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	sdkresource "go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	itrace "go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/tencentcloudbase/cloudbase-agent-go/log"
)

// ServerContextKey is the forwardedProps member holding the serialized trace
// context handed to agents. The server overwrites any inbound value.
const ServerContextKey = "__agui_server_context"

// defaultServiceName is used when OTEL_SERVICE_NAME is not set.
const defaultServiceName = "ag-ui-server"

// Tracer is the global tracer used across the server. It stays a no-op until
// Start succeeds.
var Tracer itrace.Tracer = noop.NewTracerProvider().Tracer("ag-ui-server")

var propagator = propagation.TraceContext{}

type options struct {
	serviceName string
	exporter    sdktrace.SpanExporter
}

// Option configures Start.
type Option func(*options)

// WithServiceName overrides the resource service name.
func WithServiceName(name string) Option {
	return func(o *options) {
		o.serviceName = name
	}
}

// WithExporter supplies a custom span exporter, replacing the
// environment-driven default.
func WithExporter(exp sdktrace.SpanExporter) Option {
	return func(o *options) {
		o.exporter = exp
	}
}

// Start initializes the tracer provider. Spans are exported to stdout when
// AUTO_TRACES_STDOUT is truthy; otherwise spans are recorded but not exported.
// The returned clean function flushes and shuts the provider down.
func Start(ctx context.Context, opt ...Option) (clean func() error, err error) {
	opts := options{serviceName: serviceName()}
	for _, o := range opt {
		o(&opts)
	}

	res, err := sdkresource.New(ctx,
		sdkresource.WithAttributes(semconv.ServiceName(opts.serviceName)),
	)
	if err != nil {
		return nil, err
	}

	providerOpts := []sdktrace.TracerProviderOption{sdktrace.WithResource(res)}
	exporter := opts.exporter
	if exporter == nil && stdoutTracesEnabled() {
		exporter, err = stdouttrace.New(stdouttrace.WithPrettyPrint())
		if err != nil {
			return nil, err
		}
	}
	if exporter != nil {
		providerOpts = append(providerOpts, sdktrace.WithBatcher(exporter))
	}

	provider := sdktrace.NewTracerProvider(providerOpts...)
	otel.SetTracerProvider(provider)
	otel.SetTextMapPropagator(propagator)
	Tracer = provider.Tracer(opts.serviceName)
	log.Debugf("trace: started, service: %s, stdout export: %t", opts.serviceName, exporter != nil)

	return func() error {
		flushCtx := context.Background()
		if err := provider.ForceFlush(flushCtx); err != nil {
			log.Warnf("trace: force flush failed: %v", err)
		}
		return provider.Shutdown(flushCtx)
	}, nil
}

// InjectServerContext serializes the current trace context into
// forwardedProps under ServerContextKey, overwriting any inbound value.
func InjectServerContext(ctx context.Context, forwardedProps map[string]any) {
	carrier := propagation.MapCarrier{}
	propagator.Inject(ctx, carrier)
	serverCtx := map[string]any{}
	for k, v := range carrier {
		serverCtx[k] = v
	}
	forwardedProps[ServerContextKey] = serverCtx
}

func serviceName() string {
	if name := os.Getenv("OTEL_SERVICE_NAME"); name != "" {
		return name
	}
	return defaultServiceName
}

// stdoutTracesEnabled reports whether AUTO_TRACES_STDOUT is truthy.
func stdoutTracesEnabled() bool {
	switch strings.ToLower(os.Getenv("AUTO_TRACES_STDOUT")) {
	case "true", "1", "yes", "on":
		return true
	}
	return false
}
