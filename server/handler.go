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
	"fmt"
	"net/http"

	"github.com/tencentcloudbase/cloudbase-agent-go/agent"
	"github.com/tencentcloudbase/cloudbase-agent-go/errs"
	"github.com/tencentcloudbase/cloudbase-agent-go/event"
	"github.com/tencentcloudbase/cloudbase-agent-go/log"
	"github.com/tencentcloudbase/cloudbase-agent-go/telemetry/trace"
	"github.com/tencentcloudbase/cloudbase-agent-go/translator"
)

// handleSendMessage drives one AG-UI run: validate, build the agent, open the
// SSE stream and pump translated events until a terminal frame.
func (s *Server) handleSendMessage(w http.ResponseWriter, r *http.Request) {
	streamed := false
	defer func() {
		if rec := recover(); rec != nil {
			// Before the stream opens a panic still maps to HTTP-JSON.
			// Afterwards the connection is gone either way; log and drop.
			err := errs.NewInternalError(fmt.Sprintf("%v", rec))
			if !streamed {
				writeError(w, r, err)
				return
			}
			log.Errorf("server: request %s panicked mid-stream: %v", requestID(r), rec)
		}
	}()

	input, err := agent.ParseRunAgentInput(r.Body)
	if err != nil {
		writeError(w, r, err)
		return
	}
	s.run(w, r, input, &streamed)
}

// run executes the shared post-validation pipeline for all ingress routes.
// streamed flips once SSE headers are flushed so the panic handler knows
// whether HTTP-JSON is still possible.
func (s *Server) run(w http.ResponseWriter, r *http.Request, input *agent.RunAgentInput, streamed *bool) {
	if s.opts.Preprocessor != nil {
		if err := s.opts.Preprocessor(r, input); err != nil {
			writeError(w, r, err)
			return
		}
	}

	ctx, span := trace.Tracer.Start(r.Context(), "agui.send_message")
	defer span.End()
	trace.InjectServerContext(ctx, input.ForwardedProps)

	ag, cleanup, err := s.factory(ctx, input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	defer s.runCleanup(ctx, cleanup, input.RunID)

	sse := newSSEWriter(w)
	sse.writeHeaders()
	*streamed = true

	s.stream(ctx, sse, ag, input)
}

// stream consumes the adapter event channel and writes the canonical stream.
// All failures from here on are reported in-band as RUN_ERROR.
func (s *Server) stream(ctx context.Context, sse *sseWriter, ag agent.Agent, input *agent.RunAgentInput) {
	tr := translator.New(ctx, input.ThreadID, input.RunID)

	ch, err := ag.Run(ctx, input)
	if err != nil {
		s.emit(ctx, sse, tr.RunError(err.Error(), errs.CodeOf(err)), input.RunID)
		return
	}

	for evt := range ch {
		if msg, code, ok := translator.Detect(evt); ok {
			s.emit(ctx, sse, tr.RunError(msg, code), input.RunID)
			return
		}
		events, err := tr.Translate(ctx, evt)
		if err != nil {
			s.emit(ctx, sse, tr.RunError(err.Error(), errs.CodeOf(err)), input.RunID)
			return
		}
		if !s.emit(ctx, sse, events, input.RunID) {
			return
		}
		if tr.Terminated() {
			return
		}
	}
	// Channel closed without a terminal event.
	s.emit(ctx, sse, tr.Finish(), input.RunID)
}

// emit writes a batch of events, reporting whether the stream is still alive.
func (s *Server) emit(ctx context.Context, sse *sseWriter, events []event.Event, runID string) bool {
	for _, evt := range events {
		if err := sse.writeEvent(ctx, evt); err != nil {
			log.Warnf("server: runID: %s, stream write aborted: %v", runID, err)
			return false
		}
	}
	return true
}

// runCleanup invokes the per-run cleanup exactly once, on every exit path
// including client disconnect and panic. Cleanup errors are logged, never
// propagated.
func (s *Server) runCleanup(ctx context.Context, cleanup agent.CleanupFunc, runID string) {
	if cleanup == nil {
		return
	}
	if err := cleanup(ctx); err != nil {
		log.Warnf("server: runID: %s, cleanup failed: %v", runID, err)
	}
}
