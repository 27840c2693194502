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

	"github.com/tencentcloudbase/cloudbase-agent-go/event"
)

// sseWriter frames AG-UI events as server-sent events and flushes after every
// frame so clients observe them immediately.
type sseWriter struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

func newSSEWriter(w http.ResponseWriter) *sseWriter {
	flusher, _ := w.(http.Flusher)
	return &sseWriter{w: w, flusher: flusher}
}

// writeHeaders sends the SSE response headers and flushes them. After this
// point all failures must be reported in-band.
func (s *sseWriter) writeHeaders() {
	h := s.w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache, no-transform")
	h.Set("Connection", "keep-alive")
	h.Set("X-Accel-Buffering", "no")
	s.w.WriteHeader(http.StatusOK)
	s.flush()
}

// writeEvent writes one event as a data frame. A context or transport error
// means the client is gone and the stream must be abandoned.
func (s *sseWriter) writeEvent(ctx context.Context, evt event.Event) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	data, err := evt.ToJSON()
	if err != nil {
		return fmt.Errorf("serialize %s event: %w", evt.Type(), err)
	}
	if _, err := fmt.Fprintf(s.w, "data: %s\n\n", data); err != nil {
		return err
	}
	s.flush()
	return nil
}

func (s *sseWriter) flush() {
	if s.flusher != nil {
		s.flusher.Flush()
	}
}
