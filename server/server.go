//
// Tencent is pleased to support the open source community by making cloudbase-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// cloudbase-agent-go is licensed under the Apache License Version 2.0.
//
//

// Package server exposes agents over HTTP as AG-UI SSE streams.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/tencentcloudbase/cloudbase-agent-go/agent"
	"github.com/tencentcloudbase/cloudbase-agent-go/log"
)

// Server routes send-message requests to an agent factory and streams the
// resulting AG-UI events back over SSE.
type Server struct {
	factory    agent.Factory
	router     *mux.Router
	opts       Options
	httpServer *http.Server
}

// New creates a server for the given agent factory. The behaviour is tweaked
// via functional options.
func New(factory agent.Factory, opt ...Option) *Server {
	opts := Options{
		Address:     ":8000",
		ServiceName: "ag-ui-server",
	}
	for _, o := range opt {
		o(&opts)
	}
	s := &Server{
		factory: factory,
		router:  mux.NewRouter(),
		opts:    opts,
	}

	corsOpts := cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"Content-Length", "Content-Type"},
	}
	if opts.CORS != nil {
		corsOpts = *opts.CORS
	}
	s.router.Use(cors.New(corsOpts).Handler)
	s.registerRoutes()
	return s
}

// registerRoutes sets up the send-message routes plus the optional health and
// OpenAI compatibility endpoints.
func (s *Server) registerRoutes() {
	base := strings.TrimSuffix(s.opts.BasePath, "/")
	s.router.HandleFunc(base+"/send-message", s.handleSendMessage).Methods(http.MethodPost)
	if base == "" {
		// Bot-scoped route kept for platform compatibility. The agent id is
		// accepted and ignored.
		s.router.HandleFunc("/v1/aibot/bots/{agentId}/send-message", s.handleSendMessage).
			Methods(http.MethodPost)
	}
	if s.opts.Healthz {
		s.router.HandleFunc(base+"/healthz", s.handleHealthz).Methods(http.MethodGet)
	}
	if s.opts.OpenAICompat {
		s.router.HandleFunc(base+"/chat/completions", s.handleChatCompletions).Methods(http.MethodPost)
		if base == "" {
			s.router.HandleFunc("/v1/chat/completions", s.handleChatCompletions).Methods(http.MethodPost)
		}
	}
}

// Handler returns the HTTP handler, for mounting the server into an existing
// http.Server or test harness.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Serve starts the HTTP server and blocks until it stops.
func (s *Server) Serve(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:        s.opts.Address,
		Handler:     s.router,
		BaseContext: func(net.Listener) context.Context { return ctx },
	}
	log.Infof("server: %s listening on %s", s.opts.ServiceName, s.opts.Address)
	err := s.httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Close gracefully shuts the server down.
func (s *Server) Close(ctx context.Context) error {
	if s.httpServer == nil {
		return errors.New("http server not running")
	}
	return s.httpServer.Shutdown(ctx)
}
