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
	"net/http"
	"runtime"
	"time"

	json "github.com/goccy/go-json"

	"github.com/tencentcloudbase/cloudbase-agent-go/log"
)

// healthResponse is the body of the healthz endpoint.
type healthResponse struct {
	Status    string         `json:"status"`
	Timestamp string         `json:"timestamp"`
	Service   string         `json:"service"`
	Version   string         `json:"version,omitempty"`
	GoVersion string         `json:"goVersion"`
	BasePath  string         `json:"basePath"`
	AgentInfo map[string]any `json:"agentInfo,omitempty"`
	Custom    any            `json:"custom,omitempty"`
	Error     string         `json:"error,omitempty"`
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Service:   s.opts.ServiceName,
		Version:   s.opts.ServiceVersion,
		GoVersion: runtime.Version(),
		BasePath:  s.opts.BasePath,
		AgentInfo: s.opts.AgentInfo,
	}
	status := http.StatusOK
	if s.opts.HealthCheck != nil {
		custom, err := s.opts.HealthCheck(r.Context())
		resp.Custom = custom
		if err != nil {
			resp.Status = "unhealthy"
			resp.Error = err.Error()
			status = http.StatusServiceUnavailable
			log.Warnf("server: health check failed: %v", err)
		}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Warnf("server: health body write failed: %v", err)
	}
}
