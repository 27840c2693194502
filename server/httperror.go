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
	"errors"
	"net/http"
	"os"

	json "github.com/goccy/go-json"

	"github.com/tencentcloudbase/cloudbase-agent-go/errs"
	"github.com/tencentcloudbase/cloudbase-agent-go/log"
)

// errorEnvelope is the HTTP-JSON error body used for failures that occur
// before the SSE stream opens.
type errorEnvelope struct {
	Error     errorBody `json:"error"`
	RequestID string    `json:"requestId"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// requestID extracts the client-supplied request id used for error
// correlation.
func requestID(r *http.Request) string {
	if id := r.Header.Get("X-Request-ID"); id != "" {
		return id
	}
	return "unknown"
}

// isProduction reports whether the process runs with production error
// sanitization.
func isProduction() bool {
	return os.Getenv("ENV") == "production"
}

// writeError sends the HTTP-JSON error envelope for a pre-stream failure.
// Client errors log at WARN, server errors at ERROR.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var agentErr *errs.AgentError
	if !errors.As(err, &agentErr) {
		agentErr = errs.NewInternalError(err.Error())
	}
	reqID := requestID(r)
	if agentErr.StatusCode >= http.StatusInternalServerError {
		log.Errorf("server: request %s failed: %s: %s", reqID, agentErr.Code, agentErr.Message)
	} else {
		log.Warnf("server: request %s rejected: %s: %s", reqID, agentErr.Code, agentErr.Message)
	}
	agentErr = errs.Sanitize(agentErr, isProduction())

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(agentErr.StatusCode)
	body := errorEnvelope{
		Error:     errorBody{Code: agentErr.Code, Message: agentErr.Message},
		RequestID: reqID,
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Warnf("server: request %s, error body write failed: %v", reqID, err)
	}
}
