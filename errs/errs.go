//
// Tencent is pleased to support the open source community by making cloudbase-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// cloudbase-agent-go is licensed under the Apache License Version 2.0.
//
//

// Package errs defines the error taxonomy shared by the HTTP surface and the
// in-stream RUN_ERROR path.
package errs

import (
	"errors"
	"net/http"
	"strconv"
)

// Error codes recognized across the service.
const (
	CodeInvalidRequest         = "INVALID_REQUEST"
	CodeInternalError          = "INTERNAL_ERROR"
	CodeResourceNotFound       = "RESOURCE_NOT_FOUND"
	CodeAuthenticationError    = "AUTHENTICATION_ERROR"
	CodeRateLimitError         = "RATE_LIMIT_ERROR"
	CodeInsufficientQuota      = "INSUFFICIENT_QUOTA"
	CodeThirdPartyServiceError = "THIRD_PARTY_SERVICE_ERROR"
	CodeUpstreamUnavailable    = "UPSTREAM_UNAVAILABLE"
	CodeUpstreamTimeout        = "UPSTREAM_TIMEOUT"
)

// AgentError is a classified error carrying both a machine-readable code and
// the HTTP status to use when it surfaces before the stream starts.
type AgentError struct {
	Code       string
	Message    string
	StatusCode int
}

// Error implements the error interface.
func (e *AgentError) Error() string {
	return e.Message
}

// NewInvalidRequest reports a malformed or semantically invalid request.
func NewInvalidRequest(message string) *AgentError {
	return &AgentError{Code: CodeInvalidRequest, Message: message, StatusCode: http.StatusBadRequest}
}

// NewInternalError reports an unexpected server-side failure.
func NewInternalError(message string) *AgentError {
	return &AgentError{Code: CodeInternalError, Message: message, StatusCode: http.StatusInternalServerError}
}

// NewResourceNotFound reports a missing agent, bot or conversation resource.
func NewResourceNotFound(message string) *AgentError {
	return &AgentError{Code: CodeResourceNotFound, Message: message, StatusCode: http.StatusNotFound}
}

// NewAuthenticationError reports rejected credentials.
func NewAuthenticationError(message string) *AgentError {
	return &AgentError{Code: CodeAuthenticationError, Message: message, StatusCode: http.StatusUnauthorized}
}

// NewRateLimitError reports provider or local rate limiting.
func NewRateLimitError(message string) *AgentError {
	return &AgentError{Code: CodeRateLimitError, Message: message, StatusCode: http.StatusTooManyRequests}
}

// NewInsufficientQuota reports an exhausted provider quota or balance.
func NewInsufficientQuota(message string) *AgentError {
	return &AgentError{Code: CodeInsufficientQuota, Message: message, StatusCode: http.StatusTooManyRequests}
}

// NewThirdPartyServiceError reports a failure inside a downstream provider.
func NewThirdPartyServiceError(message string) *AgentError {
	return &AgentError{Code: CodeThirdPartyServiceError, Message: message, StatusCode: http.StatusBadGateway}
}

// NewUpstreamUnavailable reports an unreachable upstream service.
func NewUpstreamUnavailable(message string) *AgentError {
	return &AgentError{Code: CodeUpstreamUnavailable, Message: message, StatusCode: http.StatusBadGateway}
}

// NewUpstreamTimeout reports an upstream call that exceeded its deadline.
func NewUpstreamTimeout(message string) *AgentError {
	return &AgentError{Code: CodeUpstreamTimeout, Message: message, StatusCode: http.StatusGatewayTimeout}
}

// coder is implemented by errors that know their own string code.
type coder interface {
	Code() string
}

// errorCoder and errCoder are alternative spellings some SDK errors use.
type errorCoder interface {
	ErrorCode() string
}

type errCoder interface {
	ErrCode() string
}

// statusCoder is implemented by transport errors carrying an HTTP status.
type statusCoder interface {
	StatusCode() int
}

// CodeOf resolves the in-stream error code for an arbitrary error. It probes
// the error chain for an AgentError or one of the optional code interfaces and
// falls back to INTERNAL_ERROR.
func CodeOf(err error) string {
	if err == nil {
		return CodeInternalError
	}
	var agentErr *AgentError
	if errors.As(err, &agentErr) && agentErr.Code != "" {
		return agentErr.Code
	}
	var c coder
	if errors.As(err, &c) {
		if code := c.Code(); code != "" {
			return code
		}
	}
	var eoc errorCoder
	if errors.As(err, &eoc) {
		if code := eoc.ErrorCode(); code != "" {
			return code
		}
	}
	var ec errCoder
	if errors.As(err, &ec) {
		if code := ec.ErrCode(); code != "" {
			return code
		}
	}
	var sc statusCoder
	if errors.As(err, &sc) {
		if status := sc.StatusCode(); status != 0 {
			return strconv.Itoa(status)
		}
	}
	return CodeInternalError
}

// StatusOf resolves the HTTP status for an error surfaced before the SSE
// stream starts. Unclassified errors map to 500.
func StatusOf(err error) int {
	var agentErr *AgentError
	if errors.As(err, &agentErr) && agentErr.StatusCode != 0 {
		return agentErr.StatusCode
	}
	return http.StatusInternalServerError
}
