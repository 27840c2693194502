//
// Tencent is pleased to support the open source community by making cloudbase-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// cloudbase-agent-go is licensed under the Apache License Version 2.0.
//
//

package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

type codedErr struct{ code string }

func (e codedErr) Error() string { return "coded" }
func (e codedErr) Code() string  { return e.code }

type sdkErr struct{ code string }

func (e sdkErr) Error() string   { return "sdk" }
func (e sdkErr) ErrCode() string { return e.code }

type httpErr struct{ status int }

func (e httpErr) Error() string   { return "http" }
func (e httpErr) StatusCode() int { return e.status }

func TestCodeOf(t *testing.T) {
	assert.Equal(t, CodeInternalError, CodeOf(nil))
	assert.Equal(t, CodeInternalError, CodeOf(errors.New("plain")))
	assert.Equal(t, CodeInvalidRequest, CodeOf(NewInvalidRequest("bad")))
	assert.Equal(t, CodeRateLimitError, CodeOf(codedErr{code: CodeRateLimitError}))
	assert.Equal(t, "model_not_found", CodeOf(sdkErr{code: "model_not_found"}))
	assert.Equal(t, "429", CodeOf(httpErr{status: 429}))

	// Wrapped AgentError still resolves through the chain.
	wrapped := fmt.Errorf("calling provider: %w", NewUpstreamTimeout("deadline"))
	assert.Equal(t, CodeUpstreamTimeout, CodeOf(wrapped))
}

func TestStatusOf(t *testing.T) {
	assert.Equal(t, 400, StatusOf(NewInvalidRequest("bad")))
	assert.Equal(t, 429, StatusOf(NewInsufficientQuota("quota")))
	assert.Equal(t, 500, StatusOf(errors.New("plain")))
}

func TestParseEmbedded(t *testing.T) {
	tests := []struct {
		in       string
		wantCode string
		wantMsg  string
		wantOK   bool
	}{
		{"code: 4003, msg: quota exceeded", "4003", "quota exceeded", true},
		{"Error code: 429, msg: rate limited by provider", "429", "rate limited by provider", true},
		{`upstream said {"code":50002,"msg":"balance exhausted"}`, "50002", "balance exhausted", true},
		{`{"code":"AUTH","msg":"bad key"}`, "AUTH", "bad key", true},
		{"just a normal message", "", "", false},
		{`{"error":"no code member"}`, "", "", false},
	}
	for _, tt := range tests {
		code, msg, ok := ParseEmbedded(tt.in)
		assert.Equal(t, tt.wantOK, ok, tt.in)
		assert.Equal(t, tt.wantCode, code, tt.in)
		assert.Equal(t, tt.wantMsg, msg, tt.in)
	}
}

func TestSanitize(t *testing.T) {
	internal := NewInternalError("stack trace detail")
	got := Sanitize(internal, true)
	assert.NotEqual(t, internal.Message, got.Message)
	assert.Equal(t, CodeInternalError, got.Code)

	// 4xx and non-production pass through untouched.
	assert.Same(t, internal, Sanitize(internal, false))
	bad := NewInvalidRequest("missing messages")
	assert.Same(t, bad, Sanitize(bad, true))
}
