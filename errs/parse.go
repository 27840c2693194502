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
	"regexp"
	"strings"

	"github.com/tidwall/gjson"
)

// codeMsgPattern matches provider errors flattened into text, for example
// "Error code: 429, msg: rate limited" or "code: 50002, msg: balance exhausted".
var codeMsgPattern = regexp.MustCompile(`code:\s*(\d+)\s*,\s*msg:\s*(.+)`)

// ParseEmbedded extracts a provider error code and message embedded in free
// text. It understands the "code: <num>, msg: <text>" convention and JSON
// bodies carrying "code" and "msg" members. ok is false when neither form is
// present.
func ParseEmbedded(message string) (code, msg string, ok bool) {
	if m := codeMsgPattern.FindStringSubmatch(message); m != nil {
		return m[1], strings.TrimSpace(m[2]), true
	}
	if start := strings.Index(message, "{"); start >= 0 {
		body := message[start:]
		if gjson.Valid(body) {
			c := gjson.Get(body, "code")
			m := gjson.Get(body, "msg")
			if c.Exists() && m.Exists() {
				return c.String(), m.String(), true
			}
		}
	}
	return "", "", false
}

// Sanitize rewrites server-side error messages for production responses.
// Codes mapping to 5xx statuses get generic text so that internal detail never
// reaches the client; 4xx messages pass through.
func Sanitize(err *AgentError, production bool) *AgentError {
	if !production || err.StatusCode < 500 {
		return err
	}
	return &AgentError{
		Code:       err.Code,
		Message:    "An internal error occurred. Please try again later.",
		StatusCode: err.StatusCode,
	}
}
