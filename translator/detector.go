//
// Tencent is pleased to support the open source community by making cloudbase-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// cloudbase-agent-go is licensed under the Apache License Version 2.0.
//
//

package translator

import (
	"github.com/tidwall/gjson"

	"github.com/tencentcloudbase/cloudbase-agent-go/errs"
	"github.com/tencentcloudbase/cloudbase-agent-go/event"
)

// failedFinishReasons are provider finish reasons that signal a failed
// generation rather than a normal stop.
var failedFinishReasons = map[string]bool{
	"error":          true,
	"failed":         true,
	"content_filter": true,
}

// Detect inspects an adapter event for provider errors hidden inside
// normal-looking payloads. On a hit the stream must terminate with RUN_ERROR
// built from the returned message and code.
func Detect(evt event.Event) (message, code string, ok bool) {
	switch e := evt.(type) {
	case *event.TextMessageContentEvent:
		return detectInContent(e.Delta, e.GetBaseEvent().RawEvent)
	case *event.TextMessageChunkEvent:
		return detectInContent(e.Delta, e.GetBaseEvent().RawEvent)
	case *event.RawEvent:
		return detectInRaw(e)
	}
	return "", "", false
}

// detectInContent matches error payloads flattened into message content.
// Cumulative adapters carry the text in the raw payload rather than the delta,
// so both channels are checked.
func detectInContent(delta string, raw any) (string, string, bool) {
	if code, msg, ok := errs.ParseEmbedded(delta); ok {
		return msg, code, true
	}
	if cumulative, ok := cumulativeContent(raw); ok {
		if code, msg, ok := errs.ParseEmbedded(cumulative); ok {
			return msg, code, true
		}
	}
	return "", "", false
}

// detectInRaw inspects a passthrough payload for a lastError substructure or
// a failed finish reason.
func detectInRaw(e *event.RawEvent) (string, string, bool) {
	body, ok := rawJSON(e.Event)
	if !ok {
		return "", "", false
	}
	if lastErr := gjson.GetBytes(body, "lastError"); lastErr.Exists() {
		msg := lastErr.Get("message").String()
		if msg == "" {
			msg = lastErr.Raw
		}
		code := lastErr.Get("code").String()
		if code == "" {
			code = errs.CodeThirdPartyServiceError
		}
		return msg, code, true
	}
	if reason := gjson.GetBytes(body, "finishReason"); reason.Exists() && failedFinishReasons[reason.String()] {
		return "generation finished with reason " + reason.String(), errs.CodeThirdPartyServiceError, true
	}
	return "", "", false
}
