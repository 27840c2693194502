//
// Tencent is pleased to support the open source community by making cloudbase-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// cloudbase-agent-go is licensed under the Apache License Version 2.0.
//
//

// Package track converts cumulative streaming payloads into incremental
// deltas, keyed per run so concurrent streams never interfere.
package track

import (
	"strings"
	"sync"
)

// Kind separates the independent cumulative channels within one run.
type Kind string

// Tracked channel kinds.
const (
	KindMessage  Kind = "message"
	KindThinking Kind = "thinking"
	KindToolArgs Kind = "toolArgs"
)

type key struct {
	threadID string
	runID    string
	kind     Kind
	itemID   string
}

// Buffer remembers the last cumulative value seen per run and channel and
// yields only the newly appended suffix. Safe for concurrent use.
type Buffer struct {
	mu   sync.Mutex
	last map[key]string
}

// New creates an empty buffer.
func New() *Buffer {
	return &Buffer{last: make(map[key]string)}
}

// Delta returns the suffix of cumulative not yet emitted for the given run,
// channel and item. When cumulative does not extend the previous value the
// channel resets and the whole value is returned.
func (b *Buffer) Delta(threadID, runID string, kind Kind, itemID, cumulative string) string {
	k := key{threadID: threadID, runID: runID, kind: kind, itemID: itemID}
	b.mu.Lock()
	defer b.mu.Unlock()
	prev := b.last[k]
	b.last[k] = cumulative
	if strings.HasPrefix(cumulative, prev) {
		return cumulative[len(prev):]
	}
	return cumulative
}

// Drop forgets all state held for one run. Called when the run reaches a
// terminal event so the buffer never grows across requests.
func (b *Buffer) Drop(threadID, runID string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for k := range b.last {
		if k.threadID == threadID && k.runID == runID {
			delete(b.last, k)
		}
	}
}
