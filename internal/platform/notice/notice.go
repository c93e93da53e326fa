// Copyright (c) 2026 AnFr. All rights reserved.

// Package notice implements the user-facing message channel (toast feed).
//
// # Architecture
//
// Core components never render UI; they push short, human-readable notices
// describing the outcome of mutating operations (added, removed, failed).
// The presentation layer decides how to surface them: an embedding UI
// renders them as toasts, tests capture them with a [Recorder].
package notice

import (
	"log/slog"
	"sync"
)

// Level classifies a notice for presentation (toast variant).
type Level string

const (
	LevelSuccess Level = "success"
	LevelInfo    Level = "info"
	LevelError   Level = "error"
)

// Notice is a single toast-style message addressed to the current user.
type Notice struct {
	Level   Level  `json:"level"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

// Notifier receives notices emitted by core components.
//
// Implementations must be safe for concurrent use; components may push
// from whatever goroutine runs the operation.
type Notifier interface {
	Push(n Notice)
}

// # Helpers

// Success builds a success-level notice.
func Success(title, message string) Notice {
	return Notice{Level: LevelSuccess, Title: title, Message: message}
}

// Info builds an info-level notice.
func Info(title, message string) Notice {
	return Notice{Level: LevelInfo, Title: title, Message: message}
}

// Error builds an error-level notice.
func Error(title, message string) Notice {
	return Notice{Level: LevelError, Title: title, Message: message}
}

// # Sinks

// Recorder collects notices in memory so a caller can inspect what a
// component reported. Tests use it to assert on the toast feed.
type Recorder struct {
	mu      sync.Mutex
	notices []Notice
}

// Push implements [Notifier].
func (r *Recorder) Push(n Notice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, n)
}

// Notices returns a copy of everything pushed so far.
func (r *Recorder) Notices() []Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notice, len(r.notices))
	copy(out, r.notices)
	return out
}

// Last returns the most recent notice, or a zero Notice if none were pushed.
func (r *Recorder) Last() Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.notices) == 0 {
		return Notice{}
	}
	return r.notices[len(r.notices)-1]
}

// Discard is a Notifier that drops every notice. Useful where the caller
// has no user to address (background refreshes).
type Discard struct{}

// Push implements [Notifier].
func (Discard) Push(Notice) {}

// LogSink forwards notices to a structured logger. Used by headless callers
// that still want an audit trail of user-facing outcomes.
type LogSink struct {
	Logger *slog.Logger
}

// Push implements [Notifier].
func (s LogSink) Push(n Notice) {
	if s.Logger == nil {
		return
	}
	s.Logger.Info("user_notice",
		slog.String("level", string(n.Level)),
		slog.String("title", n.Title),
		slog.String("message", n.Message),
	)
}
