// Copyright (c) 2025 Ayga
// Licensed under the MIT License. See LICENSE file in the project root for details.

package bridge

import (
	"context"
	"encoding/json"
	"time"
)

// State is the terminal state of a Run.
type State int

const (
	StateSucceeded State = iota + 1
	StateTimedOut
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateSucceeded:
		return "succeeded"
	case StateTimedOut:
		return "timed_out"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// Outcome is the single terminal result of a Run.
type Outcome struct {
	State State
	// TaskID is empty only when submission failed.
	TaskID string
	// Result is the executor payload, passed through unaltered. Set only on success.
	Result json.RawMessage
	// Elapsed is the time spent polling; Allowed is the caller deadline.
	Elapsed time.Duration
	Allowed time.Duration
	Polls   int
	// Err carries the cause for StateTimedOut and StateFailed.
	Err error
}

// Succeeded reports whether the task finished with a result.
func (o Outcome) Succeeded() bool { return o.State == StateSucceeded }

// PollEvent describes one completed poll.
type PollEvent struct {
	TaskKind string
	TaskID   string
	Attempt  int
	Ready    bool
	Elapsed  time.Duration
}

// OutcomeEvent describes the end of a Run.
type OutcomeEvent struct {
	TaskKind string
	TaskID   string
	State    State
	Polls    int
	Elapsed  time.Duration
	Err      error
}

// Observer receives poll-loop events. Implementations must be safe for concurrent use.
type Observer interface {
	ObservePoll(ctx context.Context, ev PollEvent)
	ObserveOutcome(ctx context.Context, ev OutcomeEvent)
}

type noopObserver struct{}

func (noopObserver) ObservePoll(context.Context, PollEvent)       {}
func (noopObserver) ObserveOutcome(context.Context, OutcomeEvent) {}
