// Copyright (c) 2025 Ayga
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package bridge drives a single remote task from submission to a terminal
// outcome. A Bridge submits the task to an Executor, then polls the task
// handle with a geometric backoff until the result is ready, the caller
// deadline elapses, or the executor reports a failure.
//
// Every Run owns exactly one task handle and one poll loop. Runs share no
// mutable state, so a single Bridge may serve many concurrent invocations.
package bridge

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/pterm/pterm"

	"ayga/mcp/internal/bridge/model"
	apperr "ayga/mcp/internal/errors"
)

// DefaultTimeout is the polling deadline used when the caller supplies none.
const DefaultTimeout = 90 * time.Second

// MaxProgress caps the advisory progress estimate while a task is pending.
const MaxProgress = 0.95

// Executor is the remote side of the bridge.
type Executor interface {
	// Submit sends the task and returns the handle assigned by the executor.
	Submit(ctx context.Context, sub model.TaskSubmission) (model.TaskHandle, error)
	// Poll queries the handle once. Pending results are not errors.
	Poll(ctx context.Context, h model.TaskHandle) (model.PollOutcome, error)
}

// ProgressFunc receives a fractional progress estimate in [0, MaxProgress].
type ProgressFunc func(fraction float64)

// Bridge runs tasks against an Executor.
type Bridge struct {
	exec     Executor
	clock    Clock
	observer Observer
	logger   *pterm.Logger
	schedule func() backoff.BackOff
}

// Option configures a Bridge.
type Option func(*Bridge)

// WithClock replaces the wall clock, mainly for tests.
func WithClock(c Clock) Option {
	return func(b *Bridge) { b.clock = c }
}

// WithObserver reports polls and outcomes to o.
func WithObserver(o Observer) Option {
	return func(b *Bridge) {
		if o != nil {
			b.observer = o
		}
	}
}

// WithLogger enables debug logging of the poll loop.
func WithLogger(l *pterm.Logger) Option {
	return func(b *Bridge) {
		if l != nil {
			b.logger = l
		}
	}
}

// New creates a Bridge for exec.
func New(exec Executor, opts ...Option) *Bridge {
	b := &Bridge{
		exec:     exec,
		clock:    RealClock,
		observer: noopObserver{},
		logger:   pterm.DefaultLogger.WithLevel(pterm.LogLevelDisabled),
		schedule: NewSchedule,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Progress returns min(elapsed/timeout, MaxProgress), never negative.
func Progress(elapsed, timeout time.Duration) float64 {
	if timeout <= 0 || elapsed <= 0 {
		return 0
	}
	return min(float64(elapsed)/float64(timeout), MaxProgress)
}

// Run submits sub and polls for its result until one terminal state is
// reached. A non-positive timeout means DefaultTimeout. progress may be nil.
func (b *Bridge) Run(ctx context.Context, sub model.TaskSubmission, timeout time.Duration, progress ProgressFunc) Outcome {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	handle, err := b.exec.Submit(ctx, sub)
	if err != nil {
		if apperr.KindOf(err) == "" {
			err = apperr.Wrap(apperr.Submission, "failed to submit "+sub.TaskKind+" task", err)
		}
		return b.finish(ctx, sub, Outcome{State: StateFailed, Allowed: timeout, Err: err})
	}
	if handle.TaskID == "" {
		return b.finish(ctx, sub, Outcome{
			State:   StateFailed,
			Allowed: timeout,
			Err:     apperr.New(apperr.Submission, "executor returned no task_id"),
		})
	}
	b.logger.Debug("task submitted", b.logger.Args("task_kind", sub.TaskKind, "task_id", handle.TaskID, "timeout", timeout.String()))

	return b.poll(ctx, sub, handle, timeout, progress)
}

func (b *Bridge) poll(ctx context.Context, sub model.TaskSubmission, handle model.TaskHandle, timeout time.Duration, progress ProgressFunc) Outcome {
	start := b.clock.Now()
	sched := b.schedule()
	out := Outcome{TaskID: handle.TaskID, Allowed: timeout}

	for {
		out.Elapsed = b.clock.Now().Sub(start)
		if out.Elapsed > timeout {
			out.State = StateTimedOut
			out.Err = apperr.Newf(apperr.Timeout, "Task %s timed out after %ss", handle.TaskID, seconds(timeout))
			return b.finish(ctx, sub, out)
		}
		if err := ctx.Err(); err != nil {
			return b.cancelled(ctx, sub, out, err)
		}

		res, err := b.exec.Poll(ctx, handle)
		out.Polls++
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return b.cancelled(ctx, sub, out, ctxErr)
			}
			if apperr.KindOf(err) == "" {
				err = apperr.Wrap(apperr.Executor, "failed to fetch result for task "+handle.TaskID, err)
			}
			out.State = StateFailed
			out.Err = err
			out.Elapsed = b.clock.Now().Sub(start)
			return b.finish(ctx, sub, out)
		}

		b.observer.ObservePoll(ctx, PollEvent{
			TaskKind: sub.TaskKind,
			TaskID:   handle.TaskID,
			Attempt:  out.Polls,
			Ready:    res.Ready,
			Elapsed:  b.clock.Now().Sub(start),
		})

		if res.Ready {
			out.State = StateSucceeded
			out.Result = res.Result
			out.Elapsed = b.clock.Now().Sub(start)
			return b.finish(ctx, sub, out)
		}

		if progress != nil {
			progress(Progress(b.clock.Now().Sub(start), timeout))
		}

		delay := sched.NextBackOff()
		b.logger.Trace("task pending", b.logger.Args("task_id", handle.TaskID, "attempt", out.Polls, "next_delay", delay.String()))
		if err := b.clock.Sleep(ctx, delay); err != nil {
			return b.cancelled(ctx, sub, out, err)
		}
	}
}

func (b *Bridge) cancelled(ctx context.Context, sub model.TaskSubmission, out Outcome, cause error) Outcome {
	out.State = StateFailed
	out.Err = fmt.Errorf("task %s cancelled: %w", out.TaskID, cause)
	return b.finish(ctx, sub, out)
}

func (b *Bridge) finish(ctx context.Context, sub model.TaskSubmission, out Outcome) Outcome {
	b.observer.ObserveOutcome(ctx, OutcomeEvent{
		TaskKind: sub.TaskKind,
		TaskID:   out.TaskID,
		State:    out.State,
		Polls:    out.Polls,
		Elapsed:  out.Elapsed,
		Err:      out.Err,
	})
	if out.Err != nil {
		b.logger.Debug("task finished", b.logger.Args("task_kind", sub.TaskKind, "task_id", out.TaskID, "state", out.State.String(), "polls", out.Polls, "error", out.Err.Error()))
	} else {
		b.logger.Debug("task finished", b.logger.Args("task_kind", sub.TaskKind, "task_id", out.TaskID, "state", out.State.String(), "polls", out.Polls))
	}
	return out
}

func seconds(d time.Duration) string {
	return strconv.FormatFloat(d.Seconds(), 'f', -1, 64)
}
