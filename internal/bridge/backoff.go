// Copyright (c) 2025 Ayga
// Licensed under the MIT License. See LICENSE file in the project root for details.

package bridge

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Poll schedule: 1s, then x1.2 after every pending poll, capped at 3s.
const (
	InitialDelay    = 1 * time.Second
	DelayMultiplier = 1.2
	MaxDelay        = 3 * time.Second
)

// NewSchedule returns the deterministic delay sequence used between polls.
// Randomization is disabled and there is no elapsed-time cap; the caller
// deadline is enforced by the poll loop itself.
func NewSchedule() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = InitialDelay
	b.RandomizationFactor = 0
	b.Multiplier = DelayMultiplier
	b.MaxInterval = MaxDelay
	b.MaxElapsedTime = 0
	b.Reset()
	return b
}

// Clock abstracts time for the poll loop.
type Clock interface {
	Now() time.Time
	// Sleep blocks for d or until ctx is done, returning ctx.Err() in the latter case.
	Sleep(ctx context.Context, d time.Duration) error
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func (realClock) Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// RealClock is the wall clock.
var RealClock Clock = realClock{}
