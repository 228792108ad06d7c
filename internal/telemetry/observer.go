// Copyright (c) 2025 Ayga
// Licensed under the MIT License. See LICENSE file in the project root for details.

package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"ayga/mcp/internal/bridge"
	apperr "ayga/mcp/internal/errors"
)

// Observer records poll-loop signals into OpenTelemetry. Polls become
// events on the span found in the context; outcomes feed the counters and
// the duration histogram.
type Observer struct {
	polls    metric.Int64Counter
	runs     metric.Int64Counter
	duration metric.Float64Histogram
}

// NewObserver creates an observer bound to meter.
func NewObserver(meter metric.Meter) (*Observer, error) {
	polls, err := meter.Int64Counter(
		"ayga.bridge.polls",
		metric.WithDescription("Number of result polls issued"),
	)
	if err != nil {
		return nil, err
	}
	runs, err := meter.Int64Counter(
		"ayga.bridge.runs",
		metric.WithDescription("Number of completed task runs by terminal state"),
	)
	if err != nil {
		return nil, err
	}
	duration, err := meter.Float64Histogram(
		"ayga.bridge.duration",
		metric.WithDescription("Time spent polling a task"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}
	return &Observer{polls: polls, runs: runs, duration: duration}, nil
}

// NewGlobalObserver binds an observer to the global meter provider.
func NewGlobalObserver() (*Observer, error) {
	return NewObserver(otel.GetMeterProvider().Meter(InstrumentationName))
}

// ObservePoll records one poll.
func (o *Observer) ObservePoll(ctx context.Context, ev bridge.PollEvent) {
	if o == nil {
		return
	}
	attrs := []attribute.KeyValue{
		attribute.String("task_kind", ev.TaskKind),
		attribute.Bool("ready", ev.Ready),
	}
	o.polls.Add(ctx, 1, metric.WithAttributes(attrs...))

	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		span.AddEvent("poll", trace.WithAttributes(append(attrs,
			attribute.String("task_id", ev.TaskID),
			attribute.Int("attempt", ev.Attempt),
			attribute.Float64("elapsed_s", ev.Elapsed.Seconds()),
		)...))
	}
}

// ObserveOutcome records the end of a run.
func (o *Observer) ObserveOutcome(ctx context.Context, ev bridge.OutcomeEvent) {
	if o == nil {
		return
	}
	attrs := []attribute.KeyValue{
		attribute.String("task_kind", ev.TaskKind),
		attribute.String("state", ev.State.String()),
	}
	if ev.Err != nil {
		attrs = append(attrs, attribute.String("error_kind", string(apperr.KindOf(ev.Err))))
	}
	opts := metric.WithAttributes(attrs...)
	o.runs.Add(ctx, 1, opts)
	o.duration.Record(ctx, ev.Elapsed.Seconds(), opts)

	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}
	span.SetAttributes(
		attribute.String("task_id", ev.TaskID),
		attribute.String("state", ev.State.String()),
		attribute.Int("polls", ev.Polls),
	)
	if ev.State != bridge.StateSucceeded && ev.Err != nil {
		span.SetStatus(codes.Error, apperr.Message(ev.Err))
	}
}

var _ bridge.Observer = (*Observer)(nil)
