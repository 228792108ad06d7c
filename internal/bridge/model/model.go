// Copyright (c) 2025 Ayga
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package model defines the data shapes shared by the tool registry, the
// completion bridge and the executor client. The registry produces a
// TaskSubmission, the executor turns it into a TaskHandle, and each poll of
// that handle yields a PollOutcome.
//
// The types are transport-agnostic so the bridge never depends on the
// registry or on HTTP details directly.
package model

import "encoding/json"

// TaskSubmission is one request to run a parser. It is created per
// invocation and not retained after submission.
type TaskSubmission struct {
	// TaskKind identifies the remote parser (e.g. "perplexity", "deepl_translate").
	TaskKind string
	// Query is the search query, prompt, URL or text to translate. Never empty.
	Query string
	// Options holds only the option keys recognized by the tool's schema.
	Options map[string]any
}

// TaskHandle identifies a submitted task on the executor.
type TaskHandle struct {
	TaskID string
}

// PollOutcome is the result of a single poll: either Ready with the raw
// result payload, or pending. Transport failures are errors, not outcomes.
type PollOutcome struct {
	Ready  bool
	Result json.RawMessage
}

// Pending is the PollOutcome for a task that has not finished yet.
var Pending = PollOutcome{}

// Ready wraps a finished result payload.
func Ready(result json.RawMessage) PollOutcome {
	return PollOutcome{Ready: true, Result: result}
}
