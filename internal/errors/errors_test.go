// Copyright (c) 2025 Ayga
// Licensed under the MIT License. See LICENSE file in the project root for details.

package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: "",
		},
		{
			name:     "unknown tool",
			err:      New(UnknownTool, "Unknown tool: frobnicate"),
			expected: "Unknown tool: frobnicate",
		},
		{
			name:     "wrapped cause is appended",
			err:      Wrap(Auth, "login failed", stderrors.New("401 invalid credentials")),
			expected: "login failed: 401 invalid credentials",
		},
		{
			name:     "plain error passes through",
			err:      stderrors.New("boom"),
			expected: "boom",
		},
		{
			name:     "E found through fmt wrapping",
			err:      fmt.Errorf("outer: %w", Newf(Timeout, "Task %s timed out after %ds", "t-1", 90)),
			expected: "Task t-1 timed out after 90s",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Message(tt.err); got != tt.expected {
				t.Errorf("Message() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestKindOf(t *testing.T) {
	err := fmt.Errorf("poll: %w", New(Executor, "executor returned status 500").WithStatus(500))

	if got := KindOf(err); got != Executor {
		t.Errorf("KindOf() = %v, want %v", got, Executor)
	}
	if !Is(err, Executor) {
		t.Errorf("Is(err, Executor) = false, want true")
	}
	if Is(err, Timeout) {
		t.Errorf("Is(err, Timeout) = true, want false")
	}
	if got := KindOf(stderrors.New("plain")); got != "" {
		t.Errorf("KindOf(plain) = %q, want empty", got)
	}

	var e *E
	if !stderrors.As(err, &e) || e.Status != 500 {
		t.Errorf("Status not preserved through wrapping")
	}
}

func TestError(t *testing.T) {
	e := Wrap(Submission, "submit failed", stderrors.New("400 bad query"))
	want := "submission_error: submit failed: 400 bad query"
	if got := e.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !stderrors.Is(e, e.Err) {
		t.Errorf("Unwrap() did not expose the cause")
	}
}
