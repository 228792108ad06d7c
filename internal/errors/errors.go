// Copyright (c) 2025 Ayga
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package errors defines typed errors with categories for user-friendly reporting.
// Every failure a tool invocation can hit is reduced to one of the kinds below,
// and the calling agent only ever sees the human-friendly Message of that error.
//
// The package supports wrapping underlying errors while maintaining error kind
// information, so callers can branch on the kind without string matching.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind is a machine-readable error category.
type Kind string

const (
	// Validation indicates a missing or malformed argument. The task is never submitted.
	Validation Kind = "validation_error"
	// Auth indicates the login or API-key exchange failed.
	Auth Kind = "auth_error"
	// Submission indicates the executor rejected the task.
	Submission Kind = "submission_error"
	// Timeout indicates the caller deadline elapsed while polling.
	Timeout Kind = "timeout_error"
	// Executor indicates an unexpected status or response shape from the executor.
	Executor Kind = "executor_error"
	// UnknownTool indicates a call naming a tool that is not registered.
	UnknownTool Kind = "unknown_tool"
	// Transport indicates the request never reached the executor (DNS, refused, TLS...).
	Transport Kind = "transport_error"
)

// E wraps an error with kind and human-friendly message.
type E struct {
	Kind    Kind
	Message string
	Err     error
	// Status is the HTTP status returned by the executor, zero when not applicable.
	Status int
}

func (e *E) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *E) Unwrap() error { return e.Err }

func Wrap(kind Kind, msg string, err error) *E { return &E{Kind: kind, Message: msg, Err: err} }
func New(kind Kind, msg string) *E             { return &E{Kind: kind, Message: msg} }

// Newf is New with fmt.Sprintf formatting.
func Newf(kind Kind, format string, args ...any) *E {
	return &E{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// WithStatus records the executor HTTP status on e and returns it.
func (e *E) WithStatus(code int) *E {
	e.Status = code
	return e
}

// KindOf returns the kind of the first *E in err's chain, or "" when there is none.
func KindOf(err error) Kind {
	var e *E
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// Is reports whether err carries the given kind anywhere in its chain.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// Message returns the text shown to the calling agent for err.
// For *E it is the Message, followed by the cause when one is wrapped.
// Any other error is reported with its Error() text.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var e *E
	if !stderrors.As(err, &e) {
		return err.Error()
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}
