// Copyright (c) 2025 Ayga
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package backend provides the client for the remote parser executor.
// It defines the API contract used by the tool server: authentication,
// health and parser metadata, task submission and result polling, and the
// key-value side channel. The HTTP implementation talks to the executor's
// REST endpoints; tests substitute httptest servers or fakes.
package backend

import (
	"context"
	"encoding/json"

	"ayga/mcp/internal/bridge/model"
)

// API defines executor operations the tool server depends on.
type API interface {
	// Login exchanges a username and password for an access token.
	Login(ctx context.Context, username, password string) (accessToken string, err error)
	// ExchangeAPIKey exchanges an API key for an access token.
	ExchangeAPIKey(ctx context.Context, apiKey string) (accessToken string, err error)

	// Health returns the executor health document unaltered.
	Health(ctx context.Context) (json.RawMessage, error)
	// ListParsers returns the executor's parser listing unaltered.
	ListParsers(ctx context.Context) (json.RawMessage, error)
	// GetParser returns the detail document for one parser.
	GetParser(ctx context.Context, parserID string) (json.RawMessage, error)

	// Submit starts a task and returns its handle.
	Submit(ctx context.Context, sub model.TaskSubmission) (model.TaskHandle, error)
	// Poll fetches the task result once. 202 and 404 are reported as pending.
	Poll(ctx context.Context, h model.TaskHandle) (model.PollOutcome, error)

	// KVGet reads a key. found is false when the executor reports 404.
	KVGet(ctx context.Context, key string) (value json.RawMessage, found bool, err error)
	// KVSet writes a key. ttlSeconds <= 0 means no expiry.
	KVSet(ctx context.Context, key, value string, ttlSeconds int) error
}

// TokenSource supplies the bearer token attached to authenticated requests.
// An empty token with a nil error means the request is sent anonymously.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}
