// Copyright (c) 2025 Ayga
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package auth resolves executor credentials and holds the process-wide
// access token. The token lives in memory only; it is obtained lazily on
// first use and shared by every tool invocation afterwards.
package auth

import (
	"context"
	"sync/atomic"

	"github.com/pterm/pterm"

	"ayga/mcp/internal/logging"
)

// Authenticator exchanges credentials for an access token.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (string, error)
	ExchangeAPIKey(ctx context.Context, apiKey string) (string, error)
}

// Session is a lazily established, single-flight access token.
// It implements backend.TokenSource.
type Session struct {
	auth   Authenticator
	creds  Credentials
	logger *pterm.Logger

	// sem is a one-slot semaphore guarding the login request.
	sem   chan struct{}
	token atomic.Pointer[string]
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithSessionLogger sets the logger used for login events.
func WithSessionLogger(l *pterm.Logger) SessionOption {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewSession returns a Session that logs in with creds on first use.
func NewSession(a Authenticator, creds Credentials, opts ...SessionOption) *Session {
	s := &Session{
		auth:   a,
		creds:  creds,
		logger: logging.Discard(),
		sem:    make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Credentials returns the credentials the session was built with.
func (s *Session) Credentials() Credentials { return s.creds }

// Authenticated reports whether a token has been obtained.
func (s *Session) Authenticated() bool { return s.token.Load() != nil }

// Token returns the access token, logging in on first use. Anonymous
// credentials yield an empty token. Concurrent first callers wait on the
// same login; each waiter gives up when its own ctx is done. A failed
// login leaves the session empty so the next call tries again.
func (s *Session) Token(ctx context.Context) (string, error) {
	if s.creds.Method() == MethodAnonymous {
		return "", nil
	}
	if t := s.token.Load(); t != nil {
		return *t, nil
	}

	select {
	case s.sem <- struct{}{}:
	case <-ctx.Done():
		return "", ctx.Err()
	}
	defer func() { <-s.sem }()

	// Another caller may have finished while we waited.
	if t := s.token.Load(); t != nil {
		return *t, nil
	}

	token, err := s.login(ctx)
	if err != nil {
		s.logger.Warn("executor login failed", s.logger.Args(
			"method", string(s.creds.Method()),
			"error", logging.Mask(err.Error()),
		))
		return "", err
	}
	s.token.Store(&token)
	s.logger.Debug("executor login succeeded", s.logger.Args(
		"method", string(s.creds.Method()),
		"source", string(s.creds.Source),
	))
	return token, nil
}

func (s *Session) login(ctx context.Context) (string, error) {
	if s.creds.Method() == MethodPassword {
		return s.auth.Login(ctx, s.creds.Username, s.creds.Password)
	}
	return s.auth.ExchangeAPIKey(ctx, s.creds.APIKey)
}
