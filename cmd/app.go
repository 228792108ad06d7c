// Copyright (c) 2025 Ayga
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"os"
	"time"

	"github.com/pterm/pterm"

	"ayga/mcp/internal/auth"
	"ayga/mcp/internal/backend"
	"ayga/mcp/internal/config"
	"ayga/mcp/internal/keychain"
	"ayga/mcp/internal/logging"
)

// app is everything a command needs to talk to the executor.
type app struct {
	cfg     config.Config
	logger  *pterm.Logger
	creds   auth.Credentials
	session *auth.Session
	api     *backend.HTTP
}

// newApp resolves config (file, then env, then flags), credentials and
// the executor client.
func newApp() *app {
	cfg, err := config.Load()
	cfg.ApplyEnv(nil)
	if flagAPIURL != "" {
		cfg.APIURL = flagAPIURL
	}
	if flagLogLevel != "" {
		cfg.LogLevel = flagLogLevel
	}
	if flagLogFormat != "" {
		cfg.LogFormat = flagLogFormat
	}

	logger := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		logger.Warn("config file ignored", logger.Args("error", err.Error()))
	}

	var store auth.Store
	if km, err := keychain.GetManager(); err == nil {
		store = km
	} else {
		logger.Debug("keychain unavailable", logger.Args("error", err.Error()))
	}
	creds, err := auth.Resolve(auth.Credentials{
		Username: flagUsername,
		Password: flagPassword,
		APIKey:   flagAPIKey,
	}, nil, store)
	if err != nil {
		logger.Warn("stored credentials unreadable", logger.Args("error", logging.Mask(err.Error())))
	}

	opts := []backend.Option{
		backend.WithTimeout(cfg.HTTPTimeoutDuration()),
		backend.WithUserAgent("ayga-mcp/" + Version),
	}
	// Token requests go through their own client so the session never
	// depends on itself.
	session := auth.NewSession(backend.New(cfg.APIURL, opts...), creds, auth.WithSessionLogger(logger))
	api := backend.New(cfg.APIURL, append(opts, backend.WithTokenSource(session))...)

	return &app{cfg: cfg, logger: logger, creds: creds, session: session, api: api}
}

// defaultTimeout is the configured polling deadline.
func (a *app) defaultTimeout() time.Duration {
	return time.Duration(a.cfg.DefaultTimeout) * time.Second
}
