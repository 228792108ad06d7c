// Copyright (c) 2025 Ayga
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package server dispatches tool calls to the executor. It owns the tool
// registry, the backend client and the completion bridge, and reduces every
// call to one JSON payload: the executor's result, or {"error": message}.
// mcp.go exposes the same dispatch over the Model Context Protocol.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pterm/pterm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"ayga/mcp/internal/backend"
	"ayga/mcp/internal/bridge"
	apperr "ayga/mcp/internal/errors"
	"ayga/mcp/internal/logging"
	"ayga/mcp/internal/registry"
	"ayga/mcp/internal/telemetry"
)

// Name is the MCP implementation name.
const Name = "ayga-mcp"

// Server dispatches tool calls. It is safe for concurrent use.
type Server struct {
	reg            *registry.Registry
	api            backend.API
	bridge         *bridge.Bridge
	logger         *pterm.Logger
	version        string
	defaultTimeout time.Duration

	observer bridge.Observer
	clock    bridge.Clock
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the structured logger. It must write to stderr or a file.
func WithLogger(l *pterm.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithVersion sets the version reported to MCP clients.
func WithVersion(v string) Option {
	return func(s *Server) { s.version = v }
}

// WithDefaultTimeout sets the polling deadline for calls that pass no timeout.
func WithDefaultTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.defaultTimeout = d
		}
	}
}

// WithObserver reports poll-loop events to o.
func WithObserver(o bridge.Observer) Option {
	return func(s *Server) { s.observer = o }
}

// WithClock replaces the bridge clock, for tests.
func WithClock(c bridge.Clock) Option {
	return func(s *Server) { s.clock = c }
}

// New creates a Server for reg backed by api.
func New(reg *registry.Registry, api backend.API, opts ...Option) *Server {
	s := &Server{
		reg:            reg,
		api:            api,
		logger:         logging.Discard(),
		version:        "dev",
		defaultTimeout: bridge.DefaultTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}

	bopts := []bridge.Option{bridge.WithLogger(s.logger), bridge.WithObserver(s.observer)}
	if s.clock != nil {
		bopts = append(bopts, bridge.WithClock(s.clock))
	}
	s.bridge = bridge.New(api, bopts...)
	return s
}

// Registry returns the tool registry.
func (s *Server) Registry() *registry.Registry { return s.reg }

// Invoke runs the tool name with args and returns the raw result or an error.
// progress may be nil; it only fires for parser tools while a task is pending.
func (s *Server) Invoke(ctx context.Context, name string, args map[string]any, progress bridge.ProgressFunc) (json.RawMessage, error) {
	tool, ok := s.reg.Lookup(name)
	if !ok {
		return nil, apperr.Newf(apperr.UnknownTool, "Unknown tool: %s", name)
	}
	if args == nil {
		args = map[string]any{}
	}

	requestID := uuid.NewString()
	ctx, span := telemetry.StartSpan(ctx, "tool.call",
		attribute.String("tool.name", name),
		attribute.String("request_id", requestID),
	)
	defer span.End()

	start := time.Now()
	s.logger.Info("tool call started", s.logger.Args("tool", name, "request_id", requestID))

	var (
		raw json.RawMessage
		err error
	)
	switch {
	case tool.IsParser():
		raw, err = s.callParser(ctx, tool, args, progress)
	case tool.Category == registry.CategoryKV:
		raw, err = s.callKV(ctx, tool, args)
	default:
		raw, err = s.callMetadata(ctx, tool, args)
	}

	if err != nil {
		span.SetStatus(codes.Error, apperr.Message(err))
		s.logger.Warn("tool call failed", s.logger.Args(
			"tool", name,
			"request_id", requestID,
			"kind", string(apperr.KindOf(err)),
			"error", logging.Mask(apperr.Message(err)),
			"duration", time.Since(start).String(),
		))
		return nil, err
	}
	s.logger.Info("tool call finished", s.logger.Args("tool", name, "request_id", requestID, "duration", time.Since(start).String()))
	return raw, nil
}

// Call runs the tool and renders the single payload returned to the agent.
func (s *Server) Call(ctx context.Context, name string, args map[string]any, progress bridge.ProgressFunc) string {
	raw, err := s.Invoke(ctx, name, args, progress)
	if err != nil {
		return ErrorPayload(err)
	}
	return Render(raw)
}

// Render pretty-prints a JSON document with two-space indentation.
// Invalid JSON is returned as a JSON string.
func Render(raw json.RawMessage) string {
	if len(raw) == 0 {
		return "null"
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return encode(string(raw))
	}
	return buf.String()
}

// ErrorPayload renders {"error": message} for err.
func ErrorPayload(err error) string {
	return encode(map[string]string{"error": apperr.Message(err)})
}

func encode(v any) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Sprintf(`{"error": %q}`, err.Error())
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n"))
}
