// Copyright (c) 2025 Ayga
// Licensed under the MIT License. See LICENSE file in the project root for details.

package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"ayga/mcp/internal/bridge"
	apperr "ayga/mcp/internal/errors"
)

const methodCallTool = "tools/call"

// MCP builds an MCP server exposing every registered tool.
func (s *Server) MCP() *mcp.Server {
	srv := mcp.NewServer(&mcp.Implementation{Name: Name, Version: s.version}, nil)
	for _, t := range s.reg.List() {
		srv.AddTool(&mcp.Tool{
			Name:        t.Name,
			Title:       t.Title,
			Description: t.Description,
			InputSchema: t.Schema.JSONSchema(),
		}, s.handleTool)
	}
	srv.AddReceivingMiddleware(s.unknownToolMiddleware)
	return srv
}

// handleTool adapts an MCP tool call to Call. Failures are reported in the
// payload, never as protocol errors.
func (s *Server) handleTool(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args map[string]any
	if len(req.Params.Arguments) > 0 {
		if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
			return textResult(ErrorPayload(apperr.Wrap(apperr.Validation, "arguments must be a JSON object", err))), nil
		}
	}
	return textResult(s.Call(ctx, req.Params.Name, args, s.progressNotifier(ctx, req))), nil
}

// unknownToolMiddleware answers calls naming unregistered tools with the
// standard error payload before the SDK's own lookup rejects them.
func (s *Server) unknownToolMiddleware(next mcp.MethodHandler) mcp.MethodHandler {
	return func(ctx context.Context, method string, req mcp.Request) (mcp.Result, error) {
		if method != methodCallTool {
			return next(ctx, method, req)
		}
		params, ok := req.GetParams().(*mcp.CallToolParamsRaw)
		if !ok || params == nil {
			return next(ctx, method, req)
		}
		if _, known := s.reg.Lookup(params.Name); known {
			return next(ctx, method, req)
		}
		s.logger.Warn("unknown tool", s.logger.Args("tool", params.Name))
		return textResult(ErrorPayload(apperr.Newf(apperr.UnknownTool, "Unknown tool: %s", params.Name))), nil
	}
}

// progressNotifier forwards bridge progress as MCP progress notifications
// when the caller supplied a progress token.
func (s *Server) progressNotifier(ctx context.Context, req *mcp.CallToolRequest) bridge.ProgressFunc {
	if req.Session == nil || req.Params.Meta == nil {
		return nil
	}
	token, ok := req.Params.Meta["progressToken"]
	if !ok || token == nil {
		return nil
	}
	return func(fraction float64) {
		err := req.Session.NotifyProgress(ctx, &mcp.ProgressNotificationParams{
			ProgressToken: token,
			Progress:      fraction,
			Total:         1,
			Message:       "waiting for " + req.Params.Name,
		})
		if err != nil {
			s.logger.Debug("progress notification failed", s.logger.Args("tool", req.Params.Name, "error", err.Error()))
		}
	}
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{Content: []mcp.Content{&mcp.TextContent{Text: text}}}
}

// ServeStdio runs the MCP server over stdin/stdout until ctx is done or the
// client disconnects.
func (s *Server) ServeStdio(ctx context.Context) error {
	s.logger.Info("serving MCP over stdio", s.logger.Args("tools", s.reg.Len(), "version", s.version))
	err := s.MCP().Run(ctx, &mcp.StdioTransport{})
	if err != nil && ctx.Err() != nil {
		return nil
	}
	return err
}

// ServeHTTP serves the streamable HTTP transport on addr until ctx is done.
func (s *Server) ServeHTTP(ctx context.Context, addr string) error {
	srv := s.MCP()
	handler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server { return srv }, nil)
	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("serving MCP over HTTP", s.logger.Args("addr", addr, "tools", s.reg.Len()))
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	}
}
