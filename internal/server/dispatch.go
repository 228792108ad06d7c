// Copyright (c) 2025 Ayga
// Licensed under the MIT License. See LICENSE file in the project root for details.

package server

import (
	"context"
	"encoding/json"

	"ayga/mcp/internal/bridge"
	apperr "ayga/mcp/internal/errors"
	"ayga/mcp/internal/registry"
)

// callParser validates args, submits the task and waits for its outcome.
func (s *Server) callParser(ctx context.Context, tool registry.Tool, args map[string]any, progress bridge.ProgressFunc) (json.RawMessage, error) {
	sub, timeout, err := tool.Normalize(args)
	if err != nil {
		return nil, err
	}
	if v, ok := args["timeout"]; !ok || v == nil {
		timeout = s.defaultTimeout
	}

	out := s.bridge.Run(ctx, sub, timeout, progress)
	if !out.Succeeded() {
		return nil, out.Err
	}
	return out.Result, nil
}

// callMetadata serves list_parsers, get_parser_info and health_check.
// Executor documents are passed through unaltered.
func (s *Server) callMetadata(ctx context.Context, tool registry.Tool, args map[string]any) (json.RawMessage, error) {
	clean, err := tool.Clean(args)
	if err != nil {
		return nil, err
	}
	switch tool.Name {
	case registry.ToolListParsers:
		return s.api.ListParsers(ctx)
	case registry.ToolGetParserInfo:
		return s.api.GetParser(ctx, clean["parser_id"].(string))
	case registry.ToolHealthCheck:
		return s.api.Health(ctx)
	}
	return nil, apperr.Newf(apperr.UnknownTool, "Unknown tool: %s", tool.Name)
}

// callKV serves redis_get and redis_set.
func (s *Server) callKV(ctx context.Context, tool registry.Tool, args map[string]any) (json.RawMessage, error) {
	clean, err := tool.Clean(args)
	if err != nil {
		return nil, err
	}
	key := clean["key"].(string)

	switch tool.Name {
	case registry.ToolKVGet:
		v, found, err := s.api.KVGet(ctx, key)
		if err != nil {
			return nil, err
		}
		if !found {
			return json.RawMessage("null"), nil
		}
		return v, nil
	case registry.ToolKVSet:
		ttl, _ := clean["ttl"].(int)
		if err := s.api.KVSet(ctx, key, clean["value"].(string), ttl); err != nil {
			return nil, err
		}
		return json.RawMessage(`{"success":true}`), nil
	}
	return nil, apperr.Newf(apperr.UnknownTool, "Unknown tool: %s", tool.Name)
}
