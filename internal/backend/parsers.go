// Copyright (c) 2025 Ayga
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"context"
	"encoding/json"
	"strings"

	apperr "ayga/mcp/internal/errors"
)

// ListParsers calls GET /parsers and returns the listing unaltered.
func (h *HTTP) ListParsers(ctx context.Context) (json.RawMessage, error) {
	return h.getJSON(ctx, "list parsers", h.endpoints.Parsers, true)
}

// GetParser calls GET /parsers/{id}.
func (h *HTTP) GetParser(ctx context.Context, parserID string) (json.RawMessage, error) {
	parserID = strings.TrimSpace(parserID)
	if parserID == "" {
		return nil, apperr.New(apperr.Validation, "parser_id is required")
	}
	return h.getJSON(ctx, "get parser "+parserID, expand(h.endpoints.Parser, parserID), true)
}
