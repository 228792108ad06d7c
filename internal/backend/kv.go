// Copyright (c) 2025 Ayga
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"context"
	"encoding/json"
	"net/http"

	apperr "ayga/mcp/internal/errors"
)

type kvSetRequest struct {
	Key   string `json:"key"`
	Value string `json:"value"`
	TTL   int    `json:"ttl,omitempty"`
}

// KVGet calls GET /kv/{key} and returns the "value" field of the response.
func (h *HTTP) KVGet(ctx context.Context, key string) (json.RawMessage, bool, error) {
	req, err := h.newRequest(ctx, http.MethodGet, expand(h.endpoints.KVGet, key), nil)
	if err != nil {
		return nil, false, err
	}
	code, body, err := h.send(ctx, req, true)
	if err != nil {
		return nil, false, err
	}
	switch code {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, false, nil
	default:
		return nil, false, statusError(apperr.Executor, "kv get", code, body)
	}

	var out struct {
		Value json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, false, apperr.Wrap(apperr.Executor, "kv get returned an unreadable response", err)
	}
	if len(out.Value) == 0 || string(out.Value) == "null" {
		return nil, false, nil
	}
	return out.Value, true, nil
}

// KVSet calls POST /kv with { key, value, ttl? }.
func (h *HTTP) KVSet(ctx context.Context, key, value string, ttlSeconds int) error {
	body := kvSetRequest{Key: key, Value: value}
	if ttlSeconds > 0 {
		body.TTL = ttlSeconds
	}
	req, err := h.newRequest(ctx, http.MethodPost, h.endpoints.KVSet, body)
	if err != nil {
		return err
	}
	code, resp, err := h.send(ctx, req, true)
	if err != nil {
		return err
	}
	if code < 200 || code > 299 {
		return statusError(apperr.Executor, "kv set", code, resp)
	}
	return nil
}
