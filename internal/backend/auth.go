// Copyright (c) 2025 Ayga
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"context"
	"encoding/json"
	"net/http"

	apperr "ayga/mcp/internal/errors"
)

// Login calls POST /auth/login with { username, password }.
// It returns the access token issued by the executor.
func (h *HTTP) Login(ctx context.Context, username, password string) (string, error) {
	req, err := h.newRequest(ctx, http.MethodPost, h.endpoints.Login, map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		return "", apperr.Wrap(apperr.Auth, "login failed", err)
	}
	return h.issueToken(ctx, req, "login")
}

// ExchangeAPIKey calls POST /auth/exchange with the X-API-Key header.
// It returns the access token issued for the key.
func (h *HTTP) ExchangeAPIKey(ctx context.Context, apiKey string) (string, error) {
	req, err := h.newRequest(ctx, http.MethodPost, h.endpoints.Exchange, nil)
	if err != nil {
		return "", apperr.Wrap(apperr.Auth, "api key exchange failed", err)
	}
	req.Header.Set("X-API-Key", apiKey)
	return h.issueToken(ctx, req, "api key exchange")
}

// issueToken sends an unauthenticated token request and extracts the access token.
func (h *HTTP) issueToken(ctx context.Context, req *http.Request, op string) (string, error) {
	code, body, err := h.send(ctx, req, false)
	if err != nil {
		if apperr.KindOf(err) == apperr.Transport {
			return "", apperr.Wrap(apperr.Auth, op+" failed", err)
		}
		return "", err
	}
	if code != http.StatusOK && code != http.StatusCreated {
		return "", statusError(apperr.Auth, op, code, body)
	}

	var result map[string]any
	if err := json.Unmarshal(body, &result); err != nil {
		return "", apperr.Wrap(apperr.Auth, op+" returned an unreadable response", err)
	}
	token := extractAccessToken(result)
	if token == "" {
		return "", apperr.New(apperr.Auth, "no access_token in "+op+" response")
	}
	return token, nil
}
