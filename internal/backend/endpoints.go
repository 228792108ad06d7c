// Copyright (c) 2025 Ayga
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"net/url"
	"strings"
)

// DefaultBaseURL is the public executor.
const DefaultBaseURL = "https://redis.ayga.tech"

// Endpoints contains REST API endpoint paths. Paths containing "{id}" or
// "{key}" are templates filled with a path-escaped value.
type Endpoints struct {
	Login    string `json:"login"`    // e.g., "/auth/login"
	Exchange string `json:"exchange"` // e.g., "/auth/exchange"
	Health   string `json:"health"`   // e.g., "/health"
	Parsers  string `json:"parsers"`  // e.g., "/parsers"
	Parser   string `json:"parser"`   // e.g., "/parsers/{id}"
	Execute  string `json:"execute"`  // e.g., "/parsers/{id}/execute"
	Result   string `json:"result"`   // e.g., "/results/{id}"
	KVGet    string `json:"kv_get"`   // e.g., "/kv/{key}"
	KVSet    string `json:"kv_set"`   // e.g., "/kv"
}

// DefaultEndpoints returns the executor's published routes.
func DefaultEndpoints() Endpoints {
	return Endpoints{
		Login:    "/auth/login",
		Exchange: "/auth/exchange",
		Health:   "/health",
		Parsers:  "/parsers",
		Parser:   "/parsers/{id}",
		Execute:  "/parsers/{id}/execute",
		Result:   "/results/{id}",
		KVGet:    "/kv/{key}",
		KVSet:    "/kv",
	}
}

// expand substitutes the first template variable in path with an escaped value.
func expand(path, value string) string {
	escaped := url.PathEscape(value)
	for _, v := range []string{"{id}", "{key}"} {
		if strings.Contains(path, v) {
			return strings.Replace(path, v, escaped, 1)
		}
	}
	return path
}
