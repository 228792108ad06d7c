// Copyright (c) 2025 Ayga
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

// New creates a backend API implementation for the executor at baseURL.
// Returns HTTP client (real backend).
func New(baseURL string, opts ...Option) *HTTP {
	return newHTTP(baseURL, DefaultEndpoints(), opts...)
}
