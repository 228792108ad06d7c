// Copyright (c) 2025 Ayga
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import "strings"

// parseBearerToken extracts token from a value like "Bearer <token>" case-insensitively.
// Returns the token string without the "Bearer " prefix, or empty string if invalid format.
func parseBearerToken(value string) string {
	v := strings.TrimSpace(value)
	if len(v) < 7 || !strings.EqualFold(v[0:6], "bearer") {
		return ""
	}
	return strings.TrimSpace(v[6:])
}

// extractAccessToken extracts the access token from the response payload.
// It tries multiple common field names to be resilient to different response formats,
// including a nested "data" object and an "Authorization: Bearer" style value.
func extractAccessToken(result map[string]any) string {
	for _, key := range []string{"access_token", "accessToken", "token", "jwt"} {
		if v, ok := result[key].(string); ok && strings.TrimSpace(v) != "" {
			if t := parseBearerToken(v); t != "" {
				return t
			}
			return strings.TrimSpace(v)
		}
	}
	if v, ok := result["authorization"].(string); ok {
		if t := parseBearerToken(v); t != "" {
			return t
		}
	}
	if nested, ok := result["data"].(map[string]any); ok {
		return extractAccessToken(nested)
	}
	return ""
}

// extractTaskID extracts the task identifier from a submission response.
func extractTaskID(result map[string]any) string {
	for _, key := range []string{"task_id", "taskId", "id"} {
		if v, ok := result[key].(string); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	if nested, ok := result["data"].(map[string]any); ok {
		return extractTaskID(nested)
	}
	return ""
}
