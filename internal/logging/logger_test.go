// Copyright (c) 2025 Ayga
// Licensed under the MIT License. See LICENSE file in the project root for details.

package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/pterm/pterm"

	apperr "ayga/mcp/internal/errors"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected pterm.LogLevel
	}{
		{"debug", pterm.LogLevelDebug},
		{"TRACE", pterm.LogLevelTrace},
		{" warn ", pterm.LogLevelWarn},
		{"error", pterm.LogLevelError},
		{"off", pterm.LogLevelDisabled},
		{"", pterm.LogLevelInfo},
		{"verbose", pterm.LogLevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLevel(tt.input); got != tt.expected {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNewJSONLogger(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "info", "json")
	l.Info("tool called", l.Args("tool", "search_perplexity"))
	l.Debug("dropped at info level")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d log lines, want 1: %q", len(lines), buf.String())
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if entry["tool"] != "search_perplexity" {
		t.Errorf("entry = %v, want tool field", entry)
	}
}

func TestFormatToolError(t *testing.T) {
	out := FormatToolError(apperr.New(apperr.UnknownTool, "Unknown tool: frobnicate"))
	if !strings.Contains(out, "Unknown Tool") || !strings.Contains(out, "Unknown tool: frobnicate") {
		t.Errorf("FormatToolError() = %q", out)
	}

	out = FormatToolError(errors.New("login failed: password=hunter2"))
	if strings.Contains(out, "hunter2") {
		t.Errorf("FormatToolError() leaked a secret: %q", out)
	}
	if FormatToolError(nil) != "" {
		t.Errorf("FormatToolError(nil) should be empty")
	}
}
