// Copyright (c) 2025 Ayga
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"ayga/mcp/internal/registry"
)

func TestParseCallArgs(t *testing.T) {
	tests := []struct {
		name    string
		json    string
		pairs   []string
		want    map[string]any
		wantErr bool
	}{
		{name: "empty", want: map[string]any{}},
		{name: "pairs", pairs: []string{"query=go 1.25", "timeout=30"}, want: map[string]any{"query": "go 1.25", "timeout": "30"}},
		{name: "value keeps equals", pairs: []string{"query=a=b"}, want: map[string]any{"query": "a=b"}},
		{name: "pair overrides json", json: `{"query":"x","timeout":5}`, pairs: []string{"query=y"}, want: map[string]any{"query": "y", "timeout": float64(5)}},
		{name: "json null", json: `null`, want: map[string]any{}},
		{name: "bad json", json: `[1]`, wantErr: true},
		{name: "missing equals", pairs: []string{"query"}, wantErr: true},
		{name: "empty key", pairs: []string{"=x"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseCallArgs(tt.json, tt.pairs)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseCallArgs() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if len(got) != len(tt.want) {
				t.Fatalf("parseCallArgs() = %v, want %v", got, tt.want)
			}
			for k, v := range tt.want {
				if got[k] != v {
					t.Errorf("parseCallArgs()[%q] = %v, want %v", k, got[k], v)
				}
			}
		})
	}
}

func TestWriteTools(t *testing.T) {
	tools := registry.Default().List()

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		if err := writeTools(&buf, tools, "json"); err != nil {
			t.Fatalf("writeTools() error = %v", err)
		}
		var out []toolListing
		if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if len(out) != len(tools) {
			t.Fatalf("got %d tools, want %d", len(out), len(tools))
		}
		if out[0].Name != tools[0].Name || out[0].InputSchema["type"] != "object" {
			t.Errorf("first tool = %+v", out[0])
		}
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		if err := writeTools(&buf, tools, "yaml"); err != nil {
			t.Fatalf("writeTools() error = %v", err)
		}
		var out []toolListing
		if err := yaml.Unmarshal(buf.Bytes(), &out); err != nil {
			t.Fatalf("invalid YAML: %v", err)
		}
		if len(out) != len(tools) {
			t.Errorf("got %d tools, want %d", len(out), len(tools))
		}
	})

	t.Run("table", func(t *testing.T) {
		var buf bytes.Buffer
		if err := writeTools(&buf, tools, "table"); err != nil {
			t.Fatalf("writeTools() error = %v", err)
		}
		if !strings.Contains(buf.String(), "search_perplexity") {
			t.Errorf("table missing search_perplexity:\n%s", buf.String())
		}
	})

	t.Run("unknown", func(t *testing.T) {
		if err := writeTools(&bytes.Buffer{}, tools, "xml"); err == nil {
			t.Error("writeTools(xml) error = nil, want error")
		}
	})
}
