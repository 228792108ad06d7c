// Copyright (c) 2025 Ayga
// Licensed under the MIT License. See LICENSE file in the project root for details.

package registry

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperr "ayga/mcp/internal/errors"
)

func mustLookup(t *testing.T, name string) Tool {
	t.Helper()
	tool, ok := Default().Lookup(name)
	require.True(t, ok, "tool %s not registered", name)
	return tool
}

func TestNormalizeTranslateForwardsOnlySuppliedOptions(t *testing.T) {
	tool := mustLookup(t, "translate_deepl_translate")

	sub, timeout, err := tool.Normalize(map[string]any{
		"query":         "bonjour",
		"from_language": "fr",
		"to_language":   "en",
	})
	require.NoError(t, err)

	assert.Equal(t, "deepl_translate", sub.TaskKind)
	assert.Equal(t, "bonjour", sub.Query)
	assert.Equal(t, map[string]any{"from_language": "fr", "to_language": "en"}, sub.Options)
	assert.NotContains(t, sub.Options, "preset")
	assert.Equal(t, 90*time.Second, timeout)
}

func TestNormalizeDropsUnrecognizedKeys(t *testing.T) {
	tool := Tool{
		Descriptor: Descriptor{Name: "search_k", TaskKind: "k"},
		Schema: NewSchema(
			Field{Name: "query", Type: TypeString, Required: true},
			Field{Name: "a", Type: TypeInteger},
		),
	}

	sub, _, err := tool.Normalize(map[string]any{"query": "q", "a": float64(1), "b": float64(2)})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": 1}, sub.Options)

	payload, err := json.Marshal(sub.Options)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1}`, string(payload))
}

func TestNormalizeNoOptions(t *testing.T) {
	tool := mustLookup(t, "search_perplexity")

	sub, timeout, err := tool.Normalize(map[string]any{"query": "hello", "timeout": float64(2)})
	require.NoError(t, err)
	assert.Nil(t, sub.Options)
	assert.Equal(t, 2*time.Second, timeout)
}

func TestNormalizePresetOnlyWhenSupplied(t *testing.T) {
	tool := mustLookup(t, "search_google")

	sub, _, err := tool.Normalize(map[string]any{"query": "go", "preset": "news"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"preset": "news"}, sub.Options)
}

func TestNormalizeValidation(t *testing.T) {
	tests := []struct {
		name    string
		tool    string
		args    map[string]any
		wantMsg string
	}{
		{name: "missing query", tool: "search_perplexity", args: map[string]any{}, wantMsg: "query is required"},
		{name: "blank query", tool: "search_perplexity", args: map[string]any{"query": "   "}, wantMsg: "query is required"},
		{name: "non-string query", tool: "search_perplexity", args: map[string]any{"query": float64(3)}, wantMsg: "query is required"},
		{name: "nil args", tool: "search_perplexity", args: nil, wantMsg: "query is required"},
		{name: "fractional timeout", tool: "search_perplexity", args: map[string]any{"query": "q", "timeout": 1.5}, wantMsg: "timeout must be a whole number"},
		{name: "zero timeout", tool: "search_perplexity", args: map[string]any{"query": "q", "timeout": float64(0)}, wantMsg: "timeout must be >= 1"},
		{name: "timeout above maximum", tool: "search_perplexity", args: map[string]any{"query": "q", "timeout": float64(1e10)}, wantMsg: "timeout must be <= 86400"},
		{name: "timeout string above maximum", tool: "search_perplexity", args: map[string]any{"query": "q", "timeout": "99999999999"}, wantMsg: "timeout must be <= 86400"},
		{name: "timeout beyond int64", tool: "search_perplexity", args: map[string]any{"query": "q", "timeout": float64(1e300)}, wantMsg: "timeout is out of range"},
		{name: "timeout string beyond int64", tool: "search_perplexity", args: map[string]any{"query": "q", "timeout": "99999999999999999999"}, wantMsg: "timeout is out of range"},
		{name: "timeout number beyond int64", tool: "search_perplexity", args: map[string]any{"query": "q", "timeout": json.Number("1e30")}, wantMsg: "timeout is out of range"},
		{name: "kv value not a string", tool: ToolKVSet, args: map[string]any{"key": "k", "value": float64(42)}, wantMsg: "value must be a string"},
		{name: "kv blank key", tool: ToolKVSet, args: map[string]any{"key": " ", "value": "v"}, wantMsg: "key is required"},
		{name: "kv missing value", tool: ToolKVSet, args: map[string]any{"key": "k"}, wantMsg: "value is required"},
		{name: "comments_pages out of range", tool: "search_youtube_video", args: map[string]any{"query": "id", "comments_pages": float64(21)}, wantMsg: "comments_pages must be <= 20"},
		{name: "sort outside enum", tool: "search_youtube_search", args: map[string]any{"query": "q", "sort": "popular"}, wantMsg: "sort must be one of relevance, date, viewCount, rating"},
		{name: "language not a string", tool: "translate_google_translate", args: map[string]any{"query": "q", "to_language": float64(1)}, wantMsg: "to_language must be a string"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tool := mustLookup(t, tt.tool)
			var err error
			if tool.IsParser() {
				_, _, err = tool.Normalize(tt.args)
			} else {
				_, err = tool.Clean(tt.args)
			}
			require.Error(t, err)
			assert.True(t, apperr.Is(err, apperr.Validation), "kind = %v", apperr.KindOf(err))
			assert.Equal(t, tt.wantMsg, apperr.Message(err))
		})
	}
}

func TestNormalizeAcceptsNumberForms(t *testing.T) {
	tool := mustLookup(t, "search_reddit_post_info")

	for _, v := range []any{float64(250), json.Number("250"), 250, "250"} {
		sub, _, err := tool.Normalize(map[string]any{"query": "t3_abc", "max_comments_count": v})
		require.NoError(t, err, "value %#v", v)
		assert.Equal(t, 250, sub.Options["max_comments_count"])
	}
}

func TestNormalizeRejectsFixedTools(t *testing.T) {
	_, _, err := mustLookup(t, ToolHealthCheck).Normalize(map[string]any{"query": "x"})
	require.Error(t, err)
}

func TestCleanFixedTool(t *testing.T) {
	tool := mustLookup(t, ToolKVSet)

	clean, err := tool.Clean(map[string]any{"key": "k", "value": "v", "ttl": float64(60), "extra": true})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"key": "k", "value": "v", "ttl": 60}, clean)

	_, err = tool.Clean(map[string]any{"key": "k"})
	require.Error(t, err)
	assert.Equal(t, "value is required", apperr.Message(err))
}

func TestNormalizeTimeoutBounds(t *testing.T) {
	tool := mustLookup(t, "search_perplexity")

	_, timeout, err := tool.Normalize(map[string]any{"query": "q", "timeout": float64(MaxTimeoutSeconds)})
	require.NoError(t, err)
	assert.Equal(t, MaxTimeoutSeconds*time.Second, timeout)
	assert.Positive(t, timeout)
}

func TestCleanKVSetAcceptsEmptyValue(t *testing.T) {
	args, err := mustLookup(t, ToolKVSet).Clean(map[string]any{"key": "k", "value": ""})
	require.NoError(t, err)
	assert.Equal(t, "", args["value"])
}
