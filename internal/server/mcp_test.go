// Copyright (c) 2025 Ayga
// Licensed under the MIT License. See LICENSE file in the project root for details.

package server

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ayga/mcp/internal/registry"
)

func newMCPSession(t *testing.T, s *Server) *mcp.ClientSession {
	t.Helper()
	return newMCPSessionWith(t, s, nil)
}

func newMCPSessionWith(t *testing.T, s *Server, opts *mcp.ClientOptions) *mcp.ClientSession {
	t.Helper()

	clientTransport, serverTransport := mcp.NewInMemoryTransports()
	serverCtx, serverCancel := context.WithCancel(context.Background())
	serverSession, err := s.MCP().Connect(serverCtx, serverTransport, nil)
	require.NoError(t, err)

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "test"}, opts)
	clientSession, err := client.Connect(context.Background(), clientTransport, nil)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = clientSession.Close()
		_ = serverSession.Close()
		serverCancel()
	})
	return clientSession
}

func textOf(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.Len(t, res.Content, 1)
	tc, ok := res.Content[0].(*mcp.TextContent)
	require.True(t, ok, "content type %T", res.Content[0])
	return tc.Text
}

func TestMCPListTools(t *testing.T) {
	s := newTestServer(newFakeAPI())
	session := newMCPSession(t, s)

	res, err := session.ListTools(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, res.Tools, s.Registry().Len())

	names := make(map[string]bool, len(res.Tools))
	for _, tool := range res.Tools {
		names[tool.Name] = true
	}
	for _, want := range []string{"search_perplexity", "translate_deepl_translate", "fetch_nethttp", registry.ToolHealthCheck, registry.ToolKVSet} {
		assert.True(t, names[want], "missing %s", want)
	}
}

func TestMCPCallParserTool(t *testing.T) {
	api := newFakeAPI()
	api.pendingFor = 1
	session := newMCPSession(t, newTestServer(api))

	res, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "search_perplexity",
		Arguments: map[string]any{"query": "hello", "timeout": 10},
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"data":"x"}`, textOf(t, res))
}

func TestMCPCallUnknownToolReturnsPayload(t *testing.T) {
	api := newFakeAPI()
	session := newMCPSession(t, newTestServer(api))

	res, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "frobnicate",
		Arguments: map[string]any{},
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"error":"Unknown tool: frobnicate"}`, textOf(t, res))
	assert.Equal(t, int32(0), api.calls.Load())
}

func TestMCPCallValidationErrorIsPayload(t *testing.T) {
	session := newMCPSession(t, newTestServer(newFakeAPI()))

	res, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "search_google",
		Arguments: map[string]any{},
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"error":"query is required"}`, textOf(t, res))
}

// progressRecorder collects progress notifications received by a client.
type progressRecorder struct {
	mu     sync.Mutex
	tokens []any
	values []float64
}

func (r *progressRecorder) handle(_ context.Context, req *mcp.ProgressNotificationClientRequest) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens = append(r.tokens, req.Params.ProgressToken)
	r.values = append(r.values, req.Params.Progress)
}

func (r *progressRecorder) snapshot() ([]any, []float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]any(nil), r.tokens...), append([]float64(nil), r.values...)
}

func TestMCPCallForwardsProgress(t *testing.T) {
	api := newFakeAPI()
	api.pendingFor = 3
	rec := &progressRecorder{}
	session := newMCPSessionWith(t, newTestServer(api), &mcp.ClientOptions{ProgressNotificationHandler: rec.handle})

	res, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Meta:      mcp.Meta{"progressToken": "tok"},
		Name:      "search_perplexity",
		Arguments: map[string]any{"query": "hello", "timeout": 10},
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"data":"x"}`, textOf(t, res))

	require.Eventually(t, func() bool {
		_, values := rec.snapshot()
		return len(values) == 3
	}, 2*time.Second, 10*time.Millisecond)

	tokens, values := rec.snapshot()
	sort.Float64s(values)
	assert.InDeltaSlice(t, []float64{0, 0.1, 0.22}, values, 1e-9)
	for _, tok := range tokens {
		assert.Equal(t, "tok", tok)
	}
}

func TestMCPCallWithoutProgressTokenSendsNoProgress(t *testing.T) {
	api := newFakeAPI()
	api.pendingFor = 3
	rec := &progressRecorder{}
	session := newMCPSessionWith(t, newTestServer(api), &mcp.ClientOptions{ProgressNotificationHandler: rec.handle})

	res, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "search_perplexity",
		Arguments: map[string]any{"query": "hello", "timeout": 10},
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"data":"x"}`, textOf(t, res))
	api.mu.Lock()
	polls := api.polls
	api.mu.Unlock()
	assert.Equal(t, 4, polls)

	assert.Never(t, func() bool {
		_, values := rec.snapshot()
		return len(values) > 0
	}, 100*time.Millisecond, 10*time.Millisecond)
}

func TestMCPCallKVSetAcceptsEmptyValue(t *testing.T) {
	api := newFakeAPI()
	session := newMCPSession(t, newTestServer(api))

	res, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      registry.ToolKVSet,
		Arguments: map[string]any{"key": "k", "value": ""},
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":true}`, textOf(t, res))
	v, ok := api.kv["k"]
	assert.True(t, ok)
	assert.Equal(t, "", v)
}
