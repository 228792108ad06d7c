// Copyright (c) 2025 Ayga
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ayga/mcp/internal/bridge/model"
	apperr "ayga/mcp/internal/errors"
)

type staticToken string

func (s staticToken) Token(context.Context) (string, error) { return string(s), nil }

// newTestServer serves handler and returns a client pointed at it.
func newTestServer(t *testing.T, handler http.HandlerFunc, opts ...Option) *HTTP {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, append([]Option{WithHTTPClient(srv.Client())}, opts...)...)
}

func decodeBody(t *testing.T, r *http.Request) map[string]any {
	t.Helper()
	b, err := io.ReadAll(r.Body)
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))
	return m
}

func TestLogin(t *testing.T) {
	h := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/login", r.URL.Path)
		body := decodeBody(t, r)
		if body["username"] == "alice" && body["password"] == "pw" {
			_, _ = w.Write([]byte(`{"access_token":"jwt-1"}`))
			return
		}
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"bad credentials"}`))
	})

	tok, err := h.Login(context.Background(), "alice", "pw")
	require.NoError(t, err)
	assert.Equal(t, "jwt-1", tok)

	_, err = h.Login(context.Background(), "alice", "nope")
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.Auth))
	assert.Contains(t, err.Error(), "401")
}

func TestExchangeAPIKey(t *testing.T) {
	h := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/exchange", r.URL.Path)
		assert.Equal(t, "key-123", r.Header.Get("X-API-Key"))
		_, _ = w.Write([]byte(`{"data":{"token":"Bearer jwt-2"}}`))
	})

	tok, err := h.ExchangeAPIKey(context.Background(), "key-123")
	require.NoError(t, err)
	assert.Equal(t, "jwt-2", tok)
}

func TestLoginMissingToken(t *testing.T) {
	h := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	_, err := h.Login(context.Background(), "a", "b")
	require.Error(t, err)
	assert.Equal(t, apperr.Auth, apperr.KindOf(err))
}

func TestSubmitForwardsOptionsAndBearer(t *testing.T) {
	h := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/parsers/deepl_translate/execute", r.URL.Path)
		assert.Equal(t, "Bearer jwt", r.Header.Get("Authorization"))
		body := decodeBody(t, r)
		assert.Equal(t, "hello", body["query"])
		assert.Equal(t, map[string]any{"to_language": "de"}, body["options"])
		_, _ = w.Write([]byte(`{"task_id":"t-1"}`))
	}, WithTokenSource(staticToken("jwt")))

	th, err := h.Submit(context.Background(), model.TaskSubmission{
		TaskKind: "deepl_translate",
		Query:    "hello",
		Options:  map[string]any{"to_language": "de"},
	})
	require.NoError(t, err)
	assert.Equal(t, "t-1", th.TaskID)
}

func TestSubmitOmitsEmptyOptionsAndAnonymous(t *testing.T) {
	h := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		body := decodeBody(t, r)
		_, has := body["options"]
		assert.False(t, has)
		_, _ = w.Write([]byte(`{"taskId":"t-2"}`))
	}, WithTokenSource(staticToken("")))

	th, err := h.Submit(context.Background(), model.TaskSubmission{TaskKind: "google", Query: "go"})
	require.NoError(t, err)
	assert.Equal(t, "t-2", th.TaskID)
}

func TestSubmitErrors(t *testing.T) {
	tests := []struct {
		name string
		code int
		body string
		kind apperr.Kind
	}{
		{name: "server error", code: http.StatusInternalServerError, body: `boom`, kind: apperr.Submission},
		{name: "forbidden", code: http.StatusForbidden, body: `{}`, kind: apperr.Auth},
		{name: "no task id", code: http.StatusOK, body: `{"status":"queued"}`, kind: apperr.Submission},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.code)
				_, _ = w.Write([]byte(tt.body))
			})
			_, err := h.Submit(context.Background(), model.TaskSubmission{TaskKind: "google", Query: "q"})
			require.Error(t, err)
			assert.Equal(t, tt.kind, apperr.KindOf(err))
		})
	}
}

func TestPoll(t *testing.T) {
	tests := []struct {
		name    string
		code    int
		body    string
		ready   bool
		wantErr bool
	}{
		{name: "ready", code: http.StatusOK, body: `{"answer":42}`, ready: true},
		{name: "accepted is pending", code: http.StatusAccepted, body: `{"status":"running"}`},
		{name: "not found is pending", code: http.StatusNotFound, body: ``},
		{name: "server error", code: http.StatusInternalServerError, body: `oops`, wantErr: true},
		{name: "ready but not json", code: http.StatusOK, body: `<html>`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/results/t-9", r.URL.Path)
				w.WriteHeader(tt.code)
				_, _ = w.Write([]byte(tt.body))
			})
			out, err := h.Poll(context.Background(), model.TaskHandle{TaskID: "t-9"})
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, apperr.Executor, apperr.KindOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.ready, out.Ready)
			if tt.ready {
				assert.JSONEq(t, tt.body, string(out.Result))
			}
		})
	}
}

func TestMetadataPassThrough(t *testing.T) {
	h := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/health":
			_, _ = w.Write([]byte(`{"status":"ok","version":"2.3.1"}`))
		case "/parsers":
			_, _ = w.Write([]byte(`[{"id":"google"}]`))
		case "/parsers/google":
			_, _ = w.Write([]byte(`{"id":"google","name":"Google"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
	ctx := context.Background()

	raw, err := h.ListParsers(ctx)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"google"}]`, string(raw))

	raw, err = h.GetParser(ctx, "google")
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"google","name":"Google"}`, string(raw))

	v, err := h.Version(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2.3.1", v)

	_, err = h.GetParser(ctx, "  ")
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))

	_, err = h.GetParser(ctx, "missing")
	assert.Equal(t, apperr.Executor, apperr.KindOf(err))
}

func TestKV(t *testing.T) {
	h := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/kv/present":
			_, _ = w.Write([]byte(`{"key":"present","value":"hello"}`))
		case r.Method == http.MethodGet:
			w.WriteHeader(http.StatusNotFound)
		case r.Method == http.MethodPost && r.URL.Path == "/kv":
			body := decodeBody(t, r)
			assert.Equal(t, "k", body["key"])
			assert.Equal(t, "v", body["value"])
			assert.Equal(t, float64(60), body["ttl"])
			w.WriteHeader(http.StatusCreated)
		}
	})
	ctx := context.Background()

	v, found, err := h.KVGet(ctx, "present")
	require.NoError(t, err)
	assert.True(t, found)
	assert.JSONEq(t, `"hello"`, string(v))

	_, found, err = h.KVGet(ctx, "absent")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, h.KVSet(ctx, "k", "v", 60))
}

func TestTransportErrorIsDescribed(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := New(url).Health(context.Background())
	require.Error(t, err)
	assert.Equal(t, apperr.Transport, apperr.KindOf(err))
}

func TestStatusErrorMasksSecrets(t *testing.T) {
	err := statusError(apperr.Executor, "kv get", 500, []byte(`{"password":"hunter2"}`))
	assert.NotContains(t, err.Error(), "hunter2")
	assert.Equal(t, 500, err.Status)
}

func TestStatusErrorTruncatesOnRuneBoundary(t *testing.T) {
	body := strings.Repeat("a", maxDetailBytes-1) + strings.Repeat("é", 10)
	err := statusError(apperr.Executor, "submit", 502, []byte(body))

	msg := apperr.Message(err)
	assert.True(t, utf8.ValidString(msg), "message is not valid UTF-8: %q", msg)
	assert.True(t, strings.HasSuffix(msg, strings.Repeat("a", 10)+"..."), "message = %q", msg)
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		n    int
		want string
	}{
		{name: "short", in: "abc", n: 5, want: "abc"},
		{name: "exact", in: "abcde", n: 5, want: "abcde"},
		{name: "ascii", in: "abcdef", n: 3, want: "abc..."},
		{name: "inside rune", in: "aé", n: 2, want: "a..."},
		{name: "rune boundary", in: "éé", n: 2, want: "é..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := truncate(tt.in, tt.n); got != tt.want {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
			}
		})
	}
}

func TestWithEndpointsRoutesUnderPrefix(t *testing.T) {
	endpoints := DefaultEndpoints()
	endpoints.Health = "/api/v1/health"
	endpoints.Result = "/api/v1/results/{id}"

	h := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/health":
			_, _ = w.Write([]byte(`{"status":"ok","version":"2.1"}`))
		case "/api/v1/results/t 1":
			_, _ = w.Write([]byte(`{"data":"x"}`))
		default:
			http.NotFound(w, r)
		}
	}, WithEndpoints(endpoints))

	v, err := h.Version(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "2.1", v)

	out, err := h.Poll(context.Background(), model.TaskHandle{TaskID: "t 1"})
	require.NoError(t, err)
	assert.True(t, out.Ready)
}
