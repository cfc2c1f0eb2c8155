package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/capmesh/capmesh/core"
)

type stubHandler struct {
	result    *core.CapabilityResult
	err       error
	lastInput string
	lastSess  string
}

func (h *stubHandler) Handle(_ context.Context, message, sessionID string) (*core.CapabilityResult, error) {
	h.lastInput = message
	h.lastSess = sessionID
	return h.result, h.err
}

func doRequest(t *testing.T, srv *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)
	return rec
}

func TestRun_Success(t *testing.T) {
	handler := &stubHandler{result: core.NewCapabilityResult("echo", "hello")}
	srv := New(handler)

	rec := doRequest(t, srv, http.MethodPost, "/run", `{"input":"echo hello","session_id":"abc"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "echo hello", handler.lastInput)
	assert.Equal(t, "abc", handler.lastSess)

	var result core.CapabilityResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "echo", result.Capability)
	assert.Equal(t, "hello", result.Output)
	assert.True(t, result.Success)
}

func TestRun_BadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "invalid json", body: `{"input":`},
		{name: "empty input", body: `{"input":""}`},
		{name: "whitespace input", body: `{"input":"   "}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := New(&stubHandler{result: core.NewCapabilityResult("echo", "x")})
			rec := doRequest(t, srv, http.MethodPost, "/run", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestRun_HandlerError(t *testing.T) {
	srv := New(&stubHandler{err: errors.New("unknown capability: \"teleport\"")})

	rec := doRequest(t, srv, http.MethodPost, "/run", `{"input":"teleport me"}`)
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body["error"], "unknown capability")
}

func TestRun_MethodNotAllowed(t *testing.T) {
	srv := New(&stubHandler{})
	rec := doRequest(t, srv, http.MethodGet, "/run", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHealth(t *testing.T) {
	srv := New(&stubHandler{})
	rec := doRequest(t, srv, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}
