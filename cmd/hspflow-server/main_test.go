package main

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aria-lang/hspflow/internal/config"
)

func newTestServer(t *testing.T) (*httptest.Server, *bytes.Buffer) {
	t.Helper()
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	srv := httptest.NewServer(newRouter(config.Default(), logger))
	t.Cleanup(srv.Close)
	return srv, &logs
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "OK", string(body))
}

func TestAnalyzeRoute(t *testing.T) {
	srv, logs := newTestServer(t)

	body := `{"query":"MKLV","hit":"MRLV","similarity":"M+LV","query_start":0,"query_end":4,"query_length":4,"query_frame":1}`
	resp, err := http.Post(srv.URL+"/api/hsp/analyze", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("Content-Type"))
	assert.Contains(t, logs.String(), "path=/api/hsp/analyze")
}

func TestMetricsRoute(t *testing.T) {
	srv, _ := newTestServer(t)

	post, err := http.Post(srv.URL+"/api/region", "application/json",
		strings.NewReader(`{"identical_positions":[1],"positive_positions":[1],"start":0,"end":2}`))
	require.NoError(t, err)
	post.Body.Close()

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "hspflow_http_requests_total")
}

func TestUnknownRoute(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/kmer/count")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
