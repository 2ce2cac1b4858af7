package main

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aria-lang/msaflow-go/api/handlers"
)

func get(t *testing.T, srv *httptest.Server, path string) (int, string) {
	t.Helper()
	resp, err := http.Get(srv.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestRouter(t *testing.T) {
	srv := httptest.NewServer(newRouter(handlers.NewAPI()))
	defer srv.Close()

	status, body := get(t, srv, "/health")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "OK", body)

	status, body = get(t, srv, "/")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "/api/alignment/counts")

	status, body = get(t, srv, "/api/matrix/blosum62/score/W/W")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `"score":11`)

	resp, err := http.Post(srv.URL+"/api/alignment/parse", "application/json",
		strings.NewReader(`{"phylip": "2 3\na         AC-\nb         ACG\n"}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	status, _ = get(t, srv, "/api/alignment/parse")
	assert.Equal(t, http.StatusMethodNotAllowed, status)
}
