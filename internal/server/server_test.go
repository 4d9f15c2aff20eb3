package server

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haguru/signup/pkg/zerolog"
)

func TestServer_AddRoute(t *testing.T) {
	srv := NewServer("localhost", "0", zerolog.NewNopLogger()).(*Server)

	require.NoError(t, srv.AddRoute("GET /hello", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "hello")
	}))

	rr := httptest.NewRecorder()
	srv.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/hello", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "hello", rr.Body.String())

	rr = httptest.NewRecorder()
	srv.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/hello", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestServer_HandleConflict(t *testing.T) {
	srv := NewServer("localhost", "0", zerolog.NewNopLogger())
	h := http.NotFoundHandler()

	require.NoError(t, srv.Handle("/dup", h))
	assert.Error(t, srv.Handle("/dup", h))
}

func TestServer_ShutdownBeforeStart(t *testing.T) {
	srv := NewServer("localhost", "0", zerolog.NewNopLogger())
	assert.NoError(t, srv.Shutdown(context.Background()))
	assert.NoError(t, srv.ListenAndServe(), "a closed server returns ErrServerClosed which is not an error")
}
