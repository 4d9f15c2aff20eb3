package app

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haguru/signup/internal/routes"
)

const validConfig = `service_name: signup
loglevel: error
host: localhost
port: "0"
api:
  base_url: http://localhost:8081
  timeout: 1s
session:
  ttl: 1m
  sweep_interval: 1s
rate_limit:
  requests_per_second: 0.001
  burst: 1
`

func writeConfig(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestNewApp(t *testing.T) {
	tests := []struct {
		name    string
		config  string
		wantErr bool
	}{
		{
			name:    "valid config",
			config:  validConfig,
			wantErr: false,
		},
		{
			name:    "invalid base url",
			config:  strings.Replace(validConfig, "http://localhost:8081", "not a url", 1),
			wantErr: true,
		},
		{
			name:    "missing session ttl",
			config:  strings.Replace(validConfig, "  ttl: 1m\n", "", 1),
			wantErr: true,
		},
		{
			name:    "malformed yaml",
			config:  "service_name: [unclosed",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, err := NewApp(writeConfig(t, tt.config))
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, app)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "signup", app.Config.ServiceName)
		})
	}

	_, err := NewApp(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestApp_Routes(t *testing.T) {
	app, err := NewApp(writeConfig(t, validConfig))
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	app.Server.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `data-testid="sign-up-form"`)
	assert.Contains(t, rr.Body.String(), `hx-post="`+routes.SubmitRoute+`"`)
	assert.Equal(t, 1, app.Pages.Len())

	rr = httptest.NewRecorder()
	app.Server.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/unknown", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = httptest.NewRecorder()
	app.Server.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, routes.MetricsRoute, nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	body, err := io.ReadAll(rr.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "signup_sessions_mounted_total 1")
	assert.Contains(t, string(body), "signup_form_submissions_total 0")
	assert.Contains(t, string(body), "signup_users_api_requests_total 0")
}

func TestApp_SubmitIsRateLimited(t *testing.T) {
	app, err := NewApp(writeConfig(t, validConfig))
	require.NoError(t, err)

	submit := func() int {
		rr := httptest.NewRecorder()
		app.Server.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, routes.SubmitRoute, nil))
		return rr.Code
	}

	assert.Equal(t, http.StatusOK, submit())
	assert.Equal(t, http.StatusTooManyRequests, submit())

	rr := httptest.NewRecorder()
	app.Server.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, routes.MetricsRoute, nil))
	assert.Contains(t, rr.Body.String(), "signup_submit_rate_limited_total 1")
}

func TestApp_RunStopsOnCancel(t *testing.T) {
	app, err := NewApp(writeConfig(t, validConfig))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- app.run(ctx)
	}()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("run did not return after cancel")
	}
}
