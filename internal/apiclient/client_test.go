package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haguru/signup/internal/metrics"
	"github.com/haguru/signup/internal/models"
	"github.com/haguru/signup/internal/models/dto"
)

var validRequest = dto.SignUpRequestDTO{
	Username: "user1",
	Email:    "user1@mail.com",
	Password: "P4ssword",
}

func TestClient_CreateUser_SendsRequest(t *testing.T) {
	var (
		gotMethod      string
		gotPath        string
		gotContentType string
		gotBody        map[string]any
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotContentType = r.Header.Get("Content-Type")
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotBody)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(server.URL+"/", WithHTTPClient(server.Client()))
	err := client.CreateUser(context.Background(), validRequest)
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/api/1.0/users", gotPath)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, map[string]any{
		"username": "user1",
		"email":    "user1@mail.com",
		"password": "P4ssword",
	}, gotBody)
}

func TestClient_CreateUser_Responses(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantErr     bool
		wantFailure bool
		wantErrors  models.ValidationErrors
	}{
		{
			name:   "200 is success",
			status: http.StatusOK,
		},
		{
			name:   "201 with body is success",
			status: http.StatusCreated,
			body:   `{"message":"User created"}`,
		},
		{
			name:        "400 with field errors",
			status:      http.StatusBadRequest,
			body:        `{"validationErrors":{"username":"Username cannot be null"}}`,
			wantErr:     true,
			wantFailure: true,
			wantErrors:  models.ValidationErrors{"username": "Username cannot be null"},
		},
		{
			name:        "400 without body",
			status:      http.StatusBadRequest,
			wantErr:     true,
			wantFailure: true,
		},
		{
			name:        "400 with malformed body",
			status:      http.StatusBadRequest,
			body:        `{"validationErrors":`,
			wantErr:     true,
			wantFailure: true,
		},
		{
			name:        "400 with unrelated body",
			status:      http.StatusBadRequest,
			body:        `{"message":"bad"}`,
			wantErr:     true,
			wantFailure: true,
		},
		{
			name:        "400 with non string messages",
			status:      http.StatusBadRequest,
			body:        `{"validationErrors":{"email":42,"username":""}}`,
			wantErr:     true,
			wantFailure: true,
			wantErrors:  models.ValidationErrors{"email": "42"},
		},
		{
			name:        "500 is a failure",
			status:      http.StatusInternalServerError,
			body:        `<html>oops</html>`,
			wantErr:     true,
			wantFailure: true,
		},
		{
			name:        "304 is not success",
			status:      http.StatusNotModified,
			wantErr:     true,
			wantFailure: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if tt.body != "" {
					w.Header().Set("Content-Type", "application/json")
				}
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}))
			defer server.Close()

			m := metrics.NewClientMetrics("test", nil)
			client := NewClient(server.URL, WithHTTPClient(server.Client()), WithMetrics(m))
			err := client.CreateUser(context.Background(), validRequest)

			if !tt.wantErr {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)

			var failure *ValidationFailure
			if !tt.wantFailure {
				assert.False(t, errors.As(err, &failure))
				return
			}
			require.True(t, errors.As(err, &failure))
			assert.Equal(t, tt.status, failure.StatusCode)
			assert.Equal(t, tt.wantErrors, failure.Errors)
			assert.Equal(t, 1.0, testutil.ToFloat64(m.Requests))
		})
	}
}

func TestClient_CreateUser_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	m := metrics.NewClientMetrics("test", nil)
	client := NewClient(url, WithMetrics(m))
	err := client.CreateUser(context.Background(), validRequest)
	require.Error(t, err)

	var failure *ValidationFailure
	assert.False(t, errors.As(err, &failure))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Errors))
}

func TestClient_CreateUser_Timeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer server.Close()
	defer close(release)

	client := NewClient(server.URL, WithHTTPClient(server.Client()), WithTimeout(50*time.Millisecond))
	err := client.CreateUser(context.Background(), validRequest)
	require.Error(t, err)

	var failure *ValidationFailure
	assert.False(t, errors.As(err, &failure))
}

func TestNewClient_TimeoutDoesNotMutateCallerClient(t *testing.T) {
	hc := &http.Client{Timeout: time.Minute}
	client := NewClient("http://example.test", WithHTTPClient(hc), WithTimeout(time.Second))

	assert.Equal(t, time.Minute, hc.Timeout)
	assert.Equal(t, time.Second, client.httpClient.Timeout)
}

func TestValidationFailure_Error(t *testing.T) {
	plain := &ValidationFailure{StatusCode: 400}
	assert.Equal(t, "sign-up rejected with status 400", plain.Error())

	withFields := &ValidationFailure{
		StatusCode: 400,
		Errors:     models.ValidationErrors{"username": "x", "email": "y"},
	}
	assert.True(t, strings.HasSuffix(withFields.Error(), "invalid fields email, username"))
}
