// Package apiclient talks to the users backend on behalf of the sign-up page.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/haguru/signup/internal/interfaces"
	"github.com/haguru/signup/internal/metrics"
	"github.com/haguru/signup/internal/models"
	"github.com/haguru/signup/internal/models/dto"
	"github.com/haguru/signup/pkg/helper"
	"github.com/haguru/signup/pkg/zerolog"
)

const (
	// UsersPath is the user-creation endpoint relative to the API base URL.
	UsersPath = "/api/1.0/users"

	DefaultTimeout = 10 * time.Second

	// maxErrorBody caps how much of a failure body is read.
	maxErrorBody = 1 << 20
)

// ValidationFailure is returned when the backend answered with a non-2xx
// status. Errors holds the field-level messages of the response body, if any.
type ValidationFailure struct {
	StatusCode int
	Errors     models.ValidationErrors
}

func (e *ValidationFailure) Error() string {
	if e.Errors.Len() == 0 {
		return fmt.Sprintf("sign-up rejected with status %d", e.StatusCode)
	}
	return fmt.Sprintf("sign-up rejected with status %d: invalid fields %s",
		e.StatusCode, strings.Join(e.Errors.Fields(), ", "))
}

// Client implements interfaces.UsersAPI over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	logger     interfaces.Logger
	metrics    *metrics.ClientMetrics
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithTimeout bounds a whole request, including reading the response body.
// Zero keeps the HTTP client's own timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

func WithLogger(logger interfaces.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

func WithMetrics(m *metrics.ClientMetrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// NewClient creates a Client for the backend at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   DefaultTimeout,
		},
		logger: zerolog.NewNopLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.timeout > 0 {
		hc := *c.httpClient
		hc.Timeout = c.timeout
		c.httpClient = &hc
	}

	return c
}

// CreateUser posts the sign-up request. It returns nil for any 2xx response,
// a *ValidationFailure for any other status, and a wrapped transport error
// when no response was received.
func (c *Client) CreateUser(ctx context.Context, req dto.SignUpRequestDTO) error {
	funcName := helper.GetFuncName()

	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to encode sign-up request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+UsersPath, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	c.logger.Debug("Sending sign-up request", "func", funcName, "user", req.Username, "url", httpReq.URL.String())
	c.metrics.ObserveRequest()

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.metrics.ObserveTransportError()
		c.logger.Error("Sign-up request failed", "func", funcName, "user", req.Username, "error", err)
		return fmt.Errorf("failed to send sign-up request: %w", err)
	}
	defer resp.Body.Close()

	c.metrics.ObserveResponse(resp.StatusCode)

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		c.logger.Info("Sign-up accepted", "func", funcName, "user", req.Username, "status", resp.StatusCode)
		return nil
	}

	failure := &ValidationFailure{
		StatusCode: resp.StatusCode,
		Errors:     decodeValidationErrors(io.LimitReader(resp.Body, maxErrorBody)),
	}
	c.logger.Warn("Sign-up rejected", "func", funcName, "user", req.Username,
		"status", resp.StatusCode, "fields", failure.Errors.Fields())
	return failure
}

// decodeValidationErrors extracts the field errors of a failure body. A body
// that is absent, malformed or shaped differently yields no errors. Scalar
// messages that are not strings are converted; empty messages are dropped.
func decodeValidationErrors(r io.Reader) models.ValidationErrors {
	data, err := io.ReadAll(r)
	if err != nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}

	var payload dto.SignUpFailureResponseDTO
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &payload,
	})
	if err != nil {
		return nil
	}
	if err := decoder.Decode(raw); err != nil {
		return nil
	}

	errs := make(models.ValidationErrors, len(payload.ValidationErrors))
	for field, msg := range payload.ValidationErrors {
		if msg == "" {
			continue
		}
		errs[field] = msg
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}
