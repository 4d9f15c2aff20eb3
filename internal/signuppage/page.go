// Package signuppage implements the sign-up form component: the in-memory
// form state, the input and click handlers, the single asynchronous call to
// the users API, and rendering to accessible HTML.
//
// A Page is safe for concurrent use. Event handlers and the request
// resolution are serialized by the page's mutex, which takes the place of a
// single UI event loop.
package signuppage

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/haguru/signup/internal/apiclient"
	"github.com/haguru/signup/internal/interfaces"
	"github.com/haguru/signup/internal/models"
	"github.com/haguru/signup/internal/models/dto"
	"github.com/haguru/signup/pkg/helper"
	"github.com/haguru/signup/pkg/zerolog"
)

var (
	ErrUnknownField = errors.New("unknown form field")
	// ErrFormClosed is returned for input after a successful sign-up replaced the form.
	ErrFormClosed = errors.New("sign-up form is no longer rendered")
)

// Page is one mounted sign-up form.
type Page struct {
	api       interfaces.UsersAPI
	logger    interfaces.Logger
	metrics   interfaces.Metrics
	endpoints Endpoints

	mu     sync.Mutex
	state  models.SignUpFormState
	failed bool
	// done is closed when the latest submission has been resolved.
	done chan struct{}
}

// Option configures a Page.
type Option func(*Page)

func WithLogger(logger interfaces.Logger) Option {
	return func(p *Page) {
		p.logger = logger
	}
}

// WithMetrics records submissions into m. The metric names in constants.go
// must already be registered.
func WithMetrics(m interfaces.Metrics) Option {
	return func(p *Page) {
		p.metrics = m
	}
}

// WithEndpoints sets the URLs the rendered HTML posts to and polls.
func WithEndpoints(e Endpoints) Option {
	return func(p *Page) {
		p.endpoints = e
	}
}

// New mounts a fresh sign-up form backed by api.
func New(api interfaces.UsersAPI, opts ...Option) *Page {
	p := &Page{
		api:       api,
		logger:    zerolog.NewNopLogger(),
		endpoints: DefaultEndpoints,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Input stores the current value of an input, as an input event carries it.
func (p *Page) Input(field models.Field, value string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state.SuccessfullySignedUp {
		return ErrFormClosed
	}
	if !p.state.SetValue(field, value) {
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return nil
}

// ButtonEnabled reports whether the submit button accepts clicks.
func (p *Page) ButtonEnabled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state.CanSubmit()
}

// Click presses the submit button. When the button is disabled nothing
// happens and Click returns false. Otherwise the form enters the submitting
// state and exactly one request is started; the button stays disabled until
// that request resolves, so further clicks are no-ops.
//
// The request is not canceled when ctx is: once sent it runs to completion.
func (p *Page) Click(ctx context.Context) bool {
	funcName := helper.GetFuncName()

	p.mu.Lock()
	if !p.state.CanSubmit() {
		p.mu.Unlock()
		p.logger.Debug("Ignoring click on disabled button", "func", funcName)
		return false
	}
	p.state.APIProgress = true
	p.state.ValidationErrors = nil
	p.failed = false
	req := dto.SignUpRequestDTO{
		Username: p.state.Username,
		Email:    p.state.Email,
		Password: p.state.Password,
	}
	done := make(chan struct{})
	p.done = done
	p.mu.Unlock()

	p.logger.Info("Submitting sign-up", "func", funcName, "user", req.Username)
	if p.metrics != nil {
		p.metrics.IncCounter(SubmissionsTotal)
		p.metrics.IncGauge(SubmissionsInFlight)
	}

	go p.submit(context.WithoutCancel(ctx), req, done)
	return true
}

func (p *Page) submit(ctx context.Context, req dto.SignUpRequestDTO, done chan struct{}) {
	funcName := helper.GetFuncName()
	defer close(done)

	start := time.Now()
	err := p.api.CreateUser(ctx, req)
	duration := time.Since(start).Seconds()

	var errs models.ValidationErrors
	var failure *apiclient.ValidationFailure
	if errors.As(err, &failure) {
		errs = failure.Errors.Clone()
	}

	p.mu.Lock()
	p.state.APIProgress = false
	if err == nil {
		p.state.SuccessfullySignedUp = true
	} else {
		p.state.ValidationErrors = errs
		p.failed = true
	}
	p.mu.Unlock()

	if p.metrics != nil {
		p.metrics.DecGauge(SubmissionsInFlight)
		p.metrics.ObserveHistogram(SubmitDurationSeconds, duration)
		if err == nil {
			p.metrics.IncCounter(SubmitSuccessTotal)
		} else {
			p.metrics.IncCounter(SubmitFailedTotal)
			for _, field := range errs.Fields() {
				p.metrics.IncCounterVec(ValidationErrorsTotal, field)
			}
		}
	}

	if err != nil {
		p.logger.Warn("Sign-up failed", "func", funcName, "user", req.Username,
			"fields", errs.Fields(), "error", err)
		return
	}
	p.logger.Info("Sign-up succeeded", "func", funcName, "user", req.Username)
}

// Wait blocks until the outstanding submission, if any, has been resolved.
func (p *Page) Wait(ctx context.Context) error {
	p.mu.Lock()
	done := p.done
	p.mu.Unlock()

	if done == nil {
		return nil
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// State returns a copy of the current form state.
func (p *Page) State() models.SignUpFormState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state.Clone()
}

// Status returns the lifecycle state of the form.
func (p *Page) Status() models.FormStatus {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.status()
}

func (p *Page) status() models.FormStatus {
	switch {
	case p.state.SuccessfullySignedUp:
		return models.StatusSucceeded
	case p.state.APIProgress:
		return models.StatusSubmitting
	case p.failed:
		return models.StatusFailed
	default:
		return models.StatusIdle
	}
}
