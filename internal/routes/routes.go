package routes

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/samber/lo"

	"github.com/haguru/signup/internal/interfaces"
	"github.com/haguru/signup/internal/models"
	"github.com/haguru/signup/internal/models/dto"
	"github.com/haguru/signup/internal/session"
	"github.com/haguru/signup/internal/signuppage"
	"github.com/haguru/signup/pkg/helper"
)

type Route struct {
	Metrics interfaces.Metrics
	Logger  interfaces.Logger
	Pages   *session.Store[*signuppage.Page]
}

// NewRoute creates a new Route instance.
func NewRoute(metrics interfaces.Metrics, logger interfaces.Logger, pages *session.Store[*signuppage.Page]) *Route {
	return &Route{
		Metrics: metrics,
		Logger:  logger,
		Pages:   pages,
	}
}

// Index serves the full sign-up document, mounting a page on the first visit.
func (r *Route) Index(w http.ResponseWriter, req *http.Request) {
	if !r.allowMethod(w, req, http.MethodGet) {
		return
	}

	page := r.page(w, req)
	r.render(w, req, page.RenderDocument)
}

// Fragment serves the current form fragment. The page polls it while a
// request is outstanding.
func (r *Route) Fragment(w http.ResponseWriter, req *http.Request) {
	if !r.allowMethod(w, req, http.MethodGet) {
		return
	}

	page := r.page(w, req)
	r.render(w, req, page.Render)
}

// Input applies the posted field values and answers with the submit button.
func (r *Route) Input(w http.ResponseWriter, req *http.Request) {
	if !r.allowMethod(w, req, http.MethodPost) {
		return
	}

	page := r.page(w, req)
	if err := r.applyForm(req, page); err != nil {
		w.Header().Set(ContentType, ContentTypeJson)
		w.WriteHeader(http.StatusBadRequest)
		r.errorResponse(w, err, ErrInvalidRequestBody)
		return
	}
	r.render(w, req, page.RenderButton)
}

// Submit applies the posted field values, presses the button and answers
// with the fragment.
func (r *Route) Submit(w http.ResponseWriter, req *http.Request) {
	if !r.allowMethod(w, req, http.MethodPost) {
		return
	}

	page := r.page(w, req)
	if err := r.applyForm(req, page); err != nil {
		w.Header().Set(ContentType, ContentTypeJson)
		w.WriteHeader(http.StatusBadRequest)
		r.errorResponse(w, err, ErrInvalidRequestBody)
		return
	}

	if !page.Click(req.Context()) {
		r.Logger.Debug("Submit ignored", "func", helper.GetFuncName(), "status", page.Status().String())
	}
	r.render(w, req, page.Render)
}

// page returns the caller's mounted page, mounting a new one and setting
// the session cookie when the cookie is missing or stale.
func (r *Route) page(w http.ResponseWriter, req *http.Request) *signuppage.Page {
	var id string
	if cookie, err := req.Cookie(SessionCookieName); err == nil {
		id = cookie.Value
	}

	sessionID, page := r.Pages.GetOrMount(id)
	if sessionID != id {
		http.SetCookie(w, &http.Cookie{
			Name:     SessionCookieName,
			Value:    sessionID,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
		if r.Metrics != nil {
			r.Metrics.IncCounter(SessionsMountedTotal)
		}
	}
	return page
}

// applyForm feeds every posted form field into the page. Fields that are
// absent from the body are left untouched; unknown keys are ignored.
func (r *Route) applyForm(req *http.Request, page *signuppage.Page) error {
	if err := req.ParseForm(); err != nil {
		return fmt.Errorf("failed to parse form: %w", err)
	}

	posted := lo.Filter(models.Fields, func(f models.Field, _ int) bool {
		return req.PostForm.Has(string(f))
	})
	for _, field := range posted {
		err := page.Input(field, req.PostForm.Get(string(field)))
		if errors.Is(err, signuppage.ErrFormClosed) {
			return nil
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *Route) render(w http.ResponseWriter, req *http.Request, fn func(io.Writer) error) {
	w.Header().Set(ContentType, ContentTypeHTML)
	if err := fn(w); err != nil {
		r.Logger.Error("Failed to render page", "path", req.URL.Path, "error", err)
		w.Header().Set(ContentType, ContentTypeJson)
		w.WriteHeader(http.StatusInternalServerError)
		r.errorResponse(w, err, ErrFailedToRender)
	}
}

func (r *Route) allowMethod(w http.ResponseWriter, req *http.Request, method string) bool {
	if req.Method == method {
		return true
	}
	w.Header().Set(ContentType, ContentTypeJson)
	w.Header().Set("Allow", method)
	w.WriteHeader(http.StatusMethodNotAllowed)
	r.errorResponse(w, fmt.Errorf(ErrMethodNotAllowedFmt, req.Method), ErrMethodNotAllowed)
	return false
}

func (r *Route) errorResponse(w http.ResponseWriter, err error, message string) {
	resp := dto.ErrorResponse{
		Error:   err.Error(),
		Message: message,
	}
	_ = json.NewEncoder(w).Encode(resp)
}
