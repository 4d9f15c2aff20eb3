package models

import (
	"sort"

	structValidator "github.com/go-playground/validator/v10"
	"github.com/samber/lo"
)

// Field identifies one of the sign-up form inputs. Its value doubles as the
// input id, the form parameter name and the key used by the backend in
// validation error payloads.
type Field string

const (
	FieldUsername       Field = "username"
	FieldEmail          Field = "email"
	FieldPassword       Field = "password"
	FieldPasswordRepeat Field = "passwordRepeat"
)

// Fields lists the form inputs in render order.
var Fields = []Field{FieldUsername, FieldEmail, FieldPassword, FieldPasswordRepeat}

var fieldLabels = map[Field]string{
	FieldUsername:       "Username",
	FieldEmail:          "E-mail",
	FieldPassword:       "Password",
	FieldPasswordRepeat: "Password Repeat",
}

// Label returns the visible label of the input.
func (f Field) Label() string {
	return fieldLabels[f]
}

// InputType returns the HTML input type used for the field.
func (f Field) InputType() string {
	switch f {
	case FieldPassword, FieldPasswordRepeat:
		return "password"
	case FieldEmail:
		return "email"
	default:
		return "text"
	}
}

// Valid reports whether f is one of the known form inputs.
func (f Field) Valid() bool {
	_, ok := fieldLabels[f]
	return ok
}

// FormStatus is the observable lifecycle state of a sign-up form.
type FormStatus int

const (
	StatusIdle FormStatus = iota
	StatusSubmitting
	StatusSucceeded
	StatusFailed
)

func (s FormStatus) String() string {
	switch s {
	case StatusSubmitting:
		return "submitting"
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	default:
		return "idle"
	}
}

// ValidationErrors maps a field name to the message the backend returned for it.
// A missing key means the field has no error.
type ValidationErrors map[string]string

// Get returns the message for the field, or "" when the field has no error.
func (v ValidationErrors) Get(field string) string {
	return v[field]
}

func (v ValidationErrors) Has(field string) bool {
	_, ok := v[field]
	return ok
}

func (v ValidationErrors) Len() int {
	return len(v)
}

// Fields returns the erroring field names in sorted order.
func (v ValidationErrors) Fields() []string {
	keys := lo.Keys(v)
	sort.Strings(keys)
	return keys
}

// Clone returns an independent copy. Cloning an empty or nil mapping returns nil.
func (v ValidationErrors) Clone() ValidationErrors {
	if len(v) == 0 {
		return nil
	}
	out := make(ValidationErrors, len(v))
	for k, msg := range v {
		out[k] = msg
	}
	return out
}

// SignUpFormState is the in-memory state of one mounted sign-up form.
type SignUpFormState struct {
	Username       string
	Email          string
	Password       string
	PasswordRepeat string

	// APIProgress is true while a submission request is outstanding.
	APIProgress bool
	// SuccessfullySignedUp is true once the backend accepted the submission.
	SuccessfullySignedUp bool

	ValidationErrors ValidationErrors
}

type passwordPair struct {
	Password       string `validate:"required"`
	PasswordRepeat string `validate:"required,eqfield=Password"`
}

// validate is safe for concurrent use and caches struct metadata.
var validate = structValidator.New()

// PasswordsMatch reports whether both passwords are non-empty and equal.
func (s SignUpFormState) PasswordsMatch() bool {
	return validate.Struct(passwordPair{
		Password:       s.Password,
		PasswordRepeat: s.PasswordRepeat,
	}) == nil
}

// CanSubmit reports whether the submit button is enabled.
func (s SignUpFormState) CanSubmit() bool {
	return s.PasswordsMatch() && !s.APIProgress && !s.SuccessfullySignedUp
}

// Value returns the current value of the given input.
func (s SignUpFormState) Value(field Field) string {
	switch field {
	case FieldUsername:
		return s.Username
	case FieldEmail:
		return s.Email
	case FieldPassword:
		return s.Password
	case FieldPasswordRepeat:
		return s.PasswordRepeat
	default:
		return ""
	}
}

// SetValue stores value into the given input. It returns false for unknown fields.
func (s *SignUpFormState) SetValue(field Field, value string) bool {
	switch field {
	case FieldUsername:
		s.Username = value
	case FieldEmail:
		s.Email = value
	case FieldPassword:
		s.Password = value
	case FieldPasswordRepeat:
		s.PasswordRepeat = value
	default:
		return false
	}
	return true
}

// Clone returns a copy that shares no mutable data with s.
func (s SignUpFormState) Clone() SignUpFormState {
	s.ValidationErrors = s.ValidationErrors.Clone()
	return s
}
