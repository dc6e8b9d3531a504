package weberr

import (
	"errors"
	"net/http"

	"github.com/rfallows/campgrounds/internal/model"
	"github.com/rfallows/campgrounds/internal/services/auth"
	"github.com/rfallows/campgrounds/internal/validate"
)

// Kind classifies an error for the centralized responder
type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindForbidden
	KindNotAuthenticated
	KindValidation
)

// Error is an error carrying enough context for the responder to pick a
// status code and a user-facing message without leaking internals
type Error struct {
	kind       Kind
	status     int
	message    string
	redirect   string // for flash-and-redirect kinds
	violations *validate.Violations
	err        error
}

// Error implements error
func (e *Error) Error() string {
	if e.err != nil {
		return e.err.Error()
	}
	return e.message
}

// Unwrap exposes the wrapped cause
func (e *Error) Unwrap() error {
	return e.err
}

// Kind returns the error's classification
func (e *Error) Kind() Kind { return e.kind }

// Status returns the HTTP status the responder should write
func (e *Error) Status() int { return e.status }

// Message returns the user-facing message
func (e *Error) Message() string { return e.message }

// Redirect returns where a flash-and-redirect kind should send the user
func (e *Error) Redirect() string { return e.redirect }

// Violations returns field-level detail for validation errors, or nil
func (e *Error) Violations() *validate.Violations { return e.violations }

// NotFound creates a 404-kind error
func NotFound(message string) *Error {
	return &Error{kind: KindNotFound, status: http.StatusNotFound, message: message}
}

// Forbidden creates an error that flashes and redirects rather than
// exposing a bare permission page
func Forbidden(message, redirect string) *Error {
	return &Error{kind: KindForbidden, status: http.StatusForbidden, message: message, redirect: redirect}
}

// NotAuthenticated creates an error that redirects to the sign-in entry
// point, preserving the originally requested destination
func NotAuthenticated(next string) *Error {
	return &Error{
		kind:     KindNotAuthenticated,
		status:   http.StatusSeeOther,
		message:  "You must be signed in first",
		redirect: "/login?next=" + next,
	}
}

// Validation creates a 400-kind error carrying field-level detail
func Validation(v *validate.Violations) *Error {
	return &Error{
		kind:       KindValidation,
		status:     http.StatusBadRequest,
		message:    "Submission is invalid",
		violations: v,
		err:        v,
	}
}

// From classifies an arbitrary error. Storage sentinels map to NotFound;
// anything unrecognized becomes a logged 500 with a generic message.
func From(err error) *Error {
	var we *Error
	if errors.As(err, &we) {
		return we
	}

	var violations *validate.Violations
	if errors.As(err, &violations) {
		return Validation(violations)
	}

	switch {
	case errors.Is(err, model.ErrCampgroundNotFound):
		return NotFound("Campground not found")
	case errors.Is(err, model.ErrReviewNotFound):
		return NotFound("Review not found")
	case errors.Is(err, model.ErrIdentityNotFound):
		return NotFound("User not found")
	case errors.Is(err, auth.ErrInvalidCredentials):
		return &Error{kind: KindForbidden, status: http.StatusUnauthorized, message: "Invalid username or password", err: err}
	default:
		return &Error{kind: KindInternal, status: http.StatusInternalServerError, message: "Something went wrong", err: err}
	}
}
