// Package apperr defines the error taxonomy shared by every handler and
// repository. Kinds are sentinel errors so callers can match with errors.Is
// no matter how deeply a repository wrapped them.
package apperr

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

var (
	// ErrNotFound covers both a missing row and a row outside the caller's
	// ownership chain. The two are deliberately indistinguishable.
	ErrNotFound = errors.New("not found")

	// ErrNoFieldsToUpdate is returned when a patch request carries no
	// recognized field at all. Distinct from ErrNotFound.
	ErrNoFieldsToUpdate = errors.New("no fields to update")

	ErrInvalidDateRange = errors.New("planting date cannot be later than harvest date")
	ErrInvalidInput     = errors.New("invalid input")
	ErrConflict         = errors.New("already exists")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrUpstream         = errors.New("upstream unavailable")
)

// With attaches a human-readable message to a kind while keeping the kind
// matchable with errors.Is.
func With(kind error, msg string) error { return &withMsg{kind: kind, msg: msg} }

type withMsg struct {
	kind error
	msg  string
}

func (e *withMsg) Error() string { return e.msg }
func (e *withMsg) Unwrap() error { return e.kind }

// Status maps an error kind to its stable HTTP status code.
func Status(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrNoFieldsToUpdate),
		errors.Is(err, ErrInvalidDateRange),
		errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrUpstream):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// JSON writes the error as the {"error": "..."} payload every controller
// uses. Store-level failures stay opaque to the client.
func JSON(c echo.Context, err error) error {
	st := Status(err)
	msg := err.Error()
	if st == http.StatusInternalServerError {
		msg = "internal server error"
	}
	return c.JSON(st, map[string]string{"error": msg})
}
