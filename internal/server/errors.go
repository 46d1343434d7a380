package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/abhisek/studyplan/internal/app"
	"github.com/abhisek/studyplan/internal/session"
	"github.com/abhisek/studyplan/internal/store"
)

// apiError is the error body of every failed response.
type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	Err     error  `json:"-"`
}

func (e *apiError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *apiError) Unwrap() error {
	return e.Err
}

var (
	errNotFound   = &apiError{Code: "NOT_FOUND", Status: http.StatusNotFound, Message: "resource not found"}
	errConflict   = &apiError{Code: "INVALID_TRANSITION", Status: http.StatusConflict, Message: "invalid session transition"}
	errValidation = &apiError{Code: "VALIDATION_ERROR", Status: http.StatusBadRequest, Message: "validation failed"}
	errInternal   = &apiError{Code: "INTERNAL_ERROR", Status: http.StatusInternalServerError, Message: "internal server error"}
)

// wrap returns a copy of base carrying err. The message is err's text for
// client errors and the generic message for internal ones.
func wrap(base *apiError, err error) *apiError {
	e := *base
	e.Err = err
	if base.Status < http.StatusInternalServerError && err != nil {
		e.Message = err.Error()
	}
	return &e
}

func invalid(err error) *apiError {
	return wrap(errValidation, err)
}

// fromError maps domain errors onto API errors.
func fromError(err error) *apiError {
	var e *apiError
	switch {
	case errors.As(err, &e):
		return e
	case errors.Is(err, store.ErrNotFound), errors.Is(err, app.ErrNoStudent):
		return wrap(errNotFound, err)
	case errors.Is(err, session.ErrInvalidTransition):
		return wrap(errConflict, err)
	case errors.Is(err, session.ErrInvalidFeedback), errors.Is(err, session.ErrInvalidStartTime):
		return wrap(errValidation, err)
	default:
		return wrap(errInternal, err)
	}
}
