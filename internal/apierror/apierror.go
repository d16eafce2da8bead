// Package apierror provides the standardized error envelope for the API.
// All 4xx/5xx responses go through this package so clients always receive
// {mensaje, error?} and never a stack trace or raw DB error.
package apierror

import (
	"errors"
	"net/http"
)

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Mensaje string `json:"mensaje"`
	Error   string `json:"error,omitempty"`
}

func New(mensaje string) *APIError {
	return &APIError{Mensaje: mensaje}
}

// Wrap attaches the underlying error message to the envelope. Used only for
// 500 responses where the contract surfaces the persistence error to the caller.
func Wrap(mensaje string, err error) *APIError {
	e := &APIError{Mensaje: mensaje}
	if err != nil {
		e.Error = err.Error()
	}
	return e
}

// Error is a status-carrying error returned by services so handlers can map
// business failures to the right HTTP code without string matching.
type Error struct {
	Status  int
	Mensaje string
}

func (e *Error) Error() string { return e.Mensaje }

func BadRequest(mensaje string) *Error {
	return &Error{Status: http.StatusBadRequest, Mensaje: mensaje}
}

func Unauthorized(mensaje string) *Error {
	return &Error{Status: http.StatusUnauthorized, Mensaje: mensaje}
}

func Forbidden(mensaje string) *Error {
	return &Error{Status: http.StatusForbidden, Mensaje: mensaje}
}

func NotFound(mensaje string) *Error {
	return &Error{Status: http.StatusNotFound, Mensaje: mensaje}
}

// AsError unwraps err into a status-carrying *Error, or nil when err is an
// unexpected failure that should surface as a 500.
func AsError(err error) *Error {
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}
