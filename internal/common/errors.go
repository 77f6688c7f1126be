// Package common defines shared constants and sentinel errors used across
// the identity service, its backends and the local store. Callers should use
// errors.Is to match these values and Code to obtain the stable code string.
package common

import (
	"errors"
	"net/http"
)

var (
	// Repository-level errors.
	ErrNotFound = errors.New("NOT_FOUND")

	// Input rejected before any I/O.
	ErrValidation  = errors.New("VALIDATION_ERROR")
	ErrInvalidData = errors.New("INVALID_DATA")

	// Identity errors.
	ErrUserNotFound       = errors.New("USER_NOT_FOUND")
	ErrUserAlreadyExists  = errors.New("USER_ALREADY_EXISTS")
	ErrInvalidCredentials = errors.New("INVALID_CREDENTIALS")
	ErrUnauthorized       = errors.New("UNAUTHORIZED")

	// Transport errors.
	ErrUnavailable       = errors.New("SERVICE_UNAVAILABLE")
	ErrMalformedResponse = errors.New("MALFORMED_RESPONSE")
	ErrRequestFailed     = errors.New("REQUEST_FAILED")
)

// APIError carries one of the sentinel kinds above together with the HTTP
// status (0 when no response was received) and a human-readable detail.
type APIError struct {
	Kind   error
	Status int
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return e.Kind.Error()
	}
	return e.Kind.Error() + ": " + e.Detail
}

func (e *APIError) Unwrap() error {
	return e.Kind
}

// NewAPIError builds an APIError of the given kind.
func NewAPIError(kind error, status int, detail string) *APIError {
	return &APIError{Kind: kind, Status: status, Detail: detail}
}

var codedKinds = []error{
	ErrValidation,
	ErrInvalidData,
	ErrUserNotFound,
	ErrUserAlreadyExists,
	ErrInvalidCredentials,
	ErrUnauthorized,
	ErrUnavailable,
	ErrMalformedResponse,
	ErrRequestFailed,
	ErrNotFound,
}

// Code returns the machine-checkable code of err, e.g. "USER_NOT_FOUND".
// Errors outside the taxonomy yield "REQUEST_FAILED"; nil yields "".
func Code(err error) string {
	if err == nil {
		return ""
	}
	for _, k := range codedKinds {
		if errors.Is(err, k) {
			return k.Error()
		}
	}
	return ErrRequestFailed.Error()
}

// Detail returns the human-readable part of err when it is an APIError,
// and err.Error() otherwise.
func Detail(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if apiErr.Detail != "" {
			return apiErr.Detail
		}
		return apiErr.Kind.Error()
	}
	return err.Error()
}

// IsTransient reports whether err is worth retrying later.
func IsTransient(err error) bool {
	return errors.Is(err, ErrUnavailable)
}

// StatusText is http.StatusText with a numeric fallback for unknown codes.
func StatusText(status int) string {
	if s := http.StatusText(status); s != "" {
		return s
	}
	return "unknown status"
}
