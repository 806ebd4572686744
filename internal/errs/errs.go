// Package errs defines the error taxonomy shared by the business flows.
// Every user-facing failure is classified by Kind; anything unexpected from
// the storage, hashing or token layers is wrapped as KindInternal with a
// generic message, the original error stays available via Unwrap for logging.
package errs

import "net/http"

// Kind classifies a flow error
type Kind int

const (
	KindValidation   Kind = iota + 1 // missing or malformed input
	KindConflict                     // duplicate unique field
	KindNotFound                     // no matching record
	KindUnauthorized                 // credential mismatch
	KindInternal                     // unexpected lower-layer failure
)

// HTTPStatus returns the HTTP status code for the kind
func (k Kind) HTTPStatus() int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	case KindNotFound:
		return http.StatusNotFound
	case KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// Error is a classified flow error with a user-facing message
type Error struct {
	Kind    Kind
	Message string
	Err     error // underlying cause, logged but never exposed
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a classified error with a user-facing message
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Internal wraps an unexpected error with a generic user-facing message
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: "Internal server error", Err: err}
}
