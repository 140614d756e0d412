// Package apperr defines the error kinds raised by the service layer and
// their mapping to HTTP status codes.  Services raise kinds; the HTTP
// boundary translates them exactly once.
package apperr

import (
    "errors"
    "fmt"
    "net/http"
)

// Kind classifies an error for boundary translation.  Each kind maps to
// exactly one HTTP status.
type Kind int

const (
    KindUnexpected Kind = iota
    KindValidation
    KindBadRequest
    KindInvalidToken
    KindBlacklistedToken
    KindResourceNotFound
    KindDuplicateResource
    KindExternalService
)

// Error carries a kind, a user-facing message and an optional wrapped cause.
// The message must never contain secrets or token strings.
type Error struct {
    Kind    Kind
    Message string
    Err     error
}

func (e *Error) Error() string {
    if e.Err != nil {
        return fmt.Sprintf("%s: %v", e.Message, e.Err)
    }
    return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// New returns an *Error with the given kind and message.
func New(kind Kind, message string) *Error {
    return &Error{Kind: kind, Message: message}
}

// Wrap is New with an underlying cause attached.
func Wrap(kind Kind, message string, err error) *Error {
    return &Error{Kind: kind, Message: message, Err: err}
}

// Validation builds a 400 validation error.
func Validation(message string) *Error { return New(KindValidation, message) }

// BadRequest builds a 400 error for semantically invalid requests.
func BadRequest(message string) *Error { return New(KindBadRequest, message) }

// InvalidToken builds a 401 error for tokens that fail verification.
func InvalidToken(message string) *Error { return New(KindInvalidToken, message) }

// BlacklistedToken builds a 401 error for deny-listed tokens.
func BlacklistedToken(message string) *Error { return New(KindBlacklistedToken, message) }

// NotFound builds a 404 error naming the missing resource.
func NotFound(resource, field, value string) *Error {
    return New(KindResourceNotFound, fmt.Sprintf("%s not found with %s: %s", resource, field, value))
}

// Duplicate builds a 409 error naming the conflicting field.
func Duplicate(resource, field, value string) *Error {
    return New(KindDuplicateResource, fmt.Sprintf("%s already exists with %s: %s", resource, field, value))
}

// ExternalService builds a 503 error for upstream failures.
func ExternalService(message string) *Error { return New(KindExternalService, message) }

// KindOf extracts the kind from err, or KindUnexpected when err is not an
// *Error.
func KindOf(err error) Kind {
    var e *Error
    if errors.As(err, &e) {
        return e.Kind
    }
    return KindUnexpected
}

// MessageOf returns the user-facing message of err, or "" when err carries
// none.
func MessageOf(err error) string {
    var e *Error
    if errors.As(err, &e) {
        return e.Message
    }
    return ""
}

// HTTPStatus maps a kind to its HTTP status code.
func HTTPStatus(kind Kind) int {
    switch kind {
    case KindValidation, KindBadRequest:
        return http.StatusBadRequest
    case KindInvalidToken, KindBlacklistedToken:
        return http.StatusUnauthorized
    case KindResourceNotFound:
        return http.StatusNotFound
    case KindDuplicateResource:
        return http.StatusConflict
    case KindExternalService:
        return http.StatusServiceUnavailable
    default:
        return http.StatusInternalServerError
    }
}
