// Package apperr defines the classified error type shared by validators,
// services, and the HTTP error normalization stage.
//
// A classified error carries an explicit Kind plus a client-facing Message.
// Anything that is not an *Error is, by definition, unclassified and is
// rendered as a generic 500 by the HTTP layer.
//
// Kind to status mapping:
//
//	BadIdentifier     404  path identifier is not a canonical id
//	ResourceNotFound  404  well-formed identifier matches no row
//	InvalidPayload    400  request body missing a field or wrong type
//	InvalidQuery      400  unsupported query parameter value
//	RouteNotFound     404  no route matches the request
//	Conflict          409  idempotency key reused with a different payload
//	RateLimited       429  token bucket exhausted
//	Internal          500  everything else
package apperr

import (
	"errors"
	"net/http"
)

// Kind is the discriminator of a classified error.
type Kind uint8

const (
	// KindInternal is the zero value so that an uninitialised Error never
	// leaks its message to clients.
	KindInternal Kind = iota
	KindBadIdentifier
	KindResourceNotFound
	KindInvalidPayload
	KindInvalidQuery
	KindRouteNotFound
	KindConflict
	KindRateLimited
)

// String returns a stable snake_case name, used in logs and metrics.
func (k Kind) String() string {
	switch k {
	case KindBadIdentifier:
		return "bad_identifier"
	case KindResourceNotFound:
		return "resource_not_found"
	case KindInvalidPayload:
		return "invalid_payload"
	case KindInvalidQuery:
		return "invalid_query"
	case KindRouteNotFound:
		return "route_not_found"
	case KindConflict:
		return "conflict"
	case KindRateLimited:
		return "rate_limited"
	default:
		return "internal"
	}
}

// Status returns the HTTP status code for k.
//
// BadIdentifier deliberately maps to 404: a non-numeric id is reported the
// same way as an absent one, only the message differs.
func Status(k Kind) int {
	switch k {
	case KindBadIdentifier, KindResourceNotFound, KindRouteNotFound:
		return http.StatusNotFound
	case KindInvalidPayload, KindInvalidQuery:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	case KindRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// Messages shared between packages and asserted on by clients.
const (
	MsgRouteNotFound = "path does not exist!"
	MsgInternal      = "internal server error"
	MsgRateLimited   = "rate limit exceeded"
)

// Error is a classified failure.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

// Error implements the error interface. The cause, when present, is
// appended so server-side logs keep the full chain.
func (e *Error) Error() string {
	if e.Cause == nil {
		return e.Kind.String() + ": " + e.Message
	}
	return e.Kind.String() + ": " + e.Message + ": " + e.Cause.Error()
}

// Unwrap exposes the wrapped cause to errors.Is / errors.As.
func (e *Error) Unwrap() error { return e.Cause }

// Status is a shorthand for Status(e.Kind).
func (e *Error) Status() int { return Status(e.Kind) }

// BadIdentifier reports a malformed path identifier for field.
func BadIdentifier(field string) *Error {
	return &Error{Kind: KindBadIdentifier, Message: field + " not valid"}
}

// NotFound reports a well-formed identifier that matched nothing.
func NotFound(msg string) *Error {
	return &Error{Kind: KindResourceNotFound, Message: msg}
}

// InvalidPayload reports a request body that failed validation.
func InvalidPayload(msg string) *Error {
	return &Error{Kind: KindInvalidPayload, Message: msg}
}

// InvalidQuery reports an unsupported query string value.
func InvalidQuery(msg string) *Error {
	return &Error{Kind: KindInvalidQuery, Message: msg}
}

// RouteNotFound is recorded when no handler matches the request.
func RouteNotFound() *Error {
	return &Error{Kind: KindRouteNotFound, Message: MsgRouteNotFound}
}

// Conflict reports a request that contradicts previously recorded state.
func Conflict(msg string) *Error {
	return &Error{Kind: KindConflict, Message: msg}
}

// RateLimited is recorded by the rate limiter.
func RateLimited() *Error {
	return &Error{Kind: KindRateLimited, Message: MsgRateLimited}
}

// Internal wraps an unexpected failure. The cause is kept for logs only.
func Internal(cause error) *Error {
	return &Error{Kind: KindInternal, Message: MsgInternal, Cause: cause}
}

// As extracts the classified error from err's chain.
func As(err error) (*Error, bool) {
	var ae *Error
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

// KindOf returns the Kind of err, or KindInternal when err is unclassified.
func KindOf(err error) Kind {
	if ae, ok := As(err); ok {
		return ae.Kind
	}
	return KindInternal
}
