package api

import (
	"errors"
	"fmt"
)

// Kind is the closed classification of remote-operation failures. Every error
// leaving this package is an *Error carrying one of these kinds; callers
// branch on KindOf instead of inspecting transport error types.
type Kind int

const (
	// KindUnexpected covers anything not classifiable below. Nothing raw
	// escapes the transport boundary unclassified.
	KindUnexpected Kind = iota

	// KindNoConnectivity: the reachability probe failed before any transport
	// attempt was made.
	KindNoConnectivity

	// KindTimeout: the transport attempt exceeded its deadline.
	KindTimeout

	// KindServer: the transport succeeded but the server answered non-2xx.
	KindServer

	// KindBusiness: HTTP 2xx, but the envelope carried status "error".
	KindBusiness

	// KindLocalStore: a local cache operation failed. Used only for
	// fallback-attempt failures; a remote failure always wins over it.
	KindLocalStore
)

func (k Kind) String() string {
	switch k {
	case KindNoConnectivity:
		return "no_connectivity"
	case KindTimeout:
		return "timeout"
	case KindServer:
		return "server_error"
	case KindBusiness:
		return "business_error"
	case KindLocalStore:
		return "local_store_error"
	default:
		return "unexpected"
	}
}

// Error is the single error type produced at the remote boundary.
// HTTPStatus and RawBody are set only for KindServer.
type Error struct {
	Kind       Kind
	Message    string
	HTTPStatus int
	RawBody    []byte
	cause      error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// NoConnectivity reports a failed pre-flight reachability check.
func NoConnectivity() *Error {
	return &Error{Kind: KindNoConnectivity, Message: "no network connection"}
}

// Timeout wraps a transport deadline failure.
func Timeout(cause error) *Error {
	return &Error{Kind: KindTimeout, Message: "request timed out", cause: cause}
}

// Server wraps a non-2xx response, preserving the raw body for diagnostics.
func Server(status int, body []byte) *Error {
	return &Error{
		Kind:       KindServer,
		Message:    fmt.Sprintf("server returned status %d", status),
		HTTPStatus: status,
		RawBody:    body,
	}
}

// Business wraps an error-status envelope message.
func Business(message string) *Error {
	return &Error{Kind: KindBusiness, Message: message}
}

// LocalStore wraps a failed local cache operation.
func LocalStore(cause error) *Error {
	return &Error{Kind: KindLocalStore, Message: "local store operation failed", cause: cause}
}

// Unexpected wraps anything else caught at the boundary.
func Unexpected(cause error) *Error {
	return &Error{Kind: KindUnexpected, Message: "unexpected error", cause: cause}
}

// KindOf classifies any error. Errors that did not originate here report
// KindUnexpected.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnexpected
}
