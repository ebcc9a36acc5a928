package apierr

import (
	"errors"
	"time"
)

// Kind identifies the failure class of an API or transport error.
type Kind string

const (
	// KindUnknown covers unmapped status codes and failures that cannot be
	// attributed to the network or the service.
	KindUnknown Kind = "unknown"
	// KindNetwork covers transport-level failures other than timeouts.
	KindNetwork Kind = "network"
	// KindTimeout means the per-attempt timeout elapsed before a response.
	KindTimeout Kind = "timeout"
	// KindAuthInvalid means the credential token was rejected (401).
	KindAuthInvalid Kind = "auth_invalid"
	// KindAuthForbidden means the token lacks access to the resource (403).
	KindAuthForbidden Kind = "auth_forbidden"
	// KindValidation means the service rejected the request payload (400).
	KindValidation Kind = "validation"
	// KindNotFound means the resource or endpoint does not exist (404).
	KindNotFound Kind = "not_found"
	// KindRateLimit means the request quota is exhausted (429).
	KindRateLimit Kind = "rate_limit"
	// KindServer covers service-side failures (500, 502, 503, 504).
	KindServer Kind = "server"
)

// Error is the single failure value surfaced by the client. It carries a
// fixed kind with its retryability instead of an error type hierarchy, so
// callers dispatch by matching on Kind.
type Error struct {
	Kind      Kind
	Retryable bool

	// Status is the HTTP status code, or 0 for transport-level failures.
	Status int

	// RetryAfter is the server-declared wait hint attached to rate-limit
	// responses. Zero when the server sent none or it did not parse.
	RetryAfter time.Duration

	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return string(e.Kind)
	}
	return string(e.Kind) + ": " + e.Message
}

// IsRetryable reports whether err is a classified error that may succeed on
// a later attempt.
func IsRetryable(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Retryable
}

// KindOf returns the kind of a classified error, or KindUnknown for any
// other error value.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
