package apierr

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// errorBody mirrors the shapes the service uses for failure responses:
// a structured {status, error: {type, code, message, param}} object or a
// flat {message}. Code is decoded loosely since the service has emitted
// both string and numeric codes.
type errorBody struct {
	Status string `json:"status"`
	Error  *struct {
		Type    string `json:"type"`
		Code    any    `json:"code"`
		Message string `json:"message"`
		Param   string `json:"param"`
	} `json:"error"`
	Message string `json:"message"`
}

// FromResponse classifies a completed non-2xx response. It never fails:
// body parsing is best-effort and only affects the message detail.
func FromResponse(status int, header http.Header, body []byte) *Error {
	kind, retryable := classifyStatus(status)

	e := &Error{
		Kind:      kind,
		Retryable: retryable,
		Status:    status,
		Message:   messageFromBody(status, body),
	}

	if status == http.StatusTooManyRequests {
		if secs, err := strconv.Atoi(strings.TrimSpace(header.Get("Retry-After"))); err == nil && secs >= 0 {
			e.RetryAfter = time.Duration(secs) * time.Second
		}
	}

	return e
}

// FromTransport classifies a failure raised by the HTTP transport itself.
// An attempt aborted by its timeout maps to KindTimeout; everything else
// the transport reports is a network failure.
func FromTransport(err error) *Error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &Error{
			Kind:      KindTimeout,
			Retryable: true,
			Message:   "request timed out: " + err.Error(),
		}
	}
	return &Error{
		Kind:      KindNetwork,
		Retryable: true,
		Message:   err.Error(),
	}
}

// Unknown wraps a failure that is neither a service response nor a
// transport error, such as a request that could not be built.
func Unknown(v any) *Error {
	return &Error{
		Kind:    KindUnknown,
		Message: fmt.Sprint(v),
	}
}

func classifyStatus(status int) (Kind, bool) {
	switch status {
	case http.StatusBadRequest:
		return KindValidation, false
	case http.StatusUnauthorized:
		return KindAuthInvalid, false
	case http.StatusForbidden:
		return KindAuthForbidden, false
	case http.StatusNotFound:
		return KindNotFound, false
	case http.StatusTooManyRequests:
		return KindRateLimit, true
	case http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return KindServer, true
	default:
		return KindUnknown, false
	}
}

// messageFromBody assembles the richest message available, degrading from
// the structured error object to the flat message, the raw body, the
// status line text, and finally a generic fallback.
func messageFromBody(status int, body []byte) string {
	var parsed errorBody
	if err := json.Unmarshal(body, &parsed); err == nil {
		if parsed.Error != nil && parsed.Error.Message != "" {
			msg := parsed.Error.Message
			if parsed.Error.Param != "" {
				msg += fmt.Sprintf(" (parameter: %s)", parsed.Error.Param)
			}
			if code := formatCode(parsed.Error.Code); code != "" {
				msg += fmt.Sprintf(" [%s]", code)
			}
			return msg
		}
		if parsed.Message != "" {
			return parsed.Message
		}
	}
	if text := strings.TrimSpace(string(body)); text != "" {
		return text
	}
	if text := http.StatusText(status); text != "" {
		return text
	}
	return "Unknown error"
}

func formatCode(code any) string {
	switch c := code.(type) {
	case nil:
		return ""
	case string:
		return c
	case float64:
		// json decodes numbers as float64; codes are integral
		return strconv.FormatInt(int64(c), 10)
	default:
		return fmt.Sprint(c)
	}
}
