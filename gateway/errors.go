package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"strings"
)

// ErrorCode classifies gateway errors.
type ErrorCode int

const (
	// ErrCodeTimeout indicates the request exceeded the gateway timeout.
	ErrCodeTimeout ErrorCode = iota
	// ErrCodeConnection indicates no response was obtained (refused, DNS, reset, cancelled).
	ErrCodeConnection
	// ErrCodeAuth indicates an authentication/authorization failure (401/403).
	ErrCodeAuth
	// ErrCodeNotFound indicates the resource was not found (404).
	ErrCodeNotFound
	// ErrCodeRateLimit indicates rate limiting (429).
	ErrCodeRateLimit
	// ErrCodeValidation indicates the provider rejected the request (other 4xx),
	// or the request could not be built locally.
	ErrCodeValidation
	// ErrCodeServer indicates a provider-side error (5xx).
	ErrCodeServer
)

// String returns the error code name.
func (c ErrorCode) String() string {
	switch c {
	case ErrCodeTimeout:
		return "timeout"
	case ErrCodeConnection:
		return "connection"
	case ErrCodeAuth:
		return "auth"
	case ErrCodeNotFound:
		return "not_found"
	case ErrCodeRateLimit:
		return "rate_limit"
	case ErrCodeValidation:
		return "validation"
	case ErrCodeServer:
		return "server"
	default:
		return "unknown"
	}
}

// Error is the single failure type returned by the gateway.
//
// StatusCode is 0 when no response was received. Message is never empty and
// already contains the provider's error details, so it can be shown as is.
type Error struct {
	// StatusCode is the HTTP status code (0 for transport failures).
	StatusCode int
	// Code classifies the error.
	Code ErrorCode
	// Message is the composed, display-ready message.
	Message string
	// Retryable hints whether a calling layer may retry. The gateway never does.
	Retryable bool
	// RawBody is the exact response body text.
	RawBody string
	// Details is the decoded error object, nil when the body was not a JSON object.
	Details map[string]any
	// Err is the underlying transport error.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// HasStatus reports whether a response was received.
func (e *Error) HasStatus() bool {
	return e.StatusCode > 0
}

// BodyReader returns a fresh reader over the raw body on every call.
func (e *Error) BodyReader() io.Reader {
	return strings.NewReader(e.RawBody)
}

// ResponseMessage returns the provider's top-level message ("message" or "Message").
func (e *Error) ResponseMessage() (string, bool) {
	if e.Details == nil {
		return "", false
	}
	return lookupString(e.Details, "message")
}

// Errors returns the entries of the first non-empty "errors"/"Errors" array.
func (e *Error) Errors() []ErrorDetail {
	return errorDetails(e.Details)
}

// InvalidFields returns the entries of the "invalidFields" array.
func (e *Error) InvalidFields() []InvalidField {
	return invalidFields(e.Details)
}

// FormattedMessage re-renders the full message from StatusCode and Details
// alone. Without details it returns Message.
func (e *Error) FormattedMessage() string {
	if e.Details == nil || e.StatusCode == 0 {
		return e.Message
	}
	return renderMessage(e.StatusCode, e.Details)
}

// NewTimeoutError creates a timeout error.
func NewTimeoutError(err error) *Error {
	return &Error{
		Code:      ErrCodeTimeout,
		Message:   "request failed: " + err.Error(),
		Retryable: true,
		Err:       err,
	}
}

// NewConnectionError creates a connection error.
func NewConnectionError(err error) *Error {
	return &Error{
		Code:      ErrCodeConnection,
		Message:   "request failed: " + err.Error(),
		Retryable: true,
		Err:       err,
	}
}

// NewValidationError creates an error for a request that could not be built.
func NewValidationError(err error) *Error {
	return &Error{
		Code:    ErrCodeValidation,
		Message: "invalid request: " + err.Error(),
		Err:     err,
	}
}

// newTransportError classifies a failure where no response was obtained.
func newTransportError(err error) *Error {
	if errors.Is(err, context.DeadlineExceeded) {
		return NewTimeoutError(err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return NewTimeoutError(err)
	}
	return NewConnectionError(err)
}

// ClassifyStatusCode converts a response status and body into an *Error.
// It returns nil for success statuses (below 400). The result depends only
// on its inputs.
func ClassifyStatusCode(statusCode int, body []byte) *Error {
	if statusCode < 400 {
		return nil
	}

	e := &Error{
		StatusCode: statusCode,
		RawBody:    string(body),
	}
	switch {
	case statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden:
		e.Code = ErrCodeAuth
	case statusCode == http.StatusNotFound:
		e.Code = ErrCodeNotFound
	case statusCode == http.StatusTooManyRequests:
		e.Code, e.Retryable = ErrCodeRateLimit, true
	case statusCode < 500:
		e.Code = ErrCodeValidation
	default:
		e.Code, e.Retryable = ErrCodeServer, true
	}

	if details, ok := decodeObject(body); ok {
		e.Details = details
		e.Message = renderMessage(statusCode, details)
	} else {
		e.Message = fallbackMessage(statusCode, e.RawBody)
	}
	return e
}

// decodeObject decodes body as a JSON object, keeping numbers as json.Number.
func decodeObject(body []byte) (map[string]any, bool) {
	v, ok := decodeJSON(body)
	if !ok {
		return nil, false
	}
	m, ok := v.(map[string]any)
	return m, ok
}

func decodeJSON(body []byte) (any, bool) {
	if !json.Valid(body) {
		return nil, false
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, false
	}
	return v, true
}

// IsTimeout checks if an error is a timeout error.
func IsTimeout(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeTimeout
}

// IsConnection checks if an error is a connection error.
func IsConnection(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeConnection
}

// IsTransport checks if no response was received.
func IsTransport(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.StatusCode == 0 &&
		(e.Code == ErrCodeTimeout || e.Code == ErrCodeConnection)
}

// IsAuth checks if an error is an authentication error.
func IsAuth(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeAuth
}

// IsNotFound checks if an error is a not-found error.
func IsNotFound(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeNotFound
}

// IsRateLimit checks if an error is a rate-limit error.
func IsRateLimit(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeRateLimit
}

// IsServerError checks if an error is a server error.
func IsServerError(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeServer
}

// IsRetryable checks if an error is retryable.
func IsRetryable(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Retryable
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.StatusCode
	}
	return 0
}
