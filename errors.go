package valhalla

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Validation errors. Each constraint violation wraps one of these sentinels
// so callers can match with errors.Is; the wrapped message names the
// offending field and value.
var (
	ErrTooFewLocations       = errors.New("too few locations")
	ErrLatitudeRange         = errors.New("latitude out of range [-90, 90]")
	ErrLongitudeRange        = errors.New("longitude out of range [-180, 180]")
	ErrHeadingRange          = errors.New("heading out of range [0, 360]")
	ErrHeadingToleranceRange = errors.New("heading_tolerance out of range [0, 180]")
	ErrNegativeRadius        = errors.New("search radius must not be negative")
	ErrShapeAmbiguous        = errors.New("shape and encoded_polyline are mutually exclusive")
	ErrShapeMissing          = errors.New("either shape or encoded_polyline is required")
	ErrFilterAction          = errors.New("filter action must be include or exclude")
	ErrCostingRequired       = errors.New("costing is required")
)

// Transport and decode errors.
var (
	// ErrTimeout is returned when the configured per-call timeout elapsed
	// before the exchange completed.
	ErrTimeout = errors.New("request timed out")

	// ErrCancelled is returned when the caller's own context was cancelled
	// before the exchange completed.
	ErrCancelled = errors.New("request cancelled")

	// ErrResponseTooLarge is returned when the declared or observed response
	// body size exceeds the client's ceiling. The body is discarded and
	// never decoded.
	ErrResponseTooLarge = errors.New("response body exceeds size limit")

	// ErrBadResponse is returned when a 2xx response body cannot be decoded:
	// malformed JSON or a scalar in the wrong shape.
	ErrBadResponse = errors.New("malformed response")
)

// maxErrorBodySize caps the raw body copy carried by a RemoteError so error
// values never retain unbounded memory in logs or wrapped chains.
const maxErrorBodySize = 8 * 1024

// RemoteError is a non-2xx outcome from the routing service. StatusCode is
// always set; ErrorCode and Message come from the service's error envelope
// when it was parseable, otherwise Message falls back to the HTTP status
// text. Body holds at most 8 KiB of the raw response for diagnostics.
type RemoteError struct {
	StatusCode int
	ErrorCode  int
	Message    string
	Body       []byte
}

func (e *RemoteError) Error() string {
	if e.ErrorCode != 0 {
		return fmt.Sprintf("routing service error: status %d, code %d: %s", e.StatusCode, e.ErrorCode, e.Message)
	}
	return fmt.Sprintf("routing service error: status %d: %s", e.StatusCode, e.Message)
}

// errorEnvelope is the error document the routing service returns alongside
// a non-2xx status. The HTTP status is duplicated inside the body; the
// envelope's error_code is the service's own machine-readable code.
type errorEnvelope struct {
	ErrorCode  int    `json:"error_code"`
	Error      string `json:"error"`
	StatusCode int    `json:"status_code"`
	Status     string `json:"status"`
}

// newRemoteError builds a RemoteError from a non-2xx response body. The
// envelope is parsed best-effort: an absent or malformed envelope falls back
// to a status-based message rather than failing decode.
func newRemoteError(statusCode int, body []byte) *RemoteError {
	re := &RemoteError{StatusCode: statusCode}
	re.Body = bytes.Clone(body[:min(len(body), maxErrorBodySize)])

	var env errorEnvelope
	if err := json.Unmarshal(bytes.TrimSpace(body), &env); err == nil && env.Error != "" {
		re.ErrorCode = env.ErrorCode
		re.Message = env.Error
	} else if text := http.StatusText(statusCode); text != "" {
		re.Message = text
	} else {
		re.Message = fmt.Sprintf("HTTP %d", statusCode)
	}

	// Keep 429 in the generic remote-error kind, but make the condition
	// visible in the message so callers can special-case it.
	if statusCode == http.StatusTooManyRequests {
		re.Message = "rate limited by routing service: " + re.Message
	}
	return re
}
