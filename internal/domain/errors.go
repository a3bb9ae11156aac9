package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies failures abstractly so callers can map them to a
// response without inspecting transport details.
type ErrorKind string

const (
	// KindInvalidBatchInput marks a converter called with a non-sequence
	// input. Programmer or upstream contract error, never retried.
	KindInvalidBatchInput ErrorKind = "INVALID_BATCH_INPUT"
	// KindMalformedRecord marks a single raw item that failed conversion or
	// validation. Isolated and dropped, never aborts the batch.
	KindMalformedRecord ErrorKind = "MALFORMED_RECORD"
	// KindUpstreamProtocol marks an upstream response whose shape is
	// unusable at the transport level.
	KindUpstreamProtocol ErrorKind = "UPSTREAM_PROTOCOL_ERROR"
	// KindAuth covers 401/403 responses.
	KindAuth ErrorKind = "AUTH_ERROR"
	// KindRateLimited covers 429 responses.
	KindRateLimited ErrorKind = "RATE_LIMITED"
	// KindUpstreamUnavailable covers 5xx responses.
	KindUpstreamUnavailable ErrorKind = "UPSTREAM_UNAVAILABLE"
	// KindNetwork covers connection-level failures.
	KindNetwork ErrorKind = "NETWORK_ERROR"
)

// Error carries an error kind plus whatever transport detail was available.
type Error struct {
	Kind    ErrorKind
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.Status != 0 {
		return fmt.Sprintf("%s (status %d): %s", e.Kind, e.Status, msg)
	}
	return fmt.Sprintf("%s: %s", e.Kind, msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf extracts the error kind from err, or "" when err carries none.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}
