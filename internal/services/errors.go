package services

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrPageLimitExceeded  = errors.New("page limit exceeded")
	ErrUnknownCollection  = errors.New("unknown collection")
	ErrUnexpectedStatus   = errors.New("unexpected status code")
	ErrCircuitBreakerOpen = errors.New("circuit breaker is open")
)

// UpstreamError reports a failed request to the record API: a transport
// failure, a timeout, a non-2xx status or a walk that never terminated.
// StatusCode is 0 when no response was received.
type UpstreamError struct {
	Collection string
	StatusCode int
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("record API request for %s failed with status %d %s: %v",
			e.Collection, e.StatusCode, http.StatusText(e.StatusCode), e.Err)
	}
	return fmt.Sprintf("record API request for %s failed: %v", e.Collection, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// MalformedResponseError reports a 2xx response whose body is not a list of
// records.
type MalformedResponseError struct {
	Collection string
	Reason     string
	Err        error
}

func (e *MalformedResponseError) Error() string {
	msg := fmt.Sprintf("record API returned a malformed response for %s: %s", e.Collection, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}

// AggregationError reports a panic recovered while computing a statistic.
type AggregationError struct {
	Statistic string
	Cause     any
}

func (e *AggregationError) Error() string {
	return fmt.Sprintf("failed to compute %s: %v", e.Statistic, e.Cause)
}

func (e *AggregationError) Unwrap() error {
	if err, ok := e.Cause.(error); ok {
		return err
	}
	return nil
}
