package clients

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrNetwork matches any failure to reach the service or read its reply
	ErrNetwork = errors.New("network error")
	// ErrBadResponse matches any non-success status or undecodable body
	ErrBadResponse = errors.New("bad response")
)

// NetworkError is a transport-level failure: the service was unreachable,
// the connection dropped, or the request was cancelled.
type NetworkError struct {
	Method   string
	Endpoint string
	Err      error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s %s: network error: %v", e.Method, e.Endpoint, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

func (e *NetworkError) Is(target error) bool { return target == ErrNetwork }

// BadResponseError is returned when the service answered but not with a
// usable success response.
type BadResponseError struct {
	Endpoint   string
	StatusCode int
	Body       string
	Err        error
}

func (e *BadResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: bad response (status %d): %v", e.Endpoint, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: bad response (status %d): %s", e.Endpoint, e.StatusCode, e.Body)
}

func (e *BadResponseError) Unwrap() error { return e.Err }

func (e *BadResponseError) Is(target error) bool { return target == ErrBadResponse }

// IsCanceled reports whether err is a network error caused by the caller
// abandoning the request rather than by the service.
func IsCanceled(err error) bool {
	return errors.Is(err, context.Canceled)
}
