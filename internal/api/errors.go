package api

import (
	"errors"
	"fmt"
)

var (
	// ErrNetwork means the request could not complete: connection refused,
	// timeout, or an unexpected HTTP status.
	ErrNetwork = errors.New("network failure")

	// ErrDecode means the backend answered with a body that is not the expected JSON.
	ErrDecode = errors.New("malformed response")
)

// StatusError is returned for non-2xx answers outside the download endpoint.
// It matches ErrNetwork with errors.Is.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend returned HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("backend returned HTTP %d: %s", e.StatusCode, e.Message)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrNetwork
}

// DownloadError carries a failure reported by the download endpoint. Message is
// shown to the user verbatim.
type DownloadError struct {
	StatusCode int // zero when the backend answered 2xx with success=false
	Message    string
}

func (e *DownloadError) Error() string {
	if e.Message == "" {
		return "download failed"
	}
	return e.Message
}
