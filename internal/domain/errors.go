package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for domain operations
var (
	// ErrInvalidBaseURL indicates the configured content API URL is unusable
	ErrInvalidBaseURL = errors.New("content API base URL is invalid")

	// ErrNoVideo indicates the item has no playable video reference
	ErrNoVideo = errors.New("item has no video")

	// ErrResponseTooLarge indicates a response body exceeded the client's size limit
	ErrResponseTooLarge = errors.New("response too large")
)

// NetworkError indicates the content API could not be reached
// (connection failure or timeout).
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error requesting %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// HTTPError indicates the content API answered with a non-2xx status
type HTTPError struct {
	URL    string
	Status int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("unexpected status %d from %s", e.Status, e.URL)
}

// DecodeError indicates the response body was not the expected JSON
type DecodeError struct {
	URL string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode response from %s: %v", e.URL, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
