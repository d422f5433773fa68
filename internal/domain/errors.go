package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNoIdentity is returned when an operation needs a session token and none is available
	ErrNoIdentity = errors.New("no session identity available")

	// ErrNotFound is returned by session stores on a missing key
	ErrNotFound = errors.New("not found")
)

// NetworkError represents a transport-level failure (DNS, refused connection, timeout)
type NetworkError struct {
	Op  string
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %s %s: %v", e.Op, e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// ServerError represents a non-success response from the query service
type ServerError struct {
	Op         string
	StatusCode int
	Detail     string
}

func (e *ServerError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("server error: %s returned HTTP %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("server error: %s returned HTTP %d: %s", e.Op, e.StatusCode, e.Detail)
}

// DecodeError represents a response body that did not match the expected shape
type DecodeError struct {
	Op  string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode error: %s: %v", e.Op, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// ValidationError represents rejected user input
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// IsNetwork reports whether err is a NetworkError
func IsNetwork(err error) bool {
	var target *NetworkError
	return errors.As(err, &target)
}

// IsServer reports whether err is a ServerError
func IsServer(err error) bool {
	var target *ServerError
	return errors.As(err, &target)
}

// IsDecode reports whether err is a DecodeError
func IsDecode(err error) bool {
	var target *DecodeError
	return errors.As(err, &target)
}

// IsValidation reports whether err is a ValidationError
func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}
