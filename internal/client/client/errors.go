package client

import (
	"errors"
	"fmt"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	ErrRejected     = errors.New("request rejected")
	ErrDecode       = errors.New("malformed response")
)

// RejectedError is returned when the server answered with success=false.
type RejectedError struct {
	Action string
	Msg    string
}

func (e *RejectedError) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("%s rejected", e.Action)
	}
	return fmt.Sprintf("%s rejected: %s", e.Action, e.Msg)
}

func (e *RejectedError) Is(target error) bool {
	return target == ErrRejected
}

// StatusError describes a non-2xx HTTP answer.
type StatusError struct {
	StatusCode int
	Body       string
	kind       error
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("http %d", e.StatusCode)
	}
	return fmt.Sprintf("http %d: %s", e.StatusCode, e.Body)
}

func (e *StatusError) Unwrap() error {
	return e.kind
}
