package api

import (
	"errors"
	"fmt"
)

// Failure kinds. Match with errors.Is.
var (
	ErrNetwork    = errors.New("network error")
	ErrServer     = errors.New("server error")
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
	ErrMalformed  = errors.New("malformed response")
)

// Error describes a failed call against the remote service.
type Error struct {
	Op       string // list, get, create, update, delete
	Resource string
	ID       int
	Status   int
	Kind     error
	Detail   string
	Err      error
}

func (e *Error) Error() string {
	msg := e.Op + " " + e.Resource
	if e.ID != 0 {
		msg += fmt.Sprintf(" %d", e.ID)
	}
	msg += ": " + e.Kind.Error()
	if e.Status != 0 {
		msg += fmt.Sprintf(" (status %d)", e.Status)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Is(target error) bool { return target == e.Kind }

func (e *Error) Unwrap() error { return e.Err }

func kindForStatus(status int) error {
	switch {
	case status == 404:
		return ErrNotFound
	case status == 400 || status == 409 || status == 422:
		return ErrValidation
	default:
		return ErrServer
	}
}
