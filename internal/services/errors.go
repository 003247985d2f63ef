package services

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is the common kind of every DomainError. Handlers map it to 400.
var ErrInvalidArgument = errors.New("invalid argument")

var (
	ErrNotFound     = errors.New("not found")
	ErrDuplicateKey = errors.New("duplicate key")
	ErrValidation   = errors.New("validation failed")
)

var (
	ErrAIServiceNotConfigured = errors.New("AI service is not configured")
	ErrAINoTasksGenerated     = errors.New("AI did not generate any tasks")
	ErrAINoValidTasks         = errors.New("no valid tasks could be created from AI output")
)

// DomainError carries a client-facing message and matches both its Kind and
// ErrInvalidArgument with errors.Is.
type DomainError struct {
	Kind    error
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func (e *DomainError) Unwrap() []error {
	return []error{e.Kind, ErrInvalidArgument}
}

func notFound(format string, args ...interface{}) error {
	return &DomainError{Kind: ErrNotFound, Message: fmt.Sprintf(format, args...)}
}

func duplicateKey(format string, args ...interface{}) error {
	return &DomainError{Kind: ErrDuplicateKey, Message: fmt.Sprintf(format, args...)}
}

func invalid(format string, args ...interface{}) error {
	return &DomainError{Kind: ErrValidation, Message: fmt.Sprintf(format, args...)}
}

// UserNotFound reports a user id that does not resolve.
func UserNotFound(id uint64) error {
	return notFound("User not found with ID: %d", id)
}

// TaskNotFound reports a task id that does not resolve.
func TaskNotFound(id uint64) error {
	return notFound("Task not found with ID: %d", id)
}
