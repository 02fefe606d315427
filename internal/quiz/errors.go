package quiz

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ValidationError indicates an answer that cannot be checked against its
// question. It is always recoverable; callers report it and re-prompt.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

// Validation failures returned by Question.ValidateAnswer. These are fixed
// instances so callers can match with errors.Is.
var (
	ErrAnswerTypeMismatch      = &ValidationError{msg: "answer type does not match question type"}
	ErrInvalidOptionIndex      = &ValidationError{msg: "invalid option index"}
	ErrWrongAnswerCount        = &ValidationError{msg: "wrong number of answers"}
	ErrExternalGradingRequired = &ValidationError{msg: "question variant requires external grading"}
)

// ErrAtFirstQuestion is returned by PreviousQuestion at index 0.
var ErrAtFirstQuestion = errors.New("already at first question")

// StateError indicates a session operation attempted from a state that
// forbids it. The session is left unchanged.
type StateError struct {
	Op    string
	State SessionState
}

func (e *StateError) Error() string {
	return fmt.Sprintf("cannot %s: session is %s", e.Op, e.State)
}

// NotFoundError indicates a lookup of an id the aggregate does not contain.
type NotFoundError struct {
	Kind string
	ID   uuid.UUID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}
