package pipeline

import (
	"fmt"

	"github.com/google/uuid"
)

// ErrorKind tells why a run ended without a result
type ErrorKind string

const (
	ErrKindCancelled     ErrorKind = "cancelled"
	ErrKindSuperseded    ErrorKind = "superseded"
	ErrKindEngineFailure ErrorKind = "engine_failure"
)

// PipelineError records the end of an unsuccessful run
type PipelineError struct {
	Kind   ErrorKind
	Run    uuid.UUID
	Reason string
	Cause  error
}

// Error implements the error interface
func (e *PipelineError) Error() string {
	msg := fmt.Sprintf("run %s %s", shortID(e.Run), e.Kind)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying error
func (e *PipelineError) Unwrap() error {
	return e.Cause
}

// Is matches another PipelineError of the same kind
func (e *PipelineError) Is(target error) bool {
	if pe, ok := target.(*PipelineError); ok {
		return e.Kind == pe.Kind
	}
	return false
}

func shortID(id uuid.UUID) string {
	return id.String()[:8]
}
