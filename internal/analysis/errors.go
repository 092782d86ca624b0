package analysis

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind categorizes an analysis failure
type ErrorKind string

const (
	// ErrKindTimeout indicates the engine did not answer in time
	ErrKindTimeout ErrorKind = "timeout"

	// ErrKindCorrupt indicates the video could not be decoded
	ErrKindCorrupt ErrorKind = "corrupt"

	// ErrKindUnsupported indicates the video format is not handled
	ErrKindUnsupported ErrorKind = "unsupported"

	// ErrKindUnavailable indicates the engine is refusing work
	ErrKindUnavailable ErrorKind = "unavailable"
)

// ErrEngineNotFound is returned for an unregistered engine name
var ErrEngineNotFound = errors.New("analysis engine not registered")

// AnalysisError is returned by engines when a video cannot be analysed
type AnalysisError struct {
	Kind    ErrorKind
	Engine  string
	Message string
	Cause   error
}

// Error implements the error interface
func (e *AnalysisError) Error() string {
	var parts []string
	if e.Engine != "" {
		parts = append(parts, fmt.Sprintf("engine=%s", e.Engine))
	}
	parts = append(parts, fmt.Sprintf("kind=%s", e.Kind))
	if e.Message != "" {
		parts = append(parts, e.Message)
	}
	if e.Cause != nil {
		parts = append(parts, fmt.Sprintf("cause=%s", e.Cause.Error()))
	}
	return strings.Join(parts, ": ")
}

// Unwrap returns the underlying error
func (e *AnalysisError) Unwrap() error {
	return e.Cause
}

// Is matches another AnalysisError of the same kind
func (e *AnalysisError) Is(target error) bool {
	if ae, ok := target.(*AnalysisError); ok {
		return e.Kind == ae.Kind
	}
	return false
}

// NewAnalysisError creates an analysis error
func NewAnalysisError(kind ErrorKind, engine, message string, cause error) *AnalysisError {
	return &AnalysisError{
		Kind:    kind,
		Engine:  engine,
		Message: message,
		Cause:   cause,
	}
}

// KindOf returns the kind of an AnalysisError anywhere in err's chain
func KindOf(err error) (ErrorKind, bool) {
	var ae *AnalysisError
	if errors.As(err, &ae) {
		return ae.Kind, true
	}
	return "", false
}
