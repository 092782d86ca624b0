package video

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrorKind categorizes a stream connection failure
type ErrorKind string

const (
	ErrKindInvalidURL  ErrorKind = "invalid_url"
	ErrKindUnsupported ErrorKind = "unsupported"
	ErrKindUnreachable ErrorKind = "unreachable"
)

// ConnectError is returned when a camera stream cannot be opened
type ConnectError struct {
	Kind      ErrorKind
	URL       string
	Message   string
	Retryable bool
	Cause     error
}

// Error implements the error interface
func (e *ConnectError) Error() string {
	msg := fmt.Sprintf("connect %s: %s: %s", e.URL, e.Kind, e.Message)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying error
func (e *ConnectError) Unwrap() error {
	return e.Cause
}

// Is matches another ConnectError of the same kind
func (e *ConnectError) Is(target error) bool {
	if ce, ok := target.(*ConnectError); ok {
		return e.Kind == ce.Kind
	}
	return false
}

// IsRetryable reports whether err is a ConnectError worth retrying
func IsRetryable(err error) bool {
	var ce *ConnectError
	return errors.As(err, &ce) && ce.Retryable
}

// StreamHandle identifies an opened camera stream
type StreamHandle struct {
	ID          string
	URL         string
	Host        string
	Path        string
	ConnectedAt time.Time
}

// Source opens camera streams
type Source interface {
	Connect(ctx context.Context, rawURL string) (*StreamHandle, error)
}

// StubSource validates RTSP URLs and hands out handles without any I/O
type StubSource struct {
	now func() time.Time
}

// NewStubSource creates a stub source
func NewStubSource() *StubSource {
	return &StubSource{now: time.Now}
}

// Connect accepts rtsp://host[:port]/path
func (s *StubSource) Connect(ctx context.Context, rawURL string) (*StreamHandle, error) {
	if err := ctx.Err(); err != nil {
		return nil, &ConnectError{Kind: ErrKindUnreachable, URL: rawURL, Message: "connection aborted", Cause: err}
	}

	u, err := ParseStreamURL(rawURL)
	if err != nil {
		return nil, err
	}

	return &StreamHandle{
		ID:          uuid.New().String(),
		URL:         u.String(),
		Host:        u.Host,
		Path:        u.Path,
		ConnectedAt: s.now(),
	}, nil
}

// ParseStreamURL checks that rawURL names an RTSP stream
func ParseStreamURL(rawURL string) (*url.URL, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return nil, &ConnectError{Kind: ErrKindInvalidURL, URL: rawURL, Message: "stream URL is empty"}
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, &ConnectError{Kind: ErrKindInvalidURL, URL: rawURL, Message: "malformed URL", Cause: err}
	}

	switch strings.ToLower(u.Scheme) {
	case "rtsp", "rtsps":
	case "":
		return nil, &ConnectError{Kind: ErrKindInvalidURL, URL: rawURL, Message: "missing scheme, expected rtsp://"}
	default:
		return nil, &ConnectError{Kind: ErrKindUnsupported, URL: rawURL, Message: fmt.Sprintf("scheme %q is not supported", u.Scheme)}
	}

	if u.Hostname() == "" {
		return nil, &ConnectError{Kind: ErrKindInvalidURL, URL: rawURL, Message: "missing host"}
	}
	if port := u.Port(); port != "" {
		if _, err := net.LookupPort("tcp", port); err != nil {
			return nil, &ConnectError{Kind: ErrKindInvalidURL, URL: rawURL, Message: "invalid port", Cause: err}
		}
	}
	if u.Path == "" || u.Path == "/" {
		return nil, &ConnectError{Kind: ErrKindInvalidURL, URL: rawURL, Message: "missing stream path"}
	}
	return u, nil
}
