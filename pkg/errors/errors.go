package errors

import (
	"fmt"
)

// ParseError represents a YAML parsing failure with optional line metadata.
type ParseError struct {
	Path    string
	Line    int
	Message string
	Err     error
}

// NewParseError constructs a ParseError.
func NewParseError(path string, line int, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ParseError{Path: path, Line: line, Message: message, Err: err}
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}

	if e.Line > 0 {
		return fmt.Sprintf("parse error: %s:%d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error: %s: %s", e.Path, e.Message)
}

// Unwrap exposes the underlying error.
func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ValidationError captures a malformed or missing declaration field. It is
// always raised before any network call is made.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError constructs a ValidationError.
func NewValidationError(field, message string, err error) error {
	return &ValidationError{Field: field, Message: message, Err: err}
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// TransportError represents a network-level failure (connect, TLS, timeout,
// body decode) while talking to the Director API. The reconciliation may
// safely be retried as a whole by the caller; the engine never retries.
type TransportError struct {
	Op  string
	URL string
	Err error
}

// NewTransportError constructs a TransportError for the given operation.
func NewTransportError(op, url string, err error) error {
	return &TransportError{Op: op, URL: url, Err: err}
}

func (e *TransportError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("transport error: %s %s: %v", e.Op, e.URL, e.Err)
}

// Unwrap exposes the underlying error.
func (e *TransportError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// UnexpectedStatusError indicates the Director answered with a status code
// outside the expected set for the attempted call. The response body is
// carried along so the failure can be diagnosed without re-running.
type UnexpectedStatusError struct {
	Op     string
	Status int
	Body   string
}

// NewUnexpectedStatusError constructs an UnexpectedStatusError.
func NewUnexpectedStatusError(op string, status int, body string) error {
	return &UnexpectedStatusError{Op: op, Status: status, Body: body}
}

func (e *UnexpectedStatusError) Error() string {
	if e == nil {
		return ""
	}
	if e.Body != "" {
		return fmt.Sprintf("unexpected status %d during %s: %s", e.Status, e.Op, e.Body)
	}
	return fmt.Sprintf("unexpected status %d during %s", e.Status, e.Op)
}

// NotFoundError reports that no remote object matched the lookup key.
type NotFoundError struct {
	Name string
	Host string
}

// NewNotFoundError constructs a NotFoundError for the given object key.
func NewNotFoundError(name, host string) error {
	return &NotFoundError{Name: name, Host: host}
}

func (e *NotFoundError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("object %q on host %q not found", e.Name, e.Host)
}

// ScrubError indicates a remote attribute value could not be normalized into
// a comparable primitive. It is surfaced instead of silently coercing the
// value into a false equal/unequal verdict.
type ScrubError struct {
	Key   string
	Value any
}

// NewScrubError constructs a ScrubError for the given attribute.
func NewScrubError(key string, value any) error {
	return &ScrubError{Key: key, Value: value}
}

func (e *ScrubError) Error() string {
	if e == nil {
		return ""
	}
	if e.Key != "" {
		return fmt.Sprintf("cannot normalize remote value for attribute %q: %v", e.Key, e.Value)
	}
	return fmt.Sprintf("cannot normalize remote value: %v", e.Value)
}
