package errors

import (
	stderrors "errors"

	"golang.org/x/text/message"
)

// Error is the domain error type with structured metadata.
type Error struct {
	Code     Code              // Machine-readable error code
	Message  string            // Internal message (for logs)
	Metadata map[string]string // Additional context for logs and tool output
	Cause    error             // Wrapped underlying error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause for error chain traversal.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error by code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// UserMessage returns the localized alert text for this error.
func (e *Error) UserMessage(p *message.Printer) string {
	if p == nil {
		p = message.NewPrinter(defaultTag)
	}
	return p.Sprintf(MessageKey(e.Code))
}

// New creates a simple domain error with a code and message.
func New(code Code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// WithMetadata creates a domain error with metadata.
func WithMetadata(code Code, message string, metadata map[string]string) *Error {
	return &Error{
		Code:     code,
		Message:  message,
		Metadata: metadata,
	}
}

// Wrap creates a domain error that wraps an underlying cause.
func Wrap(code Code, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// CodeOf returns the domain code carried by err, or CodeUnknown.
func CodeOf(err error) Code {
	var domainErr *Error
	if stderrors.As(err, &domainErr) {
		return domainErr.Code
	}
	return CodeUnknown
}

// IsSilent reports whether err is a domain error resolved as a silent no-op.
func IsSilent(err error) bool {
	return err != nil && CodeOf(err).Silent()
}

// IsAlert reports whether err is a domain error shown to the user.
func IsAlert(err error) bool {
	return err != nil && CodeOf(err).Alert()
}

// AsAlert returns the domain error when err is user-facing.
func AsAlert(err error) (*Error, bool) {
	var domainErr *Error
	if !stderrors.As(err, &domainErr) || !domainErr.Code.Alert() {
		return nil, false
	}
	return domainErr, true
}
