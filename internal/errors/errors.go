package errors

import (
	"github.com/cockroachdb/errors"
)

// Sentinel errors used with Mark to classify failures. Handlers and the
// upstream client switch on these marks, never on error strings.
var (
	ErrValidation       = errors.New("validation error")
	ErrNotFound         = errors.New("not found")
	ErrAlreadyExists    = errors.New("already exists")
	ErrPermissionDenied = errors.New("permission denied")
	ErrInvalidOperation = errors.New("invalid operation")
	ErrNetwork          = errors.New("network error")
	ErrHTTPClient       = errors.New("http client error")
	ErrServer           = errors.New("server error")
	ErrDatabase         = errors.New("database error")
	ErrInternal         = errors.New("internal error")
	ErrSystem           = errors.New("system error")
)

// InternalError is the concrete error carried through the system. It wraps a
// cause, an optional user-facing hint, and structured details safe to report
// back to the console.
type InternalError struct {
	cause             error
	hint              string
	reportableDetails map[string]interface{}
	mark              error
}

func (e *InternalError) Error() string {
	if e.cause == nil {
		return "unknown error"
	}
	return e.cause.Error()
}

func (e *InternalError) Unwrap() error {
	return e.cause
}

// Is lets errors.Is match both the mark and the cause chain.
func (e *InternalError) Is(target error) bool {
	if e.mark != nil && errors.Is(e.mark, target) {
		return true
	}
	return errors.Is(e.cause, target)
}

// Hint returns the user-facing hint, if any.
func (e *InternalError) Hint() string {
	return e.hint
}

// ReportableDetails returns structured details safe for API responses.
func (e *InternalError) ReportableDetails() map[string]interface{} {
	return e.reportableDetails
}

// Builder assembles an InternalError fluently. Mark finalizes it.
type Builder struct {
	err *InternalError
}

// NewError starts a builder from a new error message.
func NewError(message string) *Builder {
	return &Builder{err: &InternalError{cause: errors.New(message)}}
}

// NewErrorf starts a builder from a formatted message.
func NewErrorf(format string, args ...interface{}) *Builder {
	return &Builder{err: &InternalError{cause: errors.Newf(format, args...)}}
}

// WithError starts a builder wrapping an existing error.
func WithError(err error) *Builder {
	return &Builder{err: &InternalError{cause: err}}
}

// WithHint attaches a human-readable hint shown to the console user.
func (b *Builder) WithHint(hint string) *Builder {
	b.err.hint = hint
	return b
}

// WithHintf attaches a formatted hint.
func (b *Builder) WithHintf(format string, args ...interface{}) *Builder {
	b.err.hint = errors.Newf(format, args...).Error()
	return b
}

// WithReportableDetails attaches structured details included in responses.
func (b *Builder) WithReportableDetails(details map[string]interface{}) *Builder {
	b.err.reportableDetails = details
	return b
}

// Mark classifies the error with a sentinel and returns it.
func (b *Builder) Mark(mark error) error {
	b.err.mark = mark
	b.err.cause = errors.Mark(b.err.cause, mark)
	return b.err
}
