package errors

import (
	"errors"
	"fmt"
)

// Kind classifies an operation failure for the user-facing message and for metrics.
type Kind int

const (
	KindUnknown Kind = iota
	// KindValidation covers malformed or out-of-range user input (page lists, counts).
	KindValidation
	// KindPrecondition covers inputs that are well-formed but cannot be processed
	// (split on a 1-page document, merge with a single file).
	KindPrecondition
	// KindUnsupportedFormat is reported per file by the converter.
	KindUnsupportedFormat
	// KindCodec wraps failures of the underlying document libraries.
	KindCodec
	// KindIO covers path, access and size problems with input files.
	KindIO
)

// String returns the stable label used in logs and metrics
func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindPrecondition:
		return "precondition"
	case KindUnsupportedFormat:
		return "unsupported_format"
	case KindCodec:
		return "codec"
	case KindIO:
		return "io"
	default:
		return "unknown"
	}
}

// OperationError is the single error type surfaced by the document pipeline.
type OperationError struct {
	Kind    Kind   `json:"kind"`
	Op      string `json:"op"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Error implements the error interface
func (e *OperationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

// Unwrap returns the underlying library error, if any
func (e *OperationError) Unwrap() error {
	return e.Err
}

// Is matches another *OperationError by kind, so callers can test
// errors.Is(err, &OperationError{Kind: KindValidation}).
func (e *OperationError) Is(target error) bool {
	t, ok := target.(*OperationError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Op == "" || t.Op == e.Op)
}

// Validation creates a KindValidation error
func Validation(op, format string, args ...interface{}) *OperationError {
	return &OperationError{Kind: KindValidation, Op: op, Message: fmt.Sprintf(format, args...)}
}

// Precondition creates a KindPrecondition error
func Precondition(op, format string, args ...interface{}) *OperationError {
	return &OperationError{Kind: KindPrecondition, Op: op, Message: fmt.Sprintf(format, args...)}
}

// Unsupported creates a KindUnsupportedFormat error for the given extension
func Unsupported(op, ext string) *OperationError {
	return &OperationError{
		Kind:    KindUnsupportedFormat,
		Op:      op,
		Message: fmt.Sprintf("unsupported format %q", ext),
	}
}

// Codec wraps a document library failure
func Codec(op, message string, err error) *OperationError {
	return &OperationError{Kind: KindCodec, Op: op, Message: message, Err: err}
}

// IO wraps a file access failure
func IO(op, message string, err error) *OperationError {
	return &OperationError{Kind: KindIO, Op: op, Message: message, Err: err}
}

// KindOf returns the Kind of err, or KindUnknown if err is not an *OperationError
func KindOf(err error) Kind {
	var opErr *OperationError
	if errors.As(err, &opErr) {
		return opErr.Kind
	}
	return KindUnknown
}

// IsUserError reports whether err was caused by the request rather than by the system
func IsUserError(err error) bool {
	switch KindOf(err) {
	case KindValidation, KindPrecondition, KindUnsupportedFormat:
		return true
	default:
		return false
	}
}
