package imprint

import (
	"errors"
	"fmt"
)

// Sentinel errors for programmatic error handling.
// Use errors.Is() to check for these error types.
var (
	// ErrProtocol marks every protocol violation: the driving value issued a
	// call sequence that breaks the visitor contract.
	ErrProtocol = errors.New("protocol violation")

	// ErrUsage marks misuse of the capture API by its host.
	ErrUsage = errors.New("usage violation")

	// ErrLengthMismatch indicates a container closed with a different number of
	// children than its declared length.
	ErrLengthMismatch = errors.New("length mismatch")

	// ErrUnpairedKey indicates a map key with no value: two keys in a row, or a
	// map closed after a key.
	ErrUnpairedKey = errors.New("map key without value")

	// ErrUnpairedValue indicates a map value with no preceding key.
	ErrUnpairedValue = errors.New("map value without key")

	// ErrMissingValue indicates a child returned without producing a value.
	ErrMissingValue = errors.New("missing value")

	// ErrExtraValue indicates a child produced more than one value.
	ErrExtraValue = errors.New("extra value")

	// ErrDuplicateField indicates a struct wrote the same field name twice.
	ErrDuplicateField = errors.New("duplicate field")

	// ErrUnbalanced indicates a close with nothing open, or a frame left open.
	ErrUnbalanced = errors.New("unbalanced open/close")

	// ErrUnexpectedCall indicates a call the current frame cannot accept.
	ErrUnexpectedCall = errors.New("unexpected call")

	// ErrMalformedHint indicates a negative or implausibly large length hint.
	ErrMalformedHint = errors.New("malformed length hint")

	// ErrNilSerializable indicates a nil child was handed to the visitor.
	ErrNilSerializable = errors.New("nil serializable")

	// ErrVariantConflict indicates one enum type reported inconsistent
	// index/name pairs within a capture.
	ErrVariantConflict = errors.New("variant conflict")

	// ErrFinalized indicates a call on a recorder that already finished.
	ErrFinalized = errors.New("capture already finished")

	// ErrErrorLeaf indicates an Error leaf was replayed or lowered.
	ErrErrorLeaf = errors.New("error leaf")
)

// ProtocolError describes a call-sequence violation by the driving value.
// It is never embedded in a tree, whatever the error mode.
type ProtocolError struct {
	Err    error  // Specific sentinel (ErrLengthMismatch, ErrUnpairedKey, etc.)
	Path   Path   // Location of the frame that detected the violation
	Detail string // Human-readable description
}

func (e *ProtocolError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("protocol error at %s: %s: %s", e.Path, e.Err.Error(), e.Detail)
	}
	return fmt.Sprintf("protocol error at %s: %s", e.Path, e.Err.Error())
}

// Unwrap exposes both ErrProtocol and the specific sentinel to errors.Is.
func (e *ProtocolError) Unwrap() []error {
	return []error{ErrProtocol, e.Err}
}

// UsageError describes misuse of the capture API by its host.
type UsageError struct {
	Err  error  // Specific sentinel (ErrFinalized)
	Call string // Name of the offending call
}

func (e *UsageError) Error() string {
	return fmt.Sprintf("usage error: %s called: %s", e.Call, e.Err.Error())
}

// Unwrap exposes both ErrUsage and the specific sentinel to errors.Is.
func (e *UsageError) Unwrap() []error {
	return []error{ErrUsage, e.Err}
}

// IsProtocol reports whether err is, or wraps, a protocol violation.
func IsProtocol(err error) bool {
	return errors.Is(err, ErrProtocol)
}

// IsUsage reports whether err is, or wraps, a usage violation.
func IsUsage(err error) bool {
	return errors.Is(err, ErrUsage)
}

// newProtocolError creates a ProtocolError for a violation found at path.
func newProtocolError(sentinel error, path Path, format string, args ...any) error {
	return &ProtocolError{
		Err:    sentinel,
		Path:   path,
		Detail: fmt.Sprintf(format, args...),
	}
}

// newUsageError creates a UsageError for the named call.
func newUsageError(sentinel error, call string) error {
	return &UsageError{
		Err:  sentinel,
		Call: call,
	}
}
