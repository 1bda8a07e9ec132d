package errors

import (
	"errors"
	"fmt"
)

// Code classifies an error for reporting and exit-code mapping.
type Code string

const (
	// Structural defects are fatal to validation but are reported as
	// findings, never raised out of the validator.
	CodeEmptyTable     Code = "EMPTY_TABLE"
	CodeMissingColumns Code = "MISSING_COLUMNS"

	// Per-column operation failures are caught and logged inside the
	// cleaner; they never abort the remaining pipeline steps.
	CodeColumnOperation Code = "COLUMN_OPERATION_FAILED"

	// Input access failures belong to the loader and surface before the
	// engine runs.
	CodeFileNotFound      Code = "FILE_NOT_FOUND"
	CodeUnsupportedFormat Code = "UNSUPPORTED_FORMAT"
	CodeLoadFailed        Code = "LOAD_FAILED"
	CodeMalformedTable    Code = "MALFORMED_TABLE"

	CodeConfig Code = "CONFIG_INVALID"
)

// Error is a coded error carrying an optional wrapped cause.
type Error struct {
	Code    Code
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the wrapped cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a coded error.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates a coded error around a cause.
func Wrap(code Code, err error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Err: err}
}

// CodeOf returns the code of err if it is (or wraps) a coded error.
func CodeOf(err error) (Code, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Code, true
	}
	return "", false
}

// FileNotFound creates an input-access error for a missing path.
func FileNotFound(path string, err error) *Error {
	return Wrap(CodeFileNotFound, err, "input path %s does not exist", path)
}

// UnsupportedFormat creates an input-access error for an unknown extension.
func UnsupportedFormat(ext string) *Error {
	return New(CodeUnsupportedFormat, "unsupported file type %q", ext)
}

// LoadFailed creates an input-access error for a failed file load.
func LoadFailed(path string, err error) *Error {
	return Wrap(CodeLoadFailed, err, "failed to load %s", path)
}

// ColumnOperation creates a per-column failure for cleaner operations.
func ColumnOperation(column, operation string, err error) *Error {
	return Wrap(CodeColumnOperation, err, "operation %s failed for column %q", operation, column)
}
