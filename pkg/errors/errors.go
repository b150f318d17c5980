package errors

import (
	"errors"
	"fmt"
)

// Error represents a typed domain error. Recoverable errors degrade a single
// student form into a sentinel summary row; fatal errors abort the whole run.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Fatal   bool   `json:"fatal"`
	Err     error  `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New creates a new Error instance.
func New(code string, fatal bool, message string) *Error {
	return &Error{Code: code, Fatal: fatal, Message: message}
}

// Wrap attaches context to an existing error.
func Wrap(err error, code string, fatal bool, message string) *Error {
	return &Error{Code: code, Fatal: fatal, Message: message, Err: err}
}

// Predefined errors covering the advising failure taxonomy.
var (
	// Recoverable per record: the batch continues with a sentinel row.
	ErrNoStudentID      = New("NO_STUDENT_ID", false, "the file does not contain a valid student ID")
	ErrStudentNotFound  = New("STUDENT_NOT_FOUND", false, "student ID not present in any record source")
	ErrUnknownProgramme = New("UNKNOWN_PROGRAMME", false, "do not recognise student programme for parsing")

	// Fatal: broken input data sources, not a bad student submission.
	ErrDataIntegrity = New("DATA_INTEGRITY", true, "record source contains contradictory student data")
	ErrCatalogue     = New("CATALOGUE_ERROR", true, "module catalogue entry is invalid")
	ErrValidation    = New("VALIDATION_ERROR", true, "validation failed")
	ErrInternal      = New("INTERNAL_ERROR", true, "internal error")
)

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, ErrInternal.Code, ErrInternal.Fatal, ErrInternal.Message)
}

// IsRecoverable reports whether the error only invalidates a single record.
func IsRecoverable(err error) bool {
	e := FromError(err)
	return e != nil && !e.Fatal
}

// Is reports whether err carries the same code as target.
func Is(err error, target *Error) bool {
	e := FromError(err)
	return e != nil && target != nil && e.Code == target.Code
}

// Clone returns a copy of the error allowing for message overrides.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}
