// Package domainerrors carries the error taxonomy shared by the pipeline,
// the certificate loader, the prover adapters and the HTTP transport.
//
// Every failure is an *Error with a Code. Callers branch on the code with
// HasCode/Is instead of matching messages, and transports map codes to
// status values without knowing which component failed.
package domainerrors

import (
	"errors"
	"fmt"
)

// Code identifies the category of a failure.
type Code string

const (
	// Pipeline taxonomy.
	CodeConfiguration    Code = "configuration_error"
	CodeDecompression    Code = "decompression_error"
	CodeMalformedRecord  Code = "malformed_record"
	CodeOverflow         Code = "overflow"
	CodeCertificateParse Code = "certificate_parse_error"
	CodeProver           Code = "prover_error"

	// Transport and infrastructure.
	CodeBadRequest Code = "bad_request"
	CodeValidation Code = "validation_error"
	CodeInternal   Code = "internal_error"
	CodeTimeout    Code = "timeout"
)

// Error is a coded failure, optionally wrapping its cause.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New returns an Error without an underlying cause.
func New(code Code, msg string) *Error {
	return &Error{Code: code, Message: msg}
}

// Newf is New with a format string.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and message to err. A nil err still yields an Error so
// call sites never return a nil-valued error by accident.
func Wrap(err error, code Code, msg string) *Error {
	return &Error{Code: code, Message: msg, Err: err}
}

// HasCode reports whether the outermost coded error in err's chain has code.
func HasCode(err error, code Code) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// Is is an alias of HasCode kept for call sites that read better with it.
func Is(err error, code Code) bool {
	return HasCode(err, code)
}

// CodeOf returns the outermost code in err's chain, or CodeInternal.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}
