package semantic

import "fmt"

// --------------------------------------------------------------------------
// Custom Error Type
// --------------------------------------------------------------------------

// Error is a custom error type that wraps a return code (of type RetCode)
// and an error message.
type Error struct {
	Code RetCode // The return code
	Msg  string  // The error message
}

// Error implements the error interface.
func (e *Error) Error() string {
	errorCode := ""
	switch e.Code {
	case RetCInvalidContent:
		errorCode = "InvalidContent"
	case RetCExceedsMaximumLength:
		errorCode = "ExceedsMaximumLength"
	default:
		errorCode = "Unknown"
	}

	return fmt.Sprintf("SemanticStringError (code %s): %s", errorCode, e.Msg)
}

// NewError creates a new semantic string error with the given code and message.
func NewError(code RetCode, msg string) *Error {
	return &Error{
		Code: code,
		Msg:  msg,
	}
}

// --------------------------------------------------------------------------
// Return Codes
// --------------------------------------------------------------------------

type RetCode uint64

const (
	RetCSuccess              RetCode = iota // 0: Operation completed successfully.
	RetCInvalidContent                      // 1: Value rejected by the grammar's character or content predicate.
	RetCExceedsMaximumLength                // 2: Value would exceed the bounded capacity.
)
