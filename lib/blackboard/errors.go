package blackboard

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
	case RetCInternalError:
		errorCode = "InternalError"
	case RetCWriterPresent:
		errorCode = "WriterPresent"
	case RetCWriterClosed:
		errorCode = "WriterClosed"
	case RetCBoardBusy:
		errorCode = "BoardBusy"
	case RetCCorruptSnapshot:
		errorCode = "CorruptSnapshot"
	default:
		errorCode = "Unknown"
	}

	return fmt.Sprintf("BlackboardError (code %s): %s", errorCode, e.Msg)
}

// NewError creates a new blackboard error with the given code and message.
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
	RetCSuccess         RetCode = iota // 0: Operation completed successfully.
	RetCInternalError                  // 1: Operation failed due to an internal error.
	RetCWriterPresent                  // 2: Another writer already holds the key's slot.
	RetCWriterClosed                   // 3: Publish on a closed writer.
	RetCBoardBusy                      // 4: State restore attempted while writers are open.
	RetCCorruptSnapshot                // 5: Persisted snapshot failed validation.
)
