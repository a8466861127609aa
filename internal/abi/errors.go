package abi

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedType = errors.New("unsupported ABI type")
	ErrNegative        = errors.New("negative value for unsigned type")
	ErrOverflow        = errors.New("value does not fit in 256 bits")
	ErrNilInteger      = errors.New("nil integer value")
)

// DecodeError reports a malformed ABI payload: a truncated buffer, an
// offset or length pointing past the end of the data, or a word that does
// not hold a valid value of the expected type.
type DecodeError struct {
	// Index is the argument position, or -1 when the failure is not tied
	// to a single argument.
	Index  int
	Reason string
}

func (e *DecodeError) Error() string {
	if e.Index < 0 {
		return "abi decode: " + e.Reason
	}
	return fmt.Sprintf("abi decode: argument %d: %s", e.Index, e.Reason)
}

func decodeErr(index int, format string, args ...interface{}) *DecodeError {
	return &DecodeError{Index: index, Reason: fmt.Sprintf(format, args...)}
}
