package fasttostring

import (
	"errors"
	"fmt"
)

// ErrOutOfRange is matched by every error a generated method returns for a
// value that is not one of the declared constants of its type.
var ErrOutOfRange = errors.New("value out of range")

// Integer is the set of types a marked enum may be defined over.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// OutOfRangeError reports a value that does not match any declared constant.
type OutOfRangeError struct {
	// Type is the qualified name of the enum type, e.g. "example.com/states.HumanStates".
	Type string

	// Param is the name of the parameter that carried the value.
	Param string

	// Value is the offending value, with its enum type.
	Value any
}

// Error formats the value with %d so a String method on the enum type is
// never consulted; String implementations commonly call the generated method.
func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("%s: %d is not a declared %s (parameter %s)",
		ErrOutOfRange, e.Value, e.Type, e.Param)
}

// Unwrap returns ErrOutOfRange.
func (e *OutOfRangeError) Unwrap() error {
	return ErrOutOfRange
}

// OutOfRange returns the error a generated method reports for v.
func OutOfRange[T Integer](typ, param string, v T) error {
	return &OutOfRangeError{
		Type:  typ,
		Param: param,
		Value: v,
	}
}
