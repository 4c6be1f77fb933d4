package runner

import (
	"errors"
	"fmt"
)

// ErrExpectedError fails a ShouldThrow test whose body returned without error.
var ErrExpectedError = errors.New("runner: expected an error, body returned nil")

// PanicError carries a panic recovered from a hook or test body.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// Unwrap exposes the panic value when it is an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// UnexpectedError fails a ShouldThrow test whose body raised an error not matching Target.
type UnexpectedError struct {
	Target error
	Err    error
}

func (e *UnexpectedError) Error() string {
	return fmt.Sprintf("runner: expected error %q, got %q", e.Target, e.Err)
}

func (e *UnexpectedError) Unwrap() error {
	return e.Err
}
