package domain

import (
	"errors"
	"fmt"
)

// ErrDescriptor is the class of every automaton construction failure.
var ErrDescriptor = errors.New("malformed automaton description")

// ErrMalformedInput is returned when an input symbol is outside the declared alphabet.
var ErrMalformedInput = errors.New("malformed input")

// ErrCancelled is returned when a check hits its deadline or is interrupted.
var ErrCancelled = errors.New("check cancelled")

// ErrUnsupportedAutomaton is returned when a check is given no machine, or a
// machine of a variant the engine cannot run.
var ErrUnsupportedAutomaton = errors.New("unsupported automaton")

// ErrMachineNotFound is returned when a named machine is not loaded.
var ErrMachineNotFound = errors.New("machine not found")

// MalformedInputError locates the first symbol outside the input alphabet.
type MalformedInputError struct {
	Symbol Symbol
	Offset int
}

func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("symbol %q at offset %d is not in the input alphabet", e.Symbol.String(), e.Offset)
}

func (e *MalformedInputError) Is(target error) bool {
	return target == ErrMalformedInput
}

// CancelledError wraps the context error that stopped a check.
type CancelledError struct {
	Cause error
}

func (e *CancelledError) Error() string {
	return fmt.Sprintf("%v: %v", ErrCancelled, e.Cause)
}

func (e *CancelledError) Is(target error) bool {
	return target == ErrCancelled
}

func (e *CancelledError) Unwrap() error {
	return e.Cause
}
