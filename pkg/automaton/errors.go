package automaton

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aretw0/acceptor/pkg/domain"
)

// FieldError represents a single problem in a machine definition.
type FieldError struct {
	Path   string // Dotted location, e.g. "transitions.q0.a"
	Reason string
	Value  any
}

func (e *FieldError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("field %q: %s", e.Path, e.Reason)
	}
	return fmt.Sprintf("field %q: %s (got %v)", e.Path, e.Reason, e.Value)
}

// DescriptorError aggregates every problem found while building one machine.
type DescriptorError struct {
	Machine string
	Errors  []error
}

func (e *DescriptorError) Error() string {
	prefix := "machine"
	if e.Machine != "" {
		prefix = fmt.Sprintf("machine %q", e.Machine)
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("%s: %s", prefix, e.Errors[0].Error())
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: %d definition errors:\n", prefix, len(e.Errors))
	for i, err := range e.Errors {
		fmt.Fprintf(&sb, "  %d. %s\n", i+1, err.Error())
	}
	return sb.String()
}

func (e *DescriptorError) Is(target error) bool {
	return target == domain.ErrDescriptor
}

func (e *DescriptorError) Unwrap() []error {
	return e.Errors
}

// FieldErrors returns the individual problems if err is a DescriptorError.
// Otherwise returns nil.
func FieldErrors(err error) []error {
	var de *DescriptorError
	if errors.As(err, &de) {
		return de.Errors
	}
	return nil
}
