package binding

import (
	"errors"
	"fmt"
)

// Fault represents misuse of a binding detected by a runtime guard.
//
// Faults include:
//   - Out of bounds: index outside [0, length) of a sequence
//   - Immutable assign: reassignment of a binding not marked mutable
//   - Use after move: read of a binding whose value was transferred
//   - Unassigned read: read of a declared binding before its first assignment
type Fault struct {
	// Code identifies the fault category.
	Code FaultCode `json:"code"`

	// Binding is the name of the misused binding.
	Binding string `json:"binding,omitempty"`

	// Message is a human-readable description.
	Message string `json:"message"`

	// Details contains additional context (index, length, moved-to name).
	Details map[string]string `json:"details,omitempty"`
}

// FaultCode categorizes faults.
type FaultCode string

const (
	// FaultOutOfBounds indicates an index outside the sequence.
	FaultOutOfBounds FaultCode = "OUT_OF_BOUNDS"

	// FaultImmutableAssign indicates reassignment of an immutable binding.
	FaultImmutableAssign FaultCode = "IMMUTABLE_ASSIGN"

	// FaultUseAfterMove indicates access through a moved-from binding.
	FaultUseAfterMove FaultCode = "USE_AFTER_MOVE"

	// FaultUnassigned indicates a read before the first assignment.
	FaultUnassigned FaultCode = "UNASSIGNED_READ"
)

// Codes lists every fault code in lesson order.
var Codes = []FaultCode{FaultOutOfBounds, FaultImmutableAssign, FaultUseAfterMove, FaultUnassigned}

// Error implements the error interface.
func (f *Fault) Error() string {
	if f.Binding != "" {
		return fmt.Sprintf("%s: %s (binding=%s)", f.Code, f.Message, f.Binding)
	}
	return fmt.Sprintf("%s: %s", f.Code, f.Message)
}

// CodeOf returns the fault code of err, or "" if err is not a Fault.
func CodeOf(err error) FaultCode {
	var f *Fault
	if errors.As(err, &f) {
		return f.Code
	}
	return ""
}

// AsFault unwraps err into a *Fault.
func AsFault(err error) (*Fault, bool) {
	var f *Fault
	ok := errors.As(err, &f)
	return f, ok
}

// IsOutOfBounds returns true if the error is an out-of-bounds fault.
// Uses errors.As to handle wrapped errors.
func IsOutOfBounds(err error) bool {
	return CodeOf(err) == FaultOutOfBounds
}

// IsImmutableAssign returns true if the error is an immutable-assign fault.
func IsImmutableAssign(err error) bool {
	return CodeOf(err) == FaultImmutableAssign
}

// IsUseAfterMove returns true if the error is a use-after-move fault.
func IsUseAfterMove(err error) bool {
	return CodeOf(err) == FaultUseAfterMove
}

// IsUnassigned returns true if the error is an unassigned-read fault.
func IsUnassigned(err error) bool {
	return CodeOf(err) == FaultUnassigned
}
