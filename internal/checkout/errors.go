package checkout

import (
	"errors"
	"fmt"
)

// TransitionError reports a transition attempted from a phase that does
// not permit it. The machine is left unchanged.
type TransitionError struct {
	// From is the phase the machine was in.
	From Phase
	// Transition names the rejected transition.
	Transition string
}

// Error implements the error interface.
func (e *TransitionError) Error() string {
	return fmt.Sprintf("illegal checkout transition %q from phase %q", e.Transition, e.From)
}

// IsTransitionError reports whether the error is a rejected checkout
// transition. Uses errors.As to handle wrapped errors.
func IsTransitionError(err error) bool {
	var te *TransitionError
	return errors.As(err, &te)
}
