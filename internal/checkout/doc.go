// Package checkout models the checkout workflow as an explicit finite
// state machine.
//
// Phases: Browsing → OrderOpen → OrderValid → ContactsOpen → Submitting
// → Success → Browsing. Each transition is a typed method that either
// advances the machine or returns a *TransitionError; illegal sequences
// (submitting before the order group is valid, submitting twice while a
// request is in flight) are rejected by construction, not by handler
// ordering.
//
// The machine is pure sequencing. It holds no form data and performs no
// validation itself: callers advance it in response to validation results
// and network outcomes.
package checkout
