// Package app wires the storefront together: bus, application state,
// checkout machine and the network gateway.
//
// LAYERING:
//
// State holds data and field-level validation; this package holds the
// workflow sequencing. The browse → basket → order → contacts → submit
// progression is driven by the exported methods and by the handlers
// registered at construction, with the checkout machine rejecting any
// out-of-order step.
//
// ERROR HANDLING:
//
// Validation failures are never errors: they surface through the
// formErrors:change event and the methods return nil. Network failures
// are logged and swallowed, leaving state as last known (basket and
// draft retained) so the user can retry. Only illegal workflow
// sequencing is returned as an error, as a *checkout.TransitionError.
package app
