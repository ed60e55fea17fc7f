// Package event defines the typed event vocabulary of the storefront.
//
// Every state mutation and workflow step is announced on the bus as one of
// the variants below. Each variant is a plain value carrying its typed
// payload and reporting its wire name via Name(). Consumers switch on the
// concrete type; the string name exists only for subscription keying,
// pattern matching and the journal.
//
// Field-change events are the one parameterized family: their name is
// derived from the form and field they touch ("order.address:change"),
// which lets a single pattern subscription cover a whole form.
package event
