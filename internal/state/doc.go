// Package state holds the single source of truth for the storefront:
// the product catalog, the basket, the in-progress order draft, the last
// validation error set and the preview selection.
//
// Views never mutate state directly. Every mutator is a single
// synchronous unit that updates the data and emits the bus events views
// need to stay consistent; no mutator suspends mid-update, so observers
// never see a partially-applied change.
//
// A State is explicitly constructed with its bus and passed to whatever
// needs it. There is no package-level instance.
package state
