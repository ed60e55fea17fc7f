// Package bus implements the publish/subscribe dispatcher that decouples
// state mutations from view updates.
//
// DISPATCH MODEL:
//
// Emission is synchronous and depth-first. Emit invokes every matching
// handler inline, in registration order; a handler that itself emits runs
// that nested cascade to completion before the remaining handlers of the
// outer emission execute. Calls form a stack, not a queue, so ordering is
// nesting order and fully deterministic.
//
// Emitting an event with no subscribers is a no-op, never an error.
//
// The bus does not recover handler panics. A panicking handler aborts the
// in-progress cascade and propagates to the emitter, leaving later
// handlers for that emission un-run. Handlers are expected not to panic.
//
// Thread-safety: subscription bookkeeping is guarded, so On/Off/Reset may
// be called from handlers mid-cascade. The single-writer discipline of the
// application keeps all emissions on one goroutine; the bus itself makes
// no cross-goroutine ordering promises.
package bus
