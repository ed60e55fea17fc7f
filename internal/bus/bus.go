package bus

import (
	"regexp"
	"sync"

	"github.com/RaimNist/web-larek/internal/event"
)

// Handler consumes a dispatched event. Handlers switch on the concrete
// event type to access the payload. Return values are deliberately absent:
// handlers cannot influence dispatch flow.
type Handler func(event.Event)

// Subscription identifies a registered handler for later removal.
type Subscription int64

// subscription is one registered handler. Exactly one of name/pattern is
// set: name for exact matching, pattern for regexp matching.
type subscription struct {
	id      Subscription
	name    string
	pattern *regexp.Regexp
	handler Handler
}

// Bus is the publish/subscribe dispatcher.
//
// INVARIANT: handlers matching an emission are invoked in registration
// order, regardless of whether they subscribed by exact name or pattern.
type Bus struct {
	mu     sync.Mutex
	nextID Subscription
	subs   []subscription
}

// New creates an empty bus.
func New() *Bus {
	return &Bus{}
}

// On registers a handler for the exact event name.
// Returns a Subscription usable with Off at component teardown.
func (b *Bus) On(name string, h Handler) Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	b.subs = append(b.subs, subscription{id: b.nextID, name: name, handler: h})
	return b.nextID
}

// OnMatch registers a handler for every emitted name the pattern matches.
// A pattern of ".*" observes the whole event stream (used by the journal
// and the test trace recorder).
func (b *Bus) OnMatch(pattern *regexp.Regexp, h Handler) Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	b.subs = append(b.subs, subscription{id: b.nextID, pattern: pattern, handler: h})
	return b.nextID
}

// Off removes a single registration. Removing an unknown subscription is
// a no-op.
func (b *Bus) Off(s Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, sub := range b.subs {
		if sub.id == s {
			b.subs = append(b.subs[:i], b.subs[i+1:]...)
			return
		}
	}
}

// Reset removes every registration. Used at application teardown.
func (b *Bus) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.subs = nil
}

// Emit synchronously invokes every handler whose registration matches the
// event's name, in registration order, passing the event value.
//
// The matching set is snapshotted before the first handler runs: handlers
// registered or removed during the cascade take effect from the next
// emission, never mid-emission. Nested Emit calls run depth-first to
// completion before control returns here.
func (b *Bus) Emit(ev event.Event) {
	name := ev.Name()

	b.mu.Lock()
	matched := make([]Handler, 0, len(b.subs))
	for _, sub := range b.subs {
		if sub.pattern != nil {
			if sub.pattern.MatchString(name) {
				matched = append(matched, sub.handler)
			}
			continue
		}
		if sub.name == name {
			matched = append(matched, sub.handler)
		}
	}
	b.mu.Unlock()

	for _, h := range matched {
		h(ev)
	}
}
