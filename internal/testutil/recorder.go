// Package testutil provides deterministic helpers shared by tests:
// a bus trace recorder and a fixed token generator.
package testutil

import (
	"regexp"

	"github.com/RaimNist/web-larek/internal/bus"
	"github.com/RaimNist/web-larek/internal/event"
)

// Recorder captures every event emitted on a bus, in emission order.
// It subscribes with a wildcard pattern, so it observes exact-name and
// nested emissions alike.
type Recorder struct {
	events []event.Event
}

// NewRecorder attaches a fresh recorder to the bus.
func NewRecorder(b *bus.Bus) *Recorder {
	r := &Recorder{}
	b.OnMatch(regexp.MustCompile(`.*`), func(ev event.Event) {
		r.events = append(r.events, ev)
	})
	return r
}

// Events returns the captured events in emission order.
func (r *Recorder) Events() []event.Event {
	return r.events
}

// Names returns the wire names of the captured events in emission order.
func (r *Recorder) Names() []string {
	names := make([]string, len(r.events))
	for i, ev := range r.events {
		names[i] = ev.Name()
	}
	return names
}

// Count returns how many captured events carry the given wire name.
func (r *Recorder) Count(name string) int {
	n := 0
	for _, ev := range r.events {
		if ev.Name() == name {
			n++
		}
	}
	return n
}

// Clear drops everything captured so far.
func (r *Recorder) Clear() {
	r.events = nil
}
