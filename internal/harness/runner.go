package harness

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"

	"github.com/RaimNist/web-larek/internal/app"
	"github.com/RaimNist/web-larek/internal/bus"
	"github.com/RaimNist/web-larek/internal/event"
	"github.com/RaimNist/web-larek/internal/model"
)

// TraceEvent is one recorded bus emission.
type TraceEvent struct {
	Seq     int64
	Name    string
	Payload string // compact JSON encoding of the event value
}

// Result is the outcome of running a scenario.
type Result struct {
	// Trace holds every bus emission of the run, including the initial
	// catalog load, in emission order.
	Trace []TraceEvent

	// StepErrors collects the (expected or not) errors returned by
	// steps, formatted as "step N (action): message". Rejected workflow
	// transitions land here rather than aborting the run, so scenarios
	// can assert on illegal-sequence behavior.
	StepErrors []string
}

// Runner drives one scenario through a wired storefront session.
type Runner struct {
	scenario Scenario
	gateway  *FakeGateway
	app      *app.App
	trace    []TraceEvent
}

// NewRunner wires a session for the scenario: fake gateway, app and a
// wildcard trace recorder. Observers (e.g. a journal Attach) subscribe
// after the recorder but before the workflow handlers.
func NewRunner(sc Scenario, observers ...func(*bus.Bus)) *Runner {
	r := &Runner{
		scenario: sc,
		gateway:  NewFakeGateway(sc),
	}
	b := bus.New()
	// The recorder subscribes before the workflow handlers, so the trace
	// lists each emission ahead of the cascade it triggered.
	b.OnMatch(regexp.MustCompile(`.*`), func(ev event.Event) {
		payload, err := json.Marshal(ev)
		if err != nil {
			payload = []byte(`{}`)
		}
		r.trace = append(r.trace, TraceEvent{
			Seq:     int64(len(r.trace) + 1),
			Name:    ev.Name(),
			Payload: string(payload),
		})
	})
	for _, observe := range observers {
		observe(b)
	}
	r.app = app.New(b, r.gateway)
	return r
}

// App exposes the session under test for extra assertions.
func (r *Runner) App() *app.App {
	return r.app
}

// Gateway exposes the fake gateway for extra assertions.
func (r *Runner) Gateway() *FakeGateway {
	return r.gateway
}

// Run loads the catalog and executes every step. Step-level workflow
// rejections are collected into the result; only programming errors
// (unknown product ids, catalog load failure) abort the run.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	defer r.app.Close()

	if err := r.app.LoadCatalog(ctx); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", r.scenario.Name, err)
	}

	result := &Result{}
	for i, step := range r.scenario.Steps {
		if err := r.runStep(ctx, step); err != nil {
			result.StepErrors = append(result.StepErrors,
				fmt.Sprintf("step %d (%s): %v", i+1, step.Action, err))
		}
	}

	result.Trace = r.trace
	return result, nil
}

func (r *Runner) runStep(ctx context.Context, step Step) error {
	switch step.Action {
	case "toggle":
		p, ok := findProduct(r.scenario, step.ID)
		if !ok {
			return fmt.Errorf("unknown product %q", step.ID)
		}
		r.app.ToggleBasket(p)
		return nil
	case "preview":
		p, ok := findProduct(r.scenario, step.ID)
		if !ok {
			return fmt.Errorf("unknown product %q", step.ID)
		}
		r.app.Preview(p)
		return nil
	case "open_basket":
		r.app.OpenBasket()
		return nil
	case "open_order":
		return r.app.OpenOrder()
	case "set":
		r.app.SetField(step.Form, step.Field, step.Value)
		return nil
	case "submit_order":
		return r.app.SubmitOrder()
	case "submit_contacts":
		return r.app.SubmitContacts(ctx)
	case "close_modal":
		r.app.CloseModal()
		return nil
	default:
		return fmt.Errorf("unknown action %q", step.Action)
	}
}

func findProduct(sc Scenario, id string) (model.Product, bool) {
	for _, p := range sc.Catalog {
		if p.ID == id {
			return p, true
		}
	}
	return model.Product{}, false
}
