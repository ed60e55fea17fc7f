package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"

	"github.com/RaimNist/web-larek/internal/api"
	"github.com/RaimNist/web-larek/internal/bus"
	"github.com/RaimNist/web-larek/internal/checkout"
	"github.com/RaimNist/web-larek/internal/event"
	"github.com/RaimNist/web-larek/internal/model"
	"github.com/RaimNist/web-larek/internal/state"
)

// ErrEmptyBasket rejects opening the order form with nothing to buy.
var ErrEmptyBasket = errors.New("basket is empty")

var (
	orderFieldRe    = regexp.MustCompile(`^order\.(payment|address):change$`)
	contactsFieldRe = regexp.MustCompile(`^contacts\.(email|phone):change$`)
)

// App owns one storefront session: an explicitly constructed context
// object passed to whatever needs it, with construction in New and
// teardown in Close. No ambient package state.
type App struct {
	bus     *bus.Bus
	state   *state.State
	machine *checkout.Machine
	gateway api.Gateway
	log     *slog.Logger
}

// Option configures the App.
type Option func(*App)

// WithLogger substitutes the logger (default slog.Default).
func WithLogger(l *slog.Logger) Option {
	return func(a *App) {
		a.log = l
	}
}

// New constructs the session on the given bus and registers all
// workflow handlers. The bus is passed in, not created, so observers
// (journal, trace recorders) can subscribe ahead of the workflow
// handlers and see every emission in emission order.
func New(b *bus.Bus, gw api.Gateway, opts ...Option) *App {
	a := &App{
		bus:     b,
		state:   state.New(b),
		machine: checkout.NewMachine(),
		gateway: gw,
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.wire()
	return a
}

// Close detaches every bus handler. The App must not be used afterwards.
func (a *App) Close() {
	a.bus.Reset()
}

// Bus exposes the event bus so observers (journal, trace recorders,
// views) can subscribe.
func (a *App) Bus() *bus.Bus {
	return a.bus
}

// State exposes the application state for read access.
func (a *App) State() *state.State {
	return a.state
}

// Phase returns the current checkout phase.
func (a *App) Phase() checkout.Phase {
	return a.machine.Phase()
}

// wire registers the handlers that keep state and machine consistent
// with the event stream. Mirrors of these exist for every entry in the
// event catalog that carries workflow meaning; pure view events
// (modal:open, basket:open, preview:changed, ...) pass through to
// whatever subscribed.
func (a *App) wire() {
	// Toggle semantics: add when absent, remove when present.
	a.bus.On(event.NameBasketToggled, func(ev event.Event) {
		t, ok := ev.(event.BasketToggled)
		if !ok {
			return
		}
		if a.state.InBasket(t.Item.ID) {
			a.state.RemoveFromBasket(t.Item.ID)
		} else {
			a.state.AddToBasket(t.Item)
		}
	})

	// Order-form edits re-validate the order group and keep the machine
	// in step while the form is open.
	a.bus.OnMatch(orderFieldRe, func(ev event.Event) {
		fc, ok := ev.(event.FieldChanged)
		if !ok {
			return
		}
		a.state.SetOrderField(fc.Field, fc.Value)

		switch a.machine.Phase() {
		case checkout.OrderOpen, checkout.OrderValid:
			if a.state.OrderGroupValid() {
				_ = a.machine.MarkOrderValid()
			} else {
				_ = a.machine.MarkOrderInvalid()
			}
		}
	})

	// Contacts-form edits only touch the draft; the machine moves on
	// submit.
	a.bus.OnMatch(contactsFieldRe, func(ev event.Event) {
		fc, ok := ev.(event.FieldChanged)
		if !ok {
			return
		}
		a.state.SetOrderField(fc.Field, fc.Value)
	})

	// Closing the modal mid-checkout abandons the attempt. The draft is
	// kept so reopening the form does not lose the user's input.
	a.bus.On(event.NameModalClosed, func(event.Event) {
		switch a.machine.Phase() {
		case checkout.OrderOpen, checkout.OrderValid, checkout.ContactsOpen:
			_ = a.machine.Abandon()
		}
	})
}

// LoadCatalog fetches the catalog through the gateway and replaces the
// state wholesale. On failure the previous catalog is kept.
func (a *App) LoadCatalog(ctx context.Context) error {
	items, err := a.gateway.GetItems(ctx)
	if err != nil {
		a.log.Error("catalog load failed", "error", err)
		return fmt.Errorf("load catalog: %w", err)
	}
	a.state.SetCatalog(items)
	a.log.Info("catalog loaded", "items", len(items))
	return nil
}

// Preview records the product for the detail view and opens the modal.
func (a *App) Preview(p model.Product) {
	a.state.SetPreview(p)
	a.bus.Emit(event.ModalOpened{})
}

// OpenBasket opens the basket view.
func (a *App) OpenBasket() {
	a.bus.Emit(event.BasketOpened{})
	a.bus.Emit(event.ModalOpened{})
}

// ToggleBasket adds the product to the basket if absent, removes it if
// present.
func (a *App) ToggleBasket(p model.Product) {
	a.bus.Emit(event.BasketToggled{Item: p})
}

// OpenOrder starts checkout: requires a non-empty basket and a machine
// phase that permits opening the payment/address form.
func (a *App) OpenOrder() error {
	if len(a.state.Basket()) == 0 {
		return ErrEmptyBasket
	}
	if err := a.machine.OpenOrder(); err != nil {
		return err
	}
	a.bus.Emit(event.OrderOpened{})
	return nil
}

// SetField routes one form-field edit through the bus. Unknown
// form/field combinations match no handler and change nothing.
func (a *App) SetField(form, field, value string) {
	a.bus.Emit(event.FieldChanged{Form: form, Field: field, Value: value})
}

// SubmitOrder submits the payment/address form. When the group is valid
// the contacts form opens; otherwise the fresh errors have already been
// broadcast and the machine stays put.
func (a *App) SubmitOrder() error {
	d := a.state.Draft()
	a.bus.Emit(event.OrderSubmit{Payment: d.Payment, Address: d.Address})

	if !a.state.ValidateOrder() {
		return nil
	}
	if err := a.machine.MarkOrderValid(); err != nil {
		return err
	}
	if err := a.machine.OpenContacts(); err != nil {
		return err
	}
	a.bus.Emit(event.ContactsOpened{})
	return nil
}

// SubmitContacts submits the email/phone form and, when valid, sends the
// order through the gateway.
//
// The machine enters Submitting before the network call, so a second
// submission while the first is in flight is rejected with a
// TransitionError. On network failure the error is logged, the machine
// returns to ContactsOpen and basket and draft stay untouched for a
// retry; the method still returns nil per the storefront's
// log-and-swallow policy for network faults.
func (a *App) SubmitContacts(ctx context.Context) error {
	a.bus.Emit(event.ContactsSubmit{})

	if !a.state.ValidateContacts() {
		return nil
	}
	if err := a.machine.BeginSubmit(); err != nil {
		return err
	}

	// Captured before the basket is cleared; the success payload carries
	// the amount actually charged.
	total := a.state.Total()

	result, err := a.gateway.OrderItems(ctx, a.state.OrderData())
	if err != nil {
		a.log.Error("order submit failed", "error", err)
		_ = a.machine.FailSubmit()
		return nil
	}

	a.log.Info("order confirmed", "id", result.ID, "total", result.Total)

	_ = a.machine.CompleteSubmit()
	a.bus.Emit(event.ModalClosed{})
	a.bus.Emit(event.OrderSuccess{Total: total})
	a.state.ClearBasket()
	a.state.ResetDraft()
	_ = a.machine.Finish()
	return nil
}

// CloseModal closes whatever modal is open; an in-progress form phase is
// abandoned by the modal:close handler.
func (a *App) CloseModal() {
	a.bus.Emit(event.ModalClosed{})
}
