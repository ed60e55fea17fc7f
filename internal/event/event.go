package event

import "github.com/RaimNist/web-larek/internal/model"

// Event is the tagged union dispatched through the bus.
// Implementations are value types; payloads are never mutated by handlers.
type Event interface {
	// Name returns the wire name used for subscription keying.
	Name() string
}

// Wire names of the fixed (non-parameterized) events.
const (
	NameItemsChanged      = "items:changed"
	NameBasketChanged     = "basket:changed"
	NameCounterUpdated    = "counter:updated"
	NamePreviewChanged    = "preview:changed"
	NameFormErrorsChanged = "formErrors:change"
	NameOrderSubmit       = "order:submit"
	NameOrderSuccess      = "order:success"
	NameModalOpened       = "modal:open"
	NameModalClosed       = "modal:close"
	NameBasketOpened      = "basket:open"
	NameBasketToggled     = "basket:toggle"
	NameOrderOpened       = "order:open"
	NameContactsOpened    = "contacts:open"
	NameContactsSubmit    = "contacts:submit"
)

// Form names used by field-change events.
const (
	FormOrder    = "order"
	FormContacts = "contacts"
)

// ItemsChanged announces a wholesale catalog replacement.
type ItemsChanged struct {
	Catalog []model.Product `json:"catalog"`
}

func (ItemsChanged) Name() string { return NameItemsChanged }

// BasketChanged announces that the basket contents changed.
// Listeners re-read the basket from state; the event carries no payload.
type BasketChanged struct{}

func (BasketChanged) Name() string { return NameBasketChanged }

// CounterUpdated carries the new basket size. Emitted immediately after
// BasketChanged so that cheap counter badges can update without a full
// basket re-render.
type CounterUpdated struct {
	Count int `json:"count"`
}

func (CounterUpdated) Name() string { return NameCounterUpdated }

// PreviewChanged carries the full product being previewed, so a detail
// view can render without a catalog lookup.
type PreviewChanged struct {
	Item model.Product `json:"item"`
}

func (PreviewChanged) Name() string { return NamePreviewChanged }

// FormErrorsChanged carries the freshly recomputed error mapping.
// An empty mapping means the validated group is currently valid.
type FormErrorsChanged struct {
	Errors model.FormErrors `json:"errors"`
}

func (FormErrorsChanged) Name() string { return NameFormErrorsChanged }

// OrderSubmit announces that the payment/address form was submitted.
type OrderSubmit struct {
	Payment string `json:"payment"`
	Address string `json:"address"`
}

func (OrderSubmit) Name() string { return NameOrderSubmit }

// OrderSuccess announces a confirmed order. Total is the amount charged,
// captured before the basket was cleared.
type OrderSuccess struct {
	Total int `json:"total"`
}

func (OrderSuccess) Name() string { return NameOrderSuccess }

// ModalOpened and ModalClosed bracket any modal interaction.
type ModalOpened struct{}

func (ModalOpened) Name() string { return NameModalOpened }

type ModalClosed struct{}

func (ModalClosed) Name() string { return NameModalClosed }

// BasketOpened announces that the basket view was opened.
type BasketOpened struct{}

func (BasketOpened) Name() string { return NameBasketOpened }

// BasketToggled asks for the product to be added to the basket if absent,
// or removed if present.
type BasketToggled struct {
	Item model.Product `json:"item"`
}

func (BasketToggled) Name() string { return NameBasketToggled }

// OrderOpened announces that the payment/address form was opened.
type OrderOpened struct{}

func (OrderOpened) Name() string { return NameOrderOpened }

// ContactsOpened announces that the email/phone form was opened.
type ContactsOpened struct{}

func (ContactsOpened) Name() string { return NameContactsOpened }

// ContactsSubmit announces that the email/phone form was submitted.
type ContactsSubmit struct{}

func (ContactsSubmit) Name() string { return NameContactsSubmit }

// FieldChanged is the parameterized field-change family. Its name embeds
// the form and field ("contacts.email:change") so pattern subscriptions
// can select a form's fields without parsing payloads.
type FieldChanged struct {
	Form  string `json:"form"`
	Field string `json:"field"`
	Value string `json:"value"`
}

func (e FieldChanged) Name() string { return e.Form + "." + e.Field + ":change" }
