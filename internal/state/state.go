package state

import (
	"slices"

	"github.com/RaimNist/web-larek/internal/bus"
	"github.com/RaimNist/web-larek/internal/event"
	"github.com/RaimNist/web-larek/internal/model"
	"github.com/RaimNist/web-larek/internal/validation"
)

// State owns the mutable application data.
//
// INVARIANTS:
//   - The basket never contains the same identifier twice; insertion
//     order is preserved.
//   - Total is always recomputed from basket + catalog, never stored.
//   - Draft fields are only written through SetOrderField, which
//     re-validates the owning form group immediately after the write.
type State struct {
	bus     *bus.Bus
	catalog []model.Product
	basket  []string
	draft   model.OrderDraft
	errors  model.FormErrors
	preview string // product id, "" = no preview
}

// New creates a State bound to the given bus.
func New(b *bus.Bus) *State {
	return &State{
		bus:    b,
		errors: model.FormErrors{},
	}
}

// SetCatalog replaces the catalog wholesale and emits ItemsChanged with
// the new contents. There is no incremental merge.
func (s *State) SetCatalog(items []model.Product) {
	s.catalog = slices.Clone(items)
	s.bus.Emit(event.ItemsChanged{Catalog: slices.Clone(s.catalog)})
}

// Catalog returns a copy of the current catalog.
func (s *State) Catalog() []model.Product {
	return slices.Clone(s.catalog)
}

// Find looks up a catalog product by id.
func (s *State) Find(id string) (model.Product, bool) {
	for _, p := range s.catalog {
		if p.ID == id {
			return p, true
		}
	}
	return model.Product{}, false
}

// AddToBasket appends the product's id to the basket. Idempotent: adding
// a product already present is a no-op and emits nothing.
func (s *State) AddToBasket(p model.Product) {
	if slices.Contains(s.basket, p.ID) {
		return
	}
	s.basket = append(s.basket, p.ID)
	s.basketChanged()
}

// RemoveFromBasket filters the id out of the basket. Removing an absent
// id still emits the basket events, mirroring the other mutators.
func (s *State) RemoveFromBasket(id string) {
	s.basket = slices.DeleteFunc(s.basket, func(v string) bool { return v == id })
	s.basketChanged()
}

// ClearBasket empties the basket.
func (s *State) ClearBasket() {
	s.basket = nil
	s.basketChanged()
}

// basketChanged emits the two basket events. BasketChanged first, then
// CounterUpdated: contents displays and counter badges are independent
// listeners with different refresh costs.
func (s *State) basketChanged() {
	s.bus.Emit(event.BasketChanged{})
	s.bus.Emit(event.CounterUpdated{Count: len(s.basket)})
}

// Basket returns a copy of the basket's product ids in insertion order.
func (s *State) Basket() []string {
	return slices.Clone(s.basket)
}

// InBasket reports whether the id is currently in the basket.
func (s *State) InBasket(id string) bool {
	return slices.Contains(s.basket, id)
}

// SetPreview records the previewed product and emits PreviewChanged
// carrying the full product, so a detail view renders without a catalog
// lookup.
func (s *State) SetPreview(p model.Product) {
	s.preview = p.ID
	s.bus.Emit(event.PreviewChanged{Item: p})
}

// Preview returns the previewed product id, if any.
func (s *State) Preview() (string, bool) {
	return s.preview, s.preview != ""
}

// SetOrderField writes one draft field and immediately re-validates the
// owning form group, emitting FormErrorsChanged with the fresh mapping.
//
// Unknown fields are rejected silently: no mutation, no event. Malformed
// UI events must not be able to corrupt the draft.
func (s *State) SetOrderField(field, value string) {
	switch field {
	case model.FieldPayment:
		s.draft.Payment = value
	case model.FieldAddress:
		s.draft.Address = value
	case model.FieldEmail:
		s.draft.Email = value
	case model.FieldPhone:
		s.draft.Phone = value
	default:
		return
	}

	switch validation.GroupOf(field) {
	case validation.GroupOrder:
		s.ValidateOrder()
	case validation.GroupContacts:
		s.ValidateContacts()
	}
}

// ValidateOrder recomputes the payment/address group errors, stores them
// and broadcasts FormErrorsChanged — also when the mapping is empty,
// which is the "form is valid" signal to listeners.
func (s *State) ValidateOrder() bool {
	errs, ok := validation.CheckOrder(s.draft)
	s.setErrors(errs)
	return ok
}

// ValidateContacts recomputes the email/phone group errors, stores them
// and broadcasts FormErrorsChanged.
func (s *State) ValidateContacts() bool {
	errs, ok := validation.CheckContacts(s.draft)
	s.setErrors(errs)
	return ok
}

// OrderGroupValid reports the order group's validity without storing or
// broadcasting anything. Used by workflow wiring that needs a read-only
// answer.
func (s *State) OrderGroupValid() bool {
	_, ok := validation.CheckOrder(s.draft)
	return ok
}

// ContactsGroupValid reports the contacts group's validity without side
// effects.
func (s *State) ContactsGroupValid() bool {
	_, ok := validation.CheckContacts(s.draft)
	return ok
}

func (s *State) setErrors(errs model.FormErrors) {
	s.errors = errs
	s.bus.Emit(event.FormErrorsChanged{Errors: errs})
}

// Errors returns the error mapping from the most recent validation call.
func (s *State) Errors() model.FormErrors {
	out := make(model.FormErrors, len(s.errors))
	for k, v := range s.errors {
		out[k] = v
	}
	return out
}

// Draft returns a snapshot of the order draft with Total filled in.
func (s *State) Draft() model.OrderDraft {
	d := s.draft
	d.Total = s.Total()
	return d
}

// ResetDraft clears the draft and the stored errors after a completed
// checkout. No event: the next checkout starts from a fresh form.
func (s *State) ResetDraft() {
	s.draft = model.OrderDraft{}
	s.errors = model.FormErrors{}
}

// Total recomputes the basket total from the catalog. A basket id absent
// from the catalog and a priceless product both contribute zero; that is
// defined degradation, not an error.
func (s *State) Total() int {
	total := 0
	for _, id := range s.basket {
		p, ok := s.Find(id)
		if !ok || p.Price == nil {
			continue
		}
		total += *p.Price
	}
	return total
}

// OrderData snapshots the draft, the basket as line items and the
// recomputed total into the submission shape for the order endpoint.
func (s *State) OrderData() model.Order {
	return model.Order{
		Payment: s.draft.Payment,
		Address: s.draft.Address,
		Email:   s.draft.Email,
		Phone:   s.draft.Phone,
		Items:   slices.Clone(s.basket),
		Total:   s.Total(),
	}
}
