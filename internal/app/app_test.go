package app_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RaimNist/web-larek/internal/app"
	"github.com/RaimNist/web-larek/internal/bus"
	"github.com/RaimNist/web-larek/internal/checkout"
	"github.com/RaimNist/web-larek/internal/event"
	"github.com/RaimNist/web-larek/internal/model"
	"github.com/RaimNist/web-larek/internal/testutil"
)

// fakeGateway is an in-memory api.Gateway.
type fakeGateway struct {
	products []model.Product
	orders   []model.Order
	itemsErr error
	orderErr error
}

func (f *fakeGateway) GetItems(context.Context) ([]model.Product, error) {
	if f.itemsErr != nil {
		return nil, f.itemsErr
	}
	return f.products, nil
}

func (f *fakeGateway) OrderItems(_ context.Context, order model.Order) (model.OrderResult, error) {
	if f.orderErr != nil {
		return model.OrderResult{}, f.orderErr
	}
	f.orders = append(f.orders, order)
	return model.OrderResult{ID: "order-1", Total: order.Total}, nil
}

func price(v int) *int { return &v }

func catalog() []model.Product {
	return []model.Product{
		{ID: "a", Title: "Widget", Price: price(100)},
		{ID: "b", Title: "Gadget", Price: price(50)},
	}
}

func newApp(t *testing.T, gw *fakeGateway) (*app.App, *testutil.Recorder) {
	t.Helper()
	b := bus.New()
	rec := testutil.NewRecorder(b)
	a := app.New(b, gw, app.WithLogger(slog.Default()))
	t.Cleanup(a.Close)
	require.NoError(t, a.LoadCatalog(context.Background()))
	rec.Clear()
	return a, rec
}

func fillValidForms(a *app.App) {
	a.SetField(event.FormOrder, model.FieldPayment, model.PaymentCard)
	a.SetField(event.FormOrder, model.FieldAddress, "Main St 42")
	a.SetField(event.FormContacts, model.FieldEmail, "a@b.c")
	a.SetField(event.FormContacts, model.FieldPhone, "79991234567")
}

func TestApp_LoadCatalogFailureKeepsState(t *testing.T) {
	gw := &fakeGateway{products: catalog()}
	a, _ := newApp(t, gw)

	gw.itemsErr = errors.New("network down")
	err := a.LoadCatalog(context.Background())

	require.Error(t, err)
	assert.Len(t, a.State().Catalog(), 2, "previous catalog is kept on failure")
}

func TestApp_ToggleBasket(t *testing.T) {
	a, rec := newApp(t, &fakeGateway{products: catalog()})
	p := catalog()[0]

	a.ToggleBasket(p)
	assert.Equal(t, []string{"a"}, a.State().Basket())

	a.ToggleBasket(p)
	assert.Empty(t, a.State().Basket())

	assert.Equal(t, []string{
		"basket:toggle", "basket:changed", "counter:updated",
		"basket:toggle", "basket:changed", "counter:updated",
	}, rec.Names(), "toggle cascades run depth-first inside the emit")
}

func TestApp_OpenOrderRequiresBasket(t *testing.T) {
	a, _ := newApp(t, &fakeGateway{products: catalog()})

	err := a.OpenOrder()

	require.ErrorIs(t, err, app.ErrEmptyBasket)
	assert.Equal(t, checkout.Browsing, a.Phase())
}

func TestApp_CheckoutHappyPath(t *testing.T) {
	gw := &fakeGateway{products: catalog()}
	a, rec := newApp(t, gw)

	a.ToggleBasket(catalog()[0])
	a.ToggleBasket(catalog()[1])
	require.NoError(t, a.OpenOrder())
	assert.Equal(t, checkout.OrderOpen, a.Phase())

	a.SetField(event.FormOrder, model.FieldPayment, model.PaymentCard)
	assert.Equal(t, checkout.OrderOpen, a.Phase(), "address still missing")

	a.SetField(event.FormOrder, model.FieldAddress, "Main St 42")
	assert.Equal(t, checkout.OrderValid, a.Phase())

	require.NoError(t, a.SubmitOrder())
	assert.Equal(t, checkout.ContactsOpen, a.Phase())

	a.SetField(event.FormContacts, model.FieldEmail, "a@b.c")
	a.SetField(event.FormContacts, model.FieldPhone, "+7 (999) 123-45-67")

	rec.Clear()
	require.NoError(t, a.SubmitContacts(context.Background()))

	// Submission outcome.
	require.Len(t, gw.orders, 1)
	assert.Equal(t, model.Order{
		Payment: model.PaymentCard,
		Address: "Main St 42",
		Email:   "a@b.c",
		Phone:   "+7 (999) 123-45-67",
		Items:   []string{"a", "b"},
		Total:   150,
	}, gw.orders[0])

	// State after success: basket cleared, draft reset, back to browsing.
	assert.Empty(t, a.State().Basket())
	assert.Equal(t, model.OrderDraft{}, a.State().Draft())
	assert.Equal(t, checkout.Browsing, a.Phase())

	// Success event carries the amount charged before the clear.
	names := rec.Names()
	successIdx := -1
	for i, ev := range rec.Events() {
		if success, ok := ev.(event.OrderSuccess); ok {
			successIdx = i
			assert.Equal(t, 150, success.Total)
		}
	}
	require.GreaterOrEqual(t, successIdx, 0, "order:success must be emitted, got %v", names)
}

func TestApp_SubmitOrderInvalidStaysPut(t *testing.T) {
	a, rec := newApp(t, &fakeGateway{products: catalog()})
	a.ToggleBasket(catalog()[0])
	require.NoError(t, a.OpenOrder())

	a.SetField(event.FormOrder, model.FieldAddress, "abc")
	rec.Clear()

	require.NoError(t, a.SubmitOrder())

	assert.Equal(t, checkout.OrderOpen, a.Phase())
	assert.Contains(t, rec.Names(), "formErrors:change")
	assert.NotContains(t, rec.Names(), "contacts:open")
	errs := a.State().Errors()
	assert.Contains(t, errs, model.FieldPayment)
	assert.Contains(t, errs, model.FieldAddress)
}

func TestApp_SubmitContactsBeforeOrderRejected(t *testing.T) {
	a, _ := newApp(t, &fakeGateway{products: catalog()})
	a.ToggleBasket(catalog()[0])
	fillValidForms(a)

	err := a.SubmitContacts(context.Background())

	require.Error(t, err)
	assert.True(t, checkout.IsTransitionError(err), "submit before the order step must be rejected by the machine")
}

func TestApp_NetworkFailureKeepsBasketAndDraft(t *testing.T) {
	gw := &fakeGateway{products: catalog(), orderErr: errors.New("gateway timeout")}
	a, _ := newApp(t, gw)

	a.ToggleBasket(catalog()[0])
	require.NoError(t, a.OpenOrder())
	fillValidForms(a)
	require.NoError(t, a.SubmitOrder())

	err := a.SubmitContacts(context.Background())

	require.NoError(t, err, "network faults are logged and swallowed")
	assert.Equal(t, checkout.ContactsOpen, a.Phase(), "back to the contacts form for a retry")
	assert.Equal(t, []string{"a"}, a.State().Basket(), "basket retained")
	assert.Equal(t, model.PaymentCard, a.State().Draft().Payment, "draft retained")

	// Retry succeeds once the gateway recovers.
	gw.orderErr = nil
	require.NoError(t, a.SubmitContacts(context.Background()))
	require.Len(t, gw.orders, 1)
	assert.Equal(t, checkout.Browsing, a.Phase())
}

func TestApp_UnknownFieldEventIsHarmless(t *testing.T) {
	a, rec := newApp(t, &fakeGateway{products: catalog()})

	a.SetField("order", "bogus", "x")
	a.SetField("payment", model.FieldPayment, "card")

	assert.Equal(t, model.OrderDraft{}, a.State().Draft())
	// The field events themselves are observable, but no validation or
	// mutation follows.
	assert.Equal(t, []string{"order.bogus:change", "payment.payment:change"}, rec.Names())
}

func TestApp_AbandonOnModalClose(t *testing.T) {
	a, _ := newApp(t, &fakeGateway{products: catalog()})
	a.ToggleBasket(catalog()[0])
	require.NoError(t, a.OpenOrder())
	a.SetField(event.FormOrder, model.FieldPayment, model.PaymentCash)
	a.SetField(event.FormOrder, model.FieldAddress, "Main St 42")
	require.Equal(t, checkout.OrderValid, a.Phase())

	a.CloseModal()

	assert.Equal(t, checkout.Browsing, a.Phase())
	assert.Equal(t, model.PaymentCash, a.State().Draft().Payment, "draft survives an abandoned attempt")

	// Reopening and resubmitting picks the draft back up.
	require.NoError(t, a.OpenOrder())
	require.NoError(t, a.SubmitOrder())
	assert.Equal(t, checkout.ContactsOpen, a.Phase())
}

func TestApp_PreviewLeavesTotalAlone(t *testing.T) {
	a, _ := newApp(t, &fakeGateway{products: catalog()})
	a.ToggleBasket(catalog()[0])

	before := a.State().Total()
	a.Preview(catalog()[1])

	assert.Equal(t, before, a.State().Total())
	id, ok := a.State().Preview()
	require.True(t, ok)
	assert.Equal(t, "b", id)
}
