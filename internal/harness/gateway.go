package harness

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/RaimNist/web-larek/internal/model"
)

// ErrOrdersFailing is returned by the fake gateway when fault injection
// is on.
var ErrOrdersFailing = errors.New("order endpoint failing (injected)")

// FakeGateway is an in-memory api.Gateway serving a fixed catalog and
// accepting orders into a slice. Deterministic apart from generated
// order ids, which never appear in traces.
type FakeGateway struct {
	// Products is returned by GetItems.
	Products []model.Product
	// FailOrders makes OrderItems fail without recording the order.
	FailOrders bool

	orders []model.Order
}

// NewFakeGateway creates a gateway serving the scenario's catalog.
func NewFakeGateway(sc Scenario) *FakeGateway {
	return &FakeGateway{
		Products:   sc.Catalog,
		FailOrders: sc.Gateway.FailOrders,
	}
}

// GetItems returns the fixed catalog.
func (g *FakeGateway) GetItems(context.Context) ([]model.Product, error) {
	return g.Products, nil
}

// OrderItems records the order and confirms it, unless fault injection
// is on.
func (g *FakeGateway) OrderItems(_ context.Context, order model.Order) (model.OrderResult, error) {
	if g.FailOrders {
		return model.OrderResult{}, fmt.Errorf("submit order: %w", ErrOrdersFailing)
	}
	g.orders = append(g.orders, order)
	return model.OrderResult{ID: uuid.Must(uuid.NewV7()).String(), Total: order.Total}, nil
}

// Orders returns every order accepted so far.
func (g *FakeGateway) Orders() []model.Order {
	return g.orders
}
