package harness

import (
	"fmt"
	"slices"

	"github.com/RaimNist/web-larek/internal/app"
	"github.com/RaimNist/web-larek/internal/checkout"
)

// Check evaluates the scenario's expectations against the finished
// session. Returns one message per failed expectation; empty means pass.
func Check(sc Scenario, a *app.App, gw *FakeGateway) []string {
	var failures []string
	exp := sc.Expect

	if exp.Basket != nil {
		got := a.State().Basket()
		want := exp.Basket
		if len(want) == 0 {
			want = nil
		}
		if len(got) == 0 {
			got = nil
		}
		if !slices.Equal(got, want) {
			failures = append(failures, fmt.Sprintf("basket: want %v, got %v", exp.Basket, a.State().Basket()))
		}
	}

	if exp.Total != nil {
		if got := a.State().Total(); got != *exp.Total {
			failures = append(failures, fmt.Sprintf("total: want %d, got %d", *exp.Total, got))
		}
	}

	if exp.Phase != "" {
		want, ok := checkout.PhaseByName(exp.Phase)
		if !ok {
			failures = append(failures, fmt.Sprintf("phase: unknown phase name %q", exp.Phase))
		} else if got := a.Phase(); got != want {
			failures = append(failures, fmt.Sprintf("phase: want %s, got %s", want, got))
		}
	}

	if exp.ErrorKeys != nil {
		errs := a.State().Errors()
		for _, key := range exp.ErrorKeys {
			if _, ok := errs[key]; !ok {
				failures = append(failures, fmt.Sprintf("errors: key %q missing from %v", key, errs))
			}
		}
		if len(errs) != len(exp.ErrorKeys) {
			failures = append(failures, fmt.Sprintf("errors: want exactly keys %v, got %v", exp.ErrorKeys, errs))
		}
	}

	if exp.Orders != nil {
		if got := len(gw.Orders()); got != *exp.Orders {
			failures = append(failures, fmt.Sprintf("orders: want %d accepted, got %d", *exp.Orders, got))
		}
	}

	return failures
}
