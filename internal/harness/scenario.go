// Package harness runs declarative shopping scenarios against a fully
// wired storefront session.
//
// A scenario file declares the catalog served by a fake gateway, the
// user steps to drive, and assertions on the resulting state and event
// trace. Scenarios back the conformance tests and the `larek run`
// command.
package harness

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/RaimNist/web-larek/internal/model"
)

// Scenario is one declarative storefront session.
type Scenario struct {
	// Name uniquely identifies the scenario; it is also the golden file
	// name.
	Name string `yaml:"name"`

	// Description explains what the scenario exercises.
	Description string `yaml:"description,omitempty"`

	// Catalog is served by the fake gateway on catalog load.
	Catalog []model.Product `yaml:"catalog"`

	// Gateway tweaks the fake gateway's behavior.
	Gateway GatewayBehavior `yaml:"gateway,omitempty"`

	// Steps are executed in order after the initial catalog load.
	Steps []Step `yaml:"steps"`

	// Expect is checked after the last step.
	Expect Expect `yaml:"expect,omitempty"`
}

// GatewayBehavior configures fault injection.
type GatewayBehavior struct {
	// FailOrders makes every order submission fail at the network level.
	FailOrders bool `yaml:"fail_orders,omitempty"`
}

// Step is one user action.
//
// Actions: toggle, preview, open_basket, open_order, set, submit_order,
// submit_contacts, close_modal. toggle and preview name a catalog
// product via id; set names a form field via form/field/value.
type Step struct {
	Action string `yaml:"action"`
	ID     string `yaml:"id,omitempty"`
	Form   string `yaml:"form,omitempty"`
	Field  string `yaml:"field,omitempty"`
	Value  string `yaml:"value,omitempty"`
}

// Expect declares the final-state assertions. Absent fields are skipped.
type Expect struct {
	// Basket is the expected basket contents in order.
	Basket []string `yaml:"basket,omitempty"`
	// Total is the expected recomputed basket total.
	Total *int `yaml:"total,omitempty"`
	// Phase is the expected checkout phase name.
	Phase string `yaml:"phase,omitempty"`
	// ErrorKeys are the field keys expected in the last error mapping.
	ErrorKeys []string `yaml:"error_keys,omitempty"`
	// Orders is the expected number of orders the gateway accepted.
	Orders *int `yaml:"orders,omitempty"`
}

// Load reads and validates a scenario file.
func Load(path string) (Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, fmt.Errorf("read scenario %s: %w", path, err)
	}

	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return Scenario{}, fmt.Errorf("parse scenario %s: %w", path, err)
	}

	if sc.Name == "" {
		return Scenario{}, fmt.Errorf("scenario %s: name is required", path)
	}
	for i, step := range sc.Steps {
		if err := validateStep(step); err != nil {
			return Scenario{}, fmt.Errorf("scenario %s: step %d: %w", path, i+1, err)
		}
	}
	return sc, nil
}

func validateStep(step Step) error {
	switch step.Action {
	case "toggle", "preview":
		if step.ID == "" {
			return fmt.Errorf("action %q requires id", step.Action)
		}
	case "set":
		if step.Form == "" || step.Field == "" {
			return fmt.Errorf("action %q requires form and field", step.Action)
		}
	case "open_basket", "open_order", "submit_order", "submit_contacts", "close_modal":
		// No arguments.
	default:
		return fmt.Errorf("unknown action %q", step.Action)
	}
	return nil
}
