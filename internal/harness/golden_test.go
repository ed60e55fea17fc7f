package harness

import "testing"

// Golden traces pin the exact emission order of the event catalog,
// including the depth-first cascades: each recorded emission precedes
// the nested emissions its handlers triggered.

func TestGolden_BasketFlow(t *testing.T) {
	sc := loadScenario(t, "basket-flow")
	RunWithGolden(t, sc)
}

func TestGolden_OrderValidation(t *testing.T) {
	sc := loadScenario(t, "order-validation")
	result := RunWithGolden(t, sc)

	if len(result.StepErrors) != 0 {
		t.Fatalf("unexpected step errors: %v", result.StepErrors)
	}
}
