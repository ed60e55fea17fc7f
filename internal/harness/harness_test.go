package harness

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func loadScenario(t *testing.T, name string) Scenario {
	t.Helper()
	sc, err := Load(filepath.Join("testdata", name+".yaml"))
	require.NoError(t, err)
	return sc
}

func TestLoad_ValidScenario(t *testing.T) {
	sc := loadScenario(t, "basket-flow")

	assert.Equal(t, "basket-flow", sc.Name)
	require.Len(t, sc.Catalog, 2)
	assert.Equal(t, "a", sc.Catalog[0].ID)
	require.NotNil(t, sc.Catalog[0].Price)
	assert.Equal(t, 100, *sc.Catalog[0].Price)
	assert.Len(t, sc.Steps, 3)
	assert.Equal(t, []string{"b"}, sc.Expect.Basket)
}

func TestLoad_RejectsUnknownAction(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	writeFile(t, path, `
name: bad
steps:
  - action: teleport
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown action")
}

func TestLoad_RejectsToggleWithoutID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	writeFile(t, path, `
name: bad
steps:
  - action: toggle
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires id")
}

func TestRunner_CheckoutHappyPath(t *testing.T) {
	sc := loadScenario(t, "checkout-happy-path")
	runner := NewRunner(sc)

	result, err := runner.Run(context.Background())
	require.NoError(t, err)
	assert.Empty(t, result.StepErrors)

	failures := Check(sc, runner.App(), runner.Gateway())
	assert.Empty(t, failures)

	orders := runner.Gateway().Orders()
	require.Len(t, orders, 1)
	assert.Equal(t, []string{"a", "b", "free"}, orders[0].Items)
	assert.Equal(t, 150, orders[0].Total, "the priceless item contributes zero")
}

func TestRunner_OrderFailureLeavesStateForRetry(t *testing.T) {
	sc := loadScenario(t, "order-failure")
	runner := NewRunner(sc)

	result, err := runner.Run(context.Background())
	require.NoError(t, err)
	assert.Empty(t, result.StepErrors, "network faults are swallowed, not step errors")

	failures := Check(sc, runner.App(), runner.Gateway())
	assert.Empty(t, failures)
}

func TestRunner_UnknownProductIsStepError(t *testing.T) {
	sc := Scenario{
		Name:  "ghost",
		Steps: []Step{{Action: "toggle", ID: "ghost"}},
	}
	runner := NewRunner(sc)

	result, err := runner.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, result.StepErrors, 1)
	assert.Contains(t, result.StepErrors[0], `unknown product "ghost"`)
}

func TestRunner_IllegalSequenceIsStepError(t *testing.T) {
	sc := loadScenario(t, "basket-flow")
	// Valid contacts submitted without ever opening the order form: the
	// machine rejects the jump.
	sc.Steps = append(sc.Steps,
		Step{Action: "set", Form: "contacts", Field: "email", Value: "a@b.c"},
		Step{Action: "set", Form: "contacts", Field: "phone", Value: "79991234567"},
		Step{Action: "submit_contacts"},
	)
	runner := NewRunner(sc)

	result, err := runner.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, result.StepErrors, 1)
	assert.Contains(t, result.StepErrors[0], "illegal checkout transition")
}

func TestCheck_ReportsFailures(t *testing.T) {
	sc := loadScenario(t, "basket-flow")
	total := 999
	sc.Expect.Total = &total

	runner := NewRunner(sc)
	_, err := runner.Run(context.Background())
	require.NoError(t, err)

	failures := Check(sc, runner.App(), runner.Gateway())
	require.Len(t, failures, 1)
	assert.Contains(t, failures[0], "total: want 999")
}
