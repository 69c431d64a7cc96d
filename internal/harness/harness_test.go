package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intp(v int) *int       { return &v }
func int64p(v int64) *int64 { return &v }
func boolp(v bool) *bool    { return &v }

func productPayload(id, name, category string, price int, inStock bool) map[string]interface{} {
	return map[string]interface{}{
		"product": map[string]interface{}{
			"id":       id,
			"name":     name,
			"category": category,
			"price":    price,
			"in_stock": inStock,
		},
	}
}

func TestRun_PassingScenario(t *testing.T) {
	scenario := &Scenario{
		Name:        "inline-pass",
		Description: "adds one item after sign-in",
		Setup: []Step{
			{Action: "session.sign_in", Payload: map[string]interface{}{"user_id": "u1"}},
		},
		Flow: []Step{
			{Action: "cart.add_item", Payload: productPayload("p1", "Hammer", "tools", 1299, true)},
		},
		Assertions: []Assertion{
			{Type: AssertCart, Items: intp(1), Total: int64p(1299)},
			{Type: AssertSession, Authenticated: boolp(true), UserID: "u1"},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass)
	assert.Empty(t, result.Errors)
	require.Len(t, result.Trace, 2)
	assert.Equal(t, "session.sign_in", result.Trace[0].Name)
	assert.Equal(t, "cart.add_item", result.Trace[1].Name)
}

func TestRun_FailedAssertionReported(t *testing.T) {
	scenario := &Scenario{
		Name:        "inline-fail",
		Description: "expects the wrong total",
		Setup: []Step{
			{Action: "session.sign_in", Payload: map[string]interface{}{"user_id": "u1"}},
		},
		Flow: []Step{
			{Action: "cart.add_item", Payload: productPayload("p1", "Hammer", "tools", 1299, true)},
		},
		Assertions: []Assertion{
			{Type: AssertCart, Total: int64p(999)},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "cart total = 1299, want 999")
}

func TestRun_GatedActionsLeaveNoTrace(t *testing.T) {
	scenario := &Scenario{
		Name:        "inline-gated",
		Description: "guest cart mutation is dropped",
		Flow: []Step{
			{Action: "cart.add_item", Payload: productPayload("p1", "Hammer", "tools", 1299, true)},
		},
		Assertions: []Assertion{
			{Type: AssertCart, Items: intp(0)},
			{Type: AssertJournalCount, Action: "cart.add_item", Count: intp(0)},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Empty(t, result.Trace)
}

func TestRun_UnknownActionInSetupAborts(t *testing.T) {
	scenario := &Scenario{
		Name:        "inline-bad-setup",
		Description: "setup step uses an unknown tag",
		Setup: []Step{
			{Action: "cart.vanish"},
		},
		Flow: []Step{
			{Action: "cart.clear"},
		},
		Assertions: []Assertion{
			{Type: AssertCart, Items: intp(0)},
		},
	}

	_, err := Run(scenario)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "setup[0]")
}

func TestRun_CatalogLoadPrecedesFlow(t *testing.T) {
	scenario, err := LoadScenario("testdata/scenarios/guest_gate.yaml")
	require.NoError(t, err)

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
	require.NotEmpty(t, result.Trace)
	assert.Equal(t, "catalog.load", result.Trace[0].Name)
	assert.Equal(t, 2, len(result.Final.Catalog))
}

func TestSnapshot_DigestsState(t *testing.T) {
	scenario, err := LoadScenario("testdata/scenarios/checkout.yaml")
	require.NoError(t, err)

	result, err := Run(scenario)
	require.NoError(t, err)
	require.True(t, result.Pass, "errors: %v", result.Errors)

	snap := Snapshot(result.Final)
	assert.Equal(t, StateSnapshot{
		Authenticated: true,
		UserID:        "u1",
		CatalogSize:   2,
		CartItems:     0,
		CartTotal:     0,
		Favorites:     0,
		Addresses:     1,
		Payments:      1,
		Orders:        1,
		Unread:        1,
	}, snap)
}
