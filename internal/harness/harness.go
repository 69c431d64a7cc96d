// Package harness executes YAML conformance scenarios against the real
// reducer and dispatcher.
//
// Each scenario runs in a fresh in-memory journal with a frozen clock and
// sequential ID generation, so the same scenario always produces the same
// journal timeline and final state. Golden files capture that timeline;
// assertions spot-check the parts a scenario cares about.
package harness

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/tessaro/storefront/internal/action"
	"github.com/tessaro/storefront/internal/catalog"
	"github.com/tessaro/storefront/internal/dispatch"
	"github.com/tessaro/storefront/internal/store"
	"github.com/tessaro/storefront/internal/testutil"
)

// scenarioEpoch is the frozen wall-clock instant every scenario runs at.
var scenarioEpoch = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

// Run executes a scenario and returns the result.
//
// Execution order: catalog load (if configured), setup steps, flow steps,
// then assertion evaluation over the final state and journal. Setup steps
// abort the run on error; flow steps record dispatch errors as failures.
func Run(scenario *Scenario) (*Result, error) {
	ctx := context.Background()

	st, err := store.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("create in-memory journal: %w", err)
	}
	defer st.Close()

	clock := testutil.NewFrozenClock(scenarioEpoch)
	ids := testutil.NewSeqGenerator("id")

	d := dispatch.New(ids,
		dispatch.WithJournal(st),
		dispatch.WithNow(clock.Now),
	)

	result := NewResult()

	if scenario.Catalog != "" {
		cat, err := catalog.Load(scenario.Catalog)
		if err != nil {
			return nil, fmt.Errorf("load catalog: %w", err)
		}
		if _, err := d.Dispatch(ctx, action.LoadCatalog{Products: cat.Products}); err != nil {
			return nil, fmt.Errorf("dispatch catalog load: %w", err)
		}
	}

	for i, step := range scenario.Setup {
		a, err := decodeStep(step)
		if err != nil {
			return nil, fmt.Errorf("setup[%d]: %w", i, err)
		}
		if _, err := d.Dispatch(ctx, a); err != nil {
			return nil, fmt.Errorf("setup[%d] %s: %w", i, step.Action, err)
		}
	}

	for i, step := range scenario.Flow {
		a, err := decodeStep(step)
		if err != nil {
			return nil, fmt.Errorf("flow[%d]: %w", i, err)
		}
		if _, err := d.Dispatch(ctx, a); err != nil {
			result.AddError(fmt.Sprintf("flow[%d] %s: %v", i, step.Action, err))
		}
	}

	records, err := st.ReadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("read journal: %w", err)
	}
	for _, rec := range records {
		result.Trace = append(result.Trace, TraceEvent{
			Seq:     rec.Seq,
			UserKey: rec.UserKey,
			Name:    rec.Name,
		})
	}

	result.Final = d.State()

	for _, msg := range EvaluateAssertions(result, scenario.Assertions) {
		result.AddError(msg)
	}

	return result, nil
}

// decodeStep builds the type-tagged envelope the codec expects and decodes
// it into a concrete action, so unknown tags and malformed payloads fail
// with the step index attached.
func decodeStep(step Step) (action.Action, error) {
	payload := step.Payload
	if payload == nil {
		payload = map[string]interface{}{}
	}
	env, err := json.Marshal(map[string]interface{}{
		"type":    step.Action,
		"payload": payload,
	})
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}
	a, err := action.Unmarshal(env)
	if err != nil {
		return nil, fmt.Errorf("decode action: %w", err)
	}
	return a, nil
}
