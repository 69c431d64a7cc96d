package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Scenario defines a conformance test: a catalog, a flow of actions, and
// assertions over the resulting state and journal.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Catalog is an optional path to a catalog CUE file, resolved relative
	// to the scenario file. When set, a catalog load is dispatched before
	// any other step.
	Catalog string `yaml:"catalog,omitempty"`

	// Setup contains actions dispatched before the main flow to establish
	// initial state (sign-in, saved addresses). Setup steps must decode.
	Setup []Step `yaml:"setup,omitempty"`

	// Flow contains the main action sequence under test.
	Flow []Step `yaml:"flow"`

	// Assertions validate the final state and the journal timeline.
	Assertions []Assertion `yaml:"assertions"`
}

// Step dispatches one action, named by its type tag.
type Step struct {
	// Action is the action type tag, e.g. "cart.add_item".
	Action string `yaml:"action"`

	// Payload contains the action fields. Omitted for payload-free actions
	// like "cart.clear".
	Payload map[string]interface{} `yaml:"payload,omitempty"`
}

// Assertion validates one aspect of the outcome.
type Assertion struct {
	// Type selects the assertion:
	//   - "session": check Authenticated / UserID
	//   - "cart": check Items and/or Total
	//   - "favorites", "orders", "unread": check Count
	//   - "order_status": check the status of the order with OrderID
	//   - "default_address", "default_payment": check the default entry ID
	//   - "journal_count": check Action appears exactly Count times
	//   - "journal_order": check Actions appear in order (subsequence)
	Type string `yaml:"type"`

	Authenticated *bool  `yaml:"authenticated,omitempty"`
	UserID        string `yaml:"user_id,omitempty"`

	Items *int   `yaml:"items,omitempty"`
	Total *int64 `yaml:"total,omitempty"`

	Count *int `yaml:"count,omitempty"`

	OrderID string `yaml:"order_id,omitempty"`
	Status  string `yaml:"status,omitempty"`

	ID string `yaml:"id,omitempty"`

	Action  string   `yaml:"action,omitempty"`
	Actions []string `yaml:"actions,omitempty"`
}

// Assertion type constants.
const (
	AssertSession        = "session"
	AssertCart           = "cart"
	AssertFavorites      = "favorites"
	AssertOrders         = "orders"
	AssertUnread         = "unread"
	AssertOrderStatus    = "order_status"
	AssertDefaultAddress = "default_address"
	AssertDefaultPayment = "default_payment"
	AssertJournalCount   = "journal_count"
	AssertJournalOrder   = "journal_order"
)

// LoadScenario reads and parses a scenario YAML file. The catalog path is
// resolved relative to the scenario file's directory. Unknown YAML fields
// are rejected so typos fail loudly instead of silently skipping checks.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario file: %w", err)
	}

	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("parse scenario YAML: %w", err)
	}

	if scenario.Catalog != "" && !filepath.IsAbs(scenario.Catalog) {
		scenario.Catalog = filepath.Join(filepath.Dir(path), scenario.Catalog)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if len(s.Flow) == 0 {
		return fmt.Errorf("flow list is required and must be non-empty")
	}
	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	if s.Catalog != "" {
		if _, err := os.Stat(s.Catalog); os.IsNotExist(err) {
			return fmt.Errorf("catalog file not found: %s", s.Catalog)
		}
	}

	for i, step := range s.Setup {
		if step.Action == "" {
			return fmt.Errorf("setup[%d]: action is required", i)
		}
	}
	for i, step := range s.Flow {
		if step.Action == "" {
			return fmt.Errorf("flow[%d]: action is required", i)
		}
	}

	for i, a := range s.Assertions {
		if err := validateAssertion(i, &a); err != nil {
			return err
		}
	}
	return nil
}

func validateAssertion(index int, a *Assertion) error {
	switch a.Type {
	case AssertSession:
		if a.Authenticated == nil && a.UserID == "" {
			return fmt.Errorf("assertions[%d]: session needs authenticated or user_id", index)
		}
	case AssertCart:
		if a.Items == nil && a.Total == nil {
			return fmt.Errorf("assertions[%d]: cart needs items or total", index)
		}
	case AssertFavorites, AssertOrders, AssertUnread:
		if a.Count == nil {
			return fmt.Errorf("assertions[%d]: count is required for %s", index, a.Type)
		}
	case AssertOrderStatus:
		if a.OrderID == "" || a.Status == "" {
			return fmt.Errorf("assertions[%d]: order_status needs order_id and status", index)
		}
	case AssertDefaultAddress, AssertDefaultPayment:
		if a.ID == "" {
			return fmt.Errorf("assertions[%d]: id is required for %s", index, a.Type)
		}
	case AssertJournalCount:
		if a.Action == "" {
			return fmt.Errorf("assertions[%d]: action is required for journal_count", index)
		}
		if a.Count == nil || *a.Count < 0 {
			return fmt.Errorf("assertions[%d]: non-negative count is required for journal_count", index)
		}
	case AssertJournalOrder:
		if len(a.Actions) == 0 {
			return fmt.Errorf("assertions[%d]: actions list is required for journal_order", index)
		}
	case "":
		return fmt.Errorf("assertions[%d]: type is required", index)
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}
	return nil
}
