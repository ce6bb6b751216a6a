// Package schema defines the typed, validated records that cross every
// boundary in PromptQA: selector hints, steps, snapshots, capture frames,
// step results, evaluations, bugs, and the run summary.
package schema

import "fmt"

// SelectorStrategy names one of the four ways a SelectorHint may locate
// an element.
type SelectorStrategy string

const (
	StrategyTestID SelectorStrategy = "testid"
	StrategyRole   SelectorStrategy = "role"
	StrategyText   SelectorStrategy = "text"
	StrategyCSS    SelectorStrategy = "css"
)

// SelectorHint is an abstract element locator: a strategy plus the value
// it resolves against, with strategy-specific extras for "role".
type SelectorHint struct {
	Strategy SelectorStrategy `json:"strategy"`
	Value    string           `json:"value"`
	Role     string           `json:"role,omitempty"`
	Name     string           `json:"name,omitempty"`
}

// Validate enforces spec invariants: a non-empty value, a known
// strategy, and role presence when strategy=role.
func (h SelectorHint) Validate() error {
	switch h.Strategy {
	case StrategyTestID, StrategyRole, StrategyText, StrategyCSS:
	default:
		return fmt.Errorf("selector: unknown strategy %q", h.Strategy)
	}
	if h.Value == "" {
		return fmt.Errorf("selector: value must not be empty")
	}
	if h.Strategy == StrategyRole && h.Role == "" {
		return fmt.Errorf("selector: strategy=role requires role (hint=%+v)", h)
	}
	return nil
}
