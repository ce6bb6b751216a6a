package schema

import "fmt"

// StepType discriminates the Step tagged union.
type StepType string

const (
	StepGoto       StepType = "goto"
	StepClick      StepType = "click"
	StepTypeInput  StepType = "type"
	StepSelect     StepType = "select"
	StepUpload     StepType = "upload"
	StepWait       StepType = "wait"
	StepExpectText StepType = "expect_text"
	StepPressKey   StepType = "press_key"
)

// Step is a single deterministic browser action. It is a tagged union
// keyed by Type: only the fields relevant to that type are populated.
// Steps arrive from an LLM as untyped JSON, so Step intentionally stays a
// flat struct (not an interface hierarchy) — pre-validation repair in
// the planner operates on the raw map before any Step is constructed.
type Step struct {
	Type        StepType      `json:"type"`
	Description string        `json:"description"`
	Timeout     int           `json:"timeout,omitempty"` // milliseconds
	Selector    *SelectorHint `json:"selector,omitempty"`
	Value       string        `json:"value,omitempty"`

	// Hint carries the planner's optional navigation/interaction mode
	// tag. It is informational only (report notes) and never
	// affects dispatch or verdict computation.
	Hint string `json:"hint,omitempty"`
}

// Validate enforces the per-type invariants from spec.md §3.
func (s Step) Validate() error {
	if s.Description == "" {
		return fmt.Errorf("step: description must not be empty")
	}
	if s.Timeout < 0 {
		return fmt.Errorf("step: timeout must be positive, got %d", s.Timeout)
	}

	switch s.Type {
	case StepGoto:
		if s.Value == "" {
			return fmt.Errorf("step goto: value (URL) is required")
		}
	case StepClick:
		if s.Selector == nil {
			return fmt.Errorf("step click: selector is required")
		}
	case StepTypeInput, StepSelect, StepUpload:
		if s.Selector == nil {
			return fmt.Errorf("step %s: selector is required", s.Type)
		}
		if s.Value == "" {
			return fmt.Errorf("step %s: value is required", s.Type)
		}
	case StepWait:
		if s.Selector == nil && s.Value == "" {
			return fmt.Errorf("step wait: requires either selector or a numeric value")
		}
	case StepExpectText:
		if s.Value == "" {
			return fmt.Errorf("step expect_text: value is required")
		}
	case StepPressKey:
		if s.Value == "" {
			return fmt.Errorf("step press_key: value is required")
		}
	default:
		return fmt.Errorf("step: unknown type %q", s.Type)
	}

	if s.Selector != nil {
		if err := s.Selector.Validate(); err != nil {
			return fmt.Errorf("step %s: %w", s.Type, err)
		}
	}
	return nil
}

// ValidatePlan enforces the plan-level invariants on an ordered list of
// Steps: non-empty, bounded length, goto-first.
func ValidatePlan(steps []Step, maxSteps int) error {
	if len(steps) == 0 {
		return fmt.Errorf("plan: must contain at least one step")
	}
	if len(steps) > maxSteps {
		return fmt.Errorf("plan: %d steps exceeds MAX_STEPS=%d", len(steps), maxSteps)
	}
	if steps[0].Type != StepGoto {
		return fmt.Errorf("plan: first step must be goto, got %q", steps[0].Type)
	}
	for i, s := range steps {
		if err := s.Validate(); err != nil {
			return fmt.Errorf("plan: step %d: %w", i, err)
		}
	}
	return nil
}
