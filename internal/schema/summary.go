package schema

import "time"

// RunSummary is the run-level record persisted as summary.json and
// rendered as report.md.
type RunSummary struct {
	RunID       string                 `json:"runId"`
	URL         string                 `json:"url"`
	Prompt      string                 `json:"prompt"`
	Summary     VerdictResult          `json:"summary"`
	StartedAt   time.Time              `json:"startedAt"`
	FinishedAt  time.Time              `json:"finishedAt"`
	DurationMs  int64                  `json:"durationMs"`
	Steps       []StepExecutionResult  `json:"steps"`
	Bugs        []BugReport            `json:"bugs"`
	LoginFailed bool                   `json:"loginFailed,omitempty"`
}

// ActionHistoryEntry records one agent-loop iteration for the action
// history rendered into the next decide() prompt.
type ActionHistoryEntry struct {
	StepIndex   int    `json:"stepIndex"`
	Action      string `json:"action"`
	Description string `json:"description"`
	Success     bool   `json:"success"`
	Observation string `json:"observation"`
}

// MaxObservationChars is the schema-level size for
// ActionHistoryEntry.Observation, per spec.md §3 ("≤ ~200 chars human
// string"). No code enforces it; the agent loop truncates observations
// to its own tighter 80-character bound.
const MaxObservationChars = 200

// AgentStepResponse is the union the agent-loop's decide() step parses:
// either a completion signal or the next action to take.
type AgentStepResponse struct {
	Done    bool   `json:"done"`
	Summary string `json:"summary,omitempty"`
	Action  *Step  `json:"action,omitempty"`

	// Destructive flags an action the LLM itself considers dangerous
	// (payment, deletion, irreversible state change). PromptQA never
	// auto-executes such an action; see SPEC_FULL.md §5.
	Destructive bool `json:"destructive,omitempty"`
}

// AgentFinalEvaluation is the structured verdict produced by the
// agent-loop's final evaluation call.
type AgentFinalEvaluation struct {
	Result     VerdictResult `json:"result"`
	Confidence float64       `json:"confidence"`
	Reason     string        `json:"reason"`
}
