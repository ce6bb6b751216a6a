// Package report renders a finished run into its two persisted
// artifacts: summary.json (the versioned public contract) and
// report.md (a human-readable digest). The renderers are pure functions
// over schema.RunSummary and an exit code; Write persists their output
// to disk.
package report

import (
	"github.com/promptqa/promptqa/internal/schema"
	"github.com/promptqa/promptqa/internal/summary"
)

// SchemaVersion is the frozen version tag embedded in every
// summary.json, per spec.md §4.12/§6.
const SchemaVersion = "1.0"

// Document is the summary.json contract shape.
type Document struct {
	Version    string       `json:"version"`
	Summary    string       `json:"summary"`
	RunID      string       `json:"runId"`
	URL        string       `json:"url"`
	Prompt     string       `json:"prompt"`
	DurationMs int64        `json:"durationMs"`
	ExitCode   int          `json:"exitCode"`
	Steps      []StepRecord `json:"steps"`
	Bugs       []BugRecord  `json:"bugs"`
}

// StepRecord is one steps[] entry in the summary.json contract.
type StepRecord struct {
	Index          int      `json:"index"`
	Type           string   `json:"type"`
	Description    string   `json:"description"`
	Result         string   `json:"result"`
	Confidence     float64  `json:"confidence"`
	Reason         string   `json:"reason"`
	ScreenshotPath string   `json:"screenshotPath"`
	Errors         []string `json:"errors"`

	// Hint mirrors the planner's optional navigation/interaction mode
	// tag. Deliberately excluded from the frozen summary.json contract
	// (json:"-") — it's report.md-only informational text, per
	// SPEC_FULL.md's "Plan shape" note.
	Hint string `json:"-"`
}

// BugRecord is one bugs[] entry in the summary.json contract.
type BugRecord struct {
	StepIndex   int      `json:"stepIndex"`
	Description string   `json:"description"`
	Severity    string   `json:"severity"`
	Evidence    []string `json:"evidence"`
}

// BuildDocument projects a RunSummary plus its exit code into the
// summary.json contract shape.
func BuildDocument(run *schema.RunSummary, exitCode int) Document {
	doc := Document{
		Version:    SchemaVersion,
		Summary:    string(run.Summary),
		RunID:      run.RunID,
		URL:        run.URL,
		Prompt:     run.Prompt,
		DurationMs: run.DurationMs,
		ExitCode:   exitCode,
		Steps:      make([]StepRecord, 0, len(run.Steps)),
		Bugs:       make([]BugRecord, 0, len(run.Bugs)),
	}

	for _, s := range run.Steps {
		rec := StepRecord{
			Index:          s.StepIndex,
			Type:           string(s.Step.Type),
			Description:    s.Step.Description,
			ScreenshotPath: s.ScreenshotPath,
			Errors:         stepEvidence(s),
			Hint:           s.Step.Hint,
		}
		if s.Evaluation != nil {
			rec.Result = string(s.Evaluation.Result)
			rec.Confidence = s.Evaluation.Confidence
			rec.Reason = s.Evaluation.Reason
		}
		doc.Steps = append(doc.Steps, rec)
	}

	for _, b := range run.Bugs {
		doc.Bugs = append(doc.Bugs, BugRecord{
			StepIndex:   b.StepIndex,
			Description: b.Description,
			Severity:    string(b.Severity),
			Evidence:    b.Evidence,
		})
	}

	return doc
}

// stepEvidence reuses the evidence-line formatting bug extraction
// already applies, per spec.md §4.12's instruction to carry the same
// console/network/page-error lines into steps[].errors.
func stepEvidence(r schema.StepExecutionResult) []string {
	evidence := summary.CollectEvidence(r)
	if evidence == nil {
		return []string{}
	}
	return evidence
}
