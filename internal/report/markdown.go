package report

import (
	"fmt"
	"strings"

	"github.com/promptqa/promptqa/internal/schema"
)

// GenerateMarkdown renders report.md: a fixed header table, a
// per-step summary table, per-step detail sections, and a
// bug-reports section when non-empty.
func GenerateMarkdown(run *schema.RunSummary, exitCode int) string {
	doc := BuildDocument(run, exitCode)

	var b strings.Builder
	writeHeader(&b, doc)
	writeStepTable(&b, doc.Steps)
	writeStepDetails(&b, doc.Steps)
	writeBugSection(&b, doc.Bugs)
	return b.String()
}

func writeHeader(b *strings.Builder, doc Document) {
	fmt.Fprintf(b, "# PromptQA Run Report\n\n")
	fmt.Fprintf(b, "| Field | Value |\n")
	fmt.Fprintf(b, "|---|---|\n")
	fmt.Fprintf(b, "| Run ID | %s |\n", escapeCell(doc.RunID))
	fmt.Fprintf(b, "| URL | %s |\n", escapeCell(doc.URL))
	fmt.Fprintf(b, "| Prompt | %s |\n", escapeCell(doc.Prompt))
	fmt.Fprintf(b, "| Verdict | %s |\n", escapeCell(doc.Summary))
	fmt.Fprintf(b, "| Exit code | %d |\n", doc.ExitCode)
	fmt.Fprintf(b, "| Duration | %dms |\n", doc.DurationMs)
	fmt.Fprintf(b, "\n")
}

func writeStepTable(b *strings.Builder, steps []StepRecord) {
	if len(steps) == 0 {
		fmt.Fprintf(b, "_No steps were executed._\n\n")
		return
	}

	fmt.Fprintf(b, "## Steps\n\n")
	fmt.Fprintf(b, "| # | Type | Description | Result | Confidence |\n")
	fmt.Fprintf(b, "|---|---|---|---|---|\n")
	for _, s := range steps {
		result := s.Result
		if result == "" {
			result = "(unevaluated)"
		}
		fmt.Fprintf(b, "| %d | %s | %s | %s | %.2f |\n",
			s.Index, escapeCell(s.Type), escapeCell(s.Description), escapeCell(result), s.Confidence)
	}
	fmt.Fprintf(b, "\n")
}

func writeStepDetails(b *strings.Builder, steps []StepRecord) {
	if len(steps) == 0 {
		return
	}
	fmt.Fprintf(b, "## Step Details\n\n")
	for _, s := range steps {
		fmt.Fprintf(b, "### Step %d: %s\n\n", s.Index, s.Description)
		if s.Hint != "" {
			fmt.Fprintf(b, "- Plan shape: %s\n", escapeCell(s.Hint))
		}
		if s.Reason != "" {
			fmt.Fprintf(b, "- Reason: %s\n", s.Reason)
		}
		if s.ScreenshotPath != "" {
			fmt.Fprintf(b, "- Screenshot: `%s`\n", s.ScreenshotPath)
		}
		if len(s.Errors) > 0 {
			fmt.Fprintf(b, "- Errors:\n")
			for _, e := range s.Errors {
				fmt.Fprintf(b, "  - %s\n", e)
			}
		}
		fmt.Fprintf(b, "\n")
	}
}

func writeBugSection(b *strings.Builder, bugs []BugRecord) {
	if len(bugs) == 0 {
		return
	}
	fmt.Fprintf(b, "## Bug Reports\n\n")
	fmt.Fprintf(b, "| Step | Severity | Description | Evidence |\n")
	fmt.Fprintf(b, "|---|---|---|---|\n")
	for _, bug := range bugs {
		fmt.Fprintf(b, "| %d | %s | %s | %s |\n",
			bug.StepIndex, escapeCell(bug.Severity), escapeCell(bug.Description), escapeCell(strings.Join(bug.Evidence, "; ")))
	}
	fmt.Fprintf(b, "\n")
}

// escapeCell pipe-escapes a string for embedding inside a markdown
// table cell, per spec.md §4.12.
func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	s = strings.ReplaceAll(s, "\n", " ")
	return s
}
