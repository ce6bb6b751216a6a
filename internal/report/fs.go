package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/promptqa/promptqa/internal/schema"
)

// Write persists summary.json and report.md under outputDir. Unlike
// the best-effort per-step artifacts, summary.json and report.md are
// the public contract: a write failure here is returned, not
// swallowed, per spec.md §4.12/§7 ("the final summary.json is always
// attempted").
func Write(outputDir string, run *schema.RunSummary, exitCode int) error {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("report: create output dir: %w", err)
	}

	jsonBytes, err := GenerateJSON(run, exitCode)
	if err != nil {
		return fmt.Errorf("report: generate summary.json: %w", err)
	}
	if err := os.WriteFile(filepath.Join(outputDir, "summary.json"), jsonBytes, 0o644); err != nil {
		return fmt.Errorf("report: write summary.json: %w", err)
	}

	markdown := GenerateMarkdown(run, exitCode)
	if err := os.WriteFile(filepath.Join(outputDir, "report.md"), []byte(markdown), 0o644); err != nil {
		return fmt.Errorf("report: write report.md: %w", err)
	}

	return nil
}
