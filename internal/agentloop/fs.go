package agentloop

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/promptqa/promptqa/internal/schema"
)

// writeStepArtifact best-effort persists step-{i}.json under
// outputDir, per spec.md §4.8. Per-step JSON is not part of the
// public contract (summary.json is), so a write failure here is
// silently ignored — it never interrupts the run.
func writeStepArtifact(outputDir string, index int, result schema.StepExecutionResult) {
	if outputDir == "" {
		return
	}
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return
	}
	path := filepath.Join(outputDir, fmt.Sprintf("step-%d.json", index))
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return
	}
	_ = os.WriteFile(path, data, 0o644)
}
