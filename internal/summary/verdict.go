// Package summary computes the deterministic run verdict and extracts
// bug reports from a plan-once or agent-loop run's step results. Both
// operations are pure functions over []schema.StepExecutionResult —
// the LLM has already spoken through each step's Evaluation by the
// time this package runs; nothing here calls out to it again.
package summary

import "github.com/promptqa/promptqa/internal/schema"

// ComputeVerdict implements spec.md §4.10: a single ordered pass that
// returns FAIL as soon as either an unsuccessful step or a FAIL
// evaluation is seen, otherwise UNCERTAIN if any evaluation was
// UNCERTAIN, otherwise PASS.
func ComputeVerdict(results []schema.StepExecutionResult) schema.VerdictResult {
	sawUncertain := false
	for _, r := range results {
		if !r.Success {
			return schema.ResultFail
		}
		if r.Evaluation == nil {
			continue
		}
		switch r.Evaluation.Result {
		case schema.ResultFail:
			return schema.ResultFail
		case schema.ResultUncertain:
			sawUncertain = true
		}
	}
	if sawUncertain {
		return schema.ResultUncertain
	}
	return schema.ResultPass
}
