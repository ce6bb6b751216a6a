package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/promptqa/promptqa/internal/config"
	"github.com/promptqa/promptqa/internal/llmclient"
	"github.com/promptqa/promptqa/internal/schema"
)

func newTestCommand(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "test <url> <prompt>",
		Short: "Run a single ad-hoc browser test",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			runTestCmd(flags, args[0], args[1])
			return nil
		},
	}
}

func runTestCmd(flags *globalFlags, url, prompt string) {
	logger := newLogger()

	cfg, err := loadMergedConfig(flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "promptqa: config error: %s\n", err)
		os.Exit(ExitConfigError)
	}
	cfg.BaseURL = url

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "promptqa: invalid configuration: %s\n", err)
		os.Exit(ExitConfigError)
	}

	client, err := llmclient.New(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "promptqa: %s\n", err)
		os.Exit(ExitConfigError)
	}

	logger.Info("starting test", "url", url, "strategy", cfg.Strategy)

	run, exitCode, err := runOne(context.Background(), cfg, client, url, prompt, cfg.ReportPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "promptqa: %s\n", err)
		os.Exit(exitCode)
	}

	emitResult(cfg, run, exitCode, logger)
	os.Exit(exitCode)
}

// emitResult prints the run's summary — as JSON on stdout when
// cfg.JSON is set, otherwise a short human-readable line to stderr,
// per spec.md §6 ("JSON goes to stdout; human progress goes to
// stderr").
func emitResult(cfg *config.Config, run *schema.RunSummary, exitCode int, logger *slog.Logger) {
	if cfg.JSON {
		data, err := buildResultJSON(run, exitCode)
		if err != nil {
			logger.Error("serialize result", "error", err)
			return
		}
		fmt.Println(string(data))
		return
	}

	logger.Info("run finished",
		"verdict", run.Summary,
		"exitCode", exitCode,
		"steps", len(run.Steps),
		"bugs", len(run.Bugs),
		"durationMs", run.DurationMs,
	)
}
