package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/promptqa/promptqa/internal/config"
	"github.com/promptqa/promptqa/internal/llmclient"
)

func newRunCommand(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run every test in the config file, or one named test",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runRunCmd(flags)
			return nil
		},
	}
	cmd.Flags().StringVar(&flags.testName, "test", "", "run only the named test")
	return cmd
}

func runRunCmd(flags *globalFlags) {
	logger := newLogger()

	cfg, err := loadMergedConfig(flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "promptqa: config error: %s\n", err)
		os.Exit(ExitConfigError)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "promptqa: invalid configuration: %s\n", err)
		os.Exit(ExitConfigError)
	}

	tests, err := selectTests(cfg, flags.testName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "promptqa: %s\n", err)
		os.Exit(ExitConfigError)
	}

	client, err := llmclient.New(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "promptqa: %s\n", err)
		os.Exit(ExitConfigError)
	}

	codes := make([]int, 0, len(tests))
	for _, tc := range tests {
		codes = append(codes, runNamedTest(context.Background(), cfg, client, tc, logger))
	}

	os.Exit(worstExitCode(codes))
}

func selectTests(cfg *config.Config, name string) ([]config.TestCase, error) {
	if name == "" {
		if len(cfg.Tests) == 0 {
			return nil, fmt.Errorf("config declares no tests; use 'promptqa test' for an ad-hoc run")
		}
		return cfg.Tests, nil
	}
	for _, tc := range cfg.Tests {
		if tc.Name == name {
			return []config.TestCase{tc}, nil
		}
	}
	return nil, fmt.Errorf("no test named %q in config", name)
}

func runNamedTest(ctx context.Context, cfg *config.Config, client llmclient.Client, tc config.TestCase, logger *slog.Logger) int {
	url := cfg.TestURL(tc)
	outputDir := testOutputDir(cfg.ReportPath, tc.Name)

	logger.Info("starting test", "name", tc.Name, "url", url, "strategy", cfg.Strategy)

	run, exitCode, err := runOne(ctx, cfg, client, url, tc.Prompt, outputDir)
	if err != nil {
		logger.Error("test failed", "name", tc.Name, "error", err)
		return exitCode
	}

	if cfg.JSON {
		data, err := buildResultJSON(run, exitCode)
		if err != nil {
			logger.Error("serialize result", "name", tc.Name, "error", err)
		} else {
			fmt.Println(string(data))
		}
	} else {
		logger.Info("test finished",
			"name", tc.Name, "verdict", run.Summary, "exitCode", exitCode,
			"steps", len(run.Steps), "bugs", len(run.Bugs),
		)
	}

	return exitCode
}
