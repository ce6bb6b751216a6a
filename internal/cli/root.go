// Package cli wires PromptQA's cobra command tree: the test/run
// execution subcommands and the config show/path/validate/init group,
// sharing one set of persistent flags merged over a config file and
// environment variables per internal/config's precedence rules.
package cli

import (
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/promptqa/promptqa/internal/config"
)

// globalFlags mirrors the CLI-flag layer of config.Config; a zero
// value in any field means "not set on the command line" and Merge
// leaves the file/env value untouched.
type globalFlags struct {
	configPath  string
	maxSteps    int
	headless    bool
	timeout     int
	cookie      string
	loginPrompt string
	reportPath  string
	jsonOutput  bool
	strategy    string
	testName    string
}

// NewRootCommand builds the promptqa command tree.
func NewRootCommand() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:           "promptqa",
		Short:         "Drive a real browser through an LLM-planned test and report a deterministic verdict",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&flags.configPath, "config", config.DefaultConfigFilePath, "path to the config file")
	root.PersistentFlags().IntVar(&flags.maxSteps, "max-steps", 0, "override maxSteps from config")
	root.PersistentFlags().BoolVar(&flags.headless, "headless", false, "run the browser headless")
	root.PersistentFlags().IntVar(&flags.timeout, "timeout", 0, "override the run timeout, in seconds")
	root.PersistentFlags().StringVar(&flags.cookie, "cookie", "", `pre-auth cookie string, "name=value; name2=value2"`)
	root.PersistentFlags().StringVar(&flags.loginPrompt, "login-prompt", "", "natural-language login instructions run before the main steps")
	root.PersistentFlags().StringVar(&flags.reportPath, "report-path", "", "directory artifacts are written under (default .artifacts)")
	root.PersistentFlags().BoolVar(&flags.jsonOutput, "json", false, "emit the run summary as JSON on stdout")
	root.PersistentFlags().StringVar(&flags.strategy, "strategy", "", "execution strategy: plan-once or agent-loop")

	root.AddCommand(newTestCommand(flags))
	root.AddCommand(newRunCommand(flags))
	root.AddCommand(newConfigCommand(flags))

	return root
}

// newLogger builds the stderr structured logger every subcommand
// shares. Human progress text always goes to stderr per spec.md §6;
// --json only controls what reaches stdout.
func newLogger() *slog.Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})
	return slog.New(handler)
}

// loadMergedConfig resolves defaults + config file + env, then
// overlays the CLI flags actually set, giving flags the final word
// per spec.md §6.
func loadMergedConfig(flags *globalFlags) (*config.Config, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return nil, err
	}

	override := &config.Config{
		MaxSteps:   flags.maxSteps,
		Headless:   flags.headless,
		Strategy:   config.Strategy(flags.strategy),
		ReportPath: flags.reportPath,
		JSON:       flags.jsonOutput,
	}
	if flags.timeout > 0 {
		override.Timeout = secondsToDuration(flags.timeout)
	}
	if flags.cookie != "" {
		override.Auth.Cookie = flags.cookie
	}
	if flags.loginPrompt != "" {
		override.Auth.LoginPrompt = flags.loginPrompt
	}
	cfg.Merge(override)

	if cfg.ReportPath == "" {
		cfg.ReportPath = ".artifacts"
	}

	return cfg, nil
}

func secondsToDuration(seconds int) time.Duration {
	return time.Duration(seconds) * time.Second
}
