package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/promptqa/promptqa/internal/config"
)

func newConfigCommand(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "View and validate configuration",
	}
	cmd.AddCommand(newConfigShowCommand(flags))
	cmd.AddCommand(newConfigPathCommand(flags))
	cmd.AddCommand(newConfigValidateCommand(flags))
	cmd.AddCommand(newConfigInitCommand(flags))
	return cmd
}

func newConfigInitCommand(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a starter config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.WriteDefaultConfigFile(flags.configPath); err != nil {
				fmt.Fprintf(os.Stderr, "promptqa: %s\n", err)
				os.Exit(ExitConfigError)
			}
			fmt.Printf("wrote starter config to %s\n", flags.configPath)
			return nil
		},
	}
}

func newConfigShowCommand(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the merged configuration (secrets redacted)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadMergedConfig(flags)
			if err != nil {
				fmt.Fprintf(os.Stderr, "promptqa: %s\n", err)
				os.Exit(ExitConfigError)
			}
			data, err := json.MarshalIndent(redactConfig(cfg), "", "  ")
			if err != nil {
				return fmt.Errorf("cli: marshal config: %w", err)
			}
			fmt.Println(string(data))
			return nil
		},
	}
}

func newConfigPathCommand(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config file path in effect",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(flags.configPath)
			return nil
		},
	}
}

func newConfigValidateCommand(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the merged configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadMergedConfig(flags)
			if err != nil {
				fmt.Fprintf(os.Stderr, "promptqa: %s\n", err)
				os.Exit(ExitConfigError)
			}
			if err := cfg.Validate(); err != nil {
				fmt.Fprintf(os.Stderr, "promptqa: invalid configuration: %s\n", err)
				os.Exit(ExitConfigError)
			}
			fmt.Printf("config at %s is valid\n", flags.configPath)
			return nil
		},
	}
}

// redactConfig returns a JSON-safe copy of cfg with API keys masked,
// so `config show` never prints a usable secret to the terminal.
func redactConfig(cfg *config.Config) map[string]interface{} {
	data, _ := json.Marshal(cfg)
	var raw map[string]interface{}
	_ = json.Unmarshal(data, &raw)

	raw["anthropicApiKey"] = redactSecret(cfg.AnthropicAPIKey)
	raw["openaiApiKey"] = redactSecret(cfg.OpenAIAPIKey)

	return raw
}

func redactSecret(s string) string {
	if s == "" {
		return ""
	}
	if len(s) <= 8 {
		return "****"
	}
	return s[:4] + "****" + s[len(s)-4:]
}
