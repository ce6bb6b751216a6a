package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// starterConfig is what `promptqa config init` scaffolds: a minimal,
// runnable config file a user edits in place rather than the full
// merged Config (which carries env-sourced secrets that must never be
// written to disk).
type starterConfig struct {
	BaseURL  string     `yaml:"baseUrl"`
	MaxSteps int        `yaml:"maxSteps"`
	Timeout  int        `yaml:"timeout"`
	Provider Provider   `yaml:"provider"`
	Strategy Strategy   `yaml:"strategy"`
	Tests    []TestCase `yaml:"tests,omitempty"`
}

// WriteDefaultConfigFile scaffolds a starter config file at path,
// pre-filled with PromptQA's documented defaults. It refuses to
// overwrite an existing file.
func WriteDefaultConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config: %s already exists, refusing to overwrite", path)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("config: stat %s: %w", path, err)
	}

	defaults := DefaultConfig()
	starter := starterConfig{
		BaseURL:  "https://example.com",
		MaxSteps: defaults.MaxSteps,
		Timeout:  defaults.TimeoutSeconds,
		Provider: defaults.Provider,
		Strategy: defaults.Strategy,
		Tests: []TestCase{
			{Name: "smoke", Prompt: "visit the homepage and check the title"},
		},
	}

	data, err := yaml.Marshal(starter)
	if err != nil {
		return fmt.Errorf("config: marshal starter config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}
