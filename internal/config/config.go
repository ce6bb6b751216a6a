// Package config loads and merges PromptQA's configuration from CLI
// flags, a YAML/JSON config file, and environment variables.
package config

import (
	"fmt"
	"time"
)

// Provider selects which LLM backend a run talks to.
type Provider string

const (
	ProviderAnthropic Provider = "anthropic"
	ProviderOpenAI    Provider = "openai"
	ProviderMock      Provider = "mock"
)

// Strategy selects the execution loop a test runs under.
type Strategy string

const (
	StrategyPlanOnce  Strategy = "plan-once"
	StrategyAgentLoop Strategy = "agent-loop"
)

// AuthConfig carries the optional cookie/login-prompt pair used to
// authenticate before the main steps run.
type AuthConfig struct {
	Cookie      string `yaml:"cookie,omitempty" json:"cookie,omitempty"`
	LoginPrompt string `yaml:"loginPrompt,omitempty" json:"loginPrompt,omitempty"`
}

// TestCase is one named entry in a config file's tests list, run by
// `promptqa run`.
type TestCase struct {
	Name   string `yaml:"name" json:"name"`
	Prompt string `yaml:"prompt" json:"prompt"`
	URL    string `yaml:"url,omitempty" json:"url,omitempty"`
}

// Config is the fully merged configuration for one PromptQA invocation.
// Precedence, highest first: CLI flags, environment variables, config
// file, defaults.
type Config struct {
	BaseURL  string        `yaml:"baseUrl" json:"baseUrl"`
	MaxSteps int           `yaml:"maxSteps" json:"maxSteps"`
	Headless bool          `yaml:"headless" json:"headless"`
	Timeout  time.Duration `yaml:"-" json:"-"`
	Provider Provider      `yaml:"provider,omitempty" json:"provider,omitempty"`
	Model    string        `yaml:"model,omitempty" json:"model,omitempty"`
	Strategy Strategy      `yaml:"strategy,omitempty" json:"strategy,omitempty"`
	Auth     AuthConfig    `yaml:"auth,omitempty" json:"auth,omitempty"`
	Tests    []TestCase    `yaml:"tests,omitempty" json:"tests,omitempty"`

	ReportPath string `yaml:"-" json:"-"`
	JSON       bool   `yaml:"-" json:"-"`

	// TimeoutSeconds mirrors Timeout for (un)marshaling, since a
	// time.Duration round-trips awkwardly through YAML/JSON as a bare
	// integer; LoadFromFile and Validate keep the two in sync.
	TimeoutSeconds int `yaml:"timeout,omitempty" json:"timeout,omitempty"`

	// AnthropicAPIKey/OpenAIAPIKey come from the ANTHROPIC_API_KEY/
	// OPENAI_API_KEY environment variables, falling back to a viper
	// lookup of the same key; they are excluded from (un)marshaling so
	// they never end up written to disk.
	AnthropicAPIKey string `yaml:"-" json:"-"`
	OpenAIAPIKey    string `yaml:"-" json:"-"`
}

// DefaultConfig returns the documented PromptQA defaults.
func DefaultConfig() *Config {
	return &Config{
		MaxSteps:       12,
		Headless:       false,
		Timeout:        180 * time.Second,
		TimeoutSeconds: 180,
		Provider:       ProviderAnthropic,
		Strategy:       StrategyPlanOnce,
		ReportPath:     ".artifacts",
	}
}

// Validate enforces the invariants a runnable Config must satisfy.
func (c *Config) Validate() error {
	if c.BaseURL == "" && len(c.Tests) == 0 {
		return fmt.Errorf("config: baseUrl is required when no tests are declared")
	}
	if c.MaxSteps <= 0 {
		return fmt.Errorf("config: maxSteps must be > 0, got %d", c.MaxSteps)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("config: timeout must be > 0, got %s", c.Timeout)
	}
	switch c.Provider {
	case ProviderAnthropic, ProviderOpenAI, ProviderMock:
	default:
		return fmt.Errorf("config: unknown provider %q", c.Provider)
	}
	switch c.Strategy {
	case StrategyPlanOnce, StrategyAgentLoop:
	default:
		return fmt.Errorf("config: unknown strategy %q", c.Strategy)
	}
	if c.Provider == ProviderAnthropic && c.AnthropicAPIKey == "" {
		return fmt.Errorf("config: provider=anthropic requires ANTHROPIC_API_KEY")
	}
	if c.Provider == ProviderOpenAI && c.OpenAIAPIKey == "" {
		return fmt.Errorf("config: provider=openai requires OPENAI_API_KEY")
	}
	for i, tc := range c.Tests {
		if tc.Name == "" {
			return fmt.Errorf("config: tests[%d].name is required", i)
		}
		if tc.Prompt == "" {
			return fmt.Errorf("config: tests[%d].prompt is required", i)
		}
	}
	return nil
}

// Merge overlays non-zero fields of other onto c, in place. Used to
// apply CLI-flag overrides on top of a file-plus-env base config.
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}
	if other.BaseURL != "" {
		c.BaseURL = other.BaseURL
	}
	if other.MaxSteps != 0 {
		c.MaxSteps = other.MaxSteps
	}
	if other.Headless {
		c.Headless = other.Headless
	}
	if other.Timeout != 0 {
		c.Timeout = other.Timeout
		c.TimeoutSeconds = int(other.Timeout / time.Second)
	}
	if other.Provider != "" {
		c.Provider = other.Provider
	}
	if other.Model != "" {
		c.Model = other.Model
	}
	if other.Strategy != "" {
		c.Strategy = other.Strategy
	}
	if other.Auth.Cookie != "" {
		c.Auth.Cookie = other.Auth.Cookie
	}
	if other.Auth.LoginPrompt != "" {
		c.Auth.LoginPrompt = other.Auth.LoginPrompt
	}
	if len(other.Tests) > 0 {
		c.Tests = other.Tests
	}
	if other.ReportPath != "" {
		c.ReportPath = other.ReportPath
	}
	if other.JSON {
		c.JSON = other.JSON
	}
	if other.AnthropicAPIKey != "" {
		c.AnthropicAPIKey = other.AnthropicAPIKey
	}
	if other.OpenAIAPIKey != "" {
		c.OpenAIAPIKey = other.OpenAIAPIKey
	}
}

// TestURL returns tc's URL, falling back to the
// run-level BaseURL when the test case doesn't set one.
func (c *Config) TestURL(tc TestCase) string {
	if tc.URL != "" {
		return tc.URL
	}
	return c.BaseURL
}
