package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Load resolves a Config from defaults, an optional config file at
// configPath (YAML or JSON, missing file is not an error), and
// environment variables, in that precedence (env overrides file
// overrides defaults — CLI flags are applied afterward by the caller
// via Config.Merge, giving them the final word).
func Load(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(configPath)

	v.SetDefault("maxSteps", 12)
	v.SetDefault("headless", false)
	v.SetDefault("timeout", 180)
	v.SetDefault("provider", string(ProviderAnthropic))
	v.SetDefault("strategy", string(StrategyPlanOnce))

	v.SetEnvPrefix("PROMPTQA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("config: failed to read %s: %w", configPath, err)
			}
		}
	}

	cfg := &Config{
		BaseURL:        v.GetString("baseUrl"),
		MaxSteps:       v.GetInt("maxSteps"),
		Headless:       v.GetBool("headless"),
		TimeoutSeconds: v.GetInt("timeout"),
		Provider:       Provider(v.GetString("provider")),
		Model:          v.GetString("model"),
		Strategy:       Strategy(v.GetString("strategy")),
		ReportPath:     ".artifacts",
	}
	cfg.Timeout = time.Duration(cfg.TimeoutSeconds) * time.Second

	if v.IsSet("auth.cookie") {
		cfg.Auth.Cookie = v.GetString("auth.cookie")
	}
	if v.IsSet("auth.loginPrompt") {
		cfg.Auth.LoginPrompt = v.GetString("auth.loginPrompt")
	}

	if raw, ok := v.Get("tests").([]interface{}); ok {
		for _, item := range raw {
			m, ok := item.(map[string]interface{})
			if !ok {
				continue
			}
			cfg.Tests = append(cfg.Tests, TestCase{
				Name:   fmt.Sprint(m["name"]),
				Prompt: fmt.Sprint(m["prompt"]),
				URL:    stringOrEmpty(m["url"]),
			})
		}
	}

	cfg.AnthropicAPIKey = envOverride("ANTHROPIC_API_KEY", v)
	cfg.OpenAIAPIKey = envOverride("OPENAI_API_KEY", v)
	if model := envOverride("PROMPTQA_MODEL", v); model != "" && cfg.Provider == ProviderAnthropic {
		cfg.Model = model
	}
	if model := os.Getenv("LLM_MODEL"); model != "" && cfg.Provider == ProviderOpenAI {
		cfg.Model = model
	}
	if p := os.Getenv("LLM_PROVIDER"); p != "" {
		cfg.Provider = Provider(p)
	}

	return cfg, nil
}

func envOverride(key string, v *viper.Viper) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return v.GetString(key)
}

func stringOrEmpty(v interface{}) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

// DefaultConfigFilePath is the default config file path:
// `.promptqa.yaml` in the working directory.
const DefaultConfigFilePath = ".promptqa.yaml"
