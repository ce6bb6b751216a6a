package llmclient

import (
	"fmt"
	"log/slog"

	"github.com/promptqa/promptqa/internal/config"
)

// New builds the Client a Config's provider selects. Mock is only
// reachable via explicit provider=mock; it never activates implicitly.
func New(cfg *config.Config, logger *slog.Logger) (Client, error) {
	switch cfg.Provider {
	case config.ProviderAnthropic:
		return NewAnthropicClient(cfg.AnthropicAPIKey, cfg.Model, logger)
	case config.ProviderOpenAI:
		return NewOpenAIClient(cfg.OpenAIAPIKey, cfg.Model, logger)
	case config.ProviderMock:
		return NewMockClient(), nil
	default:
		return nil, fmt.Errorf("llmclient: unknown provider %q", cfg.Provider)
	}
}
