package genai

import (
	"fmt"
	"time"

	"github.com/medusa-ai/forge/internal/config"
)

// NewProvider creates a provider from config.
func NewProvider(cfg *config.Config) (Provider, error) {
	timeout := time.Duration(cfg.RequestTimeoutSeconds) * time.Second

	switch cfg.Provider {
	case "", "gemini":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("gemini requires an API key (set FORGE_API_KEY or GEMINI_API_KEY)")
		}
		return NewGeminiProvider(cfg.APIKey, cfg.Model, cfg.BaseURL, timeout), nil

	case "openai":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("openai requires an API key (set FORGE_API_KEY or OPENAI_API_KEY)")
		}
		return NewOpenAIProvider(cfg.APIKey, cfg.Model, cfg.BaseURL, timeout), nil

	default:
		return nil, fmt.Errorf("unknown provider: %s", cfg.Provider)
	}
}
