package llm

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sant0-9/miaobi/internal/config"
)

// NewProvider creates a provider from a validated config.
func NewProvider(ctx context.Context, cfg *config.Config) (Provider, error) {
	httpClient := &http.Client{Timeout: cfg.Timeout}

	switch cfg.Provider {
	case "gemini":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("gemini requires an API key")
		}
		return NewGeminiProvider(ctx, GeminiOptions{
			APIKey:     cfg.APIKey,
			Model:      cfg.Model,
			BaseURL:    cfg.BaseURL,
			HTTPClient: httpClient,
		})

	case "openai", "deepseek", "groq", "openrouter":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("%s requires an API key", cfg.Provider)
		}
		return newOpenAICompatible(cfg, httpClient), nil

	case "custom":
		if cfg.BaseURL == "" {
			return nil, fmt.Errorf("custom provider requires base_url")
		}
		return newOpenAICompatible(cfg, httpClient), nil

	case "anthropic":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("anthropic requires an API key")
		}
		return NewAnthropicProvider(cfg.APIKey, cfg.Model, cfg.BaseURL, httpClient), nil

	case "ollama":
		return NewOllamaProvider(cfg.BaseURL, cfg.Model, httpClient), nil

	default:
		return nil, fmt.Errorf("unknown provider: %s", cfg.Provider)
	}
}

func newOpenAICompatible(cfg *config.Config, httpClient *http.Client) *OpenAIProvider {
	return NewOpenAIProvider(OpenAIOptions{
		Name:       cfg.Provider,
		APIKey:     cfg.APIKey,
		BaseURL:    cfg.BaseURL,
		Model:      cfg.Model,
		HTTPClient: httpClient,
	})
}
