// Package llm adapts hosted language models to service.TextGenerator.
package llm

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"YieldAdvisor/internal/domain/service"
)

const (
	ProviderGroq      = "groq"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"

	GroqBaseURL = "https://api.groq.com/openai/v1"

	DefaultGroqModel      = "llama-3.1-8b-instant"
	DefaultOpenAIModel    = "gpt-4o-mini"
	DefaultAnthropicModel = "claude-3-5-haiku-latest"
)

// Config selects and tunes the text-generation backend.
type Config struct {
	Provider    string
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
}

// New returns the generator for cfg.Provider. Without an API key every
// call fails with ErrLLMAuth so callers take their fallback path.
func New(cfg Config) (service.TextGenerator, error) {
	provider := strings.ToLower(cfg.Provider)
	if provider == "" {
		provider = ProviderGroq
	}
	if cfg.APIKey == "" {
		return Unconfigured{Provider: provider}, nil
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 200
	}

	switch provider {
	case ProviderGroq:
		if cfg.BaseURL == "" {
			cfg.BaseURL = GroqBaseURL
		}
		if cfg.Model == "" {
			cfg.Model = DefaultGroqModel
		}
		return NewOpenAIGenerator(cfg), nil
	case ProviderOpenAI:
		if cfg.Model == "" {
			cfg.Model = DefaultOpenAIModel
		}
		return NewOpenAIGenerator(cfg), nil
	case ProviderAnthropic:
		if cfg.Model == "" {
			cfg.Model = DefaultAnthropicModel
		}
		return NewAnthropicGenerator(cfg), nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}

// classifyStatus maps an HTTP status from a provider to a failure sentinel.
func classifyStatus(code int, err error) error {
	switch code {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %v", service.ErrLLMAuth, err)
	case http.StatusTooManyRequests:
		return fmt.Errorf("%w: %v", service.ErrLLMRateLimited, err)
	case http.StatusRequestTimeout, http.StatusGatewayTimeout:
		return fmt.Errorf("%w: %v", service.ErrLLMTimeout, err)
	default:
		return fmt.Errorf("%w: %v", service.ErrLLMUnavailable, err)
	}
}
