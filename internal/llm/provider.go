// Package llm selects the advice provider from configuration.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/terraincognita07/periodtracker/internal/llm/gemini"
	"github.com/terraincognita07/periodtracker/internal/llm/openai"
	"github.com/terraincognita07/periodtracker/internal/services"
)

const (
	ProviderNone   = "none"
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

var ErrUnknownProvider = errors.New("unknown advice provider")

type Config struct {
	Provider      string
	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string
	GeminiAPIKey  string
	GeminiModel   string
}

// NewProvider returns a nil provider, without error, when the selected
// backend has no credential. Callers then serve local advice only.
func NewProvider(ctx context.Context, cfg Config) (services.AdviceProvider, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "", ProviderOpenAI:
		if strings.TrimSpace(cfg.OpenAIAPIKey) == "" {
			return nil, nil
		}
		client, err := openai.NewClient(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel)
		if err != nil {
			return nil, err
		}
		return client, nil
	case ProviderGemini:
		if strings.TrimSpace(cfg.GeminiAPIKey) == "" {
			return nil, nil
		}
		client, err := gemini.NewClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return nil, err
		}
		return client, nil
	case ProviderNone:
		return nil, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, cfg.Provider)
	}
}
