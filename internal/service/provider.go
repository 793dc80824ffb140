package service

import (
	"context"
	"fmt"

	"github.com/fadilmartias/labour-intake/internal/config"
	"github.com/fadilmartias/labour-intake/internal/intake"
	"go.uber.org/zap"
)

const (
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderNone       = "none"
)

// Backends holds the model clients the intake uses. Nil members are unavailable
// and the intake falls back for every stage that needs them.
type Backends struct {
	Text      intake.Generator
	Embedding intake.EmbeddingGenerator
}

// NewBackends builds the backends for provider. Embeddings always come from Gemini
// when a Gemini key is configured, whichever provider generates text.
func NewBackends(ctx context.Context, provider string, breaker BreakerConfig, log *zap.Logger) (Backends, error) {
	var backends Backends

	gemini, geminiErr := NewGeminiService(ctx, config.LoadGeminiConfig(), breaker, log)
	if geminiErr == nil {
		backends.Embedding = gemini
	}

	switch provider {
	case ProviderGemini, "":
		if geminiErr != nil {
			return backends, geminiErr
		}
		backends.Text = gemini
	case ProviderOpenRouter:
		openRouter, err := NewOpenRouterService(config.LoadOpenRouterConfig(), breaker, log)
		if err != nil {
			return backends, err
		}
		backends.Text = openRouter
	case ProviderNone:
	default:
		return backends, fmt.Errorf("unknown LLM_PROVIDER %q", provider)
	}
	return backends, nil
}
