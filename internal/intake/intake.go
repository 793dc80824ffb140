// Package intake holds the model-backed stages of a worker interview: language and
// trade classification, question generation, profile extraction and answer evaluation.
//
// Every stage has a model path and a deterministic fallback path sharing one result
// shape. Fallback substitution happens here, through Resolve, so callers only ever
// receive a valid result.
package intake

import (
	"context"
	"time"

	"github.com/fadilmartias/labour-intake/internal/logger"
	"go.uber.org/zap"
)

const (
	// BasicQuestionCount is the number of identity questions that open every interview.
	BasicQuestionCount = 4
	// WorkQuestionCount is the number of trade-specific questions after the basic ones.
	WorkQuestionCount = 6
	// TotalQuestionCount is the fixed size of an interview.
	TotalQuestionCount = BasicQuestionCount + WorkQuestionCount

	// DefaultTrade labels a worker whose trade could not be determined.
	DefaultTrade = "worker"

	// FallbackLabel prefixes generated text that did not come from the model.
	FallbackLabel = "[fallback]"

	defaultTimeout = 30 * time.Second
)

// Generator is the text-generation backend: a prompt in, free text out.
type Generator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// EmbeddingGenerator turns text into a vector for similarity search.
type EmbeddingGenerator interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}

// Options configures every component. A nil Generator makes each stage take its fallback.
type Options struct {
	Generator Generator
	Logger    *zap.Logger
	// Timeout bounds a single model call. Zero selects 30s.
	Timeout time.Duration
}

func (o Options) resolver(component string) *Resolver {
	timeout := o.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Resolver{
		generator: o.Generator,
		logger:    logger.Component(o.Logger, component),
		timeout:   timeout,
	}
}
