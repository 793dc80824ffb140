package intake

import (
	"context"
	"fmt"
	"strings"
)

const stageEmbed = "embed_profile"

// Embedder produces search vectors. Unlike the other stages it has no fallback
// vector: a failed call yields nil and callers skip similarity features.
type Embedder struct {
	resolver *Resolver
	backend  EmbeddingGenerator
}

// NewEmbedder returns nil when backend is nil; a nil *Embedder embeds nothing.
func NewEmbedder(backend EmbeddingGenerator, opts Options) *Embedder {
	if backend == nil {
		return nil
	}
	return &Embedder{resolver: opts.resolver("embedder"), backend: backend}
}

func (e *Embedder) Embed(ctx context.Context, text string) []float32 {
	if e == nil || strings.TrimSpace(text) == "" {
		return nil
	}
	vector, _ := Resolve(ctx, e.resolver, stageEmbed,
		func(ctx context.Context) ([]float32, error) {
			v, err := e.backend.GenerateEmbedding(ctx, text)
			if err != nil {
				return nil, err
			}
			if len(v) == 0 {
				return nil, fmt.Errorf("%w: empty embedding", errMalformedReply)
			}
			return v, nil
		},
		func() []float32 { return nil },
	)
	return vector
}
