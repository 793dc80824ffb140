package intake

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fadilmartias/labour-intake/internal/logger"
	"github.com/fadilmartias/labour-intake/internal/metrics"
	"go.uber.org/zap"
)

// Origin records which branch produced a result.
type Origin string

const (
	OriginModel    Origin = "model"
	OriginFallback Origin = "fallback"
)

var (
	errNoGenerator    = errors.New("text generator not configured")
	errEmptyReply     = errors.New("model returned an empty reply")
	errMalformedReply = errors.New("malformed model reply")
)

// Resolver carries the model backend and per-call bounds shared by a component's stages.
type Resolver struct {
	generator Generator
	logger    *zap.Logger
	timeout   time.Duration
}

// NewResolver builds a standalone resolver, mostly useful to callers outside this package.
func NewResolver(opts Options) *Resolver {
	return opts.resolver("resolver")
}

// Ask sends a prompt to the backend and rejects blank replies.
func (r *Resolver) Ask(ctx context.Context, prompt string) (string, error) {
	if r == nil || r.generator == nil {
		return "", errNoGenerator
	}
	reply, err := r.generator.GenerateText(ctx, prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(reply) == "" {
		return "", errEmptyReply
	}
	return reply, nil
}

// Resolve runs primary under the resolver's timeout and returns fallback() if it fails
// for any reason. It never retries: one failed call goes straight to the fallback.
func Resolve[T any](ctx context.Context, r *Resolver, stage string, primary func(context.Context) (T, error), fallback func() T) (T, Origin) {
	start := time.Now()

	callCtx := ctx
	if r.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	value, err := runPrimary(callCtx, primary)
	elapsed := time.Since(start)
	metrics.ModelCallDuration.WithLabelValues(stage).Observe(elapsed.Seconds())

	if err != nil {
		metrics.ModelCalls.WithLabelValues(stage, string(OriginFallback)).Inc()
		level := r.logger.Warn
		if errors.Is(err, errNoGenerator) {
			level = r.logger.Debug
		}
		level("model stage failed, using fallback",
			zap.String(logger.FieldStage, stage),
			zap.Duration("elapsed", elapsed),
			zap.Error(err),
		)
		return fallback(), OriginFallback
	}

	metrics.ModelCalls.WithLabelValues(stage, string(OriginModel)).Inc()
	r.logger.Debug("model stage resolved",
		zap.String(logger.FieldStage, stage),
		zap.Duration("elapsed", elapsed),
	)
	return value, OriginModel
}

func runPrimary[T any](ctx context.Context, primary func(context.Context) (T, error)) (value T, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			var zero T
			value = zero
			err = fmt.Errorf("model stage panicked: %v", rec)
		}
	}()
	return primary(ctx)
}
