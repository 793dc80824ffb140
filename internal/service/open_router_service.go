package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fadilmartias/labour-intake/internal/config"
	"github.com/fadilmartias/labour-intake/internal/logger"
	"github.com/fadilmartias/labour-intake/internal/util"
	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

const systemPrompt = "You assist a hiring platform for skilled workers in India. Follow the requested output format exactly."

// OpenRouterService is a chat-completions backend; it has no embedding endpoint.
type OpenRouterService struct {
	client  *resty.Client
	model   string
	breaker *circuitBreaker
	logger  *zap.Logger
}

func NewOpenRouterService(cfg *config.OpenRouterConfig, breaker BreakerConfig, log *zap.Logger) (*OpenRouterService, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OPENROUTER_API_KEY not set")
	}
	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetAuthToken(cfg.APIKey).
		SetHeader("Content-Type", "application/json").
		SetTimeout(2 * time.Minute)
	return &OpenRouterService{
		client:  client,
		model:   cfg.Model,
		breaker: newCircuitBreaker(breaker),
		logger:  logger.Component(log, "openrouter"),
	}, nil
}

func (s *OpenRouterService) GenerateText(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", fmt.Errorf("prompt cannot be empty")
	}
	if err := s.breaker.allow(); err != nil {
		return "", err
	}
	text, err := s.complete(ctx, prompt)
	if s.breaker.record(err) {
		s.logger.Warn("circuit breaker open", zap.Error(err))
	}
	return text, err
}

func (s *OpenRouterService) complete(ctx context.Context, prompt string) (string, error) {
	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(map[string]any{
			"model": s.model,
			"messages": []map[string]string{
				{"role": "system", "content": systemPrompt},
				{"role": "user", "content": prompt},
			},
		}).
		Post("/chat/completions")
	if err != nil {
		return "", fmt.Errorf("openrouter request: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("openrouter status %d: %s", resp.StatusCode(), util.TruncateForLog(resp.String(), 200))
	}

	text := gjson.Get(resp.String(), "choices.0.message.content").String()
	if strings.TrimSpace(text) == "" {
		s.logger.Debug("empty completion", zap.String("body", util.TruncateForLog(resp.String(), 200)))
		return "", fmt.Errorf("no response from LLM")
	}
	return text, nil
}
