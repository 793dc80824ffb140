package service

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/fadilmartias/labour-intake/internal/config"
	"github.com/fadilmartias/labour-intake/internal/logger"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

const maxEmbeddingRunes = 10000

// GeminiService generates text and embeddings through the Gemini API. Calls are
// made once; retrying is left to the caller's fallback policy.
type GeminiService struct {
	Client         *genai.Client
	Model          string
	EmbeddingModel string
	textBreaker    *circuitBreaker
	embedBreaker   *circuitBreaker
	logger         *zap.Logger
}

func NewGeminiService(ctx context.Context, cfg *config.GeminiConfig, breaker BreakerConfig, log *zap.Logger) (*GeminiService, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY not set")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &GeminiService{
		Client:         client,
		Model:          cfg.Model,
		EmbeddingModel: cfg.EmbeddingModel,
		textBreaker:    newCircuitBreaker(breaker),
		embedBreaker:   newCircuitBreaker(breaker),
		logger:         logger.Component(log, "gemini"),
	}, nil
}

func (s *GeminiService) GenerateText(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", fmt.Errorf("prompt cannot be empty")
	}
	if err := s.textBreaker.allow(); err != nil {
		return "", err
	}

	result, err := s.Client.Models.GenerateContent(
		ctx,
		s.Model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			Temperature: genai.Ptr(float32(0.1)),
		},
	)
	if err == nil {
		err = s.validateGenerateResponse(result)
	}
	if s.textBreaker.record(err) {
		s.logger.Warn("text circuit breaker open", zap.Error(err))
	}
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}
	return result.Text(), nil
}

func (s *GeminiService) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	trimmedText := strings.TrimSpace(text)
	if trimmedText == "" {
		return nil, fmt.Errorf("text for embedding cannot be empty")
	}
	if runes := []rune(trimmedText); len(runes) > maxEmbeddingRunes {
		s.logger.Warn("embedding text truncated", zap.Int("runes", len(runes)))
		trimmedText = string(runes[:maxEmbeddingRunes])
	}
	if err := s.embedBreaker.allow(); err != nil {
		return nil, err
	}

	result, err := s.Client.Models.EmbedContent(
		ctx,
		s.EmbeddingModel,
		[]*genai.Content{genai.NewContentFromText(trimmedText, genai.RoleUser)},
		nil,
	)
	var embeddings []float32
	if err == nil {
		embeddings, err = s.validateEmbeddingResponse(result)
	}
	if s.embedBreaker.record(err) {
		s.logger.Warn("embedding circuit breaker open", zap.Error(err))
	}
	if err != nil {
		return nil, fmt.Errorf("gemini embed content: %w", err)
	}
	return embeddings, nil
}

func (s *GeminiService) validateGenerateResponse(resp *genai.GenerateContentResponse) error {
	if resp == nil {
		return fmt.Errorf("response is nil")
	}

	if len(resp.Candidates) == 0 {
		return fmt.Errorf("no candidates in response")
	}

	if resp.Candidates[0].Content == nil {
		return fmt.Errorf("candidate content is nil")
	}

	if len(resp.Candidates[0].Content.Parts) == 0 {
		return fmt.Errorf("no parts in content")
	}

	return nil
}

func (s *GeminiService) validateEmbeddingResponse(resp *genai.EmbedContentResponse) ([]float32, error) {
	if resp == nil {
		return nil, fmt.Errorf("response is nil")
	}

	if len(resp.Embeddings) == 0 {
		return nil, fmt.Errorf("no embeddings returned")
	}

	embeddings := resp.Embeddings[0].Values

	if len(embeddings) == 0 {
		return nil, fmt.Errorf("embedding vector is empty")
	}

	for i, val := range embeddings {
		if math.IsNaN(float64(val)) || math.IsInf(float64(val), 0) {
			return nil, fmt.Errorf("invalid embedding value at index %d: %v", i, val)
		}
	}

	return embeddings, nil
}
