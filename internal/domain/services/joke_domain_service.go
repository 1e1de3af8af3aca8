package services

import (
	"context"
	"fmt"
	"log/slog"

	"joke-demo/internal/domain/entities"
	"joke-demo/internal/domain/repositories"
)

const JokePrompt = "Analyze this image and tell me a short, witty, and family-friendly joke about it. " +
	"Make it clever and directly related to the visual content."

const DefaultJokeModel = "gemini-2.5-flash"

type JokeDomainService struct {
	aiService repositories.JokeAIService
	model     string
}

func NewJokeDomainService(aiService repositories.JokeAIService, model string) *JokeDomainService {
	if model == "" {
		model = DefaultJokeModel
	}

	return &JokeDomainService{
		aiService: aiService,
		model:     model,
	}
}

func (s *JokeDomainService) Model() string {
	return s.model
}

// GenerateJoke issues exactly one model call. Every failure, including an
// empty answer, comes back as entities.ErrGenerationFailed; the cause is logged.
func (s *JokeDomainService) GenerateJoke(ctx context.Context, encodedImage, mimeType string) (string, error) {
	if err := s.validateRequest(encodedImage, mimeType); err != nil {
		return "", fmt.Errorf("request validation failed: %w", err)
	}

	request := entities.NewJokeRequest(s.model, JokePrompt, encodedImage, mimeType)

	result, err := s.aiService.GenerateJoke(ctx, request)
	if err != nil {
		slog.Error("GenerateJoke", "model", s.model, "mimeType", mimeType, "error", err)
		return "", entities.ErrGenerationFailed
	}

	if result == nil || result.IsEmpty() {
		slog.Error("GenerateJoke", "model", s.model, "mimeType", mimeType, "error", entities.ErrEmptyResponse)
		return "", entities.ErrGenerationFailed
	}

	return result.Text(), nil
}

func (s *JokeDomainService) validateRequest(encodedImage, mimeType string) error {
	if encodedImage == "" {
		return entities.ErrNoImage
	}

	if mimeType == "" {
		return fmt.Errorf("mime type is required")
	}

	return nil
}
