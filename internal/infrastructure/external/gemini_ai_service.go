package external

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"

	"google.golang.org/genai"

	"joke-demo/internal/domain/entities"
	"joke-demo/internal/domain/repositories"
)

type GeminiAIService struct {
	clientPool repositories.GenAIClientPool
}

func NewGeminiAIService(clientPool repositories.GenAIClientPool) repositories.JokeAIService {
	return &GeminiAIService{
		clientPool: clientPool,
	}
}

// GenerateJoke sends one multimodal request: the inline image followed by the
// prompt. Failures come back wrapped in entities.ErrTransport.
func (s *GeminiAIService) GenerateJoke(ctx context.Context, request *entities.JokeRequest) (*entities.JokeResult, error) {
	// the SDK does its own wire encoding, so hand it raw bytes
	imageBytes, err := base64.StdEncoding.DecodeString(request.EncodedImage())
	if err != nil {
		return nil, fmt.Errorf("%w: invalid image payload: %w", entities.ErrTransport, err)
	}

	client, err := s.clientPool.GetGenAIClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", entities.ErrTransport, err)
	}

	slog.Info("GenerateJoke", "model", request.Model(), "mimeType", request.MimeType(), "imageBytes", len(imageBytes))

	parts := []*genai.Part{
		genai.NewPartFromBytes(imageBytes, request.MimeType()),
		genai.NewPartFromText(request.Prompt()),
	}
	contents := []*genai.Content{
		genai.NewContentFromParts(parts, genai.RoleUser),
	}

	resp, err := client.Models.GenerateContent(ctx, request.Model(), contents, nil)
	if err != nil {
		slog.Debug("GenerateJoke", "model", request.Model(), "baseURL", s.endpoint(), "error", err)
		return nil, fmt.Errorf("%w: failed to generate content: %w", entities.ErrTransport, err)
	}

	respText := resp.Text()

	slog.Debug("GenerateJoke", "candidatesCount", len(resp.Candidates), "textLength", len(respText))

	return entities.NewJokeResult(respText), nil
}

func (s *GeminiAIService) endpoint() string {
	if cfg := s.clientPool.Config(); cfg != nil && cfg.BaseURL != "" {
		return cfg.BaseURL
	}
	return "default"
}
