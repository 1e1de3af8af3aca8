package repositories

import (
	"context"
	"io"

	"joke-demo/internal/domain/entities"
)

// Gemini multimodal text generation
type JokeAIService interface {
	GenerateJoke(ctx context.Context, request *entities.JokeRequest) (*entities.JokeResult, error)
}

// Turns image content into transport-safe text (base64, no data-URI prefix).
type ImageEncoder interface {
	Encode(ctx context.Context, r io.Reader) (string, error)
}
