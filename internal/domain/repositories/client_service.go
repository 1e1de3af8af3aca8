package repositories

import (
	"context"

	"google.golang.org/genai"
)

// AIClientConfig holds what is needed to reach the Gemini API.
type AIClientConfig struct {
	APIKey string

	// empty means the SDK default
	BaseURL string
}

// GenAI Client Pool Service
// Lazily creates one shared genai client.
type GenAIClientPool interface {
	GetGenAIClient(ctx context.Context) (*genai.Client, error)

	Config() *AIClientConfig

	Close() error
}
