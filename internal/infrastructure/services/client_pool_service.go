package services

import (
	"context"
	"fmt"
	"sync"

	"google.golang.org/genai"

	"joke-demo/internal/domain/repositories"
)

// GenAI Client Pool implementation
type genAIClientPool struct {
	config *repositories.AIClientConfig
	client *genai.Client
	mutex  sync.RWMutex
}

// NewGenAIClientPool creates the pool; the client itself is built on first use.
func NewGenAIClientPool(apiKey, baseURL string) repositories.GenAIClientPool {
	return &genAIClientPool{
		config: &repositories.AIClientConfig{
			APIKey:  apiKey,
			BaseURL: baseURL,
		},
	}
}

func (p *genAIClientPool) GetGenAIClient(ctx context.Context) (*genai.Client, error) {
	p.mutex.RLock()
	if p.client != nil {
		defer p.mutex.RUnlock()
		return p.client, nil
	}
	p.mutex.RUnlock()

	p.mutex.Lock()
	defer p.mutex.Unlock()

	// double-checked locking
	if p.client != nil {
		return p.client, nil
	}

	if p.config.APIKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      p.config.APIKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: p.config.BaseURL},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	p.client = client
	return p.client, nil
}

func (p *genAIClientPool) Config() *repositories.AIClientConfig {
	return p.config
}

func (p *genAIClientPool) Close() error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	// the genai client holds no resources that need closing
	p.client = nil
	return nil
}
