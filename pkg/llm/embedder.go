package llm

import (
	"fmt"

	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/ollama"
)

// EmbedderConfig represents the configuration for the embedding client.
type EmbedderConfig struct {
	Model     string
	BaseURL   string // Ollama server URL
	BatchSize int
}

// NewEmbedderWithConfig creates an Ollama-backed embedder. Texts are sent to
// the server in batches of BatchSize.
func NewEmbedderWithConfig(config EmbedderConfig) (*embeddings.EmbedderImpl, error) {
	if config.Model == "" {
		config.Model = "nomic-embed-text:latest" // Default Ollama model
	}
	if config.BaseURL == "" {
		config.BaseURL = "http://localhost:11434" // Default Ollama URL
	}
	if config.BatchSize <= 0 {
		config.BatchSize = 32
	}

	client, err := ollama.New(ollama.WithModel(config.Model),
		ollama.WithServerURL(config.BaseURL))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize embedding client: %w", err)
	}

	emb, err := embeddings.NewEmbedder(client, embeddings.WithBatchSize(config.BatchSize))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize embedder: %w", err)
	}

	return emb, nil
}
