package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/schema"
	"github.com/xhad/docintel/internal/models"
)

// ChatConfig represents the configuration for a chat engine.
type ChatConfig struct {
	Model           string
	Temperature     float64
	MaxTokens       int
	SystemTemplate  string
	ContextTemplate string
	BaseURL         string // Ollama server URL
}

// ChatEngine answers questions from chunks retrieved out of the vector store.
type ChatEngine struct {
	config ChatConfig
	llm    llms.Model
}

// NewWithConfig creates a new ChatEngine with the given configuration.
func NewWithConfig(config ChatConfig) (*ChatEngine, error) {
	if config.Model == "" {
		config.Model = "mistral" // Default Ollama model
	}
	if config.Temperature < 0 || config.Temperature > 2 {
		return nil, fmt.Errorf("temperature must be between 0 and 2")
	}
	if config.MaxTokens < 0 {
		return nil, fmt.Errorf("max tokens cannot be negative")
	} else if config.MaxTokens == 0 {
		config.MaxTokens = 2000
	}
	if config.SystemTemplate == "" {
		config.SystemTemplate = "You answer questions about uploaded documents using only the excerpts provided. " +
			"Cite the file name and page number of the excerpts you rely on."
	}
	if config.ContextTemplate == "" {
		config.ContextTemplate = "Document excerpts:\n%s\nQuestion: %s"
	}
	if config.BaseURL == "" {
		config.BaseURL = "http://localhost:11434" // Default Ollama URL
	}

	llm, err := ollama.New(ollama.WithModel(config.Model),
		ollama.WithServerURL(config.BaseURL))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize LLM: %w", err)
	}

	return &ChatEngine{
		config: config,
		llm:    llm,
	}, nil
}

// Answer generates a response to the question grounded on the given chunks.
func (ce *ChatEngine) Answer(ctx context.Context, question string, chunks []models.Chunk) (string, error) {
	content := []llms.MessageContent{
		llms.TextParts(schema.ChatMessageTypeSystem, ce.config.SystemTemplate),
		llms.TextParts(schema.ChatMessageTypeHuman, ce.prompt(question, chunks)),
	}

	response, err := ce.llm.GenerateContent(ctx, content,
		llms.WithTemperature(ce.config.Temperature),
		llms.WithMaxTokens(ce.config.MaxTokens))
	if err != nil {
		return "", fmt.Errorf("chat error: %w", err)
	}
	if len(response.Choices) == 0 {
		return "", fmt.Errorf("chat error: no response from LLM")
	}

	return response.Choices[0].Content, nil
}

func (ce *ChatEngine) prompt(question string, chunks []models.Chunk) string {
	var contextBuilder strings.Builder
	for _, c := range chunks {
		contextBuilder.WriteString(fmt.Sprintf("[%s, page %d]\n%s\n\n", c.FileName, c.PageNumber, c.Text))
	}
	return fmt.Sprintf(ce.config.ContextTemplate, contextBuilder.String(), question)
}

// Sources lists the distinct "file (page n)" references of the chunks, in order.
func Sources(chunks []models.Chunk) []string {
	var sources []string
	seen := make(map[string]bool)

	for _, c := range chunks {
		src := fmt.Sprintf("%s (page %d)", c.FileName, c.PageNumber)
		if !seen[src] {
			sources = append(sources, src)
			seen[src] = true
		}
	}

	return sources
}
