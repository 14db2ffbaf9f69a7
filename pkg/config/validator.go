package config

import (
	"fmt"
	"net/url"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	// Validate analysis config
	switch c.Analysis.Backend {
	case BackendAzure:
		if c.Analysis.Endpoint == "" {
			errors = append(errors, ValidationError{
				Field:   "analysis.endpoint",
				Message: "analysis endpoint is required for the azure backend",
			})
		} else if u, err := url.Parse(c.Analysis.Endpoint); err != nil || u.Scheme == "" || u.Host == "" {
			errors = append(errors, ValidationError{
				Field:   "analysis.endpoint",
				Message: "invalid analysis endpoint URL",
			})
		}
		if c.Analysis.APIKey == "" {
			errors = append(errors, ValidationError{
				Field:   "analysis.api_key",
				Message: "analysis api key is required for the azure backend",
			})
		}
	case BackendLocal:
	default:
		errors = append(errors, ValidationError{
			Field:   "analysis.backend",
			Message: fmt.Sprintf("unknown backend %q", c.Analysis.Backend),
		})
	}

	if c.Analysis.PollInterval < 0 {
		errors = append(errors, ValidationError{
			Field:   "analysis.poll_interval",
			Message: "poll_interval must not be negative",
		})
	}

	// Validate LLM config
	if c.LLM.BaseURL == "" {
		errors = append(errors, ValidationError{
			Field:   "llm.base_url",
			Message: "Ollama base URL is required",
		})
	} else if _, err := url.Parse(c.LLM.BaseURL); err != nil {
		errors = append(errors, ValidationError{
			Field:   "llm.base_url",
			Message: "invalid Ollama base URL",
		})
	}

	if c.LLM.MaxTokens < 1 || c.LLM.MaxTokens > 4096 {
		errors = append(errors, ValidationError{
			Field:   "llm.max_tokens",
			Message: "max_tokens must be between 1 and 4096",
		})
	}

	if t := c.LLM.Temperature; t != nil && (*t < 0 || *t > 2) {
		errors = append(errors, ValidationError{
			Field:   "llm.temperature",
			Message: "temperature must be between 0 and 2",
		})
	}

	// Validate Database config
	if c.Database.URL == "" {
		errors = append(errors, ValidationError{
			Field:   "database.url",
			Message: "database URL is required",
		})
	} else if _, err := url.Parse(c.Database.URL); err != nil {
		errors = append(errors, ValidationError{
			Field:   "database.url",
			Message: "invalid database URL",
		})
	}

	if c.Database.VectorDim < 1 {
		errors = append(errors, ValidationError{
			Field:   "database.vector_dim",
			Message: "vector_dim must be positive",
		})
	}

	if c.Database.BatchSize < 1 {
		errors = append(errors, ValidationError{
			Field:   "database.batch_size",
			Message: "batch_size must be positive",
		})
	}

	// Validate Processor config
	if c.Processor.Splitter != "token" && c.Processor.Splitter != "recursive" {
		errors = append(errors, ValidationError{
			Field:   "processor.splitter",
			Message: fmt.Sprintf("unknown splitter %q", c.Processor.Splitter),
		})
	}

	if c.Processor.ChunkSize < 1 {
		errors = append(errors, ValidationError{
			Field:   "processor.chunk_size",
			Message: "chunk_size must be positive",
		})
	}

	if c.Processor.ChunkOverlap < 0 || c.Processor.ChunkOverlap >= c.Processor.ChunkSize {
		errors = append(errors, ValidationError{
			Field:   "processor.chunk_overlap",
			Message: "chunk_overlap must be non-negative and less than chunk_size",
		})
	}

	return errors
}
