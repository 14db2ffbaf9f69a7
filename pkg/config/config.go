package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	BackendAzure = "azure"
	BackendLocal = "local"
)

type Config struct {
	Analysis struct {
		Backend       string        `yaml:"backend"`
		Endpoint      string        `yaml:"endpoint"`
		APIKey        string        `yaml:"api_key"`
		ModelID       string        `yaml:"model_id"`
		APIVersion    string        `yaml:"api_version"`
		PollInterval  time.Duration `yaml:"poll_interval"`
		Timeout       time.Duration `yaml:"timeout"`
		UploadTimeout time.Duration `yaml:"upload_timeout"`
	} `yaml:"analysis"`

	LLM struct {
		BaseURL        string `yaml:"base_url"`
		Model          string `yaml:"model"`
		EmbeddingModel string `yaml:"embedding_model"`
		MaxTokens      int    `yaml:"max_tokens"`

		// Temperature is nil when unset so an explicit 0 survives defaults.
		Temperature *float64 `yaml:"temperature"`
	} `yaml:"llm"`

	Database struct {
		URL         string `yaml:"url"`
		TableName   string `yaml:"table_name"`
		VectorDim   int    `yaml:"vector_dim"`
		BatchSize   int    `yaml:"batch_size"`
		SearchLimit int    `yaml:"search_limit"`
	} `yaml:"database"`

	Processor struct {
		Splitter     string `yaml:"splitter"`
		ChunkSize    int    `yaml:"chunk_size"`
		ChunkOverlap int    `yaml:"chunk_overlap"`
		Encoding     string `yaml:"encoding"`
	} `yaml:"processor"`

	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`

	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
}

func LoadConfig(path string) (*Config, error) {
	// If no path provided, try default locations
	if path == "" {
		locations := []string{
			"config.yaml",
			"config.yml",
			filepath.Join(os.Getenv("HOME"), ".config/docintel/config.yaml"),
			"/etc/docintel/config.yaml",
		}

		for _, loc := range locations {
			if _, err := os.Stat(loc); err == nil {
				path = loc
				break
			}
		}
	}

	if path == "" {
		return getDefaultConfig()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	// Merge with environment variables
	mergeWithEnv(&config)

	// Apply defaults for unset values
	applyDefaults(&config)

	return &config, nil
}

func getDefaultConfig() (*Config, error) {
	config := &Config{}
	mergeWithEnv(config)
	applyDefaults(config)
	return config, nil
}

func applyDefaults(config *Config) {
	if config.Analysis.Backend == "" {
		config.Analysis.Backend = BackendAzure
	}
	if config.Analysis.ModelID == "" {
		config.Analysis.ModelID = "prebuilt-layout"
	}
	if config.Analysis.APIVersion == "" {
		config.Analysis.APIVersion = "2023-07-31"
	}
	if config.Analysis.PollInterval == 0 {
		config.Analysis.PollInterval = time.Second
	}
	if config.Analysis.Timeout == 0 {
		config.Analysis.Timeout = 30 * time.Second
	}
	if config.Analysis.UploadTimeout == 0 {
		config.Analysis.UploadTimeout = 5 * time.Minute
	}

	if config.LLM.Model == "" {
		config.LLM.Model = "mistral"
	}
	if config.LLM.EmbeddingModel == "" {
		config.LLM.EmbeddingModel = "nomic-embed-text:latest"
	}
	if config.LLM.MaxTokens == 0 {
		config.LLM.MaxTokens = 2000
	}
	if config.LLM.Temperature == nil {
		temperature := 0.7
		config.LLM.Temperature = &temperature
	}
	if config.LLM.BaseURL == "" {
		config.LLM.BaseURL = "http://localhost:11434"
	}

	if config.Database.TableName == "" {
		config.Database.TableName = "document_chunks"
	}
	if config.Database.VectorDim == 0 {
		config.Database.VectorDim = 768
	}
	if config.Database.BatchSize == 0 {
		config.Database.BatchSize = 32
	}
	if config.Database.SearchLimit == 0 {
		config.Database.SearchLimit = 5
	}

	if config.Processor.Splitter == "" {
		config.Processor.Splitter = "token"
	}
	if config.Processor.ChunkSize == 0 {
		config.Processor.ChunkSize = 800
	}
	if config.Processor.Encoding == "" {
		config.Processor.Encoding = "cl100k_base"
	}

	if config.Server.Port == "" {
		config.Server.Port = "8080"
	}

	if config.Log.Level == "" {
		config.Log.Level = "info"
	}
	if config.Log.Format == "" {
		config.Log.Format = "json"
	}
}

func mergeWithEnv(config *Config) {
	if endpoint := os.Getenv("AZURE_DOCUMENT_INTELLIGENCE_ENDPOINT"); endpoint != "" {
		config.Analysis.Endpoint = endpoint
	}
	if key := os.Getenv("AZURE_DOCUMENT_INTELLIGENCE_KEY"); key != "" {
		config.Analysis.APIKey = key
	}
	if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
		config.LLM.BaseURL = baseURL
	}
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		config.Database.URL = dbURL
	}
	if port := os.Getenv("PORT"); port != "" {
		config.Server.Port = port
	}
	if level := os.Getenv("DOCINTEL_LOG_LEVEL"); level != "" {
		config.Log.Level = level
	}
}
