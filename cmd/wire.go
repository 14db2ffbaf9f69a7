package main

import (
	"context"
	"fmt"

	"github.com/xhad/docintel/internal/types"
	"github.com/xhad/docintel/pkg/analyzer"
	cfgPkg "github.com/xhad/docintel/pkg/config"
	"github.com/xhad/docintel/pkg/llm"
	"github.com/xhad/docintel/pkg/processor"
	"github.com/xhad/docintel/pkg/store"
)

func newAnalyzer(cfg *cfgPkg.Config) (types.Analyzer, error) {
	if cfg.Analysis.Backend == cfgPkg.BackendLocal {
		return analyzer.NewLocal(), nil
	}

	a, err := analyzer.NewAzure(analyzer.AzureConfig{
		Endpoint:      cfg.Analysis.Endpoint,
		APIKey:        cfg.Analysis.APIKey,
		ModelID:       cfg.Analysis.ModelID,
		APIVersion:    cfg.Analysis.APIVersion,
		PollInterval:  cfg.Analysis.PollInterval,
		Timeout:       cfg.Analysis.Timeout,
		UploadTimeout: cfg.Analysis.UploadTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize analyzer: %w", err)
	}
	return a, nil
}

func newProcessor(cfg *cfgPkg.Config) (*processor.Processor, error) {
	p, err := processor.NewWithConfig(processor.ProcessorConfig{
		Splitter:     cfg.Processor.Splitter,
		ChunkSize:    cfg.Processor.ChunkSize,
		ChunkOverlap: cfg.Processor.ChunkOverlap,
		EncodingName: cfg.Processor.Encoding,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize processor: %w", err)
	}
	return p, nil
}

func newVectorStore(ctx context.Context, cfg *cfgPkg.Config) (*store.VectorStore, error) {
	embedder, err := llm.NewEmbedderWithConfig(llm.EmbedderConfig{
		Model:     cfg.LLM.EmbeddingModel,
		BaseURL:   cfg.LLM.BaseURL,
		BatchSize: cfg.Database.BatchSize,
	})
	if err != nil {
		return nil, err
	}

	vs, err := store.NewWithConfig(ctx, store.VectorStoreConfig{
		ConnString:  cfg.Database.URL,
		TableName:   cfg.Database.TableName,
		VectorDim:   cfg.Database.VectorDim,
		SearchLimit: cfg.Database.SearchLimit,
	}, embedder)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize vector store: %w", err)
	}
	return vs, nil
}

func newChatEngine(cfg *cfgPkg.Config) (*llm.ChatEngine, error) {
	engine, err := llm.NewWithConfig(llm.ChatConfig{
		Model:       cfg.LLM.Model,
		MaxTokens:   cfg.LLM.MaxTokens,
		BaseURL:     cfg.LLM.BaseURL,
		Temperature: *cfg.LLM.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize chat engine: %w", err)
	}
	return engine, nil
}
