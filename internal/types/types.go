package types

import (
	"context"

	"github.com/xhad/docintel/internal/models"
)

// Core interfaces
type Analyzer interface {
	Analyze(ctx context.Context, document []byte) (*models.AnalysisResult, error)
}

type Splitter interface {
	Split(records []models.PageRecord) ([]models.Chunk, error)
}

type VectorStore interface {
	Ingest(ctx context.Context, chunks []models.Chunk) error
}

// Retriever finds the stored chunks nearest to a free-text query.
type Retriever interface {
	Search(ctx context.Context, query string, limit int) ([]models.Chunk, error)
}

type Embedder interface {
	EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error)
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// Observer receives diagnostic checkpoints from the ingestion pipeline.
// Implementations must not influence the pipeline's control flow.
type Observer interface {
	AnalysisStarted(fileName string, size int)
	PageAnalyzed(fileName string, pageNumber, paragraphs int)
	TablesExtracted(fileName string, pageNumber, tables int)
	ChunksSplit(fileName string, records, chunks int)
	IngestCompleted(fileName string, chunks int)
}
