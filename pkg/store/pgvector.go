package store

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"
	"github.com/xhad/docintel/internal/models"
	"github.com/xhad/docintel/internal/types"
)

type VectorStoreConfig struct {
	ConnString  string
	TableName   string
	VectorDim   int
	SearchLimit int
}

type VectorStore struct {
	config   VectorStoreConfig
	pool     *pgxpool.Pool
	embedder types.Embedder
}

func NewWithConfig(ctx context.Context, config VectorStoreConfig, embedder types.Embedder) (*VectorStore, error) {
	if config.TableName == "" {
		config.TableName = "document_chunks"
	}
	if config.VectorDim == 0 {
		config.VectorDim = 768 // nomic-embed-text
	}
	if config.SearchLimit == 0 {
		config.SearchLimit = 5
	}
	if embedder == nil {
		return nil, fmt.Errorf("embedder is required")
	}

	pool, err := pgxpool.New(ctx, config.ConnString)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	vs := &VectorStore{
		config:   config,
		pool:     pool,
		embedder: embedder,
	}

	if err := vs.initialize(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return vs, nil
}

func (vs *VectorStore) initialize(ctx context.Context) error {
	// Enable pgvector extension
	_, err := vs.pool.Exec(ctx, "CREATE EXTENSION IF NOT EXISTS vector")
	if err != nil {
		return fmt.Errorf("failed to create vector extension: %w", err)
	}

	createTable := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id TEXT PRIMARY KEY,
			document_id TEXT,
			file_name TEXT,
			page_number INTEGER NOT NULL,
			chunk_index INTEGER NOT NULL,
			content TEXT NOT NULL,
			embedding vector(%d),
			metadata JSONB
		)`, vs.config.TableName, vs.config.VectorDim)

	_, err = vs.pool.Exec(ctx, createTable)
	if err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}

	_, err = vs.pool.Exec(ctx, fmt.Sprintf(
		"ALTER TABLE %s ADD COLUMN IF NOT EXISTS document_id TEXT", vs.config.TableName))
	if err != nil {
		return fmt.Errorf("failed to migrate table: %w", err)
	}

	createIndex := fmt.Sprintf(`
		CREATE INDEX IF NOT EXISTS %s_embedding_idx
		ON %s
		USING hnsw (embedding vector_cosine_ops)`,
		vs.config.TableName, vs.config.TableName)

	_, err = vs.pool.Exec(ctx, createIndex)
	if err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}

	return nil
}

// Ingest embeds every chunk and upserts all of them in a single transaction.
// Either all chunks are stored or none are.
func (vs *VectorStore) Ingest(ctx context.Context, chunks []models.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = sanitizeUTF8(c.Text)
	}

	vectors, err := vs.embedder.EmbedDocuments(ctx, texts)
	if err != nil {
		return fmt.Errorf("failed to create embeddings: %w", err)
	}
	if len(vectors) != len(chunks) {
		return fmt.Errorf("embedder returned %d vectors for %d chunks", len(vectors), len(chunks))
	}

	tx, err := vs.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	stmt := fmt.Sprintf(`
		INSERT INTO %s (id, document_id, file_name, page_number, chunk_index, content, embedding, metadata)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			content = EXCLUDED.content,
			embedding = EXCLUDED.embedding,
			metadata = EXCLUDED.metadata`,
		vs.config.TableName)

	for i, c := range chunks {
		metadata := map[string]any{
			models.MetaPageNumber: c.PageNumber,
			models.MetaDocumentID: c.DocumentID,
		}
		if c.FileName != "" {
			metadata[models.MetaFileName] = sanitizeUTF8(c.FileName)
		}

		_, err = tx.Exec(ctx, stmt,
			c.ID,
			nullableText(c.DocumentID),
			nullableText(c.FileName),
			c.PageNumber,
			c.Index,
			texts[i],
			pgvector.NewVector(vectors[i]),
			metadata,
		)
		if err != nil {
			return fmt.Errorf("failed to insert chunk %s: %w", c.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// Search embeds the query text and returns the nearest chunks.
func (vs *VectorStore) Search(ctx context.Context, query string, limit int) ([]models.Chunk, error) {
	embedding, err := vs.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}
	return vs.Query(ctx, embedding, limit)
}

func (vs *VectorStore) Query(ctx context.Context, queryEmbedding []float32, limit int) ([]models.Chunk, error) {
	if limit <= 0 {
		limit = vs.config.SearchLimit
	}

	query := fmt.Sprintf(`
		SELECT id, COALESCE(document_id, ''), COALESCE(file_name, ''), page_number, chunk_index, content,
			1 - (embedding <=> $1) AS score
		FROM %s
		ORDER BY embedding <=> $1
		LIMIT $2`,
		vs.config.TableName)

	rows, err := vs.pool.Query(ctx, query, pgvector.NewVector(queryEmbedding), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query chunks: %w", err)
	}
	defer rows.Close()

	var chunks []models.Chunk
	for rows.Next() {
		var c models.Chunk
		var score float64
		if err := rows.Scan(&c.ID, &c.DocumentID, &c.FileName, &c.PageNumber, &c.Index, &c.Text, &score); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		c.Score = float32(score)
		chunks = append(chunks, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	return chunks, nil
}

func (vs *VectorStore) Close() {
	if vs.pool != nil {
		vs.pool.Close()
	}
}

// nullableText maps an empty string to SQL NULL.
func nullableText(s string) any {
	if s == "" {
		return nil
	}
	return sanitizeUTF8(s)
}

// sanitizeUTF8 drops invalid bytes; Postgres rejects them in TEXT columns.
func sanitizeUTF8(s string) string {
	if !utf8.ValidString(s) {
		v := make([]rune, 0, len(s))
		for i, r := range s {
			if r == utf8.RuneError {
				_, size := utf8.DecodeRuneInString(s[i:])
				if size == 1 {
					continue
				}
			}
			v = append(v, r)
		}
		return string(v)
	}
	return s
}
