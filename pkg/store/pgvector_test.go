package store

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xhad/docintel/internal/models"
	"github.com/xhad/docintel/pkg/processor"
)

// fakeEmbedder maps each text to a fixed one-hot vector so nearest
// neighbour order is predictable without an embedding server.
type fakeEmbedder struct {
	dim     int
	vectors map[string]int
}

func (f *fakeEmbedder) vector(text string) []float32 {
	v := make([]float32, f.dim)
	v[f.vectors[text]%f.dim] = 1
	return v
}

func (f *fakeEmbedder) EmbedDocuments(_ context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		out[i] = f.vector(t)
	}
	return out, nil
}

func (f *fakeEmbedder) EmbedQuery(_ context.Context, text string) ([]float32, error) {
	return f.vector(text), nil
}

func TestSanitizeUTF8(t *testing.T) {
	assert.Equal(t, "hello", sanitizeUTF8("hello"))
	assert.Equal(t, "héllo", sanitizeUTF8("héllo"))
	assert.Equal(t, "ab", sanitizeUTF8("a\xffb"))
}

func TestNewWithConfigRequiresEmbedder(t *testing.T) {
	_, err := NewWithConfig(context.Background(), VectorStoreConfig{}, nil)
	assert.Error(t, err)
}

func TestVectorStore(t *testing.T) {
	connString := os.Getenv("DOCINTEL_TEST_DATABASE_URL")
	if connString == "" {
		t.Skip("DOCINTEL_TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	emb := &fakeEmbedder{dim: 4, vectors: map[string]int{
		"first chunk":  0,
		"second chunk": 1,
	}}

	s, err := NewWithConfig(ctx, VectorStoreConfig{
		ConnString: connString,
		TableName:  "test_document_chunks",
		VectorDim:  4,
	}, emb)
	require.NoError(t, err)
	defer s.Close()

	_, err = s.pool.Exec(ctx, "TRUNCATE test_document_chunks")
	require.NoError(t, err)

	chunks := []models.Chunk{
		{ID: processor.ChunkID("doc-a", "test.pdf", 1, 0), Text: "first chunk", PageNumber: 1, FileName: "test.pdf", DocumentID: "doc-a"},
		{ID: processor.ChunkID("doc-a", "test.pdf", 2, 0), Text: "second chunk", PageNumber: 2, FileName: "test.pdf", DocumentID: "doc-a"},
	}
	require.NoError(t, s.Ingest(ctx, chunks))
	// Re-ingesting the same chunks upserts rather than duplicating.
	require.NoError(t, s.Ingest(ctx, chunks))

	results, err := s.Search(ctx, "second chunk", 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "second chunk", results[0].Text)
	assert.Equal(t, 2, results[0].PageNumber)
	assert.Equal(t, "test.pdf", results[0].FileName)

	var count int
	require.NoError(t, s.pool.QueryRow(ctx, "SELECT count(*) FROM test_document_chunks").Scan(&count))
	assert.Equal(t, 2, count)

	// A different document under the same name is added, not overwritten.
	other := []models.Chunk{
		{ID: processor.ChunkID("doc-b", "test.pdf", 1, 0), Text: "first chunk", PageNumber: 1, FileName: "test.pdf", DocumentID: "doc-b"},
	}
	require.NoError(t, s.Ingest(ctx, other))
	require.NoError(t, s.pool.QueryRow(ctx, "SELECT count(*) FROM test_document_chunks").Scan(&count))
	assert.Equal(t, 3, count)

	// Chunks without a file name store NULL.
	unnamed := []models.Chunk{{ID: processor.ChunkID("doc-c", "", 1, 0), Text: "second chunk", PageNumber: 1, DocumentID: "doc-c"}}
	require.NoError(t, s.Ingest(ctx, unnamed))
	var nulls int
	require.NoError(t, s.pool.QueryRow(ctx, "SELECT count(*) FROM test_document_chunks WHERE file_name IS NULL").Scan(&nulls))
	assert.Equal(t, 1, nulls)
}

func TestNullableText(t *testing.T) {
	assert.Nil(t, nullableText(""))
	assert.Equal(t, "a.pdf", nullableText("a.pdf"))
	assert.Equal(t, "ab", nullableText("a\xffb"))
}
