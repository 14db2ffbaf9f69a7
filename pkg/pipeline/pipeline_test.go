package pipeline_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xhad/docintel/internal/models"
	"github.com/xhad/docintel/pkg/analyzer"
	"github.com/xhad/docintel/pkg/pipeline"
	"github.com/xhad/docintel/pkg/processor"
)

type fakeAnalyzer struct {
	result *models.AnalysisResult
	err    error
	calls  int
}

func (f *fakeAnalyzer) Analyze(_ context.Context, _ []byte) (*models.AnalysisResult, error) {
	f.calls++
	return f.result, f.err
}

type recordingSplitter struct {
	records []models.PageRecord
	err     error
}

func (s *recordingSplitter) Split(records []models.PageRecord) ([]models.Chunk, error) {
	s.records = records
	if s.err != nil {
		return nil, s.err
	}
	chunks := make([]models.Chunk, 0, len(records))
	for _, r := range records {
		chunks = append(chunks, models.Chunk{Text: r.Text, PageNumber: r.PageNumber, FileName: r.FileName})
	}
	return chunks, nil
}

type fakeStore struct {
	calls  int
	chunks []models.Chunk
	err    error
}

func (s *fakeStore) Ingest(_ context.Context, chunks []models.Chunk) error {
	s.calls++
	s.chunks = chunks
	return s.err
}

type countingObserver struct {
	pipeline.NopObserver
	pages     []int
	completed int
}

func (o *countingObserver) PageAnalyzed(_ string, pageNumber, _ int) {
	o.pages = append(o.pages, pageNumber)
}

func (o *countingObserver) IngestCompleted(string, int) {
	o.completed++
}

func twoPageResult() *models.AnalysisResult {
	on := func(page int) []models.BoundingRegion { return []models.BoundingRegion{{PageNumber: page}} }
	return &models.AnalysisResult{
		Pages: []models.Page{{PageNumber: 1}, {PageNumber: 2}},
		Paragraphs: []models.Paragraph{
			{Content: "Cover", BoundingRegions: on(1)},
			{Content: "Summary", BoundingRegions: on(2)},
			{Content: "Details", BoundingRegions: on(2)},
		},
		Tables: []models.Table{{
			BoundingRegions: on(2),
			Cells: []models.Cell{
				{Kind: models.CellKindColumnHeader, RowIndex: 0, ColumnIndex: 0, Content: "Name"},
				{RowIndex: 1, ColumnIndex: 0, Content: "Alice"},
			},
		}},
	}
}

func TestAnalyse_EndToEnd(t *testing.T) {
	a := &fakeAnalyzer{result: twoPageResult()}
	sp := &recordingSplitter{}
	st := &fakeStore{}
	obs := &countingObserver{}

	err := pipeline.New(a, sp, st, obs).Analyse(context.Background(), []byte("pdf"), "report.pdf")
	require.NoError(t, err)

	require.Len(t, sp.records, 2)
	assert.Equal(t, models.PageRecord{
		Text:       "Cover",
		PageNumber: 1,
		FileName:   "report.pdf",
		DocumentID: models.DocumentID([]byte("pdf")),
	}, sp.records[0])
	assert.Equal(t, sp.records[0].DocumentID, sp.records[1].DocumentID)
	assert.Equal(t, 2, sp.records[1].PageNumber)
	assert.Contains(t, sp.records[1].Text, "Summary\n \nDetails\n[Tabular Data]:\n")
	assert.Contains(t, sp.records[1].Text, "Value: Alice")

	assert.Equal(t, 1, st.calls)
	assert.Len(t, st.chunks, 2)
	assert.Equal(t, []int{1, 2}, obs.pages)
	assert.Equal(t, 1, obs.completed)
}

func TestAnalyse_KeepsServicePageOrder(t *testing.T) {
	result := twoPageResult()
	result.Pages = []models.Page{{PageNumber: 2}, {PageNumber: 1}, {PageNumber: 3}}
	sp := &recordingSplitter{}

	err := pipeline.New(&fakeAnalyzer{result: result}, sp, &fakeStore{}, nil).
		Analyse(context.Background(), nil, "doc.pdf")
	require.NoError(t, err)

	require.Len(t, sp.records, 3)
	assert.Equal(t, 2, sp.records[0].PageNumber)
	assert.Equal(t, 1, sp.records[1].PageNumber)
	assert.Equal(t, 3, sp.records[2].PageNumber)
	assert.Equal(t, "", sp.records[2].Text)
}

func TestAnalyse_AnalysisFailure(t *testing.T) {
	cause := errors.New("connection reset")
	st := &fakeStore{}

	err := pipeline.New(&fakeAnalyzer{err: cause}, &recordingSplitter{}, st, nil).
		Analyse(context.Background(), []byte("x"), "doc.pdf")
	require.Error(t, err)

	assert.True(t, analyzer.IsAnalysisFailure(err))
	assert.ErrorIs(t, err, cause)
	assert.Zero(t, st.calls)
}

func TestAnalyse_AnalysisErrorPassedThrough(t *testing.T) {
	cause := &analyzer.AnalysisError{Op: "poll", Code: "InvalidContent"}

	err := pipeline.New(&fakeAnalyzer{err: cause}, &recordingSplitter{}, &fakeStore{}, nil).
		Analyse(context.Background(), []byte("x"), "doc.pdf")

	assert.Same(t, cause, err)
}

func TestAnalyse_StoreFailurePropagates(t *testing.T) {
	cause := errors.New("database unavailable")
	st := &fakeStore{err: cause}
	obs := &countingObserver{}

	err := pipeline.New(&fakeAnalyzer{result: twoPageResult()}, &recordingSplitter{}, st, obs).
		Analyse(context.Background(), []byte("x"), "doc.pdf")

	assert.Equal(t, cause, err)
	assert.False(t, analyzer.IsAnalysisFailure(err))
	assert.Equal(t, 1, st.calls)
	assert.Zero(t, obs.completed)
}

func TestAnalyse_SplitterFailurePropagates(t *testing.T) {
	cause := errors.New("tokenizer unavailable")
	st := &fakeStore{}

	err := pipeline.New(&fakeAnalyzer{result: twoPageResult()}, &recordingSplitter{err: cause}, st, nil).
		Analyse(context.Background(), []byte("x"), "doc.pdf")

	assert.Equal(t, cause, err)
	assert.Zero(t, st.calls)
}

func TestAnalyse_WithProcessor(t *testing.T) {
	p, err := processor.NewWithConfig(processor.ProcessorConfig{Splitter: processor.SplitterRecursive, ChunkSize: 500})
	require.NoError(t, err)
	st := &fakeStore{}

	err = pipeline.New(&fakeAnalyzer{result: twoPageResult()}, p, st, nil).
		Analyse(context.Background(), []byte("x"), "report.pdf")
	require.NoError(t, err)

	require.Len(t, st.chunks, 2)
	assert.Equal(t, 1, st.chunks[0].PageNumber)
	assert.Equal(t, 2, st.chunks[1].PageNumber)
	assert.Equal(t, "report.pdf", st.chunks[1].FileName)
	assert.NotEmpty(t, st.chunks[1].ID)
}

func TestBuildRecords_Deterministic(t *testing.T) {
	p := pipeline.New(&fakeAnalyzer{}, &recordingSplitter{}, &fakeStore{}, nil)

	first := p.BuildRecords(*twoPageResult(), "doc.pdf", "abc")
	second := p.BuildRecords(*twoPageResult(), "doc.pdf", "abc")

	assert.Equal(t, first, second)
}

func TestAnalyseRecords(t *testing.T) {
	a := &fakeAnalyzer{result: twoPageResult()}
	st := &fakeStore{}

	records, err := pipeline.New(a, &recordingSplitter{}, st, nil).
		AnalyseRecords(context.Background(), []byte("x"), "doc.pdf")
	require.NoError(t, err)

	assert.Len(t, records, 2)
	assert.Zero(t, st.calls)
}

func TestAnalyse_SameNameDifferentDocuments(t *testing.T) {
	proc, err := processor.NewWithConfig(processor.ProcessorConfig{
		Splitter:  processor.SplitterRecursive,
		ChunkSize: 500,
	})
	require.NoError(t, err)

	ingest := func(document string) []models.Chunk {
		st := &fakeStore{}
		err := pipeline.New(&fakeAnalyzer{result: twoPageResult()}, proc, st, nil).
			Analyse(context.Background(), []byte(document), "scan.pdf")
		require.NoError(t, err)
		return st.chunks
	}

	invoice := ingest("Invoice from ACME")
	report := ingest("Medical report")
	again := ingest("Invoice from ACME")

	require.Len(t, invoice, 2)
	require.Len(t, report, 2)
	for i := range invoice {
		assert.NotEqual(t, invoice[i].ID, report[i].ID)
		assert.Equal(t, invoice[i].ID, again[i].ID)
		assert.Equal(t, "scan.pdf", report[i].FileName)
	}
}
