// Package pipeline runs a document through analysis, page assembly, splitting
// and vector store ingestion.
package pipeline

import (
	"context"
	"fmt"

	"github.com/xhad/docintel/internal/models"
	"github.com/xhad/docintel/internal/types"
	"github.com/xhad/docintel/pkg/analyzer"
	"github.com/xhad/docintel/pkg/layout"
)

// Pipeline holds only its collaborators; every call works on local state, so
// one Pipeline can serve concurrent requests.
type Pipeline struct {
	analyzer types.Analyzer
	splitter types.Splitter
	store    types.VectorStore
	observer types.Observer
}

func New(a types.Analyzer, s types.Splitter, vs types.VectorStore, observer types.Observer) *Pipeline {
	if observer == nil {
		observer = NopObserver{}
	}
	return &Pipeline{
		analyzer: a,
		splitter: s,
		store:    vs,
		observer: observer,
	}
}

// Analyse ingests one document. Analyzer failures come back as
// *analyzer.AnalysisError; splitter and store errors are returned as is.
// Nothing is written unless every step before the final store call succeeds.
func (p *Pipeline) Analyse(ctx context.Context, document []byte, fileName string) error {
	result, err := p.analyze(ctx, document, fileName)
	if err != nil {
		return err
	}

	records := p.BuildRecords(*result, fileName, models.DocumentID(document))

	chunks, err := p.splitter.Split(records)
	if err != nil {
		return err
	}
	p.observer.ChunksSplit(fileName, len(records), len(chunks))

	if err := p.store.Ingest(ctx, chunks); err != nil {
		return err
	}
	p.observer.IngestCompleted(fileName, len(chunks))

	return nil
}

// BuildRecords produces one record per page, in the order the service returned them.
func (p *Pipeline) BuildRecords(result models.AnalysisResult, fileName, documentID string) []models.PageRecord {
	records := make([]models.PageRecord, 0, len(result.Pages))

	for _, page := range result.Pages {
		n := page.PageNumber
		p.observer.PageAnalyzed(fileName, n, len(layout.ParagraphsOnPage(result, n)))
		if result.Tables != nil {
			p.observer.TablesExtracted(fileName, n, len(layout.TablesOnPage(result, n)))
		}

		records = append(records, models.PageRecord{
			Text:       layout.BuildPageText(result, n),
			PageNumber: n,
			FileName:   fileName,
			DocumentID: documentID,
		})
	}

	return records
}

// AnalyseRecords runs only the analysis and page assembly steps.
func (p *Pipeline) AnalyseRecords(ctx context.Context, document []byte, fileName string) ([]models.PageRecord, error) {
	result, err := p.analyze(ctx, document, fileName)
	if err != nil {
		return nil, err
	}
	return p.BuildRecords(*result, fileName, models.DocumentID(document)), nil
}

func (p *Pipeline) analyze(ctx context.Context, document []byte, fileName string) (*models.AnalysisResult, error) {
	p.observer.AnalysisStarted(fileName, len(document))

	result, err := p.analyzer.Analyze(ctx, document)
	if err != nil {
		if analyzer.IsAnalysisFailure(err) {
			return nil, err
		}
		return nil, &analyzer.AnalysisError{Op: "analyze", Err: fmt.Errorf("%s: %w", fileName, err)}
	}
	if result == nil {
		return nil, &analyzer.AnalysisError{Op: "analyze", Message: "no result for " + fileName}
	}
	return result, nil
}
