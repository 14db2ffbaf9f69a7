package pipeline

import (
	"log/slog"

	"github.com/xhad/docintel/internal/types"
)

type NopObserver struct{}

func (NopObserver) AnalysisStarted(string, int) {}
func (NopObserver) PageAnalyzed(string, int, int) {}
func (NopObserver) TablesExtracted(string, int, int) {}
func (NopObserver) ChunksSplit(string, int, int) {}
func (NopObserver) IngestCompleted(string, int) {}

// LogObserver writes pipeline checkpoints to a structured logger.
type LogObserver struct {
	log *slog.Logger
}

func NewLogObserver(log *slog.Logger) *LogObserver {
	return &LogObserver{log: log}
}

func (o *LogObserver) AnalysisStarted(fileName string, size int) {
	o.log.Info("analysing document", "file_name", fileName, "bytes", size)
}

func (o *LogObserver) PageAnalyzed(fileName string, pageNumber, paragraphs int) {
	o.log.Info("analysing page", "file_name", fileName, "page_number", pageNumber, "paragraphs", paragraphs)
}

func (o *LogObserver) TablesExtracted(fileName string, pageNumber, tables int) {
	o.log.Info("extracting tables", "file_name", fileName, "page_number", pageNumber, "tables", tables)
}

func (o *LogObserver) ChunksSplit(fileName string, records, chunks int) {
	o.log.Info("split document into chunks", "file_name", fileName, "pages", records, "chunks", chunks)
}

func (o *LogObserver) IngestCompleted(fileName string, chunks int) {
	o.log.Info("vector store indexing completed", "file_name", fileName, "chunks", chunks)
}

// Observers fans every checkpoint out to each observer in turn.
type Observers []types.Observer

func (m Observers) AnalysisStarted(fileName string, size int) {
	for _, o := range m {
		o.AnalysisStarted(fileName, size)
	}
}

func (m Observers) PageAnalyzed(fileName string, pageNumber, paragraphs int) {
	for _, o := range m {
		o.PageAnalyzed(fileName, pageNumber, paragraphs)
	}
}

func (m Observers) TablesExtracted(fileName string, pageNumber, tables int) {
	for _, o := range m {
		o.TablesExtracted(fileName, pageNumber, tables)
	}
}

func (m Observers) ChunksSplit(fileName string, records, chunks int) {
	for _, o := range m {
		o.ChunksSplit(fileName, records, chunks)
	}
}

func (m Observers) IngestCompleted(fileName string, chunks int) {
	for _, o := range m {
		o.IngestCompleted(fileName, chunks)
	}
}
