package processor

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/pkoukk/tiktoken-go"
	tiktoken_loader "github.com/pkoukk/tiktoken-go-loader"
	"github.com/tmc/langchaingo/schema"
	"github.com/tmc/langchaingo/textsplitter"
	"github.com/xhad/docintel/internal/models"
)

const (
	SplitterToken     = "token"
	SplitterRecursive = "recursive"
)

func init() {
	// BPE ranks come from files embedded in the binary, not from the network.
	tiktoken.SetBpeLoader(tiktoken_loader.NewOfflineLoader())
}

// chunkNamespace seeds the deterministic chunk IDs.
var chunkNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/xhad/docintel/chunk"))

type ProcessorConfig struct {
	Splitter     string
	ChunkSize    int
	ChunkOverlap int
	EncodingName string
}

// Processor splits page records into token-bounded chunks that keep the
// page_number and file_name metadata of the record they came from.
type Processor struct {
	config   ProcessorConfig
	splitter textsplitter.TextSplitter
}

func NewWithConfig(config ProcessorConfig) (*Processor, error) {
	if config.Splitter == "" {
		config.Splitter = SplitterToken
	}
	if config.ChunkSize == 0 {
		config.ChunkSize = 800
	}
	if config.EncodingName == "" {
		config.EncodingName = "cl100k_base"
	}
	if config.ChunkOverlap < 0 || config.ChunkOverlap >= config.ChunkSize {
		return nil, fmt.Errorf("chunk overlap must be non-negative and less than chunk size")
	}

	opts := []textsplitter.Option{
		textsplitter.WithChunkSize(config.ChunkSize),
		textsplitter.WithChunkOverlap(config.ChunkOverlap),
	}

	var splitter textsplitter.TextSplitter
	switch config.Splitter {
	case SplitterToken:
		opts = append(opts, textsplitter.WithEncodingName(config.EncodingName))
		splitter = textsplitter.NewTokenSplitter(opts...)
	case SplitterRecursive:
		splitter = textsplitter.NewRecursiveCharacter(opts...)
	default:
		return nil, fmt.Errorf("unknown splitter %q", config.Splitter)
	}

	return &Processor{
		config:   config,
		splitter: splitter,
	}, nil
}

func (p *Processor) Split(records []models.PageRecord) ([]models.Chunk, error) {
	docs := make([]schema.Document, 0, len(records))
	for _, r := range records {
		docs = append(docs, schema.Document{
			PageContent: r.Text,
			Metadata:    r.Metadata(),
		})
	}

	split, err := textsplitter.SplitDocuments(p.splitter, docs)
	if err != nil {
		return nil, fmt.Errorf("failed to split documents: %w", err)
	}

	chunks := make([]models.Chunk, 0, len(split))
	perPage := make(map[string]int)

	for _, doc := range split {
		if strings.TrimSpace(doc.PageContent) == "" {
			continue
		}

		pageNumber, _ := doc.Metadata[models.MetaPageNumber].(int)
		fileName, _ := doc.Metadata[models.MetaFileName].(string)
		documentID, _ := doc.Metadata[models.MetaDocumentID].(string)

		key := fmt.Sprintf("%s\x00%s\x00%d", documentID, fileName, pageNumber)
		index := perPage[key]
		perPage[key]++

		chunks = append(chunks, models.Chunk{
			ID:         ChunkID(documentID, fileName, pageNumber, index),
			Text:       doc.PageContent,
			PageNumber: pageNumber,
			FileName:   fileName,
			DocumentID: documentID,
			Index:      index,
		})
	}

	return chunks, nil
}

// ChunkID derives a stable identifier from the document content hash, its
// name and the chunk position. Re-ingesting identical bytes replaces the same
// rows; a different document under the same name gets new ones.
func ChunkID(documentID, fileName string, pageNumber, index int) string {
	name := fmt.Sprintf("%s#%s#page=%d#chunk=%d", documentID, fileName, pageNumber, index)
	return uuid.NewSHA1(chunkNamespace, []byte(name)).String()
}
