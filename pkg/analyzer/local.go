package analyzer

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/xhad/docintel/internal/models"
)

const LocalModelID = "local-pdf-text"

// LocalAnalyzer extracts plain text from PDFs without calling a service.
// Each page yields one paragraph and no tables.
type LocalAnalyzer struct{}

func NewLocal() *LocalAnalyzer {
	return &LocalAnalyzer{}
}

func (l *LocalAnalyzer) Analyze(ctx context.Context, document []byte) (*models.AnalysisResult, error) {
	reader, err := pdf.NewReader(bytes.NewReader(document), int64(len(document)))
	if err != nil {
		return nil, &AnalysisError{Op: "open", Err: err}
	}

	result := &models.AnalysisResult{ModelID: LocalModelID}
	var content strings.Builder

	for i := 1; i <= reader.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return nil, &AnalysisError{Op: "extract", Err: err}
		}

		result.Pages = append(result.Pages, models.Page{PageNumber: i})

		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return nil, &AnalysisError{Op: "extract", Err: fmt.Errorf("page %d: %w", i, err)}
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}

		result.Paragraphs = append(result.Paragraphs, models.Paragraph{
			Content:         text,
			BoundingRegions: []models.BoundingRegion{{PageNumber: i}},
		})
		if content.Len() > 0 {
			content.WriteString("\n")
		}
		content.WriteString(text)
	}

	result.Content = content.String()
	return result, nil
}
