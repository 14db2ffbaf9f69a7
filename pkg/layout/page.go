package layout

import (
	"strings"

	"github.com/xhad/docintel/internal/models"
)

const (
	paragraphSeparator = "\n \n"
	tabularMarker      = "\n[Tabular Data]:\n"
)

// ParagraphsOnPage returns the paragraphs attributed to pageNumber, in service order.
func ParagraphsOnPage(result models.AnalysisResult, pageNumber int) []models.Paragraph {
	var out []models.Paragraph
	for _, p := range result.Paragraphs {
		if p.PageNumber() == pageNumber {
			out = append(out, p)
		}
	}
	return out
}

// TablesOnPage returns the tables attributed to pageNumber, in service order.
func TablesOnPage(result models.AnalysisResult, pageNumber int) []models.Table {
	var out []models.Table
	for _, t := range result.Tables {
		if t.PageNumber() == pageNumber {
			out = append(out, t)
		}
	}
	return out
}

// BuildPageText joins the page's paragraphs and appends each table on the page
// behind a "[Tabular Data]:" marker.
func BuildPageText(result models.AnalysisResult, pageNumber int) string {
	paragraphs := ParagraphsOnPage(result, pageNumber)
	contents := make([]string, 0, len(paragraphs))
	for _, p := range paragraphs {
		contents = append(contents, p.Content)
	}

	var sb strings.Builder
	sb.WriteString(strings.Join(contents, paragraphSeparator))

	if result.Tables != nil {
		for _, table := range TablesOnPage(result, pageNumber) {
			sb.WriteString(tabularMarker)
			sb.WriteString(Linearize(table).String())
		}
	}

	return sb.String()
}
