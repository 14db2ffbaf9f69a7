package layout_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/xhad/docintel/internal/models"
	"github.com/xhad/docintel/pkg/layout"
)

func region(page int) []models.BoundingRegion {
	return []models.BoundingRegion{{PageNumber: page}}
}

func sampleResult() models.AnalysisResult {
	return models.AnalysisResult{
		Pages: []models.Page{{PageNumber: 1}, {PageNumber: 2}},
		Paragraphs: []models.Paragraph{
			{Content: "Intro", BoundingRegions: region(1)},
			{Content: "First", BoundingRegions: region(2)},
			{Content: "Second", BoundingRegions: []models.BoundingRegion{{PageNumber: 2}, {PageNumber: 3}}},
		},
		Tables: []models.Table{
			{
				BoundingRegions: region(2),
				Cells: []models.Cell{
					{Kind: models.CellKindColumnHeader, RowIndex: 0, ColumnIndex: 0, Content: "Name"},
					{Kind: models.CellKindContent, RowIndex: 1, ColumnIndex: 0, Content: "Alice"},
				},
			},
		},
	}
}

func TestBuildPageText_NoTables(t *testing.T) {
	result := sampleResult()
	result.Tables = nil

	text := layout.BuildPageText(result, 2)

	assert.Equal(t, "First\n \nSecond", text)
	assert.NotContains(t, text, "[Tabular Data]")
}

func TestBuildPageText_PageWithoutTables(t *testing.T) {
	text := layout.BuildPageText(sampleResult(), 1)
	assert.Equal(t, "Intro", text)
}

func TestBuildPageText_WithTable(t *testing.T) {
	text := layout.BuildPageText(sampleResult(), 2)

	want := "First\n \nSecond" +
		"\n[Tabular Data]:\n" +
		"Table Name: Table\nRow Name: Row 1\nColumn Name: Name\nValue: Alice\n---------\n"
	assert.Equal(t, want, text)
	assert.Equal(t, 1, strings.Count(text, "[Tabular Data]:"))
}

func TestBuildPageText_TablesInOrder(t *testing.T) {
	result := sampleResult()
	result.Tables = append(result.Tables, models.Table{
		BoundingRegions: region(2),
		Cells:           []models.Cell{{RowIndex: 0, ColumnIndex: 0, Content: "later"}},
	})

	text := layout.BuildPageText(result, 2)

	assert.Equal(t, 2, strings.Count(text, "[Tabular Data]:"))
	assert.Less(t, strings.Index(text, "Alice"), strings.Index(text, "later"))
}

func TestBuildPageText_EmptyPage(t *testing.T) {
	assert.Equal(t, "", layout.BuildPageText(sampleResult(), 5))
}

func TestParagraphsOnPage_IgnoresUnplaced(t *testing.T) {
	result := models.AnalysisResult{
		Paragraphs: []models.Paragraph{{Content: "floating"}},
	}
	assert.Empty(t, layout.ParagraphsOnPage(result, 1))
}
