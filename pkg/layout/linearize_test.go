package layout_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xhad/docintel/internal/models"
	"github.com/xhad/docintel/pkg/layout"
)

func TestLinearize_HeadersAndValues(t *testing.T) {
	table := models.Table{
		Cells: []models.Cell{
			{Kind: models.CellKindColumnHeader, RowIndex: 0, ColumnIndex: 0, Content: "Name"},
			{Kind: models.CellKindColumnHeader, RowIndex: 0, ColumnIndex: 1, Content: "Age"},
			{Kind: models.CellKindRowHeader, RowIndex: 1, ColumnIndex: 0, Content: "R1"},
			{Kind: models.CellKindContent, RowIndex: 1, ColumnIndex: 0, Content: "Alice"},
			{Kind: models.CellKindContent, RowIndex: 1, ColumnIndex: 1, Content: "30"},
		},
	}

	record := layout.Linearize(table)

	assert.Equal(t, []models.TableEntry{
		{TableName: "Table", RowName: "R1", ColumnName: "Name", Value: "Alice"},
		{TableName: "Table", RowName: "R1", ColumnName: "Age", Value: "30"},
	}, record.Entries)
}

func TestLinearize_DefaultLabels(t *testing.T) {
	table := models.Table{
		Cells: []models.Cell{
			{Kind: models.CellKindContent, RowIndex: 2, ColumnIndex: 3, Content: "x"},
		},
	}

	record := layout.Linearize(table)

	require.Len(t, record.Entries, 1)
	assert.Equal(t, "Row 2", record.Entries[0].RowName)
	assert.Equal(t, "Column 3", record.Entries[0].ColumnName)
}

func TestLinearize_BlankHeaderBecomesColumn(t *testing.T) {
	table := models.Table{
		Cells: []models.Cell{
			{Kind: models.CellKindColumnHeader, RowIndex: 0, ColumnIndex: 0, Content: "  "},
			{Kind: models.CellKindRowHeader, RowIndex: 1, ColumnIndex: 0, Content: ""},
			{Kind: models.CellKindContent, RowIndex: 1, ColumnIndex: 0, Content: "v"},
		},
	}

	record := layout.Linearize(table)

	require.Len(t, record.Entries, 1)
	assert.Equal(t, "Column", record.Entries[0].ColumnName)
	assert.Equal(t, "Column", record.Entries[0].RowName)
}

func TestLinearize_HeaderAfterValueIsNotApplied(t *testing.T) {
	table := models.Table{
		Cells: []models.Cell{
			{Kind: models.CellKindContent, RowIndex: 1, ColumnIndex: 0, Content: "Alice"},
			{Kind: models.CellKindColumnHeader, RowIndex: 0, ColumnIndex: 0, Content: "Name"},
			{Kind: models.CellKindContent, RowIndex: 2, ColumnIndex: 0, Content: "Bob"},
		},
	}

	record := layout.Linearize(table)

	require.Len(t, record.Entries, 2)
	assert.Equal(t, "Column 0", record.Entries[0].ColumnName)
	assert.Equal(t, "Name", record.Entries[1].ColumnName)
}

func TestLinearize_OtherKindsAreValues(t *testing.T) {
	table := models.Table{
		Cells: []models.Cell{
			{Kind: "stubHead", RowIndex: 0, ColumnIndex: 0, Content: "stub"},
			{Kind: "", RowIndex: 0, ColumnIndex: 1, Content: "plain"},
		},
	}

	record := layout.Linearize(table)

	require.Len(t, record.Entries, 2)
	assert.Equal(t, "stub", record.Entries[0].Value)
	assert.Equal(t, "plain", record.Entries[1].Value)
}

func TestTableRecord_String(t *testing.T) {
	var record models.TableRecord
	record.AddEntry("Table", "R1", "Name", "Alice")
	record.AddEntry("Table", "R1", "Age", "30")

	want := "Table Name: Table\nRow Name: R1\nColumn Name: Name\nValue: Alice\n---------\n" +
		"Table Name: Table\nRow Name: R1\nColumn Name: Age\nValue: 30\n---------\n"
	assert.Equal(t, want, record.String())
	assert.Empty(t, models.TableRecord{}.String())
}
