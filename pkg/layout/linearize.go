// Package layout turns analysis results into the flat page text that gets chunked.
package layout

import (
	"strconv"

	"github.com/xhad/docintel/internal/models"
)

const tableName = "Table"

// Linearize maps every content cell of a table to a (table, row, column, value)
// entry. Header labels are resolved in a single pass over the cells as the
// service orders them, so a header seen after the cells it labels is not applied.
func Linearize(table models.Table) models.TableRecord {
	var record models.TableRecord

	columnHeaders := make(map[int]string)
	rowHeaders := make(map[int]string)

	for _, cell := range table.Cells {
		content := cell.Text()

		switch cell.Kind {
		case models.CellKindColumnHeader:
			columnHeaders[cell.ColumnIndex] = content
		case models.CellKindRowHeader:
			rowHeaders[cell.RowIndex] = content
		default:
			rowName, ok := rowHeaders[cell.RowIndex]
			if !ok {
				rowName = "Row " + strconv.Itoa(cell.RowIndex)
			}
			columnName, ok := columnHeaders[cell.ColumnIndex]
			if !ok {
				columnName = "Column " + strconv.Itoa(cell.ColumnIndex)
			}
			record.AddEntry(tableName, rowName, columnName, content)
		}
	}

	return record
}
