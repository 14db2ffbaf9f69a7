package models

import "strings"

type TableEntry struct {
	TableName  string
	RowName    string
	ColumnName string
	Value      string
}

// TableRecord holds the linearized entries of one table in accumulation order.
type TableRecord struct {
	Entries []TableEntry
}

func (t *TableRecord) AddEntry(tableName, rowName, columnName, value string) {
	t.Entries = append(t.Entries, TableEntry{
		TableName:  tableName,
		RowName:    rowName,
		ColumnName: columnName,
		Value:      value,
	})
}

func (t TableRecord) String() string {
	var sb strings.Builder
	for _, e := range t.Entries {
		sb.WriteString("Table Name: " + e.TableName + "\n")
		sb.WriteString("Row Name: " + e.RowName + "\n")
		sb.WriteString("Column Name: " + e.ColumnName + "\n")
		sb.WriteString("Value: " + e.Value + "\n")
		sb.WriteString("---------\n")
	}
	return sb.String()
}
