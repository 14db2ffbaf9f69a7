package models

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Metadata keys carried from page records through to stored chunks.
const (
	MetaPageNumber = "page_number"
	MetaFileName   = "file_name"
	MetaDocumentID = "document_id"
)

// CellKind is the role the analysis service assigns to a table cell.
type CellKind string

const (
	CellKindContent      CellKind = "content"
	CellKindColumnHeader CellKind = "columnHeader"
	CellKindRowHeader    CellKind = "rowHeader"
)

type BoundingRegion struct {
	PageNumber int       `json:"pageNumber"`
	Polygon    []float64 `json:"polygon,omitempty"`
}

// AnalysisResult is the layout returned by the analysis service for one document.
// Tables is nil when the service reported no tables collection at all.
type AnalysisResult struct {
	ModelID    string      `json:"modelId"`
	Content    string      `json:"content"`
	Pages      []Page      `json:"pages"`
	Paragraphs []Paragraph `json:"paragraphs"`
	Tables     []Table     `json:"tables"`
}

type Page struct {
	PageNumber int     `json:"pageNumber"`
	Width      float64 `json:"width,omitempty"`
	Height     float64 `json:"height,omitempty"`
	Unit       string  `json:"unit,omitempty"`
}

type Paragraph struct {
	Content         string           `json:"content"`
	Role            string           `json:"role,omitempty"`
	BoundingRegions []BoundingRegion `json:"boundingRegions"`
}

// PageNumber is the page of the first bounding region, or 0 if there is none.
func (p Paragraph) PageNumber() int {
	return firstPage(p.BoundingRegions)
}

type Table struct {
	RowCount        int              `json:"rowCount"`
	ColumnCount     int              `json:"columnCount"`
	Cells           []Cell           `json:"cells"`
	BoundingRegions []BoundingRegion `json:"boundingRegions"`
}

// PageNumber is the page of the first bounding region, or 0 if there is none.
func (t Table) PageNumber() int {
	return firstPage(t.BoundingRegions)
}

type Cell struct {
	Kind        CellKind `json:"kind,omitempty"`
	RowIndex    int      `json:"rowIndex"`
	ColumnIndex int      `json:"columnIndex"`
	Content     string   `json:"content"`
}

// Text returns the cell content, or "Column" when the content is blank.
func (c Cell) Text() string {
	if strings.TrimSpace(c.Content) == "" {
		return "Column"
	}
	return c.Content
}

func firstPage(regions []BoundingRegion) int {
	if len(regions) == 0 {
		return 0
	}
	return regions[0].PageNumber
}

// DocumentID identifies an uploaded document by its content, so two uploads
// that share a file name stay distinct.
func DocumentID(document []byte) string {
	sum := sha256.Sum256(document)
	return hex.EncodeToString(sum[:])
}

// PageRecord is the assembled text of one page before splitting.
type PageRecord struct {
	Text       string
	PageNumber int
	FileName   string
	DocumentID string
}

// Metadata returns the record metadata under the propagated keys.
func (r PageRecord) Metadata() map[string]any {
	return map[string]any{
		MetaPageNumber: r.PageNumber,
		MetaFileName:   r.FileName,
		MetaDocumentID: r.DocumentID,
	}
}

// Chunk is a token-bounded slice of a page record, ready for embedding.
type Chunk struct {
	ID         string
	Text       string
	PageNumber int
	FileName   string
	DocumentID string
	Index      int
	Score      float32
}
