// Package models defines data structures for workbook extraction.
package models

// Workbook represents the extracted contents of one workbook file.
type Workbook struct {
	// BookName is the workbook file name (no path).
	BookName string `json:"book_name"`
	// Version is the workbook format version, nil when the root has none.
	Version *string `json:"version"`
	// DataSources contains every extracted data source, in document order.
	DataSources []DataSource `json:"datasources"`
	// Parameters contains the column records of the Parameters pseudo data source.
	Parameters []ColumnRecord `json:"parameters"`
	// Worksheets contains named worksheets (empty in light mode).
	Worksheets []Worksheet `json:"worksheets"`
	// Dashboards contains named dashboards (empty in light mode).
	Dashboards []Dashboard `json:"dashboards"`
	// Structure is the streaming survey of the file (verbose mode only).
	Structure *Structure `json:"structure,omitempty"`
}
