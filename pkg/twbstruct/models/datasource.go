package models

// DataSource represents one data source definition with its full field catalog.
type DataSource struct {
	// ID is the data source name attribute (e.g. federated.0abc123).
	ID *string `json:"id"`
	// Caption is the display name.
	Caption *string `json:"caption"`
	// Inline is the raw inline flag.
	Inline *string `json:"inline"`
	// Version is the data source format version.
	Version    *string    `json:"version"`
	Connection Connection `json:"connection"`
	// MetadataRecords are the physical-field records, in document order.
	MetadataRecords []MetadataRecord `json:"metadata_records"`
	// ColumnRecords are the logical-field records, in document order.
	ColumnRecords []ColumnRecord `json:"column_records"`
	// PairedFields is the full outer join of metadata and column records.
	PairedFields []PairedField `json:"paired_fields"`
}

// CalculatedFields returns the paired fields that carry a calculation and no metadata.
func (d DataSource) CalculatedFields() []PairedField {
	var out []PairedField
	for _, f := range d.PairedFields {
		if f.IsCalculated() {
			out = append(out, f)
		}
	}
	return out
}
