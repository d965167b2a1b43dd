package models

// MetadataRecord is a physical-field descriptor from the metadata-records block.
type MetadataRecord struct {
	Class        *string `json:"class"`
	RemoteName   *string `json:"remote_name"`
	RemoteType   *string `json:"remote_type"`
	RemoteAlias  *string `json:"remote_alias"`
	LocalName    *string `json:"local_name"`
	LocalType    *string `json:"local_type"`
	// ParentName is the owning table, e.g. [FCT_ORDERS]. Nil means the field is
	// not a direct physical column.
	ParentName   *string `json:"parent_name"`
	Aggregation  *string `json:"aggregation"`
	ContainsNull *string `json:"contains_null"`
	Collation    *string `json:"collation"`
	Ordinal      *string `json:"ordinal"`
	ObjectID     *string `json:"object_id"`
	Family       *string `json:"family"`
}

// ColumnRecord is a logical-field descriptor from a column element.
type ColumnRecord struct {
	// Attributes holds every attribute of the column element.
	Attributes map[string]string `json:"attributes"`
	// Calculation is present for calculated fields (and some bins and groups).
	Calculation *Calculation `json:"calculation,omitempty"`
	// Aliases maps member keys to display aliases.
	Aliases map[string]string `json:"aliases,omitempty"`
	// Range holds numeric range attributes.
	Range map[string]string `json:"range,omitempty"`
	// Members lists the attributes of every discrete member.
	Members []map[string]string `json:"members,omitempty"`
	// TableCalc holds table-calculation settings.
	TableCalc map[string]string `json:"table_calc,omitempty"`
	// FormattedAliases lists formatted alias entries.
	FormattedAliases []FormattedAlias `json:"formatted_aliases,omitempty"`
}

// Name returns the column's name attribute, or "" when absent.
func (c ColumnRecord) Name() string {
	return c.Attributes["name"]
}

// Calculation is the formula block of a column.
type Calculation struct {
	Formula    *string           `json:"formula"`
	Class      *string           `json:"class"`
	Attributes map[string]string `json:"attributes"`
}

// FormattedAlias is a formatted-alias entry of a column.
type FormattedAlias struct {
	Attributes map[string]string `json:"attributes"`
	Text       *string           `json:"text"`
}

// PairedField is the merged metadata and column view of one field.
// At least one of Metadata and Column is set.
type PairedField struct {
	// FieldName is the join key, in bracketed form (e.g. [Sales]).
	FieldName string          `json:"field_name"`
	Metadata  *MetadataRecord `json:"metadata"`
	Column    *ColumnRecord   `json:"column"`
	// Inference is set on calculated fields once table inference has run.
	Inference *TableInference `json:"inference,omitempty"`
}

// HasMetadata reports whether the field maps to a physical column.
func (f PairedField) HasMetadata() bool {
	return f.Metadata != nil
}

// IsCalculated reports whether the field has no metadata and carries a calculation.
func (f PairedField) IsCalculated() bool {
	return f.Metadata == nil && f.Column != nil && f.Column.Calculation != nil
}

// Formula returns the calculation formula, or "" when there is none.
func (f PairedField) Formula() string {
	if f.Column == nil || f.Column.Calculation == nil || f.Column.Calculation.Formula == nil {
		return ""
	}
	return *f.Column.Calculation.Formula
}

// ParentTable returns the metadata parent table name, or nil.
func (f PairedField) ParentTable() *string {
	if f.Metadata == nil {
		return nil
	}
	return f.Metadata.ParentName
}

// TableInference is the inferred base-table result for a calculated field.
type TableInference struct {
	// PrimaryTable is the chosen base table, nil when nothing resolved.
	PrimaryTable *string `json:"primary_table"`
	// RefTables is the sorted comma-joined table set when more than one table resolved.
	RefTables *string `json:"ref_tables"`
	// ReferencedFields are the formula's direct references.
	ReferencedFields []string `json:"referenced_fields"`
}
