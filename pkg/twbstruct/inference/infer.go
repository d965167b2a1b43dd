package inference

import (
	"maps"
	"sort"
	"strings"

	"github.com/ukaji3/twbstruct-go/pkg/twbstruct/models"
)

// factMarkers are substrings that mark a table name as a fact table. This is a
// naming convention guess, not a schema check.
var factMarkers = []string{"fct_", "fact_", "_fact", "transactions", "orders", "sales"}

// IsFactTable reports whether a table name matches the fact-table naming convention.
func IsFactTable(table string) bool {
	lower := strings.ToLower(table)
	for _, m := range factMarkers {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}

// PrimaryTable picks the primary table of a resolved set: the only table, else
// the first fact-named table in sorted order, else the alphabetically first.
func PrimaryTable(tables []string) *string {
	if len(tables) == 0 {
		return nil
	}
	sorted := append([]string(nil), tables...)
	sort.Strings(sorted)

	if len(sorted) == 1 {
		return &sorted[0]
	}
	for i := range sorted {
		if IsFactTable(sorted[i]) {
			return &sorted[i]
		}
	}
	return &sorted[0]
}

// Infer computes the table inference result for a field. Fields without a
// formula get nil tables and no references.
func (r *Registry) Infer(field models.PairedField) models.TableInference {
	refs := ExtractReferences(field.Formula())
	result := models.TableInference{ReferencedFields: refs}
	if len(refs) == 0 {
		return result
	}

	tables := map[string]struct{}{}
	for _, ref := range refs {
		// The field itself starts every branch so a self-reference is a cycle.
		visited := map[string]struct{}{field.FieldName: {}}
		maps.Copy(tables, r.resolve(ref, visited))
	}

	names := sortedKeys(tables)
	result.PrimaryTable = PrimaryTable(names)
	if len(names) > 1 {
		joined := strings.Join(names, ",")
		result.RefTables = &joined
	}
	return result
}

// Annotate returns a copy of the fields with an inference result attached to
// every calculated field.
func Annotate(fields []models.PairedField) []models.PairedField {
	reg := NewRegistry(fields)
	out := make([]models.PairedField, len(fields))
	for i, f := range fields {
		out[i] = f
		if f.IsCalculated() {
			inf := reg.Infer(f)
			out[i].Inference = &inf
		}
	}
	return out
}
