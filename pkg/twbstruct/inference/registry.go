package inference

import (
	"maps"
	"sort"
	"strings"

	"github.com/ukaji3/twbstruct-go/pkg/twbstruct/models"
)

// entry is the registry view of one paired field.
type entry struct {
	hasMetadata  bool
	parentTable  *string
	isCalculated bool
	formula      string
}

// Registry maps field names of one data source to what resolution needs.
// It is read-only after construction and safe for concurrent use.
type Registry struct {
	entries map[string]entry
}

// NewRegistry builds a registry from the paired fields of one data source.
func NewRegistry(fields []models.PairedField) *Registry {
	r := &Registry{entries: make(map[string]entry, len(fields))}
	for _, f := range fields {
		if f.FieldName == "" {
			continue
		}
		e := entry{
			hasMetadata:  f.HasMetadata(),
			parentTable:  f.ParentTable(),
			isCalculated: f.IsCalculated(),
		}
		if e.isCalculated {
			e.formula = f.Formula()
		}
		r.entries[f.FieldName] = e
	}
	return r
}

// Len returns the number of registered fields.
func (r *Registry) Len() int {
	return len(r.entries)
}

// CleanTableName strips brackets and lower-cases a parent table name:
// [FCT_ORDERS] becomes fct_orders.
func CleanTableName(parent string) string {
	return strings.ToLower(strings.Trim(parent, "[]"))
}

// Resolve returns the sorted set of base tables a field ultimately reads from.
// Unknown fields resolve to an empty set.
func (r *Registry) Resolve(name string) []string {
	return sortedKeys(r.resolve(name, map[string]struct{}{}))
}

// resolve walks the reference graph. visited belongs to the current branch:
// every reference gets its own copy, so a field shared by two branches is
// explored in both while a cycle stops at the repeat.
func (r *Registry) resolve(name string, visited map[string]struct{}) map[string]struct{} {
	tables := map[string]struct{}{}
	if _, ok := visited[name]; ok {
		return tables
	}
	visited[name] = struct{}{}

	e, ok := r.entries[name]
	if !ok {
		return tables
	}

	if e.hasMetadata {
		if e.parentTable != nil {
			if t := CleanTableName(*e.parentTable); t != "" {
				tables[t] = struct{}{}
			}
		}
		return tables
	}

	if !e.isCalculated || e.formula == "" {
		return tables
	}

	for _, ref := range ExtractReferences(e.formula) {
		for t := range r.resolve(ref, maps.Clone(visited)) {
			tables[t] = struct{}{}
		}
	}
	return tables
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
