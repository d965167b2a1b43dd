package parser

import (
	"sort"

	"github.com/ukaji3/twbstruct-go/pkg/twbstruct/models"
)

// PairFields joins metadata records (keyed by local name) and column records
// (keyed by name) into one PairedField per distinct name. Records without a key
// are ignored; when a key repeats, the last record wins.
func PairFields(metadata []models.MetadataRecord, columns []models.ColumnRecord) []models.PairedField {
	metaByName := make(map[string]*models.MetadataRecord)
	for i := range metadata {
		if name := metadata[i].LocalName; name != nil && *name != "" {
			metaByName[*name] = &metadata[i]
		}
	}

	colByName := make(map[string]*models.ColumnRecord)
	for i := range columns {
		if name := columns[i].Name(); name != "" {
			colByName[name] = &columns[i]
		}
	}

	names := make([]string, 0, len(metaByName)+len(colByName))
	for name := range metaByName {
		names = append(names, name)
	}
	for name := range colByName {
		if _, ok := metaByName[name]; !ok {
			names = append(names, name)
		}
	}
	// Sorted for reproducible output only.
	sort.Strings(names)

	fields := make([]models.PairedField, 0, len(names))
	for _, name := range names {
		fields = append(fields, models.PairedField{
			FieldName: name,
			Metadata:  metaByName[name],
			Column:    colByName[name],
		})
	}
	return fields
}
