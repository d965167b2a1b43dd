package parser

import (
	"github.com/beevik/etree"

	"github.com/ukaji3/twbstruct-go/pkg/twbstruct/models"
)

// ExtractColumnRecords extracts every column element anywhere beneath a data source.
func ExtractColumnRecords(datasource *etree.Element) []models.ColumnRecord {
	columns := []models.ColumnRecord{}
	for _, col := range descendants(datasource, ".//column") {
		columns = append(columns, ExtractColumn(col))
	}
	return columns
}

// ExtractColumn extracts one column element. Each optional block is set only
// when present in the document.
func ExtractColumn(el *etree.Element) models.ColumnRecord {
	col := models.ColumnRecord{Attributes: attrs(el)}

	if calc := child(el, "calculation"); calc != nil {
		col.Calculation = &models.Calculation{
			Formula:    attr(calc, "formula"),
			Class:      attr(calc, "class"),
			Attributes: attrs(calc),
		}
	}

	if aliases := child(el, "aliases"); aliases != nil {
		col.Aliases = map[string]string{}
		for _, a := range children(aliases, "alias") {
			key, value := attr(a, "key"), attr(a, "value")
			if key != nil && value != nil && *key != "" && *value != "" {
				col.Aliases[*key] = *value
			}
		}
	}

	if rng := child(el, "range"); rng != nil {
		col.Range = attrs(rng)
	}

	for _, m := range descendants(el, ".//member") {
		col.Members = append(col.Members, attrs(m))
	}

	if tc := descendants(el, ".//table-calc"); len(tc) > 0 {
		col.TableCalc = attrs(tc[0])
	}

	for _, fa := range descendants(el, ".//formatted-alias") {
		col.FormattedAliases = append(col.FormattedAliases, models.FormattedAlias{
			Attributes: attrs(fa),
			Text:       text(fa),
		})
	}

	return col
}
