package parser

import (
	"strings"

	"github.com/beevik/etree"

	"github.com/ukaji3/twbstruct-go/pkg/twbstruct/models"
)

// ParametersDataSource is the name prefix of the pseudo data source holding parameters.
const ParametersDataSource = "Parameters"

// ExtractDataSource extracts a data source element: connection, metadata
// records, column records and their pairing. Table inference is not applied.
func ExtractDataSource(el *etree.Element) models.DataSource {
	metadata := ExtractMetadataRecords(el)
	columns := ExtractColumnRecords(el)

	return models.DataSource{
		ID:              attr(el, "name"),
		Caption:         attr(el, "caption"),
		Inline:          attr(el, "inline"),
		Version:         attr(el, "version"),
		Connection:      ExtractConnection(child(el, "connection")),
		MetadataRecords: metadata,
		ColumnRecords:   columns,
		PairedFields:    PairFields(metadata, columns),
	}
}

// DataSourceSelection is the outcome of SelectDataSources.
type DataSourceSelection struct {
	// DataSources are the extracted data sources, in document order.
	DataSources []models.DataSource
	// Parameters are the column records of the Parameters data source.
	Parameters []models.ColumnRecord
	// Skipped lists the names of data sources dropped as duplicates or empty.
	Skipped []string
}

// SelectDataSources extracts the workbook's data sources. It reads the direct
// children of the datasources block, or every datasource descendant when the
// block is missing. Parameters are split out, repeated names are skipped, and
// data sources with no records and no connection are dropped.
func SelectDataSources(root *etree.Element) DataSourceSelection {
	sel := DataSourceSelection{
		DataSources: []models.DataSource{},
		Parameters:  []models.ColumnRecord{},
	}

	var elems []*etree.Element
	if block := child(root, "datasources"); block != nil {
		elems = children(block, "datasource")
	} else {
		elems = descendants(root, ".//datasource")
	}

	seen := make(map[string]bool)
	for _, el := range elems {
		name := el.SelectAttrValue("name", "")
		if strings.HasPrefix(name, ParametersDataSource) {
			sel.Parameters = append(sel.Parameters, ExtractColumnRecords(el)...)
			continue
		}
		if seen[name] {
			sel.Skipped = append(sel.Skipped, name)
			continue
		}
		seen[name] = true

		ds := ExtractDataSource(el)
		if len(ds.MetadataRecords) == 0 && len(ds.ColumnRecords) == 0 && ds.Connection.IsEmpty() {
			sel.Skipped = append(sel.Skipped, name)
			continue
		}
		sel.DataSources = append(sel.DataSources, ds)
	}
	return sel
}

// ExtractWorksheets extracts every named worksheet under the worksheets block.
func ExtractWorksheets(root *etree.Element) []models.Worksheet {
	result := []models.Worksheet{}
	for _, el := range children(child(root, "worksheets"), "worksheet") {
		if ws := ExtractWorksheet(el); ws.Name != "" {
			result = append(result, ws)
		}
	}
	return result
}

// ExtractDashboards extracts every named dashboard under the dashboards block.
func ExtractDashboards(root *etree.Element) []models.Dashboard {
	result := []models.Dashboard{}
	for _, el := range children(child(root, "dashboards"), "dashboard") {
		if db := ExtractDashboard(el); db.Name != "" {
			result = append(result, db)
		}
	}
	return result
}
