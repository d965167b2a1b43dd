package output

import (
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/twbstruct-go/pkg/twbstruct/models"
)

// Sheet names of the field catalog workbook.
const (
	DataSourcesSheet = "Data Sources"
	FieldsSheet      = "Fields"
	ParametersSheet  = "Parameters"
)

var (
	dataSourceHeader = []any{"ID", "Caption", "Connection", "Relation", "Metadata Records", "Column Records", "Fields", "Calculated Fields"}
	fieldHeader      = []any{"Data Source", "Field", "Caption", "Datatype", "Role", "Calculated", "Parent Table", "Formula", "Primary Table", "Ref Tables", "Referenced Fields"}
	parameterHeader  = []any{"Name", "Caption", "Datatype", "Value", "Formula"}
)

// WriteFieldCatalog exports the field catalog of wb to an XLSX file at path:
// one row per data source, one row per paired field, one row per parameter.
func WriteFieldCatalog(wb *models.Workbook, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", DataSourcesSheet); err != nil {
		return err
	}
	if _, err := f.NewSheet(FieldsSheet); err != nil {
		return err
	}
	if _, err := f.NewSheet(ParametersSheet); err != nil {
		return err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	dsRows := make([][]any, 0, len(wb.DataSources))
	var fieldRows [][]any
	for _, ds := range wb.DataSources {
		dsName := deref(ds.Caption)
		if dsName == "" {
			dsName = deref(ds.ID)
		}
		dsRows = append(dsRows, []any{
			deref(ds.ID),
			deref(ds.Caption),
			deref(ds.Connection.Class),
			relationKind(ds.Connection.Relation),
			len(ds.MetadataRecords),
			len(ds.ColumnRecords),
			len(ds.PairedFields),
			len(ds.CalculatedFields()),
		})
		for _, pf := range ds.PairedFields {
			fieldRows = append(fieldRows, fieldRow(dsName, pf))
		}
	}

	paramRows := make([][]any, 0, len(wb.Parameters))
	for _, col := range wb.Parameters {
		formula := ""
		if col.Calculation != nil {
			formula = deref(col.Calculation.Formula)
		}
		paramRows = append(paramRows, []any{
			col.Name(),
			col.Attributes["caption"],
			col.Attributes["datatype"],
			col.Attributes["value"],
			formula,
		})
	}

	for _, sheet := range []struct {
		name   string
		header []any
		rows   [][]any
	}{
		{DataSourcesSheet, dataSourceHeader, dsRows},
		{FieldsSheet, fieldHeader, fieldRows},
		{ParametersSheet, parameterHeader, paramRows},
	} {
		if err := writeTable(f, sheet.name, sheet.header, sheet.rows, bold); err != nil {
			return err
		}
	}

	return f.SaveAs(path)
}

func writeTable(f *excelize.File, sheet string, header []any, rows [][]any, headerStyle int) error {
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return err
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func fieldRow(dsName string, pf models.PairedField) []any {
	var caption, datatype, role, parent string
	if pf.Column != nil {
		caption = pf.Column.Attributes["caption"]
		datatype = pf.Column.Attributes["datatype"]
		role = pf.Column.Attributes["role"]
	}
	if pf.Metadata != nil {
		parent = deref(pf.Metadata.ParentName)
		if datatype == "" {
			datatype = deref(pf.Metadata.LocalType)
		}
	}

	var primary, refTables, refs string
	if pf.Inference != nil {
		primary = deref(pf.Inference.PrimaryTable)
		refTables = deref(pf.Inference.RefTables)
		refs = strings.Join(pf.Inference.ReferencedFields, ", ")
	}

	return []any{dsName, pf.FieldName, caption, datatype, role, pf.IsCalculated(), parent, pf.Formula(), primary, refTables, refs}
}

func relationKind(r *models.Relation) string {
	if r == nil {
		return ""
	}
	return string(r.Kind)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
