package parser

import (
	"github.com/beevik/etree"

	"github.com/ukaji3/twbstruct-go/pkg/twbstruct/models"
)

// ExtractWorksheet extracts one worksheet element.
func ExtractWorksheet(el *etree.Element) models.Worksheet {
	ws := models.Worksheet{
		ID:            attr(el, "name"),
		LayoutOptions: extractLayoutOptions(el),
		Table:         extractWorksheetTable(child(el, "table")),
		SimpleID:      extractSimpleID(el),
	}
	if ws.ID != nil {
		ws.Name = *ws.ID
	}
	return ws
}

func extractWorksheetTable(el *etree.Element) models.WorksheetTable {
	return models.WorksheetTable{
		View:  extractView(child(el, "view")),
		Style: extractStyleRules(el, true),
		Panes: extractPanes(el),
		Rows:  childText(el, "rows"),
		Cols:  childText(el, "cols"),
	}
}

func extractView(el *etree.Element) models.View {
	view := models.View{
		Datasources:  extractDataSourceRefs(el),
		Dependencies: extractDependencies(el, true),
		Filters:      []models.Filter{},
		Slices:       []string{},
		Aggregation:  attr(child(el, "aggregation"), "value"),
	}

	for _, f := range children(el, "filter") {
		view.Filters = append(view.Filters, models.Filter{
			Class:       attr(f, "class"),
			Column:      attr(f, "column"),
			GroupFilter: extractGroupFilter(child(f, "groupfilter")),
		})
	}

	for _, col := range children(child(el, "slices"), "column") {
		if t := text(col); t != nil {
			view.Slices = append(view.Slices, *t)
		}
	}
	return view
}

func extractGroupFilter(el *etree.Element) *models.GroupFilter {
	if el == nil {
		return nil
	}
	gf := &models.GroupFilter{
		Function: attr(el, "function"),
		Members:  []models.GroupFilterMember{},
	}
	for _, m := range children(el, "groupfilter") {
		gf.Members = append(gf.Members, models.GroupFilterMember{
			Function: attr(m, "function"),
			Level:    attr(m, "level"),
			Member:   attr(m, "member"),
		})
	}
	return gf
}

func extractPanes(table *etree.Element) []models.Pane {
	panes := []models.Pane{}
	for _, p := range children(child(table, "panes"), "pane") {
		pane := models.Pane{
			ID:        attr(p, "id"),
			Breakdown: attr(child(child(p, "view"), "breakdown"), "value"),
			Encodings: []models.Encoding{},
			Style:     extractStyleRules(p, false),
		}

		if mark := child(p, "mark"); mark != nil {
			pane.Mark.Class = attr(mark, "class")
			if sizing := child(p, "mark-sizing"); sizing != nil {
				pane.Mark.Sizing = attrs(sizing)
			}
		}

		if enc := child(p, "encodings"); enc != nil {
			for _, e := range enc.ChildElements() {
				pane.Encodings = append(pane.Encodings, models.Encoding{
					Type:   e.Tag,
					Column: attr(e, "column"),
				})
			}
		}
		panes = append(panes, pane)
	}
	return panes
}
