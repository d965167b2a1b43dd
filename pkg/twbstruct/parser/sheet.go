package parser

import (
	"github.com/beevik/etree"

	"github.com/ukaji3/twbstruct-go/pkg/twbstruct/models"
)

// Helpers shared by the worksheet and dashboard extractors.

func extractLayoutOptions(el *etree.Element) models.LayoutOptions {
	layout := child(el, "layout-options")
	if layout == nil {
		return models.LayoutOptions{}
	}
	return models.LayoutOptions{Title: formattedText(child(layout, "title"))}
}

func extractSimpleID(el *etree.Element) *models.SimpleID {
	sid := child(el, "simple-id")
	if sid == nil {
		return nil
	}
	return &models.SimpleID{UUID: attr(sid, "uuid")}
}

// extractStyleRules reads style/style-rule/format. Formatted text inside a
// format is read only when withText is set.
func extractStyleRules(el *etree.Element, withText bool) []models.StyleRule {
	rules := []models.StyleRule{}
	for _, rule := range children(child(el, "style"), "style-rule") {
		sr := models.StyleRule{
			Element: attr(rule, "element"),
			Formats: []models.Format{},
		}
		for _, f := range children(rule, "format") {
			format := models.Format{Attributes: attrs(f)}
			if withText {
				format.FormattedText = formattedText(f)
			}
			sr.Formats = append(sr.Formats, format)
		}
		rules = append(rules, sr)
	}
	return rules
}

func extractDataSourceRefs(el *etree.Element) []models.DataSourceRef {
	refs := []models.DataSourceRef{}
	for _, ds := range children(child(el, "datasources"), "datasource") {
		refs = append(refs, models.DataSourceRef{
			Name:    attr(ds, "name"),
			Caption: attr(ds, "caption"),
		})
	}
	return refs
}

// extractDependencies reads every datasource-dependencies block directly under el.
// Column calculations are read only when withCalc is set.
func extractDependencies(el *etree.Element, withCalc bool) []models.Dependency {
	deps := []models.Dependency{}
	for _, block := range children(el, "datasource-dependencies") {
		dsID := attr(block, "datasource")

		for _, col := range children(block, "column") {
			dep := models.Dependency{
				Kind:       "column",
				Datasource: dsID,
				Name:       attr(col, "name"),
				Caption:    attr(col, "caption"),
				Datatype:   attr(col, "datatype"),
				Role:       attr(col, "role"),
				Type:       attr(col, "type"),
			}
			if withCalc {
				if calc := child(col, "calculation"); calc != nil {
					dep.Calculation = attrs(calc)
				}
			}
			deps = append(deps, dep)
		}

		for _, inst := range children(block, "column-instance") {
			deps = append(deps, models.Dependency{
				Kind:       "column-instance",
				Datasource: dsID,
				Name:       attr(inst, "name"),
				Column:     attr(inst, "column"),
				Derivation: attr(inst, "derivation"),
				Pivot:      attr(inst, "pivot"),
				Type:       attr(inst, "type"),
			})
		}
	}
	return deps
}
