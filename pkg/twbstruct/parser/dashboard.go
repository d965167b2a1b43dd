package parser

import (
	"github.com/beevik/etree"

	"github.com/ukaji3/twbstruct-go/pkg/twbstruct/models"
)

// ExtractDashboard extracts one dashboard element, including its zone tree and
// device layouts.
func ExtractDashboard(el *etree.Element) models.Dashboard {
	db := models.Dashboard{
		ID:            attr(el, "name"),
		LayoutOptions: extractLayoutOptions(el),
		Style:         extractStyleRules(el, false),
		Size:          extractSize(el),
		Datasources:   extractDataSourceRefs(el),
		Dependencies:  extractDependencies(el, false),
		Zones:         ExtractZones(el),
		DeviceLayouts: []models.DeviceLayout{},
		SimpleID:      extractSimpleID(el),
	}
	if db.ID != nil {
		db.Name = *db.ID
	}

	for _, dl := range children(child(el, "devicelayouts"), "devicelayout") {
		db.DeviceLayouts = append(db.DeviceLayouts, models.DeviceLayout{
			Name:          attr(dl, "name"),
			AutoGenerated: attr(dl, "auto-generated"),
			LayoutOptions: extractLayoutOptions(dl),
			Size:          extractSize(dl),
			Zones:         ExtractZones(dl),
		})
	}
	return db
}

func extractSize(el *etree.Element) map[string]string {
	return attrs(child(el, "size"))
}

// ExtractZones extracts the zone tree under el's zones block.
func ExtractZones(el *etree.Element) []models.Zone {
	zones := []models.Zone{}
	for _, z := range children(child(el, "zones"), "zone") {
		zones = append(zones, extractZone(z))
	}
	return zones
}

// extractZone extracts a zone and, recursively, its nested zones. Children stays
// nil for a leaf.
func extractZone(el *etree.Element) models.Zone {
	zone := models.Zone{
		ID:        attr(el, "id"),
		Name:      attr(el, "name"),
		Type:      attr(el, "type-v2"),
		X:         attr(el, "x"),
		Y:         attr(el, "y"),
		W:         attr(el, "w"),
		H:         attr(el, "h"),
		Param:     attr(el, "param"),
		Mode:      attr(el, "mode"),
		IsFixed:   attr(el, "is-fixed"),
		FixedSize: attr(el, "fixed-size"),
	}

	if style := child(el, "zone-style"); style != nil {
		zone.Style = []map[string]string{}
		for _, f := range children(style, "format") {
			zone.Style = append(zone.Style, attrs(f))
		}
	}

	if cache := child(el, "layout-cache"); cache != nil {
		zone.LayoutCache = attrs(cache)
	}

	for _, nested := range children(el, "zone") {
		zone.Children = append(zone.Children, extractZone(nested))
	}
	return zone
}
