package models

// Dashboard represents one dashboard and its layout tree.
type Dashboard struct {
	ID            *string           `json:"id"`
	Name          string            `json:"name"`
	LayoutOptions LayoutOptions     `json:"layout_options"`
	Style         []StyleRule       `json:"style"`
	Size          map[string]string `json:"size"`
	Datasources   []DataSourceRef   `json:"datasources"`
	Dependencies  []Dependency      `json:"datasource_dependencies"`
	Zones         []Zone            `json:"zones"`
	DeviceLayouts []DeviceLayout    `json:"device_layouts"`
	SimpleID      *SimpleID         `json:"simple_id"`
}

// Zone is a rectangular layout region. Children is nil for a leaf zone and
// non-empty otherwise.
type Zone struct {
	ID        *string `json:"id"`
	Name      *string `json:"name"`
	Type      *string `json:"type"`
	X         *string `json:"x"`
	Y         *string `json:"y"`
	W         *string `json:"w"`
	H         *string `json:"h"`
	Param     *string `json:"param"`
	Mode      *string `json:"mode"`
	IsFixed   *string `json:"is_fixed"`
	FixedSize *string `json:"fixed_size"`
	// Style lists the zone-style formats.
	Style []map[string]string `json:"style,omitempty"`
	// LayoutCache holds the layout-cache attributes.
	LayoutCache map[string]string `json:"layout_cache,omitempty"`
	Children    []Zone            `json:"children,omitempty"`
}

// IsLeaf reports whether the zone has no nested zones.
func (z Zone) IsLeaf() bool {
	return z.Children == nil
}

// DeviceLayout is a per-device layout profile of a dashboard.
type DeviceLayout struct {
	Name          *string           `json:"name"`
	AutoGenerated *string           `json:"auto_generated"`
	LayoutOptions LayoutOptions     `json:"layout_options"`
	Size          map[string]string `json:"size"`
	Zones         []Zone            `json:"zones"`
}
