package models

// LayoutOptions holds the layout-options block of a worksheet, dashboard or device layout.
type LayoutOptions struct {
	// Title is the plain title text, nil when no formatted title exists.
	Title *string `json:"title,omitempty"`
}

// SimpleID is the simple-id element.
type SimpleID struct {
	UUID *string `json:"uuid"`
}

// StyleRule is one style-rule element.
type StyleRule struct {
	Element *string  `json:"element"`
	Formats []Format `json:"formats"`
}

// Format is one format element of a style rule.
type Format struct {
	Attributes map[string]string `json:"attributes"`
	// FormattedText is set when the format carries formatted text.
	FormattedText *string `json:"formatted_text,omitempty"`
}

// DataSourceRef names a data source used by a view or dashboard.
type DataSourceRef struct {
	Name    *string `json:"name"`
	Caption *string `json:"caption"`
}

// Dependency is one column or column-instance of a datasource-dependencies block.
type Dependency struct {
	// Kind is "column" or "column-instance".
	Kind        string            `json:"kind"`
	Datasource  *string           `json:"datasource"`
	Name        *string           `json:"name"`
	Caption     *string           `json:"caption,omitempty"`
	Datatype    *string           `json:"datatype,omitempty"`
	Role        *string           `json:"role,omitempty"`
	Type        *string           `json:"type"`
	Column      *string           `json:"column,omitempty"`
	Derivation  *string           `json:"derivation,omitempty"`
	Pivot       *string           `json:"pivot,omitempty"`
	Calculation map[string]string `json:"calculation,omitempty"`
}

// Worksheet represents one worksheet.
type Worksheet struct {
	ID            *string        `json:"id"`
	Name          string         `json:"name"`
	LayoutOptions LayoutOptions  `json:"layout_options"`
	Table         WorksheetTable `json:"table"`
	SimpleID      *SimpleID      `json:"simple_id"`
}

// WorksheetTable is the table substructure of a worksheet.
type WorksheetTable struct {
	View  View        `json:"view"`
	Style []StyleRule `json:"style"`
	Panes []Pane      `json:"panes"`
	// Rows is the rows shelf expression.
	Rows *string `json:"rows"`
	// Cols is the columns shelf expression.
	Cols *string `json:"cols"`
}

// View is the view block of a worksheet table.
type View struct {
	Datasources  []DataSourceRef `json:"datasources"`
	Dependencies []Dependency    `json:"datasource_dependencies"`
	Filters      []Filter        `json:"filters"`
	Slices       []string        `json:"slices"`
	Aggregation  *string         `json:"aggregation"`
}

// Filter is one filter of a view.
type Filter struct {
	Class       *string      `json:"class"`
	Column      *string      `json:"column"`
	GroupFilter *GroupFilter `json:"groupfilter"`
}

// GroupFilter is the top-level groupfilter of a filter.
type GroupFilter struct {
	Function *string             `json:"function"`
	Members  []GroupFilterMember `json:"members"`
}

// GroupFilterMember is a nested groupfilter.
type GroupFilterMember struct {
	Function *string `json:"function"`
	Level    *string `json:"level"`
	Member   *string `json:"member"`
}

// Pane is one pane of a worksheet table.
type Pane struct {
	ID        *string     `json:"id"`
	Breakdown *string     `json:"breakdown"`
	Mark      Mark        `json:"mark"`
	Encodings []Encoding  `json:"encodings"`
	Style     []StyleRule `json:"style"`
}

// Mark is the mark block of a pane.
type Mark struct {
	Class  *string           `json:"class"`
	Sizing map[string]string `json:"sizing,omitempty"`
}

// Encoding is one child of a pane's encodings block.
type Encoding struct {
	// Type is the encoding tag (color, size, text, ...).
	Type   string  `json:"type"`
	Column *string `json:"column"`
}
