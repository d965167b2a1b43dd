package models

// Structure is the result of a streaming structural survey.
type Structure struct {
	// FileSizeBytes is the size of the surveyed document.
	FileSizeBytes int64 `json:"file_size_bytes"`
	// RootTag is the document element's tag.
	RootTag string `json:"root_tag"`
	// ElementCounts maps each tag to its number of occurrences.
	ElementCounts map[string]int `json:"element_counts"`
	// Hierarchy maps each tag to the distinct tags seen as its parent.
	Hierarchy map[string][]string `json:"element_hierarchy"`
	// Sections lists the first-level children of the root, grouped by tag in
	// order of first appearance.
	Sections []Section `json:"sections"`
}

// Section summarizes the first-level elements sharing one tag.
type Section struct {
	Name string `json:"name"`
	// Count is the number of first-level elements with this tag.
	Count int `json:"count"`
	// SizeBytes is the total serialized size of those elements.
	SizeBytes int64 `json:"size_bytes"`
	// Oversized is set when any one element exceeds the survey threshold.
	Oversized bool `json:"oversized"`
}
