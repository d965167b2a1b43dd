package models

// Chunk describes one fragment file written by the partitioner.
type Chunk struct {
	// ID is a deterministic identifier derived from the fragment path.
	ID string `json:"id"`
	// Path is the fragment file path.
	Path string `json:"path"`
	// Element is the root tag name of the fragment (the split element's tag).
	Element string `json:"element"`
	// SizeBytes is the fragment file size.
	SizeBytes int64 `json:"size_bytes"`
	// Records is the number of records carried by the fragment.
	Records int `json:"records"`
	// Depth is 0 for runs of the element's direct children, +1 per subdivision.
	Depth int `json:"depth"`
	// Parent is the stem of the fragment that was subdivided to produce this one.
	Parent *string `json:"parent,omitempty"`
	// Oversized marks a record that exceeds the limit and was kept whole.
	Oversized bool `json:"oversized,omitempty"`
}
