// Package output serializes extraction results.
package output

import (
	"encoding/json"
	"fmt"

	"github.com/ukaji3/twbstruct-go/pkg/twbstruct/models"
)

// Format is a serialization format.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatJSON, FormatYAML:
		return Format(s), nil
	default:
		return "", fmt.Errorf("invalid format: %s (must be json or yaml)", s)
	}
}

// Extension returns the file extension for the format, with the dot.
func (f Format) Extension() string {
	if f == FormatYAML {
		return ".yaml"
	}
	return ".json"
}

// Marshal serializes v in the given format. pretty only affects JSON.
func Marshal(v any, format Format, pretty bool) ([]byte, error) {
	switch format {
	case FormatYAML:
		return ToYAML(v)
	case FormatJSON, "":
		return ToJSON(v, pretty)
	default:
		return nil, fmt.Errorf("invalid format: %s", format)
	}
}

// ToJSON serializes v to JSON.
func ToJSON(v any, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}

// DataSourceToJSON serializes a single data source to JSON.
func DataSourceToJSON(ds *models.DataSource, pretty bool) ([]byte, error) {
	return ToJSON(ds, pretty)
}

// ChunksToJSON serializes a fragment manifest to JSON.
func ChunksToJSON(chunks []models.Chunk, pretty bool) ([]byte, error) {
	if chunks == nil {
		chunks = []models.Chunk{}
	}
	return ToJSON(chunks, pretty)
}
