package twbstruct

import (
	"errors"
	"fmt"

	"github.com/ukaji3/twbstruct-go/pkg/twbstruct/parser"
	"github.com/ukaji3/twbstruct-go/pkg/twbstruct/partition"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrInvalidFormat indicates the input is not a well-formed workbook document.
var ErrInvalidFormat = errors.New("invalid workbook format")

// ErrNoWorkbookEntry indicates a packaged workbook holds no .twb document.
var ErrNoWorkbookEntry = parser.ErrNoWorkbookEntry

// ErrInvalidThreshold indicates a non-positive partition byte budget.
var ErrInvalidThreshold = partition.ErrInvalidThreshold

// PartitionError represents an error while splitting one section.
type PartitionError struct {
	Element string
	Path    string
	Err     error
}

func (e *PartitionError) Error() string {
	return fmt.Sprintf("partition error in element %q of %s: %v", e.Element, e.Path, e.Err)
}

func (e *PartitionError) Unwrap() error {
	return e.Err
}

// NewPartitionError creates a new PartitionError.
func NewPartitionError(element, path string, err error) *PartitionError {
	return &PartitionError{
		Element: element,
		Path:    path,
		Err:     err,
	}
}
