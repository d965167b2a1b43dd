package twbstruct

import (
	"bytes"
	"fmt"

	"github.com/ukaji3/twbstruct-go/pkg/twbstruct/models"
	"github.com/ukaji3/twbstruct-go/pkg/twbstruct/structure"
)

// Survey reports the element layout of a workbook without building a tree.
// Sections with an element larger than threshold are flagged oversized;
// threshold <= 0 disables the flag.
func Survey(path string, threshold int64) (*models.Structure, error) {
	data, err := readInput(path)
	if err != nil {
		return nil, err
	}
	res, err := structure.Survey(bytes.NewReader(data), threshold)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	res.Structure.FileSizeBytes = int64(len(data))
	return &res.Structure, nil
}
