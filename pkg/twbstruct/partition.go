package twbstruct

import (
	"bytes"
	"fmt"

	"go.uber.org/zap"

	"github.com/ukaji3/twbstruct-go/pkg/twbstruct/models"
	"github.com/ukaji3/twbstruct-go/pkg/twbstruct/partition"
	"github.com/ukaji3/twbstruct-go/pkg/twbstruct/structure"
)

// Partition splits every first-level section of the workbook that is larger
// than the threshold into bounded fragment files. A streaming survey locates
// the sections first, so no document tree is built.
func Partition(path string, opts PartitionOptions) ([]models.Chunk, error) {
	log := opts.logger()
	threshold := opts.threshold()

	p, err := partition.New(partition.Options{
		Threshold: threshold,
		OutputDir: opts.OutputDir,
		MaxDepth:  opts.MaxDepth,
		Logger:    log,
	})
	if err != nil {
		return nil, err
	}

	data, err := readInput(path)
	if err != nil {
		return nil, err
	}
	res, err := structure.Survey(bytes.NewReader(data), threshold)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	decls, err := partition.Namespaces(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}

	occurrences := make(map[string]int)
	for _, span := range res.Spans {
		occurrences[span.Name]++
	}

	chunks := []models.Chunk{}
	seen := make(map[string]int)
	for _, span := range res.Spans {
		seen[span.Name]++
		if span.Size() <= threshold {
			continue
		}
		stem := span.Name
		if occurrences[span.Name] > 1 {
			stem = fmt.Sprintf("%s-%d", span.Name, seen[span.Name])
		}

		log.Info("splitting section",
			zap.String("element", span.Name),
			zap.Int64("size_bytes", span.Size()),
		)
		got, err := p.SplitBytes(stem, data[span.Start:span.End], decls...)
		if err != nil {
			return nil, NewPartitionError(span.Name, path, err)
		}
		chunks = append(chunks, got...)
	}

	if len(chunks) == 0 {
		log.Info("no section exceeds threshold", zap.Int64("threshold", threshold))
	}
	return chunks, nil
}
