// Package partition splits an oversized serialized XML element into
// well-formed fragment files that each stay within a byte budget.
//
// Fragments are cut on record boundaries only. A record is a direct child of
// the element being split; runs of records are re-wrapped in the ancestor tag
// chain, and a record that alone exceeds the budget is subdivided one level
// further down.
package partition

import (
	"encoding/xml"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ukaji3/twbstruct-go/pkg/twbstruct/models"
)

const (
	// DefaultThreshold is the default fragment byte budget.
	DefaultThreshold int64 = 500000
	// DefaultMaxDepth bounds how many levels a record may be subdivided.
	DefaultMaxDepth = 10
)

// prolog heads every fragment file.
const prolog = "<?xml version='1.0' encoding='utf-8' ?>\n"

// ErrInvalidThreshold indicates a non-positive byte budget.
var ErrInvalidThreshold = errors.New("threshold must be positive")

// Options configures a Partitioner.
type Options struct {
	// Threshold is the byte budget of one fragment file.
	Threshold int64
	// OutputDir receives the fragment files. Created when missing.
	OutputDir string
	// MaxDepth caps recursive subdivision. Zero means DefaultMaxDepth.
	MaxDepth int
	// Logger receives degenerate-fragment warnings. Nil disables logging.
	Logger *zap.Logger
}

// Partitioner writes bounded fragments of serialized elements.
type Partitioner struct {
	threshold int64
	outputDir string
	maxDepth  int
	log       *zap.Logger
}

// New validates opts and returns a Partitioner.
func New(opts Options) (*Partitioner, error) {
	if opts.Threshold <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidThreshold, opts.Threshold)
	}
	p := &Partitioner{
		threshold: opts.Threshold,
		outputDir: opts.OutputDir,
		maxDepth:  opts.MaxDepth,
		log:       opts.Logger,
	}
	if p.outputDir == "" {
		p.outputDir = "."
	}
	if p.maxDepth <= 0 {
		p.maxDepth = DefaultMaxDepth
	}
	if p.log == nil {
		p.log = zap.NewNop()
	}
	return p, nil
}

// Threshold returns the configured byte budget.
func (p *Partitioner) Threshold() int64 {
	return p.threshold
}

// wrapper is one ancestor of the records in a fragment.
type wrapper struct {
	name     string
	startTag []byte
}

// run is the state of one element being split into fragments.
type run struct {
	data   []byte
	chain  []wrapper
	stem   string
	depth  int
	parent *string
}

// SplitFile splits the first element of the file at path. Fragment names are
// derived from the element's tag.
func (p *Partitioner) SplitFile(path string) ([]models.Chunk, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	el, err := scanElement(data)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", path, err)
	}
	return p.SplitBytes(el.name, data)
}

// SplitBytes splits the first element of data into fragments named
// <stem>_001.xml, <stem>_002.xml and so on. Namespace declarations in decls are
// added to the element's start tag when it does not declare them itself.
//
// An element that already fits is written as a single fragment. An element
// without child records is written whole and flagged oversized.
func (p *Partitioner) SplitBytes(stem string, data []byte, decls ...xml.Attr) ([]models.Chunk, error) {
	el, err := scanElement(data)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(p.outputDir, 0o755); err != nil {
		return nil, err
	}

	root := wrapper{name: el.name, startTag: withNamespaces(el.startTag, decls)}
	whole := append(append([]byte(nil), root.startTag...), data[el.whole.start+len(el.startTag):el.whole.end]...)
	var chunks []models.Chunk

	if fragmentSize([]wrapper{}, [][]byte{whole}) <= p.threshold {
		chunk, err := p.write(stem+"_001", el.name, nil, [][]byte{whole}, 0, nil, false)
		if err != nil {
			return nil, err
		}
		return append(chunks, chunk), nil
	}

	if len(el.children) == 0 || el.mixed {
		chunk, err := p.degenerate(stem+"_001", el.name, nil, whole, 0, nil)
		if err != nil {
			return nil, err
		}
		return append(chunks, chunk), nil
	}

	r := run{data: data, chain: []wrapper{root}, stem: stem}
	if err := p.split(r, el, &chunks); err != nil {
		return nil, err
	}
	return chunks, nil
}

// split packs the children of el into maximal contiguous runs within budget.
// A child too large for any run is subdivided in place, so fragment order
// follows document order.
func (p *Partitioner) split(r run, el *element, chunks *[]models.Chunk) error {
	overhead := fragmentSize(r.chain, nil)
	var records [][]byte
	size := overhead
	index := 0

	flush := func() error {
		if len(records) == 0 {
			return nil
		}
		index++
		chunk, err := p.write(fmt.Sprintf("%s_%03d", r.stem, index), r.chain[0].name, r.chain, records, r.depth, r.parent, false)
		if err != nil {
			return err
		}
		*chunks = append(*chunks, chunk)
		records = nil
		size = overhead
		return nil
	}

	for _, child := range el.children {
		record := r.data[child.start:child.end]
		cost := int64(child.size() + 1)

		if overhead+cost > p.threshold {
			if err := flush(); err != nil {
				return err
			}
			index++
			if err := p.subdivide(r, record, fmt.Sprintf("%s_%03d", r.stem, index), chunks); err != nil {
				return err
			}
			continue
		}

		if size+cost > p.threshold {
			if err := flush(); err != nil {
				return err
			}
		}
		records = append(records, record)
		size += cost
	}
	return flush()
}

// subdivide splits one oversized record by its own children, or keeps it whole
// when it has no further record structure.
func (p *Partitioner) subdivide(r run, record []byte, stem string, chunks *[]models.Chunk) error {
	el, err := scanElement(record)
	if err != nil {
		return err
	}

	depth := r.depth + 1
	if len(el.children) == 0 || el.mixed || depth > p.maxDepth {
		chunk, err := p.degenerate(stem, r.chain[0].name, r.chain, record, r.depth, r.parent)
		if err != nil {
			return err
		}
		*chunks = append(*chunks, chunk)
		return nil
	}

	chain := append(append([]wrapper(nil), r.chain...), wrapper{name: el.name, startTag: el.startTag})
	parent := stem
	next := run{data: record, chain: chain, stem: stem, depth: depth, parent: &parent}
	return p.split(next, el, chunks)
}

func (p *Partitioner) degenerate(stem, element string, chain []wrapper, record []byte, depth int, parent *string) (models.Chunk, error) {
	chunk, err := p.write(stem, element, chain, [][]byte{record}, depth, parent, true)
	if err != nil {
		return chunk, err
	}
	p.log.Warn("record exceeds limit, kept whole",
		zap.String("path", chunk.Path),
		zap.Int64("size_bytes", chunk.SizeBytes),
		zap.Int64("threshold", p.threshold),
	)
	return chunk, nil
}

func (p *Partitioner) write(name, element string, chain []wrapper, records [][]byte, depth int, parent *string, oversized bool) (models.Chunk, error) {
	content := render(chain, records)
	path := filepath.Join(p.outputDir, name+".xml")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return models.Chunk{}, err
	}
	p.log.Debug("fragment written",
		zap.String("path", path),
		zap.Int("records", len(records)),
		zap.Int("depth", depth),
	)
	return models.Chunk{
		ID:        uuid.NewSHA1(uuid.NameSpaceURL, []byte(path)).String(),
		Path:      path,
		Element:   element,
		SizeBytes: int64(len(content)),
		Records:   len(records),
		Depth:     depth,
		Parent:    parent,
		Oversized: oversized,
	}, nil
}

// render lays out a fragment: prolog, ancestor start tags, one record per
// line, then ancestor end tags innermost first.
func render(chain []wrapper, records [][]byte) []byte {
	out := make([]byte, 0, fragmentSize(chain, records))
	out = append(out, prolog...)
	for _, w := range chain {
		out = append(out, w.startTag...)
		out = append(out, '\n')
	}
	for _, rec := range records {
		out = append(out, rec...)
		out = append(out, '\n')
	}
	for i := len(chain) - 1; i >= 0; i-- {
		out = append(out, "</"+chain[i].name+">\n"...)
	}
	return out
}

// fragmentSize is the exact length render produces.
func fragmentSize(chain []wrapper, records [][]byte) int64 {
	n := int64(len(prolog))
	for _, w := range chain {
		n += int64(len(w.startTag)+1) + int64(len(w.name)+4)
	}
	for _, rec := range records {
		n += int64(len(rec) + 1)
	}
	return n
}
