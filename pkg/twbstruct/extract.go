package twbstruct

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/beevik/etree"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ukaji3/twbstruct-go/pkg/twbstruct/inference"
	"github.com/ukaji3/twbstruct-go/pkg/twbstruct/models"
	"github.com/ukaji3/twbstruct-go/pkg/twbstruct/parser"
	"github.com/ukaji3/twbstruct-go/pkg/twbstruct/structure"
)

// Extract extracts the structure of a .twb workbook or a packaged .twbx.
// A malformed document fails with ErrInvalidFormat; missing optional
// sections leave the corresponding fields empty.
func Extract(path string, opts Options) (*models.Workbook, error) {
	log := opts.logger().With(zap.String("file", filepath.Base(path)))

	data, err := readInput(path)
	if err != nil {
		return nil, err
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("%w: no root element", ErrInvalidFormat)
	}

	wb := &models.Workbook{
		BookName:   filepath.Base(path),
		Worksheets: []models.Worksheet{},
		Dashboards: []models.Dashboard{},
	}
	if a := root.SelectAttr("version"); a != nil {
		v := a.Value
		wb.Version = &v
	}

	sel := parser.SelectDataSources(root)
	for _, name := range sel.Skipped {
		log.Warn("data source skipped", zap.String("datasource", name))
	}

	// Each goroutine owns one slot; the registry of a data source is never shared.
	g := new(errgroup.Group)
	g.SetLimit(opts.workers())
	for i := range sel.DataSources {
		g.Go(func() error {
			ds := &sel.DataSources[i]
			ds.PairedFields = inference.Annotate(ds.PairedFields)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	wb.DataSources = sel.DataSources
	wb.Parameters = sel.Parameters
	log.Debug("data sources extracted",
		zap.Int("datasources", len(wb.DataSources)),
		zap.Int("parameters", len(wb.Parameters)),
	)

	if opts.ShouldIncludeWorksheets() {
		wb.Worksheets = parser.ExtractWorksheets(root)
	}
	if opts.ShouldIncludeDashboards() {
		wb.Dashboards = parser.ExtractDashboards(root)
	}

	if opts.ShouldIncludeStructure() {
		res, err := structure.Survey(bytes.NewReader(data), 0)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
		}
		res.Structure.FileSizeBytes = int64(len(data))
		wb.Structure = &res.Structure
	}

	return wb, nil
}

// readInput returns the workbook document bytes of a .twb or .twbx file.
func readInput(path string) ([]byte, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}
	data, err := parser.ReadWorkbook(path)
	if err != nil {
		if errors.Is(err, ErrNoWorkbookEntry) {
			return nil, err
		}
		if parser.IsPackaged(path) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
		}
		return nil, err
	}
	return data, nil
}
