// Package twbstruct provides structural extraction of Tableau workbooks.
package twbstruct

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/ukaji3/twbstruct-go/pkg/twbstruct/partition"
)

// Mode represents the extraction mode.
type Mode string

const (
	// ModeLight extracts data sources and table inference only.
	ModeLight Mode = "light"
	// ModeStandard adds worksheets and dashboards, including device layouts.
	ModeStandard Mode = "standard"
	// ModeVerbose adds the structural survey of the file.
	ModeVerbose Mode = "verbose"
)

// DefaultWorkers bounds concurrent per-data-source inference.
const DefaultWorkers = 4

// ParseMode validates a mode name.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeLight, ModeStandard, ModeVerbose:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("invalid mode: %s (must be light, standard, or verbose)", s)
	}
}

// Options configures extraction behavior.
type Options struct {
	// Mode specifies the extraction mode (light, standard, verbose).
	Mode Mode
	// IncludeWorksheets specifies whether to extract worksheets.
	// If nil, defaults to false for light mode, true otherwise.
	IncludeWorksheets *bool
	// IncludeDashboards specifies whether to extract dashboards.
	// If nil, defaults to false for light mode, true otherwise.
	IncludeDashboards *bool
	// IncludeStructure specifies whether to attach the structural survey.
	// If nil, defaults to true for verbose mode, false otherwise.
	IncludeStructure *bool
	// Workers bounds concurrent table inference. Zero means DefaultWorkers.
	Workers int
	// Logger receives progress and warnings. Nil disables logging.
	Logger *zap.Logger
}

// DefaultOptions returns default extraction options.
func DefaultOptions() Options {
	return Options{
		Mode: ModeStandard,
	}
}

// ShouldIncludeWorksheets returns whether to extract worksheets.
func (o Options) ShouldIncludeWorksheets() bool {
	if o.IncludeWorksheets != nil {
		return *o.IncludeWorksheets
	}
	return o.Mode != ModeLight
}

// ShouldIncludeDashboards returns whether to extract dashboards.
func (o Options) ShouldIncludeDashboards() bool {
	if o.IncludeDashboards != nil {
		return *o.IncludeDashboards
	}
	return o.Mode != ModeLight
}

// ShouldIncludeStructure returns whether to attach the structural survey.
func (o Options) ShouldIncludeStructure() bool {
	if o.IncludeStructure != nil {
		return *o.IncludeStructure
	}
	return o.Mode == ModeVerbose
}

func (o Options) workers() int {
	if o.Workers > 0 {
		return o.Workers
	}
	return DefaultWorkers
}

func (o Options) logger() *zap.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return zap.NewNop()
}

// PartitionOptions configures Partition.
type PartitionOptions struct {
	// Threshold is the fragment byte budget. Zero means partition.DefaultThreshold.
	Threshold int64
	// OutputDir receives the fragment files.
	OutputDir string
	// MaxDepth caps recursive subdivision. Zero means partition.DefaultMaxDepth.
	MaxDepth int
	// Logger receives progress and degenerate-fragment warnings.
	Logger *zap.Logger
}

func (o PartitionOptions) threshold() int64 {
	if o.Threshold == 0 {
		return partition.DefaultThreshold
	}
	return o.Threshold
}

func (o PartitionOptions) logger() *zap.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return zap.NewNop()
}
