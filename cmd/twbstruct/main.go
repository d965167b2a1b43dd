// Package main provides the CLI entry point for twbstruct-go.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ukaji3/twbstruct-go/internal/config"
	"github.com/ukaji3/twbstruct-go/internal/logger"
	"github.com/ukaji3/twbstruct-go/pkg/twbstruct"
	"github.com/ukaji3/twbstruct-go/pkg/twbstruct/models"
	"github.com/ukaji3/twbstruct-go/pkg/twbstruct/output"
)

// app holds state shared by the commands of one invocation.
type app struct {
	cfgFile string
	envFile string

	outputPath     string
	datasourcesDir string
	xlsxPath       string

	cfg *config.Config
	log *zap.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "twbstruct [input.twb|input.twbx]",
		Short: "Extract structured data from Tableau workbooks",
		Long: `twbstruct-go extracts data sources, calculated fields with their inferred
base tables, worksheets and dashboards from Tableau workbooks and outputs JSON or YAML.`,
		Args:              cobra.ExactArgs(1),
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
		RunE: a.runExtract,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "Config file (default: ./"+config.DefaultConfigFile+" when present)")
	pf.StringVar(&a.envFile, "env-file", ".env", "Environment file loaded before TWBSTRUCT_ variables")
	pf.String("format", config.DefaultFormat, "Output format: json, yaml")
	pf.Bool("pretty", false, "Pretty-print JSON output")
	pf.Int64("threshold", config.DefaultThreshold, "Fragment byte budget")
	pf.String("log-level", config.DefaultLogLevel, "Log level: debug, info, warn, error")
	pf.String("log-file", "", "Also write JSON logs to this rotated file")
	pf.String("log-encoding", "console", "Console log encoding: console, json")

	f := rootCmd.Flags()
	f.StringVarP(&a.outputPath, "output", "o", "", "Output file path (default: stdout)")
	f.String("mode", config.DefaultMode, "Extraction mode: light, standard, verbose")
	f.Int("workers", config.DefaultWorkers, "Concurrent table inference workers")
	f.StringVar(&a.datasourcesDir, "datasources-dir", "", "Directory for per-data-source output files")
	f.StringVar(&a.xlsxPath, "xlsx", "", "Write the field catalog to this XLSX file")

	rootCmd.AddCommand(newSplitCmd(a), newSurveyCmd(a))
	return rootCmd
}

// setup loads configuration and builds the logger.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.cfgFile, a.envFile, cmd.Flags())
	if err != nil {
		return err
	}
	opts := []logger.Option{
		logger.WithLevel(cfg.LogLevel),
		logger.WithEncoding(cfg.LogEncoding),
		logger.WithWriter(cmd.ErrOrStderr()),
	}
	if cfg.LogFile != "" {
		opts = append(opts, logger.WithFile(cfg.LogFile))
	}
	log, err := logger.New(opts...)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = log
	return nil
}

func (a *app) runExtract(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	mode, err := twbstruct.ParseMode(a.cfg.Mode)
	if err != nil {
		return err
	}
	format, err := output.ParseFormat(a.cfg.Format)
	if err != nil {
		return err
	}

	wb, err := twbstruct.Extract(inputPath, twbstruct.Options{
		Mode:    mode,
		Workers: a.cfg.Workers,
		Logger:  a.log,
	})
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	data, err := output.Marshal(wb, format, a.cfg.Pretty)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}

	if a.outputPath != "" {
		if err := os.WriteFile(a.outputPath, data, 0o644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	} else if a.datasourcesDir == "" && a.xlsxPath == "" {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), string(data)); err != nil {
			return err
		}
	}

	if a.datasourcesDir != "" {
		if err := writeDataSourceFiles(wb, a.datasourcesDir, format, a.cfg.Pretty); err != nil {
			return fmt.Errorf("failed to write data source files: %w", err)
		}
	}

	if a.xlsxPath != "" {
		if err := output.WriteFieldCatalog(wb, a.xlsxPath); err != nil {
			return fmt.Errorf("failed to write field catalog: %w", err)
		}
	}

	return nil
}

func writeDataSourceFiles(wb *models.Workbook, dir string, format output.Format, pretty bool) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	used := make(map[string]int)
	for i := range wb.DataSources {
		ds := &wb.DataSources[i]
		data, err := output.Marshal(ds, format, pretty)
		if err != nil {
			return err
		}

		name := dataSourceFileName(ds, i)
		used[name]++
		if n := used[name]; n > 1 {
			name = fmt.Sprintf("%s_%d", name, n)
		}
		filename := filepath.Join(dir, name+format.Extension())
		if err := os.WriteFile(filename, data, 0o644); err != nil {
			return err
		}
	}

	return nil
}

// dataSourceFileName prefers the caption, then the id, then the position.
func dataSourceFileName(ds *models.DataSource, i int) string {
	name := ""
	if ds.Caption != nil {
		name = *ds.Caption
	} else if ds.ID != nil {
		name = *ds.ID
	}
	name = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		return r
	}, strings.TrimSpace(name))
	if name == "" {
		name = fmt.Sprintf("datasource%d", i+1)
	}
	return name
}
