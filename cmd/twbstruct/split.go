package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ukaji3/twbstruct-go/internal/config"
	"github.com/ukaji3/twbstruct-go/pkg/twbstruct"
	"github.com/ukaji3/twbstruct-go/pkg/twbstruct/models"
	"github.com/ukaji3/twbstruct-go/pkg/twbstruct/output"
	"github.com/ukaji3/twbstruct-go/pkg/twbstruct/partition"
)

func newSplitCmd(a *app) *cobra.Command {
	var element, asTable bool

	cmd := &cobra.Command{
		Use:   "split [input]",
		Short: "Split oversized sections into bounded XML fragments",
		Long: `split writes every first-level workbook section larger than the threshold as
well-formed fragment files no larger than the threshold, and prints the fragment
manifest. With --element the input is a single serialized element instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var chunks []models.Chunk
			var err error
			if element {
				chunks, err = a.splitElement(args[0])
			} else {
				chunks, err = twbstruct.Partition(args[0], twbstruct.PartitionOptions{
					Threshold: a.cfg.Threshold,
					OutputDir: a.cfg.OutDir,
					MaxDepth:  a.cfg.MaxDepth,
					Logger:    a.log,
				})
			}
			if err != nil {
				return fmt.Errorf("split failed: %w", err)
			}
			if asTable {
				renderChunks(cmd.OutOrStdout(), chunks)
				return nil
			}
			return a.print(cmd, chunks)
		},
	}

	cmd.Flags().String("out-dir", config.DefaultOutDir, "Directory for fragment files")
	cmd.Flags().Int("max-depth", config.DefaultMaxDepth, "Maximum subdivision depth")
	cmd.Flags().BoolVar(&element, "element", false, "Treat the input as one serialized element")
	cmd.Flags().BoolVar(&asTable, "table", false, "Print the manifest as a table")
	return cmd
}

func (a *app) splitElement(path string) ([]models.Chunk, error) {
	p, err := partition.New(partition.Options{
		Threshold: a.cfg.Threshold,
		OutputDir: a.cfg.OutDir,
		MaxDepth:  a.cfg.MaxDepth,
		Logger:    a.log,
	})
	if err != nil {
		return nil, err
	}
	return p.SplitFile(path)
}

func (a *app) print(cmd *cobra.Command, v any) error {
	format, err := output.ParseFormat(a.cfg.Format)
	if err != nil {
		return err
	}
	if chunks, ok := v.([]models.Chunk); ok && chunks == nil {
		v = []models.Chunk{}
	}
	data, err := output.Marshal(v, format, a.cfg.Pretty)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}
