package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ukaji3/twbstruct-go/pkg/twbstruct"
)

func newSurveyCmd(a *app) *cobra.Command {
	var asTable bool

	cmd := &cobra.Command{
		Use:   "survey [input]",
		Short: "Report element counts, hierarchy and section sizes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := twbstruct.Survey(args[0], a.cfg.Threshold)
			if err != nil {
				return fmt.Errorf("survey failed: %w", err)
			}
			if asTable {
				renderSections(cmd.OutOrStdout(), s)
				return nil
			}
			return a.print(cmd, s)
		},
	}

	cmd.Flags().BoolVar(&asTable, "table", false, "Print the sections as a table")
	return cmd
}
