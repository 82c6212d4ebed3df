package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sable/internal/corpus"
)

var fixturesCmd = &cobra.Command{
	Use:   "fixtures",
	Short: "List the built-in fixture units",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		for _, prog := range corpus.All() {
			gates := ""
			if prog.Features.ImplicitRegions {
				gates += " +implicit_regions"
			}
			if prog.Features.Placement {
				gates += " +placement"
			}
			fmt.Fprintf(out, "%-12s %2d items%s\n", prog.Name, len(prog.Unit.Items), gates)
		}
		return nil
	},
}
