package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sable/internal/driver"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Drop the on-disk result cache",
	RunE: func(cmd *cobra.Command, args []string) error {
		cache, err := driver.OpenCache("sable")
		if err != nil {
			return err
		}
		if err := cache.DropAll(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "cache dropped")
		return nil
	},
}
