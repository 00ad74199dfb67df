package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"atlas/internal/charts"
)

var chartsCmd = &cobra.Command{
	Use:   "charts",
	Short: "List the available charts",
	Run: func(cmd *cobra.Command, args []string) {
		for _, s := range charts.All() {
			fmt.Fprintf(cmd.OutOrStdout(), "%-12s %-20s %s\n", s.ID, s.Title, s.Description)
		}
	},
}

func init() {
	rootCmd.AddCommand(chartsCmd)
}
