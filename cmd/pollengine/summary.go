package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary <voting-id>",
	Short: "Print the partial or final summary of a voting as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app) error {
			summary, err := a.services.Summary.Summarize(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("Unable to summarize voting %s : %w", args[0], err)
			}
			return writeJSON(cmd.OutOrStdout(), summary)
		})
	},
}
