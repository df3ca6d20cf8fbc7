package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"poll-engine/internal/collaborators"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or upgrade the database schema",
	Long:  "Create or upgrade the database schema. Running it twice is a no-op.",
	Args:  validateNoPosArgsFn,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app) error {
			fmt.Fprintf(cmd.OutOrStdout(), "Schema is up to date (%s).\n", a.cfg.Database.Type)
			return nil
		})
	},
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Report which collaborators are installed",
	Long:  "Connect to the configured store, install it as the collaborator set and report every slot",
	Args:  validateNoPosArgsFn,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app) error {
			report := a.services.Diagnostics()
			missing := 0
			for _, slot := range collaborators.Slots {
				status := "ok"
				if !report[slot] {
					status = "missing"
					missing++
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-20s %s\n", slot, status)
			}
			if missing > 0 {
				return fmt.Errorf("%d collaborators are not implemented", missing)
			}
			return nil
		})
	},
}
