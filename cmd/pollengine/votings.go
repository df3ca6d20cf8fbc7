package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"poll-engine/internal/registrar"
)

var (
	votingFileName string
	listLimit      int
	listOffset     int
)

func init() {
	votingsCreateCmd.Flags().StringVarP(&votingFileName, "file", "f", "", "JSON file describing the voting")
	votingsListCmd.Flags().IntVarP(&listLimit, "limit", "l", 50, "Maximum number of votings to list")
	votingsListCmd.Flags().IntVarP(&listOffset, "offset", "o", 0, "Number of votings to skip")

	votingsCmd.AddCommand(votingsCreateCmd)
	votingsCmd.AddCommand(votingsListCmd)
}

var votingsCmd = &cobra.Command{
	Use:   "votings",
	Short: "Manage votings",
	Args:  validateNoPosArgsFn,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.HelpFunc()(cmd, args)
	},
}

var votingsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Validate and open a voting described by a JSON file",
	Args:  validateNoPosArgsFn,
	RunE: func(cmd *cobra.Command, args []string) error {
		if votingFileName == "" {
			cmd.HelpFunc()(cmd, args)
			return nil
		}

		data, err := os.ReadFile(votingFileName)
		if err != nil {
			return fmt.Errorf("Unable to read '%s' : %w", votingFileName, err)
		}
		var params registrar.VotingParams
		if err := json.Unmarshal(data, &params); err != nil {
			return fmt.Errorf("Unable to parse '%s' : %w", votingFileName, err)
		}

		return withApp(func(a *app) error {
			voting, err := a.services.Votings.Register(context.Background(), params)
			if err != nil {
				return fmt.Errorf("Unable to register voting : %w", err)
			}
			return writeJSON(cmd.OutOrStdout(), voting)
		})
	},
}

var votingsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List votings that still accept votes",
	Args:  validateNoPosArgsFn,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app) error {
			votings, err := a.store.ListOpenVotings(context.Background(), time.Now().UTC(), listLimit, listOffset)
			if err != nil {
				return fmt.Errorf("Unable to list votings : %w", err)
			}
			for _, v := range votings {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%d\n", v.VotingID, v.VotingType, v.EndsAt.Format(time.RFC3339), v.TotalVoters)
			}
			return nil
		})
	},
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("Unable to encode output : %w", err)
	}
	return nil
}
