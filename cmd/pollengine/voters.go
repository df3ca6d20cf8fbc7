package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"poll-engine/internal/domain"
	"poll-engine/internal/registrar"
)

var voterAlias string

func init() {
	votersRegisterCmd.Flags().StringVarP(&voterAlias, "alias", "a", "", "Alias shared by every registered voter")

	votersCmd.AddCommand(votersRegisterCmd)
	votersCmd.AddCommand(votersDeactivateCmd)
	votersCmd.AddCommand(votersActivateCmd)
}

var votersCmd = &cobra.Command{
	Use:   "voters",
	Short: "Manage voters",
	Args:  validateNoPosArgsFn,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.HelpFunc()(cmd, args)
	},
}

var votersRegisterCmd = &cobra.Command{
	Use:   "register <user-id>...",
	Short: "Register one active voter per user id",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		params := make([]registrar.VoterParams, 0, len(args))
		for _, userID := range args {
			params = append(params, registrar.VoterParams{UserID: userID, Alias: voterAlias})
		}

		return withApp(func(a *app) error {
			voters, err := a.services.Voters.Register(context.Background(), params)
			if err != nil {
				return fmt.Errorf("Unable to register voters : %w", err)
			}
			for _, v := range voters {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", v.UserID, v.VoterID)
			}
			return nil
		})
	},
}

var votersDeactivateCmd = &cobra.Command{
	Use:   "deactivate <voter-id>",
	Short: "Mark a voter inactive",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setVoterStatus(cmd, args[0], domain.VoterInactive)
	},
}

var votersActivateCmd = &cobra.Command{
	Use:   "activate <voter-id>",
	Short: "Mark a voter active again",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setVoterStatus(cmd, args[0], domain.VoterActive)
	},
}

func setVoterStatus(cmd *cobra.Command, voterID string, status domain.VoterStatus) error {
	return withApp(func(a *app) error {
		if err := a.store.SetVoterStatus(context.Background(), voterID, status); err != nil {
			return fmt.Errorf("Unable to update voter : %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", voterID, status)
		return nil
	})
}
