package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"poll-engine/internal/domain"
	"poll-engine/internal/registrar"
)

var (
	castUserID   string
	castElect    []string
	castPass     []string
	castGuilty   []string
	castInnocent []string
	castOptions  []string
)

func init() {
	votesCastCmd.Flags().StringVarP(&castUserID, "user", "u", "", "User id of the registered voter casting the vote")
	votesCastCmd.Flags().StringSliceVar(&castElect, "elect", nil, "Candidates to elect")
	votesCastCmd.Flags().StringSliceVar(&castPass, "pass", nil, "Candidates to pass on")
	votesCastCmd.Flags().StringSliceVar(&castGuilty, "guilty", nil, "Candidates judged guilty")
	votesCastCmd.Flags().StringSliceVar(&castInnocent, "innocent", nil, "Candidates judged innocent")
	votesCastCmd.Flags().StringSliceVar(&castOptions, "option", nil, "Selected option values")

	votesCmd.AddCommand(votesCastCmd)
	rootCmd.AddCommand(votesCmd)
}

var votesCmd = &cobra.Command{
	Use:   "votes",
	Short: "Cast votes",
	Args:  validateNoPosArgsFn,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.HelpFunc()(cmd, args)
	},
}

var votesCastCmd = &cobra.Command{
	Use:   "cast <voting-id>",
	Short: "Validate and record a vote",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if castUserID == "" {
			cmd.HelpFunc()(cmd, args)
			return nil
		}

		return withApp(func(a *app) error {
			vote, err := a.services.Votes.RegisterByUserID(context.Background(), registrar.UserVoteParams{
				VotingID: args[0],
				UserID:   castUserID,
				Choices:  castChoices(),
			})
			if err != nil {
				return fmt.Errorf("Unable to register vote : %w", err)
			}
			return writeJSON(cmd.OutOrStdout(), vote)
		})
	},
}

func castChoices() []domain.Choice {
	var choices []domain.Choice
	for _, group := range []struct {
		verdict domain.ChoiceVerdict
		ids     []string
	}{
		{domain.ChoiceElect, castElect},
		{domain.ChoicePass, castPass},
		{domain.ChoiceGuilty, castGuilty},
		{domain.ChoiceInnocent, castInnocent},
	} {
		for _, id := range group.ids {
			choices = append(choices, domain.CandidateChoice(id, group.verdict))
		}
	}
	for _, value := range castOptions {
		choices = append(choices, domain.OptionChoice(value))
	}
	return choices
}
