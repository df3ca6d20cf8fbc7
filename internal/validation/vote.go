package validation

import (
	"context"

	"poll-engine/internal/collaborators"
	"poll-engine/internal/domain"
	"poll-engine/pkg/config"
)

// VoteParams is a proposed vote
type VoteParams struct {
	VotingID string
	VoterID  string
	Choices  []domain.Choice
}

// VoteValidator decides whether a vote may be cast
type VoteValidator struct {
	rules  *config.RuleSet
	collab collaborators.Collaborators
	clock  domain.Clock
}

func NewVoteValidator(rules *config.RuleSet, collab collaborators.Collaborators, clock domain.Clock) *VoteValidator {
	if clock == nil {
		clock = domain.SystemClock{}
	}
	return &VoteValidator{rules: rules, collab: collab, clock: clock}
}

// Validate runs, in this exact order: self-vote, voting existence, voting
// still open, choices matching the voting type, duplicate vote.
// Collaborators after the first failure are not called.
//
// The duplicate check is read-then-act: two concurrent casts by the same
// voter can both pass it. Preventing that is up to the persistence layer.
func (v *VoteValidator) Validate(ctx context.Context, params VoteParams) error {
	rules := v.rules.Get()

	if !rules.CanVoterVoteForHimself {
		for _, choice := range params.Choices {
			if choice.CandidateID != "" && choice.CandidateID == params.VoterID {
				return domain.ErrSelfVote.WithDetails("voter %s", params.VoterID)
			}
		}
	}

	voting, err := v.collab.RetrieveVoting(ctx, params.VotingID)
	if err != nil {
		return err
	}
	if voting == nil {
		return domain.ErrVotingNotFound.WithDetails("voting %s", params.VotingID)
	}

	if voting.HasEnded(v.clock.Now()) {
		return domain.ErrVotingEnded.WithDetails("voting %s", params.VotingID)
	}

	for _, choice := range params.Choices {
		if !voting.VotingType.Accepts(choice) {
			return domain.ErrInvalidChoice.WithDetails("%+v in %s voting %s", choice, voting.VotingType, params.VotingID)
		}
	}

	voted, err := v.collab.HasVoted(ctx, params.VoterID, params.VotingID)
	if err != nil {
		return err
	}
	if voted {
		return domain.ErrDuplicateVote.WithDetails("voter %s, voting %s", params.VoterID, params.VotingID)
	}

	return nil
}
