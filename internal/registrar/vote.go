package registrar

import (
	"context"

	"poll-engine/internal/collaborators"
	"poll-engine/internal/domain"
	"poll-engine/internal/validation"
	"poll-engine/pkg/config"
	"poll-engine/pkg/logger"
)

// VoteParams is a vote cast by a known voter
type VoteParams struct {
	VotingID string
	VoterID  string
	Choices  []domain.Choice
}

// UserVoteParams is a vote cast on behalf of a user reference
type UserVoteParams struct {
	VotingID string
	UserID   string
	Choices  []domain.Choice
}

// VoteRegistrar validates and persists votes
type VoteRegistrar struct {
	collab    collaborators.Collaborators
	validator *validation.VoteValidator
	clock     domain.Clock
	ids       domain.IDGenerator
	log       *logger.Logger
}

func NewVoteRegistrar(rules *config.RuleSet, collab collaborators.Collaborators, clock domain.Clock, ids domain.IDGenerator, log *logger.Logger) *VoteRegistrar {
	clock = resolveClock(clock)
	return &VoteRegistrar{
		collab:    collab,
		validator: validation.NewVoteValidator(rules, collab, clock),
		clock:     clock,
		ids:       resolveIDs(ids),
		log:       logger.Resolve(log).WithComponent("vote_registrar"),
	}
}

// Register validates the vote and persists it once.
//
// The duplicate check inside validation is not atomic with the write; a
// store that must reject concurrent double votes needs its own constraint.
func (r *VoteRegistrar) Register(ctx context.Context, params VoteParams) (*domain.VoteData, error) {
	if err := r.validator.Validate(ctx, validation.VoteParams{
		VotingID: params.VotingID,
		VoterID:  params.VoterID,
		Choices:  params.Choices,
	}); err != nil {
		logFailure(r.log, "Vote rejected", err, "voting_id", params.VotingID, "voter_id", params.VoterID)
		return nil, err
	}

	id, err := r.ids.NewID(ctx)
	if err != nil {
		logFailure(r.log, "Failed to generate vote id", err)
		return nil, err
	}

	vote := domain.VoteData{
		VoteID:    id,
		VotingID:  params.VotingID,
		VoterID:   params.VoterID,
		Choices:   params.Choices,
		CreatedAt: r.clock.Now(),
	}

	if err := r.collab.PersistVote(ctx, vote); err != nil {
		logFailure(r.log, "Failed to persist vote", err, "voting_id", params.VotingID, "voter_id", params.VoterID)
		return nil, err
	}

	r.log.VotingLogger("vote_cast", params.VotingID, params.VoterID, id)
	return &vote, nil
}

// RegisterByUserID resolves the user's voter record, then registers the vote
func (r *VoteRegistrar) RegisterByUserID(ctx context.Context, params UserVoteParams) (*domain.VoteData, error) {
	voter, err := r.collab.RetrieveVoter(ctx, params.UserID)
	if err != nil {
		logFailure(r.log, "Failed to retrieve voter", err, "voting_id", params.VotingID)
		return nil, err
	}
	if voter == nil {
		logFailure(r.log, "Vote rejected", domain.ErrVoterNotRegistered, "voting_id", params.VotingID)
		return nil, domain.ErrVoterNotRegistered
	}

	return r.Register(ctx, VoteParams{
		VotingID: params.VotingID,
		VoterID:  voter.VoterID,
		Choices:  params.Choices,
	})
}
