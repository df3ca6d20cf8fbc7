package registrar

import (
	"context"
	"time"

	"poll-engine/internal/collaborators"
	"poll-engine/internal/domain"
	"poll-engine/internal/validation"
	"poll-engine/pkg/config"
	"poll-engine/pkg/logger"
)

// VotingParams is a request to open a voting. A nil StartsAt means now.
type VotingParams struct {
	VotingType                      domain.VotingType        `json:"voting_type"`
	Description                     domain.VotingDescription `json:"voting_description"`
	StartedBy                       string                   `json:"started_by"`
	StartsAt                        *time.Time               `json:"starts_at,omitempty"`
	EndsAt                          time.Time                `json:"ends_at"`
	RequiredParticipationPercentage *float64                 `json:"required_participation_percentage,omitempty"`

	Election *domain.ElectionDetails `json:"election,omitempty"`
	Judgment *domain.JudgmentDetails `json:"judgment,omitempty"`
	Option   *domain.OptionDetails   `json:"option,omitempty"`
}

// VotingRegistrar validates and persists new votings
type VotingRegistrar struct {
	collab    collaborators.Collaborators
	validator *validation.VotingValidator
	clock     domain.Clock
	ids       domain.IDGenerator
	log       *logger.Logger
}

func NewVotingRegistrar(rules *config.RuleSet, collab collaborators.Collaborators, clock domain.Clock, ids domain.IDGenerator, log *logger.Logger) *VotingRegistrar {
	return &VotingRegistrar{
		collab:    collab,
		validator: validation.NewVotingValidator(rules, collab),
		clock:     resolveClock(clock),
		ids:       resolveIDs(ids),
		log:       logger.Resolve(log).WithComponent("voting_registrar"),
	}
}

// Register validates the request, snapshots the active voter count and
// persists the voting once. Validator errors are returned unchanged.
func (r *VotingRegistrar) Register(ctx context.Context, params VotingParams) (*domain.VotingData, error) {
	now := r.clock.Now()

	startsAt := now
	if params.StartsAt != nil {
		startsAt = *params.StartsAt
	}

	if err := r.validator.Validate(ctx, validation.VotingParams{
		VotingType:                      params.VotingType,
		Description:                     params.Description,
		StartedBy:                       params.StartedBy,
		StartsAt:                        startsAt,
		EndsAt:                          params.EndsAt,
		RequiredParticipationPercentage: params.RequiredParticipationPercentage,
		Election:                        params.Election,
		Judgment:                        params.Judgment,
		Option:                          params.Option,
	}); err != nil {
		logFailure(r.log, "Voting registration rejected", err,
			"voting_type", string(params.VotingType), "started_by", params.StartedBy)
		return nil, err
	}

	totalVoters, err := r.collab.CountActiveVoters(ctx)
	if err != nil {
		logFailure(r.log, "Failed to count active voters", err)
		return nil, err
	}

	id, err := r.ids.NewID(ctx)
	if err != nil {
		logFailure(r.log, "Failed to generate voting id", err)
		return nil, err
	}

	voting := domain.VotingData{
		VotingID:                        id,
		VotingType:                      params.VotingType,
		Description:                     params.Description,
		StartedBy:                       params.StartedBy,
		StartsAt:                        startsAt,
		EndsAt:                          params.EndsAt,
		TotalVoters:                     totalVoters,
		RequiredParticipationPercentage: params.RequiredParticipationPercentage,
		CreatedAt:                       now,
		UpdatedAt:                       now,
		Election:                        params.Election,
		Judgment:                        params.Judgment,
		Option:                          params.Option,
	}

	if err := r.collab.PersistVoting(ctx, voting); err != nil {
		logFailure(r.log, "Failed to persist voting", err, "voting_id", id)
		return nil, err
	}

	r.log.VotingLogger("voting_registered", id, params.StartedBy, string(params.VotingType))
	return &voting, nil
}
