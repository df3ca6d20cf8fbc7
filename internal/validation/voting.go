package validation

import (
	"context"
	"time"

	"poll-engine/internal/collaborators"
	"poll-engine/internal/domain"
	"poll-engine/pkg/config"
)

// VotingParams is a proposed voting event. StartsAt is always set by the
// time it reaches the validator.
type VotingParams struct {
	VotingType                      domain.VotingType
	Description                     domain.VotingDescription
	StartedBy                       string
	StartsAt                        time.Time
	EndsAt                          time.Time
	RequiredParticipationPercentage *float64

	Election *domain.ElectionDetails
	Judgment *domain.JudgmentDetails
	Option   *domain.OptionDetails
}

// Voting returns the params as a voting record without identity or stamps
func (p VotingParams) Voting() domain.VotingData {
	return domain.VotingData{
		VotingType:                      p.VotingType,
		Description:                     p.Description,
		StartedBy:                       p.StartedBy,
		StartsAt:                        p.StartsAt,
		EndsAt:                          p.EndsAt,
		RequiredParticipationPercentage: p.RequiredParticipationPercentage,
		Election:                        p.Election,
		Judgment:                        p.Judgment,
		Option:                          p.Option,
	}
}

// VotingValidator decides whether a voting event may be started
type VotingValidator struct {
	rules  *config.RuleSet
	collab collaborators.Collaborators
}

func NewVotingValidator(rules *config.RuleSet, collab collaborators.Collaborators) *VotingValidator {
	return &VotingValidator{rules: rules, collab: collab}
}

// Validate runs the checks in order and returns the first failure. A
// *domain.ValidationError is a rejection; any other error came from a
// collaborator.
func (v *VotingValidator) Validate(ctx context.Context, params VotingParams) error {
	rules := v.rules.Get()

	if params.EndsAt.Before(params.StartsAt) {
		return domain.ErrInvalidWindow.WithDetails("ends at %s, starts at %s",
			params.EndsAt.Format(time.RFC3339), params.StartsAt.Format(time.RFC3339))
	}

	duration := params.EndsAt.Sub(params.StartsAt)
	if duration < rules.MinVotingDuration {
		return domain.ErrTooShort.WithDetails("%s is below %s", duration, rules.MinVotingDuration)
	}
	if duration > rules.MaxVotingDuration {
		return domain.ErrTooLong.WithDetails("%s is above %s", duration, rules.MaxVotingDuration)
	}

	voting := params.Voting()
	if !voting.HasVariant() {
		return domain.ErrInvalidVotingType.WithDetails("%q", params.VotingType)
	}

	if !params.VotingType.IsCandidateBased() {
		return v.checkActive(ctx, []string{params.StartedBy})
	}

	candidates := voting.Candidates()
	if len(candidates) == 0 {
		return domain.ErrNoCandidates
	}
	if params.VotingType == domain.VotingElection && len(candidates) < rules.MinCandidatesElection {
		return domain.ErrTooFewCandidates.WithDetails("%d given, %d required",
			len(candidates), rules.MinCandidatesElection)
	}

	ids := make([]string, 0, len(candidates)+1)
	for _, c := range candidates {
		ids = append(ids, c.CandidateID)
	}
	if !rules.CanCandidateStartVoting && contains(ids, params.StartedBy) {
		return domain.ErrStartedByCandidate.WithDetails("voter %s", params.StartedBy)
	}

	return v.checkActive(ctx, dedup(append(ids, params.StartedBy)))
}

func (v *VotingValidator) checkActive(ctx context.Context, ids []string) error {
	active, err := v.collab.CheckActiveVoters(ctx, ids)
	if err != nil {
		return err
	}

	var missing []string
	for _, id := range ids {
		if !active[id] {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		return domain.ErrVotersNotFound.WithVoterIDs(missing)
	}
	return nil
}

func contains(ids []string, id string) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

// dedup drops repeated ids, keeping first occurrences in order
func dedup(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
