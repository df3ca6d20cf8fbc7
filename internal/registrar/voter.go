package registrar

import (
	"context"

	"poll-engine/internal/collaborators"
	"poll-engine/internal/domain"
	"poll-engine/pkg/logger"
)

// VoterParams identifies a user to enroll as a voter
type VoterParams struct {
	UserID string
	Alias  string
}

// VoterRegistrar enrolls batches of users as active voters
type VoterRegistrar struct {
	collab collaborators.Collaborators
	clock  domain.Clock
	ids    domain.IDGenerator
	log    *logger.Logger
}

func NewVoterRegistrar(collab collaborators.Collaborators, clock domain.Clock, ids domain.IDGenerator, log *logger.Logger) *VoterRegistrar {
	return &VoterRegistrar{
		collab: collab,
		clock:  resolveClock(clock),
		ids:    resolveIDs(ids),
		log:    logger.Resolve(log).WithComponent("voter_registrar"),
	}
}

// Register creates one active voter per entry and persists the batch in a
// single call. Duplicated user ids are not detected here.
func (r *VoterRegistrar) Register(ctx context.Context, params []VoterParams) ([]domain.Voter, error) {
	if len(params) == 0 {
		r.log.Warning("Voter registration rejected", "code", domain.ErrCodeNoVoters)
		return nil, domain.ErrNoVoters
	}

	now := r.clock.Now()
	voters := make([]domain.Voter, 0, len(params))
	for _, p := range params {
		id, err := r.ids.NewID(ctx)
		if err != nil {
			logFailure(r.log, "Failed to generate voter id", err)
			return nil, err
		}
		voters = append(voters, domain.Voter{
			VoterID:   id,
			UserID:    p.UserID,
			Alias:     p.Alias,
			Status:    domain.VoterActive,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}

	if err := r.collab.PersistVoters(ctx, voters); err != nil {
		logFailure(r.log, "Failed to persist voters", err, "count", len(voters))
		return nil, err
	}

	r.log.Info("Voters registered", "count", len(voters))
	return voters, nil
}
