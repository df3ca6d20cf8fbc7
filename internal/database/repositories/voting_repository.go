package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	"poll-engine/internal/database"
)

type VotingRepository struct {
	db database.DBTX
}

func NewVotingRepository(db database.DBTX) *VotingRepository {
	return &VotingRepository{db: db}
}

// CreateVoting inserts a new voting
func (r *VotingRepository) CreateVoting(ctx context.Context, voting *database.Voting) error {
	query := `
        INSERT INTO votings (voting_id, voting_type, description, started_by, starts_at, ends_at,
                             total_voters, required_participation, details, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
    `
	_, err := r.db.ExecContext(ctx, query, voting.VotingID, voting.VotingType, voting.Description,
		voting.StartedBy, voting.StartsAt, voting.EndsAt, voting.TotalVoters,
		voting.RequiredParticipation, voting.Details, voting.CreatedAt, voting.UpdatedAt)
	return err
}

// GetVotingByID retrieves a voting. It returns nil without error when the
// voting does not exist.
func (r *VotingRepository) GetVotingByID(ctx context.Context, votingID string) (*database.Voting, error) {
	query := `
        SELECT voting_id, voting_type, description, started_by, starts_at, ends_at,
               total_voters, required_participation, details, created_at, updated_at
        FROM votings
        WHERE voting_id = $1
    `

	var voting database.Voting
	err := r.db.QueryRowContext(ctx, query, votingID).Scan(
		&voting.VotingID, &voting.VotingType, &voting.Description, &voting.StartedBy,
		&voting.StartsAt, &voting.EndsAt, &voting.TotalVoters, &voting.RequiredParticipation,
		&voting.Details, &voting.CreatedAt, &voting.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &voting, nil
}

// ListOpenVotings lists votings whose window has not closed at the given instant
func (r *VotingRepository) ListOpenVotings(ctx context.Context, now time.Time, limit, offset int) ([]database.Voting, error) {
	query := `
        SELECT voting_id, voting_type, description, started_by, starts_at, ends_at,
               total_voters, required_participation, details, created_at, updated_at
        FROM votings
        WHERE ends_at >= $1
        ORDER BY ends_at ASC
        LIMIT $2 OFFSET $3
    `

	rows, err := r.db.QueryContext(ctx, query, now.UTC(), limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var votings []database.Voting
	for rows.Next() {
		var voting database.Voting
		err := rows.Scan(
			&voting.VotingID, &voting.VotingType, &voting.Description, &voting.StartedBy,
			&voting.StartsAt, &voting.EndsAt, &voting.TotalVoters, &voting.RequiredParticipation,
			&voting.Details, &voting.CreatedAt, &voting.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		votings = append(votings, voting)
	}

	return votings, rows.Err()
}

func placeholder(n int) string {
	return "$" + strconv.Itoa(n)
}
