package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"poll-engine/internal/database"
)

// ErrVoterNotFound is returned when an update matches no voter
var ErrVoterNotFound = errors.New("voter not found")

type VoterRepository struct {
	db database.DBTX
}

func NewVoterRepository(db database.DBTX) *VoterRepository {
	return &VoterRepository{db: db}
}

// RegisterVoter inserts a new voter
func (r *VoterRepository) RegisterVoter(ctx context.Context, voter *database.Voter) error {
	query := `
        INSERT INTO voters (voter_id, user_id, alias, status, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6)
    `
	_, err := r.db.ExecContext(ctx, query, voter.VoterID, voter.UserID, voter.Alias,
		voter.Status, voter.CreatedAt, voter.UpdatedAt)
	return err
}

// GetVoterByUserID retrieves a voter by the caller-supplied user reference.
// It returns nil without error when no voter matches.
func (r *VoterRepository) GetVoterByUserID(ctx context.Context, userID string) (*database.Voter, error) {
	query := `
        SELECT voter_id, user_id, alias, status, created_at, updated_at
        FROM voters
        WHERE user_id = $1
    `

	var voter database.Voter
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&voter.VoterID, &voter.UserID, &voter.Alias, &voter.Status,
		&voter.CreatedAt, &voter.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &voter, nil
}

// GetActiveVoterIDs returns which of the given voter ids belong to active voters
func (r *VoterRepository) GetActiveVoterIDs(ctx context.Context, voterIDs []string) (map[string]bool, error) {
	active := make(map[string]bool, len(voterIDs))
	if len(voterIDs) == 0 {
		return active, nil
	}

	placeholders := make([]string, len(voterIDs))
	args := make([]interface{}, 0, len(voterIDs)+1)
	args = append(args, "active")
	for i, id := range voterIDs {
		placeholders[i] = placeholder(i + 2)
		args = append(args, id)
	}

	query := `
        SELECT voter_id
        FROM voters
        WHERE status = $1 AND voter_id IN (` + strings.Join(placeholders, ", ") + `)
    `

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		active[id] = true
	}

	return active, rows.Err()
}

// CountActiveVoters returns the number of active voters
func (r *VoterRepository) CountActiveVoters(ctx context.Context) (int, error) {
	query := `SELECT COUNT(*) FROM voters WHERE status = $1`

	var count int
	if err := r.db.QueryRowContext(ctx, query, "active").Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// UpdateVoterStatus changes a voter's status
func (r *VoterRepository) UpdateVoterStatus(ctx context.Context, voterID, status string) error {
	query := `UPDATE voters SET status = $1, updated_at = CURRENT_TIMESTAMP WHERE voter_id = $2`
	result, err := r.db.ExecContext(ctx, query, status, voterID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrVoterNotFound
	}
	return nil
}
