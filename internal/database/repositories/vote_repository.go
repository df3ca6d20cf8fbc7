package repositories

import (
	"context"

	"poll-engine/internal/database"
)

type VoteRepository struct {
	db database.DBTX
}

func NewVoteRepository(db database.DBTX) *VoteRepository {
	return &VoteRepository{db: db}
}

// InsertVote inserts a vote. A second vote by the same voter in the same
// voting violates the unique constraint and fails.
func (r *VoteRepository) InsertVote(ctx context.Context, vote *database.Vote) error {
	query := `
        INSERT INTO votes (vote_id, voting_id, voter_id, choices, created_at)
        VALUES ($1, $2, $3, $4, $5)
    `
	_, err := r.db.ExecContext(ctx, query, vote.VoteID, vote.VotingID, vote.VoterID,
		vote.Choices, vote.CreatedAt)
	return err
}

// GetVotesByVoting returns every vote of a voting in casting order
func (r *VoteRepository) GetVotesByVoting(ctx context.Context, votingID string) ([]database.Vote, error) {
	query := `
        SELECT vote_id, voting_id, voter_id, choices, created_at
        FROM votes
        WHERE voting_id = $1
        ORDER BY created_at ASC, vote_id ASC
    `

	rows, err := r.db.QueryContext(ctx, query, votingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var votes []database.Vote
	for rows.Next() {
		var vote database.Vote
		if err := rows.Scan(&vote.VoteID, &vote.VotingID, &vote.VoterID, &vote.Choices, &vote.CreatedAt); err != nil {
			return nil, err
		}
		votes = append(votes, vote)
	}

	return votes, rows.Err()
}

// HasVoted reports whether the voter already has a vote in the voting
func (r *VoteRepository) HasVoted(ctx context.Context, voterID, votingID string) (bool, error) {
	query := `SELECT COUNT(*) FROM votes WHERE voter_id = $1 AND voting_id = $2`

	var count int
	if err := r.db.QueryRowContext(ctx, query, voterID, votingID).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

// IncrementCounter adds n to a running counter, creating it on first use
func (r *VoteRepository) IncrementCounter(ctx context.Context, votingID, target, counter string, n int) error {
	query := `
        INSERT INTO vote_counters (voting_id, target, counter, total)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (voting_id, target, counter)
        DO UPDATE SET total = vote_counters.total + excluded.total
    `
	_, err := r.db.ExecContext(ctx, query, votingID, target, counter, n)
	return err
}

// GetCounters returns the running counters of a voting
func (r *VoteRepository) GetCounters(ctx context.Context, votingID string) ([]database.VoteCounter, error) {
	query := `
        SELECT voting_id, target, counter, total
        FROM vote_counters
        WHERE voting_id = $1
        ORDER BY target, counter
    `

	rows, err := r.db.QueryContext(ctx, query, votingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counters []database.VoteCounter
	for rows.Next() {
		var c database.VoteCounter
		if err := rows.Scan(&c.VotingID, &c.Target, &c.Counter, &c.Total); err != nil {
			return nil, err
		}
		counters = append(counters, c)
	}

	return counters, rows.Err()
}
