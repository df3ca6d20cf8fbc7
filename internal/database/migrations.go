package database

import (
	"database/sql"
	"fmt"
)

// RunMigrations executes database migrations. The statements are valid for
// both sqlite and postgres and safe to run repeatedly.
func RunMigrations(db *sql.DB) error {
	migrations := []string{
		createVotersTable,
		createVotingsTable,
		createVotesTable,
		createVoteCountersTable,
		createVotersStatusIndex,
		createVotingsEndsAtIndex,
		createVotesVotingIndex,
	}

	for i, migration := range migrations {
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}

	return nil
}

// Database schema definitions
const createVotersTable = `
CREATE TABLE IF NOT EXISTS voters (
    voter_id VARCHAR(64) PRIMARY KEY,
    user_id VARCHAR(255) NOT NULL UNIQUE,
    alias VARCHAR(255),
    status VARCHAR(20) NOT NULL DEFAULT 'active',
    created_at TIMESTAMP NOT NULL,
    updated_at TIMESTAMP NOT NULL
);`

const createVotingsTable = `
CREATE TABLE IF NOT EXISTS votings (
    voting_id VARCHAR(64) PRIMARY KEY,
    voting_type VARCHAR(20) NOT NULL,
    description TEXT NOT NULL,
    started_by VARCHAR(64) NOT NULL,
    starts_at TIMESTAMP NOT NULL,
    ends_at TIMESTAMP NOT NULL,
    total_voters INTEGER NOT NULL DEFAULT 0,
    required_participation DOUBLE PRECISION,
    details TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL,
    updated_at TIMESTAMP NOT NULL
);`

const createVotesTable = `
CREATE TABLE IF NOT EXISTS votes (
    vote_id VARCHAR(64) PRIMARY KEY,
    voting_id VARCHAR(64) NOT NULL REFERENCES votings(voting_id),
    voter_id VARCHAR(64) NOT NULL REFERENCES voters(voter_id),
    choices TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL,
    UNIQUE (voting_id, voter_id)
);`

const createVoteCountersTable = `
CREATE TABLE IF NOT EXISTS vote_counters (
    voting_id VARCHAR(64) NOT NULL REFERENCES votings(voting_id),
    target VARCHAR(255) NOT NULL,
    counter VARCHAR(20) NOT NULL,
    total INTEGER NOT NULL DEFAULT 0,
    PRIMARY KEY (voting_id, target, counter)
);`

const createVotersStatusIndex = `CREATE INDEX IF NOT EXISTS idx_voters_status ON voters (status);`

const createVotingsEndsAtIndex = `CREATE INDEX IF NOT EXISTS idx_votings_ends_at ON votings (ends_at);`

const createVotesVotingIndex = `CREATE INDEX IF NOT EXISTS idx_votes_voting_id ON votes (voting_id);`
