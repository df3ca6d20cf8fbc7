package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"poll-engine/internal/domain"
)

// Voter represents a row of the voters table
type Voter struct {
	VoterID   string         `db:"voter_id" json:"voter_id"`
	UserID    string         `db:"user_id" json:"user_id"`
	Alias     sql.NullString `db:"alias" json:"alias"`
	Status    string         `db:"status" json:"status"`
	CreatedAt time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt time.Time      `db:"updated_at" json:"updated_at"`
}

// Voting represents a row of the votings table. Description and Details
// hold JSON documents; Details is the variant payload.
type Voting struct {
	VotingID              string          `db:"voting_id" json:"voting_id"`
	VotingType            string          `db:"voting_type" json:"voting_type"`
	Description           string          `db:"description" json:"description"`
	StartedBy             string          `db:"started_by" json:"started_by"`
	StartsAt              time.Time       `db:"starts_at" json:"starts_at"`
	EndsAt                time.Time       `db:"ends_at" json:"ends_at"`
	TotalVoters           int             `db:"total_voters" json:"total_voters"`
	RequiredParticipation sql.NullFloat64 `db:"required_participation" json:"required_participation"`
	Details               string          `db:"details" json:"details"`
	CreatedAt             time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt             time.Time       `db:"updated_at" json:"updated_at"`
}

// Vote represents a row of the votes table. Choices holds a JSON array.
type Vote struct {
	VoteID    string    `db:"vote_id" json:"vote_id"`
	VotingID  string    `db:"voting_id" json:"voting_id"`
	VoterID   string    `db:"voter_id" json:"voter_id"`
	Choices   string    `db:"choices" json:"choices"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// VoteCounter represents a row of the vote_counters table
type VoteCounter struct {
	VotingID string `db:"voting_id" json:"voting_id"`
	Target   string `db:"target" json:"target"`
	Counter  string `db:"counter" json:"counter"`
	Total    int    `db:"total" json:"total"`
}

// VoterFromDomain converts a domain voter into its row
func VoterFromDomain(v domain.Voter) Voter {
	return Voter{
		VoterID:   v.VoterID,
		UserID:    v.UserID,
		Alias:     sql.NullString{String: v.Alias, Valid: v.Alias != ""},
		Status:    string(v.Status),
		CreatedAt: v.CreatedAt.UTC(),
		UpdatedAt: v.UpdatedAt.UTC(),
	}
}

// Domain converts the row back into a domain voter
func (v Voter) Domain() domain.Voter {
	return domain.Voter{
		VoterID:   v.VoterID,
		UserID:    v.UserID,
		Alias:     v.Alias.String,
		Status:    domain.VoterStatus(v.Status),
		CreatedAt: v.CreatedAt.UTC(),
		UpdatedAt: v.UpdatedAt.UTC(),
	}
}

// VotingFromDomain converts a domain voting into its row
func VotingFromDomain(v domain.VotingData) (Voting, error) {
	description, err := json.Marshal(v.Description)
	if err != nil {
		return Voting{}, fmt.Errorf("failed to encode description: %w", err)
	}

	var payload interface{}
	switch v.VotingType {
	case domain.VotingElection:
		payload = v.Election
	case domain.VotingJudgment:
		payload = v.Judgment
	case domain.VotingOption:
		payload = v.Option
	default:
		return Voting{}, fmt.Errorf("unknown voting type %q", v.VotingType)
	}
	details, err := json.Marshal(payload)
	if err != nil {
		return Voting{}, fmt.Errorf("failed to encode details: %w", err)
	}

	row := Voting{
		VotingID:    v.VotingID,
		VotingType:  string(v.VotingType),
		Description: string(description),
		StartedBy:   v.StartedBy,
		StartsAt:    v.StartsAt.UTC(),
		EndsAt:      v.EndsAt.UTC(),
		TotalVoters: v.TotalVoters,
		Details:     string(details),
		CreatedAt:   v.CreatedAt.UTC(),
		UpdatedAt:   v.UpdatedAt.UTC(),
	}
	if v.RequiredParticipationPercentage != nil {
		row.RequiredParticipation = sql.NullFloat64{Float64: *v.RequiredParticipationPercentage, Valid: true}
	}
	return row, nil
}

// Domain converts the row back into a domain voting
func (v Voting) Domain() (*domain.VotingData, error) {
	voting := &domain.VotingData{
		VotingID:    v.VotingID,
		VotingType:  domain.VotingType(v.VotingType),
		StartedBy:   v.StartedBy,
		StartsAt:    v.StartsAt.UTC(),
		EndsAt:      v.EndsAt.UTC(),
		TotalVoters: v.TotalVoters,
		CreatedAt:   v.CreatedAt.UTC(),
		UpdatedAt:   v.UpdatedAt.UTC(),
	}
	if err := json.Unmarshal([]byte(v.Description), &voting.Description); err != nil {
		return nil, fmt.Errorf("failed to decode description of voting %s: %w", v.VotingID, err)
	}
	if v.RequiredParticipation.Valid {
		pct := v.RequiredParticipation.Float64
		voting.RequiredParticipationPercentage = &pct
	}

	var target interface{}
	switch voting.VotingType {
	case domain.VotingElection:
		voting.Election = &domain.ElectionDetails{}
		target = voting.Election
	case domain.VotingJudgment:
		voting.Judgment = &domain.JudgmentDetails{}
		target = voting.Judgment
	case domain.VotingOption:
		voting.Option = &domain.OptionDetails{}
		target = voting.Option
	default:
		return nil, fmt.Errorf("voting %s has unknown type %q", v.VotingID, v.VotingType)
	}
	if err := json.Unmarshal([]byte(v.Details), target); err != nil {
		return nil, fmt.Errorf("failed to decode details of voting %s: %w", v.VotingID, err)
	}

	return voting, nil
}

// VoteFromDomain converts a domain vote into its row
func VoteFromDomain(v domain.VoteData) (Vote, error) {
	choices, err := json.Marshal(v.Choices)
	if err != nil {
		return Vote{}, fmt.Errorf("failed to encode choices: %w", err)
	}
	return Vote{
		VoteID:    v.VoteID,
		VotingID:  v.VotingID,
		VoterID:   v.VoterID,
		Choices:   string(choices),
		CreatedAt: v.CreatedAt.UTC(),
	}, nil
}

// Domain converts the row back into a domain vote
func (v Vote) Domain() (domain.VoteData, error) {
	vote := domain.VoteData{
		VoteID:    v.VoteID,
		VotingID:  v.VotingID,
		VoterID:   v.VoterID,
		CreatedAt: v.CreatedAt.UTC(),
	}
	if err := json.Unmarshal([]byte(v.Choices), &vote.Choices); err != nil {
		return domain.VoteData{}, fmt.Errorf("failed to decode choices of vote %s: %w", v.VoteID, err)
	}
	return vote, nil
}
