package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"poll-engine/internal/collaborators"
	"poll-engine/internal/database"
	"poll-engine/internal/database/repositories"
	"poll-engine/internal/domain"
	"poll-engine/pkg/logger"
)

// Options tunes the SQL store
type Options struct {
	// RunningCounters keeps vote_counters up to date on every cast and makes
	// RetrieveVotes return the aggregated counters instead of raw votes.
	RunningCounters bool
}

// Store implements the engine collaborators on top of a SQL database
type Store struct {
	db   *sql.DB
	opts Options
	log  *logger.Logger

	voters  *repositories.VoterRepository
	votings *repositories.VotingRepository
	votes   *repositories.VoteRepository
}

var _ collaborators.Collaborators = (*Store)(nil)

func New(db *sql.DB, opts Options, log *logger.Logger) *Store {
	return &Store{
		db:      db,
		opts:    opts,
		log:     logger.Resolve(log).WithComponent("store"),
		voters:  repositories.NewVoterRepository(db),
		votings: repositories.NewVotingRepository(db),
		votes:   repositories.NewVoteRepository(db),
	}
}

func (s *Store) PersistVoting(ctx context.Context, voting domain.VotingData) error {
	row, err := database.VotingFromDomain(voting)
	if err != nil {
		return err
	}
	if err := s.votings.CreateVoting(ctx, &row); err != nil {
		return fmt.Errorf("failed to insert voting %s: %w", voting.VotingID, err)
	}
	return nil
}

// PersistVoters inserts the whole batch or nothing
func (s *Store) PersistVoters(ctx context.Context, voters []domain.Voter) error {
	return database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		repo := repositories.NewVoterRepository(tx)
		for _, v := range voters {
			row := database.VoterFromDomain(v)
			if err := repo.RegisterVoter(ctx, &row); err != nil {
				return fmt.Errorf("failed to insert voter for user %s: %w", v.UserID, err)
			}
		}
		return nil
	})
}

// PersistVote inserts the vote and, with running counters enabled, bumps
// one counter per choice in the same transaction.
func (s *Store) PersistVote(ctx context.Context, vote domain.VoteData) error {
	row, err := database.VoteFromDomain(vote)
	if err != nil {
		return err
	}

	return database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		repo := repositories.NewVoteRepository(tx)
		if err := repo.InsertVote(ctx, &row); err != nil {
			return fmt.Errorf("failed to insert vote of voter %s in voting %s: %w", vote.VoterID, vote.VotingID, err)
		}
		if !s.opts.RunningCounters {
			return nil
		}
		for _, choice := range vote.Choices {
			target, counter := counterOf(choice)
			if err := repo.IncrementCounter(ctx, vote.VotingID, target, counter, 1); err != nil {
				return fmt.Errorf("failed to update counter %s/%s: %w", target, counter, err)
			}
		}
		return nil
	})
}

func (s *Store) RetrieveVoting(ctx context.Context, votingID string) (*domain.VotingData, error) {
	row, err := s.votings.GetVotingByID(ctx, votingID)
	if err != nil || row == nil {
		return nil, err
	}
	return row.Domain()
}

func (s *Store) RetrieveVoter(ctx context.Context, userID string) (*domain.Voter, error) {
	row, err := s.voters.GetVoterByUserID(ctx, userID)
	if err != nil || row == nil {
		return nil, err
	}
	voter := row.Domain()
	return &voter, nil
}

func (s *Store) RetrieveVotes(ctx context.Context, votingID string) (domain.VotesSource, error) {
	if s.opts.RunningCounters {
		rows, err := s.votes.GetCounters(ctx, votingID)
		if err != nil {
			return nil, err
		}
		counters := make(domain.CounterMap)
		for _, c := range rows {
			if counters[c.Target] == nil {
				counters[c.Target] = make(map[string]int)
			}
			counters[c.Target][c.Counter] = c.Total
		}
		return counters, nil
	}

	rows, err := s.votes.GetVotesByVoting(ctx, votingID)
	if err != nil {
		return nil, err
	}
	votes := make(domain.VoteList, 0, len(rows))
	for _, r := range rows {
		vote, err := r.Domain()
		if err != nil {
			return nil, err
		}
		votes = append(votes, vote)
	}
	return votes, nil
}

func (s *Store) CheckActiveVoters(ctx context.Context, voterIDs []string) (map[string]bool, error) {
	return s.voters.GetActiveVoterIDs(ctx, voterIDs)
}

func (s *Store) CountActiveVoters(ctx context.Context) (int, error) {
	return s.voters.CountActiveVoters(ctx)
}

func (s *Store) HasVoted(ctx context.Context, voterID, votingID string) (bool, error) {
	return s.votes.HasVoted(ctx, voterID, votingID)
}

// SetVoterStatus activates or deactivates a voter
func (s *Store) SetVoterStatus(ctx context.Context, voterID string, status domain.VoterStatus) error {
	if err := s.voters.UpdateVoterStatus(ctx, voterID, string(status)); err != nil {
		return fmt.Errorf("failed to update voter %s: %w", voterID, err)
	}
	s.log.Info("Voter status updated", "voter_id", voterID, "status", string(status))
	return nil
}

// ListOpenVotings returns votings still accepting votes at now
func (s *Store) ListOpenVotings(ctx context.Context, now time.Time, limit, offset int) ([]*domain.VotingData, error) {
	rows, err := s.votings.ListOpenVotings(ctx, now, limit, offset)
	if err != nil {
		return nil, err
	}
	votings := make([]*domain.VotingData, 0, len(rows))
	for _, r := range rows {
		voting, err := r.Domain()
		if err != nil {
			return nil, err
		}
		votings = append(votings, voting)
	}
	return votings, nil
}

// counterOf maps a choice to the running counter it increments
func counterOf(choice domain.Choice) (string, string) {
	if choice.CandidateID != "" {
		return choice.CandidateID, string(choice.Verdict)
	}
	return choice.Value, domain.CounterVotes
}
