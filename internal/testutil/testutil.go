package testutil

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"poll-engine/internal/domain"
	"poll-engine/pkg/config"
)

// Now is the reference instant used by fixtures
var Now = time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)

// MockCollaborators is a testify mock of collaborators.Collaborators
type MockCollaborators struct {
	mock.Mock
}

func (m *MockCollaborators) PersistVoting(ctx context.Context, voting domain.VotingData) error {
	args := m.Called(ctx, voting)
	return args.Error(0)
}

func (m *MockCollaborators) PersistVoters(ctx context.Context, voters []domain.Voter) error {
	args := m.Called(ctx, voters)
	return args.Error(0)
}

func (m *MockCollaborators) PersistVote(ctx context.Context, vote domain.VoteData) error {
	args := m.Called(ctx, vote)
	return args.Error(0)
}

func (m *MockCollaborators) RetrieveVoting(ctx context.Context, votingID string) (*domain.VotingData, error) {
	args := m.Called(ctx, votingID)
	voting, _ := args.Get(0).(*domain.VotingData)
	return voting, args.Error(1)
}

func (m *MockCollaborators) RetrieveVoter(ctx context.Context, userID string) (*domain.Voter, error) {
	args := m.Called(ctx, userID)
	voter, _ := args.Get(0).(*domain.Voter)
	return voter, args.Error(1)
}

func (m *MockCollaborators) RetrieveVotes(ctx context.Context, votingID string) (domain.VotesSource, error) {
	args := m.Called(ctx, votingID)
	source, _ := args.Get(0).(domain.VotesSource)
	return source, args.Error(1)
}

func (m *MockCollaborators) CheckActiveVoters(ctx context.Context, voterIDs []string) (map[string]bool, error) {
	args := m.Called(ctx, voterIDs)
	if fn, ok := args.Get(0).(func(context.Context, []string) map[string]bool); ok {
		return fn(ctx, voterIDs), args.Error(1)
	}
	active, _ := args.Get(0).(map[string]bool)
	return active, args.Error(1)
}

func (m *MockCollaborators) CountActiveVoters(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockCollaborators) HasVoted(ctx context.Context, voterID, votingID string) (bool, error) {
	args := m.Called(ctx, voterID, votingID)
	return args.Bool(0), args.Error(1)
}

// AllActive answers CheckActiveVoters with every requested id active
func AllActive(ids []string) map[string]bool {
	active := make(map[string]bool, len(ids))
	for _, id := range ids {
		active[id] = true
	}
	return active
}

// FixedClock always returns the same instant
type FixedClock struct {
	T time.Time
}

func (c FixedClock) Now() time.Time { return c.T }

// SequentialIDs hands out prefix-1, prefix-2, ...
type SequentialIDs struct {
	Prefix string

	mutex sync.Mutex
	next  int
}

func (g *SequentialIDs) NewID(context.Context) (string, error) {
	g.mutex.Lock()
	defer g.mutex.Unlock()
	g.next++
	return fmt.Sprintf("%s-%d", g.Prefix, g.next), nil
}

// FailingIDs always fails to generate an identifier
type FailingIDs struct {
	Err error
}

func (g FailingIDs) NewID(context.Context) (string, error) {
	return "", g.Err
}

// DefaultRules mirrors the configuration defaults
func DefaultRules() config.RulesConfig {
	return config.RulesConfig{
		MinVotingDuration:     10 * time.Minute,
		MaxVotingDuration:     720 * time.Hour,
		MinCandidatesElection: 2,
	}
}

// NewRuleSet builds a rule set, failing the test on invalid rules
func NewRuleSet(t *testing.T, rules config.RulesConfig) *config.RuleSet {
	t.Helper()
	rs, err := config.NewRuleSet(rules)
	require.NoError(t, err)
	return rs
}

// Election builds an ended-or-open election fixture over the given candidates
func Election(id string, endsAt time.Time, candidates ...string) *domain.VotingData {
	roster := make([]domain.Candidate, 0, len(candidates))
	for _, c := range candidates {
		roster = append(roster, domain.Candidate{CandidateID: c})
	}
	return &domain.VotingData{
		VotingID:    id,
		VotingType:  domain.VotingElection,
		Description: domain.VotingDescription{"en-US": "Election"},
		StartedBy:   "starter",
		StartsAt:    endsAt.Add(-24 * time.Hour),
		EndsAt:      endsAt,
		Election:    &domain.ElectionDetails{Candidates: roster},
	}
}

// Judgment builds a judgment fixture over the given candidates
func Judgment(id string, endsAt time.Time, candidates ...string) *domain.VotingData {
	roster := make([]domain.Candidate, 0, len(candidates))
	for _, c := range candidates {
		roster = append(roster, domain.Candidate{CandidateID: c})
	}
	return &domain.VotingData{
		VotingID:    id,
		VotingType:  domain.VotingJudgment,
		Description: domain.VotingDescription{"en-US": "Judgment"},
		StartedBy:   "starter",
		StartsAt:    endsAt.Add(-24 * time.Hour),
		EndsAt:      endsAt,
		Judgment:    &domain.JudgmentDetails{Candidates: roster},
	}
}

// OptionPoll builds an option poll fixture
func OptionPoll(id string, endsAt time.Time, options ...string) *domain.VotingData {
	return &domain.VotingData{
		VotingID:    id,
		VotingType:  domain.VotingOption,
		Description: domain.VotingDescription{"en-US": "Poll"},
		StartedBy:   "starter",
		StartsAt:    endsAt.Add(-24 * time.Hour),
		EndsAt:      endsAt,
		Option:      &domain.OptionDetails{Options: options},
	}
}

// Vote builds a raw vote record
func Vote(votingID, voterID string, choices ...domain.Choice) domain.VoteData {
	return domain.VoteData{
		VoteID:    votingID + "/" + voterID,
		VotingID:  votingID,
		VoterID:   voterID,
		Choices:   choices,
		CreatedAt: Now,
	}
}
