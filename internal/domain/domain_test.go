package domain

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationErrorMatching(t *testing.T) {
	err := ErrVotersNotFound.WithVoterIDs([]string{"a", "b"})

	assert.True(t, errors.Is(err, ErrVotersNotFound))
	assert.False(t, errors.Is(err, ErrSelfVote))
	assert.Equal(t, "voters not found or inactive (a, b)", err.Error())
	assert.Empty(t, ErrVotersNotFound.VoterIDs, "sentinel must stay untouched")

	wrapped := fmt.Errorf("registering: %w", ErrTooShort.WithDetails("%s", time.Minute))
	assert.True(t, errors.Is(wrapped, ErrTooShort))

	var verr *ValidationError
	require.True(t, errors.As(wrapped, &verr))
	assert.Equal(t, ErrCodeTooShort, verr.Code)
	assert.Equal(t, "1m0s", verr.Details)
}

func TestVotingHelpers(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	pct := 0.4
	maxElected := 1

	election := VotingData{
		VotingType:                      VotingElection,
		EndsAt:                          now,
		TotalVoters:                     10,
		RequiredParticipationPercentage: &pct,
		Election: &ElectionDetails{
			Candidates:           []Candidate{{CandidateID: "a"}, {CandidateID: "b"}},
			MaxElectedCandidates: &maxElected,
		},
	}

	assert.True(t, election.HasVariant())
	assert.True(t, election.VotingType.IsCandidateBased())
	assert.Equal(t, []string{"a", "b"}, election.Targets())
	assert.Equal(t, 1, election.MaxElected())
	assert.InDelta(t, 4.0, election.RequiredVotes(), 1e-9)
	assert.False(t, election.HasEnded(now))
	assert.True(t, election.HasEnded(now.Add(time.Nanosecond)))

	option := VotingData{VotingType: VotingOption, Option: &OptionDetails{Options: []string{"x"}}}
	assert.False(t, option.VotingType.IsCandidateBased())
	assert.Nil(t, option.Candidates())
	assert.Equal(t, []string{"x"}, option.Targets())
	assert.Equal(t, 0, option.MaxElected())
	assert.Zero(t, option.RequiredVotes())

	mismatched := VotingData{VotingType: VotingJudgment, Election: election.Election}
	assert.False(t, mismatched.HasVariant())
	assert.Empty(t, mismatched.Targets())
}

func TestStats(t *testing.T) {
	tests := []struct {
		vt      VotingType
		valid   string
		invalid string
	}{
		{VotingElection, CounterElect, CounterGuilty},
		{VotingJudgment, CounterInnocent, CounterPass},
		{VotingOption, CounterVotes, CounterElect},
	}

	for _, tt := range tests {
		t.Run(string(tt.vt), func(t *testing.T) {
			s, err := ZeroStats(tt.vt)
			require.NoError(t, err)
			assert.Zero(t, s.Total())

			assert.True(t, s.Add(tt.valid, 3))
			assert.False(t, s.Add(tt.invalid, 1))
			assert.Equal(t, 3, s.Total())
			assert.Equal(t, 3, s.Counters()[tt.valid])
		})
	}

	_, err := ZeroStats("ranked")
	assert.Error(t, err)
}

func TestUUIDGenerator(t *testing.T) {
	a, err := UUIDGenerator{}.NewID(context.Background())
	require.NoError(t, err)
	b, err := UUIDGenerator{}.NewID(context.Background())
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	_, err = uuid.Parse(a)
	assert.NoError(t, err)
}

func TestVotingTypeAccepts(t *testing.T) {
	assert.True(t, VotingElection.Accepts(CandidateChoice("a", ChoicePass)))
	assert.False(t, VotingElection.Accepts(CandidateChoice("a", ChoiceInnocent)))
	assert.True(t, VotingJudgment.Accepts(CandidateChoice("a", ChoiceGuilty)))
	assert.False(t, VotingJudgment.Accepts(OptionChoice("a")))
	assert.True(t, VotingOption.Accepts(OptionChoice("a")))
	assert.False(t, VotingOption.Accepts(Choice{Value: "a", Verdict: ChoiceElect}))
	assert.False(t, VotingType("ranked").Accepts(OptionChoice("a")))
}
