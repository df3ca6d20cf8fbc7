package tally

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"poll-engine/internal/domain"
	"poll-engine/internal/testutil"
)

func TestSeed(t *testing.T) {
	t.Run("Election", func(t *testing.T) {
		stats, err := Seed(testutil.Election("v1", testutil.Now, "a", "b"))
		require.NoError(t, err)
		assert.Equal(t, domain.StatsMap{
			"a": &domain.ElectionStats{},
			"b": &domain.ElectionStats{},
		}, stats)
	})

	t.Run("Judgment", func(t *testing.T) {
		stats, err := Seed(testutil.Judgment("v1", testutil.Now, "a"))
		require.NoError(t, err)
		assert.Equal(t, domain.StatsMap{"a": &domain.JudgmentStats{}}, stats)
	})

	t.Run("Option", func(t *testing.T) {
		stats, err := Seed(testutil.OptionPoll("v1", testutil.Now, "red", "blue"))
		require.NoError(t, err)
		assert.Equal(t, domain.StatsMap{
			"red":  &domain.OptionStats{},
			"blue": &domain.OptionStats{},
		}, stats)
	})

	t.Run("UnknownType", func(t *testing.T) {
		voting := &domain.VotingData{VotingType: "ranked"}
		stats, err := Seed(voting)
		require.NoError(t, err)
		assert.Empty(t, stats)
	})
}

func TestAggregateNilSource(t *testing.T) {
	stats, err := Aggregate(domain.VotingElection, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, stats)

	seeded := domain.StatsMap{"a": &domain.ElectionStats{}}
	stats, err = Aggregate(domain.VotingElection, nil, seeded)
	require.NoError(t, err)
	assert.Equal(t, domain.StatsMap{"a": &domain.ElectionStats{}}, stats)
}

func TestAggregateVoteList(t *testing.T) {
	votes := domain.VoteList{
		testutil.Vote("v1", "x", domain.CandidateChoice("a", domain.ChoiceElect), domain.CandidateChoice("b", domain.ChoicePass)),
		testutil.Vote("v1", "y", domain.CandidateChoice("a", domain.ChoiceElect), domain.CandidateChoice("b", domain.ChoiceElect)),
		testutil.Vote("v1", "z", domain.CandidateChoice("a", domain.ChoicePass)),
	}

	seed, err := Seed(testutil.Election("v1", testutil.Now, "a", "b", "c"))
	require.NoError(t, err)

	stats, err := Aggregate(domain.VotingElection, votes, seed)
	require.NoError(t, err)
	assert.Equal(t, domain.StatsMap{
		"a": &domain.ElectionStats{Elect: 2, Pass: 1},
		"b": &domain.ElectionStats{Elect: 1, Pass: 1},
		"c": &domain.ElectionStats{},
	}, stats)
}

func TestAggregateOptionVotes(t *testing.T) {
	votes := domain.VoteList{
		testutil.Vote("v1", "x", domain.OptionChoice("red")),
		testutil.Vote("v1", "y", domain.OptionChoice("red"), domain.OptionChoice("green")),
	}

	seed, err := Seed(testutil.OptionPoll("v1", testutil.Now, "red", "blue"))
	require.NoError(t, err)

	stats, err := Aggregate(domain.VotingOption, votes, seed)
	require.NoError(t, err)
	assert.Equal(t, domain.StatsMap{
		"red":   &domain.OptionStats{Votes: 2},
		"blue":  &domain.OptionStats{},
		"green": &domain.OptionStats{Votes: 1},
	}, stats)
}

func TestAggregateCounterMap(t *testing.T) {
	seed, err := Seed(testutil.Judgment("v1", testutil.Now, "a", "b"))
	require.NoError(t, err)

	stats, err := Aggregate(domain.VotingJudgment, domain.CounterMap{
		"a": {domain.CounterGuilty: 2, domain.CounterInnocent: 1},
		"c": {domain.CounterInnocent: 4},
	}, seed)
	require.NoError(t, err)
	assert.Equal(t, domain.StatsMap{
		"a": &domain.JudgmentStats{Guilty: 2, Innocent: 1},
		"b": &domain.JudgmentStats{},
		"c": &domain.JudgmentStats{Innocent: 4},
	}, stats)
}

func TestAggregateInvalidCounter(t *testing.T) {
	tests := []struct {
		name   string
		vt     domain.VotingType
		source domain.VotesSource
	}{
		{
			name:   "JudgmentVerdictInElection",
			vt:     domain.VotingElection,
			source: domain.VoteList{testutil.Vote("v1", "x", domain.CandidateChoice("a", domain.ChoiceGuilty))},
		},
		{
			name:   "ElectionCounterInJudgment",
			vt:     domain.VotingJudgment,
			source: domain.CounterMap{"a": {domain.CounterElect: 1}},
		},
		{
			name:   "VotesCounterInElection",
			vt:     domain.VotingElection,
			source: domain.CounterMap{"a": {domain.CounterVotes: 1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Aggregate(tt.vt, tt.source, nil)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrInvalidTally))
		})
	}
}

func TestAggregateUnknownVotingType(t *testing.T) {
	_, err := Aggregate("ranked", domain.CounterMap{"a": {"votes": 1}}, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidVotingType))
}

// Aggregating raw votes and the equivalent pre-summed counters agree
func TestAggregateSourcesAgree(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		candidates := rapid.SliceOfNDistinct(rapid.StringMatching(`[a-e]`), 1, 5, rapid.ID[string]).Draw(rt, "candidates")
		verdicts := rapid.SampledFrom([]domain.ChoiceVerdict{domain.ChoiceElect, domain.ChoicePass})
		voters := rapid.IntRange(0, 20).Draw(rt, "voters")

		voting := testutil.Election("v1", testutil.Now, candidates...)

		var votes domain.VoteList
		counters := make(domain.CounterMap)
		for i := 0; i < voters; i++ {
			var choices []domain.Choice
			for _, c := range candidates {
				if !rapid.Bool().Draw(rt, "chooses") {
					continue
				}
				v := verdicts.Draw(rt, "verdict")
				choices = append(choices, domain.CandidateChoice(c, v))
				if counters[c] == nil {
					counters[c] = make(map[string]int)
				}
				counters[c][string(v)]++
			}
			votes = append(votes, testutil.Vote("v1", string(rune('A'+i)), choices...))
		}

		fromList, err := Seed(voting)
		require.NoError(rt, err)
		fromList, err = Aggregate(domain.VotingElection, votes, fromList)
		require.NoError(rt, err)

		fromCounters, err := Seed(voting)
		require.NoError(rt, err)
		fromCounters, err = Aggregate(domain.VotingElection, counters, fromCounters)
		require.NoError(rt, err)

		assert.Equal(rt, fromList, fromCounters)
	})
}

// Every declared candidate is present with zero counters when nobody voted for it
func TestZeroVoteCandidatesPresent(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		candidates := rapid.SliceOfNDistinct(rapid.StringMatching(`c[0-9]`), 1, 6, rapid.ID[string]).Draw(rt, "candidates")
		voted := rapid.SliceOfNDistinct(rapid.SampledFrom(candidates), 0, len(candidates), rapid.ID[string]).Draw(rt, "voted")

		var votes domain.VoteList
		for _, c := range voted {
			votes = append(votes, testutil.Vote("v1", "x-"+c, domain.CandidateChoice(c, domain.ChoiceGuilty)))
		}

		seed, err := Seed(testutil.Judgment("v1", testutil.Now.Add(-time.Hour), candidates...))
		require.NoError(rt, err)
		stats, err := Aggregate(domain.VotingJudgment, votes, seed)
		require.NoError(rt, err)

		assert.Len(rt, stats, len(candidates))
		got := make(map[string]bool, len(voted))
		for _, c := range voted {
			got[c] = true
		}
		for _, c := range candidates {
			require.Contains(rt, stats, c)
			if !got[c] {
				assert.Equal(rt, &domain.JudgmentStats{}, stats[c])
			}
		}
	})
}
