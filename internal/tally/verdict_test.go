package tally

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"poll-engine/internal/domain"
	"poll-engine/internal/testutil"
)

func TestResolveElection(t *testing.T) {
	tests := []struct {
		name       string
		stats      domain.StatsMap
		required   float64
		maxElected int
		want       domain.VerdictMap
	}{
		{
			name: "MajorityElects",
			stats: domain.StatsMap{
				"a": &domain.ElectionStats{Elect: 3, Pass: 1},
				"b": &domain.ElectionStats{Elect: 2, Pass: 2},
				"c": &domain.ElectionStats{Elect: 0, Pass: 4},
			},
			want: domain.VerdictMap{
				"a": domain.VerdictElected,
				"b": domain.VerdictNotElected,
				"c": domain.VerdictNotElected,
			},
		},
		{
			name: "BelowQuorumIsUndecided",
			stats: domain.StatsMap{
				"a": &domain.ElectionStats{Elect: 3, Pass: 0},
				"b": &domain.ElectionStats{Elect: 4, Pass: 1},
			},
			required: 4,
			want: domain.VerdictMap{
				"a": domain.VerdictUndecided,
				"b": domain.VerdictElected,
			},
		},
		{
			name: "SingleWinnerUniqueMaximum",
			stats: domain.StatsMap{
				"a": &domain.ElectionStats{Elect: 5, Pass: 1},
				"b": &domain.ElectionStats{Elect: 4, Pass: 2},
				"c": &domain.ElectionStats{Elect: 1, Pass: 5},
			},
			maxElected: 1,
			want: domain.VerdictMap{
				"a": domain.VerdictElected,
				"b": domain.VerdictNotElected,
				"c": domain.VerdictNotElected,
			},
		},
		{
			name: "SingleWinnerTieElectsNobody",
			stats: domain.StatsMap{
				"a": &domain.ElectionStats{Elect: 4, Pass: 2},
				"b": &domain.ElectionStats{Elect: 4, Pass: 1},
				"c": &domain.ElectionStats{Elect: 3, Pass: 0},
			},
			maxElected: 1,
			want: domain.VerdictMap{
				"a": domain.VerdictNotElected,
				"b": domain.VerdictNotElected,
				"c": domain.VerdictNotElected,
			},
		},
		{
			name: "SingleWinnerLonePending",
			stats: domain.StatsMap{
				"a": &domain.ElectionStats{Elect: 3, Pass: 2},
				"b": &domain.ElectionStats{Elect: 2, Pass: 3},
			},
			maxElected: 1,
			want: domain.VerdictMap{
				"a": domain.VerdictElected,
				"b": domain.VerdictNotElected,
			},
		},
		{
			name: "SingleWinnerQuorumUndecidedNotPending",
			stats: domain.StatsMap{
				"a": &domain.ElectionStats{Elect: 2, Pass: 0},
				"b": &domain.ElectionStats{Elect: 3, Pass: 1},
			},
			required:   3,
			maxElected: 1,
			want: domain.VerdictMap{
				"a": domain.VerdictUndecided,
				"b": domain.VerdictElected,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.stats, tt.required, tt.maxElected))
		})
	}
}

func TestResolveJudgment(t *testing.T) {
	stats := domain.StatsMap{
		"a": &domain.JudgmentStats{Guilty: 2, Innocent: 1},
		"b": &domain.JudgmentStats{Guilty: 1, Innocent: 1},
		"c": &domain.JudgmentStats{Guilty: 0, Innocent: 3},
		"d": &domain.JudgmentStats{},
	}

	assert.Equal(t, domain.VerdictMap{
		"a": domain.VerdictGuilty,
		"b": domain.VerdictUndecided,
		"c": domain.VerdictInnocent,
		"d": domain.VerdictUndecided,
	}, Resolve(stats, 0, 0))

	assert.Equal(t, domain.VerdictMap{
		"a": domain.VerdictGuilty,
		"b": domain.VerdictUndecided,
		"c": domain.VerdictInnocent,
		"d": domain.VerdictUndecided,
	}, Resolve(stats, 2.5, 0))
}

func TestResolveOptionHasNoVerdict(t *testing.T) {
	stats := domain.StatsMap{
		"red":  &domain.OptionStats{Votes: 4},
		"blue": &domain.OptionStats{},
	}
	assert.Empty(t, Resolve(stats, 0, 0))
	assert.Empty(t, Resolve(stats, 10, 1))
}

func TestResolveScenarios(t *testing.T) {
	t.Run("ElectionThreeToTwo", func(t *testing.T) {
		elect := func(winner, loser string) []domain.Choice {
			return []domain.Choice{
				domain.CandidateChoice(winner, domain.ChoiceElect),
				domain.CandidateChoice(loser, domain.ChoicePass),
			}
		}
		votes := domain.VoteList{
			testutil.Vote("v1", "1", elect("a", "b")...),
			testutil.Vote("v1", "2", elect("a", "b")...),
			testutil.Vote("v1", "3", elect("b", "a")...),
			testutil.Vote("v1", "4", elect("a", "b")...),
			testutil.Vote("v1", "5", elect("b", "a")...),
		}

		seed, err := Seed(testutil.Election("v1", testutil.Now, "a", "b"))
		require.NoError(t, err)
		stats, err := Aggregate(domain.VotingElection, votes, seed)
		require.NoError(t, err)

		verdicts := Resolve(stats, 0, 1)
		assert.Equal(t, domain.VerdictElected, verdicts["a"])
		assert.Equal(t, domain.VerdictNotElected, verdicts["b"])
	})

	t.Run("JudgmentTwoCandidates", func(t *testing.T) {
		votes := domain.VoteList{
			testutil.Vote("v1", "1", domain.CandidateChoice("a", domain.ChoiceGuilty)),
			testutil.Vote("v1", "2", domain.CandidateChoice("a", domain.ChoiceGuilty)),
			testutil.Vote("v1", "3", domain.CandidateChoice("a", domain.ChoiceInnocent)),
			testutil.Vote("v1", "4", domain.CandidateChoice("b", domain.ChoiceGuilty)),
			testutil.Vote("v1", "5", domain.CandidateChoice("b", domain.ChoiceInnocent)),
		}

		seed, err := Seed(testutil.Judgment("v1", testutil.Now, "a", "b"))
		require.NoError(t, err)
		stats, err := Aggregate(domain.VotingJudgment, votes, seed)
		require.NoError(t, err)

		assert.Equal(t, domain.VerdictMap{
			"a": domain.VerdictGuilty,
			"b": domain.VerdictUndecided,
		}, Resolve(stats, 0, 0))
	})
}

func electionStatsGen() *rapid.Generator[domain.StatsMap] {
	return rapid.Custom(func(t *rapid.T) domain.StatsMap {
		n := rapid.IntRange(0, 8).Draw(t, "candidates")
		stats := make(domain.StatsMap, n)
		for i := 0; i < n; i++ {
			stats[fmt.Sprintf("c%d", i)] = &domain.ElectionStats{
				Elect: rapid.IntRange(0, 10).Draw(t, "elect"),
				Pass:  rapid.IntRange(0, 10).Draw(t, "pass"),
			}
		}
		return stats
	})
}

func TestResolveSingleWinnerProperties(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		stats := electionStatsGen().Draw(rt, "stats")
		required := float64(rapid.IntRange(0, 12).Draw(rt, "required"))

		verdicts := Resolve(stats, required, 1)
		require.Len(rt, verdicts, len(stats))

		elected := 0
		best, ties := -1, 0
		for target, s := range stats {
			st := s.(*domain.ElectionStats)
			v := verdicts[target]
			assert.NotEqual(rt, domain.VerdictPending, v)

			if float64(st.Total()) < required {
				assert.Equal(rt, domain.VerdictUndecided, v)
				continue
			}
			if v == domain.VerdictElected {
				elected++
			}
			if st.Elect > st.Pass {
				switch {
				case st.Elect > best:
					best, ties = st.Elect, 1
				case st.Elect == best:
					ties++
				}
			}
		}

		switch {
		case best < 0 || ties > 1:
			assert.Equal(rt, 0, elected)
		default:
			assert.Equal(rt, 1, elected)
		}
	})
}

func TestResolveQuorumProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		guilty := rapid.IntRange(0, 10).Draw(rt, "guilty")
		innocent := rapid.IntRange(0, 10).Draw(rt, "innocent")
		totalVoters := rapid.IntRange(1, 40).Draw(rt, "totalVoters")
		percentage := rapid.Float64Range(0, 1).Draw(rt, "percentage")

		voting := testutil.Judgment("v1", testutil.Now, "a")
		voting.TotalVoters = totalVoters
		voting.RequiredParticipationPercentage = &percentage

		stats := domain.StatsMap{"a": &domain.JudgmentStats{Guilty: guilty, Innocent: innocent}}
		verdicts := Resolve(stats, voting.RequiredVotes(), 0)

		if float64(guilty+innocent) < voting.RequiredVotes() {
			assert.Equal(rt, domain.VerdictUndecided, verdicts["a"])
		}
	})
}
