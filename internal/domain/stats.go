package domain

import "fmt"

// Counter names used by raw choices and pre-aggregated counters
const (
	CounterElect    = string(ChoiceElect)
	CounterPass     = string(ChoicePass)
	CounterGuilty   = string(ChoiceGuilty)
	CounterInnocent = string(ChoiceInnocent)
	CounterVotes    = "votes"
)

// Stats is the per-candidate (or per-option) counter record of a voting.
// Implementations are *ElectionStats, *JudgmentStats and *OptionStats.
type Stats interface {
	// Add increments the named counter by n. It reports false when the
	// counter does not belong to this variant.
	Add(counter string, n int) bool
	// Total is the number of choices counted in this record
	Total() int
	// Counters returns the record as counter name to value
	Counters() map[string]int
}

// ElectionStats counts elect/pass choices for a candidate
type ElectionStats struct {
	Elect int `json:"elect"`
	Pass  int `json:"pass"`
}

func (s *ElectionStats) Add(counter string, n int) bool {
	switch counter {
	case CounterElect:
		s.Elect += n
	case CounterPass:
		s.Pass += n
	default:
		return false
	}
	return true
}

func (s *ElectionStats) Total() int { return s.Elect + s.Pass }

func (s *ElectionStats) Counters() map[string]int {
	return map[string]int{CounterElect: s.Elect, CounterPass: s.Pass}
}

// JudgmentStats counts guilty/innocent choices for a candidate
type JudgmentStats struct {
	Guilty   int `json:"guilty"`
	Innocent int `json:"innocent"`
}

func (s *JudgmentStats) Add(counter string, n int) bool {
	switch counter {
	case CounterGuilty:
		s.Guilty += n
	case CounterInnocent:
		s.Innocent += n
	default:
		return false
	}
	return true
}

func (s *JudgmentStats) Total() int { return s.Guilty + s.Innocent }

func (s *JudgmentStats) Counters() map[string]int {
	return map[string]int{CounterGuilty: s.Guilty, CounterInnocent: s.Innocent}
}

// OptionStats counts selections of a free-form option
type OptionStats struct {
	Votes int `json:"votes"`
}

func (s *OptionStats) Add(counter string, n int) bool {
	if counter != CounterVotes {
		return false
	}
	s.Votes += n
	return true
}

func (s *OptionStats) Total() int { return s.Votes }

func (s *OptionStats) Counters() map[string]int {
	return map[string]int{CounterVotes: s.Votes}
}

// ZeroStats returns the zero-valued record for a voting type
func ZeroStats(t VotingType) (Stats, error) {
	switch t {
	case VotingElection:
		return &ElectionStats{}, nil
	case VotingJudgment:
		return &JudgmentStats{}, nil
	case VotingOption:
		return &OptionStats{}, nil
	default:
		return nil, fmt.Errorf("unknown voting type %q", t)
	}
}

// StatsMap maps a candidate id or option value to its counters
type StatsMap map[string]Stats

// VotesSource is what the votes retrieval collaborator returns: either the
// raw VoteList or an already aggregated CounterMap.
type VotesSource interface {
	isVotesSource()
}

// VoteList is a sequence of raw vote records
type VoteList []VoteData

func (VoteList) isVotesSource() {}

// CounterMap maps a candidate id or option value to counter totals
type CounterMap map[string]map[string]int

func (CounterMap) isVotesSource() {}

// Verdict is the resolved outcome for a candidate once a voting ended
type Verdict string

const (
	VerdictElected    Verdict = "elected"
	VerdictNotElected Verdict = "not elected"
	VerdictGuilty     Verdict = "guilty"
	VerdictInnocent   Verdict = "innocent"
	VerdictUndecided  Verdict = "undecided"
	VerdictPending    Verdict = "pending"
)

// VerdictMap maps a candidate id to its verdict
type VerdictMap map[string]Verdict
