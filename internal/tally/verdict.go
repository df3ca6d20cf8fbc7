package tally

import (
	"sort"

	"poll-engine/internal/domain"
)

type pendingEntry struct {
	target string
	elect  int
}

// Resolve computes the verdict of every candidate in a finished voting.
// Option records carry no verdict and are left out of the map.
//
// With maxElected == 1 the election becomes single-winner: candidates that
// would be elected are held as pending and only a strict unique maximum of
// elect votes wins. Every other pending candidate, or all of them on a tie
// at the top, ends up not elected.
func Resolve(stats domain.StatsMap, requiredVotes float64, maxElected int) domain.VerdictMap {
	verdicts := make(domain.VerdictMap, len(stats))
	var pending []pendingEntry

	for target, s := range stats {
		if float64(s.Total()) < requiredVotes {
			if _, ok := s.(*domain.OptionStats); !ok {
				verdicts[target] = domain.VerdictUndecided
			}
			continue
		}

		switch st := s.(type) {
		case *domain.ElectionStats:
			switch {
			case st.Elect > st.Pass && maxElected == 1:
				verdicts[target] = domain.VerdictPending
				pending = append(pending, pendingEntry{target: target, elect: st.Elect})
			case st.Elect > st.Pass:
				verdicts[target] = domain.VerdictElected
			default:
				verdicts[target] = domain.VerdictNotElected
			}
		case *domain.JudgmentStats:
			switch {
			case st.Guilty > st.Innocent:
				verdicts[target] = domain.VerdictGuilty
			case st.Innocent > st.Guilty:
				verdicts[target] = domain.VerdictInnocent
			default:
				verdicts[target] = domain.VerdictUndecided
			}
		}
	}

	breakTie(verdicts, pending)
	return verdicts
}

// breakTie settles every pending entry
func breakTie(verdicts domain.VerdictMap, pending []pendingEntry) {
	if len(pending) == 0 {
		return
	}

	sort.Slice(pending, func(i, j int) bool {
		if pending[i].elect != pending[j].elect {
			return pending[i].elect > pending[j].elect
		}
		return pending[i].target < pending[j].target
	})

	for _, p := range pending {
		verdicts[p.target] = domain.VerdictNotElected
	}
	if len(pending) > 1 && pending[0].elect == pending[1].elect {
		return
	}
	verdicts[pending[0].target] = domain.VerdictElected
}
