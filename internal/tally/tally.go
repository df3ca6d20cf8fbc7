package tally

import (
	"poll-engine/internal/domain"
)

// Seed returns a zero-valued record for every candidate or option declared
// on the voting, so targets without votes still show up in the result.
func Seed(voting *domain.VotingData) (domain.StatsMap, error) {
	stats := make(domain.StatsMap)
	for _, target := range voting.Targets() {
		zero, err := domain.ZeroStats(voting.VotingType)
		if err != nil {
			return nil, domain.ErrInvalidVotingType.WithDetails("%q", voting.VotingType)
		}
		stats[target] = zero
	}
	return stats, nil
}

// Aggregate merges a votes source into the given stats map and returns it.
// A nil map is allocated. Raw votes increment one counter per choice;
// pre-aggregated counters are summed onto the existing records.
func Aggregate(votingType domain.VotingType, source domain.VotesSource, into domain.StatsMap) (domain.StatsMap, error) {
	if into == nil {
		into = make(domain.StatsMap)
	}

	switch src := source.(type) {
	case nil:
		return into, nil
	case domain.VoteList:
		for _, vote := range src {
			for _, choice := range vote.Choices {
				target, counter := choiceCounter(votingType, choice)
				if err := add(votingType, into, target, counter, 1); err != nil {
					return nil, err
				}
			}
		}
	case domain.CounterMap:
		for target, counters := range src {
			if _, err := record(votingType, into, target); err != nil {
				return nil, err
			}
			for counter, n := range counters {
				if err := add(votingType, into, target, counter, n); err != nil {
					return nil, err
				}
			}
		}
	default:
		return nil, domain.ErrInvalidTally.WithDetails("unsupported votes source %T", source)
	}

	return into, nil
}

// choiceCounter returns the key and counter name a choice increments
func choiceCounter(votingType domain.VotingType, choice domain.Choice) (string, string) {
	if votingType == domain.VotingOption {
		return choice.Value, domain.CounterVotes
	}
	return choice.CandidateID, string(choice.Verdict)
}

func record(votingType domain.VotingType, stats domain.StatsMap, target string) (domain.Stats, error) {
	if s, ok := stats[target]; ok {
		return s, nil
	}
	zero, err := domain.ZeroStats(votingType)
	if err != nil {
		return nil, domain.ErrInvalidVotingType.WithDetails("%q", votingType)
	}
	stats[target] = zero
	return zero, nil
}

func add(votingType domain.VotingType, stats domain.StatsMap, target, counter string, n int) error {
	s, err := record(votingType, stats, target)
	if err != nil {
		return err
	}
	if !s.Add(counter, n) {
		return domain.ErrInvalidTally.WithDetails("counter %q is not valid for %s votings (target %q)",
			counter, votingType, target)
	}
	return nil
}
