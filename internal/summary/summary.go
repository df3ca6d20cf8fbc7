package summary

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"poll-engine/internal/collaborators"
	"poll-engine/internal/domain"
	"poll-engine/internal/tally"
	"poll-engine/pkg/logger"
)

// State tells whether a summary is still subject to change
type State string

const (
	StatePartial State = "partial"
	StateFinal   State = "final"
)

// Summary is the externally visible result of a voting.
// Verdict is only set, and only serialized, once the state is final.
type Summary struct {
	Voting  domain.VotingData `json:"voting"`
	Stats   domain.StatsMap   `json:"stats"`
	State   State             `json:"state"`
	Verdict domain.VerdictMap `json:"verdict,omitempty"`
}

// MarshalJSON writes the verdict field exactly when the summary is final
func (s Summary) MarshalJSON() ([]byte, error) {
	out := struct {
		Voting  domain.VotingData  `json:"voting"`
		Stats   domain.StatsMap    `json:"stats"`
		State   State              `json:"state"`
		Verdict *domain.VerdictMap `json:"verdict,omitempty"`
	}{
		Voting: s.Voting,
		Stats:  s.Stats,
		State:  s.State,
	}
	if s.State == StateFinal {
		verdict := s.Verdict
		if verdict == nil {
			verdict = domain.VerdictMap{}
		}
		out.Verdict = &verdict
	}
	return json.Marshal(out)
}

// Orchestrator builds voting summaries from the retrieval collaborators
type Orchestrator struct {
	collab collaborators.Collaborators
	clock  domain.Clock
	log    *logger.Logger
}

func NewOrchestrator(collab collaborators.Collaborators, clock domain.Clock, log *logger.Logger) *Orchestrator {
	if clock == nil {
		clock = domain.SystemClock{}
	}
	return &Orchestrator{
		collab: collab,
		clock:  clock,
		log:    logger.Resolve(log).WithComponent("summary"),
	}
}

// Summarize retrieves the voting and its votes concurrently, tallies them
// and, when the voting has ended, resolves the verdicts. Both retrievals
// always run to completion; the first failure is returned.
func (o *Orchestrator) Summarize(ctx context.Context, votingID string) (_ *Summary, err error) {
	start := time.Now()
	defer func() {
		o.log.WithField("voting_id", votingID).PerformanceLogger("summarize", time.Since(start), err == nil)
	}()

	var (
		g      errgroup.Group
		voting *domain.VotingData
		votes  domain.VotesSource
	)

	g.Go(func() (err error) {
		voting, err = o.collab.RetrieveVoting(ctx, votingID)
		if err != nil {
			return fmt.Errorf("Unable to retrieve voting: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		votes, err = o.collab.RetrieveVotes(ctx, votingID)
		if err != nil {
			return fmt.Errorf("Unable to retrieve votes: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		o.log.Error("Summary retrieval failed", "voting_id", votingID, "error", err.Error())
		return nil, err
	}
	if voting == nil {
		o.log.Warning("Summary requested for unknown voting", "voting_id", votingID)
		return nil, domain.ErrVotingNotFound.WithDetails("voting %s", votingID)
	}

	stats, err := tally.Seed(voting)
	if err != nil {
		return nil, err
	}
	stats, err = tally.Aggregate(voting.VotingType, votes, stats)
	if err != nil {
		o.log.Error("Tally failed", "voting_id", votingID, "error", err.Error())
		return nil, err
	}

	summary := &Summary{
		Voting: *voting,
		Stats:  stats,
		State:  StatePartial,
	}
	if voting.HasEnded(o.clock.Now()) {
		summary.State = StateFinal
		summary.Verdict = tally.Resolve(stats, voting.RequiredVotes(), voting.MaxElected())
	}

	o.log.Debug("Summary computed", "voting_id", votingID, "state", string(summary.State))
	return summary, nil
}
