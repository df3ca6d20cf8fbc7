package collaborators

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"poll-engine/internal/domain"
)

// Collaborators is the persistence and retrieval boundary of the engine.
// Retrieval methods return a nil record when nothing matches.
type Collaborators interface {
	PersistVoting(ctx context.Context, voting domain.VotingData) error
	PersistVoters(ctx context.Context, voters []domain.Voter) error
	PersistVote(ctx context.Context, vote domain.VoteData) error
	RetrieveVoting(ctx context.Context, votingID string) (*domain.VotingData, error)
	RetrieveVoter(ctx context.Context, userID string) (*domain.Voter, error)
	RetrieveVotes(ctx context.Context, votingID string) (domain.VotesSource, error)
	CheckActiveVoters(ctx context.Context, voterIDs []string) (map[string]bool, error)
	CountActiveVoters(ctx context.Context) (int, error)
	HasVoted(ctx context.Context, voterID, votingID string) (bool, error)
}

// Slot names one collaborator operation
type Slot string

const (
	SlotPersistVoting     Slot = "persistVoting"
	SlotPersistVoters     Slot = "persistVoters"
	SlotPersistVote       Slot = "persistVote"
	SlotRetrieveVoting    Slot = "retrieveVoting"
	SlotRetrieveVoter     Slot = "retrieveVoter"
	SlotRetrieveVotes     Slot = "retrieveVotes"
	SlotCheckActiveVoters Slot = "checkActiveVoters"
	SlotCountActiveVoters Slot = "countActiveVoters"
	SlotHasVoted          Slot = "hasVoted"
)

// Slots lists every collaborator slot in declaration order
var Slots = []Slot{
	SlotPersistVoting,
	SlotPersistVoters,
	SlotPersistVote,
	SlotRetrieveVoting,
	SlotRetrieveVoter,
	SlotRetrieveVotes,
	SlotCheckActiveVoters,
	SlotCountActiveVoters,
	SlotHasVoted,
}

// ErrNotImplemented is returned by every slot that was never installed
var ErrNotImplemented = errors.New("not implemented")

func notImplemented(slot Slot) error {
	return fmt.Errorf("%s %w", slot, ErrNotImplemented)
}

// Funcs holds one function per slot. Nil fields are left untouched by Install.
type Funcs struct {
	PersistVoting     func(ctx context.Context, voting domain.VotingData) error
	PersistVoters     func(ctx context.Context, voters []domain.Voter) error
	PersistVote       func(ctx context.Context, vote domain.VoteData) error
	RetrieveVoting    func(ctx context.Context, votingID string) (*domain.VotingData, error)
	RetrieveVoter     func(ctx context.Context, userID string) (*domain.Voter, error)
	RetrieveVotes     func(ctx context.Context, votingID string) (domain.VotesSource, error)
	CheckActiveVoters func(ctx context.Context, voterIDs []string) (map[string]bool, error)
	CountActiveVoters func(ctx context.Context) (int, error)
	HasVoted          func(ctx context.Context, voterID, votingID string) (bool, error)
}

// FuncsOf exposes every method of c as a slot function
func FuncsOf(c Collaborators) Funcs {
	return Funcs{
		PersistVoting:     c.PersistVoting,
		PersistVoters:     c.PersistVoters,
		PersistVote:       c.PersistVote,
		RetrieveVoting:    c.RetrieveVoting,
		RetrieveVoter:     c.RetrieveVoter,
		RetrieveVotes:     c.RetrieveVotes,
		CheckActiveVoters: c.CheckActiveVoters,
		CountActiveVoters: c.CountActiveVoters,
		HasVoted:          c.HasVoted,
	}
}

func unimplementedFuncs() Funcs {
	return Funcs{
		PersistVoting: func(context.Context, domain.VotingData) error {
			return notImplemented(SlotPersistVoting)
		},
		PersistVoters: func(context.Context, []domain.Voter) error {
			return notImplemented(SlotPersistVoters)
		},
		PersistVote: func(context.Context, domain.VoteData) error {
			return notImplemented(SlotPersistVote)
		},
		RetrieveVoting: func(context.Context, string) (*domain.VotingData, error) {
			return nil, notImplemented(SlotRetrieveVoting)
		},
		RetrieveVoter: func(context.Context, string) (*domain.Voter, error) {
			return nil, notImplemented(SlotRetrieveVoter)
		},
		RetrieveVotes: func(context.Context, string) (domain.VotesSource, error) {
			return nil, notImplemented(SlotRetrieveVotes)
		},
		CheckActiveVoters: func(context.Context, []string) (map[string]bool, error) {
			return nil, notImplemented(SlotCheckActiveVoters)
		},
		CountActiveVoters: func(context.Context) (int, error) {
			return 0, notImplemented(SlotCountActiveVoters)
		},
		HasVoted: func(context.Context, string, string) (bool, error) {
			return false, notImplemented(SlotHasVoted)
		},
	}
}

// Registry is a replaceable set of collaborator slots. Every slot starts as a
// stub failing with ErrNotImplemented. A Registry is itself a Collaborators.
type Registry struct {
	mutex     sync.RWMutex
	funcs     Funcs
	installed map[Slot]bool
}

// NewRegistry creates a registry with every slot unimplemented
func NewRegistry() *Registry {
	r := &Registry{}
	r.Reset()
	return r
}

var defaultRegistry = NewRegistry()

// Default returns the process-wide registry
func Default() *Registry {
	return defaultRegistry
}

// Install overrides the slots whose function is non-nil
func (r *Registry) Install(f Funcs) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if f.PersistVoting != nil {
		r.funcs.PersistVoting = f.PersistVoting
		r.installed[SlotPersistVoting] = true
	}
	if f.PersistVoters != nil {
		r.funcs.PersistVoters = f.PersistVoters
		r.installed[SlotPersistVoters] = true
	}
	if f.PersistVote != nil {
		r.funcs.PersistVote = f.PersistVote
		r.installed[SlotPersistVote] = true
	}
	if f.RetrieveVoting != nil {
		r.funcs.RetrieveVoting = f.RetrieveVoting
		r.installed[SlotRetrieveVoting] = true
	}
	if f.RetrieveVoter != nil {
		r.funcs.RetrieveVoter = f.RetrieveVoter
		r.installed[SlotRetrieveVoter] = true
	}
	if f.RetrieveVotes != nil {
		r.funcs.RetrieveVotes = f.RetrieveVotes
		r.installed[SlotRetrieveVotes] = true
	}
	if f.CheckActiveVoters != nil {
		r.funcs.CheckActiveVoters = f.CheckActiveVoters
		r.installed[SlotCheckActiveVoters] = true
	}
	if f.CountActiveVoters != nil {
		r.funcs.CountActiveVoters = f.CountActiveVoters
		r.installed[SlotCountActiveVoters] = true
	}
	if f.HasVoted != nil {
		r.funcs.HasVoted = f.HasVoted
		r.installed[SlotHasVoted] = true
	}
}

// InstallCollaborators overrides every slot with the methods of c
func (r *Registry) InstallCollaborators(c Collaborators) {
	r.Install(FuncsOf(c))
}

// Reset restores every slot to its unimplemented stub
func (r *Registry) Reset() {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.funcs = unimplementedFuncs()
	r.installed = make(map[Slot]bool, len(Slots))
	for _, slot := range Slots {
		r.installed[slot] = false
	}
}

// Implemented reports, per slot, whether it was overridden from its stub
func (r *Registry) Implemented() map[Slot]bool {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	report := make(map[Slot]bool, len(r.installed))
	for slot, ok := range r.installed {
		report[slot] = ok
	}
	return report
}

// Missing lists the slots still unimplemented, in declaration order
func (r *Registry) Missing() []Slot {
	report := r.Implemented()
	var missing []Slot
	for _, slot := range Slots {
		if !report[slot] {
			missing = append(missing, slot)
		}
	}
	return missing
}

func (r *Registry) current() Funcs {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return r.funcs
}

func (r *Registry) PersistVoting(ctx context.Context, voting domain.VotingData) (err error) {
	fn := r.current().PersistVoting
	defer recoverThrown(&err)
	return fn(ctx, voting)
}

func (r *Registry) PersistVoters(ctx context.Context, voters []domain.Voter) (err error) {
	fn := r.current().PersistVoters
	defer recoverThrown(&err)
	return fn(ctx, voters)
}

func (r *Registry) PersistVote(ctx context.Context, vote domain.VoteData) (err error) {
	fn := r.current().PersistVote
	defer recoverThrown(&err)
	return fn(ctx, vote)
}

func (r *Registry) RetrieveVoting(ctx context.Context, votingID string) (voting *domain.VotingData, err error) {
	fn := r.current().RetrieveVoting
	defer recoverThrown(&err)
	return fn(ctx, votingID)
}

func (r *Registry) RetrieveVoter(ctx context.Context, userID string) (voter *domain.Voter, err error) {
	fn := r.current().RetrieveVoter
	defer recoverThrown(&err)
	return fn(ctx, userID)
}

func (r *Registry) RetrieveVotes(ctx context.Context, votingID string) (source domain.VotesSource, err error) {
	fn := r.current().RetrieveVotes
	defer recoverThrown(&err)
	return fn(ctx, votingID)
}

func (r *Registry) CheckActiveVoters(ctx context.Context, voterIDs []string) (active map[string]bool, err error) {
	fn := r.current().CheckActiveVoters
	defer recoverThrown(&err)
	return fn(ctx, voterIDs)
}

func (r *Registry) CountActiveVoters(ctx context.Context) (count int, err error) {
	fn := r.current().CountActiveVoters
	defer recoverThrown(&err)
	return fn(ctx)
}

func (r *Registry) HasVoted(ctx context.Context, voterID, votingID string) (voted bool, err error) {
	fn := r.current().HasVoted
	defer recoverThrown(&err)
	return fn(ctx, voterID, votingID)
}
