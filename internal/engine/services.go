package engine

import (
	"poll-engine/internal/collaborators"
	"poll-engine/internal/domain"
	"poll-engine/internal/registrar"
	"poll-engine/internal/summary"
	"poll-engine/internal/validation"
	"poll-engine/pkg/config"
	"poll-engine/pkg/logger"
)

// Services contains every engine entry point, sharing one rule set, one set
// of collaborators, one clock and one id generator
type Services struct {
	Rules         *config.RuleSet
	Collaborators *collaborators.Registry
	Logger        *logger.Logger

	// Entry points
	Voters  *registrar.VoterRegistrar
	Votings *registrar.VotingRegistrar
	Votes   *registrar.VoteRegistrar
	Summary *summary.Orchestrator

	// Validators, usable on their own for dry runs
	VotingValidator *validation.VotingValidator
	VoteValidator   *validation.VoteValidator

	clock domain.Clock
	ids   domain.IDGenerator
}

// Option customizes the services container
type Option func(*Services)

// WithClock replaces the wall clock
func WithClock(clock domain.Clock) Option {
	return func(s *Services) { s.clock = clock }
}

// WithIDGenerator replaces the UUID generator
func WithIDGenerator(ids domain.IDGenerator) Option {
	return func(s *Services) { s.ids = ids }
}

// New creates a new services container. A nil collab uses the process-wide
// collaborator registry; any other implementation is installed into a
// private registry so that panics surface as errors.
func New(rules *config.RuleSet, collab collaborators.Collaborators, log *logger.Logger, opts ...Option) *Services {
	var reg *collaborators.Registry
	switch c := collab.(type) {
	case nil:
		reg = collaborators.Default()
	case *collaborators.Registry:
		reg = c
	default:
		reg = collaborators.NewRegistry()
		reg.InstallCollaborators(c)
	}

	s := &Services{
		Rules:         rules,
		Collaborators: reg,
		Logger:        logger.Resolve(log),
		clock:         domain.SystemClock{},
		ids:           domain.UUIDGenerator{},
	}
	for _, opt := range opts {
		opt(s)
	}

	s.Voters = registrar.NewVoterRegistrar(reg, s.clock, s.ids, s.Logger)
	s.Votings = registrar.NewVotingRegistrar(rules, reg, s.clock, s.ids, s.Logger)
	s.Votes = registrar.NewVoteRegistrar(rules, reg, s.clock, s.ids, s.Logger)
	s.Summary = summary.NewOrchestrator(reg, s.clock, s.Logger)
	s.VotingValidator = validation.NewVotingValidator(rules, reg)
	s.VoteValidator = validation.NewVoteValidator(rules, reg, s.clock)

	return s
}

// Diagnostics reports, per collaborator slot, whether a real implementation
// is installed
func (s *Services) Diagnostics() map[collaborators.Slot]bool {
	return s.Collaborators.Implemented()
}
