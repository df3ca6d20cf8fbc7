package collaborators

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"poll-engine/internal/domain"
	"poll-engine/internal/testutil"
)

func TestRegistryDefaultsFail(t *testing.T) {
	ctx := context.Background()
	r := NewRegistry()

	tests := []struct {
		slot Slot
		call func() error
	}{
		{SlotPersistVoting, func() error { return r.PersistVoting(ctx, domain.VotingData{}) }},
		{SlotPersistVoters, func() error { return r.PersistVoters(ctx, nil) }},
		{SlotPersistVote, func() error { return r.PersistVote(ctx, domain.VoteData{}) }},
		{SlotRetrieveVoting, func() error { _, err := r.RetrieveVoting(ctx, "v"); return err }},
		{SlotRetrieveVoter, func() error { _, err := r.RetrieveVoter(ctx, "u"); return err }},
		{SlotRetrieveVotes, func() error { _, err := r.RetrieveVotes(ctx, "v"); return err }},
		{SlotCheckActiveVoters, func() error { _, err := r.CheckActiveVoters(ctx, nil); return err }},
		{SlotCountActiveVoters, func() error { _, err := r.CountActiveVoters(ctx); return err }},
		{SlotHasVoted, func() error { _, err := r.HasVoted(ctx, "x", "v"); return err }},
	}
	require.Len(t, tests, len(Slots))

	for _, tt := range tests {
		t.Run(string(tt.slot), func(t *testing.T) {
			err := tt.call()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrNotImplemented)
			assert.Equal(t, string(tt.slot)+" not implemented", err.Error())
		})
	}

	assert.Equal(t, Slots, r.Missing())
}

func TestRegistryInstall(t *testing.T) {
	ctx := context.Background()
	r := NewRegistry()

	r.Install(Funcs{
		CountActiveVoters: func(context.Context) (int, error) { return 42, nil },
	})

	count, err := r.CountActiveVoters(ctx)
	require.NoError(t, err)
	assert.Equal(t, 42, count)

	_, err = r.HasVoted(ctx, "x", "v")
	assert.ErrorIs(t, err, ErrNotImplemented)

	report := r.Implemented()
	assert.True(t, report[SlotCountActiveVoters])
	assert.False(t, report[SlotHasVoted])
	assert.NotContains(t, r.Missing(), SlotCountActiveVoters)

	r.Reset()
	_, err = r.CountActiveVoters(ctx)
	assert.ErrorIs(t, err, ErrNotImplemented)
	assert.False(t, r.Implemented()[SlotCountActiveVoters])
}

func TestRegistryInstallCollaborators(t *testing.T) {
	collab := &testutil.MockCollaborators{}
	collab.On("HasVoted", mock.Anything, "x", "v").Return(true, nil).Once()

	r := NewRegistry()
	r.InstallCollaborators(collab)

	voted, err := r.HasVoted(context.Background(), "x", "v")
	require.NoError(t, err)
	assert.True(t, voted)
	assert.Empty(t, r.Missing())
	collab.AssertExpectations(t)
}

func TestRegistryNormalizesPanics(t *testing.T) {
	ctx := context.Background()
	r := NewRegistry()

	r.Install(Funcs{
		PersistVote: func(context.Context, domain.VoteData) error { panic("disk on fire") },
		RetrieveVoting: func(context.Context, string) (*domain.VotingData, error) {
			panic(errors.New("socket closed"))
		},
		CountActiveVoters: func(context.Context) (int, error) { panic(7) },
	})

	err := r.PersistVote(ctx, domain.VoteData{})
	require.Error(t, err)
	assert.Equal(t, "Thrown error: disk on fire", err.Error())

	_, err = r.RetrieveVoting(ctx, "v")
	require.Error(t, err)
	assert.Equal(t, "Thrown error: socket closed", err.Error())
	var thrown *ThrownError
	assert.True(t, errors.As(err, &thrown))

	_, err = r.CountActiveVoters(ctx)
	assert.EqualError(t, err, "Thrown error: 7")
}

func TestRegistryConcurrentInstallAndCall(t *testing.T) {
	r := NewRegistry()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			r.Install(Funcs{CountActiveVoters: func(context.Context) (int, error) { return n, nil }})
		}(i)
		go func() {
			defer wg.Done()
			_, _ = r.CountActiveVoters(ctx)
		}()
	}
	wg.Wait()

	_, err := r.CountActiveVoters(ctx)
	assert.NoError(t, err)
}
