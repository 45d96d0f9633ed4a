package match

import (
	"context"
	"errors"
	"testing"

	"github.com/Debyte404/Obscura/internal/domain"
	"github.com/Debyte404/Obscura/internal/repository"
	"github.com/Debyte404/Obscura/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// leakyUsers ignores the exclusion filter.
type leakyUsers struct {
	repository.UserRepository
	profiles []*domain.UserProfile
	err      error
	gotLimit int
}

func (l *leakyUsers) FindCandidates(_ context.Context, _ repository.CandidateFilter, limit int) ([]*domain.UserProfile, error) {
	l.gotLimit = limit
	return l.profiles, l.err
}

func profileIDs(profiles []*domain.UserProfile) []string {
	out := make([]string, len(profiles))
	for i, p := range profiles {
		out[i] = p.ID
	}
	return out
}

func TestCandidatePool_Fetch(t *testing.T) {
	ctx := context.Background()
	requester := newProfile("req", "Goa", domain.LanguageEnglish, tagsA)
	requester.BlockedUsers = []string{"blocked"}
	requester.RecentMatches = []string{"recent"}

	t.Run("store filters exclusions", func(t *testing.T) {
		store := memory.NewStore()
		store.PutUser(requester)
		for _, id := range []string{"blocked", "recent", "ok-1", "ok-2"} {
			store.PutUser(newProfile(id, "Goa", domain.LanguageHindi, tagsB))
		}
		unfinished := newProfile("unfinished", "Goa", domain.LanguageHindi, tagsB)
		unfinished.FirstName = ""
		store.PutUser(unfinished)

		got, err := NewCandidatePool(store.Users(), 0).Fetch(ctx, requester)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"ok-1", "ok-2"}, profileIDs(got))
	})

	t.Run("exclusions are re-checked", func(t *testing.T) {
		noTags := newProfile("no-tags", "Goa", domain.LanguageHindi, nil)
		users := &leakyUsers{profiles: []*domain.UserProfile{
			requester,
			newProfile("blocked", "Goa", domain.LanguageHindi, tagsB),
			newProfile("recent", "Goa", domain.LanguageHindi, tagsB),
			noTags,
			nil,
			newProfile("ok", "Goa", domain.LanguageHindi, tagsB),
		}}

		got, err := NewCandidatePool(users, 10).Fetch(ctx, requester)
		require.NoError(t, err)
		assert.Equal(t, []string{"ok"}, profileIDs(got))
		assert.Equal(t, 10, users.gotLimit)
	})

	t.Run("nothing eligible", func(t *testing.T) {
		store := memory.NewStore()
		store.PutUser(requester)
		store.PutUser(newProfile("blocked", "Goa", domain.LanguageHindi, tagsB))

		_, err := NewCandidatePool(store.Users(), 0).Fetch(ctx, requester)
		assert.ErrorIs(t, err, domain.ErrNoCandidates)
	})

	t.Run("store errors are wrapped", func(t *testing.T) {
		boom := errors.New("connection reset")
		_, err := NewCandidatePool(&leakyUsers{err: boom}, 0).Fetch(ctx, requester)
		assert.ErrorIs(t, err, boom)
		assert.NotErrorIs(t, err, domain.ErrNoCandidates)
	})

	t.Run("limit is honoured", func(t *testing.T) {
		store := memory.NewStore()
		store.PutUser(requester)
		for _, id := range candidateIDs(80) {
			store.PutUser(newProfile(id, "Goa", domain.LanguageHindi, tagsB))
		}

		got, err := NewCandidatePool(store.Users(), 0).Fetch(ctx, requester)
		require.NoError(t, err)
		assert.Len(t, got, MaxPoolSize)
	})
}

func TestNewCandidatePool_Limit(t *testing.T) {
	assert.Equal(t, MaxPoolSize, NewCandidatePool(nil, 0).Limit())
	assert.Equal(t, MaxPoolSize, NewCandidatePool(nil, 500).Limit())
	assert.Equal(t, 10, NewCandidatePool(nil, 10).Limit())
}
