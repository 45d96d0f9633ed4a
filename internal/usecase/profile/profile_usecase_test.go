package profile

import (
	"context"
	"testing"

	"github.com/Debyte404/Obscura/internal/domain"
	"github.com/Debyte404/Obscura/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileUseCase_GetMyProfile(t *testing.T) {
	store := memory.NewStore()
	store.PutUser(&domain.UserProfile{
		ID:           "ready",
		FirstName:    "Asha",
		HomeRegion:   "Kerala",
		Language:     domain.LanguageEnglish,
		Tags:         []string{"Movies", "Cooking", "Running", "Photography", "Podcasts"},
		Introduction: "Film buff who cooks.",
		Preference:   "Someone curious.",
	})
	store.PutUser(&domain.UserProfile{ID: "fresh", UserName: "fresh"})
	uc := NewProfileUseCase(store.Users())
	ctx := context.Background()

	ready, err := uc.GetMyProfile(ctx, "ready")
	require.NoError(t, err)
	assert.True(t, ready.Onboarded)
	assert.True(t, ready.Eligible)
	assert.Empty(t, ready.ValidationError)
	assert.Equal(t, "Asha", ready.FirstName)

	fresh, err := uc.GetMyProfile(ctx, "fresh")
	require.NoError(t, err)
	assert.False(t, fresh.Onboarded)
	assert.False(t, fresh.Eligible)
	assert.Contains(t, fresh.ValidationError, domain.ErrInvalidProfile.Error())

	_, err = uc.GetMyProfile(ctx, "ghost")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestProfileUseCase_GetCatalog(t *testing.T) {
	catalog := NewProfileUseCase(nil).GetCatalog()

	assert.Len(t, catalog.Regions, 36)
	assert.ElementsMatch(t, []domain.Language{domain.LanguageHindi, domain.LanguageEnglish}, catalog.Languages)
	assert.Equal(t, 5, catalog.RequiredTagCount)
	require.Len(t, catalog.TagCategories, len(domain.TagCategories))
	for i := 1; i < len(catalog.TagCategories); i++ {
		assert.Less(t, catalog.TagCategories[i-1].Name, catalog.TagCategories[i].Name)
	}
}

func TestDemoProfiles(t *testing.T) {
	profiles := DemoProfiles(20, 7)
	require.Len(t, profiles, 20)

	seen := map[string]bool{}
	for _, p := range profiles {
		assert.NoError(t, p.Validate(), p.ID)
		assert.True(t, p.IsOnboarded())
		assert.False(t, seen[p.ID])
		seen[p.ID] = true
	}

	again := DemoProfiles(20, 7)
	assert.Equal(t, profiles[5].Tags, again[5].Tags)
	assert.Equal(t, profiles[5].HomeRegion, again[5].HomeRegion)
}
