package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validProfile() *UserProfile {
	return &UserProfile{
		ID:           "u1",
		FirstName:    "Asha",
		HomeRegion:   "Kerala",
		Language:     LanguageEnglish,
		Tags:         []string{"Movies", "Cooking", "Running", "Photography", "Podcasts"},
		Introduction: "Film buff who cooks on weekends.",
		Preference:   "Someone who likes long walks.",
	}
}

func TestUserProfile_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(p *UserProfile)
		wantErr bool
	}{
		{name: "valid", mutate: func(*UserProfile) {}},
		{name: "missing first name", mutate: func(p *UserProfile) { p.FirstName = "" }, wantErr: true},
		{name: "unknown region", mutate: func(p *UserProfile) { p.HomeRegion = "Atlantis" }, wantErr: true},
		{name: "unsupported language", mutate: func(p *UserProfile) { p.Language = "French" }, wantErr: true},
		{name: "four tags", mutate: func(p *UserProfile) { p.Tags = p.Tags[:4] }, wantErr: true},
		{name: "duplicate tag", mutate: func(p *UserProfile) { p.Tags[4] = "Movies" }, wantErr: true},
		{name: "tag outside catalogue", mutate: func(p *UserProfile) { p.Tags[0] = "Knitting Memes" }, wantErr: true},
		{name: "missing preference", mutate: func(p *UserProfile) { p.Preference = "" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validProfile()
			tt.mutate(p)
			err := p.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidProfile)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestUserProfile_IsOnboarded(t *testing.T) {
	p := validProfile()
	assert.True(t, p.IsOnboarded())

	p.Tags = p.Tags[:3]
	assert.False(t, p.IsOnboarded())

	p = validProfile()
	p.FirstName = ""
	assert.False(t, p.IsOnboarded())
}

func TestUserProfile_ExcludedIDs(t *testing.T) {
	p := validProfile()
	p.BlockedUsers = []string{"b1"}
	p.RecentMatches = []string{"r1", "r2"}

	assert.Equal(t, []string{"u1", "b1", "r1", "r2"}, p.ExcludedIDs())
	assert.True(t, p.HasBlocked("b1"))
	assert.False(t, p.HasBlocked("r1"))
	assert.True(t, p.RecentlyMatched("r2"))
}

func TestAppendRecentMatch(t *testing.T) {
	t.Run("appends under the limit", func(t *testing.T) {
		assert.Equal(t, []string{"a", "b"}, AppendRecentMatch([]string{"a"}, "b", MaxRecentMatches))
	})

	t.Run("drops the oldest beyond the limit", func(t *testing.T) {
		var recent []string
		for i := 0; i < 12; i++ {
			recent = AppendRecentMatch(recent, string(rune('a'+i)), MaxRecentMatches)
		}
		require.Len(t, recent, MaxRecentMatches)
		assert.Equal(t, "c", recent[0])
		assert.Equal(t, "l", recent[len(recent)-1])
	})

	t.Run("does not modify the input", func(t *testing.T) {
		in := make([]string, 2, 8)
		copy(in, []string{"a", "b"})
		_ = AppendRecentMatch(in, "c", 2)
		assert.Equal(t, []string{"a", "b"}, in)
	})
}

func TestCatalog(t *testing.T) {
	assert.Len(t, Regions, 36)
	assert.True(t, Region("Delhi").IsValid())
	assert.False(t, Region("delhi").IsValid())
	assert.True(t, LanguageHindi.IsValid())
	assert.True(t, IsKnownTag("Cricket"))
	assert.False(t, IsKnownTag(""))
}

func TestNewConversation(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	c, err := NewConversation("c1", "a", "b", now)
	require.NoError(t, err)
	assert.True(t, c.IsActive)
	assert.Equal(t, []string{"a", "b"}, c.Participants)
	assert.Empty(t, c.Messages)
	assert.Nil(t, c.LastMessage())
	assert.Equal(t, now, c.CreatedAt)

	_, err = NewConversation("c2", "a", "a", now)
	assert.ErrorIs(t, err, ErrInvalidConversation)

	_, err = NewConversation("c3", "", "b", now)
	assert.ErrorIs(t, err, ErrInvalidConversation)
}

func TestConversation_Participants(t *testing.T) {
	c, err := NewConversation("c1", "a", "b", time.Now())
	require.NoError(t, err)

	other, ok := c.OtherParticipant("a")
	assert.True(t, ok)
	assert.Equal(t, "b", other)

	other, ok = c.OtherParticipant("b")
	assert.True(t, ok)
	assert.Equal(t, "a", other)

	_, ok = c.OtherParticipant("z")
	assert.False(t, ok)
	assert.False(t, c.HasParticipant("z"))
}

func TestConversation_End(t *testing.T) {
	start := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	c, err := NewConversation("c1", "a", "b", start)
	require.NoError(t, err)
	c.Messages = append(c.Messages, Message{ID: "m1", SenderID: "a", Type: MessageTypeText, Content: "hi"})

	c.End("b", start.Add(time.Hour))

	assert.False(t, c.IsActive)
	require.NotNil(t, c.EndedBy)
	assert.Equal(t, "b", *c.EndedBy)
	assert.Equal(t, start.Add(time.Hour), c.UpdatedAt)
	assert.Equal(t, "hi", c.LastMessage().Content)
}
