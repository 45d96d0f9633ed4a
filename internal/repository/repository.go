package repository

import (
	"context"
	"time"

	"github.com/Debyte404/Obscura/internal/domain"
)

// CandidateFilter selects eligible counterparts for a match request.
type CandidateFilter struct {
	// ExcludeIDs holds the requester, its blocked users and its recent partners.
	ExcludeIDs []string
}

// UserRepository is the user store consumed by matchmaking.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*domain.UserProfile, error)
	// FindCandidates returns at most limit onboarded profiles not listed in filter.ExcludeIDs.
	// No ordering is guaranteed.
	FindCandidates(ctx context.Context, filter CandidateFilter, limit int) ([]*domain.UserProfile, error)
	AddBlockedUser(ctx context.Context, userID, blockedID string) error
	ResetCooldown(ctx context.Context, userID string) error
	ClearRecentMatches(ctx context.Context, userID string) error
}

// ConversationRepository is the chat store used by chat actions.
type ConversationRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Conversation, error)
	ListActiveByParticipant(ctx context.Context, userID string, limit int) ([]*domain.Conversation, error)
	End(ctx context.Context, id, endedBy string) error
}

// PairingRepository commits a match as one atomic unit: the conversation is created
// and both participants' match history is updated, or nothing is persisted.
//
// CommitPairing returns domain.ErrStaleMatchState when the requester's lastMatchedAt
// no longer equals pairing.PreviousLastMatchedAt.
type PairingRepository interface {
	CommitPairing(ctx context.Context, pairing domain.Pairing) (*domain.Conversation, error)
}

// MatchLocker serializes match requests per user.
type MatchLocker interface {
	// Acquire returns domain.ErrMatchInProgress when key is already held.
	Acquire(ctx context.Context, key string, ttl time.Duration) (release func(context.Context) error, err error)
}
