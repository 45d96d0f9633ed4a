// Package memory keeps users and conversations in process memory. It implements the
// same repository contracts as the postgres package and supports fault injection so the
// pairing transaction's rollback behaviour can be exercised without a database.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Debyte404/Obscura/internal/domain"
	"github.com/Debyte404/Obscura/internal/repository"
)

// Fault points inside CommitPairing.
const (
	FaultCreateConversation = "create_conversation"
	FaultUpdateRequester    = "update_requester"
	FaultUpdatePartner      = "update_partner"
)

// Store is safe for concurrent use.
type Store struct {
	mu            sync.Mutex
	users         map[string]*domain.UserProfile
	conversations map[string]*domain.Conversation
	faults        map[string]error
	now           func() time.Time
}

var (
	_ repository.UserRepository         = (*UserStore)(nil)
	_ repository.ConversationRepository = (*ConversationStore)(nil)
	_ repository.PairingRepository      = (*Store)(nil)
)

// UserStore is the user view of a Store.
type UserStore struct{ s *Store }

// ConversationStore is the conversation view of a Store.
type ConversationStore struct{ s *Store }

func (s *Store) Users() *UserStore { return &UserStore{s: s} }

func (s *Store) Conversations() *ConversationStore { return &ConversationStore{s: s} }

func NewStore() *Store {
	return &Store{
		users:         make(map[string]*domain.UserProfile),
		conversations: make(map[string]*domain.Conversation),
		faults:        make(map[string]error),
		now:           time.Now,
	}
}

// PutUser inserts or replaces a profile.
func (s *Store) PutUser(p *domain.UserProfile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[p.ID] = cloneUser(p)
}

// FailOn makes the given fault point return err until cleared with a nil err.
func (s *Store) FailOn(point string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.faults, point)
		return
	}
	s.faults[point] = err
}

// ConversationCount is the number of stored conversations.
func (s *Store) ConversationCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.conversations)
}

func (us *UserStore) GetByID(ctx context.Context, id string) (*domain.UserProfile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s := us.s
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (us *UserStore) FindCandidates(ctx context.Context, filter repository.CandidateFilter, limit int) ([]*domain.UserProfile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s := us.s
	excluded := make(map[string]struct{}, len(filter.ExcludeIDs))
	for _, id := range filter.ExcludeIDs {
		excluded[id] = struct{}{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Sorted ids keep results reproducible for seeded tests.
	ids := make([]string, 0, len(s.users))
	for id := range s.users {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var out []*domain.UserProfile
	for _, id := range ids {
		if limit > 0 && len(out) >= limit {
			break
		}
		if _, skip := excluded[id]; skip {
			continue
		}
		u := s.users[id]
		if !u.IsOnboarded() {
			continue
		}
		out = append(out, cloneUser(u))
	}
	return out, nil
}

func (us *UserStore) AddBlockedUser(ctx context.Context, userID, blockedID string) error {
	return us.s.updateUser(ctx, userID, func(u *domain.UserProfile) {
		if !u.HasBlocked(blockedID) {
			u.BlockedUsers = append(u.BlockedUsers, blockedID)
		}
	})
}

func (us *UserStore) ResetCooldown(ctx context.Context, userID string) error {
	return us.s.updateUser(ctx, userID, func(u *domain.UserProfile) {
		u.LastMatchedAt = nil
	})
}

func (us *UserStore) ClearRecentMatches(ctx context.Context, userID string) error {
	return us.s.updateUser(ctx, userID, func(u *domain.UserProfile) {
		u.RecentMatches = []string{}
	})
}

func (s *Store) updateUser(ctx context.Context, userID string, fn func(*domain.UserProfile)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	fn(u)
	u.UpdatedAt = s.now()
	return nil
}

// CommitPairing stages every change on copies and swaps them in only when all steps
// succeed, so an injected fault never leaves partial state behind.
func (s *Store) CommitPairing(ctx context.Context, p domain.Pairing) (*domain.Conversation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if p.RequesterID == p.PartnerID {
		return nil, domain.ErrSelfPairing
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	requester, ok := s.users[p.RequesterID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	partner, ok := s.users[p.PartnerID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if !sameInstant(requester.LastMatchedAt, p.PreviousLastMatchedAt) {
		return nil, domain.ErrStaleMatchState
	}

	if err := s.faults[FaultCreateConversation]; err != nil {
		return nil, err
	}
	conv, err := domain.NewConversation(p.ConversationID, p.RequesterID, p.PartnerID, p.MatchedAt)
	if err != nil {
		return nil, err
	}

	if err := s.faults[FaultUpdateRequester]; err != nil {
		return nil, err
	}
	matchedAt := p.MatchedAt
	nextRequester := cloneUser(requester)
	nextRequester.LastMatchedAt = &matchedAt
	nextRequester.RecentMatches = domain.AppendRecentMatch(requester.RecentMatches, p.PartnerID, p.HistoryLimit)
	nextRequester.UpdatedAt = p.MatchedAt

	if err := s.faults[FaultUpdatePartner]; err != nil {
		return nil, err
	}
	nextPartner := cloneUser(partner)
	nextPartner.RecentMatches = domain.AppendRecentMatch(partner.RecentMatches, p.RequesterID, p.HistoryLimit)
	nextPartner.UpdatedAt = p.MatchedAt

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.conversations[conv.ID] = conv
	s.users[p.RequesterID] = nextRequester
	s.users[p.PartnerID] = nextPartner
	return cloneConversation(conv), nil
}

func sameInstant(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}

func cloneUser(u *domain.UserProfile) *domain.UserProfile {
	c := *u
	c.Tags = append([]string(nil), u.Tags...)
	c.BlockedUsers = append([]string(nil), u.BlockedUsers...)
	c.RecentMatches = append([]string(nil), u.RecentMatches...)
	if u.LastMatchedAt != nil {
		t := *u.LastMatchedAt
		c.LastMatchedAt = &t
	}
	return &c
}
