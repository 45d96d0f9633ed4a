package match

import (
	"context"
	"fmt"

	"github.com/Debyte404/Obscura/internal/domain"
	"github.com/Debyte404/Obscura/internal/repository"
)

// MaxPoolSize caps how many candidates one request scores.
const MaxPoolSize = 50

// CandidatePool fetches the eligible counterparts of a requester.
type CandidatePool struct {
	users repository.UserRepository
	limit int
}

func NewCandidatePool(users repository.UserRepository, limit int) *CandidatePool {
	if limit <= 0 || limit > MaxPoolSize {
		limit = MaxPoolSize
	}
	return &CandidatePool{users: users, limit: limit}
}

func (p *CandidatePool) Limit() int { return p.limit }

// Fetch returns up to Limit candidates, never the requester, a blocked user or a recent
// partner. It returns domain.ErrNoCandidates when nothing is eligible.
func (p *CandidatePool) Fetch(ctx context.Context, requester *domain.UserProfile) ([]*domain.UserProfile, error) {
	filter := repository.CandidateFilter{ExcludeIDs: requester.ExcludedIDs()}
	found, err := p.users.FindCandidates(ctx, filter, p.limit)
	if err != nil {
		return nil, fmt.Errorf("failed to find candidates: %w", err)
	}

	// Exclusions are re-checked regardless of what the store filtered.
	candidates := make([]*domain.UserProfile, 0, len(found))
	for _, c := range found {
		if c == nil || c.ID == requester.ID || requester.HasBlocked(c.ID) || requester.RecentlyMatched(c.ID) {
			continue
		}
		if !c.IsOnboarded() {
			continue
		}
		candidates = append(candidates, c)
		if len(candidates) == p.limit {
			break
		}
	}

	if len(candidates) == 0 {
		return nil, domain.ErrNoCandidates
	}
	return candidates, nil
}
