package match

import (
	"sort"

	"github.com/Debyte404/Obscura/internal/domain"
)

// MatchSelector picks the final partner from a rescored shortlist.
type MatchSelector struct{}

// Select returns the candidate with the highest combined score. Equal totals keep
// the shortlist order. An empty shortlist yields domain.ErrMatchmakingFailed.
func (MatchSelector) Select(shortlist []domain.ScoredCandidate) (domain.ScoredCandidate, error) {
	if len(shortlist) == 0 {
		return domain.ScoredCandidate{}, domain.ErrMatchmakingFailed
	}

	ranked := append([]domain.ScoredCandidate(nil), shortlist...)
	for i := range ranked {
		ranked[i].Total = ranked[i].RuleScore + ranked[i].CompatibilityScore
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Total > ranked[j].Total
	})
	return ranked[0], nil
}
