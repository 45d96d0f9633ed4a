package match

import (
	"sort"

	"github.com/Debyte404/Obscura/internal/domain"
)

const (
	RegionScore   = 10
	LanguageScore = 10
	MaxTagScore   = 30
	// JitterRange is the exclusive upper bound of the per-candidate random term.
	JitterRange = 20

	// RankedSliceSize candidates survive the affinity ranking,
	// ShortlistSize of them survive the shuffle.
	RankedSliceSize = 5
	ShortlistSize   = 3
)

// ScoringEngine ranks candidates by affinity plus jitter.
type ScoringEngine struct {
	rnd RandomSource
}

func NewScoringEngine(rnd RandomSource) *ScoringEngine {
	if rnd == nil {
		rnd = NewRandomSource()
	}
	return &ScoringEngine{rnd: rnd}
}

// TagOverlapScore is a step function of the number of shared tags: 0, 10, 20, then
// a flat 30 for three or more.
func TagOverlapScore(a, b []string) int {
	set := make(map[string]struct{}, len(a))
	for _, t := range a {
		set[t] = struct{}{}
	}
	common := 0
	for _, t := range b {
		if _, ok := set[t]; ok {
			common++
			delete(set, t)
		}
	}

	switch {
	case common >= 3:
		return MaxTagScore
	case common == 2:
		return 20
	case common == 1:
		return 10
	default:
		return 0
	}
}

// AffinityScore is the deterministic part of a candidate's rule score (0-50).
func AffinityScore(requester, candidate *domain.UserProfile) int {
	score := 0
	if candidate.HomeRegion == requester.HomeRegion {
		score += RegionScore
	}
	if candidate.Language == requester.Language {
		score += LanguageScore
	}
	score += TagOverlapScore(requester.Tags, candidate.Tags)
	return score
}

// Score computes affinity plus a fresh jitter in [0, JitterRange) for every candidate.
func (e *ScoringEngine) Score(requester *domain.UserProfile, candidates []*domain.UserProfile) []domain.ScoredCandidate {
	scored := make([]domain.ScoredCandidate, 0, len(candidates))
	for _, c := range candidates {
		rule := AffinityScore(requester, c) + e.rnd.IntN(JitterRange)
		scored = append(scored, domain.ScoredCandidate{
			Profile:   c,
			RuleScore: rule,
			Total:     rule,
		})
	}
	return scored
}

// Shortlist sorts by rule score, keeps the top RankedSliceSize, shuffles that slice
// independently and keeps ShortlistSize. Both stages are required: the shuffle only
// ever sees high-affinity candidates. Fewer candidates than either size is fine.
func (e *ScoringEngine) Shortlist(scored []domain.ScoredCandidate) []domain.ScoredCandidate {
	ranked := append([]domain.ScoredCandidate(nil), scored...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].RuleScore > ranked[j].RuleScore
	})
	if len(ranked) > RankedSliceSize {
		ranked = ranked[:RankedSliceSize]
	}

	e.rnd.Shuffle(len(ranked), func(i, j int) {
		ranked[i], ranked[j] = ranked[j], ranked[i]
	})
	if len(ranked) > ShortlistSize {
		ranked = ranked[:ShortlistSize]
	}
	return ranked
}
