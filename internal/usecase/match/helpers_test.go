package match

import (
	"fmt"

	"github.com/Debyte404/Obscura/internal/domain"
)

var (
	tagsA = []string{"Movies", "Cooking", "Running", "Photography", "Podcasts"}
	tagsB = []string{"Movies", "Cooking", "Baking", "Comedy", "Gardening"}
	tagsC = []string{"Cricket", "Basketball", "Baking", "Comedy", "Gardening"}
)

func newProfile(id string, region domain.Region, lang domain.Language, tags []string) *domain.UserProfile {
	return &domain.UserProfile{
		ID:           id,
		UserName:     id,
		FirstName:    "User " + id,
		HomeRegion:   region,
		Language:     lang,
		Tags:         append([]string(nil), tags...),
		Introduction: "I love movies, cooking and long evening runs.",
		Preference:   "Someone who enjoys movies and cooking.",
	}
}

func candidateIDs(n int) []string {
	ids := make([]string, n)
	for i := range ids {
		ids[i] = fmt.Sprintf("cand-%02d", i)
	}
	return ids
}

// fixedRandom returns a constant jitter and applies a fixed permutation on shuffle.
type fixedRandom struct {
	jitter  int
	reverse bool
}

func (r fixedRandom) IntN(n int) int {
	if r.jitter >= n {
		return n - 1
	}
	return r.jitter
}

func (r fixedRandom) Shuffle(n int, swap func(i, j int)) {
	if !r.reverse {
		return
	}
	for i, j := 0, n-1; i < j; i, j = i+1, j-1 {
		swap(i, j)
	}
}
