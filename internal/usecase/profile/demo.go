package profile

import (
	"fmt"
	"math/rand/v2"
	"sort"

	"github.com/Debyte404/Obscura/internal/domain"
)

var demoNames = []string{
	"Aarav", "Diya", "Kabir", "Meera", "Rohan", "Ananya", "Vihaan", "Isha",
	"Arjun", "Saanvi", "Reyansh", "Tara", "Dev", "Nisha", "Kiran", "Zoya",
}

// DemoProfiles builds n onboarded profiles for local environments. The same seed
// always yields the same profiles.
func DemoProfiles(n int, seed uint64) []*domain.UserProfile {
	rnd := rand.New(rand.NewPCG(seed, seed+1))

	var tags []string
	for _, group := range domain.TagCategories {
		tags = append(tags, group...)
	}
	sort.Strings(tags)

	profiles := make([]*domain.UserProfile, 0, n)
	for i := 0; i < n; i++ {
		name := demoNames[i%len(demoNames)]
		picked := make([]string, 0, domain.RequiredTagCount)
		for _, idx := range rnd.Perm(len(tags))[:domain.RequiredTagCount] {
			picked = append(picked, tags[idx])
		}

		profiles = append(profiles, &domain.UserProfile{
			ID:           fmt.Sprintf("demo-%03d", i+1),
			UserName:     fmt.Sprintf("%s%d", name, i+1),
			FirstName:    name,
			HomeRegion:   domain.Regions[rnd.IntN(len(domain.Regions))],
			Language:     domain.Languages[rnd.IntN(len(domain.Languages))],
			Tags:         picked,
			Introduction: fmt.Sprintf("Hi, I'm %s. I'm into %s and %s.", name, picked[0], picked[1]),
			Preference:   fmt.Sprintf("Someone who enjoys %s or %s.", picked[2], picked[3]),
		})
	}
	return profiles
}
