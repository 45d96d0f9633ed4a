package profile

import (
	"context"
	"sort"

	"github.com/Debyte404/Obscura/internal/domain"
	"github.com/Debyte404/Obscura/internal/repository"
)

type ProfileUseCase struct {
	userRepo repository.UserRepository
}

func NewProfileUseCase(userRepo repository.UserRepository) *ProfileUseCase {
	return &ProfileUseCase{userRepo: userRepo}
}

// ProfileResponse is the caller's own profile plus its matching readiness.
type ProfileResponse struct {
	*domain.UserProfile
	Onboarded bool `json:"onboarded"`
	// Eligible is false when the profile would fail validation and so could
	// never be offered as a candidate.
	Eligible        bool   `json:"eligible"`
	ValidationError string `json:"validation_error,omitempty"`
}

// GetMyProfile returns the profile of userID.
func (uc *ProfileUseCase) GetMyProfile(ctx context.Context, userID string) (*ProfileResponse, error) {
	p, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := &ProfileResponse{
		UserProfile: p,
		Onboarded:   p.IsOnboarded(),
		Eligible:    true,
	}
	if err := p.Validate(); err != nil {
		resp.Eligible = false
		resp.ValidationError = err.Error()
	}
	return resp, nil
}

// TagCategory is one group of the interest tag catalogue.
type TagCategory struct {
	Name string   `json:"name"`
	Tags []string `json:"tags"`
}

// Catalog lists the values a profile may pick from.
type Catalog struct {
	Regions          []domain.Region   `json:"regions"`
	Languages        []domain.Language `json:"languages"`
	TagCategories    []TagCategory     `json:"tag_categories"`
	RequiredTagCount int               `json:"required_tag_count"`
}

// GetCatalog returns the onboarding catalogue with categories sorted by name.
func (uc *ProfileUseCase) GetCatalog() *Catalog {
	names := make([]string, 0, len(domain.TagCategories))
	for name := range domain.TagCategories {
		names = append(names, name)
	}
	sort.Strings(names)

	categories := make([]TagCategory, 0, len(names))
	for _, name := range names {
		categories = append(categories, TagCategory{
			Name: name,
			Tags: append([]string(nil), domain.TagCategories[name]...),
		})
	}

	return &Catalog{
		Regions:          append([]domain.Region(nil), domain.Regions...),
		Languages:        append([]domain.Language(nil), domain.Languages...),
		TagCategories:    categories,
		RequiredTagCount: domain.RequiredTagCount,
	}
}
