package domain

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	// RequiredTagCount is the exact number of interest tags a profile carries.
	RequiredTagCount = 5
	// MaxRecentMatches bounds the recent-partner window.
	MaxRecentMatches = 10
)

// UserProfile is the matching view of a user.
type UserProfile struct {
	ID            string     `json:"id" db:"id"`
	UserName      string     `json:"user_name" db:"user_name"`
	FirstName     string     `json:"first_name" db:"first_name" validate:"required,max=50"`
	HomeRegion    Region     `json:"home_region" db:"home_region" validate:"required,region"`
	Language      Language   `json:"language" db:"language" validate:"required,language"`
	Tags          []string   `json:"tags" db:"tags" validate:"len=5,unique,dive,catalog_tag"`
	Introduction  string     `json:"introduction" db:"introduction" validate:"required,max=500"`
	Preference    string     `json:"preference" db:"preference" validate:"required,max=500"`
	BlockedUsers  []string   `json:"blocked_users" db:"blocked_users"`
	RecentMatches []string   `json:"recent_matches" db:"recent_matches"`
	LastMatchedAt *time.Time `json:"last_matched_at" db:"last_matched_at"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at" db:"updated_at"`
}

var profileValidator = newProfileValidator()

func newProfileValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("region", func(fl validator.FieldLevel) bool {
		return Region(fl.Field().String()).IsValid()
	})
	_ = v.RegisterValidation("language", func(fl validator.FieldLevel) bool {
		return Language(fl.Field().String()).IsValid()
	})
	_ = v.RegisterValidation("catalog_tag", func(fl validator.FieldLevel) bool {
		return IsKnownTag(fl.Field().String())
	})
	return v
}

// Validate checks the fields matching depends on.
func (p *UserProfile) Validate() error {
	if err := profileValidator.Struct(p); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidProfile, err)
	}
	return nil
}

// IsOnboarded reports whether the profile completed the required onboarding fields.
func (p *UserProfile) IsOnboarded() bool {
	return p.FirstName != "" && len(p.Tags) == RequiredTagCount
}

// HasBlocked reports whether userID is in the blocked set.
func (p *UserProfile) HasBlocked(userID string) bool {
	return contains(p.BlockedUsers, userID)
}

// RecentlyMatched reports whether userID is in the recent-partner window.
func (p *UserProfile) RecentlyMatched(userID string) bool {
	return contains(p.RecentMatches, userID)
}

// ExcludedIDs returns the ids that may never be offered to this user: itself,
// its blocked set and its recent partners.
func (p *UserProfile) ExcludedIDs() []string {
	ids := make([]string, 0, 1+len(p.BlockedUsers)+len(p.RecentMatches))
	ids = append(ids, p.ID)
	ids = append(ids, p.BlockedUsers...)
	ids = append(ids, p.RecentMatches...)
	return ids
}

// AppendRecentMatch appends partnerID and keeps only the newest limit entries.
// The input slice is never modified.
func AppendRecentMatch(recent []string, partnerID string, limit int) []string {
	out := make([]string, 0, len(recent)+1)
	out = append(out, recent...)
	out = append(out, partnerID)
	if limit > 0 && len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
