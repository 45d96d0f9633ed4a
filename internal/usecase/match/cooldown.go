package match

import (
	"time"

	"github.com/Debyte404/Obscura/internal/domain"
)

// DefaultCooldown is the minimum interval between self-initiated matches.
const DefaultCooldown = 12 * time.Hour

// CooldownGuard decides whether a user may request a match now. It has no side effects.
type CooldownGuard struct {
	Window time.Duration
}

func NewCooldownGuard(window time.Duration) CooldownGuard {
	if window <= 0 {
		window = DefaultCooldown
	}
	return CooldownGuard{Window: window}
}

// Check returns the remaining wait and true while the cooldown is active.
// A nil lastMatchedAt is always eligible.
func (g CooldownGuard) Check(lastMatchedAt *time.Time, now time.Time) (domain.CooldownRemaining, bool) {
	if lastMatchedAt == nil {
		return domain.CooldownRemaining{}, false
	}

	remaining := g.Window - now.Sub(*lastMatchedAt)
	if remaining <= 0 {
		return domain.CooldownRemaining{}, false
	}

	// Integer division floors both parts exactly.
	hours := remaining / time.Hour
	minutes := (remaining % time.Hour) / time.Minute
	return domain.CooldownRemaining{Hours: int(hours), Minutes: int(minutes)}, true
}
