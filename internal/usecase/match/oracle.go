package match

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/Debyte404/Obscura/internal/domain"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const (
	MaxCompatibilityScore = 30
	// DefaultOracleTimeout bounds every oracle call.
	DefaultOracleTimeout = 4 * time.Second
)

// CompatibilityOracle rates how well a candidate's introduction fits a requester's
// stated preference. The reply should be a bare integer in [0, 30]; see ParseCompatibility.
type CompatibilityOracle interface {
	Compatibility(ctx context.Context, preference, introduction string) (string, error)
}

// OracleFunc adapts a function to CompatibilityOracle.
type OracleFunc func(ctx context.Context, preference, introduction string) (string, error)

func (f OracleFunc) Compatibility(ctx context.Context, preference, introduction string) (string, error) {
	return f(ctx, preference, introduction)
}

var errOracleDisabled = errors.New("compatibility oracle not configured")

// ParseCompatibility reads the leading integer of raw and clamps it to [0, 30].
// Anything without a leading integer scores 0.
func ParseCompatibility(raw string) int {
	s := strings.TrimSpace(raw)
	negative := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		negative = s[0] == '-'
		s = s[1:]
	}
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 || negative {
		return 0
	}

	n, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil {
		// Only a range error is possible here: the digits overflowed.
		return MaxCompatibilityScore
	}
	return clampCompatibility(n)
}

func clampCompatibility(n int64) int {
	if n < 0 {
		return 0
	}
	if n > MaxCompatibilityScore {
		return MaxCompatibilityScore
	}
	return int(n)
}

// Rescorer fans the shortlist out to the oracle and folds the results back in.
type Rescorer struct {
	oracle  CompatibilityOracle
	timeout time.Duration
	log     logrus.FieldLogger
}

func NewRescorer(oracle CompatibilityOracle, timeout time.Duration, log logrus.FieldLogger) *Rescorer {
	if oracle == nil {
		oracle = OracleFunc(func(context.Context, string, string) (string, error) {
			return "", errOracleDisabled
		})
	}
	if timeout <= 0 {
		timeout = DefaultOracleTimeout
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Rescorer{oracle: oracle, timeout: timeout, log: log}
}

// Rescore issues one bounded oracle call per candidate in parallel. A failed or timed
// out call scores 0 and never affects the other candidates. The returned slice keeps
// the input order.
func (r *Rescorer) Rescore(ctx context.Context, requester *domain.UserProfile, shortlist []domain.ScoredCandidate) []domain.ScoredCandidate {
	out := make([]domain.ScoredCandidate, len(shortlist))
	copy(out, shortlist)

	var g errgroup.Group
	for i := range out {
		g.Go(func() error {
			out[i].CompatibilityScore = r.score(ctx, requester.Preference, out[i].Profile)
			out[i].Total = out[i].RuleScore + out[i].CompatibilityScore
			return nil
		})
	}
	_ = g.Wait()
	return out
}

func (r *Rescorer) score(ctx context.Context, preference string, candidate *domain.UserProfile) int {
	callCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	raw, err := r.oracle.Compatibility(callCtx, preference, candidate.Introduction)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"candidate_id": candidate.ID,
			"error":        err,
		}).Warn("compatibility oracle failed, scoring 0")
		return 0
	}
	return ParseCompatibility(raw)
}
