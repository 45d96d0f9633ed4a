package match

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Debyte404/Obscura/internal/domain"
	"github.com/Debyte404/Obscura/internal/repository"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	DefaultLockTTL = 30 * time.Second
	lockKeyPrefix  = "match:lock:"
	releaseTimeout = 2 * time.Second
)

// Config tunes a MatchUseCase. Zero values fall back to the defaults.
type Config struct {
	Cooldown      time.Duration
	PoolLimit     int
	OracleTimeout time.Duration
	LockTTL       time.Duration
}

// Dependencies are the collaborators of a MatchUseCase. Locker, Oracle, Random,
// Logger, Clock and NewID are optional.
type Dependencies struct {
	Users    repository.UserRepository
	Pairings repository.PairingRepository
	Locker   repository.MatchLocker
	Oracle   CompatibilityOracle
	Random   RandomSource
	Logger   logrus.FieldLogger
	Clock    func() time.Time
	NewID    func() string
}

type MatchUseCase struct {
	users    repository.UserRepository
	pairings repository.PairingRepository
	locker   repository.MatchLocker
	guard    CooldownGuard
	pool     *CandidatePool
	scoring  *ScoringEngine
	rescorer *Rescorer
	selector MatchSelector
	lockTTL  time.Duration
	now      func() time.Time
	newID    func() string
	log      logrus.FieldLogger
}

func NewMatchUseCase(deps Dependencies, cfg Config) *MatchUseCase {
	log := deps.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	log = log.WithField("component", "matchmaking")

	now := deps.Clock
	if now == nil {
		now = time.Now
	}
	newID := deps.NewID
	if newID == nil {
		newID = uuid.NewString
	}
	lockTTL := cfg.LockTTL
	if lockTTL <= 0 {
		lockTTL = DefaultLockTTL
	}

	return &MatchUseCase{
		users:    deps.Users,
		pairings: deps.Pairings,
		locker:   deps.Locker,
		guard:    NewCooldownGuard(cfg.Cooldown),
		pool:     NewCandidatePool(deps.Users, cfg.PoolLimit),
		scoring:  NewScoringEngine(deps.Random),
		rescorer: NewRescorer(deps.Oracle, cfg.OracleTimeout, log),
		lockTTL:  lockTTL,
		now:      now,
		newID:    newID,
		log:      log,
	}
}

// FindMatch runs one match request for userID. Expected outcomes, failures included,
// come back as a MatchOutcome; the error is reserved for unexpected storage faults and
// cancellation before the commit.
func (uc *MatchUseCase) FindMatch(ctx context.Context, userID string) (*domain.MatchOutcome, error) {
	if userID == "" {
		return domain.MatchFailed(domain.ReasonUnauthenticated, "Not authenticated"), nil
	}
	log := uc.log.WithField("user_id", userID)

	if uc.locker != nil {
		release, err := uc.locker.Acquire(ctx, lockKeyPrefix+userID, uc.lockTTL)
		switch {
		case errors.Is(err, domain.ErrMatchInProgress):
			log.Info("match request rejected, another request is in progress")
			return domain.MatchFailed(domain.ReasonMatchInProgress, "A match request is already in progress"), nil
		case err != nil:
			// The pairing commit still compare-and-swaps lastMatchedAt.
			log.WithError(err).Warn("match lock unavailable, relying on commit check")
		default:
			defer uc.release(release, log)
		}
	}

	requester, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.MatchFailed(domain.ReasonUserNotFound, "User not found"), nil
		}
		return nil, fmt.Errorf("failed to load requester: %w", err)
	}

	if remaining, active := uc.guard.Check(requester.LastMatchedAt, uc.now()); active {
		log.WithFields(logrus.Fields{
			"hours":   remaining.Hours,
			"minutes": remaining.Minutes,
		}).Info("match request deferred by cooldown")
		return domain.MatchDeferred(remaining), nil
	}

	candidates, err := uc.pool.Fetch(ctx, requester)
	if err != nil {
		if errors.Is(err, domain.ErrNoCandidates) {
			log.Info("no eligible candidates")
			return domain.MatchFailed(domain.ReasonNoCandidates, "No matching candidates found. Try again later!"), nil
		}
		return nil, err
	}
	log.WithField("pool_size", len(candidates)).Debug("candidate pool loaded")

	shortlist := uc.scoring.Shortlist(uc.scoring.Score(requester, candidates))
	rescored := uc.rescorer.Rescore(ctx, requester, shortlist)
	for _, c := range rescored {
		log.WithFields(logrus.Fields{
			"candidate_id":  c.Profile.ID,
			"base":          c.RuleScore,
			"compatibility": c.CompatibilityScore,
			"total":         c.Total,
		}).Debug("shortlisted candidate")
	}

	winner, err := uc.selector.Select(rescored)
	if err != nil {
		return domain.MatchFailed(domain.ReasonMatchmakingFailed, "Matchmaking failed."), nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	conv, err := uc.pairings.CommitPairing(ctx, domain.Pairing{
		ConversationID:        uc.newID(),
		RequesterID:           requester.ID,
		PartnerID:             winner.Profile.ID,
		PreviousLastMatchedAt: requester.LastMatchedAt,
		MatchedAt:             uc.now().UTC(),
		HistoryLimit:          domain.MaxRecentMatches,
	})
	if err != nil {
		return uc.commitFailed(ctx, log, userID, err)
	}

	log.WithFields(logrus.Fields{
		"partner_id":      winner.Profile.ID,
		"conversation_id": conv.ID,
		"score":           winner.Total,
	}).Info("match committed")
	return domain.MatchSucceeded(conv.ID, winner.Profile.ID, winner.Total), nil
}

func (uc *MatchUseCase) commitFailed(ctx context.Context, log logrus.FieldLogger, userID string, err error) (*domain.MatchOutcome, error) {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil, err
	}

	if errors.Is(err, domain.ErrStaleMatchState) {
		log.Info("requester matched concurrently, commit discarded")
		if current, getErr := uc.users.GetByID(ctx, userID); getErr == nil {
			if remaining, active := uc.guard.Check(current.LastMatchedAt, uc.now()); active {
				return domain.MatchDeferred(remaining), nil
			}
		}
	} else {
		log.WithError(err).Error("pairing transaction failed")
	}
	return domain.MatchFailed(domain.ReasonTransactionFailed, "Failed to create match. Please try again."), nil
}

func (uc *MatchUseCase) release(release func(context.Context) error, log logrus.FieldLogger) {
	ctx, cancel := context.WithTimeout(context.Background(), releaseTimeout)
	defer cancel()
	if err := release(ctx); err != nil {
		log.WithError(err).Warn("failed to release match lock")
	}
}

// Status describes whether a user may request a match right now.
type Status struct {
	CanMatch      bool                      `json:"can_match"`
	Cooldown      *domain.CooldownRemaining `json:"cooldown,omitempty"`
	Message       string                    `json:"message,omitempty"`
	LastMatchedAt *time.Time                `json:"last_matched_at,omitempty"`
	RecentMatches []string                  `json:"recent_matches"`
}

// Status is a read-only view of the cooldown and match history.
func (uc *MatchUseCase) Status(ctx context.Context, userID string) (*Status, error) {
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	st := &Status{
		CanMatch:      true,
		LastMatchedAt: user.LastMatchedAt,
		RecentMatches: append([]string{}, user.RecentMatches...),
	}
	if remaining, active := uc.guard.Check(user.LastMatchedAt, uc.now()); active {
		st.CanMatch = false
		st.Cooldown = &remaining
		st.Message = remaining.Message()
	}
	return st, nil
}

// ResetCooldown clears lastMatchedAt so the user may match again immediately.
func (uc *MatchUseCase) ResetCooldown(ctx context.Context, userID string) error {
	if err := uc.users.ResetCooldown(ctx, userID); err != nil {
		return err
	}
	uc.log.WithField("user_id", userID).Info("match cooldown reset")
	return nil
}

// ClearMatchHistory empties recentMatches so former partners become eligible again.
func (uc *MatchUseCase) ClearMatchHistory(ctx context.Context, userID string) error {
	if err := uc.users.ClearRecentMatches(ctx, userID); err != nil {
		return err
	}
	uc.log.WithField("user_id", userID).Info("match history cleared")
	return nil
}
