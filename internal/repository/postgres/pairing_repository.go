package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Debyte404/Obscura/internal/domain"
	"github.com/Debyte404/Obscura/internal/repository"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type pairingRepository struct {
	db *sqlx.DB
}

func NewPairingRepository(db *sqlx.DB) repository.PairingRepository {
	return &pairingRepository{db: db}
}

// pairingUpdate is the per-user half of a pairing.
type pairingUpdate struct {
	UserID string
	// SetLastMatchedAt is only applied to the initiator.
	SetLastMatchedAt *time.Time
	// ExpectLastMatchedAt guards SetLastMatchedAt (compare-and-swap).
	ExpectLastMatchedAt *time.Time
	AppendRecentMatch   string
	HistoryLimit        int
}

// CommitPairing runs the requester update, the partner update and the conversation
// insert in one transaction. Both user rows are locked up front in id order, so two
// users picking each other concurrently serialize instead of deadlocking. A concurrent
// commit for the same requester waits on that lock and then fails the compare-and-swap.
func (r *pairingRepository) CommitPairing(ctx context.Context, p domain.Pairing) (conv *domain.Conversation, err error) {
	if p.RequesterID == p.PartnerID {
		return nil, domain.ErrSelfPairing
	}
	conv, err = domain.NewConversation(p.ConversationID, p.RequesterID, p.PartnerID, p.MatchedAt)
	if err != nil {
		return nil, err
	}

	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return nil, fmt.Errorf("failed to begin pairing transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = lockPairRows(ctx, tx, p.RequesterID, p.PartnerID); err != nil {
		return nil, err
	}

	matchedAt := p.MatchedAt
	err = applyPairingUpdate(ctx, tx, pairingUpdate{
		UserID:              p.RequesterID,
		SetLastMatchedAt:    &matchedAt,
		ExpectLastMatchedAt: p.PreviousLastMatchedAt,
		AppendRecentMatch:   p.PartnerID,
		HistoryLimit:        p.HistoryLimit,
	})
	if err != nil {
		return nil, err
	}

	err = applyPairingUpdate(ctx, tx, pairingUpdate{
		UserID:            p.PartnerID,
		AppendRecentMatch: p.RequesterID,
		HistoryLimit:      p.HistoryLimit,
	})
	if err != nil {
		return nil, err
	}

	if err = insertConversation(ctx, tx, conv); err != nil {
		return nil, fmt.Errorf("failed to create conversation: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit pairing: %w", err)
	}
	return conv, nil
}

// lockPairRows takes the row locks of both users in a fixed order.
func lockPairRows(ctx context.Context, tx *sqlx.Tx, a, b string) error {
	var locked []string
	query := `SELECT id FROM users WHERE id = ANY($1) ORDER BY id FOR UPDATE`
	if err := tx.SelectContext(ctx, &locked, query, pq.Array([]string{a, b})); err != nil {
		return fmt.Errorf("failed to lock pairing rows: %w", err)
	}
	if len(locked) != 2 {
		return domain.ErrUserNotFound
	}
	return nil
}

// applyPairingUpdate appends to recent_matches as a bounded sliding window in a single
// statement and, for the initiator, swaps last_matched_at.
func applyPairingUpdate(ctx context.Context, tx *sqlx.Tx, u pairingUpdate) error {
	limit := u.HistoryLimit
	if limit <= 0 {
		limit = domain.MaxRecentMatches
	}

	var (
		result sql.Result
		err    error
	)
	if u.SetLastMatchedAt != nil {
		query := `
			UPDATE users
			SET recent_matches = (array_append(recent_matches, $2::text))[GREATEST(cardinality(recent_matches) + 2 - $3, 1):],
			    last_matched_at = $4,
			    updated_at = $4
			WHERE id = $1
			  AND last_matched_at IS NOT DISTINCT FROM $5::timestamptz
		`
		result, err = tx.ExecContext(ctx, query, u.UserID, u.AppendRecentMatch, limit, *u.SetLastMatchedAt, u.ExpectLastMatchedAt)
	} else {
		query := `
			UPDATE users
			SET recent_matches = (array_append(recent_matches, $2::text))[GREATEST(cardinality(recent_matches) + 2 - $3, 1):],
			    updated_at = CURRENT_TIMESTAMP
			WHERE id = $1
		`
		result, err = tx.ExecContext(ctx, query, u.UserID, u.AppendRecentMatch, limit)
	}
	if err != nil {
		return fmt.Errorf("failed to update match history of %s: %w", u.UserID, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		if u.SetLastMatchedAt != nil {
			return staleOrMissing(ctx, tx, u.UserID)
		}
		return domain.ErrUserNotFound
	}
	return nil
}

func staleOrMissing(ctx context.Context, tx *sqlx.Tx, userID string) error {
	var exists bool
	if err := tx.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, userID); err != nil {
		return err
	}
	if !exists {
		return domain.ErrUserNotFound
	}
	return domain.ErrStaleMatchState
}
