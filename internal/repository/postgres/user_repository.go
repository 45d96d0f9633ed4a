package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Debyte404/Obscura/internal/domain"
	"github.com/Debyte404/Obscura/internal/repository"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const userColumns = `
	id, user_name, first_name, home_region, language, tags,
	introduction, preference, blocked_users, recent_matches,
	last_matched_at, created_at, updated_at`

type userRow struct {
	ID            string         `db:"id"`
	UserName      string         `db:"user_name"`
	FirstName     string         `db:"first_name"`
	HomeRegion    string         `db:"home_region"`
	Language      string         `db:"language"`
	Tags          pq.StringArray `db:"tags"`
	Introduction  string         `db:"introduction"`
	Preference    string         `db:"preference"`
	BlockedUsers  pq.StringArray `db:"blocked_users"`
	RecentMatches pq.StringArray `db:"recent_matches"`
	LastMatchedAt *time.Time     `db:"last_matched_at"`
	CreatedAt     time.Time      `db:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at"`
}

func (r userRow) toDomain() *domain.UserProfile {
	return &domain.UserProfile{
		ID:            r.ID,
		UserName:      r.UserName,
		FirstName:     r.FirstName,
		HomeRegion:    domain.Region(r.HomeRegion),
		Language:      domain.Language(r.Language),
		Tags:          []string(r.Tags),
		Introduction:  r.Introduction,
		Preference:    r.Preference,
		BlockedUsers:  []string(r.BlockedUsers),
		RecentMatches: []string(r.RecentMatches),
		LastMatchedAt: r.LastMatchedAt,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

type userRepository struct {
	db *sqlx.DB
}

// UserRepository extends the matchmaking contract with profile upserts used by seeding.
type UserRepository interface {
	repository.UserRepository
	Upsert(ctx context.Context, profile *domain.UserProfile) error
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Upsert(ctx context.Context, p *domain.UserProfile) error {
	query := `
		INSERT INTO users (
			id, user_name, first_name, home_region, language, tags,
			introduction, preference, blocked_users, recent_matches, last_matched_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO UPDATE SET
			user_name = EXCLUDED.user_name,
			first_name = EXCLUDED.first_name,
			home_region = EXCLUDED.home_region,
			language = EXCLUDED.language,
			tags = EXCLUDED.tags,
			introduction = EXCLUDED.introduction,
			preference = EXCLUDED.preference,
			blocked_users = EXCLUDED.blocked_users,
			recent_matches = EXCLUDED.recent_matches,
			last_matched_at = EXCLUDED.last_matched_at,
			updated_at = CURRENT_TIMESTAMP
		RETURNING created_at, updated_at
	`
	return r.db.QueryRowContext(
		ctx, query,
		p.ID, p.UserName, p.FirstName, string(p.HomeRegion), string(p.Language), pq.Array(nonNil(p.Tags)),
		p.Introduction, p.Preference, pq.Array(nonNil(p.BlockedUsers)), pq.Array(nonNil(p.RecentMatches)),
		p.LastMatchedAt,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.UserProfile, error) {
	var row userRow
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return row.toDomain(), nil
}

func (r *userRepository) FindCandidates(ctx context.Context, filter repository.CandidateFilter, limit int) ([]*domain.UserProfile, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE id <> ALL($1)
		  AND first_name <> ''
		  AND cardinality(tags) = $2
		LIMIT $3
	`
	var rows []userRow
	err := r.db.SelectContext(ctx, &rows, query, pq.Array(nonNil(filter.ExcludeIDs)), domain.RequiredTagCount, limit)
	if err != nil {
		return nil, err
	}

	profiles := make([]*domain.UserProfile, 0, len(rows))
	for _, row := range rows {
		profiles = append(profiles, row.toDomain())
	}
	return profiles, nil
}

func (r *userRepository) AddBlockedUser(ctx context.Context, userID, blockedID string) error {
	query := `
		UPDATE users
		SET blocked_users = CASE
				WHEN $2 = ANY(blocked_users) THEN blocked_users
				ELSE array_append(blocked_users, $2::text)
			END,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
	`
	return r.execOne(ctx, query, userID, blockedID)
}

func (r *userRepository) ResetCooldown(ctx context.Context, userID string) error {
	query := `UPDATE users SET last_matched_at = NULL, updated_at = CURRENT_TIMESTAMP WHERE id = $1`
	return r.execOne(ctx, query, userID)
}

func (r *userRepository) ClearRecentMatches(ctx context.Context, userID string) error {
	query := `UPDATE users SET recent_matches = '{}', updated_at = CURRENT_TIMESTAMP WHERE id = $1`
	return r.execOne(ctx, query, userID)
}

func (r *userRepository) execOne(ctx context.Context, query string, args ...interface{}) error {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
