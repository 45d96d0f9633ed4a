package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Schema creates the tables used by matchmaking. Statements are idempotent.
const Schema = `
CREATE TABLE IF NOT EXISTS users (
	id              TEXT PRIMARY KEY,
	user_name       TEXT NOT NULL DEFAULT '',
	first_name      TEXT NOT NULL DEFAULT '',
	home_region     TEXT NOT NULL DEFAULT '',
	language        TEXT NOT NULL DEFAULT '',
	tags            TEXT[] NOT NULL DEFAULT '{}',
	introduction    TEXT NOT NULL DEFAULT '',
	preference      TEXT NOT NULL DEFAULT '',
	blocked_users   TEXT[] NOT NULL DEFAULT '{}',
	recent_matches  TEXT[] NOT NULL DEFAULT '{}',
	last_matched_at TIMESTAMPTZ,
	created_at      TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at      TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_users_home_region ON users (home_region);
CREATE INDEX IF NOT EXISTS idx_users_language ON users (language);
CREATE INDEX IF NOT EXISTS idx_users_tags ON users USING GIN (tags);

CREATE TABLE IF NOT EXISTS conversations (
	id           UUID PRIMARY KEY,
	participants TEXT[] NOT NULL,
	messages     JSONB NOT NULL DEFAULT '[]',
	is_active    BOOLEAN NOT NULL DEFAULT TRUE,
	ended_by     TEXT,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at   TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
	CONSTRAINT conversations_two_participants CHECK (
		cardinality(participants) = 2 AND participants[1] <> participants[2]
	)
);

CREATE INDEX IF NOT EXISTS idx_conversations_participants ON conversations USING GIN (participants);
CREATE INDEX IF NOT EXISTS idx_conversations_active ON conversations (is_active);
`

// EnsureSchema applies Schema.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
