package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Debyte404/Obscura/internal/domain"
	"github.com/Debyte404/Obscura/internal/repository"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const conversationColumns = `id, participants, messages, is_active, ended_by, created_at, updated_at`

type conversationRow struct {
	ID           string         `db:"id"`
	Participants pq.StringArray `db:"participants"`
	Messages     []byte         `db:"messages"`
	IsActive     bool           `db:"is_active"`
	EndedBy      *string        `db:"ended_by"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}

func (r conversationRow) toDomain() (*domain.Conversation, error) {
	messages := []domain.Message{}
	if len(r.Messages) > 0 {
		if err := json.Unmarshal(r.Messages, &messages); err != nil {
			return nil, fmt.Errorf("failed to decode messages of conversation %s: %w", r.ID, err)
		}
	}
	return &domain.Conversation{
		ID:           r.ID,
		Participants: []string(r.Participants),
		Messages:     messages,
		IsActive:     r.IsActive,
		EndedBy:      r.EndedBy,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}, nil
}

type conversationRepository struct {
	db *sqlx.DB
}

func NewConversationRepository(db *sqlx.DB) repository.ConversationRepository {
	return &conversationRepository{db: db}
}

func (r *conversationRepository) GetByID(ctx context.Context, id string) (*domain.Conversation, error) {
	var row conversationRow
	query := `SELECT ` + conversationColumns + ` FROM conversations WHERE id = $1`
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrConversationNotFound
		}
		return nil, err
	}
	return row.toDomain()
}

func (r *conversationRepository) ListActiveByParticipant(ctx context.Context, userID string, limit int) ([]*domain.Conversation, error) {
	query := `
		SELECT ` + conversationColumns + `
		FROM conversations
		WHERE $1 = ANY(participants) AND is_active = true
		ORDER BY updated_at DESC
		LIMIT $2
	`
	var rows []conversationRow
	if err := r.db.SelectContext(ctx, &rows, query, userID, limit); err != nil {
		return nil, err
	}

	conversations := make([]*domain.Conversation, 0, len(rows))
	for _, row := range rows {
		c, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		conversations = append(conversations, c)
	}
	return conversations, nil
}

func (r *conversationRepository) End(ctx context.Context, id, endedBy string) error {
	query := `
		UPDATE conversations
		SET is_active = false, ended_by = $2, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query, id, endedBy)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrConversationNotFound
	}
	return nil
}

// insertConversation writes the conversation row of a pairing.
func insertConversation(ctx context.Context, ext sqlx.ExtContext, c *domain.Conversation) error {
	messages, err := json.Marshal(c.Messages)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO conversations (id, participants, messages, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
	`
	_, err = ext.ExecContext(ctx, query, c.ID, pq.Array(c.Participants), messages, c.IsActive, c.CreatedAt)
	return err
}
