package memory

import (
	"context"
	"sort"

	"github.com/Debyte404/Obscura/internal/domain"
)

func (cs *ConversationStore) GetByID(ctx context.Context, id string) (*domain.Conversation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s := cs.s
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.conversations[id]
	if !ok {
		return nil, domain.ErrConversationNotFound
	}
	return cloneConversation(c), nil
}

// ListActiveByParticipant returns active conversations of userID, most recently updated first.
func (cs *ConversationStore) ListActiveByParticipant(ctx context.Context, userID string, limit int) ([]*domain.Conversation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s := cs.s
	s.mu.Lock()
	var out []*domain.Conversation
	for _, c := range s.conversations {
		if c.IsActive && c.HasParticipant(userID) {
			out = append(out, cloneConversation(c))
		}
	}
	s.mu.Unlock()

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (cs *ConversationStore) End(ctx context.Context, id, endedBy string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s := cs.s
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.conversations[id]
	if !ok {
		return domain.ErrConversationNotFound
	}
	c.End(endedBy, s.now())
	return nil
}

func cloneConversation(c *domain.Conversation) *domain.Conversation {
	out := *c
	out.Participants = append([]string(nil), c.Participants...)
	out.Messages = append([]domain.Message{}, c.Messages...)
	if c.EndedBy != nil {
		e := *c.EndedBy
		out.EndedBy = &e
	}
	return &out
}
