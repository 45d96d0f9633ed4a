package chat

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Debyte404/Obscura/internal/domain"
	"github.com/Debyte404/Obscura/internal/repository"
	"github.com/sirupsen/logrus"
)

// ListLimit caps how many active chats one listing returns.
const ListLimit = 50

const unknownUserName = "Unknown User"

type ChatUseCase struct {
	conversations repository.ConversationRepository
	users         repository.UserRepository
	log           logrus.FieldLogger
}

func NewChatUseCase(
	conversations repository.ConversationRepository,
	users repository.UserRepository,
	log logrus.FieldLogger,
) *ChatUseCase {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &ChatUseCase{
		conversations: conversations,
		users:         users,
		log:           log.WithField("component", "chat"),
	}
}

// PartnerSummary is the other participant as shown in a chat listing.
type PartnerSummary struct {
	ID       string `json:"id"`
	UserName string `json:"user_name"`
}

// ChatSummary represents one entry of the chat list
type ChatSummary struct {
	ID          string          `json:"id"`
	Partner     PartnerSummary  `json:"partner"`
	LastMessage *domain.Message `json:"last_message"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ListChats returns the active chats of userID, most recently updated first.
func (uc *ChatUseCase) ListChats(ctx context.Context, userID string) ([]ChatSummary, error) {
	conversations, err := uc.conversations.ListActiveByParticipant(ctx, userID, ListLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list chats: %w", err)
	}

	chats := make([]ChatSummary, 0, len(conversations))
	for _, c := range conversations {
		partnerID, _ := c.OtherParticipant(userID)
		partner := PartnerSummary{ID: partnerID, UserName: unknownUserName}
		if p, err := uc.users.GetByID(ctx, partnerID); err == nil {
			partner.UserName = p.UserName
		} else if !errors.Is(err, domain.ErrUserNotFound) {
			return nil, fmt.Errorf("failed to load chat partner: %w", err)
		}

		chats = append(chats, ChatSummary{
			ID:          c.ID,
			Partner:     partner,
			LastMessage: c.LastMessage(),
			UpdatedAt:   c.UpdatedAt,
		})
	}
	return chats, nil
}

// EndChat deactivates a chat on behalf of one of its participants. Chats the user
// is not part of are reported as not found.
func (uc *ChatUseCase) EndChat(ctx context.Context, userID, conversationID string) error {
	if _, err := uc.participantConversation(ctx, userID, conversationID); err != nil {
		return err
	}
	if err := uc.conversations.End(ctx, conversationID, userID); err != nil {
		return err
	}
	uc.log.WithFields(logrus.Fields{
		"user_id":         userID,
		"conversation_id": conversationID,
	}).Info("chat ended")
	return nil
}

// BlockUser blocks the other participant of a chat and ends the chat. A blocked
// user is never offered as a match candidate again.
func (uc *ChatUseCase) BlockUser(ctx context.Context, userID, conversationID string) error {
	conv, err := uc.participantConversation(ctx, userID, conversationID)
	if err != nil {
		return err
	}
	partnerID, ok := conv.OtherParticipant(userID)
	if !ok {
		return domain.ErrInvalidConversation
	}

	if err := uc.users.AddBlockedUser(ctx, userID, partnerID); err != nil {
		return fmt.Errorf("failed to block user: %w", err)
	}
	if err := uc.conversations.End(ctx, conversationID, userID); err != nil {
		return err
	}
	uc.log.WithFields(logrus.Fields{
		"user_id":         userID,
		"blocked_id":      partnerID,
		"conversation_id": conversationID,
	}).Info("user blocked")
	return nil
}

func (uc *ChatUseCase) participantConversation(ctx context.Context, userID, conversationID string) (*domain.Conversation, error) {
	conv, err := uc.conversations.GetByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if !conv.HasParticipant(userID) {
		return nil, domain.ErrConversationNotFound
	}
	return conv, nil
}
