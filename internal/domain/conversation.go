package domain

import "time"

type MessageType string

const (
	MessageTypeText  MessageType = "text"
	MessageTypeImage MessageType = "image"
)

// Message is opaque to matchmaking; it is carried so chat listings can show the last one.
type Message struct {
	ID        string      `json:"id"`
	SenderID  string      `json:"sender_id"`
	Type      MessageType `json:"type"`
	Content   string      `json:"content"`
	Timestamp time.Time   `json:"timestamp"`
}

// Conversation pairs exactly two distinct users.
type Conversation struct {
	ID           string    `json:"id" db:"id"`
	Participants []string  `json:"participants" db:"participants"`
	Messages     []Message `json:"messages" db:"messages"`
	IsActive     bool      `json:"is_active" db:"is_active"`
	EndedBy      *string   `json:"ended_by" db:"ended_by"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// NewConversation builds an active, empty conversation between a and b.
func NewConversation(id, a, b string, now time.Time) (*Conversation, error) {
	if a == "" || b == "" || a == b {
		return nil, ErrInvalidConversation
	}
	return &Conversation{
		ID:           id,
		Participants: []string{a, b},
		Messages:     []Message{},
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

func (c *Conversation) HasParticipant(userID string) bool {
	return contains(c.Participants, userID)
}

// OtherParticipant returns the participant that is not userID.
func (c *Conversation) OtherParticipant(userID string) (string, bool) {
	if len(c.Participants) != 2 {
		return "", false
	}
	if c.Participants[0] == userID {
		return c.Participants[1], true
	}
	if c.Participants[1] == userID {
		return c.Participants[0], true
	}
	return "", false
}

// LastMessage returns the newest message, or nil for an empty conversation.
func (c *Conversation) LastMessage() *Message {
	if len(c.Messages) == 0 {
		return nil
	}
	return &c.Messages[len(c.Messages)-1]
}

// End marks the conversation inactive on behalf of userID.
func (c *Conversation) End(userID string, now time.Time) {
	c.IsActive = false
	c.EndedBy = &userID
	c.UpdatedAt = now
}
