package domain

import (
	"fmt"
	"time"
)

// ScoredCandidate is a transient ranking entry for one match request.
type ScoredCandidate struct {
	Profile *UserProfile
	// RuleScore is the affinity score including jitter (0-69).
	RuleScore int
	// CompatibilityScore is the clamped oracle score (0-30).
	CompatibilityScore int
	Total              int
}

// Pairing describes the state transition committed for a successful match.
type Pairing struct {
	ConversationID string
	RequesterID    string
	PartnerID      string
	// PreviousLastMatchedAt is the requester's lastMatchedAt as read at the cooldown
	// check. The commit only applies while the stored value is still equal.
	PreviousLastMatchedAt *time.Time
	MatchedAt             time.Time
	HistoryLimit          int
}

// CooldownRemaining is the wait time left before a user may request another match.
type CooldownRemaining struct {
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
}

func (c CooldownRemaining) Message() string {
	return fmt.Sprintf("Next match available in %dh %dm", c.Hours, c.Minutes)
}

type MatchStatus string

const (
	MatchStatusSuccess  MatchStatus = "success"
	MatchStatusCooldown MatchStatus = "cooldown"
	MatchStatusError    MatchStatus = "error"
)

// MatchFailureReason classifies MatchStatusError outcomes.
type MatchFailureReason string

const (
	ReasonUnauthenticated   MatchFailureReason = "unauthenticated"
	ReasonUserNotFound      MatchFailureReason = "user_not_found"
	ReasonNoCandidates      MatchFailureReason = "no_candidates"
	ReasonMatchmakingFailed MatchFailureReason = "matchmaking_failed"
	ReasonMatchInProgress   MatchFailureReason = "match_in_progress"
	ReasonTransactionFailed MatchFailureReason = "transaction_failed"
)

// MatchOutcome is the discriminated result of a match request.
type MatchOutcome struct {
	Status         MatchStatus
	ConversationID string
	PartnerID      string
	MatchScore     int
	Cooldown       *CooldownRemaining
	Reason         MatchFailureReason
	Message        string
}

func MatchSucceeded(conversationID, partnerID string, score int) *MatchOutcome {
	return &MatchOutcome{
		Status:         MatchStatusSuccess,
		ConversationID: conversationID,
		PartnerID:      partnerID,
		MatchScore:     score,
	}
}

func MatchDeferred(remaining CooldownRemaining) *MatchOutcome {
	return &MatchOutcome{
		Status:   MatchStatusCooldown,
		Cooldown: &remaining,
		Message:  remaining.Message(),
	}
}

func MatchFailed(reason MatchFailureReason, message string) *MatchOutcome {
	return &MatchOutcome{
		Status:  MatchStatusError,
		Reason:  reason,
		Message: message,
	}
}
