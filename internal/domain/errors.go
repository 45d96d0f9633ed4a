package domain

import "errors"

var (
	// Session / user
	ErrUnauthenticated = errors.New("not authenticated")
	ErrInvalidToken    = errors.New("invalid token")
	ErrUserNotFound    = errors.New("user not found")
	ErrInvalidProfile  = errors.New("invalid profile")

	// Matchmaking
	ErrNoCandidates      = errors.New("no matching candidates found")
	ErrMatchmakingFailed = errors.New("matchmaking failed")
	ErrMatchInProgress   = errors.New("match request already in progress")
	ErrStaleMatchState   = errors.New("match state changed concurrently")
	ErrSelfPairing       = errors.New("cannot pair a user with itself")

	// Conversations
	ErrConversationNotFound = errors.New("conversation not found")
	ErrInvalidConversation  = errors.New("conversation needs two distinct participants")
)
