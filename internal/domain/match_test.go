package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchOutcomes(t *testing.T) {
	ok := MatchSucceeded("c1", "p1", 72)
	assert.Equal(t, MatchStatusSuccess, ok.Status)
	assert.Equal(t, "c1", ok.ConversationID)
	assert.Equal(t, "p1", ok.PartnerID)
	assert.Equal(t, 72, ok.MatchScore)
	assert.Empty(t, ok.Reason)

	deferred := MatchDeferred(CooldownRemaining{Hours: 5, Minutes: 7})
	assert.Equal(t, MatchStatusCooldown, deferred.Status)
	assert.Equal(t, "Next match available in 5h 7m", deferred.Message)
	assert.Equal(t, 5, deferred.Cooldown.Hours)

	failed := MatchFailed(ReasonNoCandidates, "none")
	assert.Equal(t, MatchStatusError, failed.Status)
	assert.Equal(t, ReasonNoCandidates, failed.Reason)
	assert.Equal(t, "none", failed.Message)
	assert.Nil(t, failed.Cooldown)
}

func TestCooldownRemaining_Message(t *testing.T) {
	assert.Equal(t, "Next match available in 0h 0m", CooldownRemaining{}.Message())
	assert.Equal(t, "Next match available in 23h 59m", CooldownRemaining{Hours: 23, Minutes: 59}.Message())
}
