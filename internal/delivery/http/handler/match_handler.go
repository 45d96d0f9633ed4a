package handler

import (
	"errors"
	"net/http"

	"github.com/Debyte404/Obscura/internal/domain"
	"github.com/Debyte404/Obscura/internal/usecase/match"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type MatchHandler struct {
	matchUseCase *match.MatchUseCase
	log          logrus.FieldLogger
}

func NewMatchHandler(matchUseCase *match.MatchUseCase, log logrus.FieldLogger) *MatchHandler {
	return &MatchHandler{
		matchUseCase: matchUseCase,
		log:          log,
	}
}

// MatchSuccessResponse is returned when a partner was found and the chat created
type MatchSuccessResponse struct {
	Success        bool   `json:"success"`
	ConversationID string `json:"conversation_id"`
	PartnerID      string `json:"partner_id"`
	MatchScore     int    `json:"match_score"`
}

// MatchCooldownResponse is returned while the caller's cooldown is active
type MatchCooldownResponse struct {
	Cooldown  bool                     `json:"cooldown"`
	Message   string                   `json:"message"`
	Remaining domain.CooldownRemaining `json:"remaining"`
}

var reasonStatus = map[domain.MatchFailureReason]int{
	domain.ReasonUnauthenticated:   http.StatusUnauthorized,
	domain.ReasonUserNotFound:      http.StatusUnauthorized,
	domain.ReasonNoCandidates:      http.StatusNotFound,
	domain.ReasonMatchInProgress:   http.StatusConflict,
	domain.ReasonMatchmakingFailed: http.StatusInternalServerError,
	domain.ReasonTransactionFailed: http.StatusInternalServerError,
}

// FindMatch handles POST /match
// @Summary Find a match
// @Description Pick a partner for the current user and open a chat with them
// @Tags match
// @Security BearerAuth
// @Produce json
// @Success 200 {object} MatchSuccessResponse
// @Success 200 {object} MatchCooldownResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /match [post]
func (h *MatchHandler) FindMatch(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:  "Not authenticated",
			Reason: string(domain.ReasonUnauthenticated),
		})
		return
	}

	outcome, err := h.matchUseCase.FindMatch(c.Request.Context(), userID)
	if err != nil {
		h.log.WithError(err).WithField("user_id", userID).Error("match request failed")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: "failed to find match",
		})
		return
	}

	switch outcome.Status {
	case domain.MatchStatusSuccess:
		c.JSON(http.StatusOK, MatchSuccessResponse{
			Success:        true,
			ConversationID: outcome.ConversationID,
			PartnerID:      outcome.PartnerID,
			MatchScore:     outcome.MatchScore,
		})
	case domain.MatchStatusCooldown:
		resp := MatchCooldownResponse{Cooldown: true, Message: outcome.Message}
		if outcome.Cooldown != nil {
			resp.Remaining = *outcome.Cooldown
		}
		c.JSON(http.StatusOK, resp)
	default:
		status, known := reasonStatus[outcome.Reason]
		if !known {
			status = http.StatusInternalServerError
		}
		c.JSON(status, ErrorResponse{
			Error:  outcome.Message,
			Reason: string(outcome.Reason),
		})
	}
}

// GetStatus handles GET /match/status
// @Summary Match status
// @Description Whether the current user may request a match now
// @Tags match
// @Security BearerAuth
// @Produce json
// @Success 200 {object} match.Status
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /match/status [get]
func (h *MatchHandler) GetStatus(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	status, err := h.matchUseCase.Status(c.Request.Context(), userID)
	if err != nil {
		h.respondUserError(c, userID, err, "failed to get match status")
		return
	}
	c.JSON(http.StatusOK, status)
}

// ResetCooldown handles POST /match/reset-cooldown (development only)
func (h *MatchHandler) ResetCooldown(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	if err := h.matchUseCase.ResetCooldown(c.Request.Context(), userID); err != nil {
		h.respondUserError(c, userID, err, "failed to reset cooldown")
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Cooldown reset"})
}

// ClearHistory handles DELETE /match/history (development only)
func (h *MatchHandler) ClearHistory(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	if err := h.matchUseCase.ClearMatchHistory(c.Request.Context(), userID); err != nil {
		h.respondUserError(c, userID, err, "failed to clear match history")
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Match history cleared"})
}

func (h *MatchHandler) respondUserError(c *gin.Context, userID string, err error, message string) {
	if errors.Is(err, domain.ErrUserNotFound) {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User not found"})
		return
	}
	h.log.WithError(err).WithField("user_id", userID).Error(message)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: message})
}
