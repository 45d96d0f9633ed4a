package handler

import (
	"errors"
	"net/http"

	"github.com/Debyte404/Obscura/internal/domain"
	"github.com/Debyte404/Obscura/internal/usecase/profile"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type ProfileHandler struct {
	profileUseCase *profile.ProfileUseCase
	log            logrus.FieldLogger
}

func NewProfileHandler(profileUseCase *profile.ProfileUseCase, log logrus.FieldLogger) *ProfileHandler {
	return &ProfileHandler{
		profileUseCase: profileUseCase,
		log:            log,
	}
}

// GetMyProfile handles GET /profile/me
// @Summary Get my profile
// @Description Get current user's profile and whether it can be matched
// @Tags profile
// @Security BearerAuth
// @Produce json
// @Success 200 {object} profile.ProfileResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /profile/me [get]
func (h *ProfileHandler) GetMyProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error: "unauthorized",
		})
		return
	}

	resp, err := h.profileUseCase.GetMyProfile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error: "profile not found",
			})
			return
		}
		h.log.WithError(err).WithField("user_id", userID).Error("failed to get profile")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: "failed to get profile",
		})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetCatalog handles GET /profile/catalog
// @Summary Onboarding catalogue
// @Description Regions, languages and interest tags a profile picks from
// @Tags profile
// @Produce json
// @Success 200 {object} profile.Catalog
// @Router /profile/catalog [get]
func (h *ProfileHandler) GetCatalog(c *gin.Context) {
	c.JSON(http.StatusOK, h.profileUseCase.GetCatalog())
}
