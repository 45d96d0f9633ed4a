package http

import (
	"net/http"

	"github.com/Debyte404/Obscura/internal/delivery/http/handler"
	"github.com/Debyte404/Obscura/internal/delivery/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Router struct {
	matchHandler   *handler.MatchHandler
	chatHandler    *handler.ChatHandler
	profileHandler *handler.ProfileHandler
	authMiddleware *middleware.AuthMiddleware
	matchLimiter   *middleware.MatchThrottle
	log            logrus.FieldLogger
	devTools       bool
}

func NewRouter(
	matchHandler *handler.MatchHandler,
	chatHandler *handler.ChatHandler,
	profileHandler *handler.ProfileHandler,
	authMiddleware *middleware.AuthMiddleware,
	matchLimiter *middleware.MatchThrottle,
	log logrus.FieldLogger,
	devTools bool,
) *Router {
	return &Router{
		matchHandler:   matchHandler,
		chatHandler:    chatHandler,
		profileHandler: profileHandler,
		authMiddleware: authMiddleware,
		matchLimiter:   matchLimiter,
		log:            log,
		devTools:       devTools,
	}
}

func (r *Router) Setup() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(r.log, "/health"))

	// Health check (supports both GET and HEAD)
	healthHandler := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	}
	router.GET("/health", healthHandler)
	router.HEAD("/health", healthHandler)

	// API v1
	v1 := router.Group("/api/v1")
	{
		v1.GET("/profile/catalog", r.profileHandler.GetCatalog)

		// Protected routes
		protected := v1.Group("")
		protected.Use(r.authMiddleware.RequireAuth())
		{
			protected.GET("/profile/me", r.profileHandler.GetMyProfile)

			matchGroup := protected.Group("/match")
			{
				matchGroup.POST("", middleware.RateLimit(r.matchLimiter), r.matchHandler.FindMatch)
				matchGroup.GET("/status", r.matchHandler.GetStatus)

				// Development tooling
				if r.devTools {
					matchGroup.POST("/reset-cooldown", r.matchHandler.ResetCooldown)
					matchGroup.DELETE("/history", r.matchHandler.ClearHistory)
				}
			}

			chats := protected.Group("/chats")
			{
				chats.GET("", r.chatHandler.ListChats)
				chats.POST("/:id/end", r.chatHandler.EndChat)
				chats.POST("/:id/block", r.chatHandler.BlockUser)
			}
		}
	}

	return router
}
