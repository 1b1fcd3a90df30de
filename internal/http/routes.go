package http

import (
	"rps_game/internal/http/handlers"
	"rps_game/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// NewRouter builds the engine with the standard middleware stack
func NewRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(), middleware.Metrics())
	return r
}

func RegisterRoutes(r *gin.Engine, h *handlers.Handler, health *handlers.HealthHandler) {
	// Health checks
	r.GET("/health", health.Health)
	r.GET("/healthz", health.Liveness)
	r.GET("/readyz", health.Readiness)

	// External cron trigger for the reminder sweep
	r.POST("/crons/send_reminder", h.SendReminders)

	v1 := r.Group("/api/v1")
	registerAPIRoutes(v1, h)
}

func registerAPIRoutes(api *gin.RouterGroup, h *handlers.Handler) {
	// Users
	api.POST("/user", h.CreateUser)
	api.GET("/user/:user_name/activity", h.UserActivity)
	api.GET("/rankings", h.Rankings)

	// Games
	api.POST("/game", h.NewGame)
	api.GET("/game/:id", h.GetGame)
	api.PUT("/game/:id", h.MakeMove)
	api.DELETE("/game/:id", h.CancelGame)
	api.GET("/game/:id/history", h.GameHistory)
	api.GET("/games/user/:user_name", h.UserGames)

	// Scores
	api.GET("/scores", h.ListScores)
	api.GET("/scores/user/:user_name", h.UserScores)
}
