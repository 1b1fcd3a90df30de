package handlers

import (
	"errors"
	"net/http"

	"rps_game/internal/logger"
	"rps_game/internal/service"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	Users     *service.UserService
	Games     *service.GameService
	Scores    *service.ScoreService
	Reminders *service.ReminderService
}

func NewHandler(users *service.UserService, games *service.GameService, scores *service.ScoreService, reminders *service.ReminderService) *Handler {
	return &Handler{
		Users:     users,
		Games:     games,
		Scores:    scores,
		Reminders: reminders,
	}
}

// ItemsResponse wraps list results
type ItemsResponse[T any] struct {
	Items []T `json:"items"`
}

// MessageResponse carries a single confirmation or rejection message
type MessageResponse struct {
	Message string `json:"message"`
}

// respondError maps service errors onto status codes
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserExists):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case service.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case service.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logger.WithContext(c.Request.Context()).Error("request failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
}
