package handlers

import (
	"net/http"
	"strconv"

	"rps_game/internal/domain"

	"github.com/gin-gonic/gin"
)

type CreateUserRequest struct {
	UserName string `json:"user_name" binding:"required"`
	Email    string `json:"email"`
}

// CreateUser registers a user with a unique name
func (h *Handler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	msg, err := h.Users.CreateUser(c.Request.Context(), req.UserName, req.Email)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: msg})
}

// Rankings returns every user ordered by win rate
func (h *Handler) Rankings(c *gin.Context) {
	rankings, err := h.Users.Rankings(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ItemsResponse[domain.Ranking]{Items: rankings})
}

// UserActivity returns a user's recent lifecycle events
func (h *Handler) UserActivity(c *gin.Context) {
	limit := 50
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = n
	}

	logs, err := h.Users.Activity(c.Request.Context(), c.Param("user_name"), limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ItemsResponse[*domain.AuditLog]{Items: logs})
}
