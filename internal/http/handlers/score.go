package handlers

import (
	"net/http"

	"rps_game/internal/service"

	"github.com/gin-gonic/gin"
)

// ListScores returns every recorded score
func (h *Handler) ListScores(c *gin.Context) {
	scores, err := h.Scores.All(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ItemsResponse[service.ScoreForm]{Items: scores})
}

// UserScores returns the scores of one user
func (h *Handler) UserScores(c *gin.Context) {
	scores, err := h.Scores.ByUser(c.Request.Context(), c.Param("user_name"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ItemsResponse[service.ScoreForm]{Items: scores})
}

// SendReminders runs the reminder sweep on demand, for external cron triggers
func (h *Handler) SendReminders(c *gin.Context) {
	report, err := h.Reminders.SendReminders(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}
