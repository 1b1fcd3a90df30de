package handlers

import (
	"net/http"

	"rps_game/internal/domain"
	"rps_game/internal/service"

	"github.com/gin-gonic/gin"
)

type NewGameRequest struct {
	UserName string `json:"user_name" binding:"required"`
	BestOf   *int   `json:"best_of"`
}

type MakeMoveRequest struct {
	Move string `json:"move" binding:"required"`
}

// NewGame starts a game against the computer
func (h *Handler) NewGame(c *gin.Context) {
	var req NewGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	bestOf := domain.DefaultBestOf
	if req.BestOf != nil {
		bestOf = *req.BestOf
	}

	form, err := h.Games.NewGame(c.Request.Context(), req.UserName, bestOf)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, form)
}

// GetGame returns the current game state
func (h *Handler) GetGame(c *gin.Context) {
	form, err := h.Games.GetGame(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, form)
}

// GameHistory returns the ordered round log
func (h *Handler) GameHistory(c *gin.Context) {
	history, err := h.Games.History(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ItemsResponse[string]{Items: history})
}

// CancelGame deletes an unfinished game
func (h *Handler) CancelGame(c *gin.Context) {
	msg, err := h.Games.CancelGame(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: msg})
}

// MakeMove plays one round. Invalid moves come back as 200 with a message.
func (h *Handler) MakeMove(c *gin.Context) {
	var req MakeMoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	form, err := h.Games.MakeMove(c.Request.Context(), c.Param("id"), req.Move)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, form)
}

// UserGames lists a user's unfinished games
func (h *Handler) UserGames(c *gin.Context) {
	games, err := h.Games.UserGames(c.Request.Context(), c.Param("user_name"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ItemsResponse[*service.GameForm]{Items: games})
}
