package api

import (
	"net/http"

	"github.com/hyukkyo/demon-tournament/internal/constants"
	"github.com/hyukkyo/demon-tournament/internal/keys"
	"github.com/hyukkyo/demon-tournament/internal/logging"

	"github.com/gin-gonic/gin"
)

type joinMatchRequest struct {
	Code      string `json:"code" binding:"required"`
	Character string `json:"character"`
}

// characterRequest is the optional body of create and matchmaking calls.
type characterRequest struct {
	Character string `json:"character"`
}

// CreateMatch opens a new match with the caller in seat A.
func (h *MatchHandler) CreateMatch(c *gin.Context) {
	var req characterRequest
	if !bindOptionalJSON(c, &req) {
		return
	}
	playerID, name := playerFromContext(c)
	m, err := h.ctl.CreateMatch(playerID, name, req.Character)
	if err != nil {
		logging.Error("create match failed", err, logging.Fields{constants.LogFieldPlayerID: playerID})
		writeServiceError(c, err, constants.ErrFailedCreateMatch)
		return
	}
	respond(c, http.StatusCreated, m, constants.ErrFailedCreateMatch)
}

// JoinMatch seats the caller in seat B of a waiting match and starts it.
func (h *MatchHandler) JoinMatch(c *gin.Context) {
	var req joinMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	code := keys.NormalizeMatchCode(req.Code)
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidMatchCode})
		return
	}
	playerID, name := playerFromContext(c)
	m, err := h.ctl.JoinMatch(code, playerID, name, req.Character)
	if err != nil {
		writeServiceError(c, err, constants.ErrFailedUpdateMatch)
		return
	}
	respond(c, http.StatusOK, m, constants.ErrFailedUpdateMatch)
}

// GetMatch returns the current state of a match. Pending selections are
// never included.
func (h *MatchHandler) GetMatch(c *gin.Context) {
	code := matchCodeParam(c)
	if code == "" {
		return
	}
	m, err := h.ctl.GetMatch(code)
	if err != nil {
		writeServiceError(c, err, constants.ErrMatchNotFound)
		return
	}
	respond(c, http.StatusOK, m, constants.ErrMatchNotFound)
}

// LeaveMatch forfeits an in-progress match or cancels a waiting one.
func (h *MatchHandler) LeaveMatch(c *gin.Context) {
	code := matchCodeParam(c)
	if code == "" {
		return
	}
	playerID, _ := playerFromContext(c)
	m, err := h.ctl.Forfeit(code, playerID, "left the match")
	if err != nil {
		writeServiceError(c, err, constants.ErrFailedUpdateMatch)
		return
	}
	respond(c, http.StatusOK, m, constants.ErrFailedUpdateMatch)
}
