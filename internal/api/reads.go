package api

import (
	"net/http"
	"strconv"

	"github.com/hyukkyo/demon-tournament/internal/constants"
	"github.com/gin-gonic/gin"
)

// ListRounds returns the stored event logs of a match.
func (h *MatchHandler) ListRounds(c *gin.Context) {
	code := matchCodeParam(c)
	if code == "" {
		return
	}
	logs, err := h.ctl.Rounds(code)
	if err != nil {
		writeServiceError(c, err, constants.ErrFailedFetchRounds)
		return
	}
	respond(c, http.StatusOK, logs, constants.ErrFailedFetchRounds)
}

// ListLeaderboard returns top players ordered by wins.
func (h *MatchHandler) ListLeaderboard(c *gin.Context) {
	limit := 10
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}
	users, err := h.ctl.Leaderboard(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchLeaderboard})
		return
	}
	respond(c, http.StatusOK, users, constants.ErrFailedFetchLeaderboard)
}

// GetPlayerStats returns the caller's aggregate results.
func (h *MatchHandler) GetPlayerStats(c *gin.Context) {
	playerID, _ := playerFromContext(c)
	st, err := h.ctl.Stats(playerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchStats})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"player_id":    playerID,
		"games_played": st.GamesPlayed,
		"wins":         st.Wins,
		"draws":        st.Draws,
		"forfeits":     st.Forfeits,
	})
}
