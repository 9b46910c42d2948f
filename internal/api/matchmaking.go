package api

import (
	"net/http"

	"github.com/hyukkyo/demon-tournament/internal/constants"
	"github.com/gin-gonic/gin"
)

// JoinQueue enters the caller into matchmaking. When an opponent was
// already waiting the started match is returned.
func (h *MatchHandler) JoinQueue(c *gin.Context) {
	var req characterRequest
	if !bindOptionalJSON(c, &req) {
		return
	}
	playerID, name := playerFromContext(c)
	m, err := h.ctl.JoinQueue(playerID, name, req.Character)
	if err != nil {
		writeServiceError(c, err, constants.ErrFailedJoinQueue)
		return
	}
	if m == nil {
		c.JSON(http.StatusAccepted, gin.H{"queued": true})
		return
	}
	out, err := MarshalIntoSnakeTimestamps(m)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedJoinQueue})
		return
	}
	c.JSON(http.StatusOK, gin.H{"queued": false, "match": out})
}

// LeaveQueue removes the caller from matchmaking.
func (h *MatchHandler) LeaveQueue(c *gin.Context) {
	playerID, _ := playerFromContext(c)
	if err := h.ctl.LeaveQueue(playerID); err != nil {
		writeServiceError(c, err, constants.ErrFailedJoinQueue)
		return
	}
	c.Status(http.StatusNoContent)
}

// QueueStatus reports whether the caller is still waiting or has been
// paired, together with overall queue load.
func (h *MatchHandler) QueueStatus(c *gin.Context) {
	playerID, _ := playerFromContext(c)
	c.JSON(http.StatusOK, gin.H{
		"status": h.ctl.QueueStatus(playerID),
		"stats":  h.ctl.QueueStats(),
	})
}
