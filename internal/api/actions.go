package api

import (
	"net/http"

	"github.com/hyukkyo/demon-tournament/internal/constants"
	"github.com/hyukkyo/demon-tournament/internal/game"

	"github.com/gin-gonic/gin"
)

// SelectionRequest carries the three card names for the round, in order.
type SelectionRequest struct {
	Cards []string `json:"cards" binding:"required"`
}

// SubmitSelection stores the caller's cards for the current round. When
// the second selection arrives the round is resolved before responding.
func (h *MatchHandler) SubmitSelection(c *gin.Context) {
	code := matchCodeParam(c)
	if code == "" {
		return
	}
	var req SelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	sel, err := game.ParseSelection(req.Cards)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			constants.JSONKeyError:   constants.ErrInvalidRequest,
			constants.JSONKeyDetails: err.Error(),
		})
		return
	}

	playerID, _ := playerFromContext(c)
	m, resolved, err := h.ctl.SubmitSelection(code, playerID, sel)
	if err != nil {
		writeServiceError(c, err, constants.ErrFailedStoreSelection)
		return
	}
	out, err := MarshalIntoSnakeTimestamps(m)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedStoreSelection})
		return
	}
	c.JSON(http.StatusOK, gin.H{"match": out, "resolved": resolved})
}
