package api

import (
	"strings"

	"github.com/hyukkyo/demon-tournament/internal/constants"
	"github.com/hyukkyo/demon-tournament/internal/game"
	"github.com/hyukkyo/demon-tournament/internal/logging"
	"github.com/hyukkyo/demon-tournament/internal/realtime"

	"github.com/gin-gonic/gin"
)

// Subscribe upgrades to a websocket that streams match_state and
// battle_events messages for one match. Browsers cannot set headers on
// the upgrade request, so the player id may also come from ?player_id=.
// Connections without a seated player id are spectators.
func (h *MatchHandler) Subscribe(c *gin.Context) {
	code := matchCodeParam(c)
	if code == "" {
		return
	}
	m, err := h.ctl.GetMatch(code)
	if err != nil {
		writeServiceError(c, err, constants.ErrMatchNotFound)
		return
	}

	playerID := strings.TrimSpace(c.GetHeader(constants.HeaderPlayerID))
	if playerID == "" {
		playerID = strings.TrimSpace(c.Query("player_id"))
	}
	sess := realtime.Session{
		Code:    code,
		Initial: &realtime.Message{Type: constants.MessageMatchState, MatchCode: code, Payload: m},
	}
	if _, seated := m.SeatOf(playerID); seated {
		sess.PlayerID = playerID
		sess.OnDisconnect = h.forfeitOnDisconnect
	}

	if err := realtime.Serve(h.hub, c.Writer, c.Request, sess); err != nil {
		logging.Warn("websocket upgrade failed", logging.Fields{
			constants.LogFieldMatchCode: code,
			constants.LogFieldReason:    err.Error(),
		})
	}
}

// forfeitOnDisconnect ends an in-progress match in favour of the player
// that is still connected.
func (h *MatchHandler) forfeitOnDisconnect(code, playerID string) {
	m, err := h.ctl.GetMatch(code)
	if err != nil || m.Status != game.StatusInProgress {
		return
	}
	if _, err := h.ctl.Forfeit(code, playerID, "disconnected"); err != nil {
		logging.Error("disconnect forfeit failed", err, logging.Fields{
			constants.LogFieldMatchCode: code,
			constants.LogFieldPlayerID:  playerID,
		})
	}
}

