package service

import (
	"github.com/hyukkyo/demon-tournament/internal/constants"
	"github.com/hyukkyo/demon-tournament/internal/game"
	"github.com/hyukkyo/demon-tournament/internal/logging"
)

// Forfeit ends the match on behalf of playerID, who left or disconnected.
// In progress the opponent wins; a match still waiting for its second
// player is cancelled. Finished matches are returned unchanged.
func (c *Controller) Forfeit(code, playerID, reason string) (*game.Match, error) {
	unlock := c.lockMatch(code)
	defer unlock()

	m, err := c.load(code)
	if err != nil {
		return nil, err
	}
	seat, ok := m.SeatOf(playerID)
	if !ok {
		return nil, ErrPlayerNotInMatch
	}

	forfeitedBy := ""
	switch m.Status {
	case game.StatusFinished:
		return m, nil
	case game.StatusWaitingForPlayers:
		m.StatsCounted = true
		c.finish(m, game.ResultNone, "Match cancelled by its creator")
	default:
		if p := m.Player(seat); p != nil {
			p.Connected = false
		}
		forfeitedBy = playerID
		c.finish(m, game.WinFor(seat.Other()), forfeitMessage(m.Player(seat), reason))
	}
	if err := c.repo.FinishMatch(m, forfeitedBy); err != nil {
		return nil, err
	}
	logging.Info("player forfeited", logging.Fields{
		constants.LogFieldMatchCode: code,
		constants.LogFieldPlayerID:  playerID,
		constants.LogFieldReason:    reason,
	})
	c.publish(code, constants.MessageMatchState, m)
	c.afterFinish(m)
	return m, nil
}

func forfeitMessage(p *game.MatchPlayer, reason string) string {
	if reason == "" {
		reason = "left the match"
	}
	return displayName(p) + " " + reason
}
