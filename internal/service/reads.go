package service

import (
	"fmt"

	"github.com/hyukkyo/demon-tournament/internal/dedupe"
	"github.com/hyukkyo/demon-tournament/internal/game"
)

// Rounds returns the stored round logs of a match, oldest first.
func (c *Controller) Rounds(code string) ([]game.RoundLog, error) {
	v, err, _ := dedupe.RoundsGroup.Do("rounds:"+code, func() (any, error) {
		m, err := c.load(code)
		if err != nil {
			return nil, err
		}
		return c.repo.ListRoundLogs(m.ID)
	})
	if err != nil {
		return nil, err
	}
	return v.([]game.RoundLog), nil
}

// Leaderboard returns the top players by wins.
func (c *Controller) Leaderboard(limit int) ([]game.User, error) {
	v, err, _ := dedupe.LeaderboardGroup.Do(fmt.Sprintf("top:%d", limit), func() (any, error) {
		return c.repo.GetTopPlayers(limit)
	})
	if err != nil {
		return nil, err
	}
	return v.([]game.User), nil
}

// Stats returns a player's aggregate results.
func (c *Controller) Stats(playerID string) (*game.User, error) {
	return c.repo.GetStats(playerID)
}
