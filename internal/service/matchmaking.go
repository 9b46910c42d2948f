package service

import (
	"github.com/hyukkyo/demon-tournament/internal/cards"
	"github.com/hyukkyo/demon-tournament/internal/constants"
	"github.com/hyukkyo/demon-tournament/internal/game"
	"github.com/hyukkyo/demon-tournament/internal/logging"
)

type queuedPlayer struct {
	id        string
	name      string
	character cards.Character
}

// QueueStatus is what a queued player sees when polling.
type QueueStatus struct {
	Queued    bool   `json:"queued"`
	MatchCode string `json:"match_code,omitempty"`
	Waiting   int    `json:"waiting_players"`
}

// QueueStats summarises matchmaking load.
type QueueStats struct {
	WaitingPlayers int `json:"waiting_players"`
	ActiveMatches  int `json:"active_matches"`
}

// JoinQueue pairs playerID with the longest waiting player, who takes
// seat A, or queues playerID when nobody is waiting. The started match is
// returned when a pairing happened.
func (c *Controller) JoinQueue(playerID, name, characterID string) (*game.Match, error) {
	ch, err := pickCharacter(characterID)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.busyLocked(playerID); err != nil {
		return nil, err
	}
	delete(c.matched, playerID)

	if len(c.queue) == 0 {
		c.queue = append(c.queue, queuedPlayer{id: playerID, name: name, character: ch})
		logging.Info("player queued", logging.Fields{constants.LogFieldPlayerID: playerID})
		return nil, nil
	}

	opponent := c.queue[0]
	code, err := c.freeCode()
	if err != nil {
		return nil, err
	}
	m := &game.Match{
		Code: code,
		Players: []game.MatchPlayer{
			game.NewMatchPlayer(opponent.id, opponent.name, game.SeatA, opponent.character),
			game.NewMatchPlayer(playerID, name, game.SeatB, ch),
		},
	}
	c.start(m)
	if err := c.repo.CreateMatch(m); err != nil {
		return nil, err
	}
	c.queue = c.queue[1:]
	c.matched[opponent.id] = code
	c.playing[opponent.id] = code
	c.playing[playerID] = code
	logging.Info("match found", logging.Fields{
		constants.LogFieldMatchCode: code,
		constants.LogFieldPlayerID:  playerID,
		constants.LogFieldOpponent:  opponent.id,
	})
	return m, nil
}

// LeaveQueue removes playerID from the waiting list.
func (c *Controller) LeaveQueue(playerID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, q := range c.queue {
		if q.id == playerID {
			c.queue = append(c.queue[:i], c.queue[i+1:]...)
			return nil
		}
	}
	return ErrNotQueued
}

// QueueStatus reports whether playerID is still waiting or, once paired,
// the code of the match they were placed in.
func (c *Controller) QueueStatus(playerID string) QueueStatus {
	c.mu.Lock()
	defer c.mu.Unlock()
	st := QueueStatus{Waiting: len(c.queue)}
	for _, q := range c.queue {
		if q.id == playerID {
			st.Queued = true
		}
	}
	st.MatchCode = c.matched[playerID]
	return st
}

// QueueStats returns the number of waiting players and running matches.
func (c *Controller) QueueStats() QueueStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	codes := make(map[string]struct{}, len(c.playing))
	for _, code := range c.playing {
		codes[code] = struct{}{}
	}
	return QueueStats{WaitingPlayers: len(c.queue), ActiveMatches: len(codes)}
}
