package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hyukkyo/demon-tournament/internal/cards"
	"github.com/hyukkyo/demon-tournament/internal/constants"
	"github.com/hyukkyo/demon-tournament/internal/game"
	"github.com/hyukkyo/demon-tournament/internal/keys"
	"github.com/hyukkyo/demon-tournament/internal/logging"
	"github.com/hyukkyo/demon-tournament/internal/storage"
)

const maxCodeAttempts = 5

// CreateMatch opens a match with playerID in seat A and returns it with
// the join code the opponent needs. An empty characterID picks the default
// character.
func (c *Controller) CreateMatch(playerID, name, characterID string) (*game.Match, error) {
	ch, err := pickCharacter(characterID)
	if err != nil {
		return nil, err
	}
	code, err := c.freeCode()
	if err != nil {
		return nil, err
	}
	if err := c.reserve(c.waiting, playerID, code); err != nil {
		return nil, err
	}
	m := &game.Match{
		Code:    code,
		Status:  game.StatusWaitingForPlayers,
		Players: []game.MatchPlayer{game.NewMatchPlayer(playerID, name, game.SeatA, ch)},
		Message: "Waiting for an opponent.",
	}
	if err := c.repo.CreateMatch(m); err != nil {
		c.release(playerID, code)
		return nil, err
	}
	logging.Info("match created", logging.Fields{
		constants.LogFieldMatchCode: code,
		constants.LogFieldPlayerID:  playerID,
		constants.LogFieldCharacter: ch.ID,
	})
	return m, nil
}

func pickCharacter(id string) (cards.Character, error) {
	if strings.TrimSpace(id) == "" {
		return cards.DefaultCharacter(), nil
	}
	ch, ok := cards.CharacterByID(id)
	if !ok {
		return cards.Character{}, ErrUnknownCharacter
	}
	return ch, nil
}

func (c *Controller) freeCode() (string, error) {
	for i := 0; i < maxCodeAttempts; i++ {
		code, err := keys.NewMatchCode()
		if err != nil {
			return "", err
		}
		_, err = c.repo.GetMatchByCode(code)
		if errors.Is(err, storage.ErrNotFound) {
			return code, nil
		}
		if err != nil {
			return "", err
		}
	}
	return "", fmt.Errorf("no free match code after %d attempts", maxCodeAttempts)
}

// JoinMatch seats playerID as B and starts the match.
func (c *Controller) JoinMatch(code, playerID, name, characterID string) (*game.Match, error) {
	ch, err := pickCharacter(characterID)
	if err != nil {
		return nil, err
	}
	if err := c.reserve(c.playing, playerID, code); err != nil {
		return nil, err
	}
	m, err := c.join(code, playerID, name, ch)
	if err != nil {
		c.release(playerID, code)
		return nil, err
	}
	return m, nil
}

func (c *Controller) join(code, playerID, name string, ch cards.Character) (*game.Match, error) {
	unlock := c.lockMatch(code)
	defer unlock()

	m, err := c.load(code)
	if err != nil {
		return nil, err
	}
	if _, ok := m.SeatOf(playerID); ok {
		return nil, ErrAlreadyInMatch
	}
	if m.Status != game.StatusWaitingForPlayers || len(m.Players) != 1 {
		return nil, ErrMatchFull
	}
	m.Players = append(m.Players, game.NewMatchPlayer(playerID, name, game.SeatB, ch))
	c.start(m)
	if err := c.repo.UpdateMatch(m); err != nil {
		return nil, err
	}
	c.trackPlaying(m)
	logging.Info("match started", logging.Fields{
		constants.LogFieldMatchCode: code,
		constants.LogFieldPlayerID:  playerID,
		constants.LogFieldCharacter: ch.ID,
	})
	c.publish(code, constants.MessageMatchStarted, m)
	c.publish(code, constants.MessageMatchState, m)
	return m, nil
}

// start moves a two-seat match into its first selection phase.
func (c *Controller) start(m *game.Match) {
	m.Status = game.StatusInProgress
	m.Phase = game.PhaseSelecting
	m.Round = 1
	m.Result = game.ResultNone
	m.Message = "The match has started. Choose your cards."
	m.ActionDeadline = c.opts.Now().Add(c.opts.ActionTimeout)
}

// GetMatch returns the current state of a match.
func (c *Controller) GetMatch(code string) (*game.Match, error) {
	return c.load(code)
}

func (c *Controller) load(code string) (*game.Match, error) {
	m, err := c.repo.GetMatchByCode(code)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	if m == nil {
		return nil, ErrMatchNotFound
	}
	return m, nil
}

// finish ends the match with result. Callers persist it with
// repo.FinishMatch or repo.SaveRound, which also count the stats.
func (c *Controller) finish(m *game.Match, result game.Result, message string) {
	m.Status = game.StatusFinished
	m.Phase = game.PhaseResolved
	m.Result = result
	m.Winner = ""
	for _, s := range []game.Seat{game.SeatA, game.SeatB} {
		if result == game.WinFor(s) {
			if p := m.Player(s); p != nil {
				m.Winner = displayName(p)
			}
		}
	}
	m.Message = message
	m.ActionDeadline = time.Time{}
	for i := range m.Players {
		m.Players[i].Selection = game.Selection{}
		m.Players[i].HasSubmitted = false
	}
	logging.Info("match finished", logging.Fields{
		constants.LogFieldMatchCode: m.Code,
		constants.LogFieldResult:    string(result),
		constants.LogFieldReason:    message,
	})
}

// afterFinish runs once a finished match has been saved and announced.
func (c *Controller) afterFinish(m *game.Match) {
	c.trackPlaying(m)
	c.scheduleCleanup(m.Code)
}

func displayName(p *game.MatchPlayer) string {
	if p.PlayerName != "" {
		return p.PlayerName
	}
	return p.PlayerID
}
