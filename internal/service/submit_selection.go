package service

import (
	"fmt"

	"github.com/hyukkyo/demon-tournament/internal/constants"
	"github.com/hyukkyo/demon-tournament/internal/engine"
	"github.com/hyukkyo/demon-tournament/internal/game"
	"github.com/hyukkyo/demon-tournament/internal/grid"
	"github.com/hyukkyo/demon-tournament/internal/logging"
)

// SubmitSelection stores a player's three cards and resolves the round once
// both players have submitted. It returns the updated match and whether the
// round was resolved. A rejected selection is returned as
// *engine.SelectionError.
func (c *Controller) SubmitSelection(code, playerID string, sel game.Selection) (*game.Match, bool, error) {
	unlock := c.lockMatch(code)
	defer unlock()

	m, err := c.load(code)
	if err != nil {
		return nil, false, err
	}
	if m.Status != game.StatusInProgress {
		return nil, false, ErrMatchNotInProgress
	}
	if m.Phase != game.PhaseSelecting {
		return nil, false, ErrSelectionsLocked
	}
	if len(m.Players) != 2 {
		return nil, false, fmt.Errorf("match %s has %d players", code, len(m.Players))
	}
	seat, ok := m.SeatOf(playerID)
	if !ok {
		return nil, false, ErrPlayerNotInMatch
	}
	current := m.Player(seat)
	if current.HasSubmitted {
		return nil, false, ErrAlreadySubmitted
	}
	if err := engine.ValidateSelection(current.Character(), sel, c.opts.EnergyPolicy); err != nil {
		return nil, false, err
	}
	current.Selection = sel
	current.HasSubmitted = true

	var out *engine.Outcome
	if m.Player(seat.Other()).HasSubmitted {
		var log *game.RoundLog
		out, log = c.resolve(m)
		err = c.repo.SaveRound(m, log)
	} else {
		err = c.repo.UpdateMatch(m)
	}
	if err != nil {
		return nil, false, err
	}
	if out != nil {
		c.publish(code, constants.MessageBattleEvents, out.Events)
	}
	c.publish(code, constants.MessageMatchState, m)
	if m.Status == game.StatusFinished {
		c.afterFinish(m)
	}
	return m, out != nil, nil
}

// resolve runs the engine over both stored selections and applies the
// outcome to m. The returned round log is saved together with m.
func (c *Controller) resolve(m *game.Match) (*engine.Outcome, *game.RoundLog) {
	m.Phase = game.PhaseResolving
	pa, pb := m.Player(game.SeatA), m.Player(game.SeatB)

	out := engine.ResolveRound(pa.Character(), pb.Character(), pa.Selection, pb.Selection)
	pa.ApplyCharacter(out.A)
	pb.ApplyCharacter(out.B)

	log := &game.RoundLog{
		MatchID: m.ID,
		Round:   m.Round,
		Events:  out.Events,
		Result:  out.Result,
		Summary: out.Summary,
	}
	m.LastRoundSummary = out.Summary
	logging.Info("round resolved", logging.Fields{
		constants.LogFieldMatchCode: m.Code,
		constants.LogFieldRound:     m.Round,
		constants.LogFieldCount:     len(out.Events),
	})
	logging.Debug("board after round\n"+grid.Render(out.A.Position, out.B.Position), logging.Fields{constants.LogFieldMatchCode: m.Code})

	if out.Result.Terminal() {
		c.finish(m, out.Result, matchOverMessage(m, out.Result))
		return &out, log
	}

	m.Round++
	m.Phase = game.PhaseSelecting
	m.Message = fmt.Sprintf("Round %d. Choose your cards.", m.Round)
	m.ActionDeadline = c.opts.Now().Add(c.opts.ActionTimeout)
	for i := range m.Players {
		m.Players[i].Selection = game.Selection{}
		m.Players[i].HasSubmitted = false
	}
	return &out, log
}

func matchOverMessage(m *game.Match, r game.Result) string {
	if r == game.ResultDraw {
		return "Both fighters fell. The match is a draw."
	}
	winner := game.SeatA
	if r == game.ResultPlayerBWin {
		winner = game.SeatB
	}
	return "Victory for player " + displayName(m.Player(winner))
}
