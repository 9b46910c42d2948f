package service

import (
	"context"
	"time"

	"github.com/hyukkyo/demon-tournament/internal/constants"
	"github.com/hyukkyo/demon-tournament/internal/game"
	"github.com/hyukkyo/demon-tournament/internal/logging"
)

// HandleTimedOutMatch applies timeout resolution for a single match.
// Behavior:
// - neither player submitted -> match ends as a draw, stats untouched
// - exactly one player didn't submit -> that player forfeits
func (c *Controller) HandleTimedOutMatch(mm *game.Match) error {
	unlock := c.lockMatch(mm.Code)
	defer unlock()

	m, err := c.load(mm.Code)
	if err != nil {
		return err
	}
	if m.Status != game.StatusInProgress || m.Phase != game.PhaseSelecting {
		return nil
	}
	if m.ActionDeadline.After(c.opts.Now()) {
		return nil
	}

	forfeitedBy := ""
	if len(m.Players) != 2 {
		m.StatsCounted = true
		c.finish(m, game.ResultNone, "Match ended due to inactivity")
	} else {
		pa, pb := m.Player(game.SeatA), m.Player(game.SeatB)
		switch {
		case !pa.HasSubmitted && !pb.HasSubmitted:
			m.StatsCounted = true
			c.finish(m, game.ResultDraw, "Match ended due to inactivity")
			m.LastRoundSummary = "Round timed out: both players failed to submit cards within the allotted time."
		case !pa.HasSubmitted:
			forfeitedBy = pa.PlayerID
			c.finish(m, game.ResultPlayerBWin, displayName(pa)+" did not submit cards in time")
		case !pb.HasSubmitted:
			forfeitedBy = pb.PlayerID
			c.finish(m, game.ResultPlayerAWin, displayName(pb)+" did not submit cards in time")
		default:
			// both submitted means the round is already being resolved
			return nil
		}
	}

	if err := c.repo.FinishMatch(m, forfeitedBy); err != nil {
		return err
	}
	c.publish(m.Code, constants.MessageMatchState, m)
	c.afterFinish(m)
	return nil
}

// RunTimeoutScanner expires matches whose action deadline has passed until
// ctx is cancelled.
func (c *Controller) RunTimeoutScanner(ctx context.Context, interval time.Duration, workerID string) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	logging.Info("timeout scanner started", logging.Fields{constants.LogFieldWorker: workerID})
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
		c.ScanTimedOut(workerID)
	}
}

// ScanTimedOut runs one pass of the timeout scanner and returns how many
// matches it handled.
func (c *Controller) ScanTimedOut(workerID string) int {
	matches, err := c.repo.FindTimedOutMatches(c.opts.Now())
	if err != nil {
		logging.Error("timeout scanner failed to list matches", err, logging.Fields{constants.LogFieldWorker: workerID})
		return 0
	}
	for i := range matches {
		if err := c.HandleTimedOutMatch(&matches[i]); err != nil {
			logging.Error("failed to expire match", err, logging.Fields{
				constants.LogFieldWorker:    workerID,
				constants.LogFieldMatchCode: matches[i].Code,
			})
		}
	}
	return len(matches)
}
