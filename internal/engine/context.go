package engine

import (
	"fmt"
	"strings"

	"github.com/hyukkyo/demon-tournament/internal/game"
)

// --- Round context and helpers ----------------------------------------
type roundContext struct {
	a, b    *game.CharacterState
	events  []game.BattleEvent
	summary []string
	slot    int
	result  game.Result
}

func newRoundContext(a, b *game.CharacterState) *roundContext {
	return &roundContext{
		a:       a,
		b:       b,
		events:  make([]game.BattleEvent, 0, 16),
		summary: make([]string, 0, 16),
	}
}

func (rc *roundContext) emit(playerID string, p game.Payload) {
	rc.events = append(rc.events, game.NewEvent(rc.slot, playerID, p))
}

func (rc *roundContext) add(format string, args ...any) {
	rc.summary = append(rc.summary, fmt.Sprintf(format, args...))
}

// opponentOf returns the character facing c.
func (rc *roundContext) opponentOf(c *game.CharacterState) *game.CharacterState {
	if c == rc.a {
		return rc.b
	}
	return rc.a
}

// joinSummary returns the accumulated summary as a single string.
func (rc *roundContext) joinSummary() string {
	return strings.Join(rc.summary, "\n")
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
