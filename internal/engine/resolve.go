package engine

import (
	"github.com/hyukkyo/demon-tournament/internal/game"
)

// Outcome is everything a round resolution produces. A and B are new
// values; the states passed to ResolveRound are left untouched.
type Outcome struct {
	Events  []game.BattleEvent
	A       game.CharacterState
	B       game.CharacterState
	Result  game.Result
	Summary string
}

// ResolveRound plays both selections slot by slot. Within a slot the cards
// resolve by priority tier (movement, defend, then attack and recovery),
// seat A before seat B inside a tier, and processing stops right after the
// tier in which a character drops to zero HP.
//
// Selections must have been accepted by ValidateSelection; a selection
// with an empty slot is a caller bug and panics.
func ResolveRound(a, b game.CharacterState, selA, selB game.Selection) Outcome {
	if !selA.Complete() || !selB.Complete() {
		panic("engine: ResolveRound called without both selections")
	}

	ca, cb := a.Clone(), b.Clone()
	rc := newRoundContext(&ca, &cb)

slots:
	for slot := 0; slot < game.SelectionSize; slot++ {
		rc.slot = slot
		rc.emit("", game.RevealPayload{PlayerACard: selA[slot], PlayerBCard: selB[slot]})
		rc.add("Card %d: %s plays %s, %s plays %s", slot+1, ca.PlayerID, selA[slot], cb.PlayerID, selB[slot])

		ca.DefenseActive, ca.DefenseAmount = false, 0
		cb.DefenseActive, cb.DefenseAmount = false, 0

		for _, group := range rc.buildPlans(selA[slot], selB[slot]) {
			if rc.executeGroup(group) {
				break slots
			}
		}
	}

	// guards never outlive their slot
	ca.DefenseActive, ca.DefenseAmount = false, 0
	cb.DefenseActive, cb.DefenseAmount = false, 0

	return Outcome{
		Events:  rc.events,
		A:       ca,
		B:       cb,
		Result:  rc.result,
		Summary: rc.joinSummary(),
	}
}
