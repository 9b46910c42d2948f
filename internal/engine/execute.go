package engine

import (
	"github.com/hyukkyo/demon-tournament/internal/cards"
	"github.com/hyukkyo/demon-tournament/internal/game"
	"github.com/hyukkyo/demon-tournament/internal/grid"
)

// executeGroup applies every action of one priority tier and only then
// checks for a knockout, so two same-tier attacks both land.
func (rc *roundContext) executeGroup(group []plannedAction) bool {
	for i := range group {
		rc.execute(&group[i])
	}
	return rc.checkTermination()
}

func (rc *roundContext) execute(plan *plannedAction) {
	actor := plan.actor
	st := &actor.Stats
	st.Energy = clamp(st.Energy-plan.card.EnergyCost, 0, st.MaxEnergy)

	switch eff := plan.card.Effect.(type) {
	case cards.MoveEffect:
		rc.execMove(actor, eff)
	case cards.DefendEffect:
		actor.DefenseActive = true
		actor.DefenseAmount = eff.Reduction
		rc.emit(actor.PlayerID, game.DefendPayload{Amount: eff.Reduction})
		rc.add("%s raises a guard (-%d damage)", actor.PlayerID, eff.Reduction)
	case cards.RecoveryEffect:
		st.Energy = clamp(st.Energy+eff.Amount, 0, st.MaxEnergy)
		rc.emit(actor.PlayerID, game.EnergyRecoveryPayload{Amount: eff.Amount, NewEnergy: st.Energy})
		rc.add("%s recovers energy (%d/%d)", actor.PlayerID, st.Energy, st.MaxEnergy)
	case cards.AttackEffect:
		rc.execAttack(actor, plan.card.Kind, eff)
	}
}

func (rc *roundContext) execMove(actor *game.CharacterState, eff cards.MoveEffect) {
	from := actor.Position
	to, ok := grid.Move(from, eff.Direction)
	if !ok {
		rc.add("%s is blocked moving %s", actor.PlayerID, eff.Direction)
		return
	}
	actor.Position = to
	rc.emit(actor.PlayerID, game.MovePayload{From: from, To: to, Direction: eff.Direction})
	rc.add("%s moves %s to (%d,%d)", actor.PlayerID, eff.Direction, to.X, to.Y)
}

// checkTermination sets the result once either side is down: both down is
// a draw, otherwise the survivor wins.
func (rc *roundContext) checkTermination() bool {
	downA, downB := rc.a.Defeated(), rc.b.Defeated()
	switch {
	case downA && downB:
		rc.result = game.ResultDraw
	case downB:
		rc.result = game.ResultPlayerAWin
	case downA:
		rc.result = game.ResultPlayerBWin
	default:
		return false
	}
	rc.emit("", game.GameEndPayload{Result: rc.result})
	rc.add("Match over: %s", rc.result)
	return true
}
