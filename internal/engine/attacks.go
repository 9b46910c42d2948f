package engine

import (
	"github.com/hyukkyo/demon-tournament/internal/cards"
	"github.com/hyukkyo/demon-tournament/internal/game"
	"github.com/hyukkyo/demon-tournament/internal/grid"
)

// execAttack tests the pattern against the defender's current cell, which
// already reflects this slot's movement. A landing hit consumes the
// defender's guard.
func (rc *roundContext) execAttack(attacker *game.CharacterState, kind cards.Kind, eff cards.AttackEffect) {
	defender := rc.opponentOf(attacker)
	targets := grid.ResolveAttackTargets(attacker.Position, eff.Pattern)
	if !grid.Covers(targets, defender.Position) {
		rc.emit(attacker.PlayerID, game.AttackPayload{Card: kind, Hit: false})
		rc.add("%s uses %s and misses", attacker.PlayerID, kind)
		return
	}

	dmg := eff.Damage
	if defender.DefenseActive {
		dmg = max(0, dmg-defender.DefenseAmount)
		defender.DefenseActive = false
		defender.DefenseAmount = 0
	}
	defender.Stats.HP = max(0, defender.Stats.HP-dmg)

	rc.emit(attacker.PlayerID, game.AttackPayload{Card: kind, Hit: true})
	rc.emit(defender.PlayerID, game.DamagePayload{Damage: dmg, NewHP: defender.Stats.HP})
	rc.add("%s hits %s with %s for %d (HP %d/%d)",
		attacker.PlayerID, defender.PlayerID, kind, dmg, defender.Stats.HP, defender.Stats.MaxHP)
}
