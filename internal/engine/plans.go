package engine

import (
	"sort"

	"github.com/hyukkyo/demon-tournament/internal/cards"
	"github.com/hyukkyo/demon-tournament/internal/game"
)

// --- Planned action model ---------------------------------------------
type plannedAction struct {
	actor *game.CharacterState
	card  cards.Definition
}

// buildPlans returns the slot's two actions grouped by priority tier,
// lowest tier first. Inside a group seat A always precedes seat B.
func (rc *roundContext) buildPlans(cardA, cardB cards.Kind) [][]plannedAction {
	plans := []plannedAction{
		{actor: rc.a, card: cards.DefinitionOf(cardA)},
		{actor: rc.b, card: cards.DefinitionOf(cardB)},
	}
	sort.SliceStable(plans, func(i, j int) bool {
		return plans[i].card.Priority < plans[j].card.Priority
	})

	groups := make([][]plannedAction, 0, 2)
	for _, p := range plans {
		n := len(groups)
		if n > 0 && groups[n-1][0].card.Priority == p.card.Priority {
			groups[n-1] = append(groups[n-1], p)
			continue
		}
		groups = append(groups, []plannedAction{p})
	}
	return groups
}
