package engine

import (
	"fmt"
	"strings"

	"github.com/hyukkyo/demon-tournament/internal/cards"
	"github.com/hyukkyo/demon-tournament/internal/game"
)

// EnergyPolicy selects how ValidateSelection checks energy.
type EnergyPolicy string

const (
	// EnergyStrict walks the selection in order, deducting costs and adding
	// recovery exactly as resolution will, and rejects the first card the
	// running balance cannot pay for.
	EnergyStrict EnergyPolicy = "strict"
	// EnergyPermissive checks each card on its own against current energy.
	// Resolution clamps energy at zero if the round overspends.
	EnergyPermissive EnergyPolicy = "permissive"
)

// ParseEnergyPolicy accepts "strict" or "permissive"; empty means strict.
func ParseEnergyPolicy(s string) (EnergyPolicy, error) {
	switch EnergyPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", EnergyStrict:
		return EnergyStrict, nil
	case EnergyPermissive:
		return EnergyPermissive, nil
	}
	return "", fmt.Errorf("unknown energy policy %q", s)
}

// Selection rejection codes.
const (
	CodeMissingCard        = "missing_card"
	CodeNotInDeck          = "not_in_deck"
	CodeDuplicate          = "duplicate"
	CodeInsufficientEnergy = "insufficient_energy"
)

// SelectionError explains why a selection cannot be played.
type SelectionError struct {
	Code   string
	Slot   int
	Card   cards.Kind
	Reason string
}

func (e *SelectionError) Error() string {
	return e.Reason
}

// ValidateSelection reports whether character may play sel this round.
// It returns nil or a *SelectionError for the first offending card.
// EnergyPermissive is the plain card rule, each card compared alone with
// the energy held when the round starts; EnergyStrict, the default, also
// rejects selections whose running total overspends.
func ValidateSelection(character game.CharacterState, sel game.Selection, policy EnergyPolicy) error {
	seen := make(map[cards.Kind]bool, game.SelectionSize)
	for i, k := range sel {
		if !k.Valid() {
			return &SelectionError{Code: CodeMissingCard, Slot: i,
				Reason: fmt.Sprintf("card %d is missing", i+1)}
		}
		if !character.Holds(k) {
			return &SelectionError{Code: CodeNotInDeck, Slot: i, Card: k,
				Reason: fmt.Sprintf("%s is not in your deck", k)}
		}
		if seen[k] {
			return &SelectionError{Code: CodeDuplicate, Slot: i, Card: k,
				Reason: fmt.Sprintf("%s is selected more than once", k)}
		}
		seen[k] = true
	}

	st := character.Stats
	energy := st.Energy
	for i, k := range sel {
		def := cards.DefinitionOf(k)
		if energy < def.EnergyCost {
			return &SelectionError{Code: CodeInsufficientEnergy, Slot: i, Card: k,
				Reason: fmt.Sprintf("not enough energy for %s (need %d, have %d)", k, def.EnergyCost, energy)}
		}
		if policy == EnergyPermissive {
			continue
		}
		energy = clamp(energy-def.EnergyCost, 0, st.MaxEnergy)
		if rec, ok := def.Effect.(cards.RecoveryEffect); ok {
			energy = clamp(energy+rec.Amount, 0, st.MaxEnergy)
		}
	}
	return nil
}
