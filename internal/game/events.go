package game

import (
	"encoding/json"
	"fmt"

	"github.com/hyukkyo/demon-tournament/internal/cards"
	"github.com/hyukkyo/demon-tournament/internal/grid"
)

// EventKind names what happened in a BattleEvent.
type EventKind string

const (
	EventCardReveal     EventKind = "CARD_REVEAL"
	EventMove           EventKind = "MOVE"
	EventDefend         EventKind = "DEFEND"
	EventAttack         EventKind = "ATTACK"
	EventDamageDealt    EventKind = "DAMAGE_DEALT"
	EventEnergyRecovery EventKind = "ENERGY_RECOVERY"
	EventGameEnd        EventKind = "GAME_END"
)

// Payload is the kind-specific data of a BattleEvent. Only the payload
// types below implement it.
type Payload interface {
	EventKind() EventKind
	payload()
}

// RevealPayload shows both cards played in a slot.
type RevealPayload struct {
	PlayerACard cards.Kind `json:"player_a_card"`
	PlayerBCard cards.Kind `json:"player_b_card"`
}

// MovePayload describes a successful one-cell move.
type MovePayload struct {
	From      grid.Position  `json:"from"`
	To        grid.Position  `json:"to"`
	Direction grid.Direction `json:"direction"`
}

// DefendPayload carries the damage reduction now active.
type DefendPayload struct {
	Amount int `json:"amount"`
}

// EnergyRecoveryPayload carries the recovered amount and resulting energy.
type EnergyRecoveryPayload struct {
	Amount    int `json:"amount"`
	NewEnergy int `json:"new_energy"`
}

// AttackPayload records an attack and whether it landed.
type AttackPayload struct {
	Card cards.Kind `json:"card_type"`
	Hit  bool       `json:"hit"`
}

// DamagePayload records damage taken by the event's player.
type DamagePayload struct {
	Damage int `json:"damage"`
	NewHP  int `json:"new_hp"`
}

// GameEndPayload carries the terminal result.
type GameEndPayload struct {
	Result Result `json:"result"`
}

func (RevealPayload) EventKind() EventKind         { return EventCardReveal }
func (MovePayload) EventKind() EventKind           { return EventMove }
func (DefendPayload) EventKind() EventKind         { return EventDefend }
func (EnergyRecoveryPayload) EventKind() EventKind { return EventEnergyRecovery }
func (AttackPayload) EventKind() EventKind         { return EventAttack }
func (DamagePayload) EventKind() EventKind         { return EventDamageDealt }
func (GameEndPayload) EventKind() EventKind        { return EventGameEnd }

func (RevealPayload) payload()         {}
func (MovePayload) payload()           {}
func (DefendPayload) payload()         {}
func (EnergyRecoveryPayload) payload() {}
func (AttackPayload) payload()         {}
func (DamagePayload) payload()         {}
func (GameEndPayload) payload()        {}

// BattleEvent is one resolved occurrence of a round. PlayerID is empty for
// events that belong to both players (reveal, game end).
type BattleEvent struct {
	Kind     EventKind
	PlayerID string
	Slot     int
	Payload  Payload
}

// NewEvent builds an event whose kind is taken from the payload.
func NewEvent(slot int, playerID string, p Payload) BattleEvent {
	return BattleEvent{Kind: p.EventKind(), PlayerID: playerID, Slot: slot, Payload: p}
}

type wireEvent struct {
	Type      EventKind       `json:"type"`
	PlayerID  string          `json:"player_id"`
	CardIndex int             `json:"card_index"`
	Data      json.RawMessage `json:"data"`
}

// MarshalJSON encodes the event as {"type","player_id","card_index","data"}.
func (e BattleEvent) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal(e.Payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(wireEvent{Type: e.Kind, PlayerID: e.PlayerID, CardIndex: e.Slot, Data: data})
}

// UnmarshalJSON decodes the wire form, choosing the payload type by "type".
func (e *BattleEvent) UnmarshalJSON(b []byte) error {
	var w wireEvent
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	var p Payload
	switch w.Type {
	case EventCardReveal:
		var v RevealPayload
		if err := json.Unmarshal(w.Data, &v); err != nil {
			return err
		}
		p = v
	case EventMove:
		var v MovePayload
		if err := json.Unmarshal(w.Data, &v); err != nil {
			return err
		}
		p = v
	case EventDefend:
		var v DefendPayload
		if err := json.Unmarshal(w.Data, &v); err != nil {
			return err
		}
		p = v
	case EventEnergyRecovery:
		var v EnergyRecoveryPayload
		if err := json.Unmarshal(w.Data, &v); err != nil {
			return err
		}
		p = v
	case EventAttack:
		var v AttackPayload
		if err := json.Unmarshal(w.Data, &v); err != nil {
			return err
		}
		p = v
	case EventDamageDealt:
		var v DamagePayload
		if err := json.Unmarshal(w.Data, &v); err != nil {
			return err
		}
		p = v
	case EventGameEnd:
		var v GameEndPayload
		if err := json.Unmarshal(w.Data, &v); err != nil {
			return err
		}
		p = v
	default:
		return fmt.Errorf("unknown battle event type %q", w.Type)
	}
	*e = BattleEvent{Kind: w.Type, PlayerID: w.PlayerID, Slot: w.CardIndex, Payload: p}
	return nil
}
