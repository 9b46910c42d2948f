package game

import (
	"github.com/hyukkyo/demon-tournament/internal/cards"
	"github.com/hyukkyo/demon-tournament/internal/grid"
)

// Starting values for a fresh character.
const (
	DefaultMaxHP     = 100
	DefaultMaxEnergy = 100
)

// Seat is a player's side of the match. Seat A starts on the left anchor.
type Seat int

const (
	SeatA Seat = iota
	SeatB
)

// Anchor returns the starting cell of the seat.
func (s Seat) Anchor() grid.Position {
	if s == SeatB {
		return grid.RightAnchor
	}
	return grid.LeftAnchor
}

// Other returns the opposite seat.
func (s Seat) Other() Seat {
	if s == SeatA {
		return SeatB
	}
	return SeatA
}

func (s Seat) String() string {
	if s == SeatB {
		return "B"
	}
	return "A"
}

// Stats holds the numeric resources of a character.
type Stats struct {
	HP        int `json:"hp"`
	MaxHP     int `json:"max_hp"`
	Energy    int `json:"energy"`
	MaxEnergy int `json:"max_energy"`
}

// CharacterState is one fighter's state between (and during) rounds.
// DefenseActive/DefenseAmount only live for a single card slot.
type CharacterState struct {
	PlayerID      string        `json:"player_id"`
	Stats         Stats         `json:"stats"`
	Position      grid.Position `json:"position"`
	Deck          []cards.Kind  `json:"deck"`
	DefenseActive bool          `json:"defense_active"`
	DefenseAmount int           `json:"defense_amount"`
}

// NewCharacter creates a full-health character on the seat's anchor with
// the default deck.
func NewCharacter(playerID string, seat Seat) CharacterState {
	return CharacterState{
		PlayerID: playerID,
		Stats: Stats{
			HP:        DefaultMaxHP,
			MaxHP:     DefaultMaxHP,
			Energy:    DefaultMaxEnergy,
			MaxEnergy: DefaultMaxEnergy,
		},
		Position: seat.Anchor(),
		Deck:     cards.DefaultDeck(),
	}
}

// NewRosterCharacter is NewCharacter with the deck of the chosen roster
// entry.
func NewRosterCharacter(playerID string, seat Seat, ch cards.Character) CharacterState {
	c := NewCharacter(playerID, seat)
	c.Deck = ch.Deck()
	return c
}

// Clone returns a copy that shares no memory with c.
func (c CharacterState) Clone() CharacterState {
	out := c
	if c.Deck != nil {
		out.Deck = append([]cards.Kind(nil), c.Deck...)
	}
	return out
}

// Holds reports whether k is in the character's deck.
func (c CharacterState) Holds(k cards.Kind) bool {
	for _, d := range c.Deck {
		if d == k {
			return true
		}
	}
	return false
}

// Defeated reports whether HP has reached zero.
func (c CharacterState) Defeated() bool {
	return c.Stats.HP <= 0
}
