package cards

import "strings"

// Character is a playable fighter. Every character shares the movement,
// defend and energy recovery cards; Attacks decides which attack cards
// complete its deck.
type Character struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Attacks     []Kind `json:"attacks"`
}

// DefaultCharacterID is used when a player does not pick a character.
const DefaultCharacterID = "warrior"

var roster = []Character{
	{
		ID:          "warrior",
		Name:        "Warrior",
		Description: "Balanced fighter with strong close-range attacks.",
		Attacks:     []Kind{AttackCross, AttackForward, AttackArea},
	},
	{
		ID:          "mage",
		Name:        "Mage",
		Description: "Specialises in wide area attacks.",
		Attacks:     []Kind{AttackCross, AttackArea, AttackDiagonal},
	},
	{
		ID:          "assassin",
		Name:        "Assassin",
		Description: "Fast, precise single-target strikes.",
		Attacks:     []Kind{AttackCross, AttackForward, AttackDiagonal},
	},
}

// commonCards are held by every character.
var commonCards = []Kind{MoveUp, MoveDown, MoveLeft, MoveRight, Defend, EnergyRecovery}

// Roster returns every playable character in display order.
func Roster() []Character {
	out := make([]Character, len(roster))
	for i, c := range roster {
		out[i] = c.clone()
	}
	return out
}

// CharacterByID looks up a roster entry; ids are case-insensitive.
func CharacterByID(id string) (Character, bool) {
	id = strings.ToLower(strings.TrimSpace(id))
	for _, c := range roster {
		if c.ID == id {
			return c.clone(), true
		}
	}
	return Character{}, false
}

// DefaultCharacter returns the roster entry named by DefaultCharacterID.
func DefaultCharacter() Character {
	c, _ := CharacterByID(DefaultCharacterID)
	return c
}

// Deck returns the character's cards in catalog order.
func (c Character) Deck() []Kind {
	deck := make([]Kind, 0, len(commonCards)+len(c.Attacks))
	for _, k := range All() {
		if containsKind(commonCards, k) || containsKind(c.Attacks, k) {
			deck = append(deck, k)
		}
	}
	return deck
}

func (c Character) clone() Character {
	c.Attacks = append([]Kind(nil), c.Attacks...)
	return c
}

func containsKind(ks []Kind, k Kind) bool {
	for _, x := range ks {
		if x == k {
			return true
		}
	}
	return false
}
