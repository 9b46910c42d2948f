package cards

import (
	"fmt"

	"github.com/hyukkyo/demon-tournament/internal/grid"
)

// Priority tiers. Lower tiers resolve first inside a card slot.
const (
	PriorityMove          = 1
	PriorityDefend        = 2
	PriorityAttackOrRegen = 3
)

// Category groups cards by the kind of effect they carry.
type Category string

const (
	CategoryMovement       Category = "movement"
	CategoryDefend         Category = "defend"
	CategoryEnergyRecovery Category = "energy_recovery"
	CategoryAttack         Category = "attack"
)

// Effect is the rule payload of a card. It is implemented only by the four
// effect types in this package; consumers switch on the concrete type.
type Effect interface {
	Category() Category
	sealed()
}

// MoveEffect moves the player one cell.
type MoveEffect struct {
	Direction grid.Direction `json:"direction"`
}

// DefendEffect reduces the next landing attack in the same slot.
type DefendEffect struct {
	Reduction int `json:"reduction"`
}

// RecoveryEffect restores energy, capped at the player's maximum.
type RecoveryEffect struct {
	Amount int `json:"amount"`
}

// AttackEffect deals Damage to an opponent standing on any cell of Pattern,
// evaluated relative to the attacker.
type AttackEffect struct {
	Damage  int           `json:"damage"`
	Pattern []grid.Offset `json:"pattern"`
}

func (MoveEffect) Category() Category     { return CategoryMovement }
func (DefendEffect) Category() Category   { return CategoryDefend }
func (RecoveryEffect) Category() Category { return CategoryEnergyRecovery }
func (AttackEffect) Category() Category   { return CategoryAttack }

func (MoveEffect) sealed()     {}
func (DefendEffect) sealed()   {}
func (RecoveryEffect) sealed() {}
func (AttackEffect) sealed()   {}

// Definition is the static rule data of a card.
type Definition struct {
	Kind        Kind
	Name        string
	Description string
	Priority    int
	EnergyCost  int
	Effect      Effect
}

// Category is shorthand for d.Effect.Category().
func (d Definition) Category() Category { return d.Effect.Category() }

var catalog = [kindCount]Definition{
	MoveUp: {
		Kind: MoveUp, Name: "Move Up", Description: "Move one cell up.",
		Priority: PriorityMove, EnergyCost: 0,
		Effect: MoveEffect{Direction: grid.Up},
	},
	MoveDown: {
		Kind: MoveDown, Name: "Move Down", Description: "Move one cell down.",
		Priority: PriorityMove, EnergyCost: 0,
		Effect: MoveEffect{Direction: grid.Down},
	},
	MoveLeft: {
		Kind: MoveLeft, Name: "Move Left", Description: "Move one cell left.",
		Priority: PriorityMove, EnergyCost: 0,
		Effect: MoveEffect{Direction: grid.Left},
	},
	MoveRight: {
		Kind: MoveRight, Name: "Move Right", Description: "Move one cell right.",
		Priority: PriorityMove, EnergyCost: 0,
		Effect: MoveEffect{Direction: grid.Right},
	},
	Defend: {
		Kind: Defend, Name: "Defend", Description: "Reduce damage taken this card by 15.",
		Priority: PriorityDefend, EnergyCost: 10,
		Effect: DefendEffect{Reduction: 15},
	},
	EnergyRecovery: {
		Kind: EnergyRecovery, Name: "Energy Recovery", Description: "Recover 30 energy (up to the maximum).",
		Priority: PriorityAttackOrRegen, EnergyCost: 0,
		Effect: RecoveryEffect{Amount: 30},
	},
	AttackCross: {
		Kind: AttackCross, Name: "Cross Attack", Description: "Hit the four orthogonal neighbours. 30 damage, 20 energy.",
		Priority: PriorityAttackOrRegen, EnergyCost: 20,
		Effect: AttackEffect{Damage: 30, Pattern: []grid.Offset{
			{X: 0, Y: -1},
			{X: 0, Y: 1},
			{X: -1, Y: 0},
			{X: 1, Y: 0},
		}},
	},
	AttackForward: {
		Kind: AttackForward, Name: "Forward Attack", Description: "Hit the three cells ahead. 25 damage, 15 energy.",
		Priority: PriorityAttackOrRegen, EnergyCost: 15,
		Effect: AttackEffect{Damage: 25, Pattern: []grid.Offset{
			{X: 1, Y: -1},
			{X: 1, Y: 0},
			{X: 1, Y: 1},
		}},
	},
	AttackArea: {
		Kind: AttackArea, Name: "Area Attack", Description: "Hit the whole 3x3 block. 20 damage, 40 energy.",
		Priority: PriorityAttackOrRegen, EnergyCost: 40,
		Effect: AttackEffect{Damage: 20, Pattern: []grid.Offset{
			{X: -1, Y: -1}, {X: 0, Y: -1}, {X: 1, Y: -1},
			{X: -1, Y: 0}, {X: 0, Y: 0}, {X: 1, Y: 0},
			{X: -1, Y: 1}, {X: 0, Y: 1}, {X: 1, Y: 1},
		}},
	},
	AttackDiagonal: {
		Kind: AttackDiagonal, Name: "Diagonal Attack", Description: "Hit the four diagonal neighbours. 28 damage, 25 energy.",
		Priority: PriorityAttackOrRegen, EnergyCost: 25,
		Effect: AttackEffect{Damage: 28, Pattern: []grid.Offset{
			{X: -1, Y: -1},
			{X: 1, Y: -1},
			{X: -1, Y: 1},
			{X: 1, Y: 1},
		}},
	},
}

// DefinitionOf returns the rule data for k. Every valid kind has one;
// passing KindNone or an out-of-range value is a programming error.
func DefinitionOf(k Kind) Definition {
	if !k.Valid() {
		panic(fmt.Sprintf("cards: no definition for %s", k))
	}
	d := catalog[k]
	if a, ok := d.Effect.(AttackEffect); ok {
		a.Pattern = append([]grid.Offset(nil), a.Pattern...)
		d.Effect = a
	}
	return d
}

// DefaultDeck is the deck every character starts a match with: four moves,
// defend, energy recovery and the four attacks.
func DefaultDeck() []Kind {
	return All()
}
