package grid

import "strings"

// Battlefield dimensions. Both are part of the wire contract: positions in
// battle events are always inside this box.
const (
	Width  = 4
	Height = 3
)

// Position is a cell on the battlefield.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Offset is a relative displacement used by movement and attack patterns.
type Offset struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Shift returns p moved by o without any bounds check.
func (p Position) Shift(o Offset) Position {
	return Position{X: p.X + o.X, Y: p.Y + o.Y}
}

var (
	// LeftAnchor is where seat A starts a match.
	LeftAnchor = Position{X: 0, Y: 1}
	// RightAnchor is where seat B starts a match.
	RightAnchor = Position{X: 3, Y: 1}
)

// IsValid reports whether p lies inside the battlefield.
func IsValid(p Position) bool {
	return p.X >= 0 && p.X < Width && p.Y >= 0 && p.Y < Height
}

// Move returns the cell one step from p in direction d. The second result
// is false when the destination is off the board; the caller keeps its
// current position in that case.
func Move(p Position, d Direction) (Position, bool) {
	next := p.Shift(d.Offset())
	if !IsValid(next) {
		return p, false
	}
	return next, true
}

// ResolveAttackTargets maps a relative pattern onto the board from the
// caster's cell, dropping cells that fall outside it. Pattern order is kept.
func ResolveAttackTargets(caster Position, pattern []Offset) []Position {
	out := make([]Position, 0, len(pattern))
	for _, o := range pattern {
		cell := caster.Shift(o)
		if IsValid(cell) {
			out = append(out, cell)
		}
	}
	return out
}

// SameCell reports whether a and b are the same cell.
func SameCell(a, b Position) bool {
	return a.X == b.X && a.Y == b.Y
}

// Covers reports whether target is one of cells.
func Covers(cells []Position, target Position) bool {
	for _, c := range cells {
		if SameCell(c, target) {
			return true
		}
	}
	return false
}

// Render draws the battlefield with both fighters on it. Seat A is shown
// as P1 and wins the cell when both stand on the same square.
func Render(a, b Position) string {
	var sb strings.Builder
	sb.WriteString("┌─────────────┐\n")
	for y := 0; y < Height; y++ {
		sb.WriteString("│ ")
		for x := 0; x < Width; x++ {
			cell := Position{X: x, Y: y}
			switch {
			case SameCell(cell, a):
				sb.WriteString("P1 ")
			case SameCell(cell, b):
				sb.WriteString("P2 ")
			default:
				sb.WriteString("·  ")
			}
		}
		sb.WriteString("│\n")
	}
	sb.WriteString("└─────────────┘")
	return sb.String()
}
