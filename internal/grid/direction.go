package grid

import "fmt"

// Direction is one of the four unit moves a movement card can make.
type Direction string

const (
	Up    Direction = "up"
	Down  Direction = "down"
	Left  Direction = "left"
	Right Direction = "right"
)

// Offset returns the unit vector of d. Y grows downwards.
func (d Direction) Offset() Offset {
	switch d {
	case Up:
		return Offset{X: 0, Y: -1}
	case Down:
		return Offset{X: 0, Y: 1}
	case Left:
		return Offset{X: -1, Y: 0}
	case Right:
		return Offset{X: 1, Y: 0}
	}
	panic(fmt.Sprintf("grid: unknown direction %q", string(d)))
}

// Valid reports whether d is one of the four known directions.
func (d Direction) Valid() bool {
	switch d {
	case Up, Down, Left, Right:
		return true
	}
	return false
}
