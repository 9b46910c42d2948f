package game

import (
	"fmt"
	"strings"

	"github.com/hyukkyo/demon-tournament/internal/cards"
)

// SelectionSize is the number of cards played per round.
const SelectionSize = 3

// Selection is the ordered cards one player commits to for a round. The
// zero value means nothing was submitted.
type Selection [SelectionSize]cards.Kind

// IsZero reports whether no card was submitted.
func (s Selection) IsZero() bool {
	return s == Selection{}
}

// Complete reports whether every slot holds a card.
func (s Selection) Complete() bool {
	for _, k := range s {
		if !k.Valid() {
			return false
		}
	}
	return true
}

func (s Selection) String() string {
	parts := make([]string, 0, SelectionSize)
	for _, k := range s {
		parts = append(parts, k.String())
	}
	return strings.Join(parts, ", ")
}

// ParseSelection builds a Selection from wire names. Exactly three names
// are required; whether they form a legal play is checked by the engine.
func ParseSelection(names []string) (Selection, error) {
	var sel Selection
	if len(names) != SelectionSize {
		return sel, fmt.Errorf("must select exactly %d cards, got %d", SelectionSize, len(names))
	}
	for i, n := range names {
		k, err := cards.ParseKind(strings.ToUpper(strings.TrimSpace(n)))
		if err != nil {
			return Selection{}, err
		}
		sel[i] = k
	}
	return sel, nil
}

// Result is the terminal outcome of a match; ResultNone while it goes on.
type Result string

const (
	ResultNone       Result = ""
	ResultPlayerAWin Result = "PLAYER_A_WIN"
	ResultPlayerBWin Result = "PLAYER_B_WIN"
	ResultDraw       Result = "DRAW"
)

// Terminal reports whether r ends the match.
func (r Result) Terminal() bool {
	return r != ResultNone
}

// WinFor returns the result in which seat s wins.
func WinFor(s Seat) Result {
	if s == SeatB {
		return ResultPlayerBWin
	}
	return ResultPlayerAWin
}
