// Command battlesim resolves a single round offline and prints the
// resulting battle events, one JSON object per line, followed by the board.
//
//	battlesim -a MOVE_RIGHT,ATTACK_CROSS,DEFEND -b MOVE_LEFT,ATTACK_FORWARD,ENERGY_RECOVERY
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/hyukkyo/demon-tournament/internal/cards"
	"github.com/hyukkyo/demon-tournament/internal/engine"
	"github.com/hyukkyo/demon-tournament/internal/game"
	"github.com/hyukkyo/demon-tournament/internal/grid"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, "battlesim:", err)
		os.Exit(1)
	}
}

type fighterFlags struct {
	cards  string
	char   string
	pos    string
	hp     int
	energy int
}

func (f *fighterFlags) register(fs *flag.FlagSet, seat string, anchor grid.Position) {
	fs.StringVar(&f.cards, seat, "", "comma separated cards for player "+seat)
	fs.StringVar(&f.char, seat+"-char", "", "roster character of player "+seat+"; empty allows every card")
	fs.StringVar(&f.pos, seat+"-pos", fmt.Sprintf("%d,%d", anchor.X, anchor.Y), "starting cell x,y of player "+seat)
	fs.IntVar(&f.hp, seat+"-hp", game.DefaultMaxHP, "starting hp of player "+seat)
	fs.IntVar(&f.energy, seat+"-energy", game.DefaultMaxEnergy, "starting energy of player "+seat)
}

func (f *fighterFlags) build(id string, seat game.Seat) (game.CharacterState, game.Selection, error) {
	c := game.NewCharacter(id, seat)
	if f.char != "" {
		ch, ok := cards.CharacterByID(f.char)
		if !ok {
			return c, game.Selection{}, fmt.Errorf("player %s: unknown character %q", seat, f.char)
		}
		c = game.NewRosterCharacter(id, seat, ch)
	}
	pos, err := parsePosition(f.pos)
	if err != nil {
		return c, game.Selection{}, fmt.Errorf("player %s: %w", seat, err)
	}
	c.Position = pos
	c.Stats.HP = f.hp
	c.Stats.Energy = f.energy

	if strings.TrimSpace(f.cards) == "" {
		return c, game.Selection{}, fmt.Errorf("player %s: no cards given", seat)
	}
	sel, err := game.ParseSelection(strings.Split(f.cards, ","))
	if err != nil {
		return c, game.Selection{}, fmt.Errorf("player %s: %w", seat, err)
	}
	return c, sel, nil
}

func parsePosition(s string) (grid.Position, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return grid.Position{}, fmt.Errorf("position %q must be x,y", s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return grid.Position{}, fmt.Errorf("position %q: %w", s, err)
	}
	y, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return grid.Position{}, fmt.Errorf("position %q: %w", s, err)
	}
	p := grid.Position{X: x, Y: y}
	if !grid.IsValid(p) {
		return grid.Position{}, fmt.Errorf("position %q is off the %dx%d board", s, grid.Width, grid.Height)
	}
	return p, nil
}

func run(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("battlesim", flag.ContinueOnError)
	var a, b fighterFlags
	a.register(fs, "a", game.SeatA.Anchor())
	b.register(fs, "b", game.SeatB.Anchor())
	policyName := fs.String("policy", string(engine.EnergyStrict), "energy policy used for validation: strict or permissive")
	skipValidation := fs.Bool("no-validate", false, "resolve even when a selection would be rejected")
	if err := fs.Parse(args); err != nil {
		return err
	}

	policy, err := engine.ParseEnergyPolicy(*policyName)
	if err != nil {
		return err
	}
	charA, selA, err := a.build("player-a", game.SeatA)
	if err != nil {
		return err
	}
	charB, selB, err := b.build("player-b", game.SeatB)
	if err != nil {
		return err
	}
	if !*skipValidation {
		if err := engine.ValidateSelection(charA, selA, policy); err != nil {
			return fmt.Errorf("player A: %w", err)
		}
		if err := engine.ValidateSelection(charB, selB, policy); err != nil {
			return fmt.Errorf("player B: %w", err)
		}
	}

	outcome := engine.ResolveRound(charA, charB, selA, selB)

	enc := json.NewEncoder(out)
	for _, ev := range outcome.Events {
		if err := enc.Encode(ev); err != nil {
			return err
		}
	}
	result := string(outcome.Result)
	if result == "" {
		result = "ONGOING"
	}
	fmt.Fprintf(out, "\nresult: %s\n", result)
	fmt.Fprintf(out, "A: hp %d energy %d at (%d,%d)\n", outcome.A.Stats.HP, outcome.A.Stats.Energy, outcome.A.Position.X, outcome.A.Position.Y)
	fmt.Fprintf(out, "B: hp %d energy %d at (%d,%d)\n", outcome.B.Stats.HP, outcome.B.Stats.Energy, outcome.B.Position.X, outcome.B.Position.Y)
	if outcome.Summary != "" {
		fmt.Fprintf(out, "%s\n", outcome.Summary)
	}
	fmt.Fprintln(out)
	fmt.Fprint(out, grid.Render(outcome.A.Position, outcome.B.Position))
	return nil
}
