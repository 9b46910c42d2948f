package game

import (
	"time"

	"github.com/hyukkyo/demon-tournament/internal/cards"
	"github.com/hyukkyo/demon-tournament/internal/grid"

	"gorm.io/gorm"
)

// Match lifecycle values.
const (
	StatusWaitingForPlayers = "waiting_for_players"
	StatusInProgress        = "in_progress"
	StatusFinished          = "finished"

	PhaseSelecting = "selecting"
	PhaseResolving = "resolving"
	PhaseResolved  = "resolved"
)

// Match is a persisted 1v1 game. Players[0] always sits in seat A.
type Match struct {
	gorm.Model
	Code             string        `json:"code" gorm:"uniqueIndex;size:8"`
	Players          []MatchPlayer `json:"players"`
	Round            int           `json:"round"`
	Status           string        `json:"status" gorm:"index"`
	Phase            string        `json:"phase"`
	Result           Result        `json:"result"`
	Winner           string        `json:"winner"`
	Message          string        `json:"message"`
	LastRoundSummary string        `json:"last_round_summary"`
	ActionDeadline   time.Time     `json:"action_deadline"`
	StatsCounted     bool          `json:"-"`
}

// MatchPlayer is one seat of a match together with the character it plays.
// The character columns are flattened so they can be inspected in SQL.
type MatchPlayer struct {
	gorm.Model
	MatchID      uint         `json:"-" gorm:"index"`
	Seat         Seat         `json:"seat"`
	PlayerID     string       `json:"player_id" gorm:"index"`
	PlayerName   string       `json:"player_name"`
	CharacterID  string       `json:"character"`
	HP           int          `json:"hp"`
	MaxHP        int          `json:"max_hp"`
	Energy       int          `json:"energy"`
	MaxEnergy    int          `json:"max_energy"`
	PosX         int          `json:"pos_x"`
	PosY         int          `json:"pos_y"`
	Deck         []cards.Kind `json:"deck" gorm:"serializer:json"`
	Selection    Selection    `json:"-" gorm:"serializer:json"`
	HasSubmitted bool         `json:"has_submitted"`
	Connected    bool         `json:"connected"`
}

// TableName keeps seats in their own table.
func (MatchPlayer) TableName() string { return "match_players" }

// Character rebuilds the engine view of the seat.
func (p MatchPlayer) Character() CharacterState {
	return CharacterState{
		PlayerID: p.PlayerID,
		Stats: Stats{
			HP:        p.HP,
			MaxHP:     p.MaxHP,
			Energy:    p.Energy,
			MaxEnergy: p.MaxEnergy,
		},
		Position: grid.Position{X: p.PosX, Y: p.PosY},
		Deck:     append([]cards.Kind(nil), p.Deck...),
	}
}

// ApplyCharacter copies a resolved character back onto the seat. The
// defense flag is slot-scoped and is not persisted.
func (p *MatchPlayer) ApplyCharacter(c CharacterState) {
	p.HP = c.Stats.HP
	p.MaxHP = c.Stats.MaxHP
	p.Energy = c.Stats.Energy
	p.MaxEnergy = c.Stats.MaxEnergy
	p.PosX = c.Position.X
	p.PosY = c.Position.Y
	p.Deck = append([]cards.Kind(nil), c.Deck...)
}

// NewMatchPlayer seats playerID with a fresh instance of the roster
// character ch.
func NewMatchPlayer(playerID, name string, seat Seat, ch cards.Character) MatchPlayer {
	p := MatchPlayer{Seat: seat, PlayerID: playerID, PlayerName: name, CharacterID: ch.ID, Connected: true}
	p.ApplyCharacter(NewRosterCharacter(playerID, seat, ch))
	return p
}

// SeatOf returns the seat held by playerID.
func (m *Match) SeatOf(playerID string) (Seat, bool) {
	for i := range m.Players {
		if m.Players[i].PlayerID == playerID {
			return m.Players[i].Seat, true
		}
	}
	return SeatA, false
}

// Player returns the seat's player, or nil when the seat is empty.
func (m *Match) Player(s Seat) *MatchPlayer {
	for i := range m.Players {
		if m.Players[i].Seat == s {
			return &m.Players[i]
		}
	}
	return nil
}

// RoundLog is the stored event log of one resolved round.
type RoundLog struct {
	gorm.Model
	MatchID uint          `json:"-" gorm:"index"`
	Round   int           `json:"round"`
	Events  []BattleEvent `json:"events" gorm:"serializer:json"`
	Result  Result        `json:"result"`
	Summary string        `json:"summary"`
}

// User stores a player's identity and aggregate match stats.
type User struct {
	gorm.Model
	PlayerID    string `json:"player_id" gorm:"uniqueIndex"`
	PlayerName  string `json:"player_name"`
	GamesPlayed int    `json:"games_played"`
	Wins        int    `json:"wins"`
	Draws       int    `json:"draws"`
	Forfeits    int    `json:"forfeits"`
}

// TableName uses the profile table name.
func (User) TableName() string { return "player_profiles" }
