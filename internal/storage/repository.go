package storage

import (
	"errors"
	"time"

	"github.com/hyukkyo/demon-tournament/internal/game"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("record not found")

type Repository interface {
	CreateMatch(m *game.Match) error
	GetMatchByCode(code string) (*game.Match, error)
	// UpdateMatch saves the match together with both seats.
	UpdateMatch(m *game.Match) error
	// SaveRound stores a resolved round's log together with the match it
	// advanced, in one transaction. A match finished by that round also has
	// its stats recorded.
	SaveRound(m *game.Match, l *game.RoundLog) error
	ListRoundLogs(matchID uint) ([]game.RoundLog, error)
	// FindTimedOutMatches returns matches that are in progress, still
	// collecting selections and whose action deadline is at or before now.
	FindTimedOutMatches(now time.Time) ([]game.Match, error)
	// FinishMatch saves a finished match and, unless StatsCounted is
	// already set, records it in both players' profiles within the same
	// transaction. forfeitedBy is empty unless a player left or timed out.
	FinishMatch(m *game.Match, forfeitedBy string) error
	GetStats(playerID string) (*game.User, error)
	// Leaderboard
	GetTopPlayers(limit int) ([]game.User, error)
}
