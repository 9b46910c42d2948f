package storage

import (
	"errors"
	"time"

	"github.com/hyukkyo/demon-tournament/internal/game"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type sqliteRepository struct {
	db *gorm.DB
}

func NewSQLiteRepository(db *gorm.DB) Repository {
	return &sqliteRepository{db: db}
}

func bySeat(db *gorm.DB) *gorm.DB {
	return db.Order("seat ASC")
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func (r *sqliteRepository) CreateMatch(m *game.Match) error {
	return r.db.Create(m).Error
}

func (r *sqliteRepository) GetMatchByCode(code string) (*game.Match, error) {
	var m game.Match
	if err := r.db.Preload("Players", bySeat).Where("code = ?", code).First(&m).Error; err != nil {
		return nil, notFound(err)
	}
	return &m, nil
}

func (r *sqliteRepository) UpdateMatch(m *game.Match) error {
	return saveMatch(r.db, m)
}

func saveMatch(tx *gorm.DB, m *game.Match) error {
	return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(m).Error
}

func (r *sqliteRepository) SaveRound(m *game.Match, l *game.RoundLog) error {
	return r.inTx(m, func(tx *gorm.DB) error {
		if err := tx.Create(l).Error; err != nil {
			return err
		}
		if m.Status == game.StatusFinished {
			return countStatsOnce(tx, m, "")
		}
		return nil
	})
}

func (r *sqliteRepository) FinishMatch(m *game.Match, forfeitedBy string) error {
	return r.inTx(m, func(tx *gorm.DB) error {
		return countStatsOnce(tx, m, forfeitedBy)
	})
}

// inTx runs fn and then saves m, all in one transaction. m.StatsCounted is
// restored when the transaction rolls back.
func (r *sqliteRepository) inTx(m *game.Match, fn func(tx *gorm.DB) error) error {
	counted := m.StatsCounted
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := fn(tx); err != nil {
			return err
		}
		return saveMatch(tx, m)
	})
	if err != nil {
		m.StatsCounted = counted
	}
	return err
}

func countStatsOnce(tx *gorm.DB, m *game.Match, forfeitedBy string) error {
	if m.StatsCounted {
		return nil
	}
	if err := recordStats(tx, m, forfeitedBy); err != nil {
		return err
	}
	m.StatsCounted = true
	return nil
}

func (r *sqliteRepository) ListRoundLogs(matchID uint) ([]game.RoundLog, error) {
	var logs []game.RoundLog
	if err := r.db.Where("match_id = ?", matchID).Order("round ASC").Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

func (r *sqliteRepository) FindTimedOutMatches(now time.Time) ([]game.Match, error) {
	var matches []game.Match
	err := r.db.Preload("Players", bySeat).
		Where("status = ? AND phase = ? AND action_deadline <= ?", game.StatusInProgress, game.PhaseSelecting, now).
		Find(&matches).Error
	if err != nil {
		return nil, err
	}
	return matches, nil
}

// recordStats adds one played game to both seats and credits the win, draw
// or forfeit. Profiles are created on first use.
func recordStats(tx *gorm.DB, m *game.Match, forfeitedBy string) error {
	if len(m.Players) != 2 {
		return nil
	}
	for _, p := range m.Players {
		wins, draws, forfeits := 0, 0, 0
		switch m.Result {
		case game.WinFor(p.Seat):
			wins = 1
		case game.ResultDraw:
			draws = 1
		}
		if forfeitedBy != "" && p.PlayerID == forfeitedBy {
			forfeits = 1
		}

		updates := map[string]interface{}{
			"games_played": gorm.Expr("games_played + 1"),
			"wins":         gorm.Expr("wins + ?", wins),
			"draws":        gorm.Expr("draws + ?", draws),
			"forfeits":     gorm.Expr("forfeits + ?", forfeits),
			"updated_at":   time.Now(),
		}
		if p.PlayerName != "" {
			updates["player_name"] = p.PlayerName
		}
		u := game.User{
			PlayerID:    p.PlayerID,
			PlayerName:  p.PlayerName,
			GamesPlayed: 1,
			Wins:        wins,
			Draws:       draws,
			Forfeits:    forfeits,
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "player_id"}},
			DoUpdates: clause.Assignments(updates),
		}).Create(&u).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *sqliteRepository) GetStats(playerID string) (*game.User, error) {
	var u game.User
	if err := r.db.Where("player_id = ?", playerID).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &game.User{PlayerID: playerID}, nil
		}
		return nil, err
	}
	return &u, nil
}

// GetTopPlayers returns top N players ordered by Wins desc, then GamesPlayed desc
func (r *sqliteRepository) GetTopPlayers(limit int) ([]game.User, error) {
	if limit <= 0 {
		limit = 10
	}
	var users []game.User
	if err := r.db.Model(&game.User{}).
		Order("wins DESC").
		Order("games_played DESC").
		Limit(limit).
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
