package storage

import (
	"github.com/hyukkyo/demon-tournament/internal/game"
	"github.com/hyukkyo/demon-tournament/internal/logging"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenAndMigrate opens the sqlite database and brings the schema up to date.
func OpenAndMigrate(dataSourceName string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dataSourceName), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&game.Match{}, &game.MatchPlayer{}, &game.RoundLog{}, &game.User{}); err != nil {
		return nil, err
	}
	// One log per match round.
	if err := db.Exec("CREATE UNIQUE INDEX IF NOT EXISTS idx_round_logs_match_round ON round_logs(match_id, round);").Error; err != nil {
		return nil, err
	}
	logging.Info("database ready", logging.Fields{"path": dataSourceName})
	return db, nil
}
