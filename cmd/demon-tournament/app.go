package main

import (
	"errors"
	"io/fs"
	"os"

	"github.com/hyukkyo/demon-tournament/internal/config"
	"github.com/hyukkyo/demon-tournament/internal/constants"
	"github.com/hyukkyo/demon-tournament/internal/logging"
	"github.com/hyukkyo/demon-tournament/internal/storage"
)

// loadConfigOrExit reads the YAML config at DEMON_CONFIG (or ./config.yaml).
// A missing default file falls back to built-in defaults; an explicitly
// configured path must exist.
func loadConfigOrExit() *config.LoadedConfig {
	path := os.Getenv(constants.EnvConfigPath)
	explicit := path != ""
	if !explicit {
		path = constants.DefaultConfigPath
	}
	cfg, err := config.LoadConfig(path)
	switch {
	case err == nil:
	case !explicit && errors.Is(err, fs.ErrNotExist):
		cfg = config.Defaults()
	default:
		logging.Fatal("Missing or invalid configuration", err, logging.Fields{"config_path": path})
	}
	cfg.ApplyEnv()
	return cfg
}

func createRepositoryOrExit(dbPath string) storage.Repository {
	db, err := storage.OpenAndMigrate(dbPath)
	if err != nil {
		logging.Fatal("Failed to initialize database", err, logging.Fields{"db_path": dbPath})
	}
	return storage.NewSQLiteRepository(db)
}
