package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/hyukkyo/demon-tournament/internal/constants"
	"github.com/hyukkyo/demon-tournament/internal/engine"

	"gopkg.in/yaml.v3"
)

type rawConfig struct {
	Server *struct {
		Address string `yaml:"address"`
	} `yaml:"server"`
	Database *struct {
		Path string `yaml:"path"`
	} `yaml:"database"`
	Match *struct {
		// Durations use Go syntax, e.g. "60s" or "2m".
		ActionTimeout string `yaml:"action_timeout"`
		CleanupDelay  string `yaml:"cleanup_delay"`
		ScanInterval  string `yaml:"scan_interval"`
		EnergyPolicy  string `yaml:"energy_policy"`
	} `yaml:"match"`
	Log *struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
}

// LoadedConfig is the validated runtime configuration.
type LoadedConfig struct {
	ServerAddress string
	DatabasePath  string
	ActionTimeout time.Duration
	// CleanupDelay is how long finished matches keep their realtime channel.
	CleanupDelay time.Duration
	ScanInterval time.Duration
	EnergyPolicy engine.EnergyPolicy
	LogLevel     string
	LogFormat    string
}

// Defaults returns the configuration used when no file is given.
func Defaults() *LoadedConfig {
	return &LoadedConfig{
		ServerAddress: ":8080",
		DatabasePath:  "demon-tournament.db",
		ActionTimeout: 60 * time.Second,
		CleanupDelay:  5 * time.Second,
		ScanInterval:  5 * time.Second,
		EnergyPolicy:  engine.EnergyStrict,
		LogLevel:      "info",
		LogFormat:     "json",
	}
}

// LoadConfig reads the YAML configuration file at path. Missing sections
// keep their defaults.
func LoadConfig(path string) (*LoadedConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	cfg, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML bytes on top of Defaults and validates the result.
func Parse(b []byte) (*LoadedConfig, error) {
	var rc rawConfig
	if err := yaml.Unmarshal(b, &rc); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg := Defaults()
	if rc.Server != nil && rc.Server.Address != "" {
		cfg.ServerAddress = rc.Server.Address
	}
	if rc.Database != nil && rc.Database.Path != "" {
		cfg.DatabasePath = rc.Database.Path
	}
	if rc.Log != nil {
		if rc.Log.Level != "" {
			cfg.LogLevel = strings.ToLower(rc.Log.Level)
		}
		if rc.Log.Format != "" {
			cfg.LogFormat = strings.ToLower(rc.Log.Format)
		}
	}
	if m := rc.Match; m != nil {
		for _, d := range []struct {
			key string
			raw string
			dst *time.Duration
		}{
			{"action_timeout", m.ActionTimeout, &cfg.ActionTimeout},
			{"cleanup_delay", m.CleanupDelay, &cfg.CleanupDelay},
			{"scan_interval", m.ScanInterval, &cfg.ScanInterval},
		} {
			if d.raw == "" {
				continue
			}
			v, err := time.ParseDuration(d.raw)
			if err != nil {
				return nil, fmt.Errorf("match.%s: %w", d.key, err)
			}
			if v <= 0 {
				return nil, fmt.Errorf("match.%s must be positive", d.key)
			}
			*d.dst = v
		}
		p, err := engine.ParseEnergyPolicy(m.EnergyPolicy)
		if err != nil {
			return nil, fmt.Errorf("match.energy_policy: %w", err)
		}
		cfg.EnergyPolicy = p
	}

	if cfg.LogFormat != "json" && cfg.LogFormat != "text" {
		return nil, fmt.Errorf("log.format must be json or text, got %q", cfg.LogFormat)
	}
	return cfg, nil
}

// ApplyEnv overrides file values with DEMON_DB and DEMON_ADDR when set.
// PORT is honoured as ":<port>" when DEMON_ADDR is absent.
func (c *LoadedConfig) ApplyEnv() {
	if v := strings.TrimSpace(os.Getenv(constants.EnvDatabase)); v != "" {
		c.DatabasePath = v
	}
	if v := strings.TrimSpace(os.Getenv(constants.EnvAddress)); v != "" {
		c.ServerAddress = v
	} else if v := strings.TrimSpace(os.Getenv(constants.EnvPort)); v != "" {
		c.ServerAddress = ":" + v
	}
}
