// Package config loads process configuration from the environment
package config

import (
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/KirkDiggler/rpg-dice-tray/internal/errors"
)

// Config holds the server settings. Command line flags override these.
type Config struct {
	GRPCPort       int           `env:"DICE_TRAY_GRPC_PORT"          envDefault:"50051"`
	RedisAddr      string        `env:"DICE_TRAY_REDIS_ADDR"         envDefault:"localhost:6379"`
	SnapshotTTL    time.Duration `env:"DICE_TRAY_SNAPSHOT_TTL"       envDefault:"15m"`
	HistorySize    int           `env:"DICE_TRAY_HISTORY_SIZE"       envDefault:"6"`
	AutoSettle     bool          `env:"DICE_TRAY_AUTO_SETTLE"        envDefault:"false"`
	MaxRollTime    time.Duration `env:"DICE_TRAY_MAX_ROLL_TIME"      envDefault:"5s"`
	MaxDicePerType int           `env:"DICE_TRAY_MAX_DICE_PER_TYPE"  envDefault:"50"`
	MaxDice        int           `env:"DICE_TRAY_MAX_DICE"           envDefault:"100"`
	LogLevel       string        `env:"DICE_TRAY_LOG_LEVEL"          envDefault:"info"`
}

// Load parses the environment and validates the result
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to parse environment")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks ranges
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.GRPCPort <= 0 || c.GRPCPort > 65535 {
		vb.Fieldf("GRPCPort", "must be within [1,65535], got %d", c.GRPCPort)
	}
	if c.RedisAddr == "" {
		vb.RequiredField("RedisAddr")
	}
	if c.SnapshotTTL <= 0 {
		vb.Field("SnapshotTTL", "must be positive")
	}
	if c.HistorySize <= 0 {
		vb.Field("HistorySize", "must be positive")
	}
	if c.MaxRollTime <= 0 {
		vb.Field("MaxRollTime", "must be positive")
	}
	if c.MaxDicePerType <= 0 {
		vb.Field("MaxDicePerType", "must be positive")
	}
	if c.MaxDice <= 0 {
		vb.Field("MaxDice", "must be positive")
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		vb.Fieldf("LogLevel", "unknown level %q", c.LogLevel)
	}

	return vb.Build()
}
