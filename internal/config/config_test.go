package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-dice-tray/internal/config"
	"github.com/KirkDiggler/rpg-dice-tray/internal/errors"
)

type ConfigTestSuite struct {
	suite.Suite
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

func (s *ConfigTestSuite) TestLoadDefaults() {
	cfg, err := config.Load()
	s.Require().NoError(err)

	s.Equal(50051, cfg.GRPCPort)
	s.Equal("localhost:6379", cfg.RedisAddr)
	s.Equal(15*time.Minute, cfg.SnapshotTTL)
	s.Equal(6, cfg.HistorySize)
	s.False(cfg.AutoSettle)
	s.Equal(5*time.Second, cfg.MaxRollTime)
	s.Equal(50, cfg.MaxDicePerType)
	s.Equal(100, cfg.MaxDice)
	s.Equal("info", cfg.LogLevel)
}

func (s *ConfigTestSuite) TestLoadFromEnvironment() {
	s.T().Setenv("DICE_TRAY_GRPC_PORT", "6000")
	s.T().Setenv("DICE_TRAY_REDIS_ADDR", "redis:6380")
	s.T().Setenv("DICE_TRAY_SNAPSHOT_TTL", "2m")
	s.T().Setenv("DICE_TRAY_HISTORY_SIZE", "3")
	s.T().Setenv("DICE_TRAY_AUTO_SETTLE", "true")
	s.T().Setenv("DICE_TRAY_MAX_ROLL_TIME", "750ms")
	s.T().Setenv("DICE_TRAY_MAX_DICE_PER_TYPE", "10")
	s.T().Setenv("DICE_TRAY_MAX_DICE", "20")
	s.T().Setenv("DICE_TRAY_LOG_LEVEL", "debug")

	cfg, err := config.Load()
	s.Require().NoError(err)

	s.Equal(&config.Config{
		GRPCPort:       6000,
		RedisAddr:      "redis:6380",
		SnapshotTTL:    2 * time.Minute,
		HistorySize:    3,
		AutoSettle:     true,
		MaxRollTime:    750 * time.Millisecond,
		MaxDicePerType: 10,
		MaxDice:        20,
		LogLevel:       "debug",
	}, cfg)
}

func (s *ConfigTestSuite) TestLoadMalformed() {
	s.T().Setenv("DICE_TRAY_SNAPSHOT_TTL", "soon")

	_, err := config.Load()
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
}

func (s *ConfigTestSuite) TestValidate() {
	valid := func() *config.Config {
		return &config.Config{
			GRPCPort:       50051,
			RedisAddr:      "localhost:6379",
			SnapshotTTL:    time.Minute,
			HistorySize:    6,
			MaxRollTime:    time.Second,
			MaxDicePerType: 50,
			MaxDice:        100,
			LogLevel:       "warn",
		}
	}

	testCases := []struct {
		name   string
		mutate func(*config.Config)
		field  string
	}{
		{name: "port zero", mutate: func(c *config.Config) { c.GRPCPort = 0 }, field: "GRPCPort"},
		{name: "port too large", mutate: func(c *config.Config) { c.GRPCPort = 70000 }, field: "GRPCPort"},
		{name: "missing redis", mutate: func(c *config.Config) { c.RedisAddr = "" }, field: "RedisAddr"},
		{name: "zero ttl", mutate: func(c *config.Config) { c.SnapshotTTL = 0 }, field: "SnapshotTTL"},
		{name: "zero history", mutate: func(c *config.Config) { c.HistorySize = 0 }, field: "HistorySize"},
		{name: "zero roll time", mutate: func(c *config.Config) { c.MaxRollTime = 0 }, field: "MaxRollTime"},
		{name: "zero dice per type", mutate: func(c *config.Config) { c.MaxDicePerType = 0 }, field: "MaxDicePerType"},
		{name: "zero dice", mutate: func(c *config.Config) { c.MaxDice = 0 }, field: "MaxDice"},
		{name: "unknown level", mutate: func(c *config.Config) { c.LogLevel = "loud" }, field: "LogLevel"},
	}

	s.NoError(valid().Validate())

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			cfg := valid()
			tc.mutate(cfg)

			err := cfg.Validate()
			s.Require().Error(err)
			s.True(errors.IsInvalidArgument(err))
			s.Contains(err.Error(), tc.field)
		})
	}
}
