package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/misterclayt0n/weekplan/internal/utils"
)

const (
	DefaultDSN      = "sqlite://~/.config/weekplan/weekplan.db"
	DevDSN          = "sqlite://./weekplan.db"
	DefaultSchedule = "0 0 1 * * 1" // Monday 01:00, with seconds
)

type Config struct {
	Storage  StorageConfig  `toml:"storage"`
	Planner  PlannerConfig  `toml:"planner"`
	Log      LogConfig      `toml:"log"`
	Rollover RolloverConfig `toml:"rollover"`
}

type StorageConfig struct {
	DSN string `toml:"dsn"` // memory://, file://, sqlite:// or libsql:// URL.
}

type PlannerConfig struct {
	Timezone string `toml:"timezone"`
}

type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // text or json
}

type RolloverConfig struct {
	Schedule string `toml:"schedule"`
}

func Default() Config {
	return Config{
		Storage:  StorageConfig{DSN: DefaultDSN},
		Planner:  PlannerConfig{Timezone: "Local"},
		Log:      LogConfig{Level: "info", Format: "text"},
		Rollover: RolloverConfig{Schedule: DefaultSchedule},
	}
}

// Returns the path to the config file.
func GetConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	dir := filepath.Join(home, ".config", "weekplan")
	return filepath.Join(dir, "config.toml"), nil
}

// Reads the configuration from the config file, then applies .env and
// environment overrides. A missing file or .env is not an error.
func LoadConfig() (*Config, error) {
	path, err := GetConfigPath()
	if err != nil {
		return nil, err
	}
	_ = godotenv.Load()
	return LoadFile(path, os.Getenv)
}

// LoadFile reads the config at path and applies overrides from getenv.
func LoadFile(path string, getenv func(string) string) (*Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	cfg.applyEnv(getenv)
	cfg.fillDefaults()
	return &cfg, nil
}

func (c *Config) applyEnv(getenv func(string) string) {
	if url := getenv("TURSO_DATABASE_URL"); url != "" {
		c.Storage.DSN = url
		if token := getenv("TURSO_AUTH_TOKEN"); token != "" {
			sep := "?"
			if strings.Contains(url, "?") {
				sep = "&"
			}
			c.Storage.DSN = url + sep + "authToken=" + token
		}
	}
	if dsn := getenv("WEEKPLAN_DSN"); dsn != "" {
		c.Storage.DSN = dsn
	}
	if tz := getenv("WEEKPLAN_TZ"); tz != "" {
		c.Planner.Timezone = tz
	}
	if level := getenv("WEEKPLAN_LOG_LEVEL"); level != "" {
		c.Log.Level = level
	}

	// Check for a DEV_MODE environment variable.
	if getenv("DEV_MODE") == "true" {
		c.Storage.DSN = DevDSN
	}
}

func (c *Config) fillDefaults() {
	def := Default()
	if strings.TrimSpace(c.Storage.DSN) == "" {
		c.Storage.DSN = def.Storage.DSN
	}
	if c.Planner.Timezone == "" {
		c.Planner.Timezone = def.Planner.Timezone
	}
	if c.Log.Level == "" {
		c.Log.Level = def.Log.Level
	}
	if c.Log.Format == "" {
		c.Log.Format = def.Log.Format
	}
	if c.Rollover.Schedule == "" {
		c.Rollover.Schedule = def.Rollover.Schedule
	}
}

// Location resolves the planner timezone.
func (c *Config) Location() (*time.Location, error) {
	return utils.LoadLocation(c.Planner.Timezone)
}
