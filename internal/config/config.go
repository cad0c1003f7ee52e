// Package config loads agent settings from an optional config.toml under
// ~/.hamster-tapper plus environment variables. Environment names are kept
// flat and uppercase so a plain .env file works.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	configName = "config"
	configType = "toml"
	configDir  = ".hamster-tapper"
)

type Range struct {
	Min int
	Max int
}

type Config struct {
	APIBaseURL string

	MinAvailableEnergy int
	RandomTapsCount    Range
	AddTapsOnTurbo     int
	SleepBetweenTap    Range
	ApplyDailyEnergy   bool

	AutoUpgrade                 bool
	MaxLevel                    int
	UpgradeMaxReturnPeriodHours float64
	MaxEarningTimeHours         float64
	UpgradeLatchResetHours      float64
}

func (c Config) LatchReset() time.Duration {
	return time.Duration(c.UpgradeLatchResetHours * float64(time.Hour))
}

func (c Config) Validate() error {
	if c.MinAvailableEnergy < 0 {
		return errors.New("MIN_AVAILABLE_ENERGY must not be negative")
	}
	if err := c.RandomTapsCount.validate("RANDOM_TAPS_COUNT"); err != nil {
		return err
	}
	if err := c.SleepBetweenTap.validate("SLEEP_BETWEEN_TAP"); err != nil {
		return err
	}
	if c.AddTapsOnTurbo < 0 {
		return errors.New("ADD_TAPS_ON_TURBO must not be negative")
	}
	if c.MaxLevel < 1 {
		return errors.New("MAX_LEVEL must be at least 1")
	}
	if c.UpgradeMaxReturnPeriodHours <= 0 {
		return errors.New("UPGRADE_MAX_RETURN_PERIOD_HOURS must be positive")
	}
	if c.MaxEarningTimeHours <= 0 {
		return errors.New("MAX_EARNING_TIME_HOURS must be positive")
	}
	if c.UpgradeLatchResetHours < 0 {
		return errors.New("UPGRADE_LATCH_RESET_HOURS must not be negative")
	}

	return nil
}

func (r Range) validate(name string) error {
	if r.Min < 1 {
		return fmt.Errorf("%s minimum must be at least 1", name)
	}
	if r.Max < r.Min {
		return fmt.Errorf("%s maximum %d is below minimum %d", name, r.Max, r.Min)
	}

	return nil
}

// keys maps viper keys to the environment variable carrying each setting.
var keys = map[string]string{
	"api_base_url":                    "API_BASE_URL",
	"min_available_energy":            "MIN_AVAILABLE_ENERGY",
	"random_taps_count":               "RANDOM_TAPS_COUNT",
	"add_taps_on_turbo":               "ADD_TAPS_ON_TURBO",
	"sleep_between_tap":               "SLEEP_BETWEEN_TAP",
	"apply_daily_energy":              "APPLY_DAILY_ENERGY",
	"auto_upgrade":                    "AUTO_UPGRADE",
	"max_level":                       "MAX_LEVEL",
	"upgrade_max_return_period_hours": "UPGRADE_MAX_RETURN_PERIOD_HOURS",
	"max_earning_time_hours":          "MAX_EARNING_TIME_HOURS",
	"upgrade_latch_reset_hours":       "UPGRADE_LATCH_RESET_HOURS",
}

func Load(cfg *viper.Viper) (Config, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf("resolve home directory: %w", err)
	}

	cfg.SetConfigName(configName)
	cfg.SetConfigType(configType)
	cfg.AddConfigPath(filepath.Join(homeDir, configDir))

	cfg.SetDefault("api_base_url", "")
	cfg.SetDefault("min_available_energy", 100)
	cfg.SetDefault("random_taps_count", "10,50")
	cfg.SetDefault("add_taps_on_turbo", 2500)
	cfg.SetDefault("sleep_between_tap", "10,25")
	cfg.SetDefault("apply_daily_energy", true)
	cfg.SetDefault("auto_upgrade", true)
	cfg.SetDefault("max_level", 20)
	cfg.SetDefault("upgrade_max_return_period_hours", 100.0)
	cfg.SetDefault("max_earning_time_hours", 24.0)
	cfg.SetDefault("upgrade_latch_reset_hours", 0.0)

	for key, env := range keys {
		if err := cfg.BindEnv(key, env); err != nil {
			return Config{}, fmt.Errorf("bind %s: %w", env, err)
		}
	}

	if err := cfg.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	randomTaps, err := parseRange(cfg.GetString("random_taps_count"), "RANDOM_TAPS_COUNT")
	if err != nil {
		return Config{}, err
	}
	sleepBetween, err := parseRange(cfg.GetString("sleep_between_tap"), "SLEEP_BETWEEN_TAP")
	if err != nil {
		return Config{}, err
	}

	loaded := Config{
		APIBaseURL:                  cfg.GetString("api_base_url"),
		MinAvailableEnergy:          cfg.GetInt("min_available_energy"),
		RandomTapsCount:             randomTaps,
		AddTapsOnTurbo:              cfg.GetInt("add_taps_on_turbo"),
		SleepBetweenTap:             sleepBetween,
		ApplyDailyEnergy:            cfg.GetBool("apply_daily_energy"),
		AutoUpgrade:                 cfg.GetBool("auto_upgrade"),
		MaxLevel:                    cfg.GetInt("max_level"),
		UpgradeMaxReturnPeriodHours: cfg.GetFloat64("upgrade_max_return_period_hours"),
		MaxEarningTimeHours:         cfg.GetFloat64("max_earning_time_hours"),
		UpgradeLatchResetHours:      cfg.GetFloat64("upgrade_latch_reset_hours"),
	}

	if err := loaded.Validate(); err != nil {
		return Config{}, err
	}

	return loaded, nil
}

// parseRange accepts "min,max" pairs; a single value stands for both ends.
func parseRange(raw string, name string) (Range, error) {
	parts := strings.Split(raw, ",")
	if len(parts) > 2 {
		return Range{}, fmt.Errorf("%s: want \"min,max\", got %q", name, raw)
	}

	minValue, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return Range{}, fmt.Errorf("%s: parse minimum: %w", name, err)
	}

	maxValue := minValue
	if len(parts) == 2 {
		maxValue, err = strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			return Range{}, fmt.Errorf("%s: parse maximum: %w", name, err)
		}
	}

	return Range{Min: minValue, Max: maxValue}, nil
}
