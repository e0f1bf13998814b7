// Package config provides configuration loading for the footballer
// binaries. It uses koanf to merge environment variables with an optional
// YAML file; environment variables take precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config holds all configuration values shared by the runner and the
// ladder server.
type Config struct {
	// Server settings
	ListenAddr string `koanf:"listen_addr"`

	// Database (empty disables persistence)
	DatabaseURL string `koanf:"database_url"`

	// Input files
	TeamsFile    string `koanf:"teams_file"`
	ScheduleFile string `koanf:"schedule_file"`
	BaselineFile string `koanf:"baseline_file"`
	SeasonYear   int    `koanf:"season_year"`
	LeagueName   string `koanf:"league_name"`

	// Baseline seeding parameters
	BaselineMax       float64 `koanf:"baseline_max"`
	BaselineIncrement float64 `koanf:"baseline_increment"`

	// Scoring system parameters (zero means the system default)
	EloK            float64 `koanf:"elo_k"`
	PointShareScale float64 `koanf:"pointshare_scale"`
}

// Configuration validation errors.
var (
	ErrMissingTeamsFile    = errors.New("teams_file is required")
	ErrMissingScheduleFile = errors.New("schedule_file is required")
	ErrInvalidSeasonYear   = errors.New("season_year must be a valid integer")
	ErrInvalidNumber       = errors.New("numeric setting must be a valid number")
)

// Default values for non-required configuration.
const (
	DefaultListenAddr        = ":8003"
	DefaultLeagueName        = "NFL"
	DefaultSeasonYear        = 2017
	DefaultBaselineMax       = 32.0
	DefaultBaselineIncrement = 1.0
)

// Load reads configuration from environment variables and an optional
// config file. Environment variables take precedence over file values.
// Returns the loaded config and a slice of validation errors (empty if
// valid).
func Load(configFilePath string) (*Config, []error) {
	k := koanf.New(".")
	var loadErrs []error

	if configFilePath != "" {
		if err := k.Load(file.Provider(configFilePath), yaml.Parser()); err != nil {
			return nil, []error{fmt.Errorf("failed to load config file %s: %w", configFilePath, err)}
		}
	}

	seasonYear, yearErr := getEnvIntOrDefault("FOOTBALLER_SEASON_YEAR", k.Int("season_year"), DefaultSeasonYear)
	if yearErr != nil {
		loadErrs = append(loadErrs, yearErr)
	}

	baselineMax, err := getEnvFloatOrDefault("FOOTBALLER_BASELINE_MAX", k, "baseline_max", DefaultBaselineMax)
	if err != nil {
		loadErrs = append(loadErrs, err)
	}
	baselineIncrement, err := getEnvFloatOrDefault("FOOTBALLER_BASELINE_INCREMENT", k, "baseline_increment", DefaultBaselineIncrement)
	if err != nil {
		loadErrs = append(loadErrs, err)
	}
	eloK, err := getEnvFloatOrDefault("FOOTBALLER_ELO_K", k, "elo_k", 0)
	if err != nil {
		loadErrs = append(loadErrs, err)
	}
	pointShareScale, err := getEnvFloatOrDefault("FOOTBALLER_POINTSHARE_SCALE", k, "pointshare_scale", 0)
	if err != nil {
		loadErrs = append(loadErrs, err)
	}

	cfg := &Config{
		ListenAddr:        getEnvOrDefault("FOOTBALLER_LISTEN_ADDR", k.String("listen_addr"), DefaultListenAddr),
		DatabaseURL:       getEnvOrKoanf("FOOTBALLER_DATABASE_URL", k, "database_url"),
		TeamsFile:         getEnvOrKoanf("FOOTBALLER_TEAMS_FILE", k, "teams_file"),
		ScheduleFile:      getEnvOrKoanf("FOOTBALLER_SCHEDULE_FILE", k, "schedule_file"),
		BaselineFile:      getEnvOrKoanf("FOOTBALLER_BASELINE_FILE", k, "baseline_file"),
		SeasonYear:        seasonYear,
		LeagueName:        getEnvOrDefault("FOOTBALLER_LEAGUE_NAME", k.String("league_name"), DefaultLeagueName),
		BaselineMax:       baselineMax,
		BaselineIncrement: baselineIncrement,
		EloK:              eloK,
		PointShareScale:   pointShareScale,
	}

	loadErrs = append(loadErrs, cfg.validate()...)
	return cfg, loadErrs
}

func (c *Config) validate() []error {
	var errs []error
	if c.TeamsFile == "" {
		errs = append(errs, ErrMissingTeamsFile)
	}
	if c.ScheduleFile == "" {
		errs = append(errs, ErrMissingScheduleFile)
	}
	return errs
}

func getEnvOrKoanf(envKey string, k *koanf.Koanf, koanfKey string) string {
	if val := os.Getenv(envKey); val != "" {
		return val
	}
	return k.String(koanfKey)
}

func getEnvOrDefault(envKey, fileVal, def string) string {
	if val := os.Getenv(envKey); val != "" {
		return val
	}
	if fileVal != "" {
		return fileVal
	}
	return def
}

func getEnvIntOrDefault(envKey string, fileVal, def int) (int, error) {
	if val := os.Getenv(envKey); val != "" {
		n, err := strconv.Atoi(val)
		if err != nil {
			return def, fmt.Errorf("%w: %s=%q", ErrInvalidSeasonYear, envKey, val)
		}
		return n, nil
	}
	if fileVal != 0 {
		return fileVal, nil
	}
	return def, nil
}

func getEnvFloatOrDefault(envKey string, k *koanf.Koanf, koanfKey string, def float64) (float64, error) {
	if val := os.Getenv(envKey); val != "" {
		f, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return def, fmt.Errorf("%w: %s=%q", ErrInvalidNumber, envKey, val)
		}
		return f, nil
	}
	// An explicit zero in the file is a real value, not an omission.
	if k.Exists(koanfKey) {
		return k.Float64(koanfKey), nil
	}
	return def, nil
}
