package config

import (
	"os"
	"strconv"

	"gouniform/adapters/stats/uniformity"
	"gouniform/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Stats  StatsConfig
	Server ServerConfig
	Log    LogConfig
}

// StatsConfig holds the constants shared by the uniformity tests
type StatsConfig struct {
	Alpha           float64
	Intervals       int
	KSCriticalValue float64
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port              string
	GinMode           string
	MaxConcurrentRuns int
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string
	Format string
}

// DefaultStats returns alpha 0.05, ten intervals and D = 0.40925
func DefaultStats() StatsConfig {
	d := uniformity.DefaultConfig()
	return StatsConfig{
		Alpha:           d.Alpha,
		Intervals:       d.Intervals,
		KSCriticalValue: d.KSCriticalValue,
	}
}

// TestConfig converts to the config consumed by the tests
func (s StatsConfig) TestConfig() uniformity.Config {
	return uniformity.Config{
		Alpha:           s.Alpha,
		Intervals:       s.Intervals,
		KSCriticalValue: s.KSCriticalValue,
	}
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{}

	statsConfig, err := loadStatsConfig()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load stats configuration")
	}
	config.Stats = *statsConfig

	serverConfig, err := loadServerConfig()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load server configuration")
	}
	config.Server = *serverConfig
	config.Log = *loadLogConfig()

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadStatsConfig() (*StatsConfig, error) {
	defaults := DefaultStats()

	alpha, err := getEnvFloat("UNIFORMITY_ALPHA", defaults.Alpha)
	if err != nil {
		return nil, err
	}
	intervals, err := getEnvInt("UNIFORMITY_INTERVALS", defaults.Intervals)
	if err != nil {
		return nil, err
	}

	cfg := &StatsConfig{Alpha: alpha, Intervals: intervals}

	// An explicit critical value wins; otherwise it is resolved once from the table.
	if os.Getenv("UNIFORMITY_KS_CRITICAL") != "" {
		d, err := getEnvFloat("UNIFORMITY_KS_CRITICAL", 0)
		if err != nil {
			return nil, err
		}
		cfg.KSCriticalValue = d
		return cfg, nil
	}

	d, err := uniformity.KolmogorovCriticalValue(alpha, intervals)
	if err != nil {
		return nil, errors.WithCode(errors.CodeConfigInvalid,
			errors.Wrap(err, "set UNIFORMITY_KS_CRITICAL for this alpha and interval count"))
	}
	cfg.KSCriticalValue = d
	return cfg, nil
}

func loadServerConfig() (*ServerConfig, error) {
	runs, err := getEnvInt("MAX_CONCURRENT_RUNS", 4)
	if err != nil {
		return nil, err
	}
	return &ServerConfig{
		Port:              getEnvOrDefault("PORT", "8080"),
		GinMode:           getEnvOrDefault("GIN_MODE", "release"),
		MaxConcurrentRuns: runs,
	}, nil
}

func loadLogConfig() *LogConfig {
	return &LogConfig{
		Level:  getEnvOrDefault("LOG_LEVEL", "INFO"),
		Format: getEnvOrDefault("LOG_FORMAT", "console"),
	}
}

func validateConfig(config *Config) error {
	if err := config.Stats.TestConfig().Validate(); err != nil {
		return errors.WithCode(errors.CodeConfigInvalid, err)
	}
	switch config.Server.GinMode {
	case "debug", "release", "test":
	default:
		return errors.ConfigInvalid("GIN_MODE must be debug, release or test")
	}
	if config.Server.MaxConcurrentRuns < 1 {
		return errors.ConfigInvalid("MAX_CONCURRENT_RUNS must be at least 1")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		return 0, errors.ConfigInvalid(key + " must be an integer")
	}
	return intValue, nil
}

func getEnvFloat(key string, defaultValue float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	floatValue, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, errors.ConfigInvalid(key + " must be a number")
	}
	return floatValue, nil
}
