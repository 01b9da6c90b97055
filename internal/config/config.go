package config

import (
	"os"
	"strconv"

	"surveystat/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Database DatabaseConfig
	Analysis AnalysisConfig
	Archive  ArchiveConfig
	Data     DataConfig
	Logging  LoggingConfig
}

// DatabaseConfig holds database connection settings. The archive is
// optional: an empty DATABASE_URL disables persistence entirely.
type DatabaseConfig struct {
	URL     string
	Enabled bool
}

// AnalysisConfig holds defaults applied when a request leaves them blank
type AnalysisConfig struct {
	DefaultMethod          string
	DefaultConfidenceLevel string
	DefaultDesignEffect    float64
}

// ArchiveConfig holds settings for querying stored analysis runs
type ArchiveConfig struct {
	ListLimit int
}

// DataConfig holds data ingestion settings
type DataConfig struct {
	InputFile string
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Database: loadDatabaseConfig(),
		Analysis: loadAnalysisConfig(),
		Archive:  loadArchiveConfig(),
		Data:     loadDataConfig(),
		Logging:  loadLoggingConfig(),
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadDatabaseConfig() DatabaseConfig {
	url := getEnvOrDefault("DATABASE_URL", "")
	return DatabaseConfig{
		URL:     url,
		Enabled: url != "",
	}
}

func loadAnalysisConfig() AnalysisConfig {
	return AnalysisConfig{
		DefaultMethod:          getEnvOrDefault("DEFAULT_SAMPLING_METHOD", "simple_random"),
		DefaultConfidenceLevel: getEnvOrDefault("DEFAULT_CONFIDENCE_LEVEL", "95%"),
		DefaultDesignEffect:    getEnvFloatOrDefault("DEFAULT_DESIGN_EFFECT", 1.0),
	}
}

func loadArchiveConfig() ArchiveConfig {
	return ArchiveConfig{
		ListLimit: getEnvIntOrDefault("ARCHIVE_LIST_LIMIT", 50),
	}
}

func loadDataConfig() DataConfig {
	return DataConfig{
		InputFile: getEnvOrDefault("SURVEY_FILE", ""),
	}
}

func loadLoggingConfig() LoggingConfig {
	return LoggingConfig{
		Level: getEnvOrDefault("LOG_LEVEL", "INFO"),
	}
}

func validateConfig(config *Config) error {
	if config.Analysis.DefaultDesignEffect <= 0 {
		return errors.ConfigInvalid("DEFAULT_DESIGN_EFFECT must be positive")
	}
	if config.Archive.ListLimit <= 0 {
		return errors.ConfigInvalid("ARCHIVE_LIST_LIMIT must be positive")
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

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
