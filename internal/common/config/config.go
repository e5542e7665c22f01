package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	HTTP       HTTPConfig
	Simulation SimulationConfig
	Database   DatabaseConfig
	Snapshots  SnapshotConfig
	Logging    LoggingConfig
}

type HTTPConfig struct {
	ListenAddr string
}

// SimulationConfig drives the simulated feed updater
type SimulationConfig struct {
	UpdateInterval           time.Duration
	DelayProbability         float64
	DelayedStatusProbability float64
	MaxDelayMinutes          int
	RandomSeed               uint64 // 0 picks a time-based seed
	SeedSource               string // file path or http(s) URL, empty for built-in sample data

	randomSeedErr error
}

type DatabaseConfig struct {
	Enabled  bool
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

// SnapshotConfig controls retention of recorded tick snapshots
type SnapshotConfig struct {
	Retention       time.Duration
	CleanupInterval time.Duration
}

type LoggingConfig struct {
	Level      string
	FilePath   string
	DiscordURL string
}

func Load() (*Config, error) {
	cfg := &Config{
		HTTP: HTTPConfig{
			ListenAddr: getEnv("HTTP_LISTEN_ADDR", ":8080"),
		},
		Simulation: SimulationConfig{
			UpdateInterval:           getDurationEnv("UPDATE_INTERVAL", 30*time.Second),
			DelayProbability:         getFloatEnv("DELAY_PROBABILITY", 0.2),
			DelayedStatusProbability: getFloatEnv("DELAYED_STATUS_PROBABILITY", 0.1),
			MaxDelayMinutes:          getIntEnv("MAX_DELAY_MINUTES", 4),
			SeedSource:               getEnv("SEED_SOURCE", ""),
		},
		Database: DatabaseConfig{
			Enabled:  getBoolEnv("DB_ENABLED", false),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			DBName:   getEnv("DB_NAME", "citytransit"),
		},
		Snapshots: SnapshotConfig{
			Retention:       getDurationEnv("SNAPSHOT_RETENTION", 24*time.Hour),
			CleanupInterval: getDurationEnv("SNAPSHOT_CLEANUP_INTERVAL", time.Hour),
		},
		Logging: LoggingConfig{
			Level:      getEnv("LOG_LEVEL", "info"),
			FilePath:   getEnv("LOG_FILE", "citytransit.log"),
			DiscordURL: getEnv("DISCORD_WEBHOOK_URL", ""),
		},
	}

	cfg.Simulation.RandomSeed, cfg.Simulation.randomSeedErr = getUintEnv("RANDOM_SEED", 0)

	if err := cfg.Simulation.Validate(); err != nil {
		return nil, fmt.Errorf("simulation config: %w", err)
	}

	return cfg, nil
}

func (c *SimulationConfig) Validate() error {
	if c.randomSeedErr != nil {
		return c.randomSeedErr
	}
	if c.UpdateInterval <= 0 {
		return fmt.Errorf("update interval must be positive")
	}
	if c.DelayProbability < 0 || c.DelayProbability > 1 {
		return fmt.Errorf("delay probability must be within [0, 1], got %v", c.DelayProbability)
	}
	if c.DelayedStatusProbability < 0 || c.DelayedStatusProbability > 1 {
		return fmt.Errorf("delayed status probability must be within [0, 1], got %v", c.DelayedStatusProbability)
	}
	if c.MaxDelayMinutes < 0 {
		return fmt.Errorf("max delay minutes cannot be negative")
	}
	return nil
}

func (c *DatabaseConfig) Validate() error {
	if c.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if c.DBName == "" {
		return fmt.Errorf("database name is required")
	}
	return nil
}

func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Host, c.Port, c.User, c.Password, c.DBName)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

// getUintEnv fails on values that are not unsigned 64-bit integers
// instead of falling back to the default
func getUintEnv(key string, defaultValue uint64) (uint64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.ParseUint(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be an unsigned integer, got %q", key, value)
	}
	return n, nil
}

func getBoolEnv(key string, defaultValue bool) bool {
	switch strings.ToLower(os.Getenv(key)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	return defaultValue
}
