package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/vladimiradmaev/health-mate/internal/logger"
	"github.com/vladimiradmaev/health-mate/internal/utils"
)

type Config struct {
	DB        DBConfig
	Logger    LoggerConfig
	HTTP      HTTPConfig
	Bot       BotConfig
	Scheduler SchedulerConfig
	Health    HealthConfig
}

type DBConfig struct {
	Driver   string // "postgres" or "sqlite"
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
	Path     string // sqlite file, ":memory:" allowed
}

type LoggerConfig struct {
	Level      logger.LogLevel
	OutputPath string
	Format     string
}

type HTTPConfig struct {
	Addr         string
	JWTSecret    string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// BotConfig is optional; an empty token disables the telegram bot.
type BotConfig struct {
	TelegramToken string
	RedisHost     string
	RedisPort     string
}

type SchedulerConfig struct {
	SnapshotEnabled bool
	SnapshotAt      string // HH:MM
}

type HealthConfig struct {
	DefaultWaterGoalMl int
	DefaultTimezone    string
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntOrDefault(key string, defaultValue int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}

func getDurationOrDefault(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func getBoolOrDefault(key string, defaultValue bool) (bool, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}

// Load reads the configuration from the environment and validates it.
func Load() (*Config, error) {
	var parseErrs []error
	collect := func(err error) {
		if err != nil {
			parseErrs = append(parseErrs, err)
		}
	}

	readTimeout, err := getDurationOrDefault("HTTP_READ_TIMEOUT", 10*time.Second)
	collect(err)
	writeTimeout, err := getDurationOrDefault("HTTP_WRITE_TIMEOUT", 10*time.Second)
	collect(err)
	snapshotEnabled, err := getBoolOrDefault("SNAPSHOT_ENABLED", false)
	collect(err)
	waterGoal, err := getIntOrDefault("DEFAULT_WATER_GOAL_ML", 2000)
	collect(err)

	if len(parseErrs) > 0 {
		return nil, errors.Join(parseErrs...)
	}

	cfg := &Config{
		DB: DBConfig{
			Driver:   strings.ToLower(getEnvOrDefault("DB_DRIVER", "postgres")),
			Host:     getEnvOrDefault("DB_HOST", "localhost"),
			Port:     getEnvOrDefault("DB_PORT", "5432"),
			User:     getEnvOrDefault("DB_USER", "postgres"),
			Password: getEnvOrDefault("DB_PASSWORD", "postgres"),
			DBName:   getEnvOrDefault("DB_NAME", "health_mate"),
			SSLMode:  getEnvOrDefault("DB_SSLMODE", "disable"),
			Path:     getEnvOrDefault("DB_PATH", "health_mate.db"),
		},
		Logger: LoggerConfig{
			Level:      logger.ParseLevel(getEnvOrDefault("LOG_LEVEL", "info")),
			OutputPath: getEnvOrDefault("LOG_OUTPUT", "stdout"),
			Format:     getEnvOrDefault("LOG_FORMAT", "json"),
		},
		HTTP: HTTPConfig{
			Addr:         getEnvOrDefault("HTTP_ADDR", ":8080"),
			JWTSecret:    os.Getenv("JWT_SECRET"),
			ReadTimeout:  readTimeout,
			WriteTimeout: writeTimeout,
		},
		Bot: BotConfig{
			TelegramToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
			RedisHost:     os.Getenv("REDIS_HOST"),
			RedisPort:     getEnvOrDefault("REDIS_PORT", "6379"),
		},
		Scheduler: SchedulerConfig{
			SnapshotEnabled: snapshotEnabled,
			SnapshotAt:      getEnvOrDefault("SNAPSHOT_AT", "00:15"),
		},
		Health: HealthConfig{
			DefaultWaterGoalMl: waterGoal,
			DefaultTimezone:    getEnvOrDefault("DEFAULT_TIMEZONE", "UTC"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every problem with the configuration at once.
func (c *Config) Validate() error {
	var errs []error

	switch c.DB.Driver {
	case "postgres":
		if c.DB.Host == "" || c.DB.DBName == "" {
			errs = append(errs, errors.New("DB_HOST and DB_NAME are required for postgres"))
		}
	case "sqlite":
		if c.DB.Path == "" {
			errs = append(errs, errors.New("DB_PATH is required for sqlite"))
		}
	default:
		errs = append(errs, fmt.Errorf("DB_DRIVER %q is not supported", c.DB.Driver))
	}

	if c.Logger.Format != "json" && c.Logger.Format != "text" {
		errs = append(errs, fmt.Errorf("LOG_FORMAT %q must be json or text", c.Logger.Format))
	}

	if len(c.HTTP.JWTSecret) < 16 {
		errs = append(errs, errors.New("JWT_SECRET must be at least 16 characters"))
	}
	if c.HTTP.ReadTimeout <= 0 || c.HTTP.WriteTimeout <= 0 {
		errs = append(errs, errors.New("HTTP timeouts must be positive"))
	}

	if c.Scheduler.SnapshotEnabled {
		if _, err := utils.TimeToMinutes(c.Scheduler.SnapshotAt); err != nil {
			errs = append(errs, fmt.Errorf("SNAPSHOT_AT: %w", err))
		}
	}

	if c.Health.DefaultWaterGoalMl <= 0 {
		errs = append(errs, errors.New("DEFAULT_WATER_GOAL_ML must be positive"))
	}
	if _, err := time.LoadLocation(c.Health.DefaultTimezone); err != nil {
		errs = append(errs, fmt.Errorf("DEFAULT_TIMEZONE: %w", err))
	}

	return errors.Join(errs...)
}

// DSN builds the postgres connection string.
func (d DBConfig) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		d.Host, d.User, d.Password, d.DBName, d.Port, d.SSLMode)
}

// RedisAddr returns host:port, or "" when redis is not configured.
func (b BotConfig) RedisAddr() string {
	if b.RedisHost == "" {
		return ""
	}
	return b.RedisHost + ":" + b.RedisPort
}

// Location resolves the fallback timezone.
func (h HealthConfig) Location() *time.Location {
	return utils.LoadLocation(h.DefaultTimezone, time.UTC)
}
