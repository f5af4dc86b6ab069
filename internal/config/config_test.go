package config

import (
	"strings"
	"testing"
	"time"

	"github.com/vladimiradmaev/health-mate/internal/logger"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_PATH", ":memory:")
	t.Setenv("JWT_SECRET", "0123456789abcdef0123")
}

func TestLoadDefaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTP.Addr != ":8080" {
		t.Errorf("Addr = %s", cfg.HTTP.Addr)
	}
	if cfg.HTTP.ReadTimeout != 10*time.Second {
		t.Errorf("ReadTimeout = %v", cfg.HTTP.ReadTimeout)
	}
	if cfg.Health.DefaultWaterGoalMl != 2000 {
		t.Errorf("DefaultWaterGoalMl = %d", cfg.Health.DefaultWaterGoalMl)
	}
	if cfg.Logger.Level != logger.LevelInfo {
		t.Errorf("Level = %v", cfg.Logger.Level)
	}
	if cfg.Scheduler.SnapshotEnabled {
		t.Error("snapshot should be off by default")
	}
	if cfg.Bot.RedisAddr() != "" {
		t.Error("redis should be off by default")
	}
}

func TestLoadOverrides(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("DEFAULT_WATER_GOAL_ML", "2500")
	t.Setenv("SNAPSHOT_ENABLED", "true")
	t.Setenv("SNAPSHOT_AT", "01:30")
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("DEFAULT_TIMEZONE", "Europe/Berlin")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Logger.Level != logger.LevelDebug {
		t.Errorf("Level = %v", cfg.Logger.Level)
	}
	if cfg.Health.DefaultWaterGoalMl != 2500 {
		t.Errorf("DefaultWaterGoalMl = %d", cfg.Health.DefaultWaterGoalMl)
	}
	if !cfg.Scheduler.SnapshotEnabled || cfg.Scheduler.SnapshotAt != "01:30" {
		t.Errorf("scheduler = %+v", cfg.Scheduler)
	}
	if cfg.Bot.RedisAddr() != "cache:6379" {
		t.Errorf("RedisAddr = %s", cfg.Bot.RedisAddr())
	}
	if cfg.Health.Location().String() != "Europe/Berlin" {
		t.Errorf("Location = %s", cfg.Health.Location())
	}
}

func TestLoadRejectsBadNumbers(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("DEFAULT_WATER_GOAL_ML", "lots")
	t.Setenv("HTTP_READ_TIMEOUT", "soon")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error")
	}
	for _, key := range []string{"DEFAULT_WATER_GOAL_ML", "HTTP_READ_TIMEOUT"} {
		if !strings.Contains(err.Error(), key) {
			t.Errorf("error %q does not mention %s", err, key)
		}
	}
}

func TestValidateCollectsAllProblems(t *testing.T) {
	cfg := &Config{
		DB:     DBConfig{Driver: "mysql"},
		Logger: LoggerConfig{Format: "xml"},
		HTTP:   HTTPConfig{JWTSecret: "short", ReadTimeout: time.Second, WriteTimeout: time.Second},
		Scheduler: SchedulerConfig{
			SnapshotEnabled: true,
			SnapshotAt:      "99:99",
		},
		Health: HealthConfig{DefaultWaterGoalMl: 0, DefaultTimezone: "UTC"},
	}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	for _, want := range []string{"DB_DRIVER", "LOG_FORMAT", "JWT_SECRET", "SNAPSHOT_AT", "DEFAULT_WATER_GOAL_ML"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("missing %s in %q", want, err)
		}
	}
}

func TestDSN(t *testing.T) {
	d := DBConfig{Host: "db", Port: "5433", User: "u", Password: "p", DBName: "n", SSLMode: "require"}
	want := "host=db user=u password=p dbname=n port=5433 sslmode=require"
	if got := d.DSN(); got != want {
		t.Fatalf("DSN = %q", got)
	}
}
