package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/vladimiradmaev/health-mate/internal/config"
)

func main() {
	fmt.Println("🔍 Checking configuration...")

	if err := godotenv.Load(); err != nil {
		fmt.Printf("⚠️  .env file not found: %v\n", err)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("❌ Configuration is invalid:\n%v\n", err)
		os.Exit(1)
	}

	fmt.Println("✅ Configuration is valid!")
	fmt.Printf("📋 Details:\n")
	fmt.Printf("  - DB Driver: %s\n", cfg.DB.Driver)
	if cfg.DB.Driver == "sqlite" {
		fmt.Printf("  - DB Path: %s\n", cfg.DB.Path)
	} else {
		fmt.Printf("  - DB Host: %s:%s\n", cfg.DB.Host, cfg.DB.Port)
		fmt.Printf("  - DB User: %s\n", cfg.DB.User)
		fmt.Printf("  - DB Name: %s\n", cfg.DB.DBName)
	}
	fmt.Printf("  - HTTP Addr: %s\n", cfg.HTTP.Addr)
	fmt.Printf("  - JWT Secret: %s\n", maskToken(cfg.HTTP.JWTSecret))
	fmt.Printf("  - Telegram Token: %s\n", maskToken(cfg.Bot.TelegramToken))
	if addr := cfg.Bot.RedisAddr(); addr != "" {
		fmt.Printf("  - Bot State: redis at %s\n", addr)
	} else {
		fmt.Printf("  - Bot State: in memory\n")
	}
	if cfg.Scheduler.SnapshotEnabled {
		fmt.Printf("  - Score Snapshot: daily at %s\n", cfg.Scheduler.SnapshotAt)
	} else {
		fmt.Printf("  - Score Snapshot: off\n")
	}
	fmt.Printf("  - Default Water Goal: %d ml\n", cfg.Health.DefaultWaterGoalMl)
	fmt.Printf("  - Default Timezone: %s\n", cfg.Health.DefaultTimezone)
	fmt.Printf("  - Log Level: %v\n", cfg.Logger.Level)
	fmt.Printf("  - Log Output: %s\n", cfg.Logger.OutputPath)
	fmt.Printf("  - Log Format: %s\n", cfg.Logger.Format)
}

func maskToken(token string) string {
	if token == "" {
		return "<not set>"
	}
	if len(token) <= 8 {
		return "***"
	}
	return token[:4] + "..." + token[len(token)-4:]
}
