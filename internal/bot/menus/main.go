package menus

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/vladimiradmaev/health-mate/internal/bot/keyboards"
	"github.com/vladimiradmaev/health-mate/internal/domain"
	"github.com/vladimiradmaev/health-mate/internal/health"
	"github.com/vladimiradmaev/health-mate/internal/services"
	"github.com/vladimiradmaev/health-mate/internal/streak"
)

// Sender is the part of the telegram API the bot uses
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// SendMainMenu sends the main menu to a chat
func SendMainMenu(api Sender, chatID int64) error {
	text := `🌱 *HealthMate* keeps your daily habits in one place

💧 Log water with one tap
🙂 Check in your mood, energy and stress
⚖️ Record your weight
📊 See today's health score and your streaks

Choose an action:`

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.ReplyMarkup = keyboards.MainMenu()
	_, err := api.Send(msg)
	return err
}

// SendText sends a plain message with a way back to the menu
func SendText(api Sender, chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = keyboards.BackMenu()
	_, err := api.Send(msg)
	return err
}

// FormatScore renders a day's health score
func FormatScore(s domain.HealthScore) string {
	return fmt.Sprintf(`📊 Health score for %s: %d/100 (%s)

😴 Sleep: %d/%d
🏃 Exercise: %d/%d
🥗 Nutrition: %d/%d
💧 Water: %d/%d`,
		s.Date, s.TotalScore, health.Label(s.TotalScore),
		s.SleepScore, health.MaxPerMetric,
		s.ExerciseScore, health.MaxPerMetric,
		s.NutritionScore, health.MaxPerMetric,
		s.WaterScore, health.MaxPerMetric,
	)
}

var streakNames = map[domain.StreakType]string{
	domain.StreakWorkout: "🏃 Workout",
	domain.StreakSleep:   "😴 Sleep",
	domain.StreakWater:   "💧 Water",
	domain.StreakDiet:    "🥗 Diet",
	domain.StreakMood:    "🙂 Mood",
	domain.StreakJournal: "📓 Journal",
}

// FormatStreaks renders streak standings, one line per type
func FormatStreaks(standings []streak.Standing) string {
	var b strings.Builder
	b.WriteString("🔥 Your streaks\n")
	for _, s := range standings {
		name, ok := streakNames[s.Type]
		if !ok {
			name = string(s.Type)
		}
		fmt.Fprintf(&b, "\n%s: %d %s (best %d)", name, s.Current, days(s.Current), s.Longest)
	}
	return b.String()
}

// FormatAchievements lists unlocked achievements first, then the rest with progress
func FormatAchievements(list []services.AchievementView) string {
	var unlocked, locked []services.AchievementView
	for _, a := range list {
		if a.Unlocked {
			unlocked = append(unlocked, a)
		} else {
			locked = append(locked, a)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🏆 Achievements %d/%d\n", len(unlocked), len(list))
	for _, a := range unlocked {
		fmt.Fprintf(&b, "\n✅ %s - %s", a.Title, a.Description)
	}
	for _, a := range locked {
		fmt.Fprintf(&b, "\n▫️ %s %d/%d - %s", a.Title, a.Progress, a.Target, a.Description)
	}
	return b.String()
}

func days(n int) string {
	if n == 1 {
		return "day"
	}
	return "days"
}
