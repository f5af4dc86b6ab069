package handlers

import (
	"context"
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/vladimiradmaev/health-mate/internal/bot/keyboards"
	"github.com/vladimiradmaev/health-mate/internal/bot/menus"
	"github.com/vladimiradmaev/health-mate/internal/bot/state"
	"github.com/vladimiradmaev/health-mate/internal/services"
)

// actions are the steps shared by commands, buttons and text replies
type actions struct {
	api          menus.Sender
	deps         Dependencies
	stateManager state.StateManager
}

func (a *actions) reset(user User) {
	a.stateManager.ClearUserState(user.TelegramID)
	a.stateManager.ClearTempData(user.TelegramID)
}

func (a *actions) prompt(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = keyboards.BackMenu()
	_, err := a.api.Send(msg)
	return err
}

func (a *actions) logWater(ctx context.Context, chatID int64, user User, amountMl int) error {
	rec, err := a.deps.Water.LogWater(ctx, user.ID, amountMl, time.Time{})
	if err != nil {
		return replyError(ctx, a.api, chatID, err)
	}
	a.reset(user)

	text := fmt.Sprintf("💧 Logged %d ml.", amountMl)
	if day, err := a.deps.Water.Day(ctx, user.ID, rec.Date); err == nil {
		text += fmt.Sprintf(" Today: %d/%d ml (%d%%)", day.TotalMl, day.GoalMl, day.Percent)
		if day.TotalMl >= day.GoalMl && day.TotalMl-amountMl < day.GoalMl {
			text += "\n🎉 Daily goal reached!"
		}
	}
	return menus.SendText(a.api, chatID, text)
}

func (a *actions) promptWater(chatID int64, user User) error {
	a.stateManager.SetUserState(user.TelegramID, state.WaitingForWaterAmount)
	return a.prompt(chatID, "How much water did you drink, in ml? (for example: 330)")
}

func (a *actions) startMood(chatID int64, user User) error {
	a.stateManager.ClearTempData(user.TelegramID)
	a.stateManager.SetUserState(user.TelegramID, state.WaitingForMood)
	return a.prompt(chatID, "🙂 How is your mood today, from 1 (awful) to 10 (great)?")
}

func (a *actions) logMood(ctx context.Context, chatID int64, user User, stress int) error {
	mood, _ := state.TempInt(a.stateManager, user.TelegramID, "mood")
	energy, _ := state.TempInt(a.stateManager, user.TelegramID, "energy")

	m, err := a.deps.Moods.Log(ctx, user.ID, services.MoodInput{
		MoodLevel:   mood,
		EnergyLevel: energy,
		StressLevel: stress,
	})
	a.reset(user)
	if err != nil {
		return replyError(ctx, a.api, chatID, err)
	}
	return menus.SendText(a.api, chatID, fmt.Sprintf("✅ Mood saved for %s: mood %d, energy %d, stress %d",
		m.Date, m.MoodLevel, m.EnergyLevel, m.StressLevel))
}

func (a *actions) promptWeight(chatID int64, user User) error {
	a.stateManager.SetUserState(user.TelegramID, state.WaitingForWeight)
	return a.prompt(chatID, "⚖️ What is your weight in kg? (for example: 72.5)")
}

func (a *actions) logWeight(ctx context.Context, chatID int64, user User, kg float64) error {
	e, err := a.deps.Weight.AddEntry(ctx, user.ID, services.WeightEntryInput{WeightKg: kg})
	if err != nil {
		return replyError(ctx, a.api, chatID, err)
	}
	a.reset(user)

	text := fmt.Sprintf("✅ Weight %.1f kg saved for %s", e.WeightKg, e.Date)
	if p, err := a.deps.Weight.Progress(ctx, user.ID); err == nil && p != nil {
		text += fmt.Sprintf("\n🎯 Goal %.1f kg: %d%% done, %.1f kg to go", p.Target, p.Percentage, p.Remaining)
	}
	return menus.SendText(a.api, chatID, text)
}

func (a *actions) sendScore(ctx context.Context, chatID int64, user User) error {
	score, err := a.deps.Progress.ComputeHealthScore(ctx, user.ID, "")
	if err != nil {
		return replyError(ctx, a.api, chatID, err)
	}
	return menus.SendText(a.api, chatID, menus.FormatScore(score))
}

func (a *actions) sendStreaks(ctx context.Context, chatID int64, user User) error {
	standings, err := a.deps.Progress.Streaks(ctx, user.ID)
	if err != nil {
		return replyError(ctx, a.api, chatID, err)
	}
	return menus.SendText(a.api, chatID, menus.FormatStreaks(standings))
}

func (a *actions) sendAchievements(ctx context.Context, chatID int64, user User) error {
	list, err := a.deps.Progress.Achievements(ctx, user.ID)
	if err != nil {
		return replyError(ctx, a.api, chatID, err)
	}
	return menus.SendText(a.api, chatID, menus.FormatAchievements(list))
}
