package keyboards

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Callback data of the inline buttons
const (
	Water250    = "water_250"
	Water500    = "water_500"
	WaterCustom = "water_custom"
	Mood        = "mood"
	Weight      = "weight"
	Score       = "score"
	Streaks     = "streaks"
	MainMenuKey = "main_menu"
)

// MainMenu creates the main menu keyboard
func MainMenu() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("💧 +250 ml", Water250),
			tgbotapi.NewInlineKeyboardButtonData("💧 +500 ml", Water500),
			tgbotapi.NewInlineKeyboardButtonData("💧 Other", WaterCustom),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🙂 Mood", Mood),
			tgbotapi.NewInlineKeyboardButtonData("⚖️ Weight", Weight),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📊 Today's score", Score),
			tgbotapi.NewInlineKeyboardButtonData("🔥 Streaks", Streaks),
		),
	)
}

// BackMenu offers a way back to the main menu
func BackMenu() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("◀️ Main menu", MainMenuKey),
		),
	)
}
