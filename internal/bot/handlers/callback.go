package handlers

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/vladimiradmaev/health-mate/internal/bot/keyboards"
	"github.com/vladimiradmaev/health-mate/internal/bot/menus"
	"github.com/vladimiradmaev/health-mate/internal/bot/state"
)

// CallbackHandler handles callback query messages
type CallbackHandler struct {
	*actions
}

// NewCallbackHandler creates a new callback handler
func NewCallbackHandler(api menus.Sender, deps Dependencies, stateManager state.StateManager) *CallbackHandler {
	return &CallbackHandler{actions: &actions{api: api, deps: deps, stateManager: stateManager}}
}

// Handle processes a callback query
func (h *CallbackHandler) Handle(ctx context.Context, query *tgbotapi.CallbackQuery, user User) error {
	// Answer the callback query first
	callback := tgbotapi.NewCallback(query.ID, "")
	if _, err := h.api.Request(callback); err != nil {
		return err
	}
	if query.Message == nil {
		return nil
	}
	chatID := query.Message.Chat.ID

	switch query.Data {
	case keyboards.Water250:
		return h.logWater(ctx, chatID, user, 250)
	case keyboards.Water500:
		return h.logWater(ctx, chatID, user, 500)
	case keyboards.WaterCustom:
		return h.promptWater(chatID, user)
	case keyboards.Mood:
		return h.startMood(chatID, user)
	case keyboards.Weight:
		return h.promptWeight(chatID, user)
	case keyboards.Score:
		return h.sendScore(ctx, chatID, user)
	case keyboards.Streaks:
		return h.sendStreaks(ctx, chatID, user)
	case keyboards.MainMenuKey:
		h.reset(user)
		return menus.SendMainMenu(h.api, chatID)
	default:
		_, err := h.api.Send(tgbotapi.NewMessage(chatID, "This button is no longer available."))
		return err
	}
}
