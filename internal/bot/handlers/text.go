package handlers

import (
	"context"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/vladimiradmaev/health-mate/internal/bot/menus"
	"github.com/vladimiradmaev/health-mate/internal/bot/state"
)

// TextHandler handles text replies in the middle of a conversation
type TextHandler struct {
	*actions
}

// NewTextHandler creates a new text handler
func NewTextHandler(api menus.Sender, deps Dependencies, stateManager state.StateManager) *TextHandler {
	return &TextHandler{actions: &actions{api: api, deps: deps, stateManager: stateManager}}
}

// Handle processes a text message
func (h *TextHandler) Handle(ctx context.Context, message *tgbotapi.Message, user User) error {
	chatID := message.Chat.ID
	text := strings.TrimSpace(message.Text)

	switch h.stateManager.GetUserState(user.TelegramID) {
	case state.WaitingForWaterAmount:
		ml, err := strconv.Atoi(text)
		if err != nil {
			return h.prompt(chatID, "Please enter a whole number of ml (for example: 330)")
		}
		return h.logWater(ctx, chatID, user, ml)

	case state.WaitingForMood:
		return h.handleLevel(chatID, user, text, "mood", state.WaitingForEnergy,
			"⚡ And your energy, from 1 (drained) to 10 (full of energy)?")

	case state.WaitingForEnergy:
		return h.handleLevel(chatID, user, text, "energy", state.WaitingForStress,
			"😮‍💨 How stressed do you feel, from 1 (calm) to 10 (very stressed)?")

	case state.WaitingForStress:
		stress, ok := parseLevel(text)
		if !ok {
			return h.prompt(chatID, "Please enter a number from 1 to 10")
		}
		return h.logMood(ctx, chatID, user, stress)

	case state.WaitingForWeight:
		kg, err := parseKg(text)
		if err != nil {
			return h.prompt(chatID, "Please enter your weight in kg (for example: 72.5)")
		}
		return h.logWeight(ctx, chatID, user, kg)

	default:
		return h.handleDefaultText(chatID)
	}
}

func (h *TextHandler) handleLevel(chatID int64, user User, text, key, next, question string) error {
	level, ok := parseLevel(text)
	if !ok {
		return h.prompt(chatID, "Please enter a number from 1 to 10")
	}
	h.stateManager.SetTempData(user.TelegramID, key, level)
	h.stateManager.SetUserState(user.TelegramID, next)
	return h.prompt(chatID, question)
}

func (h *TextHandler) handleDefaultText(chatID int64) error {
	if _, err := h.api.Send(tgbotapi.NewMessage(chatID, "Please use the menu to choose an action.")); err != nil {
		return err
	}
	return menus.SendMainMenu(h.api, chatID)
}

func parseLevel(s string) (int, bool) {
	v, err := strconv.Atoi(s)
	if err != nil || v < 1 || v > 10 {
		return 0, false
	}
	return v, true
}
