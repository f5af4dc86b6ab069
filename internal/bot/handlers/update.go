package handlers

import (
	"context"
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/vladimiradmaev/health-mate/internal/bot/menus"
	"github.com/vladimiradmaev/health-mate/internal/bot/state"
	"github.com/vladimiradmaev/health-mate/internal/logger"
)

// UpdateHandler handles telegram updates and coordinates other handlers
type UpdateHandler struct {
	api             menus.Sender
	deps            Dependencies
	callbackHandler *CallbackHandler
	commandHandler  *CommandHandler
	textHandler     *TextHandler
	log             *slog.Logger
}

// NewUpdateHandler creates a new update handler
func NewUpdateHandler(api menus.Sender, deps Dependencies, stateManager state.StateManager, log *slog.Logger) *UpdateHandler {
	if log == nil {
		log = slog.Default()
	}
	return &UpdateHandler{
		api:             api,
		deps:            deps,
		callbackHandler: NewCallbackHandler(api, deps, stateManager),
		commandHandler:  NewCommandHandler(api, deps, stateManager),
		textHandler:     NewTextHandler(api, deps, stateManager),
		log:             log,
	}
}

// Handle processes a telegram update
func (h *UpdateHandler) Handle(ctx context.Context, update tgbotapi.Update) error {
	if update.Message == nil && update.CallbackQuery == nil {
		return nil
	}

	from := update.SentFrom()
	chat := update.FromChat()
	if from == nil || chat == nil {
		return nil
	}

	userID, isNew, err := h.deps.Users.RegisterTelegramUser(ctx, from.ID, from.UserName, from.FirstName)
	if err != nil {
		return fmt.Errorf("failed to get/create user: %w", err)
	}
	user := User{TelegramID: from.ID, ID: userID, FirstName: from.FirstName, IsNew: isNew}
	ctx = logger.IntoContext(ctx, h.log.With("telegram_id", from.ID, "user_id", userID))

	if update.CallbackQuery != nil {
		return h.callbackHandler.Handle(ctx, update.CallbackQuery, user)
	}

	if update.Message.IsCommand() {
		return h.commandHandler.Handle(ctx, update.Message, user)
	}

	if update.Message.Text != "" {
		return h.textHandler.Handle(ctx, update.Message, user)
	}

	_, err = h.api.Send(tgbotapi.NewMessage(chat.ID, "I can only read text. Please use the menu."))
	return err
}
