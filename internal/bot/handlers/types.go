package handlers

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"github.com/vladimiradmaev/health-mate/internal/bot/menus"
	apperrors "github.com/vladimiradmaev/health-mate/internal/errors"
	"github.com/vladimiradmaev/health-mate/internal/interfaces"
	"github.com/vladimiradmaev/health-mate/internal/logger"
)

// Dependencies holds all service dependencies for handlers
type Dependencies struct {
	Users    interfaces.UserServiceInterface
	Progress interfaces.ProgressServiceInterface
	Water    interfaces.WaterServiceInterface
	Moods    interfaces.MoodServiceInterface
	Weight   interfaces.WeightServiceInterface
	// IssueToken signs an API token; nil disables /token.
	IssueToken func(userID uuid.UUID) (string, error)
}

// User is the sender of an update, resolved to an account
type User struct {
	TelegramID int64
	ID         uuid.UUID
	FirstName  string
	IsNew      bool
}

// replyError tells the user what went wrong. Validation messages are shown
// as is; everything else gets a generic apology and is logged.
func replyError(ctx context.Context, api menus.Sender, chatID int64, err error) error {
	text := "Something went wrong. Please try again later."
	if apperrors.IsValidation(err) || apperrors.IsNotFound(err) {
		_, msg := apperrors.PublicMessage(err)
		text = "⚠️ " + msg
	} else {
		apperrors.NewHandler(logger.WithContext(ctx)).Handle(ctx, err)
	}
	_, sendErr := api.Send(tgbotapi.NewMessage(chatID, text))
	return sendErr
}
