package handlers

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/vladimiradmaev/health-mate/internal/bot/menus"
	"github.com/vladimiradmaev/health-mate/internal/bot/state"
	"github.com/vladimiradmaev/health-mate/internal/logger"
)

// CommandHandler handles bot commands
type CommandHandler struct {
	*actions
}

// NewCommandHandler creates a new command handler
func NewCommandHandler(api menus.Sender, deps Dependencies, stateManager state.StateManager) *CommandHandler {
	return &CommandHandler{actions: &actions{api: api, deps: deps, stateManager: stateManager}}
}

// Handle processes a command message
func (h *CommandHandler) Handle(ctx context.Context, message *tgbotapi.Message, user User) error {
	logger.WithContext(ctx).Debug("Handling command", "command", message.Command())
	chatID := message.Chat.ID
	args := strings.TrimSpace(message.CommandArguments())

	switch message.Command() {
	case "start":
		h.reset(user)
		if user.IsNew {
			greeting := "👋 Welcome"
			if user.FirstName != "" {
				greeting += ", " + user.FirstName
			}
			if _, err := h.api.Send(tgbotapi.NewMessage(chatID, greeting+"! Your account is ready.")); err != nil {
				return err
			}
		}
		return menus.SendMainMenu(h.api, chatID)
	case "help":
		return h.handleHelp(chatID)
	case "score":
		return h.sendScore(ctx, chatID, user)
	case "streaks":
		return h.sendStreaks(ctx, chatID, user)
	case "achievements":
		return h.sendAchievements(ctx, chatID, user)
	case "water":
		if args == "" {
			return h.promptWater(chatID, user)
		}
		ml, err := strconv.Atoi(args)
		if err != nil {
			return h.prompt(chatID, "Please send the amount as a whole number of ml, for example: /water 250")
		}
		return h.logWater(ctx, chatID, user, ml)
	case "weight":
		if args == "" {
			return h.promptWeight(chatID, user)
		}
		kg, err := parseKg(args)
		if err != nil {
			return h.prompt(chatID, "Please send the weight in kg, for example: /weight 72.5")
		}
		return h.logWeight(ctx, chatID, user, kg)
	case "mood":
		return h.startMood(chatID, user)
	case "token":
		return h.handleToken(ctx, chatID, user)
	default:
		return h.handleUnknownCommand(chatID)
	}
}

func (h *CommandHandler) handleHelp(chatID int64) error {
	text := `Available commands:
/start - Show the main menu
/score - Today's health score
/streaks - Your current streaks
/achievements - Unlocked and pending achievements
/water <ml> - Log water, for example /water 250
/weight <kg> - Log your weight
/mood - Check in your mood
/token - Get a token for the web API
/help - Show this message`

	_, err := h.api.Send(tgbotapi.NewMessage(chatID, text))
	return err
}

func (h *CommandHandler) handleToken(ctx context.Context, chatID int64, user User) error {
	if h.deps.IssueToken == nil {
		return menus.SendText(h.api, chatID, "API access is not enabled.")
	}
	token, err := h.deps.IssueToken(user.ID)
	if err != nil {
		return replyError(ctx, h.api, chatID, err)
	}
	msg := tgbotapi.NewMessage(chatID, fmt.Sprintf("🔑 Your API token (keep it private):\n\n`%s`", token))
	msg.ParseMode = tgbotapi.ModeMarkdown
	_, err = h.api.Send(msg)
	return err
}

func (h *CommandHandler) handleUnknownCommand(chatID int64) error {
	_, err := h.api.Send(tgbotapi.NewMessage(chatID, "Unknown command. Use /help to see what I can do."))
	return err
}

func parseKg(s string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(s), ",", "."), 64)
}
