package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/vladimiradmaev/health-mate/internal/domain"
	apperrors "github.com/vladimiradmaev/health-mate/internal/errors"
)

// UserService links telegram accounts to users.
type UserService struct {
	links       domain.TelegramLinkRepository
	profiles    domain.ProfileRepository
	defaultGoal int
	log         *slog.Logger
}

func NewUserService(links domain.TelegramLinkRepository, profiles domain.ProfileRepository, defaultGoal int, log *slog.Logger) *UserService {
	if log == nil {
		log = slog.Default()
	}
	return &UserService{links: links, profiles: profiles, defaultGoal: defaultGoal, log: log}
}

// RegisterTelegramUser returns the user linked to telegramID, creating the
// user and an empty profile on first contact.
func (s *UserService) RegisterTelegramUser(ctx context.Context, telegramID int64, username, firstName string) (uuid.UUID, bool, error) {
	link, err := s.links.GetByTelegramID(ctx, telegramID)
	if err == nil {
		return link.UserID, false, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return uuid.Nil, false, apperrors.NewDatabaseError(err)
	}

	userID := uuid.New()
	profile := &domain.Profile{
		UserID:      userID,
		Name:        firstName,
		WaterGoalMl: s.defaultGoal,
	}
	if err := s.profiles.Save(ctx, profile); err != nil {
		return uuid.Nil, false, apperrors.NewDatabaseError(err)
	}

	link = &domain.TelegramLink{
		TelegramID: telegramID,
		UserID:     userID,
		Username:   username,
		FirstName:  firstName,
	}
	if err := s.links.Create(ctx, link); err != nil {
		return uuid.Nil, false, apperrors.NewDatabaseError(err)
	}

	s.log.Info("Registered telegram user", "telegram_id", telegramID, "user_id", userID)
	return userID, true, nil
}

// UserByTelegramID resolves a linked telegram account.
func (s *UserService) UserByTelegramID(ctx context.Context, telegramID int64) (uuid.UUID, error) {
	link, err := s.links.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return uuid.Nil, repoErr(err, "telegram user")
	}
	return link.UserID, nil
}
