package services

import (
	"context"
	"errors"
	"math"
	"strings"

	"github.com/google/uuid"
	"github.com/vladimiradmaev/health-mate/internal/domain"
	apperrors "github.com/vladimiradmaev/health-mate/internal/errors"
	"github.com/vladimiradmaev/health-mate/internal/utils"
)

// StreakUpdater records one activity day on a persisted streak.
type StreakUpdater interface {
	UpdateStreak(ctx context.Context, userID uuid.UUID, st domain.StreakType, day string) (domain.StreakRecord, error)
}

// repoErr converts a repository error into an AppError.
func repoErr(err error, entity string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrNotFound) {
		return apperrors.NewNotFoundError(entity)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return apperrors.NewTimeoutError(entity+" query", err)
	}
	return apperrors.NewDatabaseError(err).WithContext("entity", entity)
}

func requireUser(userID uuid.UUID) error {
	if userID == uuid.Nil {
		return apperrors.NewValidationError("user id is required")
	}
	return nil
}

func validateDate(date, field string) error {
	if !utils.ValidDate(date) {
		return apperrors.NewValidationError(field + " must be a YYYY-MM-DD date")
	}
	return nil
}

func validateLevel(v int, field string) error {
	if v < 1 || v > 10 {
		return apperrors.NewValidationError(field + " must be between 1 and 10")
	}
	return nil
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func orDefault(s, def string) string {
	if blank(s) {
		return def
	}
	return strings.TrimSpace(s)
}
