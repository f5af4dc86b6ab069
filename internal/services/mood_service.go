package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/vladimiradmaev/health-mate/internal/domain"
)

type MoodInput struct {
	Date        string `json:"date"`
	MoodLevel   int    `json:"moodLevel"`
	EnergyLevel int    `json:"energyLevel"`
	StressLevel int    `json:"stressLevel"`
	Notes       string `json:"notes"`
}

func (in MoodInput) validate() error {
	if err := validateLevel(in.MoodLevel, "mood level"); err != nil {
		return err
	}
	if err := validateLevel(in.EnergyLevel, "energy level"); err != nil {
		return err
	}
	return validateLevel(in.StressLevel, "stress level")
}

type MoodService struct {
	moods   domain.MoodRepository
	streaks StreakUpdater
	cal     *Calendar
	log     *slog.Logger
}

func NewMoodService(moods domain.MoodRepository, streaks StreakUpdater, cal *Calendar, log *slog.Logger) *MoodService {
	if log == nil {
		log = slog.Default()
	}
	return &MoodService{moods: moods, streaks: streaks, cal: cal, log: log}
}

// Log stores the day's mood, replacing any earlier log for the same day.
func (s *MoodService) Log(ctx context.Context, userID uuid.UUID, in MoodInput) (domain.MoodLog, error) {
	if err := requireUser(userID); err != nil {
		return domain.MoodLog{}, err
	}
	if in.Date == "" {
		in.Date = s.cal.Today(ctx, userID)
	}
	if err := s.cal.activityDate(ctx, userID, in.Date, "date"); err != nil {
		return domain.MoodLog{}, err
	}
	if err := in.validate(); err != nil {
		return domain.MoodLog{}, err
	}

	stored, err := s.moods.Upsert(ctx, &domain.MoodLog{
		UserID:      userID,
		Date:        in.Date,
		MoodLevel:   in.MoodLevel,
		EnergyLevel: in.EnergyLevel,
		StressLevel: in.StressLevel,
		Notes:       in.Notes,
	})
	if err != nil {
		return domain.MoodLog{}, repoErr(err, "mood log")
	}
	if _, err := s.streaks.UpdateStreak(ctx, userID, domain.StreakMood, in.Date); err != nil {
		s.log.Warn("Failed to update mood streak", "user_id", userID, "date", in.Date, "error", err)
	}
	return stored, nil
}

// Today returns today's mood log, or nil when none was logged.
func (s *MoodService) Today(ctx context.Context, userID uuid.UUID) (*domain.MoodLog, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	m, err := s.moods.GetOn(ctx, userID, s.cal.Today(ctx, userID))
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, repoErr(err, "mood log")
	}
	return m, nil
}

func (s *MoodService) History(ctx context.Context, userID uuid.UUID, limit int) ([]domain.MoodLog, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	out, err := s.moods.ListRecent(ctx, userID, clampLimit(limit, 30, 365))
	if err != nil {
		return nil, repoErr(err, "mood log")
	}
	return out, nil
}

func (s *MoodService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if err := requireUser(userID); err != nil {
		return err
	}
	return repoErr(s.moods.Delete(ctx, userID, id), "mood log")
}
