package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/vladimiradmaev/health-mate/internal/domain"
	apperrors "github.com/vladimiradmaev/health-mate/internal/errors"
)

type SleepInput struct {
	SleepStart time.Time `json:"sleepStart"`
	SleepEnd   time.Time `json:"sleepEnd"`
	Quality    int       `json:"quality"`
	Notes      string    `json:"notes"`
}

// duration returns hours slept rounded to one decimal.
func (in SleepInput) duration() (float64, error) {
	if in.SleepStart.IsZero() || in.SleepEnd.IsZero() {
		return 0, apperrors.NewValidationError("sleep start and end are required")
	}
	hours := round1(in.SleepEnd.Sub(in.SleepStart).Hours())
	if hours <= 0 {
		return 0, apperrors.NewValidationError("sleep end must be after sleep start")
	}
	if hours > 24 {
		return 0, apperrors.NewValidationError("a single sleep cannot exceed 24 hours")
	}
	if in.Quality != 0 {
		if err := validateLevel(in.Quality, "quality"); err != nil {
			return 0, err
		}
	}
	return hours, nil
}

type SleepService struct {
	sleep   domain.SleepRepository
	streaks StreakUpdater
	cal     *Calendar
	log     *slog.Logger
}

func NewSleepService(sleep domain.SleepRepository, streaks StreakUpdater, cal *Calendar, log *slog.Logger) *SleepService {
	if log == nil {
		log = slog.Default()
	}
	return &SleepService{sleep: sleep, streaks: streaks, cal: cal, log: log}
}

func (s *SleepService) Create(ctx context.Context, userID uuid.UUID, in SleepInput) (domain.SleepRecord, error) {
	if err := requireUser(userID); err != nil {
		return domain.SleepRecord{}, err
	}
	hours, err := in.duration()
	if err != nil {
		return domain.SleepRecord{}, err
	}

	rec := domain.SleepRecord{
		UserID:        userID,
		SleepDate:     s.cal.DateOf(ctx, userID, in.SleepStart),
		SleepStart:    in.SleepStart,
		SleepEnd:      in.SleepEnd,
		DurationHours: hours,
		Quality:       in.Quality,
		Notes:         in.Notes,
	}
	if err := s.cal.activityDate(ctx, userID, rec.SleepDate, "sleep start"); err != nil {
		return domain.SleepRecord{}, err
	}
	if err := s.sleep.Create(ctx, &rec); err != nil {
		return domain.SleepRecord{}, repoErr(err, "sleep log")
	}
	s.touchStreak(ctx, userID, rec.SleepDate)
	return rec, nil
}

func (s *SleepService) Update(ctx context.Context, userID, id uuid.UUID, in SleepInput) (domain.SleepRecord, error) {
	if err := requireUser(userID); err != nil {
		return domain.SleepRecord{}, err
	}
	hours, err := in.duration()
	if err != nil {
		return domain.SleepRecord{}, err
	}
	day := s.cal.DateOf(ctx, userID, in.SleepStart)
	if err := s.cal.activityDate(ctx, userID, day, "sleep start"); err != nil {
		return domain.SleepRecord{}, err
	}
	rec, err := s.sleep.Get(ctx, userID, id)
	if err != nil {
		return domain.SleepRecord{}, repoErr(err, "sleep log")
	}

	rec.SleepDate = day
	rec.SleepStart = in.SleepStart
	rec.SleepEnd = in.SleepEnd
	rec.DurationHours = hours
	rec.Quality = in.Quality
	rec.Notes = in.Notes
	if err := s.sleep.Update(ctx, rec); err != nil {
		return domain.SleepRecord{}, repoErr(err, "sleep log")
	}
	return *rec, nil
}

func (s *SleepService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if err := requireUser(userID); err != nil {
		return err
	}
	return repoErr(s.sleep.Delete(ctx, userID, id), "sleep log")
}

// List returns sleeps that started between from and to, defaulting to the last 30 days.
func (s *SleepService) List(ctx context.Context, userID uuid.UUID, from, to string) ([]domain.SleepRecord, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	from, to, err := s.cal.resolveRange(ctx, userID, from, to, 30)
	if err != nil {
		return nil, err
	}
	out, err := s.sleep.ListRange(ctx, userID, from, to)
	if err != nil {
		return nil, repoErr(err, "sleep log")
	}
	return out, nil
}

func (s *SleepService) touchStreak(ctx context.Context, userID uuid.UUID, day string) {
	if _, err := s.streaks.UpdateStreak(ctx, userID, domain.StreakSleep, day); err != nil {
		s.log.Warn("Failed to update sleep streak", "user_id", userID, "date", day, "error", err)
	}
}
