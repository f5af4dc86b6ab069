package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/vladimiradmaev/health-mate/internal/domain"
	apperrors "github.com/vladimiradmaev/health-mate/internal/errors"
)

// MaxWaterLogMl caps a single water log.
const MaxWaterLogMl = 5000

// WaterDay is a day's water intake against the goal.
type WaterDay struct {
	Date    string                  `json:"date"`
	Logs    []domain.WaterLogRecord `json:"logs"`
	TotalMl int                     `json:"totalMl"`
	GoalMl  int                     `json:"goalMl"`
	Percent int                     `json:"percent"`
}

// DayTotal is one day of a series.
type DayTotal struct {
	Date    string `json:"date"`
	TotalMl int    `json:"totalMl"`
}

type WaterService struct {
	water    domain.WaterRepository
	profiles domain.ProfileRepository
	streaks     StreakUpdater
	defaultGoal int
	cal         *Calendar
	log         *slog.Logger
}

func NewWaterService(water domain.WaterRepository, profiles domain.ProfileRepository, streaks StreakUpdater, defaultGoal int, cal *Calendar, log *slog.Logger) *WaterService {
	if log == nil {
		log = slog.Default()
	}
	return &WaterService{water: water, profiles: profiles, streaks: streaks, defaultGoal: defaultGoal, cal: cal, log: log}
}

// LogWater records an intake at the given instant (now when zero). Reaching the
// day's goal counts the day toward the water streak.
func (s *WaterService) LogWater(ctx context.Context, userID uuid.UUID, amountMl int, at time.Time) (domain.WaterLogRecord, error) {
	if err := requireUser(userID); err != nil {
		return domain.WaterLogRecord{}, err
	}
	if amountMl <= 0 || amountMl > MaxWaterLogMl {
		return domain.WaterLogRecord{}, apperrors.NewValidationError("amount must be between 1 and 5000 ml")
	}
	if at.IsZero() {
		at = s.cal.Now()
	}

	rec := domain.WaterLogRecord{
		UserID:   userID,
		Date:     s.cal.DateOf(ctx, userID, at),
		AmountMl: amountMl,
		LoggedAt: at,
	}
	if err := s.cal.activityDate(ctx, userID, rec.Date, "logged at"); err != nil {
		return domain.WaterLogRecord{}, err
	}
	if err := s.water.Create(ctx, &rec); err != nil {
		return domain.WaterLogRecord{}, repoErr(err, "water log")
	}

	day, err := s.Day(ctx, userID, rec.Date)
	if err != nil {
		s.log.Warn("Could not total water intake", "user_id", userID, "date", rec.Date, "error", err)
		return rec, nil
	}
	if day.TotalMl >= day.GoalMl {
		if _, err := s.streaks.UpdateStreak(ctx, userID, domain.StreakWater, rec.Date); err != nil {
			s.log.Warn("Failed to update water streak", "user_id", userID, "date", rec.Date, "error", err)
		}
	}
	return rec, nil
}

func (s *WaterService) DeleteWater(ctx context.Context, userID, id uuid.UUID) error {
	if err := requireUser(userID); err != nil {
		return err
	}
	return repoErr(s.water.Delete(ctx, userID, id), "water log")
}

// Day returns the logs and progress for date.
func (s *WaterService) Day(ctx context.Context, userID uuid.UUID, date string) (WaterDay, error) {
	if err := requireUser(userID); err != nil {
		return WaterDay{}, err
	}
	if date == "" {
		date = s.cal.Today(ctx, userID)
	}
	if err := validateDate(date, "date"); err != nil {
		return WaterDay{}, err
	}

	logs, err := s.water.ListOn(ctx, userID, date)
	if err != nil {
		return WaterDay{}, repoErr(err, "water log")
	}
	goal, err := s.goal(ctx, userID)
	if err != nil {
		return WaterDay{}, err
	}

	day := WaterDay{Date: date, Logs: logs, GoalMl: goal}
	if day.Logs == nil {
		day.Logs = []domain.WaterLogRecord{}
	}
	for _, l := range logs {
		day.TotalMl += l.AmountMl
	}
	day.Percent = min(100, day.TotalMl*100/goal)
	return day, nil
}

// Week returns daily totals for the seven days ending on end.
func (s *WaterService) Week(ctx context.Context, userID uuid.UUID, end string) ([]DayTotal, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	if end == "" {
		end = s.cal.Today(ctx, userID)
	}
	days, err := LastDays(end, 7)
	if err != nil {
		return nil, apperrors.NewValidationError("end must be a YYYY-MM-DD date")
	}

	logs, err := s.water.ListRange(ctx, userID, days[0], end)
	if err != nil {
		return nil, repoErr(err, "water log")
	}
	totals := make(map[string]int, len(days))
	for _, l := range logs {
		totals[l.Date] += l.AmountMl
	}
	out := make([]DayTotal, len(days))
	for i, d := range days {
		out[i] = DayTotal{Date: d, TotalMl: totals[d]}
	}
	return out, nil
}

func (s *WaterService) goal(ctx context.Context, userID uuid.UUID) (int, error) {
	p, err := s.profiles.Get(ctx, userID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return 0, repoErr(err, "profile")
	}
	return p.WaterGoalOr(s.defaultGoal), nil
}
