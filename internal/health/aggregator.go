package health

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/vladimiradmaev/health-mate/internal/domain"
	apperrors "github.com/vladimiradmaev/health-mate/internal/errors"
	"github.com/vladimiradmaev/health-mate/internal/utils"
)

type SleepSource interface {
	LatestOn(ctx context.Context, userID uuid.UUID, date string) (*domain.SleepRecord, error)
}

type WorkoutSource interface {
	ListOn(ctx context.Context, userID uuid.UUID, date string) ([]domain.WorkoutRecord, error)
}

type MealSource interface {
	ListOn(ctx context.Context, userID uuid.UUID, date string) ([]domain.MealRecord, error)
}

type WaterSource interface {
	ListOn(ctx context.Context, userID uuid.UUID, date string) ([]domain.WaterLogRecord, error)
}

type ProfileSource interface {
	Get(ctx context.Context, userID uuid.UUID) (*domain.Profile, error)
}

type ScoreStore interface {
	Upsert(ctx context.Context, s *domain.HealthScore) (domain.HealthScore, error)
}

// Sources are the reads and the write the aggregator needs.
type Sources struct {
	Sleep    SleepSource
	Workouts WorkoutSource
	Meals    MealSource
	Water    WaterSource
	Profiles ProfileSource
	Scores   ScoreStore
	// DefaultWaterGoalMl applies to users without a goal of their own.
	DefaultWaterGoalMl int
}

// Aggregator computes and stores daily health scores.
type Aggregator struct {
	src Sources
	log *slog.Logger
}

func NewAggregator(src Sources, log *slog.Logger) *Aggregator {
	if log == nil {
		log = slog.Default()
	}
	return &Aggregator{src: src, log: log}
}

// Collect gathers the day's raw metrics. A failed read zeroes that metric and
// is logged; it never fails the whole collection.
func (a *Aggregator) Collect(ctx context.Context, userID uuid.UUID, date string) DailyMetrics {
	var m DailyMetrics
	log := a.log.With("user_id", userID, "date", date)

	sleep, err := a.src.Sleep.LatestOn(ctx, userID, date)
	switch {
	case err == nil && sleep != nil:
		m.SleepHours = sleep.DurationHours
	case err != nil && !errors.Is(err, domain.ErrNotFound):
		log.Warn("Sleep fetch failed, scoring as zero", "metric", "sleep", "error", err)
	}

	workouts, err := a.src.Workouts.ListOn(ctx, userID, date)
	if err != nil {
		log.Warn("Workout fetch failed, scoring as zero", "metric", "exercise", "error", err)
	} else {
		m.Workouts = len(workouts)
	}

	meals, err := a.src.Meals.ListOn(ctx, userID, date)
	if err != nil {
		log.Warn("Meal fetch failed, scoring as zero", "metric", "nutrition", "error", err)
	} else {
		m.Meals = len(meals)
	}

	water, err := a.src.Water.ListOn(ctx, userID, date)
	if err != nil {
		log.Warn("Water fetch failed, scoring as zero", "metric", "water", "error", err)
	} else {
		for _, w := range water {
			m.WaterMl += w.AmountMl
		}
	}

	profile, err := a.src.Profiles.Get(ctx, userID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		log.Warn("Profile fetch failed, using default water goal", "metric", "water", "error", err)
	}
	m.WaterGoalMl = profile.WaterGoalOr(a.src.DefaultWaterGoalMl)

	return m
}

// ComputeHealthScore scores the day and upserts it keyed on (user, date). A
// failed write is logged and the computed score is still returned.
func (a *Aggregator) ComputeHealthScore(ctx context.Context, userID uuid.UUID, date string) (domain.HealthScore, error) {
	if userID == uuid.Nil {
		return domain.HealthScore{}, apperrors.NewValidationError("user id is required")
	}
	if !utils.ValidDate(date) {
		return domain.HealthScore{}, apperrors.NewValidationError("date must be YYYY-MM-DD")
	}

	b := a.Collect(ctx, userID, date).Score()
	score := domain.HealthScore{
		UserID:         userID,
		Date:           date,
		SleepScore:     b.Sleep,
		ExerciseScore:  b.Exercise,
		NutritionScore: b.Nutrition,
		WaterScore:     b.Water,
		TotalScore:     b.Total,
	}

	stored, err := a.src.Scores.Upsert(ctx, &score)
	if err != nil {
		a.log.Error("Failed to store health score",
			"user_id", userID,
			"date", date,
			"total", score.TotalScore,
			"error", err,
		)
		return score, nil
	}
	return stored, nil
}
