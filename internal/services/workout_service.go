package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/vladimiradmaev/health-mate/internal/domain"
	apperrors "github.com/vladimiradmaev/health-mate/internal/errors"
)

type WorkoutInput struct {
	Date            string `json:"date"`
	Type            string `json:"type"`
	DurationMinutes int    `json:"durationMinutes"`
	// CaloriesBurned is estimated from the exercise library when nil.
	CaloriesBurned *int   `json:"caloriesBurned"`
	Notes          string `json:"notes"`
}

func (in WorkoutInput) validate() error {
	if blank(in.Type) {
		return apperrors.NewValidationError("workout type is required")
	}
	if in.DurationMinutes <= 0 || in.DurationMinutes > 1440 {
		return apperrors.NewValidationError("duration must be between 1 and 1440 minutes")
	}
	if in.CaloriesBurned != nil && *in.CaloriesBurned < 0 {
		return apperrors.NewValidationError("calories burned cannot be negative")
	}
	return nil
}

type WorkoutService struct {
	workouts domain.WorkoutRepository
	ref      domain.ReferenceRepository
	profiles domain.ProfileRepository
	streaks  StreakUpdater
	cal      *Calendar
	log      *slog.Logger
}

func NewWorkoutService(workouts domain.WorkoutRepository, ref domain.ReferenceRepository, profiles domain.ProfileRepository, streaks StreakUpdater, cal *Calendar, log *slog.Logger) *WorkoutService {
	if log == nil {
		log = slog.Default()
	}
	return &WorkoutService{workouts: workouts, ref: ref, profiles: profiles, streaks: streaks, cal: cal, log: log}
}

func (s *WorkoutService) Create(ctx context.Context, userID uuid.UUID, in WorkoutInput) (domain.WorkoutRecord, error) {
	if err := requireUser(userID); err != nil {
		return domain.WorkoutRecord{}, err
	}
	if in.Date == "" {
		in.Date = s.cal.Today(ctx, userID)
	}
	if err := s.cal.activityDate(ctx, userID, in.Date, "date"); err != nil {
		return domain.WorkoutRecord{}, err
	}
	if err := in.validate(); err != nil {
		return domain.WorkoutRecord{}, err
	}

	rec := domain.WorkoutRecord{
		UserID:          userID,
		Date:            in.Date,
		Type:            in.Type,
		DurationMinutes: in.DurationMinutes,
		CaloriesBurned:  s.calories(ctx, userID, in),
		Notes:           in.Notes,
	}
	if err := s.workouts.Create(ctx, &rec); err != nil {
		return domain.WorkoutRecord{}, repoErr(err, "workout")
	}
	if _, err := s.streaks.UpdateStreak(ctx, userID, domain.StreakWorkout, rec.Date); err != nil {
		s.log.Warn("Failed to update workout streak", "user_id", userID, "date", rec.Date, "error", err)
	}
	return rec, nil
}

func (s *WorkoutService) Update(ctx context.Context, userID, id uuid.UUID, in WorkoutInput) (domain.WorkoutRecord, error) {
	if err := requireUser(userID); err != nil {
		return domain.WorkoutRecord{}, err
	}
	if err := in.validate(); err != nil {
		return domain.WorkoutRecord{}, err
	}
	rec, err := s.workouts.Get(ctx, userID, id)
	if err != nil {
		return domain.WorkoutRecord{}, repoErr(err, "workout")
	}
	if in.Date != "" {
		if err := s.cal.activityDate(ctx, userID, in.Date, "date"); err != nil {
			return domain.WorkoutRecord{}, err
		}
		rec.Date = in.Date
	}
	rec.Type = in.Type
	rec.DurationMinutes = in.DurationMinutes
	rec.CaloriesBurned = s.calories(ctx, userID, in)
	rec.Notes = in.Notes
	if err := s.workouts.Update(ctx, rec); err != nil {
		return domain.WorkoutRecord{}, repoErr(err, "workout")
	}
	return *rec, nil
}

func (s *WorkoutService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if err := requireUser(userID); err != nil {
		return err
	}
	return repoErr(s.workouts.Delete(ctx, userID, id), "workout")
}

func (s *WorkoutService) List(ctx context.Context, userID uuid.UUID, from, to string) ([]domain.WorkoutRecord, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	from, to, err := s.cal.resolveRange(ctx, userID, from, to, 30)
	if err != nil {
		return nil, err
	}
	out, err := s.workouts.ListRange(ctx, userID, from, to)
	if err != nil {
		return nil, repoErr(err, "workout")
	}
	return out, nil
}

// calories uses the given value or estimates it by MET; unknown exercises estimate to zero.
func (s *WorkoutService) calories(ctx context.Context, userID uuid.UUID, in WorkoutInput) int {
	if in.CaloriesBurned != nil {
		return *in.CaloriesBurned
	}

	ex, err := s.ref.GetExerciseByName(ctx, in.Type)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.log.Warn("Exercise lookup failed", "type", in.Type, "error", err)
		}
		return 0
	}

	weight := float64(DefaultBodyWeightKg)
	if p, err := s.profiles.Get(ctx, userID); err == nil && p.WeightKg > 0 {
		weight = p.WeightKg
	}
	return EstimateCalories(ex.MET, weight, in.DurationMinutes)
}
