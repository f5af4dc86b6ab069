package services

import (
	"context"
	"errors"
	"log/slog"
	"math"

	"github.com/google/uuid"
	"github.com/vladimiradmaev/health-mate/internal/domain"
	apperrors "github.com/vladimiradmaev/health-mate/internal/errors"
)

type WeightEntryInput struct {
	Date     string  `json:"date"`
	WeightKg float64 `json:"weightKg"`
	Notes    string  `json:"notes"`
}

type WeightGoalInput struct {
	TargetWeightKg float64 `json:"targetWeightKg"`
	StartWeightKg  float64 `json:"startWeightKg"`
	StartDate      string  `json:"startDate"`
	TargetDate     string  `json:"targetDate"`
}

// WeightProgress compares the latest weight with the active goal.
type WeightProgress struct {
	Goal       domain.WeightGoal `json:"goal"`
	Current    float64           `json:"current"`
	Target     float64           `json:"target"`
	Start      float64           `json:"start"`
	Percentage int               `json:"percentage"`
	Remaining  float64           `json:"remaining"`
	IsGain     bool              `json:"isGain"`
}

func validWeight(kg float64) bool {
	return kg > 0 && kg <= 700
}

type WeightService struct {
	weight   domain.WeightRepository
	profiles domain.ProfileRepository
	cal      *Calendar
	log      *slog.Logger
}

func NewWeightService(weight domain.WeightRepository, profiles domain.ProfileRepository, cal *Calendar, log *slog.Logger) *WeightService {
	if log == nil {
		log = slog.Default()
	}
	return &WeightService{weight: weight, profiles: profiles, cal: cal, log: log}
}

// AddEntry stores a weigh-in and mirrors the latest weight into the profile.
func (s *WeightService) AddEntry(ctx context.Context, userID uuid.UUID, in WeightEntryInput) (domain.WeightEntry, error) {
	if err := requireUser(userID); err != nil {
		return domain.WeightEntry{}, err
	}
	if in.Date == "" {
		in.Date = s.cal.Today(ctx, userID)
	}
	if err := s.cal.activityDate(ctx, userID, in.Date, "date"); err != nil {
		return domain.WeightEntry{}, err
	}
	if !validWeight(in.WeightKg) {
		return domain.WeightEntry{}, apperrors.NewValidationError("weight must be between 0 and 700 kg")
	}

	e := domain.WeightEntry{UserID: userID, Date: in.Date, WeightKg: in.WeightKg, Notes: in.Notes}
	if err := s.weight.CreateEntry(ctx, &e); err != nil {
		return domain.WeightEntry{}, repoErr(err, "weight entry")
	}
	s.syncProfile(ctx, userID)
	return e, nil
}

func (s *WeightService) DeleteEntry(ctx context.Context, userID, id uuid.UUID) error {
	if err := requireUser(userID); err != nil {
		return err
	}
	if err := s.weight.DeleteEntry(ctx, userID, id); err != nil {
		return repoErr(err, "weight entry")
	}
	s.syncProfile(ctx, userID)
	return nil
}

func (s *WeightService) ListEntries(ctx context.Context, userID uuid.UUID, limit int) ([]domain.WeightEntry, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	out, err := s.weight.ListEntries(ctx, userID, clampLimit(limit, 90, 1000))
	if err != nil {
		return nil, repoErr(err, "weight entry")
	}
	return out, nil
}

// SetGoal replaces the active goal.
func (s *WeightService) SetGoal(ctx context.Context, userID uuid.UUID, in WeightGoalInput) (domain.WeightGoal, error) {
	if err := requireUser(userID); err != nil {
		return domain.WeightGoal{}, err
	}
	if !validWeight(in.TargetWeightKg) || !validWeight(in.StartWeightKg) {
		return domain.WeightGoal{}, apperrors.NewValidationError("start and target weight must be between 0 and 700 kg")
	}
	if in.TargetWeightKg == in.StartWeightKg {
		return domain.WeightGoal{}, apperrors.NewValidationError("target weight must differ from start weight")
	}
	if in.StartDate == "" {
		in.StartDate = s.cal.Today(ctx, userID)
	}
	if err := validateDate(in.StartDate, "start date"); err != nil {
		return domain.WeightGoal{}, err
	}
	if err := validateDate(in.TargetDate, "target date"); err != nil {
		return domain.WeightGoal{}, err
	}
	if in.TargetDate <= in.StartDate {
		return domain.WeightGoal{}, apperrors.NewValidationError("target date must be after start date")
	}

	g := domain.WeightGoal{
		UserID:         userID,
		TargetWeightKg: in.TargetWeightKg,
		StartWeightKg:  in.StartWeightKg,
		StartDate:      in.StartDate,
		TargetDate:     in.TargetDate,
	}
	if err := s.weight.ReplaceGoal(ctx, &g); err != nil {
		return domain.WeightGoal{}, repoErr(err, "weight goal")
	}
	return g, nil
}

func (s *WeightService) CancelGoal(ctx context.Context, userID uuid.UUID) error {
	if err := requireUser(userID); err != nil {
		return err
	}
	return repoErr(s.weight.DeactivateGoals(ctx, userID), "weight goal")
}

// Progress returns progress toward the active goal, or nil when there is none.
func (s *WeightService) Progress(ctx context.Context, userID uuid.UUID) (*WeightProgress, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	g, err := s.weight.ActiveGoal(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, repoErr(err, "weight goal")
	}

	current := g.StartWeightKg
	latest, err := s.weight.LatestEntry(ctx, userID)
	switch {
	case err == nil:
		current = latest.WeightKg
	case !errors.Is(err, domain.ErrNotFound):
		return nil, repoErr(err, "weight entry")
	}

	p := GoalProgress(g.StartWeightKg, g.TargetWeightKg, current)
	p.Goal = *g
	return &p, nil
}

// GoalProgress computes how far current has moved from start toward target.
func GoalProgress(start, target, current float64) WeightProgress {
	p := WeightProgress{
		Current:   current,
		Target:    target,
		Start:     start,
		IsGain:    target > start,
		Remaining: round1(math.Abs(target - current)),
	}
	total := math.Abs(target - start)
	if total > 0 {
		p.Percentage = int(math.Round(math.Abs(current-start) / total * 100))
	}
	return p
}

func (s *WeightService) syncProfile(ctx context.Context, userID uuid.UUID) {
	latest, err := s.weight.LatestEntry(ctx, userID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.log.Warn("Could not read latest weight", "user_id", userID, "error", err)
		}
		return
	}
	if err := s.profiles.UpdateWeight(ctx, userID, latest.WeightKg); err != nil && !errors.Is(err, domain.ErrNotFound) {
		s.log.Warn("Could not mirror weight into profile", "user_id", userID, "error", err)
	}
}
