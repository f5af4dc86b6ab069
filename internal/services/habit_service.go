package services

import (
	"context"
	"errors"
	"math"

	"github.com/google/uuid"
	"github.com/vladimiradmaev/health-mate/internal/domain"
	apperrors "github.com/vladimiradmaev/health-mate/internal/errors"
	"github.com/vladimiradmaev/health-mate/internal/streak"
)

type HabitInput struct {
	Title           string `json:"title"`
	Description     string `json:"description"`
	Category        string `json:"category"`
	TargetFrequency string `json:"targetFrequency"`
	TargetCount     int    `json:"targetCount"`
	IsActive        *bool  `json:"isActive"`
}

func (in HabitInput) validate() error {
	if blank(in.Title) {
		return apperrors.NewValidationError("habit title is required")
	}
	if in.TargetCount < 0 {
		return apperrors.NewValidationError("target count cannot be negative")
	}
	return nil
}

// HabitView is a habit with its progress as of a day.
type HabitView struct {
	domain.Habit
	CompletedToday bool `json:"completedToday"`
	Streak         int  `json:"streak"`
	// CompletionRate is the share of the last seven days completed, in percent.
	CompletionRate int `json:"completionRate"`
}

type HabitService struct {
	habits domain.HabitRepository
	cal    *Calendar
}

func NewHabitService(habits domain.HabitRepository, cal *Calendar) *HabitService {
	return &HabitService{habits: habits, cal: cal}
}

func (s *HabitService) Create(ctx context.Context, userID uuid.UUID, in HabitInput) (domain.Habit, error) {
	if err := requireUser(userID); err != nil {
		return domain.Habit{}, err
	}
	if err := in.validate(); err != nil {
		return domain.Habit{}, err
	}
	h := domain.Habit{
		UserID:          userID,
		Title:           in.Title,
		Description:     in.Description,
		Category:        orDefault(in.Category, "Health"),
		TargetFrequency: orDefault(in.TargetFrequency, "Daily"),
		TargetCount:     max(in.TargetCount, 1),
		IsActive:        in.IsActive == nil || *in.IsActive,
	}
	if err := s.habits.Create(ctx, &h); err != nil {
		return domain.Habit{}, repoErr(err, "habit")
	}
	return h, nil
}

func (s *HabitService) Update(ctx context.Context, userID, id uuid.UUID, in HabitInput) (domain.Habit, error) {
	if err := requireUser(userID); err != nil {
		return domain.Habit{}, err
	}
	if err := in.validate(); err != nil {
		return domain.Habit{}, err
	}
	h, err := s.habits.Get(ctx, userID, id)
	if err != nil {
		return domain.Habit{}, repoErr(err, "habit")
	}
	h.Title = in.Title
	h.Description = in.Description
	h.Category = orDefault(in.Category, h.Category)
	h.TargetFrequency = orDefault(in.TargetFrequency, h.TargetFrequency)
	h.TargetCount = max(in.TargetCount, 1)
	if in.IsActive != nil {
		h.IsActive = *in.IsActive
	}
	if err := s.habits.Update(ctx, h); err != nil {
		return domain.Habit{}, repoErr(err, "habit")
	}
	return *h, nil
}

// Delete removes a habit and its completion history.
func (s *HabitService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if err := requireUser(userID); err != nil {
		return err
	}
	return repoErr(s.habits.Delete(ctx, userID, id), "habit")
}

// Toggle marks the habit done on date, or undoes it when already done.
// It reports whether the habit is completed afterwards.
func (s *HabitService) Toggle(ctx context.Context, userID, habitID uuid.UUID, date string) (bool, error) {
	if err := requireUser(userID); err != nil {
		return false, err
	}
	if date == "" {
		date = s.cal.Today(ctx, userID)
	}
	if err := s.cal.activityDate(ctx, userID, date, "date"); err != nil {
		return false, err
	}
	if _, err := s.habits.Get(ctx, userID, habitID); err != nil {
		return false, repoErr(err, "habit")
	}

	existing, err := s.habits.GetLog(ctx, habitID, date)
	switch {
	case err == nil:
		if err := s.habits.DeleteLog(ctx, userID, existing.ID); err != nil {
			return false, repoErr(err, "habit log")
		}
		return false, nil
	case errors.Is(err, domain.ErrNotFound):
		if err := s.habits.CreateLog(ctx, &domain.HabitLog{HabitID: habitID, UserID: userID, Date: date}); err != nil {
			return false, repoErr(err, "habit log")
		}
		return true, nil
	default:
		return false, repoErr(err, "habit log")
	}
}

// List returns the user's habits with today's completion, streak and weekly rate.
func (s *HabitService) List(ctx context.Context, userID uuid.UUID, activeOnly bool) ([]HabitView, error) {
	return s.ListOn(ctx, userID, activeOnly, "")
}

// ListOn is List as of date. CompletedToday then reports completion on date
// and the streak and weekly rate end there. An empty date means today.
func (s *HabitService) ListOn(ctx context.Context, userID uuid.UUID, activeOnly bool, date string) ([]HabitView, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	today := date
	if today == "" {
		today = s.cal.Today(ctx, userID)
	}
	if err := validateDate(today, "date"); err != nil {
		return nil, err
	}
	habits, err := s.habits.List(ctx, userID, activeOnly)
	if err != nil {
		return nil, repoErr(err, "habit")
	}

	week, _ := LastDays(today, 7)

	out := make([]HabitView, 0, len(habits))
	for _, h := range habits {
		logs, err := s.habits.ListLogsForHabit(ctx, h.ID)
		if err != nil {
			return nil, repoErr(err, "habit log")
		}
		out = append(out, habitView(h, logs, today, week[0]))
	}
	return out, nil
}

func habitView(h domain.Habit, logs []domain.HabitLog, today, weekStart string) HabitView {
	v := HabitView{Habit: h}
	days := make([]string, 0, len(logs))
	completedThisWeek := 0
	for _, l := range logs {
		days = append(days, l.Date)
		if l.Date == today {
			v.CompletedToday = true
		}
		if l.Date >= weekStart && l.Date <= today {
			completedThisWeek++
		}
	}
	if sum, err := streak.Summarize(days, today); err == nil {
		v.Streak = sum.Current
	}
	v.CompletionRate = int(math.Round(float64(completedThisWeek) / 7 * 100))
	return v
}
