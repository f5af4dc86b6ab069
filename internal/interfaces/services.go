package interfaces

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/vladimiradmaev/health-mate/internal/domain"
	"github.com/vladimiradmaev/health-mate/internal/repository"
	"github.com/vladimiradmaev/health-mate/internal/services"
	"github.com/vladimiradmaev/health-mate/internal/streak"
)

// UserServiceInterface links chat accounts to users
type UserServiceInterface interface {
	RegisterTelegramUser(ctx context.Context, telegramID int64, username, firstName string) (uuid.UUID, bool, error)
	UserByTelegramID(ctx context.Context, telegramID int64) (uuid.UUID, error)
}

type ProfileServiceInterface interface {
	Get(ctx context.Context, userID uuid.UUID) (services.ProfileView, error)
	Update(ctx context.Context, userID uuid.UUID, in services.ProfileInput) (services.ProfileView, error)
}

type DashboardServiceInterface interface {
	Dashboard(ctx context.Context, userID uuid.UUID, date string) (services.Dashboard, error)
}

type AnalyticsServiceInterface interface {
	Analytics(ctx context.Context, userID uuid.UUID, rangeName string) (services.Analytics, error)
}

// ProgressServiceInterface computes, reads and resets streaks, stored scores and achievements
type ProgressServiceInterface interface {
	ComputeHealthScore(ctx context.Context, userID uuid.UUID, date string) (domain.HealthScore, error)
	Streaks(ctx context.Context, userID uuid.UUID) ([]streak.Standing, error)
	HealthScores(ctx context.Context, userID uuid.UUID, from, to string) ([]domain.HealthScore, error)
	Achievements(ctx context.Context, userID uuid.UUID) ([]services.AchievementView, error)
	ResetProgress(ctx context.Context, userID uuid.UUID) (services.ResetResult, error)
}

type WaterServiceInterface interface {
	LogWater(ctx context.Context, userID uuid.UUID, amountMl int, at time.Time) (domain.WaterLogRecord, error)
	DeleteWater(ctx context.Context, userID, id uuid.UUID) error
	Day(ctx context.Context, userID uuid.UUID, date string) (services.WaterDay, error)
	Week(ctx context.Context, userID uuid.UUID, end string) ([]services.DayTotal, error)
}

type SleepServiceInterface interface {
	Create(ctx context.Context, userID uuid.UUID, in services.SleepInput) (domain.SleepRecord, error)
	Update(ctx context.Context, userID, id uuid.UUID, in services.SleepInput) (domain.SleepRecord, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID, from, to string) ([]domain.SleepRecord, error)
}

type WorkoutServiceInterface interface {
	Create(ctx context.Context, userID uuid.UUID, in services.WorkoutInput) (domain.WorkoutRecord, error)
	Update(ctx context.Context, userID, id uuid.UUID, in services.WorkoutInput) (domain.WorkoutRecord, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID, from, to string) ([]domain.WorkoutRecord, error)
}

type MealServiceInterface interface {
	Create(ctx context.Context, userID uuid.UUID, in services.MealInput) (domain.MealRecord, error)
	CreateFromFood(ctx context.Context, userID uuid.UUID, in services.PortionInput) (domain.MealRecord, error)
	Update(ctx context.Context, userID, id uuid.UUID, in services.MealInput) (domain.MealRecord, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID, from, to string) ([]domain.MealRecord, error)
}

type ReferenceServiceInterface interface {
	SearchFoods(ctx context.Context, query string, limit int) ([]domain.Food, error)
	FoodPortion(ctx context.Context, foodID uint, grams float64) (services.FoodPortion, error)
	SearchExercises(ctx context.Context, query string, limit int) ([]domain.Exercise, error)
}

type MoodServiceInterface interface {
	Log(ctx context.Context, userID uuid.UUID, in services.MoodInput) (domain.MoodLog, error)
	Today(ctx context.Context, userID uuid.UUID) (*domain.MoodLog, error)
	History(ctx context.Context, userID uuid.UUID, limit int) ([]domain.MoodLog, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type JournalServiceInterface interface {
	Create(ctx context.Context, userID uuid.UUID, in services.JournalInput) (domain.JournalEntry, error)
	Update(ctx context.Context, userID, id uuid.UUID, in services.JournalInput) (domain.JournalEntry, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID, limit int) ([]domain.JournalEntry, error)
	Stats(ctx context.Context, userID uuid.UUID) (services.JournalStats, error)
}

type HabitServiceInterface interface {
	Create(ctx context.Context, userID uuid.UUID, in services.HabitInput) (domain.Habit, error)
	Update(ctx context.Context, userID, id uuid.UUID, in services.HabitInput) (domain.Habit, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	Toggle(ctx context.Context, userID, habitID uuid.UUID, date string) (bool, error)
	List(ctx context.Context, userID uuid.UUID, activeOnly bool) ([]services.HabitView, error)
}

type TodoServiceInterface interface {
	Create(ctx context.Context, userID uuid.UUID, in services.TodoInput) (domain.Todo, error)
	Update(ctx context.Context, userID, id uuid.UUID, in services.TodoInput) (domain.Todo, error)
	Toggle(ctx context.Context, userID, id uuid.UUID) (domain.Todo, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID, pendingOnly bool, limit int) ([]domain.Todo, error)
}

type NoteServiceInterface interface {
	Create(ctx context.Context, userID uuid.UUID, in services.NoteInput) (domain.Note, error)
	Update(ctx context.Context, userID, id uuid.UUID, in services.NoteInput) (domain.Note, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID, query string, limit int) ([]domain.Note, error)
}

type WeightServiceInterface interface {
	AddEntry(ctx context.Context, userID uuid.UUID, in services.WeightEntryInput) (domain.WeightEntry, error)
	DeleteEntry(ctx context.Context, userID, id uuid.UUID) error
	ListEntries(ctx context.Context, userID uuid.UUID, limit int) ([]domain.WeightEntry, error)
	SetGoal(ctx context.Context, userID uuid.UUID, in services.WeightGoalInput) (domain.WeightGoal, error)
	CancelGoal(ctx context.Context, userID uuid.UUID) error
	Progress(ctx context.Context, userID uuid.UUID) (*services.WeightProgress, error)
}

// SnapshotInterface lists users for the end-of-day score job
type SnapshotInterface interface {
	ListUserIDs(ctx context.Context) ([]uuid.UUID, error)
}

var (
	_ UserServiceInterface      = (*services.UserService)(nil)
	_ ProfileServiceInterface   = (*services.ProfileService)(nil)
	_ DashboardServiceInterface = (*services.DashboardService)(nil)
	_ AnalyticsServiceInterface = (*services.AnalyticsService)(nil)
	_ ProgressServiceInterface  = (*services.ProgressService)(nil)
	_ WaterServiceInterface     = (*services.WaterService)(nil)
	_ SleepServiceInterface     = (*services.SleepService)(nil)
	_ WorkoutServiceInterface   = (*services.WorkoutService)(nil)
	_ MealServiceInterface      = (*services.MealService)(nil)
	_ ReferenceServiceInterface = (*services.ReferenceService)(nil)
	_ MoodServiceInterface      = (*services.MoodService)(nil)
	_ JournalServiceInterface   = (*services.JournalService)(nil)
	_ HabitServiceInterface     = (*services.HabitService)(nil)
	_ TodoServiceInterface      = (*services.TodoService)(nil)
	_ NoteServiceInterface      = (*services.NoteService)(nil)
	_ WeightServiceInterface    = (*services.WeightService)(nil)
	_ SnapshotInterface         = (*repository.ProfileRepository)(nil)
)
