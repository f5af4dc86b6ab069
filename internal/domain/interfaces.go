package domain

import (
	"context"

	"github.com/google/uuid"
)

// Repositories return ErrNotFound when an owned row is missing. Dates are
// YYYY-MM-DD strings and ranges are inclusive.

type ProfileRepository interface {
	Get(ctx context.Context, userID uuid.UUID) (*Profile, error)
	Save(ctx context.Context, p *Profile) error
	UpdateWeight(ctx context.Context, userID uuid.UUID, weightKg float64) error
	ListUserIDs(ctx context.Context) ([]uuid.UUID, error)
}

type TelegramLinkRepository interface {
	GetByTelegramID(ctx context.Context, telegramID int64) (*TelegramLink, error)
	Create(ctx context.Context, link *TelegramLink) error
}

type SleepRepository interface {
	Create(ctx context.Context, r *SleepRecord) error
	Update(ctx context.Context, r *SleepRecord) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
	Get(ctx context.Context, userID, id uuid.UUID) (*SleepRecord, error)
	ListRange(ctx context.Context, userID uuid.UUID, from, to string) ([]SleepRecord, error)
	LatestOn(ctx context.Context, userID uuid.UUID, date string) (*SleepRecord, error)
}

type WorkoutRepository interface {
	Create(ctx context.Context, r *WorkoutRecord) error
	Update(ctx context.Context, r *WorkoutRecord) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
	Get(ctx context.Context, userID, id uuid.UUID) (*WorkoutRecord, error)
	ListOn(ctx context.Context, userID uuid.UUID, date string) ([]WorkoutRecord, error)
	ListRange(ctx context.Context, userID uuid.UUID, from, to string) ([]WorkoutRecord, error)
}

type MealRepository interface {
	Create(ctx context.Context, r *MealRecord) error
	Update(ctx context.Context, r *MealRecord) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
	Get(ctx context.Context, userID, id uuid.UUID) (*MealRecord, error)
	ListOn(ctx context.Context, userID uuid.UUID, date string) ([]MealRecord, error)
	ListRange(ctx context.Context, userID uuid.UUID, from, to string) ([]MealRecord, error)
}

type WaterRepository interface {
	Create(ctx context.Context, r *WaterLogRecord) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
	ListOn(ctx context.Context, userID uuid.UUID, date string) ([]WaterLogRecord, error)
	ListRange(ctx context.Context, userID uuid.UUID, from, to string) ([]WaterLogRecord, error)
}

type HealthScoreRepository interface {
	Upsert(ctx context.Context, s *HealthScore) (HealthScore, error)
	ListRange(ctx context.Context, userID uuid.UUID, from, to string) ([]HealthScore, error)
	CountAtLeast(ctx context.Context, userID uuid.UUID, minScore int) (int64, error)
	DeleteAll(ctx context.Context, userID uuid.UUID) (int64, error)
}

type AchievementRepository interface {
	Catalog(ctx context.Context) ([]Achievement, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]UserAchievement, error)
	Save(ctx context.Context, ua *UserAchievement) error
	DeleteAll(ctx context.Context, userID uuid.UUID) (int64, error)
}

type StreakRepository interface {
	Get(ctx context.Context, userID uuid.UUID, t StreakType) (*StreakRecord, error)
	Save(ctx context.Context, r *StreakRecord) error
	List(ctx context.Context, userID uuid.UUID) ([]StreakRecord, error)
	DeleteAll(ctx context.Context, userID uuid.UUID) (int64, error)
}

type MoodRepository interface {
	Upsert(ctx context.Context, m *MoodLog) (MoodLog, error)
	GetOn(ctx context.Context, userID uuid.UUID, date string) (*MoodLog, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]MoodLog, error)
}

type JournalRepository interface {
	Create(ctx context.Context, e *JournalEntry) error
	Update(ctx context.Context, e *JournalEntry) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
	Get(ctx context.Context, userID, id uuid.UUID) (*JournalEntry, error)
	List(ctx context.Context, userID uuid.UUID, limit int) ([]JournalEntry, error)
}

type HabitRepository interface {
	Create(ctx context.Context, h *Habit) error
	Update(ctx context.Context, h *Habit) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
	Get(ctx context.Context, userID, id uuid.UUID) (*Habit, error)
	List(ctx context.Context, userID uuid.UUID, activeOnly bool) ([]Habit, error)
	GetLog(ctx context.Context, habitID uuid.UUID, date string) (*HabitLog, error)
	CreateLog(ctx context.Context, l *HabitLog) error
	DeleteLog(ctx context.Context, userID, id uuid.UUID) error
	ListLogs(ctx context.Context, userID uuid.UUID, from, to string) ([]HabitLog, error)
	ListLogsForHabit(ctx context.Context, habitID uuid.UUID) ([]HabitLog, error)
}

type TodoRepository interface {
	Create(ctx context.Context, t *Todo) error
	Update(ctx context.Context, t *Todo) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
	Get(ctx context.Context, userID, id uuid.UUID) (*Todo, error)
	List(ctx context.Context, userID uuid.UUID, pendingOnly bool, limit int) ([]Todo, error)
}

type NoteRepository interface {
	Create(ctx context.Context, n *Note) error
	Update(ctx context.Context, n *Note) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
	Get(ctx context.Context, userID, id uuid.UUID) (*Note, error)
	List(ctx context.Context, userID uuid.UUID, query string, limit int) ([]Note, error)
}

type WeightRepository interface {
	CreateEntry(ctx context.Context, e *WeightEntry) error
	DeleteEntry(ctx context.Context, userID, id uuid.UUID) error
	ListEntries(ctx context.Context, userID uuid.UUID, limit int) ([]WeightEntry, error)
	LatestEntry(ctx context.Context, userID uuid.UUID) (*WeightEntry, error)
	ActiveGoal(ctx context.Context, userID uuid.UUID) (*WeightGoal, error)
	ReplaceGoal(ctx context.Context, g *WeightGoal) error
	DeactivateGoals(ctx context.Context, userID uuid.UUID) error
}

type ReferenceRepository interface {
	SearchFoods(ctx context.Context, query string, limit int) ([]Food, error)
	GetFood(ctx context.Context, id uint) (*Food, error)
	SearchExercises(ctx context.Context, query string, limit int) ([]Exercise, error)
	GetExerciseByName(ctx context.Context, name string) (*Exercise, error)
}
