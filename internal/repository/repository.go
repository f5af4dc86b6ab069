package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/vladimiradmaev/health-mate/internal/domain"
	"gorm.io/gorm"
)

// Repositories bundles every gorm-backed repository over one connection.
type Repositories struct {
	Profiles     *ProfileRepository
	Telegram     *TelegramLinkRepository
	Sleep        *SleepRepository
	Workouts     *WorkoutRepository
	Meals        *MealRepository
	Water        *WaterRepository
	HealthScores *HealthScoreRepository
	Streaks      *StreakRepository
	Moods        *MoodRepository
	Journal      *JournalRepository
	Habits       *HabitRepository
	Todos        *TodoRepository
	Notes        *NoteRepository
	Weight       *WeightRepository
	Reference    *ReferenceRepository
	Achievements *AchievementRepository
}

func New(db *gorm.DB) *Repositories {
	return &Repositories{
		Profiles:     NewProfileRepository(db),
		Telegram:     NewTelegramLinkRepository(db),
		Sleep:        NewSleepRepository(db),
		Workouts:     NewWorkoutRepository(db),
		Meals:        NewMealRepository(db),
		Water:        NewWaterRepository(db),
		HealthScores: NewHealthScoreRepository(db),
		Streaks:      NewStreakRepository(db),
		Moods:        NewMoodRepository(db),
		Journal:      NewJournalRepository(db),
		Habits:       NewHabitRepository(db),
		Todos:        NewTodoRepository(db),
		Notes:        NewNoteRepository(db),
		Weight:       NewWeightRepository(db),
		Reference:    NewReferenceRepository(db),
		Achievements: NewAchievementRepository(db),
	}
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return err
}

func getOwned[T any](ctx context.Context, db *gorm.DB, userID, id uuid.UUID) (*T, error) {
	var v T
	if err := db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&v).Error; err != nil {
		return nil, notFound(err)
	}
	return &v, nil
}

// updateOwned writes every column of v except created_at, scoped to userID.
func updateOwned[T any](ctx context.Context, db *gorm.DB, v *T, userID uuid.UUID) error {
	res := db.WithContext(ctx).Model(v).Where("user_id = ?", userID).Select("*").Omit("created_at").Updates(v)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func deleteOwned[T any](ctx context.Context, db *gorm.DB, userID, id uuid.UUID) error {
	res := db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(new(T))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func listOn[T any](ctx context.Context, db *gorm.DB, userID uuid.UUID, date string) ([]T, error) {
	var out []T
	err := db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, date).
		Order("created_at ASC").
		Find(&out).Error
	return out, err
}

func listRange[T any](ctx context.Context, db *gorm.DB, userID uuid.UUID, from, to string) ([]T, error) {
	var out []T
	err := db.WithContext(ctx).
		Where("user_id = ? AND date BETWEEN ? AND ?", userID, from, to).
		Order("date ASC, created_at ASC").
		Find(&out).Error
	return out, err
}
