package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/vladimiradmaev/health-mate/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type HealthScoreRepository struct {
	db *gorm.DB
}

func NewHealthScoreRepository(db *gorm.DB) *HealthScoreRepository {
	return &HealthScoreRepository{db: db}
}

// Upsert writes the score keyed on (user_id, date) and returns the stored row.
// Only score columns change on conflict, so the id of an existing row is kept.
func (r *HealthScoreRepository) Upsert(ctx context.Context, s *domain.HealthScore) (domain.HealthScore, error) {
	row := *s
	row.ID = uuid.Nil

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"sleep_score", "exercise_score", "nutrition_score", "water_score", "total_score",
		}),
	}).Create(&row).Error
	if err != nil {
		return domain.HealthScore{}, err
	}

	var stored domain.HealthScore
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", s.UserID, s.Date).
		First(&stored).Error; err != nil {
		return domain.HealthScore{}, notFound(err)
	}
	return stored, nil
}

func (r *HealthScoreRepository) ListRange(ctx context.Context, userID uuid.UUID, from, to string) ([]domain.HealthScore, error) {
	var out []domain.HealthScore
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND date BETWEEN ? AND ?", userID, from, to).
		Order("date ASC").
		Find(&out).Error
	return out, err
}

// CountAtLeast counts stored days whose total score is minScore or more.
func (r *HealthScoreRepository) CountAtLeast(ctx context.Context, userID uuid.UUID, minScore int) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.HealthScore{}).
		Where("user_id = ? AND total_score >= ?", userID, minScore).
		Count(&n).Error
	return n, err
}

func (r *HealthScoreRepository) DeleteAll(ctx context.Context, userID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&domain.HealthScore{})
	return res.RowsAffected, res.Error
}

type StreakRepository struct {
	db *gorm.DB
}

func NewStreakRepository(db *gorm.DB) *StreakRepository {
	return &StreakRepository{db: db}
}

func (r *StreakRepository) Get(ctx context.Context, userID uuid.UUID, t domain.StreakType) (*domain.StreakRecord, error) {
	var rec domain.StreakRecord
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND streak_type = ?", userID, t).
		First(&rec).Error; err != nil {
		return nil, notFound(err)
	}
	return &rec, nil
}

// Save upserts on (user_id, streak_type). Concurrent saves are last write wins.
func (r *StreakRepository) Save(ctx context.Context, rec *domain.StreakRecord) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "streak_type"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"current_streak", "longest_streak", "last_activity_date", "updated_at",
		}),
	}).Create(rec).Error
	if err != nil {
		return err
	}

	stored, err := r.Get(ctx, rec.UserID, rec.StreakType)
	if err != nil {
		return err
	}
	*rec = *stored
	return nil
}

func (r *StreakRepository) List(ctx context.Context, userID uuid.UUID) ([]domain.StreakRecord, error) {
	var out []domain.StreakRecord
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("streak_type ASC").Find(&out).Error
	return out, err
}

func (r *StreakRepository) DeleteAll(ctx context.Context, userID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&domain.StreakRecord{})
	return res.RowsAffected, res.Error
}
