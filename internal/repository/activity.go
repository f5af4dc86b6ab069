package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/vladimiradmaev/health-mate/internal/domain"
	"gorm.io/gorm"
)

type SleepRepository struct {
	db *gorm.DB
}

func NewSleepRepository(db *gorm.DB) *SleepRepository {
	return &SleepRepository{db: db}
}

func (r *SleepRepository) Create(ctx context.Context, rec *domain.SleepRecord) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *SleepRepository) Update(ctx context.Context, rec *domain.SleepRecord) error {
	return updateOwned(ctx, r.db, rec, rec.UserID)
}

func (r *SleepRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return deleteOwned[domain.SleepRecord](ctx, r.db, userID, id)
}

func (r *SleepRepository) Get(ctx context.Context, userID, id uuid.UUID) (*domain.SleepRecord, error) {
	return getOwned[domain.SleepRecord](ctx, r.db, userID, id)
}

func (r *SleepRepository) ListRange(ctx context.Context, userID uuid.UUID, from, to string) ([]domain.SleepRecord, error) {
	var out []domain.SleepRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND sleep_date BETWEEN ? AND ?", userID, from, to).
		Order("sleep_start ASC").
		Find(&out).Error
	return out, err
}

// LatestOn returns the most recent sleep that started on date.
func (r *SleepRepository) LatestOn(ctx context.Context, userID uuid.UUID, date string) (*domain.SleepRecord, error) {
	var rec domain.SleepRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND sleep_date = ?", userID, date).
		Order("sleep_start DESC").
		First(&rec).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &rec, nil
}

type WorkoutRepository struct {
	db *gorm.DB
}

func NewWorkoutRepository(db *gorm.DB) *WorkoutRepository {
	return &WorkoutRepository{db: db}
}

func (r *WorkoutRepository) Create(ctx context.Context, rec *domain.WorkoutRecord) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *WorkoutRepository) Update(ctx context.Context, rec *domain.WorkoutRecord) error {
	return updateOwned(ctx, r.db, rec, rec.UserID)
}

func (r *WorkoutRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return deleteOwned[domain.WorkoutRecord](ctx, r.db, userID, id)
}

func (r *WorkoutRepository) Get(ctx context.Context, userID, id uuid.UUID) (*domain.WorkoutRecord, error) {
	return getOwned[domain.WorkoutRecord](ctx, r.db, userID, id)
}

func (r *WorkoutRepository) ListOn(ctx context.Context, userID uuid.UUID, date string) ([]domain.WorkoutRecord, error) {
	return listOn[domain.WorkoutRecord](ctx, r.db, userID, date)
}

func (r *WorkoutRepository) ListRange(ctx context.Context, userID uuid.UUID, from, to string) ([]domain.WorkoutRecord, error) {
	return listRange[domain.WorkoutRecord](ctx, r.db, userID, from, to)
}

type MealRepository struct {
	db *gorm.DB
}

func NewMealRepository(db *gorm.DB) *MealRepository {
	return &MealRepository{db: db}
}

func (r *MealRepository) Create(ctx context.Context, rec *domain.MealRecord) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *MealRepository) Update(ctx context.Context, rec *domain.MealRecord) error {
	return updateOwned(ctx, r.db, rec, rec.UserID)
}

func (r *MealRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return deleteOwned[domain.MealRecord](ctx, r.db, userID, id)
}

func (r *MealRepository) Get(ctx context.Context, userID, id uuid.UUID) (*domain.MealRecord, error) {
	return getOwned[domain.MealRecord](ctx, r.db, userID, id)
}

func (r *MealRepository) ListOn(ctx context.Context, userID uuid.UUID, date string) ([]domain.MealRecord, error) {
	return listOn[domain.MealRecord](ctx, r.db, userID, date)
}

func (r *MealRepository) ListRange(ctx context.Context, userID uuid.UUID, from, to string) ([]domain.MealRecord, error) {
	return listRange[domain.MealRecord](ctx, r.db, userID, from, to)
}

type WaterRepository struct {
	db *gorm.DB
}

func NewWaterRepository(db *gorm.DB) *WaterRepository {
	return &WaterRepository{db: db}
}

func (r *WaterRepository) Create(ctx context.Context, rec *domain.WaterLogRecord) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *WaterRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return deleteOwned[domain.WaterLogRecord](ctx, r.db, userID, id)
}

func (r *WaterRepository) ListOn(ctx context.Context, userID uuid.UUID, date string) ([]domain.WaterLogRecord, error) {
	return listOn[domain.WaterLogRecord](ctx, r.db, userID, date)
}

func (r *WaterRepository) ListRange(ctx context.Context, userID uuid.UUID, from, to string) ([]domain.WaterLogRecord, error) {
	return listRange[domain.WaterLogRecord](ctx, r.db, userID, from, to)
}
