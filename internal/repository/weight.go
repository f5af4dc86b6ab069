package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/vladimiradmaev/health-mate/internal/domain"
	"gorm.io/gorm"
)

type WeightRepository struct {
	db *gorm.DB
}

func NewWeightRepository(db *gorm.DB) *WeightRepository {
	return &WeightRepository{db: db}
}

func (r *WeightRepository) CreateEntry(ctx context.Context, e *domain.WeightEntry) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *WeightRepository) DeleteEntry(ctx context.Context, userID, id uuid.UUID) error {
	return deleteOwned[domain.WeightEntry](ctx, r.db, userID, id)
}

func (r *WeightRepository) ListEntries(ctx context.Context, userID uuid.UUID, limit int) ([]domain.WeightEntry, error) {
	var out []domain.WeightEntry
	q := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("date DESC, created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&out).Error
	return out, err
}

func (r *WeightRepository) LatestEntry(ctx context.Context, userID uuid.UUID) (*domain.WeightEntry, error) {
	var e domain.WeightEntry
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC, created_at DESC").
		First(&e).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &e, nil
}

func (r *WeightRepository) ActiveGoal(ctx context.Context, userID uuid.UUID) (*domain.WeightGoal, error) {
	var g domain.WeightGoal
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("created_at DESC").
		First(&g).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &g, nil
}

// ReplaceGoal deactivates any active goal and stores g as the active one.
func (r *WeightRepository) ReplaceGoal(ctx context.Context, g *domain.WeightGoal) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&domain.WeightGoal{}).
			Where("user_id = ? AND is_active = ?", g.UserID, true).
			Update("is_active", false).Error; err != nil {
			return err
		}
		g.IsActive = true
		return tx.Create(g).Error
	})
}

func (r *WeightRepository) DeactivateGoals(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&domain.WeightGoal{}).
		Where("user_id = ? AND is_active = ?", userID, true).
		Update("is_active", false).Error
}
