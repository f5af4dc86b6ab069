package repository

import (
	"context"
	"strings"

	"github.com/vladimiradmaev/health-mate/internal/domain"
	"gorm.io/gorm"
)

// ReferenceRepository reads the seeded food and exercise tables.
type ReferenceRepository struct {
	db *gorm.DB
}

func NewReferenceRepository(db *gorm.DB) *ReferenceRepository {
	return &ReferenceRepository{db: db}
}

func lowerLike(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer("%", "", "_", "").Replace(s)
}

func (r *ReferenceRepository) SearchFoods(ctx context.Context, query string, limit int) ([]domain.Food, error) {
	var out []domain.Food
	q := r.db.WithContext(ctx).Order("name ASC")
	if query != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+lowerLike(query)+"%")
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&out).Error
	return out, err
}

func (r *ReferenceRepository) GetFood(ctx context.Context, id uint) (*domain.Food, error) {
	var f domain.Food
	if err := r.db.WithContext(ctx).First(&f, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &f, nil
}

func (r *ReferenceRepository) SearchExercises(ctx context.Context, query string, limit int) ([]domain.Exercise, error) {
	var out []domain.Exercise
	q := r.db.WithContext(ctx).Order("name ASC")
	if query != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+lowerLike(query)+"%")
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&out).Error
	return out, err
}

func (r *ReferenceRepository) GetExerciseByName(ctx context.Context, name string) (*domain.Exercise, error) {
	var e domain.Exercise
	if err := r.db.WithContext(ctx).Where("LOWER(name) = ?", strings.ToLower(strings.TrimSpace(name))).First(&e).Error; err != nil {
		return nil, notFound(err)
	}
	return &e, nil
}
