package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/vladimiradmaev/health-mate/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AchievementRepository reads the seeded catalog and stores per-user progress.
type AchievementRepository struct {
	db *gorm.DB
}

func NewAchievementRepository(db *gorm.DB) *AchievementRepository {
	return &AchievementRepository{db: db}
}

func (r *AchievementRepository) Catalog(ctx context.Context) ([]domain.Achievement, error) {
	var out []domain.Achievement
	err := r.db.WithContext(ctx).Order("category ASC, target ASC, id ASC").Find(&out).Error
	return out, err
}

func (r *AchievementRepository) ListForUser(ctx context.Context, userID uuid.UUID) ([]domain.UserAchievement, error) {
	var out []domain.UserAchievement
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&out).Error
	return out, err
}

// Save upserts on (user_id, achievement_id) and reloads the stored row.
func (r *AchievementRepository) Save(ctx context.Context, ua *domain.UserAchievement) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "achievement_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"progress", "is_unlocked", "unlocked_at", "updated_at",
		}),
	}).Create(ua).Error
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Where("user_id = ? AND achievement_id = ?", ua.UserID, ua.AchievementID).
		First(ua).Error
}

func (r *AchievementRepository) DeleteAll(ctx context.Context, userID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&domain.UserAchievement{})
	return res.RowsAffected, res.Error
}
