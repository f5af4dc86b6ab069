package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/vladimiradmaev/health-mate/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProfileRepository handles profile data operations
type ProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) Get(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	var p domain.Profile
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&p).Error; err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

// Save inserts the profile or overwrites every editable column.
func (r *ProfileRepository) Save(ctx context.Context, p *domain.Profile) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name", "age", "gender", "weight_kg", "height_cm", "water_goal_ml", "timezone", "updated_at",
		}),
	}).Create(p).Error
}

func (r *ProfileRepository) UpdateWeight(ctx context.Context, userID uuid.UUID, weightKg float64) error {
	res := r.db.WithContext(ctx).Model(&domain.Profile{}).Where("user_id = ?", userID).Update("weight_kg", weightKg)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ProfileRepository) ListUserIDs(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Model(&domain.Profile{}).Order("created_at ASC").Pluck("user_id", &ids).Error
	return ids, err
}

// TelegramLinkRepository maps telegram accounts to users.
type TelegramLinkRepository struct {
	db *gorm.DB
}

func NewTelegramLinkRepository(db *gorm.DB) *TelegramLinkRepository {
	return &TelegramLinkRepository{db: db}
}

func (r *TelegramLinkRepository) GetByTelegramID(ctx context.Context, telegramID int64) (*domain.TelegramLink, error) {
	var link domain.TelegramLink
	if err := r.db.WithContext(ctx).Where("telegram_id = ?", telegramID).First(&link).Error; err != nil {
		return nil, notFound(err)
	}
	return &link, nil
}

func (r *TelegramLinkRepository) Create(ctx context.Context, link *domain.TelegramLink) error {
	return r.db.WithContext(ctx).Create(link).Error
}
