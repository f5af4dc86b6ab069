package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/vladimiradmaev/health-mate/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MoodRepository struct {
	db *gorm.DB
}

func NewMoodRepository(db *gorm.DB) *MoodRepository {
	return &MoodRepository{db: db}
}

// Upsert keeps one mood log per user per day.
func (r *MoodRepository) Upsert(ctx context.Context, m *domain.MoodLog) (domain.MoodLog, error) {
	row := *m
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"mood_level", "energy_level", "stress_level", "notes", "updated_at",
		}),
	}).Create(&row).Error
	if err != nil {
		return domain.MoodLog{}, err
	}

	stored, err := r.GetOn(ctx, m.UserID, m.Date)
	if err != nil {
		return domain.MoodLog{}, err
	}
	return *stored, nil
}

func (r *MoodRepository) GetOn(ctx context.Context, userID uuid.UUID, date string) (*domain.MoodLog, error) {
	var m domain.MoodLog
	if err := r.db.WithContext(ctx).Where("user_id = ? AND date = ?", userID, date).First(&m).Error; err != nil {
		return nil, notFound(err)
	}
	return &m, nil
}

func (r *MoodRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return deleteOwned[domain.MoodLog](ctx, r.db, userID, id)
}

func (r *MoodRepository) ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]domain.MoodLog, error) {
	var out []domain.MoodLog
	q := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("date DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&out).Error
	return out, err
}

type JournalRepository struct {
	db *gorm.DB
}

func NewJournalRepository(db *gorm.DB) *JournalRepository {
	return &JournalRepository{db: db}
}

func (r *JournalRepository) Create(ctx context.Context, e *domain.JournalEntry) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *JournalRepository) Update(ctx context.Context, e *domain.JournalEntry) error {
	return updateOwned(ctx, r.db, e, e.UserID)
}

func (r *JournalRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return deleteOwned[domain.JournalEntry](ctx, r.db, userID, id)
}

func (r *JournalRepository) Get(ctx context.Context, userID, id uuid.UUID) (*domain.JournalEntry, error) {
	return getOwned[domain.JournalEntry](ctx, r.db, userID, id)
}

// List returns entries newest first. A non-positive limit returns all.
func (r *JournalRepository) List(ctx context.Context, userID uuid.UUID, limit int) ([]domain.JournalEntry, error) {
	var out []domain.JournalEntry
	q := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("date DESC, created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&out).Error
	return out, err
}
