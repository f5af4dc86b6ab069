package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/vladimiradmaev/health-mate/internal/domain"
	"gorm.io/gorm"
)

type HabitRepository struct {
	db *gorm.DB
}

func NewHabitRepository(db *gorm.DB) *HabitRepository {
	return &HabitRepository{db: db}
}

func (r *HabitRepository) Create(ctx context.Context, h *domain.Habit) error {
	return r.db.WithContext(ctx).Create(h).Error
}

func (r *HabitRepository) Update(ctx context.Context, h *domain.Habit) error {
	return updateOwned(ctx, r.db, h, h.UserID)
}

// Delete removes the habit together with its completion logs.
func (r *HabitRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("habit_id = ? AND user_id = ?", id, userID).Delete(&domain.HabitLog{}).Error; err != nil {
			return err
		}
		return deleteOwned[domain.Habit](ctx, tx, userID, id)
	})
}

func (r *HabitRepository) Get(ctx context.Context, userID, id uuid.UUID) (*domain.Habit, error) {
	return getOwned[domain.Habit](ctx, r.db, userID, id)
}

func (r *HabitRepository) List(ctx context.Context, userID uuid.UUID, activeOnly bool) ([]domain.Habit, error) {
	var out []domain.Habit
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	err := q.Order("created_at ASC").Find(&out).Error
	return out, err
}

func (r *HabitRepository) GetLog(ctx context.Context, habitID uuid.UUID, date string) (*domain.HabitLog, error) {
	var l domain.HabitLog
	if err := r.db.WithContext(ctx).Where("habit_id = ? AND date = ?", habitID, date).First(&l).Error; err != nil {
		return nil, notFound(err)
	}
	return &l, nil
}

func (r *HabitRepository) CreateLog(ctx context.Context, l *domain.HabitLog) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *HabitRepository) DeleteLog(ctx context.Context, userID, id uuid.UUID) error {
	return deleteOwned[domain.HabitLog](ctx, r.db, userID, id)
}

func (r *HabitRepository) ListLogs(ctx context.Context, userID uuid.UUID, from, to string) ([]domain.HabitLog, error) {
	return listRange[domain.HabitLog](ctx, r.db, userID, from, to)
}

func (r *HabitRepository) ListLogsForHabit(ctx context.Context, habitID uuid.UUID) ([]domain.HabitLog, error) {
	var out []domain.HabitLog
	err := r.db.WithContext(ctx).Where("habit_id = ?", habitID).Order("date ASC").Find(&out).Error
	return out, err
}

type TodoRepository struct {
	db *gorm.DB
}

func NewTodoRepository(db *gorm.DB) *TodoRepository {
	return &TodoRepository{db: db}
}

func (r *TodoRepository) Create(ctx context.Context, t *domain.Todo) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *TodoRepository) Update(ctx context.Context, t *domain.Todo) error {
	return updateOwned(ctx, r.db, t, t.UserID)
}

func (r *TodoRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return deleteOwned[domain.Todo](ctx, r.db, userID, id)
}

func (r *TodoRepository) Get(ctx context.Context, userID, id uuid.UUID) (*domain.Todo, error) {
	return getOwned[domain.Todo](ctx, r.db, userID, id)
}

// List orders pending todos first, then by due date with undated ones last.
func (r *TodoRepository) List(ctx context.Context, userID uuid.UUID, pendingOnly bool, limit int) ([]domain.Todo, error) {
	var out []domain.Todo
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if pendingOnly {
		q = q.Where("is_completed = ?", false)
	}
	q = q.Order("is_completed ASC").
		Order("CASE WHEN due_date IS NULL THEN 1 ELSE 0 END").
		Order("due_date ASC").
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&out).Error
	return out, err
}

type NoteRepository struct {
	db *gorm.DB
}

func NewNoteRepository(db *gorm.DB) *NoteRepository {
	return &NoteRepository{db: db}
}

func (r *NoteRepository) Create(ctx context.Context, n *domain.Note) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *NoteRepository) Update(ctx context.Context, n *domain.Note) error {
	return updateOwned(ctx, r.db, n, n.UserID)
}

func (r *NoteRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return deleteOwned[domain.Note](ctx, r.db, userID, id)
}

func (r *NoteRepository) Get(ctx context.Context, userID, id uuid.UUID) (*domain.Note, error) {
	return getOwned[domain.Note](ctx, r.db, userID, id)
}

// List returns the most recently edited notes, optionally filtered by a
// case-insensitive match on title or content.
func (r *NoteRepository) List(ctx context.Context, userID uuid.UUID, query string, limit int) ([]domain.Note, error) {
	var out []domain.Note
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if query != "" {
		like := "%" + lowerLike(query) + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(content) LIKE ?", like, like)
	}
	q = q.Order("updated_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&out).Error
	return out, err
}
