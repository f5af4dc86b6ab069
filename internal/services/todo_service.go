package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/vladimiradmaev/health-mate/internal/domain"
	apperrors "github.com/vladimiradmaev/health-mate/internal/errors"
)

var todoPriorities = map[string]bool{"Low": true, "Medium": true, "High": true}

type TodoInput struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Priority    string  `json:"priority"`
	DueDate     *string `json:"dueDate"`
	IsCompleted bool    `json:"isCompleted"`
}

func (in *TodoInput) normalize() error {
	if blank(in.Title) {
		return apperrors.NewValidationError("todo title is required")
	}
	in.Category = orDefault(in.Category, "General")
	in.Priority = orDefault(in.Priority, "Medium")
	if !todoPriorities[in.Priority] {
		return apperrors.NewValidationError("priority must be Low, Medium or High")
	}
	if in.DueDate != nil && *in.DueDate == "" {
		in.DueDate = nil
	}
	if in.DueDate != nil {
		if err := validateDate(*in.DueDate, "due date"); err != nil {
			return err
		}
	}
	return nil
}

type TodoService struct {
	todos domain.TodoRepository
	cal   *Calendar
}

func NewTodoService(todos domain.TodoRepository, cal *Calendar) *TodoService {
	return &TodoService{todos: todos, cal: cal}
}

func (s *TodoService) Create(ctx context.Context, userID uuid.UUID, in TodoInput) (domain.Todo, error) {
	if err := requireUser(userID); err != nil {
		return domain.Todo{}, err
	}
	if err := in.normalize(); err != nil {
		return domain.Todo{}, err
	}
	t := domain.Todo{
		UserID:      userID,
		Title:       in.Title,
		Description: in.Description,
		Category:    in.Category,
		Priority:    in.Priority,
		Date:        s.cal.Today(ctx, userID),
		DueDate:     in.DueDate,
		IsCompleted: in.IsCompleted,
	}
	if err := s.todos.Create(ctx, &t); err != nil {
		return domain.Todo{}, repoErr(err, "todo")
	}
	return t, nil
}

func (s *TodoService) Update(ctx context.Context, userID, id uuid.UUID, in TodoInput) (domain.Todo, error) {
	if err := requireUser(userID); err != nil {
		return domain.Todo{}, err
	}
	if err := in.normalize(); err != nil {
		return domain.Todo{}, err
	}
	t, err := s.todos.Get(ctx, userID, id)
	if err != nil {
		return domain.Todo{}, repoErr(err, "todo")
	}
	t.Title = in.Title
	t.Description = in.Description
	t.Category = in.Category
	t.Priority = in.Priority
	t.DueDate = in.DueDate
	t.IsCompleted = in.IsCompleted
	if err := s.todos.Update(ctx, t); err != nil {
		return domain.Todo{}, repoErr(err, "todo")
	}
	return *t, nil
}

// Toggle flips the completion flag.
func (s *TodoService) Toggle(ctx context.Context, userID, id uuid.UUID) (domain.Todo, error) {
	if err := requireUser(userID); err != nil {
		return domain.Todo{}, err
	}
	t, err := s.todos.Get(ctx, userID, id)
	if err != nil {
		return domain.Todo{}, repoErr(err, "todo")
	}
	t.IsCompleted = !t.IsCompleted
	if err := s.todos.Update(ctx, t); err != nil {
		return domain.Todo{}, repoErr(err, "todo")
	}
	return *t, nil
}

func (s *TodoService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if err := requireUser(userID); err != nil {
		return err
	}
	return repoErr(s.todos.Delete(ctx, userID, id), "todo")
}

// List returns pending todos first, ordered by due date with undated ones last.
func (s *TodoService) List(ctx context.Context, userID uuid.UUID, pendingOnly bool, limit int) ([]domain.Todo, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	out, err := s.todos.List(ctx, userID, pendingOnly, clampLimit(limit, 100, 500))
	if err != nil {
		return nil, repoErr(err, "todo")
	}
	return out, nil
}
