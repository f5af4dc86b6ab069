package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/vladimiradmaev/health-mate/internal/domain"
	apperrors "github.com/vladimiradmaev/health-mate/internal/errors"
)

type NoteInput struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category"`
}

func (in NoteInput) validate() error {
	if blank(in.Title) {
		return apperrors.NewValidationError("note title is required")
	}
	return nil
}

type NoteService struct {
	notes domain.NoteRepository
}

func NewNoteService(notes domain.NoteRepository) *NoteService {
	return &NoteService{notes: notes}
}

func (s *NoteService) Create(ctx context.Context, userID uuid.UUID, in NoteInput) (domain.Note, error) {
	if err := requireUser(userID); err != nil {
		return domain.Note{}, err
	}
	if err := in.validate(); err != nil {
		return domain.Note{}, err
	}
	n := domain.Note{
		UserID:   userID,
		Title:    strings.TrimSpace(in.Title),
		Content:  in.Content,
		Category: orDefault(in.Category, "General"),
	}
	if err := s.notes.Create(ctx, &n); err != nil {
		return domain.Note{}, repoErr(err, "note")
	}
	return n, nil
}

func (s *NoteService) Update(ctx context.Context, userID, id uuid.UUID, in NoteInput) (domain.Note, error) {
	if err := requireUser(userID); err != nil {
		return domain.Note{}, err
	}
	if err := in.validate(); err != nil {
		return domain.Note{}, err
	}
	n, err := s.notes.Get(ctx, userID, id)
	if err != nil {
		return domain.Note{}, repoErr(err, "note")
	}
	n.Title = strings.TrimSpace(in.Title)
	n.Content = in.Content
	n.Category = orDefault(in.Category, n.Category)
	if err := s.notes.Update(ctx, n); err != nil {
		return domain.Note{}, repoErr(err, "note")
	}
	return *n, nil
}

func (s *NoteService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if err := requireUser(userID); err != nil {
		return err
	}
	return repoErr(s.notes.Delete(ctx, userID, id), "note")
}

// List returns recently edited notes, filtered by query when it is not empty.
func (s *NoteService) List(ctx context.Context, userID uuid.UUID, query string, limit int) ([]domain.Note, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	out, err := s.notes.List(ctx, userID, strings.TrimSpace(query), clampLimit(limit, 50, 500))
	if err != nil {
		return nil, repoErr(err, "note")
	}
	return out, nil
}
