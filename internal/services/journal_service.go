package services

import (
	"context"
	"log/slog"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/vladimiradmaev/health-mate/internal/domain"
	apperrors "github.com/vladimiradmaev/health-mate/internal/errors"
	"github.com/vladimiradmaev/health-mate/internal/streak"
)

type JournalInput struct {
	Date        string   `json:"date"`
	Title       string   `json:"title"`
	Content     string   `json:"content"`
	MoodRating  int      `json:"moodRating"`
	EnergyLevel int      `json:"energyLevel"`
	Tags        []string `json:"tags"`
}

func (in JournalInput) validate() error {
	if blank(in.Title) && blank(in.Content) {
		return apperrors.NewValidationError("journal entry needs a title or content")
	}
	if in.MoodRating != 0 {
		if err := validateLevel(in.MoodRating, "mood rating"); err != nil {
			return err
		}
	}
	if in.EnergyLevel != 0 {
		if err := validateLevel(in.EnergyLevel, "energy level"); err != nil {
			return err
		}
	}
	return nil
}

// JournalStats summarises a user's writing.
type JournalStats struct {
	TotalEntries     int     `json:"totalEntries"`
	EntriesThisMonth int     `json:"entriesThisMonth"`
	TotalWords       int     `json:"totalWords"`
	AverageMood      float64 `json:"averageMood"`
	WritingStreak    int     `json:"writingStreak"`
}

var htmlTag = regexp.MustCompile(`<[^>]*>`)

// WordCount counts words in possibly rich-text content.
func WordCount(content string) int {
	return len(strings.Fields(htmlTag.ReplaceAllString(content, " ")))
}

type JournalService struct {
	journal domain.JournalRepository
	streaks StreakUpdater
	cal     *Calendar
	log     *slog.Logger
}

func NewJournalService(journal domain.JournalRepository, streaks StreakUpdater, cal *Calendar, log *slog.Logger) *JournalService {
	if log == nil {
		log = slog.Default()
	}
	return &JournalService{journal: journal, streaks: streaks, cal: cal, log: log}
}

func (s *JournalService) Create(ctx context.Context, userID uuid.UUID, in JournalInput) (domain.JournalEntry, error) {
	if err := requireUser(userID); err != nil {
		return domain.JournalEntry{}, err
	}
	if in.Date == "" {
		in.Date = s.cal.Today(ctx, userID)
	}
	if err := s.cal.activityDate(ctx, userID, in.Date, "date"); err != nil {
		return domain.JournalEntry{}, err
	}
	if err := in.validate(); err != nil {
		return domain.JournalEntry{}, err
	}

	e := domain.JournalEntry{
		UserID:      userID,
		Date:        in.Date,
		Title:       in.Title,
		Content:     in.Content,
		MoodRating:  in.MoodRating,
		EnergyLevel: in.EnergyLevel,
		Tags:        normalizeTags(in.Tags),
	}
	if err := s.journal.Create(ctx, &e); err != nil {
		return domain.JournalEntry{}, repoErr(err, "journal entry")
	}
	if _, err := s.streaks.UpdateStreak(ctx, userID, domain.StreakJournal, e.Date); err != nil {
		s.log.Warn("Failed to update journal streak", "user_id", userID, "date", e.Date, "error", err)
	}
	return e, nil
}

func (s *JournalService) Update(ctx context.Context, userID, id uuid.UUID, in JournalInput) (domain.JournalEntry, error) {
	if err := requireUser(userID); err != nil {
		return domain.JournalEntry{}, err
	}
	if err := in.validate(); err != nil {
		return domain.JournalEntry{}, err
	}
	e, err := s.journal.Get(ctx, userID, id)
	if err != nil {
		return domain.JournalEntry{}, repoErr(err, "journal entry")
	}
	e.Title = in.Title
	e.Content = in.Content
	e.MoodRating = in.MoodRating
	e.EnergyLevel = in.EnergyLevel
	e.Tags = normalizeTags(in.Tags)
	if err := s.journal.Update(ctx, e); err != nil {
		return domain.JournalEntry{}, repoErr(err, "journal entry")
	}
	return *e, nil
}

func (s *JournalService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if err := requireUser(userID); err != nil {
		return err
	}
	return repoErr(s.journal.Delete(ctx, userID, id), "journal entry")
}

func (s *JournalService) List(ctx context.Context, userID uuid.UUID, limit int) ([]domain.JournalEntry, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	out, err := s.journal.List(ctx, userID, clampLimit(limit, 50, 500))
	if err != nil {
		return nil, repoErr(err, "journal entry")
	}
	return out, nil
}

func (s *JournalService) Stats(ctx context.Context, userID uuid.UUID) (JournalStats, error) {
	if err := requireUser(userID); err != nil {
		return JournalStats{}, err
	}
	entries, err := s.journal.List(ctx, userID, 0)
	if err != nil {
		return JournalStats{}, repoErr(err, "journal entry")
	}

	today := s.cal.Today(ctx, userID)
	month := today[:7]

	var stats JournalStats
	var moodSum, moodCount int
	days := make([]string, 0, len(entries))
	for _, e := range entries {
		stats.TotalEntries++
		if strings.HasPrefix(e.Date, month) {
			stats.EntriesThisMonth++
		}
		stats.TotalWords += WordCount(e.Content)
		if e.MoodRating > 0 {
			moodSum += e.MoodRating
			moodCount++
		}
		days = append(days, e.Date)
	}
	if moodCount > 0 {
		stats.AverageMood = round1(float64(moodSum) / float64(moodCount))
	}

	sum, err := streak.Summarize(days, today)
	if err != nil {
		return JournalStats{}, apperrors.NewInternalError(err)
	}
	stats.WritingStreak = sum.Current
	return stats, nil
}

func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
