package streak

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/vladimiradmaev/health-mate/internal/domain"
	apperrors "github.com/vladimiradmaev/health-mate/internal/errors"
)

// Store persists one streak record per user and streak type.
type Store interface {
	Get(ctx context.Context, userID uuid.UUID, t domain.StreakType) (*domain.StreakRecord, error)
	Save(ctx context.Context, r *domain.StreakRecord) error
	List(ctx context.Context, userID uuid.UUID) ([]domain.StreakRecord, error)
	DeleteAll(ctx context.Context, userID uuid.UUID) (int64, error)
}

// Clock reports the current date in a user's timezone.
type Clock interface {
	Today(ctx context.Context, userID uuid.UUID) string
}

// Tracker updates persisted streaks.
//
// Updates are read-modify-write without locking; two concurrent updates for
// the same user and type resolve as last write wins.
type Tracker struct {
	store Store
	clock Clock
	log   *slog.Logger
}

// NewTracker returns a Tracker. A nil clock disables the future date check.
func NewTracker(store Store, clock Clock, log *slog.Logger) *Tracker {
	if log == nil {
		log = slog.Default()
	}
	return &Tracker{store: store, clock: clock, log: log}
}

// UpdateStreak records an activity on day and returns the resulting record.
func (t *Tracker) UpdateStreak(ctx context.Context, userID uuid.UUID, st domain.StreakType, day string) (domain.StreakRecord, error) {
	if userID == uuid.Nil {
		return domain.StreakRecord{}, apperrors.NewValidationError("user id is required")
	}
	if !st.Valid() {
		return domain.StreakRecord{}, apperrors.NewValidationError(fmt.Sprintf("unknown streak type %q", st))
	}
	if t.clock != nil && day > t.clock.Today(ctx, userID) {
		return domain.StreakRecord{}, apperrors.NewValidationError("activity date cannot be in the future")
	}

	rec, err := t.store.Get(ctx, userID, st)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		rec = &domain.StreakRecord{UserID: userID, StreakType: st}
	case err != nil:
		return domain.StreakRecord{}, apperrors.NewDatabaseError(err).WithContext("streak_type", string(st))
	}

	outcome, err := Advance(rec, day)
	if err != nil {
		return domain.StreakRecord{}, apperrors.NewValidationError("activity date must be YYYY-MM-DD")
	}

	if outcome == Backdated || (outcome == Unchanged && rec.ID != uuid.Nil) {
		t.log.Debug("Streak not changed", "user_id", userID, "streak_type", st, "date", day, "outcome", outcome.String())
		return *rec, nil
	}

	if err := t.store.Save(ctx, rec); err != nil {
		return domain.StreakRecord{}, apperrors.NewDatabaseError(err).WithContext("streak_type", string(st))
	}

	t.log.Info("Streak updated",
		"user_id", userID,
		"streak_type", st,
		"outcome", outcome.String(),
		"current", rec.CurrentStreak,
		"longest", rec.LongestStreak,
	)
	return *rec, nil
}

// Standing is a persisted streak as it reads on a given day.
type Standing struct {
	Type             domain.StreakType `json:"streakType"`
	Current          int               `json:"currentStreak"`
	Longest          int               `json:"longestStreak"`
	LastActivityDate string            `json:"lastActivityDate,omitempty"`
}

// Standings returns one entry per streak type. Types without a record, or
// whose run ended before yesterday, read as zero current.
func (t *Tracker) Standings(ctx context.Context, userID uuid.UUID, today string) ([]Standing, error) {
	recs, err := t.store.List(ctx, userID)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}

	byType := make(map[domain.StreakType]domain.StreakRecord, len(recs))
	for _, r := range recs {
		byType[r.StreakType] = r
	}

	out := make([]Standing, 0, len(domain.StreakTypes))
	for _, st := range domain.StreakTypes {
		r, ok := byType[st]
		s := Standing{Type: st}
		if ok {
			s.Current = CurrentAsOf(r, today)
			s.Longest = r.LongestStreak
			s.LastActivityDate = r.LastActivityDate
		}
		out = append(out, s)
	}
	return out, nil
}

// Reset deletes every streak record of the user.
func (t *Tracker) Reset(ctx context.Context, userID uuid.UUID) (int64, error) {
	n, err := t.store.DeleteAll(ctx, userID)
	if err != nil {
		return 0, apperrors.NewDatabaseError(err)
	}
	return n, nil
}
