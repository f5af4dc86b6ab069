package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/vladimiradmaev/health-mate/internal/domain"
	apperrors "github.com/vladimiradmaev/health-mate/internal/errors"
	"github.com/vladimiradmaev/health-mate/internal/utils"
)

// ProfileReader looks up a user's profile.
type ProfileReader interface {
	Get(ctx context.Context, userID uuid.UUID) (*domain.Profile, error)
}

// Calendar resolves calendar dates in each user's own timezone.
type Calendar struct {
	profiles ProfileReader
	fallback *time.Location
	now      func() time.Time
	log      *slog.Logger
}

func NewCalendar(profiles ProfileReader, fallback *time.Location, log *slog.Logger) *Calendar {
	if fallback == nil {
		fallback = time.UTC
	}
	if log == nil {
		log = slog.Default()
	}
	return &Calendar{profiles: profiles, fallback: fallback, now: time.Now, log: log}
}

// SetClock replaces the wall clock, for tests and backfills.
func (c *Calendar) SetClock(now func() time.Time) {
	c.now = now
}

// Now returns the current instant.
func (c *Calendar) Now() time.Time {
	return c.now()
}

// Location returns the user's timezone, or the fallback when unknown.
func (c *Calendar) Location(ctx context.Context, userID uuid.UUID) *time.Location {
	if c.profiles == nil {
		return c.fallback
	}
	p, err := c.profiles.Get(ctx, userID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			c.log.Warn("Profile lookup failed, using fallback timezone", "user_id", userID, "error", err)
		}
		return c.fallback
	}
	return utils.LoadLocation(p.Timezone, c.fallback)
}

// Today returns the user's current calendar date.
func (c *Calendar) Today(ctx context.Context, userID uuid.UUID) string {
	return c.DateOf(ctx, userID, c.now())
}

// DateOf returns the user's calendar date of t.
func (c *Calendar) DateOf(ctx context.Context, userID uuid.UUID, t time.Time) string {
	return utils.DateIn(t, c.Location(ctx, userID))
}

// activityDate validates a date on which the user did something. Dates after
// the user's today are rejected so they never reach a streak or a score.
func (c *Calendar) activityDate(ctx context.Context, userID uuid.UUID, date, field string) error {
	if err := validateDate(date, field); err != nil {
		return err
	}
	if date > c.Today(ctx, userID) {
		return apperrors.NewValidationError(field + " cannot be in the future")
	}
	return nil
}

// LastDays returns the n dates ending on end, oldest first.
func LastDays(end string, n int) ([]string, error) {
	if n <= 0 {
		return nil, nil
	}
	start, err := utils.AddDays(end, -(n - 1))
	if err != nil {
		return nil, err
	}
	return utils.DateRange(start, end)
}

// resolveRange fills in a missing range as the last n days ending today and
// validates the bounds.
func (c *Calendar) resolveRange(ctx context.Context, userID uuid.UUID, from, to string, n int) (string, string, error) {
	if to == "" {
		to = c.Today(ctx, userID)
	}
	if from == "" {
		days, err := LastDays(to, n)
		if err != nil {
			return "", "", apperrors.NewValidationError("to must be a YYYY-MM-DD date")
		}
		from = days[0]
	}
	if !utils.ValidDate(from) || !utils.ValidDate(to) {
		return "", "", apperrors.NewValidationError("from and to must be YYYY-MM-DD dates")
	}
	if from > to {
		return "", "", apperrors.NewValidationError("from must not be after to")
	}
	return from, to, nil
}
