// Package streak computes consecutive-day activity streaks.
//
// A single rule, Advance, moves a streak forward by one activity day. The
// persisted records and the on-the-fly display values are both produced by it.
package streak

import (
	"sort"

	"github.com/vladimiradmaev/health-mate/internal/domain"
	"github.com/vladimiradmaev/health-mate/internal/utils"
)

// Outcome describes what Advance did to a record.
type Outcome int

const (
	// Started means the record had no previous activity.
	Started Outcome = iota
	// Extended means the activity was the day after the last one.
	Extended
	// Unchanged means the activity was on the same day as the last one.
	Unchanged
	// Restarted means one or more days were missed.
	Restarted
	// Backdated means the activity was before the last one and was ignored.
	Backdated
)

func (o Outcome) String() string {
	switch o {
	case Started:
		return "started"
	case Extended:
		return "extended"
	case Unchanged:
		return "unchanged"
	case Restarted:
		return "restarted"
	case Backdated:
		return "backdated"
	default:
		return "unknown"
	}
}

// Advance applies one activity day to rec in place.
//
// An activity before the last recorded day leaves rec untouched. A malformed
// stored date is treated as a broken streak.
func Advance(rec *domain.StreakRecord, day string) (Outcome, error) {
	if _, err := utils.ParseDate(day); err != nil {
		return Unchanged, err
	}

	if rec.LastActivityDate == "" || rec.CurrentStreak <= 0 {
		rec.CurrentStreak = 1
		rec.LongestStreak = max(rec.LongestStreak, 1)
		rec.LastActivityDate = day
		return Started, nil
	}

	gap, err := utils.DaysBetween(rec.LastActivityDate, day)
	if err != nil {
		rec.CurrentStreak = 1
		rec.LongestStreak = max(rec.LongestStreak, 1)
		rec.LastActivityDate = day
		return Restarted, nil
	}

	var out Outcome
	switch {
	case gap < 0:
		return Backdated, nil
	case gap == 0:
		out = Unchanged
	case gap == 1:
		rec.CurrentStreak++
		out = Extended
	default:
		rec.CurrentStreak = 1
		out = Restarted
	}

	rec.LongestStreak = max(rec.LongestStreak, rec.CurrentStreak)
	rec.LastActivityDate = day
	return out, nil
}

// Summary is a streak computed from a set of activity days.
type Summary struct {
	Current      int    `json:"current"`
	Longest      int    `json:"longest"`
	LastActivity string `json:"lastActivity,omitempty"`
}

// Summarize folds Advance over the distinct valid days up to today. Current is
// the run ending today or yesterday, and zero otherwise. Malformed and future
// days are skipped.
func Summarize(days []string, today string) (Summary, error) {
	if _, err := utils.ParseDate(today); err != nil {
		return Summary{}, err
	}

	seen := make(map[string]struct{}, len(days))
	valid := make([]string, 0, len(days))
	for _, d := range days {
		if !utils.ValidDate(d) || d > today {
			continue
		}
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		valid = append(valid, d)
	}
	sort.Strings(valid)

	var rec domain.StreakRecord
	for _, d := range valid {
		if _, err := Advance(&rec, d); err != nil {
			return Summary{}, err
		}
	}

	return Summary{
		Current:      CurrentAsOf(rec, today),
		Longest:      rec.LongestStreak,
		LastActivity: rec.LastActivityDate,
	}, nil
}

// CurrentAsOf returns the stored current streak if it is still alive on
// today, meaning the last activity was yesterday or today. A record whose
// last activity lies after today is not trusted and reads as zero.
func CurrentAsOf(rec domain.StreakRecord, today string) int {
	if rec.LastActivityDate == "" {
		return 0
	}
	gap, err := utils.DaysBetween(rec.LastActivityDate, today)
	if err != nil || gap < 0 || gap > 1 {
		return 0
	}
	return rec.CurrentStreak
}
