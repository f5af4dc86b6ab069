package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/vladimiradmaev/health-mate/internal/domain"
)

// AchievementView is a catalog achievement with the user's standing.
type AchievementView struct {
	domain.Achievement
	Progress   int        `json:"progress"`
	Percent    int        `json:"percent"`
	Unlocked   bool       `json:"unlocked"`
	UnlockedAt *time.Time `json:"unlockedAt,omitempty"`
}

// Achievements derives progress for every catalog achievement from the
// user's longest streaks and stored health scores, persists what changed
// and returns the catalog in display order.
func (s *ProgressService) Achievements(ctx context.Context, userID uuid.UUID) ([]AchievementView, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	catalog, err := s.achievements.Catalog(ctx)
	if err != nil {
		return nil, repoErr(err, "achievement")
	}
	stored, err := s.achievements.ListForUser(ctx, userID)
	if err != nil {
		return nil, repoErr(err, "achievement")
	}
	standings, err := s.streaks.Standings(ctx, userID, s.cal.Today(ctx, userID))
	if err != nil {
		return nil, err
	}

	longest := make(map[domain.StreakType]int, len(standings))
	for _, st := range standings {
		longest[st.Type] = st.Longest
	}
	byID := make(map[uint]domain.UserAchievement, len(stored))
	for _, ua := range stored {
		byID[ua.AchievementID] = ua
	}
	scoredDays := make(map[int]int)

	now := s.cal.Now()
	out := make([]AchievementView, 0, len(catalog))
	for _, a := range catalog {
		var progress int
		if a.Category == domain.AchievementHealthScore {
			n, ok := scoredDays[a.MinScore]
			if !ok {
				c, err := s.scores.CountAtLeast(ctx, userID, a.MinScore)
				if err != nil {
					return nil, repoErr(err, "health score")
				}
				n = int(c)
				scoredDays[a.MinScore] = n
			}
			progress = n
		} else {
			progress = longest[a.StreakType]
		}

		ua, ok := byID[a.ID]
		if !ok {
			ua = domain.UserAchievement{UserID: userID, AchievementID: a.ID}
		}
		ua, changed := applyProgress(ua, a, progress, now)
		if changed {
			if err := s.achievements.Save(ctx, &ua); err != nil {
				s.log.Warn("Failed to save achievement progress",
					"user_id", userID,
					"achievement", a.Code,
					"error", err,
				)
			} else if ua.IsUnlocked && !byID[a.ID].IsUnlocked {
				s.log.Info("Achievement unlocked", "user_id", userID, "achievement", a.Code)
			}
		}
		out = append(out, achievementView(a, ua))
	}
	return out, nil
}

// applyProgress sets the progress of ua and unlocks it once progress reaches
// the target. Unlocking is sticky and keeps the first unlock time. The second
// result reports whether anything changed.
func applyProgress(ua domain.UserAchievement, a domain.Achievement, progress int, now time.Time) (domain.UserAchievement, bool) {
	changed := ua.Progress != progress
	ua.Progress = progress
	if !ua.IsUnlocked && progress >= max(a.Target, 1) {
		at := now.UTC()
		ua.IsUnlocked = true
		ua.UnlockedAt = &at
		changed = true
	}
	return ua, changed
}

func achievementView(a domain.Achievement, ua domain.UserAchievement) AchievementView {
	v := AchievementView{
		Achievement: a,
		Progress:    ua.Progress,
		Unlocked:    ua.IsUnlocked,
		UnlockedAt:  ua.UnlockedAt,
	}
	v.Percent = min(100, ua.Progress*100/max(a.Target, 1))
	if v.Unlocked {
		v.Percent = 100
	}
	return v
}
