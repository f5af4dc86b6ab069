package services

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/vladimiradmaev/health-mate/internal/domain"
	"github.com/vladimiradmaev/health-mate/internal/streak"
)

// StreakBoard reads and clears persisted streaks.
type StreakBoard interface {
	Standings(ctx context.Context, userID uuid.UUID, today string) ([]streak.Standing, error)
	Reset(ctx context.Context, userID uuid.UUID) (int64, error)
}

// ResetResult reports how many rows a progress reset removed.
type ResetResult struct {
	StreaksDeleted      int64 `json:"streaksDeleted"`
	HealthScoresDeleted int64 `json:"healthScoresDeleted"`
	AchievementsDeleted int64 `json:"achievementsDeleted"`
}

type ProgressService struct {
	streaks      StreakBoard
	computer     ScoreComputer
	scores       domain.HealthScoreRepository
	achievements domain.AchievementRepository
	cal          *Calendar
	log          *slog.Logger
}

func NewProgressService(streaks StreakBoard, computer ScoreComputer, scores domain.HealthScoreRepository, achievements domain.AchievementRepository, cal *Calendar, log *slog.Logger) *ProgressService {
	if log == nil {
		log = slog.Default()
	}
	return &ProgressService{streaks: streaks, computer: computer, scores: scores, achievements: achievements, cal: cal, log: log}
}

// ComputeHealthScore scores date, defaulting to the user's today, and stores it.
func (s *ProgressService) ComputeHealthScore(ctx context.Context, userID uuid.UUID, date string) (domain.HealthScore, error) {
	if err := requireUser(userID); err != nil {
		return domain.HealthScore{}, err
	}
	if date == "" {
		date = s.cal.Today(ctx, userID)
	}
	if err := s.cal.activityDate(ctx, userID, date, "date"); err != nil {
		return domain.HealthScore{}, err
	}
	return s.computer.ComputeHealthScore(ctx, userID, date)
}

// Streaks lists every streak type as it stands today.
func (s *ProgressService) Streaks(ctx context.Context, userID uuid.UUID) ([]streak.Standing, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	return s.streaks.Standings(ctx, userID, s.cal.Today(ctx, userID))
}

// HealthScores returns stored scores between from and to, defaulting to the last 30 days.
func (s *ProgressService) HealthScores(ctx context.Context, userID uuid.UUID, from, to string) ([]domain.HealthScore, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	from, to, err := s.cal.resolveRange(ctx, userID, from, to, 30)
	if err != nil {
		return nil, err
	}
	out, err := s.scores.ListRange(ctx, userID, from, to)
	if err != nil {
		return nil, repoErr(err, "health score")
	}
	return out, nil
}

// ResetProgress deletes all streaks, health scores and achievement progress
// of the user. Logged activity is kept.
func (s *ProgressService) ResetProgress(ctx context.Context, userID uuid.UUID) (ResetResult, error) {
	if err := requireUser(userID); err != nil {
		return ResetResult{}, err
	}
	var res ResetResult
	var err error
	if res.StreaksDeleted, err = s.streaks.Reset(ctx, userID); err != nil {
		return ResetResult{}, err
	}
	if res.HealthScoresDeleted, err = s.scores.DeleteAll(ctx, userID); err != nil {
		return ResetResult{}, repoErr(err, "health score")
	}
	if res.AchievementsDeleted, err = s.achievements.DeleteAll(ctx, userID); err != nil {
		return ResetResult{}, repoErr(err, "achievement")
	}
	s.log.Info("Progress reset",
		"user_id", userID,
		"streaks_deleted", res.StreaksDeleted,
		"health_scores_deleted", res.HealthScoresDeleted,
		"achievements_deleted", res.AchievementsDeleted,
	)
	return res, nil
}
