package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"github.com/vladimiradmaev/health-mate/internal/domain"
	"github.com/vladimiradmaev/health-mate/internal/interfaces"
	"github.com/vladimiradmaev/health-mate/internal/utils"
)

// ScoreComputer stores a day's health score.
type ScoreComputer interface {
	ComputeHealthScore(ctx context.Context, userID uuid.UUID, date string) (domain.HealthScore, error)
}

// Clock gives a user's current calendar date.
type Clock interface {
	Today(ctx context.Context, userID uuid.UUID) string
}

// Snapshotter fills in yesterday's score for users who never opened the dashboard.
type Snapshotter struct {
	users  interfaces.SnapshotInterface
	scores ScoreComputer
	clock  Clock
	log    *slog.Logger
}

func NewSnapshotter(users interfaces.SnapshotInterface, scores ScoreComputer, clock Clock, log *slog.Logger) *Snapshotter {
	if log == nil {
		log = slog.Default()
	}
	return &Snapshotter{users: users, scores: scores, clock: clock, log: log}
}

// RunOnce computes yesterday's score for every user, each in their own
// timezone. A failure for one user does not stop the others.
func (s *Snapshotter) RunOnce(ctx context.Context) (int, error) {
	ids, err := s.users.ListUserIDs(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list users: %w", err)
	}

	stored := 0
	for _, id := range ids {
		if ctx.Err() != nil {
			return stored, ctx.Err()
		}
		yesterday, err := utils.AddDays(s.clock.Today(ctx, id), -1)
		if err != nil {
			s.log.Warn("Snapshot skipped", "user_id", id, "error", err)
			continue
		}
		if _, err := s.scores.ComputeHealthScore(ctx, id, yesterday); err != nil {
			s.log.Warn("Snapshot failed", "user_id", id, "date", yesterday, "error", err)
			continue
		}
		stored++
	}

	s.log.Info("Health score snapshot finished", "users", len(ids), "stored", stored)
	return stored, nil
}

// Start schedules RunOnce daily at, an HH:MM time in loc, and starts the scheduler.
func Start(ctx context.Context, s *Snapshotter, at string, loc *time.Location) (gocron.Scheduler, error) {
	minutes, err := utils.TimeToMinutes(at)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		loc = time.UTC
	}

	sched, err := gocron.NewScheduler(gocron.WithLocation(loc))
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	_, err = sched.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(
			gocron.NewAtTime(uint(minutes/60), uint(minutes%60), 0),
		)),
		gocron.NewTask(func() {
			if _, err := s.RunOnce(ctx); err != nil {
				s.log.Error("Health score snapshot failed", "error", err)
			}
		}),
		gocron.WithName("health-score-snapshot"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = sched.Shutdown()
		return nil, fmt.Errorf("failed to schedule snapshot: %w", err)
	}

	sched.Start()
	s.log.Info("Snapshot scheduler started", "at", at, "timezone", loc.String())
	return sched, nil
}
