package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/vladimiradmaev/health-mate/internal/domain"
	"github.com/vladimiradmaev/health-mate/internal/logger"
)

type fakeUsers struct {
	ids []uuid.UUID
	err error
}

func (f fakeUsers) ListUserIDs(context.Context) ([]uuid.UUID, error) {
	return f.ids, f.err
}

type fakeScores struct {
	calls map[uuid.UUID]string
	fail  uuid.UUID
}

func (f *fakeScores) ComputeHealthScore(_ context.Context, userID uuid.UUID, date string) (domain.HealthScore, error) {
	if userID == f.fail {
		return domain.HealthScore{}, errors.New("boom")
	}
	f.calls[userID] = date
	return domain.HealthScore{UserID: userID, Date: date}, nil
}

type fixedClock map[uuid.UUID]string

func (c fixedClock) Today(_ context.Context, userID uuid.UUID) string {
	return c[userID]
}

func TestRunOnceScoresYesterdayPerUser(t *testing.T) {
	a, b, broken := uuid.New(), uuid.New(), uuid.New()
	scores := &fakeScores{calls: map[uuid.UUID]string{}, fail: broken}
	clock := fixedClock{a: "2024-03-10", b: "2024-03-01", broken: "2024-03-10"}

	s := NewSnapshotter(fakeUsers{ids: []uuid.UUID{a, b, broken}}, scores, clock, logger.Discard())
	stored, err := s.RunOnce(context.Background())
	if err != nil {
		t.Fatalf("RunOnce: %v", err)
	}
	if stored != 2 {
		t.Errorf("stored = %d, want 2", stored)
	}
	if scores.calls[a] != "2024-03-09" {
		t.Errorf("date for a = %q, want 2024-03-09", scores.calls[a])
	}
	if scores.calls[b] != "2024-02-29" {
		t.Errorf("date for b = %q, want 2024-02-29", scores.calls[b])
	}
}

func TestRunOnceListError(t *testing.T) {
	s := NewSnapshotter(fakeUsers{err: errors.New("db down")}, &fakeScores{calls: map[uuid.UUID]string{}}, fixedClock{}, logger.Discard())
	if _, err := s.RunOnce(context.Background()); err == nil {
		t.Fatal("expected error when users cannot be listed")
	}
}

func TestRunOnceStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	a := uuid.New()
	scores := &fakeScores{calls: map[uuid.UUID]string{}}
	s := NewSnapshotter(fakeUsers{ids: []uuid.UUID{a}}, scores, fixedClock{a: "2024-03-10"}, logger.Discard())
	stored, err := s.RunOnce(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if stored != 0 || len(scores.calls) != 0 {
		t.Errorf("stored = %d, calls = %v", stored, scores.calls)
	}
}

func TestStartRejectsBadTime(t *testing.T) {
	s := NewSnapshotter(fakeUsers{}, &fakeScores{calls: map[uuid.UUID]string{}}, fixedClock{}, logger.Discard())
	if _, err := Start(context.Background(), s, "25:99", time.UTC); err == nil {
		t.Fatal("expected error for invalid time")
	}
}

func TestStartSchedulesJob(t *testing.T) {
	s := NewSnapshotter(fakeUsers{}, &fakeScores{calls: map[uuid.UUID]string{}}, fixedClock{}, logger.Discard())
	sched, err := Start(context.Background(), s, "00:15", time.UTC)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer sched.Shutdown()

	jobs := sched.Jobs()
	if len(jobs) != 1 || jobs[0].Name() != "health-score-snapshot" {
		t.Fatalf("jobs = %v", jobs)
	}
}
