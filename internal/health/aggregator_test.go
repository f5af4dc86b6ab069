package health

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/vladimiradmaev/health-mate/internal/domain"
	apperrors "github.com/vladimiradmaev/health-mate/internal/errors"
	"github.com/vladimiradmaev/health-mate/internal/logger"
)

var errDown = errors.New("database unavailable")

type fakeSleep struct {
	rec *domain.SleepRecord
	err error
}

func (f fakeSleep) LatestOn(ctx context.Context, userID uuid.UUID, date string) (*domain.SleepRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.rec == nil {
		return nil, domain.ErrNotFound
	}
	return f.rec, nil
}

type fakeWorkouts struct {
	n   int
	err error
}

func (f fakeWorkouts) ListOn(ctx context.Context, userID uuid.UUID, date string) ([]domain.WorkoutRecord, error) {
	return make([]domain.WorkoutRecord, f.n), f.err
}

type fakeMeals struct {
	n   int
	err error
}

func (f fakeMeals) ListOn(ctx context.Context, userID uuid.UUID, date string) ([]domain.MealRecord, error) {
	return make([]domain.MealRecord, f.n), f.err
}

type fakeWater struct {
	amounts []int
	err     error
}

func (f fakeWater) ListOn(ctx context.Context, userID uuid.UUID, date string) ([]domain.WaterLogRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]domain.WaterLogRecord, len(f.amounts))
	for i, a := range f.amounts {
		out[i].AmountMl = a
	}
	return out, nil
}

type fakeProfiles struct {
	p   *domain.Profile
	err error
}

func (f fakeProfiles) Get(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.p == nil {
		return nil, domain.ErrNotFound
	}
	return f.p, nil
}

type memScores struct {
	rows map[string]domain.HealthScore
	err  error
}

func newMemScores() *memScores {
	return &memScores{rows: make(map[string]domain.HealthScore)}
}

func (m *memScores) Upsert(ctx context.Context, s *domain.HealthScore) (domain.HealthScore, error) {
	if m.err != nil {
		return domain.HealthScore{}, m.err
	}
	key := s.UserID.String() + "/" + s.Date
	row := *s
	if existing, ok := m.rows[key]; ok {
		row.ID = existing.ID
	} else {
		row.ID = uuid.New()
	}
	m.rows[key] = row
	return row, nil
}

func TestComputeHealthScoreExcellentDay(t *testing.T) {
	scores := newMemScores()
	agg := NewAggregator(Sources{
		Sleep:    fakeSleep{rec: &domain.SleepRecord{DurationHours: 8}},
		Workouts: fakeWorkouts{n: 1},
		Meals:    fakeMeals{n: 3},
		Water:    fakeWater{amounts: []int{500, 500, 500}},
		Profiles: fakeProfiles{p: &domain.Profile{WaterGoalMl: 2000}},
		Scores:   scores,
	}, logger.Discard())

	user := uuid.New()
	got, err := agg.ComputeHealthScore(context.Background(), user, "2024-03-10")
	if err != nil {
		t.Fatal(err)
	}
	if got.SleepScore != 25 || got.ExerciseScore != 25 || got.NutritionScore != 25 || got.WaterScore != 20 {
		t.Errorf("sub-scores = %+v", got)
	}
	if got.TotalScore != 95 {
		t.Errorf("TotalScore = %d, want 95", got.TotalScore)
	}
	if Label(got.TotalScore) != "Excellent" {
		t.Errorf("Label = %s", Label(got.TotalScore))
	}
	if len(scores.rows) != 1 {
		t.Errorf("stored rows = %d", len(scores.rows))
	}
}

func TestComputeHealthScoreEmptyDay(t *testing.T) {
	agg := NewAggregator(Sources{
		Sleep:    fakeSleep{},
		Workouts: fakeWorkouts{},
		Meals:    fakeMeals{},
		Water:    fakeWater{},
		Profiles: fakeProfiles{},
		Scores:   newMemScores(),
	}, logger.Discard())

	got, err := agg.ComputeHealthScore(context.Background(), uuid.New(), "2024-03-10")
	if err != nil {
		t.Fatal(err)
	}
	if got.TotalScore != 0 || got.SleepScore != 0 || got.WaterScore != 0 {
		t.Errorf("score = %+v", got)
	}
}

func TestComputeHealthScoreDegradesFailedFetches(t *testing.T) {
	agg := NewAggregator(Sources{
		Sleep:    fakeSleep{err: errDown},
		Workouts: fakeWorkouts{n: 2},
		Meals:    fakeMeals{err: errDown},
		Water:    fakeWater{amounts: []int{2000}},
		Profiles: fakeProfiles{err: errDown},
		Scores:   newMemScores(),
	}, logger.Discard())

	got, err := agg.ComputeHealthScore(context.Background(), uuid.New(), "2024-03-10")
	if err != nil {
		t.Fatalf("failed fetches must not fail the computation: %v", err)
	}
	if got.SleepScore != 0 || got.NutritionScore != 0 {
		t.Errorf("failed metrics should be zero: %+v", got)
	}
	if got.ExerciseScore != 25 || got.WaterScore != 25 {
		t.Errorf("healthy metrics should score: %+v", got)
	}
	if got.TotalScore != 50 {
		t.Errorf("TotalScore = %d", got.TotalScore)
	}
}

func TestComputeHealthScoreReturnsScoreWhenStoreFails(t *testing.T) {
	scores := newMemScores()
	scores.err = errDown
	agg := NewAggregator(Sources{
		Sleep:    fakeSleep{rec: &domain.SleepRecord{DurationHours: 7}},
		Workouts: fakeWorkouts{},
		Meals:    fakeMeals{n: 1},
		Water:    fakeWater{},
		Profiles: fakeProfiles{},
		Scores:   scores,
	}, logger.Discard())

	got, err := agg.ComputeHealthScore(context.Background(), uuid.New(), "2024-03-10")
	if err != nil {
		t.Fatal(err)
	}
	if got.TotalScore != 40 {
		t.Errorf("TotalScore = %d, want 40", got.TotalScore)
	}
}

func TestComputeHealthScoreIsIdempotent(t *testing.T) {
	scores := newMemScores()
	agg := NewAggregator(Sources{
		Sleep:    fakeSleep{rec: &domain.SleepRecord{DurationHours: 6.5}},
		Workouts: fakeWorkouts{},
		Meals:    fakeMeals{n: 2},
		Water:    fakeWater{amounts: []int{1200}},
		Profiles: fakeProfiles{p: &domain.Profile{WaterGoalMl: 2400}},
		Scores:   scores,
	}, logger.Discard())
	user := uuid.New()

	first, _ := agg.ComputeHealthScore(context.Background(), user, "2024-03-10")
	second, _ := agg.ComputeHealthScore(context.Background(), user, "2024-03-10")
	if first != second {
		t.Fatalf("recomputation changed the row:\n%+v\n%+v", first, second)
	}
	if len(scores.rows) != 1 {
		t.Fatalf("rows = %d", len(scores.rows))
	}
}

func TestComputeHealthScoreValidation(t *testing.T) {
	agg := NewAggregator(Sources{}, logger.Discard())
	if _, err := agg.ComputeHealthScore(context.Background(), uuid.Nil, "2024-03-10"); !apperrors.IsValidation(err) {
		t.Errorf("nil user err = %v", err)
	}
	if _, err := agg.ComputeHealthScore(context.Background(), uuid.New(), "March 10"); !apperrors.IsValidation(err) {
		t.Errorf("bad date err = %v", err)
	}
}

func TestComputeHealthScoreUsesConfiguredDefaultGoal(t *testing.T) {
	tests := []struct {
		name    string
		profile *domain.Profile
		want    int
	}{
		{"no profile", nil, 15},
		{"profile without goal", &domain.Profile{}, 15},
		{"own goal wins", &domain.Profile{WaterGoalMl: 2000}, 25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			agg := NewAggregator(Sources{
				Sleep:    fakeSleep{},
				Workouts: fakeWorkouts{},
				Meals:    fakeMeals{},
				Water:    fakeWater{amounts: []int{2000}},
				Profiles: fakeProfiles{p: tt.profile},
				Scores:   newMemScores(),

				DefaultWaterGoalMl: 3000,
			}, logger.Discard())

			got, err := agg.ComputeHealthScore(context.Background(), uuid.New(), "2024-03-10")
			if err != nil {
				t.Fatal(err)
			}
			if got.WaterScore != tt.want {
				t.Errorf("WaterScore = %d, want %d", got.WaterScore, tt.want)
			}
		})
	}
}
