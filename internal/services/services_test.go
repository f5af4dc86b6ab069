package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/vladimiradmaev/health-mate/internal/config"
	"github.com/vladimiradmaev/health-mate/internal/database"
	"github.com/vladimiradmaev/health-mate/internal/domain"
	apperrors "github.com/vladimiradmaev/health-mate/internal/errors"
	"github.com/vladimiradmaev/health-mate/internal/logger"
	"github.com/vladimiradmaev/health-mate/internal/repository"
	"github.com/vladimiradmaev/health-mate/internal/streak"
)

var testNow = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

func newTestServices(t *testing.T) *Services {
	t.Helper()
	return newTestServicesWithGoal(t, 2000)
}

func newTestServicesWithGoal(t *testing.T, goalMl int) *Services {
	t.Helper()
	db, err := database.Open(config.DBConfig{Driver: "sqlite", Path: ":memory:"}, logger.Discard())
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { database.Close(db) })

	svc := New(repository.New(db), config.HealthConfig{DefaultWaterGoalMl: goalMl, DefaultTimezone: "UTC"}, logger.Discard())
	svc.Calendar.SetClock(func() time.Time { return testNow })
	return svc
}

func standing(t *testing.T, svc *Services, user uuid.UUID, st domain.StreakType) streak.Standing {
	t.Helper()
	all, err := svc.Progress.Streaks(context.Background(), user)
	if err != nil {
		t.Fatalf("Streaks: %v", err)
	}
	for _, s := range all {
		if s.Type == st {
			return s
		}
	}
	t.Fatalf("no standing for %s", st)
	return streak.Standing{}
}

func TestLogWaterCountsStreakOnceGoalReached(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()
	user := uuid.New()

	if _, err := svc.Water.LogWater(ctx, user, 1500, time.Time{}); err != nil {
		t.Fatalf("LogWater: %v", err)
	}
	if got := standing(t, svc, user, domain.StreakWater); got.Current != 0 {
		t.Fatalf("streak before goal = %d, want 0", got.Current)
	}

	if _, err := svc.Water.LogWater(ctx, user, 600, time.Time{}); err != nil {
		t.Fatalf("LogWater: %v", err)
	}
	got := standing(t, svc, user, domain.StreakWater)
	if got.Current != 1 || got.LastActivityDate != "2024-03-10" {
		t.Fatalf("streak after goal = %+v", got)
	}

	day, err := svc.Water.Day(ctx, user, "")
	if err != nil {
		t.Fatalf("Day: %v", err)
	}
	if day.TotalMl != 2100 || day.Percent != 100 {
		t.Fatalf("day = %+v", day)
	}
}

func TestLogWaterRejectsBadAmounts(t *testing.T) {
	svc := newTestServices(t)
	for _, ml := range []int{0, -5, MaxWaterLogMl + 1} {
		_, err := svc.Water.LogWater(context.Background(), uuid.New(), ml, time.Time{})
		if !apperrors.IsValidation(err) {
			t.Errorf("amount %d: err = %v, want validation", ml, err)
		}
	}
}

func TestSleepDurationIsRounded(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()
	user := uuid.New()

	start := time.Date(2024, 3, 9, 23, 0, 0, 0, time.UTC)
	rec, err := svc.Sleep.Create(ctx, user, SleepInput{
		SleepStart: start,
		SleepEnd:   start.Add(7*time.Hour + 17*time.Minute),
		Quality:    8,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if rec.DurationHours != 7.3 {
		t.Errorf("DurationHours = %v, want 7.3", rec.DurationHours)
	}
	if rec.SleepDate != "2024-03-09" {
		t.Errorf("SleepDate = %s", rec.SleepDate)
	}

	_, err = svc.Sleep.Create(ctx, user, SleepInput{SleepStart: start, SleepEnd: start.Add(-time.Hour)})
	if !apperrors.IsValidation(err) {
		t.Errorf("reversed sleep: err = %v, want validation", err)
	}
}

func TestWorkoutEstimatesCaloriesFromExerciseLibrary(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()
	user := uuid.New()

	w, err := svc.Workouts.Create(ctx, user, WorkoutInput{Type: "yoga", DurationMinutes: 60})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	// 2.5 MET at the default 70 kg for an hour.
	if w.CaloriesBurned != 175 {
		t.Errorf("CaloriesBurned = %v, want 175", w.CaloriesBurned)
	}

	// 131.25 kcal rounds to a whole number.
	w, err = svc.Workouts.Create(ctx, user, WorkoutInput{Type: "yoga", DurationMinutes: 45})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if w.CaloriesBurned != 131 {
		t.Errorf("CaloriesBurned = %d, want 131", w.CaloriesBurned)
	}

	given := 420
	w, err = svc.Workouts.Create(ctx, user, WorkoutInput{Type: "Climbing", DurationMinutes: 90, CaloriesBurned: &given})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if w.CaloriesBurned != 420 {
		t.Errorf("CaloriesBurned = %v, want the given 420", w.CaloriesBurned)
	}

	if got := standing(t, svc, user, domain.StreakWorkout); got.Current != 1 {
		t.Errorf("workout streak = %d, want 1", got.Current)
	}
}

func TestEstimateCalories(t *testing.T) {
	tests := []struct {
		met     float64
		weight  float64
		minutes int
		want    int
	}{
		{8, 70, 30, 280},
		{3.5, 82, 45, 215},
		{7, 65, 25, 190},
		{0, 70, 30, 0},
	}
	for _, tt := range tests {
		if got := EstimateCalories(tt.met, tt.weight, tt.minutes); got != tt.want {
			t.Errorf("EstimateCalories(%v, %v, %d) = %v, want %v", tt.met, tt.weight, tt.minutes, got, tt.want)
		}
	}
}

func TestHabitToggleAndProgress(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()
	user := uuid.New()

	h, err := svc.Habits.Create(ctx, user, HabitInput{Title: "Stretch"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	for _, day := range []string{"2024-03-09", ""} {
		done, err := svc.Habits.Toggle(ctx, user, h.ID, day)
		if err != nil || !done {
			t.Fatalf("Toggle(%q) = %v, %v", day, done, err)
		}
	}

	views, err := svc.Habits.List(ctx, user, true)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("got %d habits", len(views))
	}
	v := views[0]
	if !v.CompletedToday || v.Streak != 2 || v.CompletionRate != 29 {
		t.Errorf("view = %+v", v)
	}

	done, err := svc.Habits.Toggle(ctx, user, h.ID, "")
	if err != nil || done {
		t.Fatalf("second toggle = %v, %v", done, err)
	}

	_, err = svc.Habits.Toggle(ctx, uuid.New(), h.ID, "")
	if !apperrors.IsNotFound(err) {
		t.Errorf("foreign toggle: err = %v, want not found", err)
	}
}

func TestGoalProgress(t *testing.T) {
	tests := []struct {
		name                   string
		start, target, current float64
		wantPct                int
		wantRemaining          float64
		wantGain               bool
	}{
		{"halfway down", 90, 80, 85, 50, 5, false},
		{"not started", 90, 80, 90, 0, 10, false},
		{"gain", 60, 66, 64, 67, 2, true},
		{"overshoot", 90, 80, 78, 120, 2, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := GoalProgress(tt.start, tt.target, tt.current)
			if p.Percentage != tt.wantPct || p.Remaining != tt.wantRemaining || p.IsGain != tt.wantGain {
				t.Errorf("GoalProgress = %+v", p)
			}
		})
	}
}

func TestWeightEntryUpdatesProfileAndProgress(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()
	user := uuid.New()

	if _, err := svc.Profiles.Update(ctx, user, ProfileInput{Name: "Asha", WeightKg: 90, HeightCm: 170}); err != nil {
		t.Fatalf("Update profile: %v", err)
	}
	if _, err := svc.Weight.SetGoal(ctx, user, WeightGoalInput{StartWeightKg: 90, TargetWeightKg: 80}); err != nil {
		t.Fatalf("SetGoal: %v", err)
	}
	if _, err := svc.Weight.AddEntry(ctx, user, WeightEntryInput{WeightKg: 85}); err != nil {
		t.Fatalf("AddEntry: %v", err)
	}

	p, err := svc.Weight.Progress(ctx, user)
	if err != nil || p == nil {
		t.Fatalf("Progress = %v, %v", p, err)
	}
	if p.Percentage != 50 {
		t.Errorf("Percentage = %d", p.Percentage)
	}

	view, err := svc.Profiles.Get(ctx, user)
	if err != nil {
		t.Fatalf("Get profile: %v", err)
	}
	if view.WeightKg != 85 || view.BMI != 29.4 || view.BMICategory != "Overweight" {
		t.Errorf("profile = %+v", view)
	}
}

func TestJournalStats(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()
	user := uuid.New()

	entries := []JournalInput{
		{Date: "2024-03-09", Title: "Walk", Content: "<p>long walk by the <b>river</b></p>", MoodRating: 8},
		{Date: "2024-03-10", Content: "quiet day", MoodRating: 5},
		{Date: "2024-02-20", Content: "older"},
	}
	for _, in := range entries {
		if _, err := svc.Journal.Create(ctx, user, in); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	stats, err := svc.Journal.Stats(ctx, user)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	want := JournalStats{TotalEntries: 3, EntriesThisMonth: 2, TotalWords: 8, AverageMood: 6.5, WritingStreak: 2}
	if stats != want {
		t.Errorf("Stats = %+v, want %+v", stats, want)
	}
}

func TestWordCount(t *testing.T) {
	if got := WordCount("<h1>Title</h1><p>two words</p>"); got != 3 {
		t.Errorf("WordCount = %d, want 3", got)
	}
	if got := WordCount("   "); got != 0 {
		t.Errorf("WordCount(blank) = %d", got)
	}
}

func TestDashboardScoresTheDay(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()
	user := uuid.New()

	for _, name := range []string{"Oats", "Dal bhat", "Salad"} {
		if _, err := svc.Meals.Create(ctx, user, MealInput{FoodName: name, Calories: 500}); err != nil {
			t.Fatalf("meal: %v", err)
		}
	}
	burned := 300
	if _, err := svc.Workouts.Create(ctx, user, WorkoutInput{Type: "Running", DurationMinutes: 30, CaloriesBurned: &burned}); err != nil {
		t.Fatalf("workout: %v", err)
	}
	start := time.Date(2024, 3, 10, 0, 30, 0, 0, time.UTC)
	if _, err := svc.Sleep.Create(ctx, user, SleepInput{SleepStart: start, SleepEnd: start.Add(7*time.Hour + 30*time.Minute)}); err != nil {
		t.Fatalf("sleep: %v", err)
	}
	if _, err := svc.Water.LogWater(ctx, user, 2000, time.Time{}); err != nil {
		t.Fatalf("water: %v", err)
	}
	if _, err := svc.Todos.Create(ctx, user, TodoInput{Title: "Book checkup"}); err != nil {
		t.Fatalf("todo: %v", err)
	}

	d, err := svc.Dashboard.Dashboard(ctx, user, "")
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}
	if d.Date != "2024-03-10" || d.Score.TotalScore != 100 || d.ScoreLabel != "Excellent" {
		t.Errorf("score = %+v label %s", d.Score, d.ScoreLabel)
	}
	if d.CaloriesEaten != 1500 || d.CaloriesBurned != 300 || d.SleepHours != 7.5 {
		t.Errorf("totals = eaten %v burned %v sleep %v", d.CaloriesEaten, d.CaloriesBurned, d.SleepHours)
	}
	if d.WaterMl != 2000 || d.WaterGoalMl != 2000 || d.WeeklyWorkouts != 1 {
		t.Errorf("water %d/%d workouts %d", d.WaterMl, d.WaterGoalMl, d.WeeklyWorkouts)
	}
	if len(d.CalorieSeries) != 7 || d.CalorieSeries[6].Calories != 1500 || d.CalorieSeries[0].Date != "2024-03-04" {
		t.Errorf("series = %+v", d.CalorieSeries)
	}
	if len(d.PendingTodos) != 1 || d.Mood != nil {
		t.Errorf("todos %d mood %v", len(d.PendingTodos), d.Mood)
	}
}

func TestAnalytics(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()
	user := uuid.New()

	if _, err := svc.Analytics.Analytics(ctx, user, "year"); !apperrors.IsValidation(err) {
		t.Fatalf("unknown range: err = %v", err)
	}

	cal := 200
	for _, w := range []WorkoutInput{
		{Date: "2024-03-08", Type: "Running", DurationMinutes: 30, CaloriesBurned: &cal},
		{Date: "2024-03-09", Type: "Running", DurationMinutes: 30, CaloriesBurned: &cal},
		{Date: "2024-03-10", Type: "Cycling", DurationMinutes: 30, CaloriesBurned: &cal},
		{Date: "2024-02-01", Type: "Swimming", DurationMinutes: 30, CaloriesBurned: &cal},
	} {
		if _, err := svc.Workouts.Create(ctx, user, w); err != nil {
			t.Fatalf("workout: %v", err)
		}
	}
	if _, err := svc.Meals.Create(ctx, user, MealInput{Date: "2024-03-10", FoodName: "Rice", Calories: 700}); err != nil {
		t.Fatalf("meal: %v", err)
	}

	a, err := svc.Analytics.Analytics(ctx, user, "")
	if err != nil {
		t.Fatalf("Analytics: %v", err)
	}
	if a.From != "2024-03-04" || a.To != "2024-03-10" || len(a.Days) != 7 {
		t.Fatalf("range %s..%s days %d", a.From, a.To, len(a.Days))
	}
	if a.TotalWorkouts != 3 || a.AvgCaloriesOut != 85.7 || a.AvgCaloriesIn != 100 {
		t.Errorf("totals = %+v", a)
	}
	want := []WorkoutFrequency{{"Running", 2}, {"Cycling", 1}}
	if len(a.WorkoutFrequency) != 2 || a.WorkoutFrequency[0] != want[0] || a.WorkoutFrequency[1] != want[1] {
		t.Errorf("frequency = %+v", a.WorkoutFrequency)
	}
}

func TestResetProgress(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()
	user := uuid.New()

	if _, err := svc.Moods.Log(ctx, user, MoodInput{MoodLevel: 7, EnergyLevel: 6, StressLevel: 3}); err != nil {
		t.Fatalf("mood: %v", err)
	}
	if _, err := svc.Aggregator.ComputeHealthScore(ctx, user, "2024-03-10"); err != nil {
		t.Fatalf("score: %v", err)
	}

	res, err := svc.Progress.ResetProgress(ctx, user)
	if err != nil {
		t.Fatalf("ResetProgress: %v", err)
	}
	if res.StreaksDeleted != 1 || res.HealthScoresDeleted != 1 {
		t.Errorf("reset = %+v", res)
	}
	if got := standing(t, svc, user, domain.StreakMood); got.Current != 0 || got.Longest != 0 {
		t.Errorf("mood streak after reset = %+v", got)
	}

	mood, err := svc.Moods.Today(ctx, user)
	if err != nil || mood == nil {
		t.Errorf("mood log should survive reset: %v, %v", mood, err)
	}
}

func TestCalendarUsesProfileTimezone(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()
	user := uuid.New()

	if _, err := svc.Profiles.Update(ctx, user, ProfileInput{Timezone: "Asia/Kathmandu"}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	svc.Calendar.SetClock(func() time.Time { return time.Date(2024, 3, 10, 20, 0, 0, 0, time.UTC) })

	if got := svc.Calendar.Today(ctx, user); got != "2024-03-11" {
		t.Errorf("Today = %s, want 2024-03-11", got)
	}
	if got := svc.Calendar.Today(ctx, uuid.New()); got != "2024-03-10" {
		t.Errorf("fallback Today = %s", got)
	}
}

func TestConfiguredDefaultWaterGoalWithoutProfile(t *testing.T) {
	svc := newTestServicesWithGoal(t, 3000)
	ctx := context.Background()
	user := uuid.New()

	if _, err := svc.Water.LogWater(ctx, user, 2000, time.Time{}); err != nil {
		t.Fatalf("LogWater: %v", err)
	}

	profile, err := svc.Profiles.Get(ctx, user)
	if err != nil {
		t.Fatalf("Profiles.Get: %v", err)
	}
	day, err := svc.Water.Day(ctx, user, "")
	if err != nil {
		t.Fatalf("Day: %v", err)
	}
	if profile.WaterGoalMl != 3000 || day.GoalMl != 3000 || day.Percent != 66 {
		t.Fatalf("profile goal = %d, day = %+v", profile.WaterGoalMl, day)
	}
	if got := standing(t, svc, user, domain.StreakWater); got.Current != 0 {
		t.Errorf("water streak = %d before reaching 3000 ml", got.Current)
	}

	score, err := svc.Progress.ComputeHealthScore(ctx, user, "")
	if err != nil {
		t.Fatalf("ComputeHealthScore: %v", err)
	}
	if score.WaterScore != 15 {
		t.Errorf("WaterScore = %d, want 15", score.WaterScore)
	}
}

func TestFutureActivityDatesAreRejected(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()
	user := uuid.New()
	const future = "2030-01-01"

	writes := []struct {
		name string
		do   func() error
	}{
		{"workout", func() error {
			_, err := svc.Workouts.Create(ctx, user, WorkoutInput{Date: future, Type: "Running", DurationMinutes: 30})
			return err
		}},
		{"meal", func() error {
			_, err := svc.Meals.Create(ctx, user, MealInput{Date: future, FoodName: "Oats", Calories: 300})
			return err
		}},
		{"mood", func() error {
			_, err := svc.Moods.Log(ctx, user, MoodInput{Date: future, MoodLevel: 7, EnergyLevel: 6, StressLevel: 3})
			return err
		}},
		{"journal", func() error {
			_, err := svc.Journal.Create(ctx, user, JournalInput{Date: future, Title: "Ahead", Content: "written ahead"})
			return err
		}},
		{"water", func() error {
			_, err := svc.Water.LogWater(ctx, user, 2500, time.Date(2030, 1, 1, 9, 0, 0, 0, time.UTC))
			return err
		}},
		{"sleep", func() error {
			start := time.Date(2030, 1, 1, 23, 0, 0, 0, time.UTC)
			_, err := svc.Sleep.Create(ctx, user, SleepInput{SleepStart: start, SleepEnd: start.Add(8 * time.Hour)})
			return err
		}},
	}
	for _, w := range writes {
		if err := w.do(); !apperrors.IsValidation(err) {
			t.Errorf("%s on %s: err = %v, want validation", w.name, future, err)
		}
	}

	for _, st := range domain.StreakTypes {
		if got := standing(t, svc, user, st); got.Longest != 0 || got.LastActivityDate != "" {
			t.Errorf("%s streak touched by a future write: %+v", st, got)
		}
	}

	if _, err := svc.Dashboard.Dashboard(ctx, user, future); !apperrors.IsValidation(err) {
		t.Errorf("Dashboard(%s): err = %v, want validation", future, err)
	}
	if _, err := svc.Progress.ComputeHealthScore(ctx, user, future); !apperrors.IsValidation(err) {
		t.Errorf("ComputeHealthScore(%s): err = %v, want validation", future, err)
	}

	// Real days after the rejected write still build a run.
	for _, day := range []string{"2024-03-08", "2024-03-09", "2024-03-10"} {
		if _, err := svc.Workouts.Create(ctx, user, WorkoutInput{Date: day, Type: "Running", DurationMinutes: 30}); err != nil {
			t.Fatalf("workout %s: %v", day, err)
		}
	}
	if got := standing(t, svc, user, domain.StreakWorkout); got.Current != 3 {
		t.Errorf("workout streak = %d, want 3", got.Current)
	}
}

func TestDashboardHabitsFollowRequestedDate(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()
	user := uuid.New()

	h, err := svc.Habits.Create(ctx, user, HabitInput{Title: "Walk"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	for _, day := range []string{"2024-03-07", "2024-03-08"} {
		if _, err := svc.Habits.Toggle(ctx, user, h.ID, day); err != nil {
			t.Fatalf("Toggle(%s): %v", day, err)
		}
	}

	tests := []struct {
		date      string
		completed bool
		streak    int
	}{
		{"2024-03-08", true, 2},
		{"2024-03-09", false, 2},
		{"2024-03-10", false, 0},
		{"2024-03-06", false, 0},
	}
	for _, tt := range tests {
		d, err := svc.Dashboard.Dashboard(ctx, user, tt.date)
		if err != nil {
			t.Fatalf("Dashboard(%s): %v", tt.date, err)
		}
		if len(d.Habits) != 1 {
			t.Fatalf("Dashboard(%s) habits = %d", tt.date, len(d.Habits))
		}
		v := d.Habits[0]
		if v.CompletedToday != tt.completed || v.Streak != tt.streak {
			t.Errorf("Dashboard(%s) habit completed=%v streak=%d, want %v/%d", tt.date, v.CompletedToday, v.Streak, tt.completed, tt.streak)
		}
	}
}

func TestAchievementsFollowStreaksAndScores(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()
	user := uuid.New()

	burned := 300
	days, _ := LastDays("2024-03-10", 7)
	for _, day := range days {
		if _, err := svc.Workouts.Create(ctx, user, WorkoutInput{Date: day, Type: "Running", DurationMinutes: 30, CaloriesBurned: &burned}); err != nil {
			t.Fatalf("workout %s: %v", day, err)
		}
	}
	for _, name := range []string{"Oats", "Dal bhat", "Salad"} {
		if _, err := svc.Meals.Create(ctx, user, MealInput{FoodName: name, Calories: 500}); err != nil {
			t.Fatalf("meal: %v", err)
		}
	}
	start := time.Date(2024, 3, 10, 0, 30, 0, 0, time.UTC)
	if _, err := svc.Sleep.Create(ctx, user, SleepInput{SleepStart: start, SleepEnd: start.Add(7*time.Hour + 30*time.Minute)}); err != nil {
		t.Fatalf("sleep: %v", err)
	}
	if _, err := svc.Water.LogWater(ctx, user, 2000, time.Time{}); err != nil {
		t.Fatalf("water: %v", err)
	}
	score, err := svc.Progress.ComputeHealthScore(ctx, user, "")
	if err != nil || score.TotalScore != 100 {
		t.Fatalf("score = %+v, %v", score, err)
	}

	list, err := svc.Progress.Achievements(ctx, user)
	if err != nil {
		t.Fatalf("Achievements: %v", err)
	}
	byCode := make(map[string]AchievementView, len(list))
	for _, a := range list {
		byCode[a.Code] = a
	}

	tests := []struct {
		code     string
		progress int
		percent  int
		unlocked bool
	}{
		{"first_workout", 7, 100, true},
		{"workout_week", 7, 100, true},
		{"workout_month", 7, 23, false},
		{"diet_3", 1, 33, false},
		{"mood_week", 0, 0, false},
		{"healthy_day", 1, 100, true},
		{"healthy_week", 1, 14, false},
		{"perfect_day", 1, 100, true},
	}
	for _, tt := range tests {
		a, ok := byCode[tt.code]
		if !ok {
			t.Errorf("%s missing from catalog", tt.code)
			continue
		}
		if a.Progress != tt.progress || a.Percent != tt.percent || a.Unlocked != tt.unlocked {
			t.Errorf("%s = progress %d percent %d unlocked %v, want %d %d %v",
				tt.code, a.Progress, a.Percent, a.Unlocked, tt.progress, tt.percent, tt.unlocked)
		}
		if a.Unlocked && (a.UnlockedAt == nil || !a.UnlockedAt.Equal(testNow)) {
			t.Errorf("%s unlocked at %v, want %v", tt.code, a.UnlockedAt, testNow)
		}
	}

	// A later read keeps the first unlock time.
	svc.Calendar.SetClock(func() time.Time { return testNow.Add(time.Hour) })
	again, err := svc.Progress.Achievements(ctx, user)
	if err != nil {
		t.Fatalf("Achievements: %v", err)
	}
	for _, a := range again {
		if a.Code == "workout_week" && (a.UnlockedAt == nil || !a.UnlockedAt.Equal(testNow)) {
			t.Errorf("workout_week unlock time moved to %v", a.UnlockedAt)
		}
	}

	res, err := svc.Progress.ResetProgress(ctx, user)
	if err != nil {
		t.Fatalf("ResetProgress: %v", err)
	}
	if res.AchievementsDeleted == 0 {
		t.Errorf("reset = %+v, want achievement rows deleted", res)
	}
	after, err := svc.Progress.Achievements(ctx, user)
	if err != nil {
		t.Fatalf("Achievements: %v", err)
	}
	for _, a := range after {
		if a.Unlocked || a.Progress != 0 {
			t.Errorf("%s survived reset: %+v", a.Code, a)
		}
	}
}

func TestApplyProgressUnlockIsSticky(t *testing.T) {
	week := domain.Achievement{ID: 2, Code: "workout_week", Target: 7}
	first := testNow
	later := testNow.Add(48 * time.Hour)

	ua, changed := applyProgress(domain.UserAchievement{}, week, 3, first)
	if !changed || ua.IsUnlocked || ua.Progress != 3 {
		t.Fatalf("below target = %+v changed %v", ua, changed)
	}
	if _, changed := applyProgress(ua, week, 3, first); changed {
		t.Fatal("same progress reported a change")
	}

	ua, _ = applyProgress(ua, week, 7, first)
	if !ua.IsUnlocked || ua.UnlockedAt == nil || !ua.UnlockedAt.Equal(first) {
		t.Fatalf("at target = %+v", ua)
	}

	ua, _ = applyProgress(ua, week, 2, later)
	if !ua.IsUnlocked || !ua.UnlockedAt.Equal(first) || ua.Progress != 2 {
		t.Fatalf("after regress = %+v", ua)
	}
}
