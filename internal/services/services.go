package services

import (
	"log/slog"

	"github.com/vladimiradmaev/health-mate/internal/config"
	"github.com/vladimiradmaev/health-mate/internal/health"
	"github.com/vladimiradmaev/health-mate/internal/repository"
	"github.com/vladimiradmaev/health-mate/internal/streak"
)

// Services wires every service over one set of repositories.
type Services struct {
	Calendar   *Calendar
	Streaks    *streak.Tracker
	Aggregator *health.Aggregator

	Users     *UserService
	Profiles  *ProfileService
	Water     *WaterService
	Sleep     *SleepService
	Workouts  *WorkoutService
	Meals     *MealService
	Reference *ReferenceService
	Moods     *MoodService
	Journal   *JournalService
	Habits    *HabitService
	Todos     *TodoService
	Notes     *NoteService
	Weight    *WeightService
	Dashboard *DashboardService
	Analytics *AnalyticsService
	Progress  *ProgressService
}

func New(repos *repository.Repositories, cfg config.HealthConfig, log *slog.Logger) *Services {
	if log == nil {
		log = slog.Default()
	}
	goal := cfg.DefaultWaterGoalMl

	cal := NewCalendar(repos.Profiles, cfg.Location(), log)
	tracker := streak.NewTracker(repos.Streaks, cal, log.With("component", "streak"))
	agg := health.NewAggregator(health.Sources{
		Sleep:    repos.Sleep,
		Workouts: repos.Workouts,
		Meals:    repos.Meals,
		Water:    repos.Water,
		Profiles: repos.Profiles,
		Scores:   repos.HealthScores,

		DefaultWaterGoalMl: goal,
	}, log.With("component", "health"))

	ref := NewReferenceService(repos.Reference)
	water := NewWaterService(repos.Water, repos.Profiles, tracker, goal, cal, log)
	habits := NewHabitService(repos.Habits, cal)

	return &Services{
		Calendar:   cal,
		Streaks:    tracker,
		Aggregator: agg,

		Users:     NewUserService(repos.Telegram, repos.Profiles, goal, log),
		Profiles:  NewProfileService(repos.Profiles, goal),
		Water:     water,
		Sleep:     NewSleepService(repos.Sleep, tracker, cal, log),
		Workouts:  NewWorkoutService(repos.Workouts, repos.Reference, repos.Profiles, tracker, cal, log),
		Meals:     NewMealService(repos.Meals, ref, tracker, cal, log),
		Reference: ref,
		Moods:     NewMoodService(repos.Moods, tracker, cal, log),
		Journal:   NewJournalService(repos.Journal, tracker, cal, log),
		Habits:    habits,
		Todos:     NewTodoService(repos.Todos, cal),
		Notes:     NewNoteService(repos.Notes),
		Weight:    NewWeightService(repos.Weight, repos.Profiles, cal, log),
		Dashboard: NewDashboardService(DashboardDeps{
			Scores:   agg,
			Meals:    repos.Meals,
			Workouts: repos.Workouts,
			Sleep:    repos.Sleep,
			Moods:    repos.Moods,
			Todos:    repos.Todos,
			Notes:    repos.Notes,
			Water:    water,
			Habits:   habits,
			Calendar: cal,
		}, log),
		Analytics: NewAnalyticsService(repos.Meals, repos.Workouts, repos.Sleep, repos.HealthScores, cal),
		Progress:  NewProgressService(tracker, agg, repos.HealthScores, repos.Achievements, cal, log),
	}
}
