package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/vladimiradmaev/health-mate/internal/domain"
	"github.com/vladimiradmaev/health-mate/internal/health"
)

// ScoreComputer computes and stores a day's health score.
type ScoreComputer interface {
	ComputeHealthScore(ctx context.Context, userID uuid.UUID, date string) (domain.HealthScore, error)
}

type DailyCalories struct {
	Date     string `json:"date"`
	Calories int    `json:"calories"`
}

type Dashboard struct {
	Date           string             `json:"date"`
	Score          domain.HealthScore `json:"score"`
	ScoreLabel     string             `json:"scoreLabel"`
	CaloriesEaten  int                `json:"caloriesEaten"`
	CaloriesBurned int                `json:"caloriesBurned"`
	SleepHours     float64            `json:"sleepHours"`
	AvgSleepWeek   float64            `json:"avgSleepWeek"`
	WeeklyWorkouts int                `json:"weeklyWorkouts"`
	WaterMl        int                `json:"waterMl"`
	WaterGoalMl    int                `json:"waterGoalMl"`
	Mood           *domain.MoodLog    `json:"mood"`
	CalorieSeries  []DailyCalories    `json:"calorieSeries"`
	PendingTodos   []domain.Todo      `json:"pendingTodos"`
	RecentNotes    []domain.Note      `json:"recentNotes"`
	Habits         []HabitView        `json:"habits"`
}

type DashboardService struct {
	scores   ScoreComputer
	meals    domain.MealRepository
	workouts domain.WorkoutRepository
	sleep    domain.SleepRepository
	moods    domain.MoodRepository
	todos    domain.TodoRepository
	notes    domain.NoteRepository
	water    *WaterService
	habits   *HabitService
	cal      *Calendar
	log      *slog.Logger
}

type DashboardDeps struct {
	Scores   ScoreComputer
	Meals    domain.MealRepository
	Workouts domain.WorkoutRepository
	Sleep    domain.SleepRepository
	Moods    domain.MoodRepository
	Todos    domain.TodoRepository
	Notes    domain.NoteRepository
	Water    *WaterService
	Habits   *HabitService
	Calendar *Calendar
}

func NewDashboardService(d DashboardDeps, log *slog.Logger) *DashboardService {
	if log == nil {
		log = slog.Default()
	}
	return &DashboardService{
		scores:   d.Scores,
		meals:    d.Meals,
		workouts: d.Workouts,
		sleep:    d.Sleep,
		moods:    d.Moods,
		todos:    d.Todos,
		notes:    d.Notes,
		water:    d.Water,
		habits:   d.Habits,
		cal:      d.Calendar,
		log:      log,
	}
}

// Dashboard computes and stores the day's health score and gathers the
// day's summary. Sections whose reads fail are left empty.
func (s *DashboardService) Dashboard(ctx context.Context, userID uuid.UUID, date string) (Dashboard, error) {
	if err := requireUser(userID); err != nil {
		return Dashboard{}, err
	}
	if date == "" {
		date = s.cal.Today(ctx, userID)
	}
	if err := s.cal.activityDate(ctx, userID, date, "date"); err != nil {
		return Dashboard{}, err
	}

	score, err := s.scores.ComputeHealthScore(ctx, userID, date)
	if err != nil {
		return Dashboard{}, err
	}

	d := Dashboard{
		Date:       date,
		Score:      score,
		ScoreLabel: health.Label(score.TotalScore),
	}
	log := s.log.With("user_id", userID, "date", date)
	degrade := func(section string, err error) {
		log.Warn("Dashboard section unavailable", "section", section, "error", err)
	}

	week, _ := LastDays(date, 7)
	weekStart := week[0]

	if meals, err := s.meals.ListRange(ctx, userID, weekStart, date); err != nil {
		degrade("meals", err)
	} else {
		perDay := make(map[string]int, 7)
		for _, m := range meals {
			perDay[m.Date] += m.Calories
		}
		d.CaloriesEaten = perDay[date]
		d.CalorieSeries = make([]DailyCalories, len(week))
		for i, day := range week {
			d.CalorieSeries[i] = DailyCalories{Date: day, Calories: perDay[day]}
		}
	}

	if workouts, err := s.workouts.ListRange(ctx, userID, weekStart, date); err != nil {
		degrade("workouts", err)
	} else {
		d.WeeklyWorkouts = len(workouts)
		for _, w := range workouts {
			if w.Date == date {
				d.CaloriesBurned += w.CaloriesBurned
			}
		}
	}

	if last, err := s.sleep.LatestOn(ctx, userID, date); err == nil {
		d.SleepHours = last.DurationHours
	} else if !errors.Is(err, domain.ErrNotFound) {
		degrade("sleep", err)
	}
	if sleeps, err := s.sleep.ListRange(ctx, userID, weekStart, date); err != nil {
		degrade("sleep_week", err)
	} else if len(sleeps) > 0 {
		var total float64
		for _, sl := range sleeps {
			total += sl.DurationHours
		}
		d.AvgSleepWeek = round1(total / float64(len(sleeps)))
	}

	if water, err := s.water.Day(ctx, userID, date); err != nil {
		degrade("water", err)
	} else {
		d.WaterMl = water.TotalMl
		d.WaterGoalMl = water.GoalMl
	}

	if mood, err := s.moods.GetOn(ctx, userID, date); err == nil {
		d.Mood = mood
	} else if !errors.Is(err, domain.ErrNotFound) {
		degrade("mood", err)
	}

	if todos, err := s.todos.List(ctx, userID, true, 5); err != nil {
		degrade("todos", err)
	} else {
		d.PendingTodos = todos
	}

	if notes, err := s.notes.List(ctx, userID, "", 3); err != nil {
		degrade("notes", err)
	} else {
		d.RecentNotes = notes
	}

	if habits, err := s.habits.ListOn(ctx, userID, true, date); err != nil {
		degrade("habits", err)
	} else {
		d.Habits = habits
	}

	return d, nil
}
