package services

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/vladimiradmaev/health-mate/internal/domain"
	apperrors "github.com/vladimiradmaev/health-mate/internal/errors"
)

// AnalyticsRanges maps a range name to its length in days.
var AnalyticsRanges = map[string]int{"week": 7, "month": 30}

type AnalyticsDay struct {
	Date        string  `json:"date"`
	CaloriesIn  int     `json:"caloriesIn"`
	CaloriesOut int     `json:"caloriesOut"`
	SleepHours  float64 `json:"sleepHours"`
}

type WorkoutFrequency struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

type Analytics struct {
	From             string               `json:"from"`
	To               string               `json:"to"`
	Days             []AnalyticsDay       `json:"days"`
	WorkoutFrequency []WorkoutFrequency   `json:"workoutFrequency"`
	AvgCaloriesIn    float64              `json:"avgCaloriesIn"`
	AvgCaloriesOut   float64              `json:"avgCaloriesOut"`
	AvgSleepHours    float64              `json:"avgSleepHours"`
	TotalWorkouts    int                  `json:"totalWorkouts"`
	AvgHealthScore   float64              `json:"avgHealthScore"`
	HealthScores     []domain.HealthScore `json:"healthScores"`
}

type AnalyticsService struct {
	meals    domain.MealRepository
	workouts domain.WorkoutRepository
	sleep    domain.SleepRepository
	scores   domain.HealthScoreRepository
	cal      *Calendar
}

func NewAnalyticsService(meals domain.MealRepository, workouts domain.WorkoutRepository, sleep domain.SleepRepository, scores domain.HealthScoreRepository, cal *Calendar) *AnalyticsService {
	return &AnalyticsService{meals: meals, workouts: workouts, sleep: sleep, scores: scores, cal: cal}
}

// Analytics summarises the last week or month ending today.
func (s *AnalyticsService) Analytics(ctx context.Context, userID uuid.UUID, rangeName string) (Analytics, error) {
	if err := requireUser(userID); err != nil {
		return Analytics{}, err
	}
	if rangeName == "" {
		rangeName = "week"
	}
	n, ok := AnalyticsRanges[rangeName]
	if !ok {
		return Analytics{}, apperrors.NewValidationError("range must be week or month")
	}

	days, err := LastDays(s.cal.Today(ctx, userID), n)
	if err != nil {
		return Analytics{}, apperrors.NewInternalError(err)
	}
	from, to := days[0], days[len(days)-1]

	meals, err := s.meals.ListRange(ctx, userID, from, to)
	if err != nil {
		return Analytics{}, repoErr(err, "meal")
	}
	workouts, err := s.workouts.ListRange(ctx, userID, from, to)
	if err != nil {
		return Analytics{}, repoErr(err, "workout")
	}
	sleeps, err := s.sleep.ListRange(ctx, userID, from, to)
	if err != nil {
		return Analytics{}, repoErr(err, "sleep log")
	}
	scores, err := s.scores.ListRange(ctx, userID, from, to)
	if err != nil {
		return Analytics{}, repoErr(err, "health score")
	}

	return summarize(days, meals, workouts, sleeps, scores), nil
}

func summarize(days []string, meals []domain.MealRecord, workouts []domain.WorkoutRecord, sleeps []domain.SleepRecord, scores []domain.HealthScore) Analytics {
	a := Analytics{From: days[0], To: days[len(days)-1], HealthScores: scores}
	if a.HealthScores == nil {
		a.HealthScores = []domain.HealthScore{}
	}

	index := make(map[string]int, len(days))
	a.Days = make([]AnalyticsDay, len(days))
	for i, d := range days {
		index[d] = i
		a.Days[i].Date = d
	}

	var totalIn, totalOut int
	for _, m := range meals {
		if i, ok := index[m.Date]; ok {
			a.Days[i].CaloriesIn += m.Calories
			totalIn += m.Calories
		}
	}

	freq := make(map[string]int)
	for _, w := range workouts {
		if i, ok := index[w.Date]; ok {
			a.Days[i].CaloriesOut += w.CaloriesBurned
			totalOut += w.CaloriesBurned
			freq[w.Type]++
			a.TotalWorkouts++
		}
	}

	var sleepTotal float64
	sleepDays := make(map[string]bool)
	for _, sl := range sleeps {
		if i, ok := index[sl.SleepDate]; ok {
			a.Days[i].SleepHours = round1(a.Days[i].SleepHours + sl.DurationHours)
			sleepTotal += sl.DurationHours
			sleepDays[sl.SleepDate] = true
		}
	}

	n := float64(len(days))
	a.AvgCaloriesIn = round1(float64(totalIn) / n)
	a.AvgCaloriesOut = round1(float64(totalOut) / n)
	if len(sleepDays) > 0 {
		a.AvgSleepHours = round1(sleepTotal / float64(len(sleepDays)))
	}

	if len(scores) > 0 {
		var sum int
		for _, sc := range scores {
			sum += sc.TotalScore
		}
		a.AvgHealthScore = round1(float64(sum) / float64(len(scores)))
	}

	a.WorkoutFrequency = make([]WorkoutFrequency, 0, len(freq))
	for t, c := range freq {
		a.WorkoutFrequency = append(a.WorkoutFrequency, WorkoutFrequency{Type: t, Count: c})
	}
	sort.Slice(a.WorkoutFrequency, func(i, j int) bool {
		if a.WorkoutFrequency[i].Count != a.WorkoutFrequency[j].Count {
			return a.WorkoutFrequency[i].Count > a.WorkoutFrequency[j].Count
		}
		return a.WorkoutFrequency[i].Type < a.WorkoutFrequency[j].Type
	})
	return a
}
