// Package health computes the daily composite health score.
package health

import "github.com/vladimiradmaev/health-mate/internal/domain"

// MaxPerMetric is the highest score a single metric can reach.
const MaxPerMetric = 25

// SleepScore scores hours slept, using the first band that contains them.
func SleepScore(hours float64) int {
	switch {
	case hours >= 7 && hours <= 9:
		return 25
	case hours >= 6 && hours <= 10:
		return 20
	case hours >= 5 && hours <= 11:
		return 15
	case hours > 0:
		return 10
	default:
		return 0
	}
}

// ExerciseScore is all or nothing: any workout scores full marks.
func ExerciseScore(workouts int) int {
	if workouts > 0 {
		return 25
	}
	return 0
}

func NutritionScore(meals int) int {
	switch {
	case meals >= 3:
		return 25
	case meals == 2:
		return 20
	case meals == 1:
		return 15
	default:
		return 0
	}
}

// WaterScore scores intake as a percentage of goal. A non-positive goal
// falls back to the default goal.
func WaterScore(intakeMl, goalMl int) int {
	if goalMl <= 0 {
		goalMl = domain.DefaultWaterGoalMl
	}
	pct := float64(intakeMl) * 100 / float64(goalMl)
	switch {
	case pct >= 100:
		return 25
	case pct >= 75:
		return 20
	case pct >= 50:
		return 15
	case pct >= 25:
		return 10
	default:
		return 0
	}
}

// DailyMetrics are the raw inputs of a day's score.
type DailyMetrics struct {
	SleepHours  float64
	Workouts    int
	Meals       int
	WaterMl     int
	WaterGoalMl int
}

// Breakdown is a scored day.
type Breakdown struct {
	Sleep     int `json:"sleep"`
	Exercise  int `json:"exercise"`
	Nutrition int `json:"nutrition"`
	Water     int `json:"water"`
	Total     int `json:"total"`
}

// Score applies the tier tables to m.
func (m DailyMetrics) Score() Breakdown {
	b := Breakdown{
		Sleep:     SleepScore(m.SleepHours),
		Exercise:  ExerciseScore(m.Workouts),
		Nutrition: NutritionScore(m.Meals),
		Water:     WaterScore(m.WaterMl, m.WaterGoalMl),
	}
	b.Total = b.Sleep + b.Exercise + b.Nutrition + b.Water
	return b
}

// Label names a total score band.
func Label(total int) string {
	switch {
	case total >= 90:
		return "Excellent"
	case total >= 75:
		return "Good"
	case total >= 60:
		return "Fair"
	default:
		return "Needs Improvement"
	}
}
