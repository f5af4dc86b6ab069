// Package api exposes the services over a JSON HTTP API.
package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vladimiradmaev/health-mate/internal/interfaces"
	"github.com/vladimiradmaev/health-mate/internal/services"
)

// Deps are the services the API serves.
type Deps struct {
	Dashboard interfaces.DashboardServiceInterface
	Analytics interfaces.AnalyticsServiceInterface
	Progress  interfaces.ProgressServiceInterface
	Profiles  interfaces.ProfileServiceInterface
	Water     interfaces.WaterServiceInterface
	Sleep     interfaces.SleepServiceInterface
	Workouts  interfaces.WorkoutServiceInterface
	Meals     interfaces.MealServiceInterface
	Reference interfaces.ReferenceServiceInterface
	Moods     interfaces.MoodServiceInterface
	Journal   interfaces.JournalServiceInterface
	Habits    interfaces.HabitServiceInterface
	Todos     interfaces.TodoServiceInterface
	Notes     interfaces.NoteServiceInterface
	Weight    interfaces.WeightServiceInterface
}

// DepsFrom takes every dependency from a service bundle.
func DepsFrom(s *services.Services) Deps {
	return Deps{
		Dashboard: s.Dashboard,
		Analytics: s.Analytics,
		Progress:  s.Progress,
		Profiles:  s.Profiles,
		Water:     s.Water,
		Sleep:     s.Sleep,
		Workouts:  s.Workouts,
		Meals:     s.Meals,
		Reference: s.Reference,
		Moods:     s.Moods,
		Journal:   s.Journal,
		Habits:    s.Habits,
		Todos:     s.Todos,
		Notes:     s.Notes,
		Weight:    s.Weight,
	}
}

type handler struct {
	Deps
	log *slog.Logger
}

// NewRouter builds the gin engine. Everything under /api/v1 requires a bearer token.
func NewRouter(deps Deps, jwtSecret string, log *slog.Logger) *gin.Engine {
	if log == nil {
		log = slog.Default()
	}
	h := &handler{Deps: deps, log: log}

	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(log))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")
	v1.Use(AuthMiddleware([]byte(jwtSecret)))
	{
		v1.GET("/dashboard", h.dashboard)
		v1.GET("/health-scores", h.listHealthScores)
		v1.POST("/health-scores/compute", h.computeHealthScore)
		v1.GET("/streaks", h.streaks)
		v1.GET("/achievements", h.achievements)
		v1.POST("/progress/reset", h.resetProgress)
		v1.GET("/analytics", h.analytics)

		v1.GET("/profile", h.getProfile)
		v1.PUT("/profile", h.updateProfile)

		v1.POST("/water", h.logWater)
		v1.GET("/water", h.waterDay)
		v1.GET("/water/week", h.waterWeek)
		v1.DELETE("/water/:id", h.deleteWater)

		v1.POST("/sleep", h.createSleep)
		v1.GET("/sleep", h.listSleep)
		v1.PUT("/sleep/:id", h.updateSleep)
		v1.DELETE("/sleep/:id", h.deleteSleep)

		v1.POST("/workouts", h.createWorkout)
		v1.GET("/workouts", h.listWorkouts)
		v1.PUT("/workouts/:id", h.updateWorkout)
		v1.DELETE("/workouts/:id", h.deleteWorkout)

		v1.POST("/meals", h.createMeal)
		v1.POST("/meals/from-food", h.createMealFromFood)
		v1.GET("/meals", h.listMeals)
		v1.PUT("/meals/:id", h.updateMeal)
		v1.DELETE("/meals/:id", h.deleteMeal)

		v1.GET("/foods", h.searchFoods)
		v1.GET("/foods/:id/portion", h.foodPortion)
		v1.GET("/exercises", h.searchExercises)

		v1.PUT("/mood", h.logMood)
		v1.GET("/mood", h.moodHistory)
		v1.GET("/mood/today", h.moodToday)
		v1.DELETE("/mood/:id", h.deleteMood)

		v1.POST("/journal", h.createJournal)
		v1.GET("/journal", h.listJournal)
		v1.GET("/journal/stats", h.journalStats)
		v1.PUT("/journal/:id", h.updateJournal)
		v1.DELETE("/journal/:id", h.deleteJournal)

		v1.POST("/habits", h.createHabit)
		v1.GET("/habits", h.listHabits)
		v1.PUT("/habits/:id", h.updateHabit)
		v1.DELETE("/habits/:id", h.deleteHabit)
		v1.POST("/habits/:id/toggle", h.toggleHabit)

		v1.POST("/todos", h.createTodo)
		v1.GET("/todos", h.listTodos)
		v1.PUT("/todos/:id", h.updateTodo)
		v1.DELETE("/todos/:id", h.deleteTodo)
		v1.POST("/todos/:id/toggle", h.toggleTodo)

		v1.POST("/notes", h.createNote)
		v1.GET("/notes", h.listNotes)
		v1.PUT("/notes/:id", h.updateNote)
		v1.DELETE("/notes/:id", h.deleteNote)

		v1.POST("/weight", h.addWeight)
		v1.GET("/weight", h.listWeight)
		v1.DELETE("/weight/:id", h.deleteWeight)
		v1.PUT("/weight/goal", h.setWeightGoal)
		v1.GET("/weight/goal", h.weightProgress)
		v1.DELETE("/weight/goal", h.cancelWeightGoal)
	}

	return r
}
