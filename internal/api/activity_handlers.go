package api

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	apperrors "github.com/vladimiradmaev/health-mate/internal/errors"
	"github.com/vladimiradmaev/health-mate/internal/services"
)

func (h *handler) logWater(c *gin.Context) {
	var body struct {
		AmountMl int       `json:"amountMl"`
		LoggedAt time.Time `json:"loggedAt"`
	}
	if err := bindJSON(c, &body); err != nil {
		h.fail(c, err)
		return
	}
	rec, err := h.Water.LogWater(c.Request.Context(), currentUser(c), body.AmountMl, body.LoggedAt)
	if err != nil {
		h.fail(c, err)
		return
	}
	created(c, rec)
}

func (h *handler) waterDay(c *gin.Context) {
	day, err := h.Water.Day(c.Request.Context(), currentUser(c), c.Query("date"))
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, day)
}

func (h *handler) waterWeek(c *gin.Context) {
	week, err := h.Water.Week(c.Request.Context(), currentUser(c), c.Query("end"))
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, week)
}

func (h *handler) deleteWater(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	if err := h.Water.DeleteWater(c.Request.Context(), currentUser(c), id); err != nil {
		h.fail(c, err)
		return
	}
	noContent(c)
}

func (h *handler) createSleep(c *gin.Context) {
	var in services.SleepInput
	if err := bindJSON(c, &in); err != nil {
		h.fail(c, err)
		return
	}
	rec, err := h.Sleep.Create(c.Request.Context(), currentUser(c), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	created(c, rec)
}

func (h *handler) listSleep(c *gin.Context) {
	recs, err := h.Sleep.List(c.Request.Context(), currentUser(c), c.Query("from"), c.Query("to"))
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, recs)
}

func (h *handler) updateSleep(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	var in services.SleepInput
	if err := bindJSON(c, &in); err != nil {
		h.fail(c, err)
		return
	}
	rec, err := h.Sleep.Update(c.Request.Context(), currentUser(c), id, in)
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, rec)
}

func (h *handler) deleteSleep(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	if err := h.Sleep.Delete(c.Request.Context(), currentUser(c), id); err != nil {
		h.fail(c, err)
		return
	}
	noContent(c)
}

func (h *handler) createWorkout(c *gin.Context) {
	var in services.WorkoutInput
	if err := bindJSON(c, &in); err != nil {
		h.fail(c, err)
		return
	}
	rec, err := h.Workouts.Create(c.Request.Context(), currentUser(c), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	created(c, rec)
}

func (h *handler) listWorkouts(c *gin.Context) {
	recs, err := h.Workouts.List(c.Request.Context(), currentUser(c), c.Query("from"), c.Query("to"))
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, recs)
}

func (h *handler) updateWorkout(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	var in services.WorkoutInput
	if err := bindJSON(c, &in); err != nil {
		h.fail(c, err)
		return
	}
	rec, err := h.Workouts.Update(c.Request.Context(), currentUser(c), id, in)
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, rec)
}

func (h *handler) deleteWorkout(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	if err := h.Workouts.Delete(c.Request.Context(), currentUser(c), id); err != nil {
		h.fail(c, err)
		return
	}
	noContent(c)
}

func (h *handler) createMeal(c *gin.Context) {
	var in services.MealInput
	if err := bindJSON(c, &in); err != nil {
		h.fail(c, err)
		return
	}
	rec, err := h.Meals.Create(c.Request.Context(), currentUser(c), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	created(c, rec)
}

func (h *handler) createMealFromFood(c *gin.Context) {
	var in services.PortionInput
	if err := bindJSON(c, &in); err != nil {
		h.fail(c, err)
		return
	}
	rec, err := h.Meals.CreateFromFood(c.Request.Context(), currentUser(c), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	created(c, rec)
}

func (h *handler) listMeals(c *gin.Context) {
	recs, err := h.Meals.List(c.Request.Context(), currentUser(c), c.Query("from"), c.Query("to"))
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, recs)
}

func (h *handler) updateMeal(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	var in services.MealInput
	if err := bindJSON(c, &in); err != nil {
		h.fail(c, err)
		return
	}
	rec, err := h.Meals.Update(c.Request.Context(), currentUser(c), id, in)
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, rec)
}

func (h *handler) deleteMeal(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	if err := h.Meals.Delete(c.Request.Context(), currentUser(c), id); err != nil {
		h.fail(c, err)
		return
	}
	noContent(c)
}

func (h *handler) searchFoods(c *gin.Context) {
	limit, err := queryInt(c, "limit")
	if err != nil {
		h.fail(c, err)
		return
	}
	foods, err := h.Reference.SearchFoods(c.Request.Context(), c.Query("q"), limit)
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, foods)
}

func (h *handler) foodPortion(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.fail(c, apperrors.NewValidationError("food id must be a number"))
		return
	}
	grams, err := strconv.ParseFloat(c.DefaultQuery("grams", "100"), 64)
	if err != nil {
		h.fail(c, apperrors.NewValidationError("grams must be a number"))
		return
	}
	portion, err := h.Reference.FoodPortion(c.Request.Context(), uint(id), grams)
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, portion)
}

func (h *handler) searchExercises(c *gin.Context) {
	limit, err := queryInt(c, "limit")
	if err != nil {
		h.fail(c, err)
		return
	}
	exercises, err := h.Reference.SearchExercises(c.Request.Context(), c.Query("q"), limit)
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, exercises)
}
