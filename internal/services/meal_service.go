package services

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/vladimiradmaev/health-mate/internal/domain"
	apperrors "github.com/vladimiradmaev/health-mate/internal/errors"
)

type MealInput struct {
	Date     string  `json:"date"`
	MealType string  `json:"mealType"`
	FoodName string  `json:"foodName"`
	Calories int     `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

func (in MealInput) validate() error {
	if blank(in.FoodName) {
		return apperrors.NewValidationError("food name is required")
	}
	if in.Calories < 0 || in.Protein < 0 || in.Carbs < 0 || in.Fat < 0 {
		return apperrors.NewValidationError("calories and macros cannot be negative")
	}
	return nil
}

// PortionInput logs a meal from a reference food.
type PortionInput struct {
	Date     string  `json:"date"`
	MealType string  `json:"mealType"`
	FoodID   uint    `json:"foodId"`
	Grams    float64 `json:"grams"`
}

type MealService struct {
	meals   domain.MealRepository
	ref     *ReferenceService
	streaks StreakUpdater
	cal     *Calendar
	log     *slog.Logger
}

func NewMealService(meals domain.MealRepository, ref *ReferenceService, streaks StreakUpdater, cal *Calendar, log *slog.Logger) *MealService {
	if log == nil {
		log = slog.Default()
	}
	return &MealService{meals: meals, ref: ref, streaks: streaks, cal: cal, log: log}
}

func (s *MealService) Create(ctx context.Context, userID uuid.UUID, in MealInput) (domain.MealRecord, error) {
	if err := requireUser(userID); err != nil {
		return domain.MealRecord{}, err
	}
	if in.Date == "" {
		in.Date = s.cal.Today(ctx, userID)
	}
	if err := s.cal.activityDate(ctx, userID, in.Date, "date"); err != nil {
		return domain.MealRecord{}, err
	}
	if err := in.validate(); err != nil {
		return domain.MealRecord{}, err
	}

	rec := domain.MealRecord{
		UserID:   userID,
		Date:     in.Date,
		MealType: in.MealType,
		FoodName: in.FoodName,
		Calories: in.Calories,
		Protein:  in.Protein,
		Carbs:    in.Carbs,
		Fat:      in.Fat,
	}
	if err := s.meals.Create(ctx, &rec); err != nil {
		return domain.MealRecord{}, repoErr(err, "meal")
	}
	if _, err := s.streaks.UpdateStreak(ctx, userID, domain.StreakDiet, rec.Date); err != nil {
		s.log.Warn("Failed to update diet streak", "user_id", userID, "date", rec.Date, "error", err)
	}
	return rec, nil
}

// CreateFromFood logs grams of a reference food as a meal.
func (s *MealService) CreateFromFood(ctx context.Context, userID uuid.UUID, in PortionInput) (domain.MealRecord, error) {
	portion, err := s.ref.FoodPortion(ctx, in.FoodID, in.Grams)
	if err != nil {
		return domain.MealRecord{}, err
	}
	return s.Create(ctx, userID, MealInput{
		Date:     in.Date,
		MealType: in.MealType,
		FoodName: portion.Food.Name,
		Calories: portion.Calories,
		Protein:  portion.Protein,
		Carbs:    portion.Carbs,
		Fat:      portion.Fat,
	})
}

func (s *MealService) Update(ctx context.Context, userID, id uuid.UUID, in MealInput) (domain.MealRecord, error) {
	if err := requireUser(userID); err != nil {
		return domain.MealRecord{}, err
	}
	if err := in.validate(); err != nil {
		return domain.MealRecord{}, err
	}
	rec, err := s.meals.Get(ctx, userID, id)
	if err != nil {
		return domain.MealRecord{}, repoErr(err, "meal")
	}
	if in.Date != "" {
		if err := s.cal.activityDate(ctx, userID, in.Date, "date"); err != nil {
			return domain.MealRecord{}, err
		}
		rec.Date = in.Date
	}
	rec.MealType = in.MealType
	rec.FoodName = in.FoodName
	rec.Calories = in.Calories
	rec.Protein = in.Protein
	rec.Carbs = in.Carbs
	rec.Fat = in.Fat
	if err := s.meals.Update(ctx, rec); err != nil {
		return domain.MealRecord{}, repoErr(err, "meal")
	}
	return *rec, nil
}

func (s *MealService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if err := requireUser(userID); err != nil {
		return err
	}
	return repoErr(s.meals.Delete(ctx, userID, id), "meal")
}

func (s *MealService) List(ctx context.Context, userID uuid.UUID, from, to string) ([]domain.MealRecord, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	from, to, err := s.cal.resolveRange(ctx, userID, from, to, 7)
	if err != nil {
		return nil, err
	}
	out, err := s.meals.ListRange(ctx, userID, from, to)
	if err != nil {
		return nil, repoErr(err, "meal")
	}
	return out, nil
}
