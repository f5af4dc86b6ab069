package services

import (
	"context"
	"math"

	"github.com/vladimiradmaev/health-mate/internal/domain"
	apperrors "github.com/vladimiradmaev/health-mate/internal/errors"
)

// DefaultBodyWeightKg is used for calorie estimates when the profile has no weight.
const DefaultBodyWeightKg = 70

// FoodPortion is a reference food scaled to a portion size.
type FoodPortion struct {
	Food     domain.Food `json:"food"`
	Grams    float64     `json:"grams"`
	Calories int         `json:"calories"`
	Protein  float64     `json:"protein"`
	Carbs    float64     `json:"carbs"`
	Fat      float64     `json:"fat"`
}

// ScaleFood computes nutrients for grams of f from its per-100 g values.
func ScaleFood(f domain.Food, grams float64) FoodPortion {
	factor := grams / 100
	return FoodPortion{
		Food:     f,
		Grams:    grams,
		Calories: int(math.Round(f.CaloriesPer100g * factor)),
		Protein:  round2(f.ProteinPer100g * factor),
		Carbs:    round2(f.CarbsPer100g * factor),
		Fat:      round2(f.FatPer100g * factor),
	}
}

// EstimateCalories returns kcal burned as MET x body weight x hours, rounded
// to whole kcal.
func EstimateCalories(met, weightKg float64, minutes int) int {
	if met <= 0 || weightKg <= 0 || minutes <= 0 {
		return 0
	}
	return int(math.Round(met * weightKg * float64(minutes) / 60))
}

type ReferenceService struct {
	ref domain.ReferenceRepository
}

func NewReferenceService(ref domain.ReferenceRepository) *ReferenceService {
	return &ReferenceService{ref: ref}
}

func clampLimit(limit, def, upper int) int {
	if limit <= 0 {
		return def
	}
	return min(limit, upper)
}

func (s *ReferenceService) SearchFoods(ctx context.Context, query string, limit int) ([]domain.Food, error) {
	foods, err := s.ref.SearchFoods(ctx, query, clampLimit(limit, 20, 100))
	if err != nil {
		return nil, repoErr(err, "food")
	}
	return foods, nil
}

// FoodPortion looks up a food and scales it to grams.
func (s *ReferenceService) FoodPortion(ctx context.Context, foodID uint, grams float64) (FoodPortion, error) {
	if grams <= 0 || grams > 5000 {
		return FoodPortion{}, apperrors.NewValidationError("grams must be between 0 and 5000")
	}
	f, err := s.ref.GetFood(ctx, foodID)
	if err != nil {
		return FoodPortion{}, repoErr(err, "food")
	}
	return ScaleFood(*f, grams), nil
}

func (s *ReferenceService) SearchExercises(ctx context.Context, query string, limit int) ([]domain.Exercise, error) {
	ex, err := s.ref.SearchExercises(ctx, query, clampLimit(limit, 20, 100))
	if err != nil {
		return nil, repoErr(err, "exercise")
	}
	return ex, nil
}
