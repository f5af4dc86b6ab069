package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/vladimiradmaev/health-mate/internal/domain"
	apperrors "github.com/vladimiradmaev/health-mate/internal/errors"
)

type ProfileInput struct {
	Name        string  `json:"name"`
	Age         int     `json:"age"`
	Gender      string  `json:"gender"`
	WeightKg    float64 `json:"weightKg"`
	HeightCm    float64 `json:"heightCm"`
	WaterGoalMl int     `json:"waterGoalMl"`
	Timezone    string  `json:"timezone"`
}

func (in ProfileInput) validate() error {
	switch {
	case in.Age < 0 || in.Age > 150:
		return apperrors.NewValidationError("age must be between 0 and 150")
	case in.WeightKg < 0 || in.WeightKg > 700:
		return apperrors.NewValidationError("weight must be between 0 and 700 kg")
	case in.HeightCm < 0 || in.HeightCm > 300:
		return apperrors.NewValidationError("height must be between 0 and 300 cm")
	case in.WaterGoalMl < 0 || in.WaterGoalMl > 10000:
		return apperrors.NewValidationError("water goal must be between 0 and 10000 ml")
	}
	if !blank(in.Timezone) {
		if _, err := time.LoadLocation(in.Timezone); err != nil {
			return apperrors.NewValidationError("unknown timezone " + in.Timezone)
		}
	}
	return nil
}

// ProfileView is a profile with derived values.
type ProfileView struct {
	domain.Profile
	BMI         float64 `json:"bmi"`
	BMICategory string  `json:"bmiCategory,omitempty"`
}

type ProfileService struct {
	profiles    domain.ProfileRepository
	defaultGoal int
}

func NewProfileService(profiles domain.ProfileRepository, defaultGoal int) *ProfileService {
	if defaultGoal <= 0 {
		defaultGoal = domain.DefaultWaterGoalMl
	}
	return &ProfileService{profiles: profiles, defaultGoal: defaultGoal}
}

// Get returns the user's profile, or an empty one with default targets.
func (s *ProfileService) Get(ctx context.Context, userID uuid.UUID) (ProfileView, error) {
	if err := requireUser(userID); err != nil {
		return ProfileView{}, err
	}
	p, err := s.profiles.Get(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		p = &domain.Profile{UserID: userID, WaterGoalMl: s.defaultGoal}
	} else if err != nil {
		return ProfileView{}, repoErr(err, "profile")
	}
	p.WaterGoalMl = p.WaterGoalOr(s.defaultGoal)
	return newProfileView(*p), nil
}

func (s *ProfileService) Update(ctx context.Context, userID uuid.UUID, in ProfileInput) (ProfileView, error) {
	if err := requireUser(userID); err != nil {
		return ProfileView{}, err
	}
	if err := in.validate(); err != nil {
		return ProfileView{}, err
	}
	goal := in.WaterGoalMl
	if goal == 0 {
		goal = s.defaultGoal
	}
	p := &domain.Profile{
		UserID:      userID,
		Name:        in.Name,
		Age:         in.Age,
		Gender:      in.Gender,
		WeightKg:    in.WeightKg,
		HeightCm:    in.HeightCm,
		WaterGoalMl: goal,
		Timezone:    in.Timezone,
	}
	if err := s.profiles.Save(ctx, p); err != nil {
		return ProfileView{}, repoErr(err, "profile")
	}
	stored, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return ProfileView{}, repoErr(err, "profile")
	}
	return newProfileView(*stored), nil
}

func newProfileView(p domain.Profile) ProfileView {
	bmi := round1(p.BMI())
	return ProfileView{Profile: p, BMI: bmi, BMICategory: bmiCategory(bmi)}
}

func bmiCategory(bmi float64) string {
	switch {
	case bmi <= 0:
		return ""
	case bmi < 18.5:
		return "Underweight"
	case bmi < 25:
		return "Normal"
	case bmi < 30:
		return "Overweight"
	default:
		return "Obese"
	}
}
