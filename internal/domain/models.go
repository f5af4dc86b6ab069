package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrNotFound is returned by repositories when no row matches.
var ErrNotFound = errors.New("record not found")

// DefaultWaterGoalMl is used when a profile has no water goal set.
const DefaultWaterGoalMl = 2000

// Model is the common primary key and creation time of user-owned rows.
type Model struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
}

// BeforeCreate assigns a random id when the caller did not.
func (m *Model) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// Profile holds the user's personal data and daily targets.
type Profile struct {
	UserID      uuid.UUID `gorm:"type:varchar(36);primaryKey" json:"userId"`
	Name        string    `json:"name"`
	Age         int       `json:"age"`
	Gender      string    `json:"gender"`
	WeightKg    float64   `json:"weightKg"`
	HeightCm    float64   `json:"heightCm"`
	WaterGoalMl int       `json:"waterGoalMl"`
	Timezone    string    `json:"timezone"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (Profile) TableName() string { return "profiles" }

// WaterGoal returns the profile's goal, or DefaultWaterGoalMl when unset.
func (p *Profile) WaterGoal() int {
	return p.WaterGoalOr(DefaultWaterGoalMl)
}

// WaterGoalOr returns the profile's goal, or def when the profile is missing
// or has no goal. A non-positive def means DefaultWaterGoalMl.
func (p *Profile) WaterGoalOr(def int) int {
	if p != nil && p.WaterGoalMl > 0 {
		return p.WaterGoalMl
	}
	if def <= 0 {
		return DefaultWaterGoalMl
	}
	return def
}

// BMI returns the body mass index, or 0 when weight or height is missing.
func (p *Profile) BMI() float64 {
	if p == nil || p.WeightKg <= 0 || p.HeightCm <= 0 {
		return 0
	}
	m := p.HeightCm / 100
	return p.WeightKg / (m * m)
}

// TelegramLink maps a telegram account to a user.
type TelegramLink struct {
	TelegramID int64     `gorm:"primaryKey;autoIncrement:false"`
	UserID     uuid.UUID `gorm:"type:varchar(36);uniqueIndex"`
	Username   string
	FirstName  string
	CreatedAt  time.Time
}

func (TelegramLink) TableName() string { return "telegram_links" }

type SleepRecord struct {
	Model
	UserID        uuid.UUID `gorm:"type:varchar(36);index:idx_sleep_user_date" json:"userId"`
	SleepDate     string    `gorm:"type:varchar(10);index:idx_sleep_user_date" json:"sleepDate"`
	SleepStart    time.Time `json:"sleepStart"`
	SleepEnd      time.Time `json:"sleepEnd"`
	DurationHours float64   `json:"durationHours"`
	Quality       int       `json:"quality,omitempty"`
	Notes         string    `json:"notes,omitempty"`
}

func (SleepRecord) TableName() string { return "sleep_logs" }

type WorkoutRecord struct {
	Model
	UserID          uuid.UUID `gorm:"type:varchar(36);index:idx_workout_user_date" json:"userId"`
	Date            string    `gorm:"type:varchar(10);index:idx_workout_user_date" json:"date"`
	Type            string    `json:"type"`
	DurationMinutes int       `json:"durationMinutes"`
	CaloriesBurned  int       `json:"caloriesBurned"`
	Notes           string    `json:"notes,omitempty"`
}

func (WorkoutRecord) TableName() string { return "workouts" }

type MealRecord struct {
	Model
	UserID   uuid.UUID `gorm:"type:varchar(36);index:idx_meal_user_date" json:"userId"`
	Date     string    `gorm:"type:varchar(10);index:idx_meal_user_date" json:"date"`
	MealType string    `json:"mealType,omitempty"`
	FoodName string    `json:"foodName"`
	Calories int       `json:"calories"`
	Protein  float64   `json:"protein"`
	Carbs    float64   `json:"carbs"`
	Fat      float64   `json:"fat"`
}

func (MealRecord) TableName() string { return "meals" }

type WaterLogRecord struct {
	Model
	UserID   uuid.UUID `gorm:"type:varchar(36);index:idx_water_user_date" json:"userId"`
	Date     string    `gorm:"type:varchar(10);index:idx_water_user_date" json:"date"`
	AmountMl int       `json:"amountMl"`
	LoggedAt time.Time `json:"loggedAt"`
}

func (WaterLogRecord) TableName() string { return "water_logs" }

// HealthScore is the daily composite score. It deliberately has no
// timestamps so recomputing with the same inputs leaves the row unchanged.
type HealthScore struct {
	ID             uuid.UUID `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID         uuid.UUID `gorm:"type:varchar(36);uniqueIndex:idx_health_score_user_date" json:"userId"`
	Date           string    `gorm:"type:varchar(10);uniqueIndex:idx_health_score_user_date" json:"date"`
	SleepScore     int       `json:"sleepScore"`
	ExerciseScore  int       `json:"exerciseScore"`
	NutritionScore int       `json:"nutritionScore"`
	WaterScore     int       `json:"waterScore"`
	TotalScore     int       `json:"totalScore"`
}

func (HealthScore) TableName() string { return "health_scores" }

func (h *HealthScore) BeforeCreate(tx *gorm.DB) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	return nil
}

// StreakType names an activity that keeps a streak.
type StreakType string

const (
	StreakWorkout StreakType = "workout"
	StreakSleep   StreakType = "sleep"
	StreakWater   StreakType = "water"
	StreakDiet    StreakType = "diet"
	StreakMood    StreakType = "mood"
	StreakJournal StreakType = "journal"
)

// StreakTypes lists every streak type in display order.
var StreakTypes = []StreakType{StreakWorkout, StreakSleep, StreakWater, StreakDiet, StreakMood, StreakJournal}

func (t StreakType) Valid() bool {
	for _, st := range StreakTypes {
		if st == t {
			return true
		}
	}
	return false
}

type StreakRecord struct {
	ID               uuid.UUID  `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID           uuid.UUID  `gorm:"type:varchar(36);uniqueIndex:idx_streak_user_type" json:"userId"`
	StreakType       StreakType `gorm:"type:varchar(16);uniqueIndex:idx_streak_user_type" json:"streakType"`
	CurrentStreak    int        `json:"currentStreak"`
	LongestStreak    int        `json:"longestStreak"`
	LastActivityDate string     `gorm:"type:varchar(10)" json:"lastActivityDate"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

func (StreakRecord) TableName() string { return "streaks" }

func (s *StreakRecord) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

type MoodLog struct {
	Model
	UserID      uuid.UUID `gorm:"type:varchar(36);uniqueIndex:idx_mood_user_date" json:"userId"`
	Date        string    `gorm:"type:varchar(10);uniqueIndex:idx_mood_user_date" json:"date"`
	MoodLevel   int       `json:"moodLevel"`
	EnergyLevel int       `json:"energyLevel"`
	StressLevel int       `json:"stressLevel"`
	Notes       string    `json:"notes,omitempty"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (MoodLog) TableName() string { return "mood_logs" }

type JournalEntry struct {
	Model
	UserID      uuid.UUID `gorm:"type:varchar(36);index" json:"userId"`
	Date        string    `gorm:"type:varchar(10)" json:"date"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	MoodRating  int       `json:"moodRating,omitempty"`
	EnergyLevel int       `json:"energyLevel,omitempty"`
	Tags        []string  `gorm:"serializer:json" json:"tags"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (JournalEntry) TableName() string { return "journal_entries" }

type Habit struct {
	Model
	UserID          uuid.UUID `gorm:"type:varchar(36);index" json:"userId"`
	Title           string    `json:"title"`
	Description     string    `json:"description,omitempty"`
	Category        string    `json:"category"`
	TargetFrequency string    `json:"targetFrequency"`
	TargetCount     int       `json:"targetCount"`
	IsActive        bool      `json:"isActive"`
}

func (Habit) TableName() string { return "habits" }

type HabitLog struct {
	Model
	HabitID uuid.UUID `gorm:"type:varchar(36);uniqueIndex:idx_habit_log_day" json:"habitId"`
	UserID  uuid.UUID `gorm:"type:varchar(36);index" json:"userId"`
	Date    string    `gorm:"type:varchar(10);uniqueIndex:idx_habit_log_day" json:"date"`
}

func (HabitLog) TableName() string { return "habit_logs" }

type Todo struct {
	Model
	UserID      uuid.UUID `gorm:"type:varchar(36);index" json:"userId"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category"`
	Priority    string    `json:"priority"`
	Date        string    `gorm:"type:varchar(10)" json:"date"`
	DueDate     *string   `gorm:"type:varchar(10)" json:"dueDate"`
	IsCompleted bool      `json:"isCompleted"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (Todo) TableName() string { return "todos" }

type Note struct {
	Model
	UserID    uuid.UUID `gorm:"type:varchar(36);index" json:"userId"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Category  string    `json:"category"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Note) TableName() string { return "notes" }

type WeightEntry struct {
	Model
	UserID   uuid.UUID `gorm:"type:varchar(36);index" json:"userId"`
	Date     string    `gorm:"type:varchar(10)" json:"date"`
	WeightKg float64   `json:"weightKg"`
	Notes    string    `json:"notes,omitempty"`
}

func (WeightEntry) TableName() string { return "weight_entries" }

type WeightGoal struct {
	Model
	UserID         uuid.UUID `gorm:"type:varchar(36);index" json:"userId"`
	TargetWeightKg float64   `json:"targetWeightKg"`
	StartWeightKg  float64   `json:"startWeightKg"`
	StartDate      string    `gorm:"type:varchar(10)" json:"startDate"`
	TargetDate     string    `gorm:"type:varchar(10)" json:"targetDate"`
	IsActive       bool      `json:"isActive"`
}

func (WeightGoal) TableName() string { return "weight_goals" }

// Exercise is a seeded reference row with its metabolic equivalent.
type Exercise struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	Name     string  `gorm:"uniqueIndex" json:"name"`
	Category string  `json:"category"`
	MET      float64 `gorm:"column:met" json:"met"`
}

func (Exercise) TableName() string { return "exercises" }

// Food is a seeded reference row with nutrients per 100 grams.
type Food struct {
	ID              uint    `gorm:"primaryKey" json:"id"`
	Name            string  `gorm:"uniqueIndex" json:"name"`
	Category        string  `json:"category"`
	CaloriesPer100g float64 `gorm:"column:calories_per_100g" json:"caloriesPer100g"`
	ProteinPer100g  float64 `gorm:"column:protein_per_100g" json:"proteinPer100g"`
	CarbsPer100g    float64 `gorm:"column:carbs_per_100g" json:"carbsPer100g"`
	FatPer100g      float64 `gorm:"column:fat_per_100g" json:"fatPer100g"`
}

func (Food) TableName() string { return "foods" }

// AchievementCategory groups the catalog. Streak categories measure the
// longest run of one streak type; AchievementHealthScore counts scored days.
type AchievementCategory string

const (
	AchievementWorkoutStreak AchievementCategory = "workout_streak"
	AchievementSleepStreak   AchievementCategory = "sleep_streak"
	AchievementWaterStreak   AchievementCategory = "water_streak"
	AchievementDietStreak    AchievementCategory = "diet_streak"
	AchievementMoodStreak    AchievementCategory = "mood_streak"
	AchievementJournalStreak AchievementCategory = "journal_streak"
	AchievementHealthScore   AchievementCategory = "health_score"
)

// Achievement is a seeded catalog row. Streak achievements unlock when the
// longest StreakType run reaches Target days. Health score achievements
// unlock after Target stored days scoring at least MinScore.
type Achievement struct {
	ID          uint                `gorm:"primaryKey" json:"id"`
	Code        string              `gorm:"type:varchar(32);uniqueIndex" json:"code"`
	Category    AchievementCategory `gorm:"type:varchar(32);index" json:"category"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	StreakType  StreakType          `gorm:"type:varchar(16)" json:"streakType,omitempty"`
	MinScore    int                 `json:"minScore,omitempty"`
	Target      int                 `json:"target"`
}

func (Achievement) TableName() string { return "achievements" }

// UserAchievement is a user's progress toward one catalog achievement.
// Once unlocked it stays unlocked until the user resets progress.
type UserAchievement struct {
	ID            uuid.UUID  `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID        uuid.UUID  `gorm:"type:varchar(36);uniqueIndex:idx_user_achievement" json:"userId"`
	AchievementID uint       `gorm:"uniqueIndex:idx_user_achievement" json:"achievementId"`
	Progress      int        `json:"progress"`
	IsUnlocked    bool       `json:"isUnlocked"`
	UnlockedAt    *time.Time `json:"unlockedAt,omitempty"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

func (UserAchievement) TableName() string { return "user_achievements" }

func (u *UserAchievement) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// AllModels lists every table managed by AutoMigrate.
func AllModels() []interface{} {
	return []interface{}{
		&Profile{},
		&TelegramLink{},
		&SleepRecord{},
		&WorkoutRecord{},
		&MealRecord{},
		&WaterLogRecord{},
		&HealthScore{},
		&StreakRecord{},
		&MoodLog{},
		&JournalEntry{},
		&Habit{},
		&HabitLog{},
		&Todo{},
		&Note{},
		&WeightEntry{},
		&WeightGoal{},
		&Exercise{},
		&Food{},
		&Achievement{},
		&UserAchievement{},
	}
}
