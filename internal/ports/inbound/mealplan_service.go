// Package inbound defines the interfaces for inbound ports (primary/driving adapters)
// These are the interfaces that the application exposes to the outside world
package inbound

import (
	"context"

	"github.com/Lalit-mahajan-1/NutriAi/internal/domain/nutrition"
	"github.com/Lalit-mahajan-1/NutriAi/internal/domain/planner"
	"github.com/Lalit-mahajan-1/NutriAi/internal/ports/outbound"
)

// MealPlanService defines the use cases for personalized meal planning
// This is the primary port that HTTP handlers and other driving adapters will use
type MealPlanService interface {
	// Commands - operations that modify state
	GenerateWeeklyPlan(ctx context.Context, cmd ProfileCommand) (*planner.WeeklyPlan, error)
	RecordFeedback(ctx context.Context, cmd FeedbackCommand) error

	// Queries - operations that read state
	ComputeTargets(ctx context.Context, cmd ProfileCommand) (*TargetsDTO, error)
	DishPrices(ctx context.Context) (*PriceListDTO, error)
	DislikedDishes(ctx context.Context, userID string) ([]outbound.FeedbackEvent, error)

	// External lookups
	AnalyzeMeal(ctx context.Context, cmd AnalyzeMealCommand) (*outbound.NutritionReport, error)
}

// Command objects for operations

// ProfileCommand carries the raw user profile as received from the
// outside world. String enums are coerced to domain values during
// normalization; unknown or missing fields fall back to defaults.
type ProfileCommand struct {
	UserID         string
	HeightCM       float64
	WeightKG       float64
	Age            int
	Gender         string
	ActivityLevel  string
	Goal           string
	DietaryPref    string
	Allergies      []string
	TargetCalories *float64
	TargetProteinG *float64
}

// FeedbackCommand records a user's reaction to a recommended dish.
// The profile rides along because the learning update is contextual:
// the same dish earns a different reward against different targets.
type FeedbackCommand struct {
	Profile  ProfileCommand
	DishName string
	MealSlot string
	Feedback int // -1 dislike, 0 neutral, +1 like
}

// AnalyzeMealCommand requests a nutrient breakdown for a free-text meal
type AnalyzeMealCommand struct {
	MealName    string
	WeightGrams float64
}

// Response DTOs

// TargetsDTO is the data transfer object for computed nutrition targets
type TargetsDTO struct {
	UserID  string                                        `json:"user_id"`
	Daily   nutrition.MacroTargets                        `json:"daily_targets"`
	FiberG  float64                                       `json:"fiber_g"`
	WaterML float64                                       `json:"water_ml"`
	PerMeal map[nutrition.MealSlot]nutrition.MacroTargets `json:"per_meal_targets"`
	BMI     float64                                       `json:"bmi"`
}

// PriceListDTO summarizes catalog pricing
type PriceListDTO struct {
	Prices map[string]float64 `json:"prices"`
	Count  int                `json:"count"`
	AvgINR float64            `json:"avg_inr"`
	MinINR float64            `json:"min_inr"`
	MaxINR float64            `json:"max_inr"`
}
