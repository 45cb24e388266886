// Package outbound defines the interfaces for outbound ports (secondary/driven adapters)
// These are the interfaces that the application uses to interact with external systems
package outbound

import (
	"context"
	"time"

	"github.com/Lalit-mahajan-1/NutriAi/internal/domain/bandit"
	"github.com/Lalit-mahajan-1/NutriAi/internal/domain/catalog"
	"github.com/google/uuid"
)

// CatalogSource defines the interface for loading the dish catalog
// from an external source (CSV file, database export, remote feed)
type CatalogSource interface {
	Load(ctx context.Context) ([]catalog.Dish, error)
}

// BanditStateStore persists learned recommendation state between restarts.
// Load returns ErrStateNotFound (wrapped) when no prior state exists.
type BanditStateStore interface {
	Save(ctx context.Context, snap bandit.Snapshot) error
	Load(ctx context.Context) (bandit.Snapshot, error)
}

// FeedbackEvent is a single recorded user reaction to a recommended dish
type FeedbackEvent struct {
	ID        uuid.UUID `json:"id"`
	UserID    string    `json:"user_id"`
	DishName  string    `json:"dish_name"`
	MealSlot  string    `json:"meal_slot"`
	Feedback  int       `json:"feedback"`
	CreatedAt time.Time `json:"created_at"`
}

// FeedbackRepository defines the interface for feedback persistence
// This follows the Repository pattern for data access abstraction
type FeedbackRepository interface {
	Record(ctx context.Context, event FeedbackEvent) error
	FindByUser(ctx context.Context, userID string, offset, limit int) ([]FeedbackEvent, int, error)
	FindDislikes(ctx context.Context, userID string) ([]FeedbackEvent, error)
}

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// NutritionLookup resolves free-text meal names against an external
// food-composition database
type NutritionLookup interface {
	Analyze(ctx context.Context, mealName string, weightGrams float64) (*NutritionReport, error)
}

// NutritionReport is the scaled nutrient breakdown for an analyzed meal
type NutritionReport struct {
	FoodName       string             `json:"food_name"`
	MatchedFood    string             `json:"matched_food"`
	WeightGrams    float64            `json:"weight_grams"`
	Macronutrients map[string]float64 `json:"macronutrients"`
	Vitamins       map[string]float64 `json:"vitamins"`
	Minerals       map[string]float64 `json:"minerals"`
	Other          map[string]float64 `json:"other"`
}
