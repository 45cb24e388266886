// Package nutrition contains the core domain logic for macro-nutrient
// targeting: profiles, BMR/TDEE estimation and daily/per-meal budgets.
package nutrition

// Gender is the biological sex used by the Mifflin-St Jeor formula.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// ActivityLevel describes habitual physical activity.
type ActivityLevel string

const (
	ActivitySedentary   ActivityLevel = "sedentary"
	ActivityLight       ActivityLevel = "light"
	ActivityModerate    ActivityLevel = "moderate"
	ActivityVeryActive  ActivityLevel = "very_active"
	ActivityExtraActive ActivityLevel = "extra_active"
)

// Goal is the user's dietary objective.
type Goal string

const (
	GoalWeightLoss  Goal = "weight_loss"
	GoalMaintenance Goal = "maintenance"
	GoalMuscleGain  Goal = "muscle_gain"
)

// DietaryPreference selects veg-only or unrestricted candidate dishes.
type DietaryPreference string

const (
	DietVeg    DietaryPreference = "veg"
	DietNonVeg DietaryPreference = "non-veg"
)

// MealSlot is one of the four daily meal positions.
type MealSlot string

const (
	SlotBreakfast MealSlot = "breakfast"
	SlotLunch     MealSlot = "lunch"
	SlotDinner    MealSlot = "dinner"
	SlotSnack     MealSlot = "snack"
)

// MealOrder is the fixed slot order used by the weekly planner.
var MealOrder = []MealSlot{SlotBreakfast, SlotLunch, SlotDinner, SlotSnack}

// Profile is an immutable snapshot of a user's body metrics and dietary
// settings for the duration of one planning call. Callers are expected to
// pre-normalize free-form values; see the application layer's
// NormalizeProfile for the documented defaults.
type Profile struct {
	UserID        string
	HeightCM      float64
	WeightKG      float64
	Age           int
	Gender        Gender
	ActivityLevel ActivityLevel
	Goal          Goal
	DietaryPref   DietaryPreference

	// Allergies are free-text substrings excluded from dish names.
	Allergies []string

	// Explicit overrides. When set they win over the computed values.
	TargetCalories *float64
	TargetProteinG *float64
}

// BMI returns the body mass index derived from height and weight.
func (p Profile) BMI() float64 {
	h := p.HeightCM / 100
	return p.WeightKG / (h * h)
}
