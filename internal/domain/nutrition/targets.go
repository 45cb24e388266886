package nutrition

import "math"

// MacroTargets holds a calorie budget and its macro split in grams.
// A daily instance is scaled by the per-slot shares to produce per-meal
// budgets. All values are non-negative.
type MacroTargets struct {
	Calories float64 `json:"calories"`
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatsG    float64 `json:"fats_g"`
}

const (
	// MinDailyCalories is the hard safety floor for weight loss.
	MinDailyCalories = 1200.0

	weightLossDeficit = 400.0
	muscleGainSurplus = 300.0

	defaultProteinPerKG = 1.8
	defaultFatPerKG     = 0.8

	kcalPerGramProtein = 4.0
	kcalPerGramCarb    = 4.0
	kcalPerGramFat     = 9.0

	// Fiber and water guidance reported alongside the daily targets.
	fiberGramsPer1000Kcal = 14.0
	waterMLPerKG          = 35.0

	// defaultMealShare is applied when a slot is not in the share table.
	defaultMealShare = 0.25
)

// activityMultipliers is the single source of truth for valid activity
// levels and their TDEE factors.
var activityMultipliers = map[ActivityLevel]float64{
	ActivitySedentary:   1.2,
	ActivityLight:       1.375,
	ActivityModerate:    1.55,
	ActivityVeryActive:  1.725,
	ActivityExtraActive: 1.9,
}

// mealShares splits the daily budget across the four slots. The shares sum
// to exactly 1.0.
var mealShares = map[MealSlot]float64{
	SlotBreakfast: 0.25,
	SlotLunch:     0.35,
	SlotDinner:    0.30,
	SlotSnack:     0.10,
}

// ComputeBMR estimates basal metabolic rate with the Mifflin-St Jeor
// formula. Unrecognized genders fall on the female branch; callers are
// expected to have normalized the profile already.
func ComputeBMR(p Profile) float64 {
	base := 10*p.WeightKG + 6.25*p.HeightCM - 5*float64(p.Age)
	if p.Gender == GenderMale {
		return base + 5
	}
	return base - 161
}

// ComputeTDEE scales BMR by the activity multiplier. An unknown activity
// level uses the moderate multiplier.
func ComputeTDEE(p Profile) float64 {
	mult, ok := activityMultipliers[p.ActivityLevel]
	if !ok {
		mult = activityMultipliers[ActivityModerate]
	}
	return ComputeBMR(p) * mult
}

// AdjustForGoal applies the goal's calorie adjustment. Weight loss never
// drops below MinDailyCalories.
func AdjustForGoal(tdee float64, goal Goal) float64 {
	switch goal {
	case GoalWeightLoss:
		return math.Max(MinDailyCalories, tdee-weightLossDeficit)
	case GoalMuscleGain:
		return tdee + muscleGainSurplus
	default:
		return tdee
	}
}

// ComputeMacroTargets derives the daily calorie and macro budget for a
// profile. Protein defaults to 1.8 g/kg and fat to 0.8 g/kg body weight;
// carbs absorb the remaining calories at 4 kcal/g, floored at zero.
// Explicit calorie/protein overrides on the profile take precedence.
func ComputeMacroTargets(p Profile) MacroTargets {
	dailyCals := AdjustForGoal(ComputeTDEE(p), p.Goal)
	if p.TargetCalories != nil {
		dailyCals = *p.TargetCalories
	}

	proteinG := defaultProteinPerKG * p.WeightKG
	if p.TargetProteinG != nil {
		proteinG = *p.TargetProteinG
	}
	fatsG := defaultFatPerKG * p.WeightKG

	remaining := math.Max(0, dailyCals-kcalPerGramProtein*proteinG-kcalPerGramFat*fatsG)
	carbsG := remaining / kcalPerGramCarb

	return MacroTargets{
		Calories: round1(dailyCals),
		ProteinG: round1(proteinG),
		CarbsG:   round1(carbsG),
		FatsG:    round1(fatsG),
	}
}

// MealTargets scales a daily budget to one meal slot. Unknown slots get the
// default 0.25 share.
func MealTargets(daily MacroTargets, slot MealSlot) MacroTargets {
	share, ok := mealShares[slot]
	if !ok {
		share = defaultMealShare
	}
	return MacroTargets{
		Calories: daily.Calories * share,
		ProteinG: daily.ProteinG * share,
		CarbsG:   daily.CarbsG * share,
		FatsG:    daily.FatsG * share,
	}
}

// FiberTargetG returns the daily fiber guidance of 14 g per 1000 kcal.
func FiberTargetG(dailyCalories float64) float64 {
	return round1(fiberGramsPer1000Kcal * dailyCalories / 1000)
}

// WaterTargetML returns the daily water guidance of 35 ml per kg body weight.
func WaterTargetML(weightKG float64) float64 {
	return math.Round(waterMLPerKG * weightKG)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
