package bandit

import (
	"github.com/Lalit-mahajan-1/NutriAi/internal/domain/catalog"
	"github.com/Lalit-mahajan-1/NutriAi/internal/domain/nutrition"
)

// Dim is the context vector length: bias, normalized BMI, gender flag, the
// four-slot one-hot, and the four dish-macro fractions of the daily targets.
const Dim = 11

// BuildContext constructs the LinUCB feature vector for one
// (profile, daily targets, meal slot, dish) combination. The same
// construction is used for selection scoring and feedback updates.
func BuildContext(p nutrition.Profile, daily nutrition.MacroTargets, slot nutrition.MealSlot, dish catalog.Dish) []float64 {
	x := make([]float64, 0, Dim)

	// Bias term.
	x = append(x, 1)

	// BMI scaled into ~[0,1]: 15 maps to 0, 35 to 1, clamped.
	x = append(x, clamp((p.BMI()-15)/20, 0, 1))

	if p.Gender == nutrition.GenderMale {
		x = append(x, 1)
	} else {
		x = append(x, 0)
	}

	for _, s := range nutrition.MealOrder {
		if s == slot {
			x = append(x, 1)
		} else {
			x = append(x, 0)
		}
	}

	x = append(x,
		dish.CaloriesKcal/max1(daily.Calories),
		dish.ProteinG/max1(daily.ProteinG),
		dish.CarbsG/max1(daily.CarbsG),
		dish.FatsG/max1(daily.FatsG),
	)

	return x
}

// MacroFit scores how well a dish matches a meal budget, in [0,1]. It is one
// minus the mean relative error over the four macros, floored at zero; a
// non-positive target contributes zero error for that macro.
func MacroFit(meal nutrition.MacroTargets, dish catalog.Dish) float64 {
	errs := [4]float64{
		relErr(dish.CaloriesKcal, meal.Calories),
		relErr(dish.ProteinG, meal.ProteinG),
		relErr(dish.CarbsG, meal.CarbsG),
		relErr(dish.FatsG, meal.FatsG),
	}
	mean := (errs[0] + errs[1] + errs[2] + errs[3]) / 4
	if fit := 1 - mean; fit > 0 {
		return fit
	}
	return 0
}

func relErr(v, target float64) float64 {
	if target <= 0 {
		return 0
	}
	return abs(v-target) / target
}

func max1(v float64) float64 {
	if v > 1 {
		return v
	}
	return 1
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
