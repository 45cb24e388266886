// Package planner composes the candidate filter and the bandit into a full
// 7-day meal plan: greedy per-slot decisions under the weekly diversity cap.
package planner

import (
	"github.com/Lalit-mahajan-1/NutriAi/internal/domain/bandit"
	"github.com/Lalit-mahajan-1/NutriAi/internal/domain/catalog"
	"github.com/Lalit-mahajan-1/NutriAi/internal/domain/nutrition"
)

// PlanDays is the fixed plan horizon.
const PlanDays = 7

// MealEntry is one selected dish with its nutrition snapshot. A nil entry in
// a day's meal map means no eligible candidate existed for that slot.
type MealEntry struct {
	DishName     string  `json:"dish_name"`
	CaloriesKcal float64 `json:"calories_kcal"`
	ProteinG     float64 `json:"protein_g"`
	CarbsG       float64 `json:"carbs_g"`
	FatsG        float64 `json:"fats_g"`
	Category     string  `json:"category"`
	VegNonVeg    string  `json:"veg_nonveg"`
	Price        float64 `json:"price"`
}

// DayPlan holds the meal entries for one day, keyed by slot.
type DayPlan struct {
	Day   int                              `json:"day"`
	Meals map[nutrition.MealSlot]*MealEntry `json:"meals"`
}

// DailyGuidance extends the macro targets with fiber and water guidance.
type DailyGuidance struct {
	nutrition.MacroTargets
	FiberG  float64 `json:"fiber_g"`
	WaterML float64 `json:"water_ml"`
}

// WeeklyPlan is the aggregate plan output for one user.
type WeeklyPlan struct {
	UserID       string        `json:"user_id"`
	DailyTargets DailyGuidance `json:"daily_targets"`
	Days         []DayPlan     `json:"days"`
}

// Planner generates weekly plans against a fixed catalog and a shared bandit
// store. It holds no per-call state; weekly repetition counts are scoped to
// a single Generate invocation, so concurrent calls for different users do
// not interact through the planner itself.
type Planner struct {
	catalog    *catalog.Catalog
	bandit     *bandit.Store
	maxPerWeek int
}

// New creates a planner. A non-positive maxPerWeek falls back to the bandit
// default of 2.
func New(c *catalog.Catalog, store *bandit.Store, maxPerWeek int) *Planner {
	if maxPerWeek <= 0 {
		maxPerWeek = bandit.DefaultMaxPerWeek
	}
	return &Planner{catalog: c, bandit: store, maxPerWeek: maxPerWeek}
}

// Generate builds the 7-day plan for a profile. Each of the 28 slot
// decisions is final once made: a slot with no eligible candidate is
// recorded as nil and planning continues, never backtracking.
func (pl *Planner) Generate(p nutrition.Profile) *WeeklyPlan {
	daily := nutrition.ComputeMacroTargets(p)
	weeklyCounts := make(map[string]int)

	plan := &WeeklyPlan{
		UserID: p.UserID,
		DailyTargets: DailyGuidance{
			MacroTargets: daily,
			FiberG:       nutrition.FiberTargetG(daily.Calories),
			WaterML:      nutrition.WaterTargetML(p.WeightKG),
		},
		Days: make([]DayPlan, 0, PlanDays),
	}

	for day := 1; day <= PlanDays; day++ {
		dp := DayPlan{Day: day, Meals: make(map[nutrition.MealSlot]*MealEntry, len(nutrition.MealOrder))}

		for _, slot := range nutrition.MealOrder {
			candidates := pl.catalog.Filter(p, slot)
			if len(candidates) == 0 {
				dp.Meals[slot] = nil
				continue
			}

			dish, ok := pl.bandit.SelectDish(p, daily, slot, candidates, weeklyCounts, pl.maxPerWeek)
			if !ok {
				dp.Meals[slot] = nil
				continue
			}

			weeklyCounts[dish.Name]++
			dp.Meals[slot] = &MealEntry{
				DishName:     dish.Name,
				CaloriesKcal: dish.CaloriesKcal,
				ProteinG:     dish.ProteinG,
				CarbsG:       dish.CarbsG,
				FatsG:        dish.FatsG,
				Category:     string(slot),
				VegNonVeg:    string(dish.Diet),
				Price:        dish.Price,
			}
		}

		plan.Days = append(plan.Days, dp)
	}

	return plan
}
