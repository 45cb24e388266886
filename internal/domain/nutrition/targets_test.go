package nutrition

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func maintenanceProfile() Profile {
	return Profile{
		UserID:        "user-1",
		HeightCM:      175,
		WeightKG:      72,
		Age:           25,
		Gender:        GenderMale,
		ActivityLevel: ActivityModerate,
		Goal:          GoalMaintenance,
		DietaryPref:   DietVeg,
	}
}

func TestComputeBMR(t *testing.T) {
	p := maintenanceProfile()

	// 10*72 + 6.25*175 - 5*25 + 5
	bmr := ComputeBMR(p)
	assert.InDelta(t, 1693.75, bmr, 0.01)

	// Female branch subtracts 161 instead of adding 5.
	p.Gender = GenderFemale
	assert.InDelta(t, 1693.75-166, ComputeBMR(p), 0.01)
}

func TestComputeTDEE(t *testing.T) {
	p := maintenanceProfile()

	tdee := ComputeTDEE(p)
	assert.InDelta(t, 1693.75*1.55, tdee, 0.01)
}

func TestAdjustForGoal(t *testing.T) {
	tests := []struct {
		name string
		tdee float64
		goal Goal
		want float64
	}{
		{"maintenance unchanged", 2000, GoalMaintenance, 2000},
		{"weight loss deficit", 2000, GoalWeightLoss, 1600},
		{"weight loss floor", 1400, GoalWeightLoss, 1200},
		{"weight loss extreme floor", 300, GoalWeightLoss, 1200},
		{"muscle gain surplus", 2000, GoalMuscleGain, 2300},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AdjustForGoal(tt.tdee, tt.goal))
		})
	}
}

func TestComputeMacroTargets(t *testing.T) {
	t.Run("ReferenceScenario", func(t *testing.T) {
		// 175cm/72kg/25y male, moderate, maintenance.
		targets := ComputeMacroTargets(maintenanceProfile())

		assert.InDelta(t, 2625.3, targets.Calories, 0.2)
		assert.InDelta(t, 129.6, targets.ProteinG, 0.01)
		assert.InDelta(t, 57.6, targets.FatsG, 0.01)
		// Carbs absorb the remainder: (cal - 4*protein - 9*fat) / 4.
		assert.InDelta(t, (targets.Calories-4*targets.ProteinG-9*targets.FatsG)/4, targets.CarbsG, 0.1)
	})

	t.Run("CalorieOverrideWins", func(t *testing.T) {
		p := maintenanceProfile()
		override := 1800.0
		p.TargetCalories = &override

		targets := ComputeMacroTargets(p)
		assert.Equal(t, 1800.0, targets.Calories)
	})

	t.Run("ProteinOverrideWins", func(t *testing.T) {
		p := maintenanceProfile()
		override := 150.0
		p.TargetProteinG = &override

		targets := ComputeMacroTargets(p)
		assert.Equal(t, 150.0, targets.ProteinG)
	})

	t.Run("CarbsNeverNegative", func(t *testing.T) {
		// Heavy user on an aggressive override: protein+fat calories alone
		// exceed the budget.
		p := maintenanceProfile()
		p.WeightKG = 150
		override := 1000.0
		p.TargetCalories = &override

		targets := ComputeMacroTargets(p)
		assert.Equal(t, 0.0, targets.CarbsG)
		assert.GreaterOrEqual(t, targets.Calories, 0.0)
	})

	t.Run("WeightLossFloorHolds", func(t *testing.T) {
		p := Profile{
			UserID:        "tiny",
			HeightCM:      140,
			WeightKG:      35,
			Age:           80,
			Gender:        GenderFemale,
			ActivityLevel: ActivitySedentary,
			Goal:          GoalWeightLoss,
		}
		targets := ComputeMacroTargets(p)
		assert.GreaterOrEqual(t, targets.Calories, MinDailyCalories)
	})
}

func TestMealTargets(t *testing.T) {
	daily := MacroTargets{Calories: 2000, ProteinG: 120, CarbsG: 230, FatsG: 60}

	t.Run("SharesSumToDaily", func(t *testing.T) {
		var sum MacroTargets
		for _, slot := range MealOrder {
			m := MealTargets(daily, slot)
			sum.Calories += m.Calories
			sum.ProteinG += m.ProteinG
			sum.CarbsG += m.CarbsG
			sum.FatsG += m.FatsG
		}
		assert.InDelta(t, daily.Calories, sum.Calories, 1e-9)
		assert.InDelta(t, daily.ProteinG, sum.ProteinG, 1e-9)
		assert.InDelta(t, daily.CarbsG, sum.CarbsG, 1e-9)
		assert.InDelta(t, daily.FatsG, sum.FatsG, 1e-9)
	})

	t.Run("LunchIsLargestShare", func(t *testing.T) {
		lunch := MealTargets(daily, SlotLunch)
		assert.InDelta(t, 700, lunch.Calories, 1e-9)
	})

	t.Run("UnknownSlotFallsBackToQuarter", func(t *testing.T) {
		m := MealTargets(daily, MealSlot("brunch"))
		assert.InDelta(t, 500, m.Calories, 1e-9)
	})
}

func TestDailyGuidance(t *testing.T) {
	assert.InDelta(t, 28.0, FiberTargetG(2000), 1e-9)
	assert.Equal(t, 2520.0, WaterTargetML(72))
}

func TestBMI(t *testing.T) {
	p := maintenanceProfile()
	require.InDelta(t, 72/(1.75*1.75), p.BMI(), 1e-9)
}
