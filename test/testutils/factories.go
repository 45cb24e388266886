// Package testutils provides test data factories for consistent test data generation
package testutils

import (
	"fmt"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/Lalit-mahajan-1/NutriAi/internal/domain/catalog"
	"github.com/Lalit-mahajan-1/NutriAi/internal/domain/nutrition"
)

// ProfileFactory creates randomized user profiles
type ProfileFactory struct {
	faker *gofakeit.Faker
}

// NewProfileFactory creates a profile factory with seeded faker
func NewProfileFactory(seed int64) *ProfileFactory {
	return &ProfileFactory{faker: gofakeit.New(seed)}
}

// Profile generates a random but physiologically plausible profile
func (f *ProfileFactory) Profile() nutrition.Profile {
	genders := []nutrition.Gender{nutrition.GenderMale, nutrition.GenderFemale}
	activities := []nutrition.ActivityLevel{
		nutrition.ActivitySedentary,
		nutrition.ActivityLight,
		nutrition.ActivityModerate,
		nutrition.ActivityVeryActive,
		nutrition.ActivityExtraActive,
	}
	goals := []nutrition.Goal{
		nutrition.GoalWeightLoss,
		nutrition.GoalMaintenance,
		nutrition.GoalMuscleGain,
	}
	diets := []nutrition.DietaryPreference{nutrition.DietVeg, nutrition.DietNonVeg}

	return nutrition.Profile{
		UserID:        f.faker.UUID(),
		HeightCM:      f.faker.Float64Range(145, 200),
		WeightKG:      f.faker.Float64Range(40, 120),
		Age:           f.faker.Number(18, 75),
		Gender:        genders[f.faker.Number(0, len(genders)-1)],
		ActivityLevel: activities[f.faker.Number(0, len(activities)-1)],
		Goal:          goals[f.faker.Number(0, len(goals)-1)],
		DietaryPref:   diets[f.faker.Number(0, len(diets)-1)],
	}
}

// DishFactory creates randomized catalog dishes
type DishFactory struct {
	faker *gofakeit.Faker
	seq   int
}

// NewDishFactory creates a dish factory with seeded faker
func NewDishFactory(seed int64) *DishFactory {
	return &DishFactory{faker: gofakeit.New(seed)}
}

// Dish generates a random dish for the given slot and diet tag. Names are
// sequence-suffixed so a batch never collides on the catalog's name index.
func (f *DishFactory) Dish(slot nutrition.MealSlot, diet catalog.DietTag) catalog.Dish {
	f.seq++
	return catalog.Dish{
		Name:         fmt.Sprintf("%s %d", f.faker.Dinner(), f.seq),
		Category:     slot,
		Diet:         diet,
		CaloriesKcal: f.faker.Float64Range(80, 650),
		ProteinG:     f.faker.Float64Range(2, 40),
		CarbsG:       f.faker.Float64Range(5, 90),
		FatsG:        f.faker.Float64Range(1, 35),
		Price:        f.faker.Float64Range(20, 350),
	}
}

// Menu generates a balanced catalog with count dishes per slot, alternating
// veg and non-veg tags.
func (f *DishFactory) Menu(countPerSlot int) []catalog.Dish {
	slots := []nutrition.MealSlot{
		nutrition.SlotBreakfast,
		nutrition.SlotLunch,
		nutrition.SlotDinner,
		nutrition.SlotSnack,
	}

	dishes := make([]catalog.Dish, 0, countPerSlot*len(slots))
	for _, slot := range slots {
		for i := 0; i < countPerSlot; i++ {
			diet := catalog.DietTagVeg
			if i%2 == 1 {
				diet = catalog.DietTagNonVeg
			}
			dishes = append(dishes, f.Dish(slot, diet))
		}
	}
	return dishes
}
