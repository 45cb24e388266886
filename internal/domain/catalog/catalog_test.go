package catalog

import (
	"testing"

	"github.com/Lalit-mahajan-1/NutriAi/internal/domain/nutrition"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDishes() []Dish {
	return []Dish{
		{Name: "Masala Oats", Category: nutrition.SlotBreakfast, Diet: DietTagVeg, CaloriesKcal: 250, ProteinG: 9, CarbsG: 40, FatsG: 6, Price: 40},
		{Name: "Egg Bhurji", Category: nutrition.SlotBreakfast, Diet: DietTagNonVeg, CaloriesKcal: 220, ProteinG: 14, CarbsG: 4, FatsG: 16},
		{Name: "Paneer Butter Masala", Category: nutrition.SlotLunch, Diet: DietTagVeg, CaloriesKcal: 450, ProteinG: 18, CarbsG: 22, FatsG: 32, Price: 180},
		{Name: "Chicken Biryani", Category: nutrition.SlotLunch, Diet: DietTagNonVeg, CaloriesKcal: 600, ProteinG: 28, CarbsG: 70, FatsG: 20, Price: 220},
		{Name: "Peanut Chikki", Category: nutrition.SlotSnack, Diet: DietTagVeg, CaloriesKcal: 180, ProteinG: 5, CarbsG: 20, FatsG: 9},
		{Name: "Dal Tadka", Category: nutrition.SlotDinner, Diet: DietTagVeg, CaloriesKcal: 320, ProteinG: 15, CarbsG: 45, FatsG: 8, Price: 120},
	}
}

func vegProfile() nutrition.Profile {
	return nutrition.Profile{
		UserID:        "user-1",
		HeightCM:      170,
		WeightKG:      70,
		Age:           30,
		Gender:        nutrition.GenderFemale,
		ActivityLevel: nutrition.ActivityLight,
		Goal:          nutrition.GoalMaintenance,
		DietaryPref:   nutrition.DietVeg,
	}
}

func TestCatalogLookup(t *testing.T) {
	c := New(testDishes())
	require.Equal(t, 6, c.Len())

	d, ok := c.Lookup("Dal Tadka")
	require.True(t, ok)
	assert.Equal(t, nutrition.SlotDinner, d.Category)

	_, ok = c.Lookup("Unknown Dish")
	assert.False(t, ok)
}

func TestCatalogDeduplicatesByName(t *testing.T) {
	dishes := testDishes()
	dup := dishes[0]
	dup.CaloriesKcal = 999
	c := New(append(dishes, dup))

	require.Equal(t, 6, c.Len())
	d, _ := c.Lookup("Masala Oats")
	assert.Equal(t, 250.0, d.CaloriesKcal, "first occurrence wins")
}

func TestCatalogPrices(t *testing.T) {
	prices := New(testDishes()).Prices()

	assert.Len(t, prices, 4)
	assert.Equal(t, 220.0, prices["Chicken Biryani"])
	_, present := prices["Egg Bhurji"]
	assert.False(t, present, "dishes without price data are omitted")
}

func TestFilter(t *testing.T) {
	c := New(testDishes())

	t.Run("CategoryMatchIsCaseInsensitive", func(t *testing.T) {
		p := vegProfile()
		p.DietaryPref = nutrition.DietNonVeg

		got := c.Filter(p, nutrition.MealSlot("Breakfast"))
		require.Len(t, got, 2)
	})

	t.Run("VegPreferenceExcludesNonVeg", func(t *testing.T) {
		got := c.Filter(vegProfile(), nutrition.SlotLunch)
		require.Len(t, got, 1)
		assert.Equal(t, "Paneer Butter Masala", got[0].Name)
	})

	t.Run("NonVegPreferenceAdmitsBoth", func(t *testing.T) {
		p := vegProfile()
		p.DietaryPref = nutrition.DietNonVeg

		got := c.Filter(p, nutrition.SlotLunch)
		assert.Len(t, got, 2)
	})

	t.Run("AllergySubstringExcludes", func(t *testing.T) {
		p := vegProfile()
		p.DietaryPref = nutrition.DietNonVeg
		p.Allergies = []string{"PANEER", "egg"}

		lunch := c.Filter(p, nutrition.SlotLunch)
		require.Len(t, lunch, 1)
		assert.Equal(t, "Chicken Biryani", lunch[0].Name)

		breakfast := c.Filter(p, nutrition.SlotBreakfast)
		require.Len(t, breakfast, 1)
		assert.Equal(t, "Masala Oats", breakfast[0].Name)
	})

	t.Run("EmptyWhenNothingMatches", func(t *testing.T) {
		p := vegProfile()
		p.Allergies = []string{"oats"}

		got := c.Filter(p, nutrition.SlotBreakfast)
		assert.Empty(t, got)
	})
}

func TestClassifyCategory(t *testing.T) {
	tests := []struct {
		dish string
		want nutrition.MealSlot
	}{
		{"Masala Dosa", nutrition.SlotBreakfast},
		{"Banana Lassi", nutrition.SlotSnack},
		{"Vegetable Pulao", nutrition.SlotLunch},
		{"Bhindi Masala", nutrition.SlotDinner}, // no keyword hit, default
		{"Aloo Gobhi", nutrition.SlotDinner},
	}

	for _, tt := range tests {
		t.Run(tt.dish, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyCategory(tt.dish))
		})
	}
}

func TestClassifyCategoryPriorityOrder(t *testing.T) {
	// "egg" (breakfast) beats "curry" (lunch) because breakfast keywords
	// are checked first.
	assert.Equal(t, nutrition.SlotBreakfast, ClassifyCategory("Egg Curry"))
}

func TestClassifyDiet(t *testing.T) {
	assert.Equal(t, DietTagNonVeg, ClassifyDiet("Grilled Chicken"))
	assert.Equal(t, DietTagNonVeg, ClassifyDiet("Keema Pav"))
	assert.Equal(t, DietTagVeg, ClassifyDiet("Palak Paneer"))
	assert.Equal(t, DietTagVeg, ClassifyDiet(""))
}
