package catalogcsv

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/Lalit-mahajan-1/NutriAi/internal/domain/catalog"
	"github.com/Lalit-mahajan-1/NutriAi/internal/domain/nutrition"
	"github.com/Lalit-mahajan-1/NutriAi/pkg/errors"
	"github.com/Lalit-mahajan-1/NutriAi/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadCanonicalHeaders(t *testing.T) {
	path := writeCSV(t, `Dish Name,Calories (kcal),Protein (g),Carbs (g),Fats (g),Price (INR),Category,Veg_NonVeg
Veg Pulao,420,10,70,10,80,lunch,Veg
Chicken Curry,480,35,15,28,150,lunch,Non-Veg
`)

	dishes, err := NewLoader(path, logger.NewNop()).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, dishes, 2)

	assert.Equal(t, "Veg Pulao", dishes[0].Name)
	assert.Equal(t, 420.0, dishes[0].CaloriesKcal)
	assert.Equal(t, nutrition.SlotLunch, dishes[0].Category)
	assert.Equal(t, catalog.DietTagVeg, dishes[0].Diet)
	assert.Equal(t, catalog.DietTagNonVeg, dishes[1].Diet)
	assert.Equal(t, 150.0, dishes[1].Price)
}

func TestLoadAliasedHeaders(t *testing.T) {
	path := writeCSV(t, `Food Name,Calories (k),Protein (g),Carbohydrates (g),Fat (g),Veg/Non-Veg
Masala Dosa,330,8,55,9,Veg
`)

	dishes, err := NewLoader(path, logger.NewNop()).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, dishes, 1)

	assert.Equal(t, "Masala Dosa", dishes[0].Name)
	assert.Equal(t, 330.0, dishes[0].CaloriesKcal)
	assert.Equal(t, 55.0, dishes[0].CarbsG)
	assert.Equal(t, 9.0, dishes[0].FatsG)
	assert.Equal(t, 0.0, dishes[0].Price)
}

func TestLoadBackfillsMissingColumns(t *testing.T) {
	path := writeCSV(t, `Dish Name,Calories (kcal),Protein (g),Carbs (g),Fats (g)
Poha,250,6,45,5
Chicken Biryani,650,30,80,20
Dal Tadka,340,16,45,9
`)

	dishes, err := NewLoader(path, logger.NewNop()).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, dishes, 3)

	// Keyword classification fills the gaps.
	assert.Equal(t, nutrition.SlotBreakfast, dishes[0].Category)
	assert.Equal(t, catalog.DietTagVeg, dishes[0].Diet)
	assert.Equal(t, catalog.DietTagNonVeg, dishes[1].Diet)
	assert.Equal(t, nutrition.SlotLunch, dishes[2].Category)
}

func TestLoadSkipsBlankAndBadRows(t *testing.T) {
	path := writeCSV(t, `Dish Name,Calories (kcal),Protein (g),Carbs (g),Fats (g)
,100,1,1,1
Upma,not-a-number,7,40,6
`)

	dishes, err := NewLoader(path, logger.NewNop()).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, dishes, 1)

	assert.Equal(t, "Upma", dishes[0].Name)
	assert.Equal(t, 0.0, dishes[0].CaloriesKcal, "bad numeric cell falls back to zero")
	assert.Equal(t, 40.0, dishes[0].CarbsG)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := NewLoader(filepath.Join(t.TempDir(), "absent.csv"), logger.NewNop()).Load(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.CodeCatalogError))
}

func TestLoadRejectsHeaderWithoutDishName(t *testing.T) {
	path := writeCSV(t, `Ingredient,Calories (kcal)
Salt,0
`)

	_, err := NewLoader(path, logger.NewNop()).Load(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.CodeCatalogError))
}
