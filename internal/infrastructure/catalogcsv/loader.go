// Package catalogcsv loads the dish catalog from a CSV export. Column
// headers vary across dataset revisions, so known aliases are normalized
// before rows are decoded, and missing Category / Veg_NonVeg columns are
// backfilled with the keyword classifier.
package catalogcsv

import (
	"context"
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/Lalit-mahajan-1/NutriAi/internal/domain/catalog"
	"github.com/Lalit-mahajan-1/NutriAi/internal/domain/nutrition"
	"github.com/Lalit-mahajan-1/NutriAi/pkg/errors"
	"go.uber.org/zap"
)

// columnAliases maps every known header spelling to its canonical name.
var columnAliases = map[string]string{
	"dish name":         "dish_name",
	"food name":         "dish_name",
	"calories (kcal)":   "calories",
	"calories (k)":      "calories",
	"protein (g)":       "protein",
	"carbs (g)":         "carbs",
	"carbohydrate (g)":  "carbs",
	"carbohydrate":      "carbs",
	"carbohydrates (g)": "carbs",
	"fats (g)":          "fats",
	"fat (g)":           "fats",
	"price (inr)":       "price",
	"category":          "category",
	"veg_nonveg":        "diet",
	"veg/non-veg":       "diet",
}

// Loader reads dishes from a CSV file on disk
type Loader struct {
	path   string
	logger *zap.Logger
}

// NewLoader creates a catalog loader for the given CSV path
func NewLoader(path string, logger *zap.Logger) *Loader {
	return &Loader{path: path, logger: logger.Named("catalog-csv")}
}

// Load parses the CSV into dishes. Rows without a dish name are skipped;
// unparseable numeric cells fall back to zero so one bad row cannot sink
// the whole catalog.
func (l *Loader) Load(ctx context.Context) ([]catalog.Dish, error) {
	f, err := os.Open(l.path)
	if err != nil {
		return nil, errors.NewCatalogError(l.path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // tolerate ragged rows

	header, err := r.Read()
	if err != nil {
		return nil, errors.NewCatalogError(l.path, err)
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(h))
		if canonical, ok := columnAliases[key]; ok {
			cols[canonical] = i
		}
	}
	if _, ok := cols["dish_name"]; !ok {
		return nil, errors.NewCatalogError(l.path, nil).
			WithMetadata("reason", "no dish name column found")
	}

	var (
		dishes  []catalog.Dish
		skipped int
	)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			skipped++
			continue
		}

		name := strings.TrimSpace(cell(record, cols, "dish_name"))
		if name == "" {
			skipped++
			continue
		}

		d := catalog.Dish{
			Name:         name,
			CaloriesKcal: num(cell(record, cols, "calories")),
			ProteinG:     num(cell(record, cols, "protein")),
			CarbsG:       num(cell(record, cols, "carbs")),
			FatsG:        num(cell(record, cols, "fats")),
			Price:        num(cell(record, cols, "price")),
		}

		if raw := strings.TrimSpace(cell(record, cols, "category")); raw != "" {
			d.Category = nutrition.MealSlot(strings.ToLower(raw))
		} else {
			d.Category = catalog.ClassifyCategory(name)
		}

		if raw := strings.TrimSpace(cell(record, cols, "diet")); raw != "" {
			if strings.EqualFold(raw, string(catalog.DietTagNonVeg)) {
				d.Diet = catalog.DietTagNonVeg
			} else {
				d.Diet = catalog.DietTagVeg
			}
		} else {
			d.Diet = catalog.ClassifyDiet(name)
		}

		dishes = append(dishes, d)
	}

	if len(dishes) == 0 {
		return nil, errors.NewCatalogEmptyError().WithMetadata("source", l.path)
	}

	l.logger.Info("Loaded dish catalog",
		zap.String("path", l.path),
		zap.Int("dishes", len(dishes)),
		zap.Int("skipped_rows", skipped),
	)

	return dishes, nil
}

func cell(record []string, cols map[string]int, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(record) {
		return ""
	}
	return record[i]
}

func num(raw string) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return v
}
