// Package catalog contains the dish catalog domain: the typed dish table,
// the deterministic keyword classifier used to enrich untyped sources, and
// the candidate filter applied before bandit selection.
package catalog

import (
	"strings"

	"github.com/Lalit-mahajan-1/NutriAi/internal/domain/nutrition"
)

// DietTag marks a dish as vegetarian or not.
type DietTag string

const (
	DietTagVeg    DietTag = "Veg"
	DietTagNonVeg DietTag = "Non-Veg"
)

// Dish is one catalog record. Name is the unique key within a catalog.
// Price is 0 when the source table carries no price data.
type Dish struct {
	Name         string
	Category     nutrition.MealSlot
	Diet         DietTag
	CaloriesKcal float64
	ProteinG     float64
	CarbsG       float64
	FatsG        float64
	Price        float64
}

// Catalog is an immutable in-memory dish table, read-only after load.
type Catalog struct {
	dishes []Dish
	byName map[string]int
}

// New builds a catalog from a dish slice. When the same name appears more
// than once the first occurrence wins; iteration order is preserved.
func New(dishes []Dish) *Catalog {
	c := &Catalog{
		dishes: make([]Dish, 0, len(dishes)),
		byName: make(map[string]int, len(dishes)),
	}
	for _, d := range dishes {
		if _, dup := c.byName[d.Name]; dup {
			continue
		}
		c.byName[d.Name] = len(c.dishes)
		c.dishes = append(c.dishes, d)
	}
	return c
}

// Len returns the number of dishes.
func (c *Catalog) Len() int {
	return len(c.dishes)
}

// Dishes returns the dishes in load order. The returned slice must not be
// mutated.
func (c *Catalog) Dishes() []Dish {
	return c.dishes
}

// Lookup finds a dish by its exact name.
func (c *Catalog) Lookup(name string) (Dish, bool) {
	i, ok := c.byName[name]
	if !ok {
		return Dish{}, false
	}
	return c.dishes[i], true
}

// Prices returns the dish name to price map for dishes that carry a price.
func (c *Catalog) Prices() map[string]float64 {
	prices := make(map[string]float64)
	for _, d := range c.dishes {
		if d.Price > 0 {
			prices[d.Name] = d.Price
		}
	}
	return prices
}

// Filter returns the candidate dishes for a profile and meal slot: the
// category must match the slot (case-insensitive), a veg preference admits
// only Veg dishes (non-veg admits both), and dishes whose name contains any
// of the profile's allergy substrings are excluded. Output order follows
// catalog load order; callers treat it as an unordered working set.
func (c *Catalog) Filter(p nutrition.Profile, slot nutrition.MealSlot) []Dish {
	allergies := make([]string, 0, len(p.Allergies))
	for _, a := range p.Allergies {
		if a = strings.TrimSpace(a); a != "" {
			allergies = append(allergies, strings.ToLower(a))
		}
	}

	var out []Dish
	for _, d := range c.dishes {
		if !strings.EqualFold(string(d.Category), string(slot)) {
			continue
		}
		if p.DietaryPref == nutrition.DietVeg && !strings.EqualFold(string(d.Diet), string(DietTagVeg)) {
			continue
		}
		if nameContainsAny(d.Name, allergies) {
			continue
		}
		out = append(out, d)
	}
	return out
}

func nameContainsAny(name string, substrings []string) bool {
	lower := strings.ToLower(name)
	for _, s := range substrings {
		if strings.Contains(lower, s) {
			return true
		}
	}
	return false
}
