package catalog

import (
	"strings"

	"github.com/Lalit-mahajan-1/NutriAi/internal/domain/nutrition"
)

// Keyword lists for the deterministic catalog enrichment pass. Sources that
// lack Category or Veg/Non-Veg columns are classified once at load time by
// substring match against the lowercased dish name. The mapping is total:
// every dish gets exactly one category and one diet tag.

var breakfastKeywords = []string{
	"oat", "porridge", "cereal", "chai", "tea", "coffee", "cocoa",
	"egg", "toast", "bread", "sandwich", "muffin", "pancake", "waffle",
	"idli", "dosa", "upma", "poha", "paratha", "parantha", "chilla",
	"cheela", "besan", "moong", "uttapam", "thepla", "cornflake",
	"milk", "curd", "yoghurt", "yogurt", "smoothie", "juice",
}

var snackKeywords = []string{
	"biscuit", "cookie", "cracker", "cake", "sweet", "halwa",
	"ladoo", "barfi", "kheer", "pudding", "ice cream", "dessert",
	"chips", "namkeen", "bhujia", "chakli", "murukku", "popcorn",
	"nut", "peanut", "cashew", "almond", "walnut", "seed", "fruit",
	"banana", "apple", "mango", "orange", "grape", "berry", "melon",
	"chaat", "pani puri", "bhel", "samosa", "pakora", "fritter",
	"drink", "sharbat", "lassi", "buttermilk",
	"espresso", "latte", "cappuccino",
}

var lunchKeywords = []string{
	"rice", "pulao", "biryani", "khichdi", "dal", "rajma", "chole",
	"sabzi", "curry", "sabji", "bhaji", "paneer", "tofu", "soya",
	"chicken", "fish", "mutton", "lamb", "prawn", "shrimp", "meat",
	"salad", "soup", "wrap", "burger", "pizza", "pasta", "noodle",
	"bowl", "thali", "sambar", "rasam", "kadhi",
}

var nonVegKeywords = []string{
	"chicken", "fish", "mutton", "lamb", "prawn", "shrimp", "meat",
	"egg", "keema", "seekh", "beef", "pork", "sardine", "tuna", "salmon",
	"bacon", "sausage", "ham", "crab", "lobster", "oyster",
}

// ClassifyCategory assigns a meal slot to a dish name. Lists are checked in
// priority order breakfast, snack, lunch; anything unmatched is dinner.
func ClassifyCategory(name string) nutrition.MealSlot {
	n := strings.ToLower(name)
	for _, kw := range breakfastKeywords {
		if strings.Contains(n, kw) {
			return nutrition.SlotBreakfast
		}
	}
	for _, kw := range snackKeywords {
		if strings.Contains(n, kw) {
			return nutrition.SlotSnack
		}
	}
	for _, kw := range lunchKeywords {
		if strings.Contains(n, kw) {
			return nutrition.SlotLunch
		}
	}
	return nutrition.SlotDinner
}

// ClassifyDiet tags a dish name as Non-Veg when it mentions any animal
// product keyword, Veg otherwise.
func ClassifyDiet(name string) DietTag {
	n := strings.ToLower(name)
	for _, kw := range nonVegKeywords {
		if strings.Contains(n, kw) {
			return DietTagNonVeg
		}
	}
	return DietTagVeg
}
