package mealplan

import (
	"strings"

	"github.com/Lalit-mahajan-1/NutriAi/internal/domain/nutrition"
	"github.com/Lalit-mahajan-1/NutriAi/internal/ports/inbound"
)

// Defaults applied when a profile field is missing or unparseable. The
// planner would rather produce a plan for a reasonable reference body
// than refuse the request over a sloppy client payload.
const (
	defaultHeightCM = 170
	defaultWeightKG = 70
	defaultAge      = 25
)

// NormalizeProfile coerces a raw inbound profile into a domain profile.
// String enums are matched case-insensitively with common aliases;
// anything unrecognized falls back to the documented default.
func NormalizeProfile(cmd inbound.ProfileCommand) nutrition.Profile {
	p := nutrition.Profile{
		UserID:         strings.TrimSpace(cmd.UserID),
		HeightCM:       cmd.HeightCM,
		WeightKG:       cmd.WeightKG,
		Age:            cmd.Age,
		Gender:         normalizeGender(cmd.Gender),
		ActivityLevel:  normalizeActivity(cmd.ActivityLevel),
		Goal:           normalizeGoal(cmd.Goal),
		DietaryPref:    normalizeDiet(cmd.DietaryPref),
		TargetCalories: cmd.TargetCalories,
		TargetProteinG: cmd.TargetProteinG,
	}

	if p.HeightCM <= 0 {
		p.HeightCM = defaultHeightCM
	}
	if p.WeightKG <= 0 {
		p.WeightKG = defaultWeightKG
	}
	if p.Age <= 0 {
		p.Age = defaultAge
	}

	for _, a := range cmd.Allergies {
		a = strings.TrimSpace(a)
		if a != "" {
			p.Allergies = append(p.Allergies, a)
		}
	}

	return p
}

func normalizeGender(raw string) nutrition.Gender {
	switch canonical(raw) {
	case "female", "f", "woman":
		return nutrition.GenderFemale
	default:
		return nutrition.GenderMale
	}
}

func normalizeActivity(raw string) nutrition.ActivityLevel {
	switch canonical(raw) {
	case "sedentary":
		return nutrition.ActivitySedentary
	case "light", "lightly_active":
		return nutrition.ActivityLight
	case "very_active", "active":
		return nutrition.ActivityVeryActive
	case "extra_active", "athlete":
		return nutrition.ActivityExtraActive
	default:
		return nutrition.ActivityModerate
	}
}

func normalizeGoal(raw string) nutrition.Goal {
	switch canonical(raw) {
	case "weight_loss", "lose_weight", "cut":
		return nutrition.GoalWeightLoss
	case "muscle_gain", "gain_muscle", "bulk":
		return nutrition.GoalMuscleGain
	default:
		return nutrition.GoalMaintenance
	}
}

func normalizeDiet(raw string) nutrition.DietaryPreference {
	switch canonical(raw) {
	case "veg", "vegetarian":
		return nutrition.DietVeg
	default:
		return nutrition.DietNonVeg
	}
}

// canonical lowercases and collapses separators so "Very Active",
// "very-active" and "VERY_ACTIVE" all match the same case.
func canonical(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}

func normalizeSlot(raw string) nutrition.MealSlot {
	switch canonical(raw) {
	case "breakfast":
		return nutrition.SlotBreakfast
	case "lunch":
		return nutrition.SlotLunch
	case "dinner":
		return nutrition.SlotDinner
	case "snack", "snacks":
		return nutrition.SlotSnack
	default:
		return ""
	}
}
