// Package usda implements the nutrition lookup port against the USDA
// FoodData Central search API. Search results report nutrients per 100g;
// values are scaled to the requested portion before they are returned.
package usda

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"time"

	"github.com/Lalit-mahajan-1/NutriAi/internal/ports/outbound"
	"github.com/Lalit-mahajan-1/NutriAi/pkg/errors"
	"go.uber.org/zap"
)

const serviceName = "USDA FoodData Central"

// Client calls the FoodData Central /foods/search endpoint
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	logger  *zap.Logger
}

// NewClient creates a FoodData Central client
func NewClient(baseURL, apiKey string, timeout time.Duration, logger *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
		logger:  logger.Named("usda"),
	}
}

var _ outbound.NutritionLookup = (*Client)(nil)

type searchResponse struct {
	Foods []struct {
		Description   string `json:"description"`
		FoodNutrients []struct {
			NutrientName string  `json:"nutrientName"`
			Value        float64 `json:"value"`
		} `json:"foodNutrients"`
	} `json:"foods"`
}

// nutrientGroups maps report fields to the FoodData Central nutrient names.
var (
	macroNutrients = map[string]string{
		"calories_kcal": "Energy",
		"protein_g":     "Protein",
		"fat_g":         "Total lipid (fat)",
		"carbs_g":       "Carbohydrate, by difference",
		"fiber_g":       "Fiber, total dietary",
		"sugar_g":       "Sugars, total including NLEA",
	}
	mineralNutrients = map[string]string{
		"calcium_mg":    "Calcium, Ca",
		"iron_mg":       "Iron, Fe",
		"magnesium_mg":  "Magnesium, Mg",
		"potassium_mg":  "Potassium, K",
		"sodium_mg":     "Sodium, Na",
		"zinc_mg":       "Zinc, Zn",
		"phosphorus_mg": "Phosphorus, P",
	}
	vitaminNutrients = map[string]string{
		"vitamin_a_mcg":   "Vitamin A, RAE",
		"vitamin_c_mg":    "Vitamin C, total ascorbic acid",
		"vitamin_d_mcg":   "Vitamin D (D2 + D3)",
		"vitamin_e_mg":    "Vitamin E (alpha-tocopherol)",
		"vitamin_k_mcg":   "Vitamin K (phylloquinone)",
		"vitamin_b6_mg":   "Vitamin B-6",
		"vitamin_b12_mcg": "Vitamin B-12",
		"folate_mcg":      "Folate, total",
	}
	otherNutrients = map[string]string{
		"cholesterol_mg": "Cholesterol",
		"water_g":        "Water",
	}
)

// Analyze searches for the best match and returns its nutrient breakdown
// scaled to weightGrams
func (c *Client) Analyze(ctx context.Context, mealName string, weightGrams float64) (*outbound.NutritionReport, error) {
	q := url.Values{}
	q.Set("api_key", c.apiKey)
	q.Set("query", mealName)
	q.Set("pageSize", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/foods/search?"+q.Encode(), nil)
	if err != nil {
		return nil, errors.NewExternalServiceError(serviceName, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.NewExternalServiceError(serviceName, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.NewExternalServiceError(serviceName,
			fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	var body searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, errors.NewExternalServiceError(serviceName, err)
	}

	if len(body.Foods) == 0 {
		return nil, errors.NewNotFoundError("food").
			WithMetadata("query", mealName)
	}

	food := body.Foods[0]
	per100g := make(map[string]float64, len(food.FoodNutrients))
	for _, n := range food.FoodNutrients {
		per100g[n.NutrientName] = n.Value
	}

	factor := weightGrams / 100

	c.logger.Debug("Resolved food",
		zap.String("query", mealName),
		zap.String("matched", food.Description),
		zap.Float64("weight_g", weightGrams),
	)

	return &outbound.NutritionReport{
		FoodName:       mealName,
		MatchedFood:    food.Description,
		WeightGrams:    weightGrams,
		Macronutrients: scale(per100g, macroNutrients, factor),
		Minerals:       scale(per100g, mineralNutrients, factor),
		Vitamins:       scale(per100g, vitaminNutrients, factor),
		Other:          scale(per100g, otherNutrients, factor),
	}, nil
}

func scale(per100g map[string]float64, group map[string]string, factor float64) map[string]float64 {
	out := make(map[string]float64, len(group))
	for field, nutrient := range group {
		out[field] = round2(per100g[nutrient] * factor)
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
