// Package mealplan provides the application layer for personalized meal
// planning. This implements the use cases defined in the inbound ports.
package mealplan

import (
	"context"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"time"

	"github.com/Lalit-mahajan-1/NutriAi/internal/domain/bandit"
	"github.com/Lalit-mahajan-1/NutriAi/internal/domain/catalog"
	"github.com/Lalit-mahajan-1/NutriAi/internal/domain/nutrition"
	"github.com/Lalit-mahajan-1/NutriAi/internal/domain/planner"
	"github.com/Lalit-mahajan-1/NutriAi/internal/ports/inbound"
	"github.com/Lalit-mahajan-1/NutriAi/internal/ports/outbound"
	"github.com/Lalit-mahajan-1/NutriAi/pkg/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// defaultAnalyzeWeightG is assumed when a lookup request omits the portion size.
const defaultAnalyzeWeightG = 100

// defaultPlanTTL bounds how long a cached weekly plan may be served before
// the bandit's newer state is consulted again.
const defaultPlanTTL = 15 * time.Minute

// MealPlanService implements the meal-planning use cases
type MealPlanService struct {
	catalog  *catalog.Catalog
	store    *bandit.Store
	planner  *planner.Planner
	feedback outbound.FeedbackRepository
	cache    outbound.CacheRepository
	lookup   outbound.NutritionLookup
	state    outbound.BanditStateStore
	planTTL  time.Duration
	logger   *zap.Logger
}

// NewMealPlanService creates a new meal-plan service
func NewMealPlanService(
	cat *catalog.Catalog,
	store *bandit.Store,
	feedback outbound.FeedbackRepository,
	cache outbound.CacheRepository,
	lookup outbound.NutritionLookup,
	state outbound.BanditStateStore,
	maxPerWeek int,
	planTTL time.Duration,
	logger *zap.Logger,
) inbound.MealPlanService {
	if planTTL <= 0 {
		planTTL = defaultPlanTTL
	}
	return &MealPlanService{
		catalog:  cat,
		store:    store,
		planner:  planner.New(cat, store, maxPerWeek),
		feedback: feedback,
		cache:    cache,
		lookup:   lookup,
		state:    state,
		planTTL:  planTTL,
		logger:   logger.Named("mealplan-service"),
	}
}

// GenerateWeeklyPlan builds (or serves from cache) the 7-day plan for a user
func (s *MealPlanService) GenerateWeeklyPlan(ctx context.Context, cmd inbound.ProfileCommand) (*planner.WeeklyPlan, error) {
	p := NormalizeProfile(cmd)
	if p.UserID == "" {
		return nil, errors.NewBadRequestError("user_id is required")
	}
	if s.catalog.Len() == 0 {
		return nil, errors.NewCatalogEmptyError()
	}

	cacheKey := planCacheKey(p)
	if cached, err := s.cache.Get(ctx, cacheKey); err == nil && cached != nil {
		var plan planner.WeeklyPlan
		if err := json.Unmarshal(cached, &plan); err == nil {
			s.logger.Debug("Serving weekly plan from cache",
				zap.String("user_id", p.UserID),
			)
			return &plan, nil
		}
		// A corrupt entry is dropped and regenerated.
		_ = s.cache.Delete(ctx, cacheKey)
	}

	s.logger.Info("Generating weekly plan",
		zap.String("user_id", p.UserID),
		zap.String("goal", string(p.Goal)),
		zap.String("dietary_pref", string(p.DietaryPref)),
	)

	plan := s.planner.Generate(p)

	if payload, err := json.Marshal(plan); err == nil {
		if err := s.cache.Set(ctx, cacheKey, payload, s.planTTL); err != nil {
			s.logger.Warn("Failed to cache weekly plan",
				zap.String("user_id", p.UserID),
				zap.Error(err),
			)
		}
	}

	return plan, nil
}

// RecordFeedback applies one like/neutral/dislike event: the learning update
// always happens; persistence of the raw event is best-effort.
func (s *MealPlanService) RecordFeedback(ctx context.Context, cmd inbound.FeedbackCommand) error {
	if cmd.Feedback < -1 || cmd.Feedback > 1 {
		return errors.NewInvalidFeedbackError(cmd.Feedback)
	}

	p := NormalizeProfile(cmd.Profile)
	if p.UserID == "" {
		return errors.NewBadRequestError("user_id is required")
	}

	dish, ok := s.catalog.Lookup(cmd.DishName)
	if !ok {
		return errors.NewDishNotFoundError(cmd.DishName)
	}

	slot := normalizeSlot(cmd.MealSlot)
	if slot == "" {
		slot = dish.Category
	}

	daily := nutrition.ComputeMacroTargets(p)
	s.store.Update(p, daily, slot, dish, bandit.Feedback(cmd.Feedback))

	s.logger.Info("Recorded feedback",
		zap.String("user_id", p.UserID),
		zap.String("dish", dish.Name),
		zap.String("meal_slot", string(slot)),
		zap.Int("feedback", cmd.Feedback),
	)

	event := outbound.FeedbackEvent{
		ID:        uuid.New(),
		UserID:    p.UserID,
		DishName:  dish.Name,
		MealSlot:  string(slot),
		Feedback:  cmd.Feedback,
		CreatedAt: time.Now().UTC(),
	}
	if s.state != nil {
		if err := s.state.Save(ctx, s.store.Snapshot()); err != nil {
			s.logger.Warn("Failed to persist learning state",
				zap.String("user_id", p.UserID),
				zap.Error(err),
			)
		}
	}

	if err := s.feedback.Record(ctx, event); err != nil {
		// The bandit already has the signal; losing the audit row is
		// not worth failing the request over.
		s.logger.Warn("Failed to persist feedback event",
			zap.String("user_id", p.UserID),
			zap.String("dish", dish.Name),
			zap.Error(err),
		)
	}

	// Feedback changes future selections, so any cached plan is stale.
	if err := s.cache.Delete(ctx, planCacheKey(p)); err != nil {
		s.logger.Debug("Failed to invalidate cached plan",
			zap.String("user_id", p.UserID),
			zap.Error(err),
		)
	}

	return nil
}

// ComputeTargets returns the daily and per-meal macro budgets for a profile
func (s *MealPlanService) ComputeTargets(ctx context.Context, cmd inbound.ProfileCommand) (*inbound.TargetsDTO, error) {
	p := NormalizeProfile(cmd)
	if p.UserID == "" {
		return nil, errors.NewBadRequestError("user_id is required")
	}

	daily := nutrition.ComputeMacroTargets(p)
	perMeal := make(map[nutrition.MealSlot]nutrition.MacroTargets, len(nutrition.MealOrder))
	for _, slot := range nutrition.MealOrder {
		perMeal[slot] = nutrition.MealTargets(daily, slot)
	}

	return &inbound.TargetsDTO{
		UserID:  p.UserID,
		Daily:   daily,
		FiberG:  nutrition.FiberTargetG(daily.Calories),
		WaterML: nutrition.WaterTargetML(p.WeightKG),
		PerMeal: perMeal,
		BMI:     p.BMI(),
	}, nil
}

// DishPrices summarizes catalog pricing for dishes that carry a price
func (s *MealPlanService) DishPrices(ctx context.Context) (*inbound.PriceListDTO, error) {
	if s.catalog.Len() == 0 {
		return nil, errors.NewCatalogEmptyError()
	}

	prices := s.catalog.Prices()
	dto := &inbound.PriceListDTO{
		Prices: prices,
		Count:  len(prices),
	}

	first := true
	var sum float64
	for _, price := range prices {
		sum += price
		if first || price < dto.MinINR {
			dto.MinINR = price
		}
		if first || price > dto.MaxINR {
			dto.MaxINR = price
		}
		first = false
	}
	if dto.Count > 0 {
		dto.AvgINR = sum / float64(dto.Count)
	}

	return dto, nil
}

// DislikedDishes lists every dish a user has ever disliked
func (s *MealPlanService) DislikedDishes(ctx context.Context, userID string) ([]outbound.FeedbackEvent, error) {
	if userID == "" {
		return nil, errors.NewBadRequestError("user_id is required")
	}

	events, err := s.feedback.FindDislikes(ctx, userID)
	if err != nil {
		return nil, errors.NewDatabaseError("load disliked dishes", err)
	}
	return events, nil
}

// AnalyzeMeal resolves a free-text meal against the external food database
func (s *MealPlanService) AnalyzeMeal(ctx context.Context, cmd inbound.AnalyzeMealCommand) (*outbound.NutritionReport, error) {
	if cmd.MealName == "" {
		return nil, errors.NewBadRequestError("meal_name is required")
	}

	weight := cmd.WeightGrams
	if weight <= 0 {
		weight = defaultAnalyzeWeightG
	}

	report, err := s.lookup.Analyze(ctx, cmd.MealName, weight)
	if err != nil {
		return nil, errors.Wrap(err, "analyze meal")
	}
	return report, nil
}

// planCacheKey derives a cache key from the user plus a digest of the
// profile fields that influence the plan, so a changed goal or allergy
// list never serves a stale plan.
func planCacheKey(p nutrition.Profile) string {
	h := fnv.New64a()
	fmt.Fprintf(h, "%s|%.1f|%.1f|%d|%s|%s|%s|%s|%v",
		p.UserID, p.HeightCM, p.WeightKG, p.Age,
		p.Gender, p.ActivityLevel, p.Goal, p.DietaryPref, p.Allergies,
	)
	if p.TargetCalories != nil {
		fmt.Fprintf(h, "|tc=%.1f", *p.TargetCalories)
	}
	if p.TargetProteinG != nil {
		fmt.Fprintf(h, "|tp=%.1f", *p.TargetProteinG)
	}
	return fmt.Sprintf("weekly-plan:%s:%x", p.UserID, h.Sum64())
}
