// Package handlers provides HTTP handlers for the REST API
package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Lalit-mahajan-1/NutriAi/internal/ports/inbound"
	"github.com/Lalit-mahajan-1/NutriAi/pkg/errors"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// APIHandlers handles REST API requests
type APIHandlers struct {
	service  inbound.MealPlanService
	validate *validator.Validate
	logger   *zap.Logger
}

// NewAPIHandlers creates a new API handlers instance
func NewAPIHandlers(service inbound.MealPlanService, logger *zap.Logger) *APIHandlers {
	return &APIHandlers{
		service:  service,
		validate: validator.New(),
		logger:   logger.Named("api-handlers"),
	}
}

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
}

// feedbackRequest is the POST /feedback payload. The profile block is
// optional; absent fields are filled with the standard defaults before
// the learning update runs.
type feedbackRequest struct {
	UserID   string  `json:"user_id" validate:"required"`
	DishName string  `json:"dish_name" validate:"required"`
	MealSlot string  `json:"meal_slot"`
	Feedback int     `json:"feedback" validate:"min=-1,max=1"`
	Height   float64 `json:"height,omitempty"`
	Weight   float64 `json:"weight,omitempty"`
	Age      int     `json:"age,omitempty"`
	Gender   string  `json:"gender,omitempty"`
	Activity string  `json:"activity_level,omitempty"`
	Goal     string  `json:"goal,omitempty"`
	Diet     string  `json:"dietary_pref,omitempty"`
}

// analyzeRequest is the POST /analyze payload
type analyzeRequest struct {
	MealName    string  `json:"meal_name" validate:"required"`
	WeightGrams float64 `json:"weight_grams" validate:"gte=0"`
}

// WeeklyPlan handles GET /api/v1/weekly-plan
func (h *APIHandlers) WeeklyPlan(w http.ResponseWriter, r *http.Request) {
	cmd := profileFromQuery(r)

	plan, err := h.service.GenerateWeeklyPlan(r.Context(), cmd)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    plan,
		Message: "Weekly plan generated successfully",
	})
}

// Targets handles GET /api/v1/targets
func (h *APIHandlers) Targets(w http.ResponseWriter, r *http.Request) {
	cmd := profileFromQuery(r)

	targets, err := h.service.ComputeTargets(r.Context(), cmd)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    targets,
		Message: "Targets computed successfully",
	})
}

// RecordFeedback handles POST /api/v1/feedback
func (h *APIHandlers) RecordFeedback(w http.ResponseWriter, r *http.Request) {
	var req feedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, errors.NewBadRequestError("invalid JSON body"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.writeError(w, r, errors.NewValidationError(err.Error()))
		return
	}

	cmd := inbound.FeedbackCommand{
		Profile: inbound.ProfileCommand{
			UserID:        req.UserID,
			HeightCM:      req.Height,
			WeightKG:      req.Weight,
			Age:           req.Age,
			Gender:        req.Gender,
			ActivityLevel: req.Activity,
			Goal:          req.Goal,
			DietaryPref:   req.Diet,
		},
		DishName: req.DishName,
		MealSlot: req.MealSlot,
		Feedback: req.Feedback,
	}

	if err := h.service.RecordFeedback(r.Context(), cmd); err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Message: "Feedback recorded successfully",
	})
}

// Analyze handles POST /api/v1/analyze
func (h *APIHandlers) Analyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, errors.NewBadRequestError("invalid JSON body"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.writeError(w, r, errors.NewValidationError(err.Error()))
		return
	}

	report, err := h.service.AnalyzeMeal(r.Context(), inbound.AnalyzeMealCommand{
		MealName:    req.MealName,
		WeightGrams: req.WeightGrams,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    report,
		Message: "Meal analyzed successfully",
	})
}

// MealPrices handles GET /api/v1/meal-prices
func (h *APIHandlers) MealPrices(w http.ResponseWriter, r *http.Request) {
	prices, err := h.service.DishPrices(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    prices,
		Message: "Meal prices retrieved successfully",
	})
}

// Dislikes handles GET /api/v1/preferences/dislikes/{user_id}
func (h *APIHandlers) Dislikes(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "user_id")

	events, err := h.service.DislikedDishes(r.Context(), userID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data: map[string]interface{}{
			"dislikes": events,
			"count":    len(events),
		},
		Message: "Dislikes retrieved successfully",
	})
}

// HealthCheck handles GET /health
func (h *APIHandlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data: map[string]interface{}{
			"status":    "healthy",
			"timestamp": time.Now().Unix(),
		},
		Message: "Service is healthy",
	})
}

// profileFromQuery builds a profile command from query parameters. Missing
// or malformed values stay zero and pick up defaults during normalization.
func profileFromQuery(r *http.Request) inbound.ProfileCommand {
	q := r.URL.Query()

	cmd := inbound.ProfileCommand{
		UserID:        q.Get("user_id"),
		HeightCM:      queryFloat(q.Get("height")),
		WeightKG:      queryFloat(q.Get("weight")),
		Gender:        q.Get("gender"),
		ActivityLevel: q.Get("activity_level"),
		Goal:          q.Get("goal"),
		DietaryPref:   q.Get("dietary_pref"),
	}
	if age, err := strconv.Atoi(q.Get("age")); err == nil {
		cmd.Age = age
	}
	if raw := q.Get("allergies"); raw != "" {
		cmd.Allergies = strings.Split(raw, ",")
	}
	if v := queryFloat(q.Get("target_calories")); v > 0 {
		cmd.TargetCalories = &v
	}
	if v := queryFloat(q.Get("target_protein")); v > 0 {
		cmd.TargetProteinG = &v
	}
	return cmd
}

func queryFloat(raw string) float64 {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return v
}

// writeJSON writes a JSON response
func (h *APIHandlers) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("Failed to encode JSON response", zap.Error(err))
	}
}

// writeError maps an application error onto its HTTP status
func (h *APIHandlers) writeError(w http.ResponseWriter, r *http.Request, err error) {
	appErr := errors.Wrap(err, "request failed")

	if appErr.StatusCode() >= http.StatusInternalServerError {
		h.logger.Error("Request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
	}

	h.writeJSON(w, appErr.StatusCode(), APIResponse{
		Success: false,
		Error:   appErr.Message,
	})
}
