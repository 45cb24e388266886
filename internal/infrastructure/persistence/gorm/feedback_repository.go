package gorm

import (
	"context"

	"github.com/Lalit-mahajan-1/NutriAi/internal/ports/outbound"
	apperrors "github.com/Lalit-mahajan-1/NutriAi/pkg/errors"
	"gorm.io/gorm"
)

// FeedbackRepository implements the feedback repository interface using GORM
type FeedbackRepository struct {
	db *gorm.DB
}

// NewFeedbackRepository creates a new feedback repository
func NewFeedbackRepository(db *gorm.DB) outbound.FeedbackRepository {
	return &FeedbackRepository{db: db}
}

// Record inserts one feedback event
func (r *FeedbackRepository) Record(ctx context.Context, event outbound.FeedbackEvent) error {
	model := &FeedbackEventModel{
		ID:        event.ID,
		UserID:    event.UserID,
		DishName:  event.DishName,
		MealSlot:  event.MealSlot,
		Feedback:  event.Feedback,
		CreatedAt: event.CreatedAt,
	}

	if result := r.db.WithContext(ctx).Create(model); result.Error != nil {
		return apperrors.NewDatabaseError("record feedback event", result.Error)
	}
	return nil
}

// FindByUser returns a page of a user's feedback history, newest first,
// along with the total event count
func (r *FeedbackRepository) FindByUser(ctx context.Context, userID string, offset, limit int) ([]outbound.FeedbackEvent, int, error) {
	if limit <= 0 {
		limit = 50
	}

	var total int64
	if result := r.db.WithContext(ctx).
		Model(&FeedbackEventModel{}).
		Where("user_id = ?", userID).
		Count(&total); result.Error != nil {
		return nil, 0, apperrors.NewDatabaseError("count feedback events", result.Error)
	}

	var models []FeedbackEventModel
	if result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&models); result.Error != nil {
		return nil, 0, apperrors.NewDatabaseError("find feedback events", result.Error)
	}

	return modelsToEvents(models), int(total), nil
}

// FindDislikes returns one event per dish the user has ever disliked,
// keeping the most recent occurrence
func (r *FeedbackRepository) FindDislikes(ctx context.Context, userID string) ([]outbound.FeedbackEvent, error) {
	var models []FeedbackEventModel
	if result := r.db.WithContext(ctx).
		Where("user_id = ? AND feedback < 0", userID).
		Order("created_at DESC").
		Find(&models); result.Error != nil {
		return nil, apperrors.NewDatabaseError("find disliked dishes", result.Error)
	}

	seen := make(map[string]bool, len(models))
	events := make([]outbound.FeedbackEvent, 0, len(models))
	for _, m := range models {
		if seen[m.DishName] {
			continue
		}
		seen[m.DishName] = true
		events = append(events, modelToEvent(m))
	}
	return events, nil
}

func modelsToEvents(models []FeedbackEventModel) []outbound.FeedbackEvent {
	events := make([]outbound.FeedbackEvent, 0, len(models))
	for _, m := range models {
		events = append(events, modelToEvent(m))
	}
	return events
}

func modelToEvent(m FeedbackEventModel) outbound.FeedbackEvent {
	return outbound.FeedbackEvent{
		ID:        m.ID,
		UserID:    m.UserID,
		DishName:  m.DishName,
		MealSlot:  m.MealSlot,
		Feedback:  m.Feedback,
		CreatedAt: m.CreatedAt,
	}
}
