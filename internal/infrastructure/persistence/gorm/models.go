// Package gorm provides GORM model definitions and repository
// implementations for the feedback event store
package gorm

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FeedbackEventModel represents the GORM model for recorded feedback events.
// The bandit keeps the learning signal in memory; this table is the durable
// audit trail behind it.
type FeedbackEventModel struct {
	ID        uuid.UUID `gorm:"type:char(36);primaryKey"`
	UserID    string    `gorm:"type:varchar(64);not null;index:idx_feedback_user"`
	DishName  string    `gorm:"type:varchar(255);not null;index:idx_feedback_user_dish"`
	MealSlot  string    `gorm:"type:varchar(16);not null"`
	Feedback  int       `gorm:"not null"`
	CreatedAt time.Time `gorm:"index"`
}

// TableName overrides the default table name
func (FeedbackEventModel) TableName() string {
	return "feedback_events"
}

// BeforeCreate assigns an ID when the caller did not
func (m *FeedbackEventModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
