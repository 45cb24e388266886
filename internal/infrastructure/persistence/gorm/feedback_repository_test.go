package gorm_test

import (
	"context"
	"testing"
	"time"

	"github.com/Lalit-mahajan-1/NutriAi/internal/infrastructure/persistence/gorm"
	"github.com/Lalit-mahajan-1/NutriAi/internal/ports/outbound"
	"github.com/Lalit-mahajan-1/NutriAi/test/testutils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) outbound.FeedbackRepository {
	t.Helper()
	return gorm.NewFeedbackRepository(testutils.SetupTestDatabase(t))
}

func event(userID, dish string, feedback int, at time.Time) outbound.FeedbackEvent {
	return outbound.FeedbackEvent{
		ID:        uuid.New(),
		UserID:    userID,
		DishName:  dish,
		MealSlot:  "lunch",
		Feedback:  feedback,
		CreatedAt: at,
	}
}

func TestRecordAndFindByUser(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Record(ctx, event("user-1", "Veg Pulao", 1, base)))
	require.NoError(t, repo.Record(ctx, event("user-1", "Chicken Curry", -1, base.Add(time.Hour))))
	require.NoError(t, repo.Record(ctx, event("user-2", "Dal Tadka", 1, base)))

	events, total, err := repo.FindByUser(ctx, "user-1", 0, 10)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, events, 2)
	assert.Equal(t, "Chicken Curry", events[0].DishName, "newest first")
	assert.Equal(t, "Veg Pulao", events[1].DishName)
}

func TestFindByUserPagination(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Record(ctx, event("user-1", "Dish", 0, base.Add(time.Duration(i)*time.Minute))))
	}

	events, total, err := repo.FindByUser(ctx, "user-1", 2, 2)
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	assert.Len(t, events, 2)
}

func TestFindDislikesDeduplicatesByDish(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Record(ctx, event("user-1", "Chicken Curry", -1, base)))
	require.NoError(t, repo.Record(ctx, event("user-1", "Chicken Curry", -1, base.Add(time.Hour))))
	require.NoError(t, repo.Record(ctx, event("user-1", "Poha", -1, base.Add(2*time.Hour))))
	require.NoError(t, repo.Record(ctx, event("user-1", "Veg Pulao", 1, base)))
	require.NoError(t, repo.Record(ctx, event("user-2", "Dal Tadka", -1, base)))

	events, err := repo.FindDislikes(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "Poha", events[0].DishName)
	assert.Equal(t, "Chicken Curry", events[1].DishName)
	assert.Equal(t, base.Add(time.Hour).Unix(), events[1].CreatedAt.Unix(), "keeps most recent occurrence")
}

func TestFindDislikesEmptyForUnknownUser(t *testing.T) {
	repo := newTestRepo(t)

	events, err := repo.FindDislikes(context.Background(), "ghost")
	require.NoError(t, err)
	assert.Empty(t, events)
}
