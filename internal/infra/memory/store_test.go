package memory

import (
	"context"
	"testing"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/hifz-revision-bot/internal/domain/entities"
	"github.com/aliskhannn/hifz-revision-bot/internal/infra/postgres/repository"
)

func TestStoreSchedule(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	today := civil.Date{Year: 2026, Month: 2, Day: 28}

	item := entities.NextRevision(1, 55, 13, nil, entities.QualityHard, today)
	require.NoError(t, s.UpsertRevisionItem(ctx, item))
	require.NoError(t, s.UpsertRevisionItem(ctx, entities.NextRevision(1, 55, 2, nil, entities.QualityHard, today)))
	require.NoError(t, s.UpsertRevisionItem(ctx, entities.NextRevision(2, 55, 1, nil, entities.QualityHard, today)))

	t.Run("ordered by ayah and scoped to user", func(t *testing.T) {
		items, err := s.LoadSchedule(ctx, 1, 55)
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, 2, items[0].AyahNumber)
		assert.Equal(t, 13, items[1].AyahNumber)
	})

	t.Run("upsert overwrites", func(t *testing.T) {
		prev := item
		next := entities.NextRevision(1, 55, 13, &prev, entities.QualityBlackout, today.AddDays(1))
		require.NoError(t, s.UpsertRevisionItem(ctx, next))

		items, err := s.LoadSchedule(ctx, 1, 55)
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, next, items[1])
	})

	t.Run("loaded items do not alias stored ones", func(t *testing.T) {
		items, err := s.LoadSchedule(ctx, 1, 55)
		require.NoError(t, err)
		items[0].LastReviewed.Day = 1

		again, err := s.LoadSchedule(ctx, 1, 55)
		require.NoError(t, err)
		assert.Equal(t, today, *again[0].LastReviewed)
	})
}

func TestStoreUsers(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	for id := int64(1); id <= 5; id++ {
		_, err := s.Save(ctx, entities.NewUser(id, id))
		require.NoError(t, err)
	}
	require.NoError(t, s.UpdateReminders(ctx, 3, false, 8))

	page, err := s.ListReminderTargets(ctx, 2, 0)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, int64(1), page[0].UserID)
	assert.Equal(t, int64(2), page[1].UserID)

	page, err = s.ListReminderTargets(ctx, 2, 2)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, int64(4), page[0].UserID)
	assert.Equal(t, int64(5), page[1].UserID)

	page, err = s.ListReminderTargets(ctx, 2, 4)
	require.NoError(t, err)
	assert.Empty(t, page)

	_, err = s.GetByID(ctx, 42)
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
	assert.ErrorIs(t, s.MarkReminded(ctx, 42, civil.Date{Year: 2026, Month: 1, Day: 1}), repository.ErrUserNotFound)
}
