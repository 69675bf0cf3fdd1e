package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aliskhannn/hifz-revision-bot/internal/domain/entities"
	"github.com/aliskhannn/hifz-revision-bot/internal/infra/memory"
)

type recordingNotifier struct {
	mu   sync.Mutex
	sent map[int64]entities.ReminderPayload
	err  error
}

func (n *recordingNotifier) SendReminder(chatID int64, payload entities.ReminderPayload) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.err != nil {
		return n.err
	}
	if n.sent == nil {
		n.sent = make(map[int64]entities.ReminderPayload)
	}
	n.sent[chatID] = payload
	return nil
}

func seedReminderUser(t *testing.T, store *memory.Store, id int64, tz string, hour int, due int) {
	t.Helper()
	ctx := context.Background()

	u := entities.NewUser(id, id*10)
	u.Timezone = tz
	u.ReminderHour = hour
	_, err := store.Save(ctx, u)
	require.NoError(t, err)

	today := civil.Date{Year: 2026, Month: 10, Day: 17}
	for ayah := 1; ayah <= due; ayah++ {
		require.NoError(t, store.UpsertRevisionItem(ctx, entities.RevisionItem{
			UserID: id, SurahID: 78, AyahNumber: ayah, IntervalDays: 1, EaseFactor: 2.5, NextReview: today.AddDays(-1),
		}))
	}
	// One ayah that is not due yet.
	require.NoError(t, store.UpsertRevisionItem(ctx, entities.RevisionItem{
		UserID: id, SurahID: 79, AyahNumber: 1, IntervalDays: 6, EaseFactor: 2.5, NextReview: today.AddDays(5),
	}))
}

func TestSendDailyReminders(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	seedReminderUser(t, store, 1, "UTC", 8, 3)   // 09:00 local, due
	seedReminderUser(t, store, 2, "UTC-5", 8, 2) // 04:00 local, too early
	seedReminderUser(t, store, 3, "UTC+3", 8, 0) // nothing due
	seedReminderUser(t, store, 4, "UTC", 8, 1)   // reminders off
	require.NoError(t, store.UpdateReminders(ctx, 4, false, 8))

	notifier := &recordingNotifier{}
	svc := NewReminderService(store, store, zap.NewNop())
	svc.SetNotifier(notifier)
	svc.now = func() time.Time { return time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC) }

	sent, err := svc.SendDailyReminders(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, sent)

	require.Contains(t, notifier.sent, int64(10))
	payload := notifier.sent[10]
	assert.Equal(t, 3, payload.TotalDue())
	assert.Equal(t, []entities.SurahDue{{SurahID: 78, Due: 3, Overdue: 3}}, payload.Due)

	u, err := store.GetByID(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, u.LastRemindedOn)
	assert.Equal(t, civil.Date{Year: 2026, Month: 10, Day: 17}, *u.LastRemindedOn)

	t.Run("only once per local day", func(t *testing.T) {
		sent, err := svc.SendDailyReminders(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, sent)
	})
}

func TestSendDailyReminders_NotifierFailure(t *testing.T) {
	store := memory.NewStore()
	seedReminderUser(t, store, 1, "UTC", 0, 2)

	svc := NewReminderService(store, store, zap.NewNop())
	svc.SetNotifier(&recordingNotifier{err: errors.New("blocked by user")})
	svc.now = func() time.Time { return time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC) }

	sent, err := svc.SendDailyReminders(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, sent)

	u, err := store.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Nil(t, u.LastRemindedOn)
}

func TestSendDailyReminders_WithoutNotifier(t *testing.T) {
	svc := NewReminderService(memory.NewStore(), memory.NewStore(), zap.NewNop())

	_, err := svc.SendDailyReminders(context.Background())
	assert.Error(t, err)
}

func TestStart_RejectsBadSpec(t *testing.T) {
	svc := NewReminderService(memory.NewStore(), memory.NewStore(), zap.NewNop())

	err := svc.Start(context.Background(), "not a cron spec")
	assert.Error(t, err)
}
