package service

import (
	"context"

	"cloud.google.com/go/civil"

	"github.com/aliskhannn/hifz-revision-bot/internal/domain/entities"
)

// ScheduleStore persists revision items, one per (user, surah, ayah).
type ScheduleStore interface {
	LoadSchedule(ctx context.Context, userID int64, surahID int) ([]entities.RevisionItem, error)
	UpsertRevisionItem(ctx context.Context, item entities.RevisionItem) error
	DueOverview(ctx context.Context, userID int64, today civil.Date) ([]entities.SurahDue, error)
}

type UserRepository interface {
	Save(ctx context.Context, user *entities.User) (bool, error)
	GetByID(ctx context.Context, userID int64) (*entities.User, error)
	UpdateTimezone(ctx context.Context, userID int64, timezone string) error
	UpdateReminders(ctx context.Context, userID int64, enabled bool, hour int) error
}

type SurahCatalog interface {
	GetByNumber(number int) (*entities.Surah, error)
}

// ReminderRepository lists users to remind and records sent reminders.
type ReminderRepository interface {
	ListReminderTargets(ctx context.Context, limit, offset int) ([]*entities.ReminderTarget, error)
	MarkReminded(ctx context.Context, userID int64, day civil.Date) error
}

// ReminderNotifier sends reminder notifications to users.
type ReminderNotifier interface {
	SendReminder(chatID int64, payload entities.ReminderPayload) error
}
