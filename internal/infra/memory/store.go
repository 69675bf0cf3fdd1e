// Package memory provides in-process implementations of the repositories,
// used by tests and for running the bot without a database.
package memory

import (
	"context"
	"slices"
	"sync"

	"cloud.google.com/go/civil"

	"github.com/aliskhannn/hifz-revision-bot/internal/domain/entities"
	"github.com/aliskhannn/hifz-revision-bot/internal/infra/postgres/repository"
)

type revisionKey struct {
	userID  int64
	surahID int
	ayah    int
}

// Store keeps users and revision items in maps guarded by a mutex.
// The error fields let tests simulate an unavailable backend.
type Store struct {
	mu    sync.RWMutex
	items map[revisionKey]entities.RevisionItem
	users map[int64]entities.User

	LoadErr   error
	UpsertErr error

	// OnLoad, when set, runs before LoadSchedule reads the data.
	OnLoad func(userID int64, surahID int)
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		items: make(map[revisionKey]entities.RevisionItem),
		users: make(map[int64]entities.User),
	}
}

// LoadSchedule returns the user's items for one surah ordered by ayah number.
func (s *Store) LoadSchedule(_ context.Context, userID int64, surahID int) ([]entities.RevisionItem, error) {
	if s.OnLoad != nil {
		s.OnLoad(userID, surahID)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.LoadErr != nil {
		return nil, s.LoadErr
	}

	var items []entities.RevisionItem
	for k, it := range s.items {
		if k.userID == userID && k.surahID == surahID {
			items = append(items, copyItem(it))
		}
	}
	slices.SortFunc(items, func(a, b entities.RevisionItem) int {
		return a.AyahNumber - b.AyahNumber
	})

	return items, nil
}

// UpsertRevisionItem creates or overwrites the item keyed by (user, surah, ayah).
func (s *Store) UpsertRevisionItem(_ context.Context, item entities.RevisionItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.UpsertErr != nil {
		return s.UpsertErr
	}

	s.items[revisionKey{item.UserID, item.SurahID, item.AyahNumber}] = copyItem(item)
	return nil
}

// DueOverview counts, per surah, the items due on or before today.
func (s *Store) DueOverview(_ context.Context, userID int64, today civil.Date) ([]entities.SurahDue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.LoadErr != nil {
		return nil, s.LoadErr
	}

	bySurah := make(map[int]*entities.SurahDue)
	for k, it := range s.items {
		if k.userID != userID || it.NextReview.After(today) {
			continue
		}
		d, ok := bySurah[k.surahID]
		if !ok {
			d = &entities.SurahDue{SurahID: k.surahID}
			bySurah[k.surahID] = d
		}
		d.Due++
		if it.NextReview.Before(today) {
			d.Overdue++
		}
	}

	res := make([]entities.SurahDue, 0, len(bySurah))
	for _, d := range bySurah {
		res = append(res, *d)
	}
	slices.SortFunc(res, func(a, b entities.SurahDue) int {
		return a.SurahID - b.SurahID
	})

	return res, nil
}

// Save inserts a new user or refreshes the chat id of an existing one.
func (s *Store) Save(_ context.Context, user *entities.User) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.users[user.ID]; ok {
		existing.ChatID = user.ChatID
		s.users[user.ID] = existing
		return false, nil
	}

	s.users[user.ID] = *user
	return true, nil
}

// GetByID retrieves a user by ID.
func (s *Store) GetByID(_ context.Context, userID int64) (*entities.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[userID]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return &u, nil
}

// UpdateTimezone stores the user's timezone.
func (s *Store) UpdateTimezone(_ context.Context, userID int64, timezone string) error {
	return s.updateUser(userID, func(u *entities.User) { u.Timezone = timezone })
}

// UpdateReminders toggles the daily reminder and sets its local hour.
func (s *Store) UpdateReminders(_ context.Context, userID int64, enabled bool, hour int) error {
	return s.updateUser(userID, func(u *entities.User) {
		u.RemindersEnabled = enabled
		u.ReminderHour = hour
	})
}

// MarkReminded records the local date on which the user was last reminded.
func (s *Store) MarkReminded(_ context.Context, userID int64, day civil.Date) error {
	return s.updateUser(userID, func(u *entities.User) { u.LastRemindedOn = &day })
}

// ListReminderTargets pages through users with reminders enabled, ordered by id.
func (s *Store) ListReminderTargets(_ context.Context, limit, offset int) ([]*entities.ReminderTarget, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]int64, 0, len(s.users))
	for id, u := range s.users {
		if u.RemindersEnabled {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)

	if offset >= len(ids) {
		return nil, nil
	}
	ids = ids[offset:min(len(ids), offset+limit)]

	targets := make([]*entities.ReminderTarget, 0, len(ids))
	for _, id := range ids {
		u := s.users[id]
		targets = append(targets, &entities.ReminderTarget{
			UserID:         u.ID,
			ChatID:         u.ChatID,
			Timezone:       u.Timezone,
			ReminderHour:   u.ReminderHour,
			LastRemindedOn: u.LastRemindedOn,
		})
	}

	return targets, nil
}

func (s *Store) updateUser(userID int64, fn func(u *entities.User)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return repository.ErrUserNotFound
	}
	fn(&u)
	s.users[userID] = u
	return nil
}

func copyItem(it entities.RevisionItem) entities.RevisionItem {
	if it.LastReviewed != nil {
		d := *it.LastReviewed
		it.LastReviewed = &d
	}
	return it
}
