package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"cloud.google.com/go/civil"
	"go.uber.org/zap"

	"github.com/aliskhannn/hifz-revision-bot/internal/domain/entities"
)

var (
	ErrStoreUnavailable = errors.New("schedule store unavailable")
	ErrInvalidAyah      = errors.New("ayah number out of range")
)

// ScheduleSnapshot is a consistent copy of a session's loaded schedule.
type ScheduleSnapshot struct {
	Surah *entities.Surah
	Today civil.Date
	Items []entities.RevisionItem
}

// Status classifies one ayah of the snapshot.
func (s ScheduleSnapshot) Status(ayahNumber int) entities.AyahStatus {
	return entities.FindAyah(s.Items, ayahNumber).Status(s.Today)
}

// RevisionSession holds one user's schedule for the surah they are revising.
//
// Loads are tagged with a generation number. Selecting another surah bumps the
// generation, so a load that finishes after the switch is dropped instead of
// overwriting the newer context.
type RevisionSession struct {
	userID  int64
	store   ScheduleStore
	catalog SurahCatalog
	logger  *zap.Logger
	now     func() time.Time

	mu         sync.Mutex
	loc        *time.Location
	surah      *entities.Surah // nil until a surah is selected
	generation uint64
	items      []entities.RevisionItem
}

// NewRevisionSession creates a session with no active surah.
func NewRevisionSession(
	userID int64,
	store ScheduleStore,
	catalog SurahCatalog,
	loc *time.Location,
	logger *zap.Logger,
	now func() time.Time,
) *RevisionSession {
	if loc == nil {
		loc = time.UTC
	}
	if now == nil {
		now = time.Now
	}

	return &RevisionSession{
		userID:  userID,
		store:   store,
		catalog: catalog,
		logger:  logger.With(zap.Int64("user_id", userID)),
		now:     now,
		loc:     loc,
	}
}

// SetLocation changes the timezone used to decide what "today" is.
func (s *RevisionSession) SetLocation(loc *time.Location) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loc = loc
}

// Today returns the current calendar date in the user's timezone.
func (s *RevisionSession) Today() civil.Date {
	s.mu.Lock()
	defer s.mu.Unlock()

	return entities.Today(s.now(), s.loc)
}

// ActiveSurah returns the surah being revised, if any.
func (s *RevisionSession) ActiveSurah() (*entities.Surah, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.surah, s.surah != nil
}

// SelectSurah makes surahID the active context and loads its schedule.
// On load failure the schedule stays empty and ErrStoreUnavailable is returned.
func (s *RevisionSession) SelectSurah(ctx context.Context, surahID int) error {
	surah, err := s.catalog.GetByNumber(surahID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.generation++
	gen := s.generation
	s.surah = surah
	s.items = nil
	s.mu.Unlock()

	return s.load(ctx, surah.Number, gen)
}

// Refresh reloads the schedule of the active surah. Without one it does nothing.
func (s *RevisionSession) Refresh(ctx context.Context) error {
	s.mu.Lock()
	surah, gen := s.surah, s.generation
	s.mu.Unlock()

	if surah == nil {
		return nil
	}

	return s.load(ctx, surah.Number, gen)
}

// ReviewAyah records a review of ayahNumber in the active surah.
//
// The ayah's current state is taken from the loaded schedule, the next state
// is upserted and the surah is reloaded so the session sees its own write.
// Without an active surah the call is a no-op and returns a nil item.
func (s *RevisionSession) ReviewAyah(ctx context.Context, ayahNumber int, quality entities.Quality) (*entities.RevisionItem, error) {
	if err := quality.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	surah, gen := s.surah, s.generation
	today := entities.Today(s.now(), s.loc)
	var prev *entities.RevisionItem
	if it := entities.FindAyah(s.items, ayahNumber); it != nil {
		cp := *it
		prev = &cp
	}
	s.mu.Unlock()

	if surah == nil {
		s.logger.Debug("review ignored: no active surah", zap.Int("ayah", ayahNumber))
		return nil, nil
	}
	if !surah.HasAyah(ayahNumber) {
		return nil, fmt.Errorf("%w: surah %d has %d ayahs, got %d", ErrInvalidAyah, surah.Number, surah.AyahCount, ayahNumber)
	}

	item := entities.NextRevision(s.userID, surah.Number, ayahNumber, prev, quality, today)

	if err := s.store.UpsertRevisionItem(ctx, item); err != nil {
		s.logger.Error("failed to save review",
			zap.Int("surah", surah.Number),
			zap.Int("ayah", ayahNumber),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: upsert revision item: %w", ErrStoreUnavailable, err)
	}

	s.logger.Info("ayah reviewed",
		zap.Int("surah", surah.Number),
		zap.Int("ayah", ayahNumber),
		zap.Int("quality", int(quality)),
		zap.Int("interval_days", item.IntervalDays),
		zap.Float64("ease_factor", item.EaseFactor),
		zap.Stringer("next_review", item.NextReview),
	)

	if err := s.load(ctx, surah.Number, gen); err != nil {
		return &item, err
	}

	return &item, nil
}

// GetAyahStatus classifies an ayah of the loaded schedule as of today.
func (s *RevisionSession) GetAyahStatus(ayahNumber int) entities.AyahStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	return entities.FindAyah(s.items, ayahNumber).Status(entities.Today(s.now(), s.loc))
}

// GetNextDue returns the ayah to review next, if any is due.
func (s *RevisionSession) GetNextDue() (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return entities.NextDue(s.items, entities.Today(s.now(), s.loc))
}

// Snapshot returns a copy of the loaded schedule together with today's date.
func (s *RevisionSession) Snapshot() ScheduleSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]entities.RevisionItem, len(s.items))
	copy(items, s.items)

	return ScheduleSnapshot{
		Surah: s.surah,
		Today: entities.Today(s.now(), s.loc),
		Items: items,
	}
}

// DueOverview counts due ayahs per surah across the user's whole schedule.
func (s *RevisionSession) DueOverview(ctx context.Context) ([]entities.SurahDue, error) {
	due, err := s.store.DueOverview(ctx, s.userID, s.Today())
	if err != nil {
		return nil, fmt.Errorf("%w: due overview: %w", ErrStoreUnavailable, err)
	}

	return due, nil
}

func (s *RevisionSession) load(ctx context.Context, surahID int, gen uint64) error {
	items, err := s.store.LoadSchedule(ctx, s.userID, surahID)
	if err != nil {
		s.logger.Warn("failed to load schedule", zap.Int("surah", surahID), zap.Error(err))
		return fmt.Errorf("%w: load surah %d: %w", ErrStoreUnavailable, surahID, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation {
		s.logger.Debug("discarding stale schedule",
			zap.Int("surah", surahID),
			zap.Uint64("generation", gen),
			zap.Uint64("current_generation", s.generation),
		)
		return nil
	}

	s.items = items
	return nil
}
