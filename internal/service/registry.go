package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/aliskhannn/hifz-revision-bot/internal/infra/postgres/repository"
)

// SessionRegistry keeps one RevisionSession per user.
type SessionRegistry struct {
	store   ScheduleStore
	catalog SurahCatalog
	users   UserRepository
	logger  *zap.Logger
	now     func() time.Time

	mu       sync.Mutex
	sessions map[int64]*RevisionSession
}

func NewSessionRegistry(
	store ScheduleStore,
	catalog SurahCatalog,
	users UserRepository,
	logger *zap.Logger,
	now func() time.Time,
) *SessionRegistry {
	if now == nil {
		now = time.Now
	}

	return &SessionRegistry{
		store:    store,
		catalog:  catalog,
		users:    users,
		logger:   logger,
		now:      now,
		sessions: make(map[int64]*RevisionSession),
	}
}

// Get returns the user's session, creating it with the user's timezone.
// Unknown users get a UTC session.
func (r *SessionRegistry) Get(ctx context.Context, userID int64) (*RevisionSession, error) {
	r.mu.Lock()
	s, ok := r.sessions[userID]
	r.mu.Unlock()
	if ok {
		return s, nil
	}

	user, err := r.users.GetByID(ctx, userID)
	if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		return nil, err
	}
	loc := user.Location()

	r.mu.Lock()
	defer r.mu.Unlock()

	// Another update may have created it while the user was loading.
	if s, ok := r.sessions[userID]; ok {
		return s, nil
	}

	s = NewRevisionSession(userID, r.store, r.catalog, loc, r.logger, r.now)
	r.sessions[userID] = s
	return s, nil
}

// SetLocation updates the timezone of the user's session if it exists.
func (r *SessionRegistry) SetLocation(userID int64, loc *time.Location) {
	r.mu.Lock()
	s, ok := r.sessions[userID]
	r.mu.Unlock()

	if ok {
		s.SetLocation(loc)
	}
}
