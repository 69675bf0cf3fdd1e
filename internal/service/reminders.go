package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/aliskhannn/hifz-revision-bot/internal/domain/entities"
)

const (
	reminderBatchSize     = 100
	reminderMaxConcurrent = 10
)

// ReminderService sends a daily "ayahs due" reminder to each user.
type ReminderService struct {
	reminderRepo ReminderRepository
	store        ScheduleStore
	notifier     ReminderNotifier
	logger       *zap.Logger
	now          func() time.Time
}

// NewReminderService creates a new reminder service.
func NewReminderService(
	reminderRepo ReminderRepository,
	store ScheduleStore,
	logger *zap.Logger,
) *ReminderService {
	return &ReminderService{
		reminderRepo: reminderRepo,
		store:        store,
		logger:       logger,
		now:          time.Now,
	}
}

// SetNotifier sets the notifier (called after handler is created).
func (s *ReminderService) SetNotifier(notifier ReminderNotifier) {
	s.notifier = notifier
}

// Start runs the reminder job on the given cron spec until ctx is cancelled.
func (s *ReminderService) Start(ctx context.Context, spec string) error {
	c := cron.New(cron.WithLocation(time.UTC))

	_, err := c.AddFunc(spec, func() {
		s.logger.Info("cron triggered: processing reminders")
		if _, err := s.SendDailyReminders(ctx); err != nil {
			s.logger.Error("failed to send reminders", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("add cron job: %w", err)
	}

	c.Start()
	s.logger.Info("reminder service started", zap.String("spec", spec))

	<-ctx.Done()

	<-c.Stop().Done()
	s.logger.Info("reminder service stopped")
	return nil
}

// SendDailyReminders pages through users with reminders enabled and notifies
// those with due ayahs. It returns the number of reminders sent.
func (s *ReminderService) SendDailyReminders(ctx context.Context) (int, error) {
	if s.notifier == nil {
		return 0, fmt.Errorf("notifier not initialized")
	}

	offset := 0
	totalSent := 0
	now := s.now().UTC()

	for {
		targets, err := s.reminderRepo.ListReminderTargets(ctx, reminderBatchSize, offset)
		if err != nil {
			return totalSent, fmt.Errorf("list reminder targets: %w", err)
		}

		if len(targets) == 0 {
			break
		}

		totalSent += s.processBatch(ctx, targets, now)

		if len(targets) < reminderBatchSize {
			break
		}
		offset += reminderBatchSize
	}

	s.logger.Info("reminders processed", zap.Int("total_sent", totalSent))
	return totalSent, nil
}

// processBatch processes a batch of reminders concurrently.
func (s *ReminderService) processBatch(ctx context.Context, targets []*entities.ReminderTarget, now time.Time) int {
	sem := make(chan struct{}, reminderMaxConcurrent)
	var wg sync.WaitGroup
	var mu sync.Mutex
	sent := 0

	for _, t := range targets {
		t := t
		wg.Add(1)
		sem <- struct{}{}

		go func() {
			defer wg.Done()
			defer func() { <-sem }()

			ok, err := s.processTarget(ctx, t, now)
			if err != nil {
				s.logger.Error("failed to process reminder",
					zap.Int64("user_id", t.UserID),
					zap.Error(err),
				)
				return
			}
			if ok {
				mu.Lock()
				sent++
				mu.Unlock()
			}
		}()
	}

	wg.Wait()
	return sent
}

func (s *ReminderService) processTarget(ctx context.Context, t *entities.ReminderTarget, now time.Time) (bool, error) {
	today, ok := t.CanSendNow(now)
	if !ok {
		return false, nil
	}

	due, err := s.store.DueOverview(ctx, t.UserID, today)
	if err != nil {
		return false, fmt.Errorf("due overview: %w", err)
	}

	payload := entities.ReminderPayload{Today: today, Due: due}
	if payload.TotalDue() == 0 {
		s.logger.Debug("nothing due", zap.Int64("user_id", t.UserID))
		return false, nil
	}

	if err := s.notifier.SendReminder(t.ChatID, payload); err != nil {
		return false, fmt.Errorf("send notification: %w", err)
	}

	if err := s.reminderRepo.MarkReminded(ctx, t.UserID, today); err != nil {
		return true, fmt.Errorf("mark reminded: %w", err)
	}

	s.logger.Info("reminder sent",
		zap.Int64("user_id", t.UserID),
		zap.Int("due", payload.TotalDue()),
		zap.Stringer("local_date", today),
	)
	return true, nil
}
