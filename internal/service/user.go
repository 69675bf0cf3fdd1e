package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aliskhannn/hifz-revision-bot/internal/domain/entities"
)

var ErrInvalidReminderHour = errors.New("reminder hour must be between 0 and 23")

type UserService struct {
	repository UserRepository
}

func NewUserService(repository UserRepository) *UserService {
	return &UserService{repository: repository}
}

// EnsureUser registers the user on first contact and keeps the chat id fresh.
func (s *UserService) EnsureUser(ctx context.Context, userID, chatID int64) (bool, error) {
	return s.repository.Save(ctx, entities.NewUser(userID, chatID))
}

func (s *UserService) Get(ctx context.Context, userID int64) (*entities.User, error) {
	return s.repository.GetByID(ctx, userID)
}

// SetTimezone validates and stores the user's timezone.
func (s *UserService) SetTimezone(ctx context.Context, userID int64, tz string) (*time.Location, error) {
	loc, err := entities.ParseTimezoneLocation(tz)
	if err != nil {
		return nil, err
	}

	if err := s.repository.UpdateTimezone(ctx, userID, tz); err != nil {
		return nil, fmt.Errorf("set timezone: %w", err)
	}

	return loc, nil
}

// SetReminders enables or disables the daily reminder at the given local hour.
func (s *UserService) SetReminders(ctx context.Context, userID int64, enabled bool, hour int) error {
	if hour < 0 || hour > 23 {
		return ErrInvalidReminderHour
	}

	if err := s.repository.UpdateReminders(ctx, userID, enabled, hour); err != nil {
		return fmt.Errorf("set reminders: %w", err)
	}

	return nil
}
