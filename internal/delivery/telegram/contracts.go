package telegram

import (
	"context"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/hifz-revision-bot/internal/domain/entities"
	"github.com/aliskhannn/hifz-revision-bot/internal/service"
)

// Bot is the part of *tgbotapi.BotAPI the handler uses.
type Bot interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
}

type UserService interface {
	EnsureUser(ctx context.Context, userID, chatID int64) (bool, error)
	Get(ctx context.Context, userID int64) (*entities.User, error)
	SetTimezone(ctx context.Context, userID int64, tz string) (*time.Location, error)
	SetReminders(ctx context.Context, userID int64, enabled bool, hour int) error
}

type SessionRegistry interface {
	Get(ctx context.Context, userID int64) (*service.RevisionSession, error)
	SetLocation(userID int64, loc *time.Location)
}

type SurahCatalog interface {
	GetByNumber(number int) (*entities.Surah, error)
}
