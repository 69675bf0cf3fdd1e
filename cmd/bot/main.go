package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/hifz-revision-bot/internal/config"
	"github.com/aliskhannn/hifz-revision-bot/internal/delivery/telegram"
	"github.com/aliskhannn/hifz-revision-bot/internal/infra/catalog"
	"github.com/aliskhannn/hifz-revision-bot/internal/infra/memory"
	"github.com/aliskhannn/hifz-revision-bot/internal/infra/postgres"
	"github.com/aliskhannn/hifz-revision-bot/internal/infra/postgres/repository"
	"github.com/aliskhannn/hifz-revision-bot/internal/logger"
	"github.com/aliskhannn/hifz-revision-bot/internal/service"
)

var commands = []tgbotapi.BotCommand{
	{Command: "start", Description: "Start the bot"},
	{Command: "surah", Description: "Revise a surah (usage: /surah 67)"},
	{Command: "status", Description: "Overview of the current surah"},
	{Command: "next", Description: "Review the next due ayah"},
	{Command: "review", Description: "Review a specific ayah (usage: /review 5)"},
	{Command: "due", Description: "Due ayahs across all surahs"},
	{Command: "timezone", Description: "Set your timezone"},
	{Command: "reminders", Description: "Daily reminder on/off"},
	{Command: "help", Description: "Help"},
}

// storage bundles the backends the services depend on.
type storage struct {
	schedule  service.ScheduleStore
	users     service.UserRepository
	reminders service.ReminderRepository
	close     func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramAPIToken)
	if err != nil {
		log.Fatal("failed to create bot", zap.Error(err))
	}
	bot.Debug = cfg.TelegramDebug

	if _, err := bot.Request(tgbotapi.NewSetMyCommands(commands...)); err != nil {
		log.Warn("failed to set bot commands", zap.Error(err))
	}
	log.Info("authorized", zap.String("account", bot.Self.UserName))

	surahs, err := catalog.NewSurahRepository()
	if err != nil {
		log.Fatal("failed to load surah catalog", zap.Error(err))
	}

	store, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal("failed to open storage", zap.Error(err))
	}
	defer store.close()

	userService := service.NewUserService(store.users)
	sessions := service.NewSessionRegistry(store.schedule, surahs, store.users, log, nil)
	reminderService := service.NewReminderService(store.reminders, store.schedule, log)

	handler := telegram.NewHandler(bot, log, userService, sessions, surahs)
	reminderService.SetNotifier(handler)

	if cfg.Reminders.Enabled {
		go func() {
			if err := reminderService.Start(ctx, cfg.Reminders.Schedule); err != nil {
				log.Error("reminder service failed", zap.Error(err))
			}
		}()
	}

	if err := handler.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("handler stopped", zap.Error(err))
	}

	bot.StopReceivingUpdates()
	log.Info("shutdown complete")
}

// openStorage connects to PostgreSQL when DATABASE_URL is set and falls back
// to the in-memory store otherwise.
func openStorage(ctx context.Context, cfg *config.Config, log *zap.Logger) (*storage, error) {
	dsn, err := cfg.DB.DSN()
	if errors.Is(err, config.ErrMissingEnvironmentVariables) {
		log.Warn("DATABASE_URL is not set, schedules are kept in memory and lost on restart")
		mem := memory.NewStore()
		return &storage{schedule: mem, users: mem, reminders: mem, close: func() {}}, nil
	}

	pool, err := postgres.NewPool(ctx, dsn, postgres.PoolConfig{
		MaxConns:        int32(cfg.DB.MaxConnections),
		MaxConnLifetime: cfg.DB.MaxConnLifetime,
	})
	if err != nil {
		return nil, err
	}

	return &storage{
		schedule:  repository.NewRevisionRepository(pool),
		users:     repository.NewUserRepository(pool),
		reminders: repository.NewRemindersRepository(pool),
		close:     pool.Close,
	}, nil
}
