package telegram

import (
	"context"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

type Handler struct {
	bot         Bot
	logger      *zap.Logger
	userService UserService
	sessions    SessionRegistry
	surahs      SurahCatalog
	now         func() time.Time
}

func NewHandler(
	bot Bot,
	logger *zap.Logger,
	userService UserService,
	sessions SessionRegistry,
	surahs SurahCatalog,
) *Handler {
	return &Handler{
		bot:         bot,
		logger:      logger,
		userService: userService,
		sessions:    sessions,
		surahs:      surahs,
		now:         time.Now,
	}
}

func (h *Handler) Run(ctx context.Context) error {
	h.logger.Info("telegram handler started")
	defer h.logger.Info("telegram handler stopped")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			h.handleUpdate(ctx, update)
		}
	}
}

func (h *Handler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		h.logger.Debug("callback received",
			zap.Int64("user_id", update.CallbackQuery.From.ID),
			zap.String("data", update.CallbackQuery.Data),
		)
		h.handleCallback(ctx, update.CallbackQuery)
		return
	}

	if update.Message == nil || update.Message.From == nil {
		h.logger.Debug("update without message and callback")
		return
	}

	h.logger.Debug("update received",
		zap.Int64("chat_id", update.Message.Chat.ID),
		zap.String("text", update.Message.Text),
	)

	from := update.Message.From
	chatID := update.Message.Chat.ID

	if _, err := h.userService.EnsureUser(ctx, from.ID, chatID); err != nil {
		h.logger.Error("failed to ensure user",
			zap.Int64("user_id", from.ID),
			zap.Error(err),
		)
	}

	if !update.Message.IsCommand() {
		_ = h.send(newHTMLMessage(chatID, msgUseCommands))
		return
	}

	args := update.Message.CommandArguments()

	var fn HandlerFunc
	switch update.Message.Command() {
	case "start":
		fn = h.handleStart()
	case "help":
		fn = h.handleHelp()
	case "surah":
		fn = h.handleSurah(from.ID, args)
	case "status":
		fn = h.handleStatus(from.ID)
	case "next":
		fn = h.handleNext(from.ID)
	case "review":
		fn = h.handleReview(from.ID, args)
	case "due":
		fn = h.handleDue(from.ID)
	case "timezone":
		fn = h.handleTimezone(from.ID, args)
	case "reminders":
		fn = h.handleReminders(from.ID, args)
	default:
		fn = h.handleUnknown()
	}

	_ = h.withErrorHandling(fn)(ctx, chatID)
}

func (h *Handler) sendError(chatID int64, text string) {
	_ = h.send(newHTMLMessage(chatID, text))
}

func (h *Handler) send(c tgbotapi.Chattable) error {
	if _, err := h.bot.Send(c); err != nil {
		h.logger.Error("failed to send telegram message",
			zap.Error(err),
		)
		return err
	}
	return nil
}
