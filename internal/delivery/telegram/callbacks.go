package telegram

import (
	"context"
	"errors"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/hifz-revision-bot/internal/domain/entities"
	"github.com/aliskhannn/hifz-revision-bot/internal/service"
)

func (h *Handler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	var answerText string
	defer func() {
		answer := tgbotapi.NewCallback(cb.ID, answerText)
		if _, err := h.bot.Request(answer); err != nil {
			h.logger.Error("failed to answer callback", zap.Error(err))
		}
	}()

	if cb.Message == nil || cb.From == nil {
		return
	}

	data := decodeCallback(cb.Data)

	var err error
	switch data.Action {
	case actionRate:
		answerText, err = h.handleRateCallback(ctx, cb, data)
	case actionNext:
		err = h.handleNextCallback(ctx, cb, data)
	case actionStatus:
		err = h.handleStatusCallback(ctx, cb, data)
	default:
		err = errBadCallback
	}

	if err != nil {
		h.logger.Error("callback failed",
			zap.Int64("user_id", cb.From.ID),
			zap.String("data", cb.Data),
			zap.Error(err),
		)
		answerText = userMessageFor(err)
		if errors.Is(err, errBadCallback) {
			answerText = msgInternalError
		}
	}
}

// handleRateCallback records a rating and replaces the prompt with the result.
func (h *Handler) handleRateCallback(ctx context.Context, cb *tgbotapi.CallbackQuery, data callbackData) (string, error) {
	p, err := data.ints(3)
	if err != nil {
		return "", err
	}
	surahID, ayah, quality := p[0], p[1], entities.Quality(p[2])

	sess, err := h.sessionFor(ctx, cb.From.ID, surahID)
	if err != nil {
		return "", err
	}

	item, err := sess.ReviewAyah(ctx, ayah, quality)
	if item == nil {
		if err == nil {
			err = fmt.Errorf("review of surah %d ayah %d was not recorded", surahID, ayah)
		}
		return "", err
	}
	if err != nil {
		// The review is saved; only the reload failed.
		h.logger.Warn("reload after review failed", zap.Int64("user_id", cb.From.ID), zap.Error(err))
	}

	surah, _ := sess.ActiveSurah()
	edit := newHTMLEdit(cb.Message.Chat.ID, cb.Message.MessageID, renderReviewResult(surah, *item, sess.Today()))
	kb := buildAfterReviewKeyboard(surahID)
	edit.ReplyMarkup = &kb

	if err := h.send(edit); err != nil {
		return "", err
	}
	return qualityLabels[quality], nil
}

func (h *Handler) handleNextCallback(ctx context.Context, cb *tgbotapi.CallbackQuery, data callbackData) error {
	p, err := data.ints(1)
	if err != nil {
		return err
	}

	sess, err := h.sessionFor(ctx, cb.From.ID, p[0])
	if err != nil {
		return err
	}

	return h.sendNextPrompt(cb.Message.Chat.ID, sess)
}

func (h *Handler) handleStatusCallback(ctx context.Context, cb *tgbotapi.CallbackQuery, data callbackData) error {
	p, err := data.ints(1)
	if err != nil {
		return err
	}

	sess, err := h.sessionFor(ctx, cb.From.ID, p[0])
	if err != nil {
		return err
	}

	snap := sess.Snapshot()
	edit := newHTMLEdit(cb.Message.Chat.ID, cb.Message.MessageID, renderStatus(snap))
	kb := buildStatusKeyboard(snap.Surah.Number)
	edit.ReplyMarkup = &kb

	return h.send(edit)
}

// sessionFor returns the user's session with surahID active and freshly loaded.
// Buttons from older messages may point at another surah, which is then selected.
func (h *Handler) sessionFor(ctx context.Context, userID int64, surahID int) (*service.RevisionSession, error) {
	sess, err := h.sessions.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if active, ok := sess.ActiveSurah(); ok && active.Number == surahID {
		return sess, sess.Refresh(ctx)
	}

	return sess, sess.SelectSurah(ctx, surahID)
}
