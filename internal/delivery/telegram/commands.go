package telegram

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/aliskhannn/hifz-revision-bot/internal/domain/entities"
	"github.com/aliskhannn/hifz-revision-bot/internal/service"
)

func (h *Handler) handleStart() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		return h.send(newHTMLMessage(chatID, msgWelcome))
	}
}

func (h *Handler) handleHelp() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		return h.send(newHTMLMessage(chatID, msgCommands+"\n\n"+msgRatingScale))
	}
}

func (h *Handler) handleUnknown() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		return h.send(newHTMLMessage(chatID, msgUnknownCommand))
	}
}

// handleSurah switches the revision context and shows the surah overview.
func (h *Handler) handleSurah(userID int64, args string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		surahID, ok := parseSingleInt(args)
		if !ok {
			return h.send(newHTMLMessage(chatID, msgUseSurah))
		}

		sess, err := h.sessions.Get(ctx, userID)
		if err != nil {
			return err
		}

		if err := sess.SelectSurah(ctx, surahID); err != nil {
			return err
		}

		return h.sendStatus(chatID, sess.Snapshot())
	}
}

func (h *Handler) handleStatus(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		sess, ok, err := h.activeSession(ctx, userID)
		if err != nil {
			return err
		}
		if !ok {
			return h.send(newHTMLMessage(chatID, msgNoActiveSurah))
		}

		if err := sess.Refresh(ctx); err != nil {
			return err
		}

		return h.sendStatus(chatID, sess.Snapshot())
	}
}

// handleNext prompts for the most overdue ayah of the active surah.
func (h *Handler) handleNext(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		sess, ok, err := h.activeSession(ctx, userID)
		if err != nil {
			return err
		}
		if !ok {
			return h.send(newHTMLMessage(chatID, msgNoActiveSurah))
		}

		if err := sess.Refresh(ctx); err != nil {
			return err
		}

		return h.sendNextPrompt(chatID, sess)
	}
}

// handleReview prompts for a specific ayah, due or not.
func (h *Handler) handleReview(userID int64, args string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		ayah, ok := parseSingleInt(args)
		if !ok {
			return h.send(newHTMLMessage(chatID, msgUseReview))
		}

		sess, ok, err := h.activeSession(ctx, userID)
		if err != nil {
			return err
		}
		if !ok {
			return h.send(newHTMLMessage(chatID, msgNoActiveSurah))
		}

		surah, _ := sess.ActiveSurah()
		if !surah.HasAyah(ayah) {
			return fmt.Errorf("%w: %d", service.ErrInvalidAyah, ayah)
		}

		return h.sendReviewPrompt(chatID, surah, ayah, sess.GetAyahStatus(ayah))
	}
}

func (h *Handler) handleDue(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		sess, err := h.sessions.Get(ctx, userID)
		if err != nil {
			return err
		}

		due, err := sess.DueOverview(ctx)
		if err != nil {
			return err
		}

		msg := newHTMLMessage(chatID, renderDueOverview(sess.Today(), due, h.surahName))
		if kb := buildDueKeyboard(due); kb != nil {
			msg.ReplyMarkup = kb
		}
		return h.send(msg)
	}
}

func (h *Handler) handleTimezone(userID int64, args string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		tz := strings.TrimSpace(args)
		if tz == "" {
			return h.send(newHTMLMessage(chatID, msgUseTimezone))
		}

		loc, err := h.userService.SetTimezone(ctx, userID, tz)
		if err != nil {
			return err
		}
		h.sessions.SetLocation(userID, loc)

		text := fmt.Sprintf("Timezone set to <b>%s</b>. Today is %s.", html.EscapeString(tz), entities.Today(h.now(), loc))
		return h.send(newHTMLMessage(chatID, text))
	}
}

func (h *Handler) handleReminders(userID int64, args string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		enabled, hour, ok := parseRemindersArgs(args)
		if !ok {
			return h.send(newHTMLMessage(chatID, msgUseReminders))
		}

		if hour < 0 {
			user, err := h.userService.Get(ctx, userID)
			if err != nil {
				return err
			}
			hour = user.ReminderHour
		}

		if err := h.userService.SetReminders(ctx, userID, enabled, hour); err != nil {
			return err
		}

		text := "Daily reminders are off."
		if enabled {
			text = fmt.Sprintf("Daily reminders are on. You will get one after %02d:00 your time on days with due ayahs.", hour)
		}
		return h.send(newHTMLMessage(chatID, text))
	}
}

// activeSession returns the user's session and whether a surah is selected.
func (h *Handler) activeSession(ctx context.Context, userID int64) (*service.RevisionSession, bool, error) {
	sess, err := h.sessions.Get(ctx, userID)
	if err != nil {
		return nil, false, err
	}

	_, ok := sess.ActiveSurah()
	return sess, ok, nil
}

func (h *Handler) sendStatus(chatID int64, snap service.ScheduleSnapshot) error {
	msg := newHTMLMessage(chatID, renderStatus(snap))
	msg.ReplyMarkup = buildStatusKeyboard(snap.Surah.Number)
	return h.send(msg)
}

func (h *Handler) sendNextPrompt(chatID int64, sess *service.RevisionSession) error {
	surah, _ := sess.ActiveSurah()

	next, ok := sess.GetNextDue()
	if !ok {
		msg := newHTMLMessage(chatID, msgNothingDue)
		msg.ReplyMarkup = buildStatusKeyboard(surah.Number)
		return h.send(msg)
	}

	return h.sendReviewPrompt(chatID, surah, next, sess.GetAyahStatus(next))
}

func (h *Handler) sendReviewPrompt(chatID int64, surah *entities.Surah, ayah int, status entities.AyahStatus) error {
	msg := newHTMLMessage(chatID, renderReviewPrompt(surah, ayah, status))
	msg.ReplyMarkup = buildRatingKeyboard(surah.Number, ayah)
	return h.send(msg)
}

func (h *Handler) surahName(surahID int) string {
	s, err := h.surahs.GetByNumber(surahID)
	if err != nil {
		return fmt.Sprintf("Surah %d", surahID)
	}
	return surahTitle(s)
}
