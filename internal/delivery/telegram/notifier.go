package telegram

import (
	"github.com/aliskhannn/hifz-revision-bot/internal/domain/entities"
)

// SendReminder delivers the daily reminder to a chat.
func (h *Handler) SendReminder(chatID int64, payload entities.ReminderPayload) error {
	msg := newHTMLMessage(chatID, renderReminder(payload, h.surahName))
	if kb := buildDueKeyboard(payload.Due); kb != nil {
		msg.ReplyMarkup = kb
	}

	return h.send(msg)
}
