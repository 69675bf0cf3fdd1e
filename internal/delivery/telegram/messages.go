package telegram

import (
	"errors"

	"github.com/aliskhannn/hifz-revision-bot/internal/domain/entities"
	"github.com/aliskhannn/hifz-revision-bot/internal/infra/catalog"
	"github.com/aliskhannn/hifz-revision-bot/internal/service"
)

const msgWelcome = `<b>Assalamu alaikum!</b>

This bot keeps your hifz revision on schedule. Pick the surah you are revising, recite an ayah from memory and rate how well you recalled it. Ayahs you remember well come back less often, weak ones come back tomorrow.

` + msgCommands

const msgCommands = `/surah N — revise surah N
/status — overview of the current surah
/next — review the next due ayah
/review N — review ayah N of the current surah
/due — due ayahs across all surahs
/timezone TZ — set your timezone, e.g. Asia/Karachi or UTC+3
/reminders on [hour] | off — daily reminder`

const msgRatingScale = `How well did you recall it?
0 — nothing, 1 — wrong, 2 — wrong but familiar,
3 — hard, 4 — some hesitation, 5 — perfect`

// Error and hint messages.
const (
	msgUseCommands        = "Send a command, for example /surah 67. See /help."
	msgUnknownCommand     = "Unknown command.\n\n" + msgCommands
	msgUseSurah           = "Use: /surah N, where N is between 1 and 114."
	msgUseReview          = "Use: /review N, where N is an ayah number of the current surah."
	msgUseTimezone        = "Use: /timezone Asia/Karachi or /timezone UTC+3."
	msgUseReminders       = "Use: /reminders on [hour 0-23] or /reminders off."
	msgNoActiveSurah      = "Pick a surah first, for example /surah 67."
	msgNothingDue         = "Nothing is due in this surah today. Well done!"
	msgNothingDueAnywhere = "No ayahs are due today."
	msgStoreUnavailable   = "Could not reach the schedule storage. Please try again later."
	msgInvalidQuality     = "Rating must be between 0 and 5."
	msgInvalidAyah        = "This surah has no ayah with that number."
	msgUnknownSurah       = "There is no such surah. Surahs are numbered 1 to 114."
	msgInvalidTimezone    = "Unknown timezone. " + msgUseTimezone
	msgInvalidHour        = "Reminder hour must be between 0 and 23."
	msgInternalError      = "Something went wrong. Please try again later."
)

// userMessageFor maps an error to the text shown to the user.
func userMessageFor(err error) string {
	switch {
	case errors.Is(err, service.ErrStoreUnavailable):
		return msgStoreUnavailable
	case errors.Is(err, service.ErrInvalidAyah):
		return msgInvalidAyah
	case errors.Is(err, service.ErrInvalidReminderHour):
		return msgInvalidHour
	case errors.Is(err, entities.ErrInvalidQuality):
		return msgInvalidQuality
	case errors.Is(err, entities.ErrInvalidTimezone):
		return msgInvalidTimezone
	case errors.Is(err, catalog.ErrUnknownSurah):
		return msgUnknownSurah
	default:
		return msgInternalError
	}
}
