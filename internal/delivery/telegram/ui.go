package telegram

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/hifz-revision-bot/internal/domain/entities"
)

// maxReminderButtons caps the surah shortcuts attached to a reminder.
const maxReminderButtons = 5

var qualityLabels = [...]string{
	entities.QualityBlackout:      "0 Blank",
	entities.QualityWrong:         "1 Wrong",
	entities.QualityWrongFamiliar: "2 Familiar",
	entities.QualityHard:          "3 Hard",
	entities.QualityHesitant:      "4 Good",
	entities.QualityPerfect:       "5 Perfect",
}

// buildRatingKeyboard builds the 0-5 rating keyboard for one ayah.
func buildRatingKeyboard(surahID, ayah int) tgbotapi.InlineKeyboardMarkup {
	button := func(q entities.Quality) tgbotapi.InlineKeyboardButton {
		return tgbotapi.NewInlineKeyboardButtonData(qualityLabels[q], buildRateCallback(surahID, ayah, q))
	}

	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			button(entities.QualityBlackout),
			button(entities.QualityWrong),
			button(entities.QualityWrongFamiliar),
		),
		tgbotapi.NewInlineKeyboardRow(
			button(entities.QualityHard),
			button(entities.QualityHesitant),
			button(entities.QualityPerfect),
		),
	)
}

// buildAfterReviewKeyboard is shown under a saved review.
func buildAfterReviewKeyboard(surahID int) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("▶️ Next ayah", buildNextCallback(surahID)),
			tgbotapi.NewInlineKeyboardButtonData("📊 Status", buildStatusCallback(surahID)),
		),
	)
}

// buildStatusKeyboard is shown under a surah overview.
func buildStatusKeyboard(surahID int) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("▶️ Review next due", buildNextCallback(surahID)),
			tgbotapi.NewInlineKeyboardButtonData("🔄 Refresh", buildStatusCallback(surahID)),
		),
	)
}

// buildDueKeyboard links to the first surahs that have due ayahs.
// It returns nil when nothing is due.
func buildDueKeyboard(due []entities.SurahDue) *tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, d := range due {
		if d.Due == 0 {
			continue
		}
		if len(rows) == maxReminderButtons {
			break
		}
		label := fmt.Sprintf("Surah %d (%d due)", d.SurahID, d.Due)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, buildStatusCallback(d.SurahID)),
		))
	}

	if len(rows) == 0 {
		return nil
	}

	kb := tgbotapi.NewInlineKeyboardMarkup(rows...)
	return &kb
}
