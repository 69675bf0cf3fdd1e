package telegram

import (
	"fmt"
	"html"
	"strings"

	"cloud.google.com/go/civil"

	"github.com/aliskhannn/hifz-revision-bot/internal/domain/entities"
	"github.com/aliskhannn/hifz-revision-bot/internal/service"
)

const gridRowSize = 10

var statusMarks = map[entities.AyahStatus]string{
	entities.StatusOverdue: "🔴",
	entities.StatusDue:     "🟡",
	entities.StatusSafe:    "🟢",
	entities.StatusNew:     "⚪",
}

// surahNamer resolves a surah number to a display name.
type surahNamer func(surahID int) string

func surahTitle(s *entities.Surah) string {
	return fmt.Sprintf("Surah %d · %s", s.Number, html.EscapeString(s.Transliteration))
}

// renderStatus renders the per-ayah grid of the snapshot's surah.
func renderStatus(snap service.ScheduleSnapshot) string {
	var b strings.Builder
	counts := make(map[entities.AyahStatus]int, len(statusMarks))

	fmt.Fprintf(&b, "<b>%s</b>\n%d ayahs · today is %s\n\n", surahTitle(snap.Surah), snap.Surah.AyahCount, snap.Today)

	for start := 1; start <= snap.Surah.AyahCount; start += gridRowSize {
		end := min(start+gridRowSize-1, snap.Surah.AyahCount)
		fmt.Fprintf(&b, "<code>%3d</code> ", start)
		for ayah := start; ayah <= end; ayah++ {
			st := snap.Status(ayah)
			counts[st]++
			b.WriteString(statusMarks[st])
		}
		b.WriteByte('\n')
	}

	fmt.Fprintf(&b, "\n🔴 overdue %d · 🟡 due %d · 🟢 safe %d · ⚪ new %d",
		counts[entities.StatusOverdue],
		counts[entities.StatusDue],
		counts[entities.StatusSafe],
		counts[entities.StatusNew],
	)

	if next, ok := entities.NextDue(snap.Items, snap.Today); ok {
		fmt.Fprintf(&b, "\n\nNext due: ayah %d. Send /next to review it.", next)
	}

	return b.String()
}

// renderReviewPrompt asks the user to recite an ayah and rate the recall.
func renderReviewPrompt(surah *entities.Surah, ayah int, status entities.AyahStatus) string {
	return fmt.Sprintf("<b>%s</b>, ayah %d %s %s\n\nRecite it from memory, then check yourself.\n\n%s",
		surahTitle(surah), ayah, statusMarks[status], status, msgRatingScale)
}

// renderReviewResult describes the schedule produced by a review.
func renderReviewResult(surah *entities.Surah, item entities.RevisionItem, today civil.Date) string {
	var b strings.Builder

	fmt.Fprintf(&b, "<b>%s</b>, ayah %d saved.\n\n", surahTitle(surah), item.AyahNumber)

	days := item.NextReview.DaysSince(today)
	switch days {
	case 0:
		b.WriteString("Next review: today")
	case 1:
		fmt.Fprintf(&b, "Next review: tomorrow, %s", item.NextReview)
	default:
		fmt.Fprintf(&b, "Next review: %s (in %d days)", item.NextReview, days)
	}

	fmt.Fprintf(&b, "\nEase factor: %.2f", item.EaseFactor)
	return b.String()
}

// renderDueOverview lists due ayahs per surah.
func renderDueOverview(today civil.Date, due []entities.SurahDue, name surahNamer) string {
	payload := entities.ReminderPayload{Today: today, Due: due}
	if payload.TotalDue() == 0 {
		return msgNothingDueAnywhere
	}

	var b strings.Builder
	fmt.Fprintf(&b, "<b>Due on %s: %d ayahs</b>\n\n", today, payload.TotalDue())
	writeDueLines(&b, due, name)
	return b.String()
}

// renderReminder renders the daily reminder message.
func renderReminder(payload entities.ReminderPayload, name surahNamer) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🔔 <b>Revision reminder</b>\n\n%d ayahs are due today (%s).\n\n", payload.TotalDue(), payload.Today)
	writeDueLines(&b, payload.Due, name)
	b.WriteString("\nTap a surah to start, or send /due.")
	return b.String()
}

func writeDueLines(b *strings.Builder, due []entities.SurahDue, name surahNamer) {
	for _, d := range due {
		if d.Due == 0 {
			continue
		}
		fmt.Fprintf(b, "• %s: %d due", name(d.SurahID), d.Due)
		if d.Overdue > 0 {
			fmt.Fprintf(b, ", %d overdue", d.Overdue)
		}
		b.WriteByte('\n')
	}
}
