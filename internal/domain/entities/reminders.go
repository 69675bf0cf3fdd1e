package entities

import (
	"time"

	"cloud.google.com/go/civil"
)

// SurahDue summarises the due ayahs of one surah for a user.
type SurahDue struct {
	SurahID int
	Due     int // next review on or before today
	Overdue int // next review strictly before today
}

// ReminderPayload is used to build a reminder message payload.
type ReminderPayload struct {
	Today civil.Date
	Due   []SurahDue
}

// TotalDue returns the number of due ayahs across all surahs.
func (p ReminderPayload) TotalDue() int {
	total := 0
	for _, d := range p.Due {
		total += d.Due
	}
	return total
}

// ReminderTarget is a user with reminders enabled, as seen by the reminder job.
type ReminderTarget struct {
	UserID         int64
	ChatID         int64
	Timezone       string
	ReminderHour   int
	LastRemindedOn *civil.Date
}

// CanSendNow checks if the daily reminder should go out at the given instant.
// It returns the user's local date so the caller can mark it as reminded.
func (r *ReminderTarget) CanSendNow(now time.Time) (civil.Date, bool) {
	loc, err := ParseTimezoneLocation(r.Timezone)
	if err != nil {
		loc = time.UTC
	}

	local := now.In(loc)
	today := civil.DateOf(local)

	if local.Hour() < r.ReminderHour {
		return today, false
	}
	if r.LastRemindedOn != nil && !r.LastRemindedOn.Before(today) {
		return today, false
	}

	return today, true
}
