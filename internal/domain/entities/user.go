package entities

import (
	"time"

	"cloud.google.com/go/civil"
)

// DefaultReminderHour is the local hour after which the daily reminder is sent.
const DefaultReminderHour = 8

// User represents bot user.
type User struct {
	ID        int64 // Telegram user ID
	ChatID    int64
	Timezone  string // IANA name or UTC offset, see ParseTimezoneLocation
	CreatedAt time.Time

	RemindersEnabled bool
	ReminderHour     int         // 0-23 in the user's timezone
	LastRemindedOn   *civil.Date // local date of the last reminder, nullable
}

func NewUser(id, chatID int64) *User {
	return &User{
		ID:               id,
		ChatID:           chatID,
		Timezone:         "UTC",
		CreatedAt:        time.Now().UTC(),
		RemindersEnabled: true,
		ReminderHour:     DefaultReminderHour,
	}
}

// Location resolves the user's timezone, falling back to UTC.
func (u *User) Location() *time.Location {
	if u == nil {
		return time.UTC
	}
	loc, err := ParseTimezoneLocation(u.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Today returns the calendar date in the user's timezone at the given instant.
func Today(now time.Time, loc *time.Location) civil.Date {
	if loc == nil {
		loc = time.UTC
	}
	return civil.DateOf(now.In(loc))
}
