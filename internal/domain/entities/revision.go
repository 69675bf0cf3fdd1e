package entities

import (
	"errors"
	"math"
	"sort"

	"cloud.google.com/go/civil"
)

// Default scheduling state for an ayah that has never been reviewed.
const (
	DefaultIntervalDays = 1
	DefaultEaseFactor   = 2.5
	MinEaseFactor       = 1.3
)

// passQuality is the lowest rating that counts as a successful recall.
const passQuality = 3

var ErrInvalidQuality = errors.New("quality must be between 0 and 5")

// Quality is the self-reported recall rating of a review.
type Quality int

const (
	QualityBlackout      Quality = 0 // nothing recalled
	QualityWrong         Quality = 1 // wrong, recognised once shown
	QualityWrongFamiliar Quality = 2 // wrong, but the answer felt familiar
	QualityHard          Quality = 3 // correct with serious effort
	QualityHesitant      Quality = 4 // correct after some hesitation
	QualityPerfect       Quality = 5 // perfect recall
)

// Validate reports whether q is inside the 0-5 rating scale.
func (q Quality) Validate() error {
	if q < QualityBlackout || q > QualityPerfect {
		return ErrInvalidQuality
	}
	return nil
}

// Passed reports whether the rating counts as a successful recall.
func (q Quality) Passed() bool {
	return q >= passQuality
}

// AyahStatus is the display status of an ayah on a given day.
type AyahStatus string

const (
	StatusNew     AyahStatus = "new"     // never reviewed
	StatusOverdue AyahStatus = "overdue" // next review is in the past
	StatusDue     AyahStatus = "due"     // next review is today
	StatusSafe    AyahStatus = "safe"    // next review is in the future
)

// RevisionItem stores the review schedule of one ayah for one user.
type RevisionItem struct {
	UserID     int64
	SurahID    int
	AyahNumber int

	IntervalDays int         // days until the next review, always >= 1
	EaseFactor   float64     // interval growth multiplier, never below 1.3
	LastReviewed *civil.Date // nil if never reviewed
	NextReview   civil.Date  // LastReviewed + IntervalDays
}

// ComputeNextSchedule applies one SM-2 step.
//
// The ease factor is adjusted from the rating first and floored at
// MinEaseFactor. The interval then follows, in order:
//  1. failed recall (quality < 3) resets it to one day;
//  2. an interval of at most one day stays at one day;
//  3. an interval of at most six days graduates to six days;
//  4. anything longer grows to round(interval * new ease factor).
//
// The function does not validate quality; see Quality.Validate.
func ComputeNextSchedule(quality Quality, intervalDays int, easeFactor float64) (int, float64) {
	miss := float64(5 - quality)
	ease := easeFactor + (0.1 - miss*(0.08+miss*0.02))
	ease = max(MinEaseFactor, ease)

	switch {
	case !quality.Passed():
		return 1, ease
	case intervalDays <= 1:
		return 1, ease
	case intervalDays <= 6:
		return 6, ease
	default:
		return int(math.Round(float64(intervalDays) * ease)), ease
	}
}

// NextRevision builds the item stored after reviewing an ayah on the given day.
// prev is nil when the ayah has no schedule yet, in which case the default
// interval and ease factor are used as the starting state.
func NextRevision(userID int64, surahID, ayahNumber int, prev *RevisionItem, quality Quality, today civil.Date) RevisionItem {
	interval, ease := DefaultIntervalDays, DefaultEaseFactor
	if prev != nil {
		interval, ease = prev.IntervalDays, prev.EaseFactor
	}

	interval, ease = ComputeNextSchedule(quality, interval, ease)
	reviewed := today

	return RevisionItem{
		UserID:       userID,
		SurahID:      surahID,
		AyahNumber:   ayahNumber,
		IntervalDays: interval,
		EaseFactor:   ease,
		LastReviewed: &reviewed,
		NextReview:   today.AddDays(interval),
	}
}

// Status classifies an item on the given day. A nil item is new.
func (it *RevisionItem) Status(today civil.Date) AyahStatus {
	switch {
	case it == nil:
		return StatusNew
	case it.NextReview.Before(today):
		return StatusOverdue
	case it.NextReview.After(today):
		return StatusSafe
	default:
		return StatusDue
	}
}

// FindAyah returns the item for ayahNumber, or nil if the schedule has none.
func FindAyah(items []RevisionItem, ayahNumber int) *RevisionItem {
	for i := range items {
		if items[i].AyahNumber == ayahNumber {
			return &items[i]
		}
	}
	return nil
}

// NextDue picks the ayah to review next: among items due on or before today,
// the one with the earliest next review date. Ties keep the order of items,
// which is ayah ascending as loaded from the store.
func NextDue(items []RevisionItem, today civil.Date) (int, bool) {
	due := make([]RevisionItem, 0, len(items))
	for _, it := range items {
		if !it.NextReview.After(today) {
			due = append(due, it)
		}
	}
	if len(due) == 0 {
		return 0, false
	}

	sort.SliceStable(due, func(i, j int) bool {
		return due[i].NextReview.Before(due[j].NextReview)
	})

	return due[0].AyahNumber, true
}
