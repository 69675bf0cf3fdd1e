package entities

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y, m, d int) civil.Date {
	return civil.Date{Year: y, Month: time.Month(m), Day: d}
}

func TestComputeNextSchedule_EaseNeverBelowFloor(t *testing.T) {
	for q := QualityBlackout; q <= QualityPerfect; q++ {
		for _, ef := range []float64{1.3, 1.31, 1.5, 1.96, 2.5, 3.2} {
			for _, interval := range []int{1, 2, 6, 7, 40} {
				_, ease := ComputeNextSchedule(q, interval, ef)
				assert.GreaterOrEqual(t, ease, MinEaseFactor, "q=%d ef=%v interval=%d", q, ef, interval)
			}
		}
	}
}

func TestComputeNextSchedule_FailureResetsInterval(t *testing.T) {
	for _, q := range []Quality{QualityBlackout, QualityWrong, QualityWrongFamiliar} {
		for _, interval := range []int{1, 2, 6, 7, 15, 120} {
			got, _ := ComputeNextSchedule(q, interval, 2.5)
			assert.Equal(t, 1, got, "q=%d interval=%d", q, interval)
		}
	}
}

func TestComputeNextSchedule_GraduationSteps(t *testing.T) {
	for _, q := range []Quality{QualityHard, QualityHesitant, QualityPerfect} {
		got, _ := ComputeNextSchedule(q, 1, 2.5)
		assert.Equal(t, 1, got, "q=%d from 1 day", q)

		for interval := 2; interval <= 6; interval++ {
			got, _ := ComputeNextSchedule(q, interval, 2.5)
			assert.Equal(t, 6, got, "q=%d from %d days", q, interval)
		}
	}
}

func TestComputeNextSchedule_GrowthUsesUpdatedEase(t *testing.T) {
	tests := []struct {
		name     string
		quality  Quality
		interval int
		ease     float64
		want     int
		wantEase float64
	}{
		// ease 2.5 -> 2.36, 7 * 2.36 = 16.52
		{"hard", QualityHard, 7, 2.5, 17, 2.36},
		// ease 2.5 -> 2.6, 10 * 2.6 = 26
		{"perfect", QualityPerfect, 10, 2.5, 26, 2.6},
		// ease stays at the floor, 20 * 1.3 = 26
		{"hard at floor", QualityHard, 20, 1.3, 26, 1.3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ease := ComputeNextSchedule(tt.quality, tt.interval, tt.ease)
			assert.Equal(t, tt.want, got)
			assert.InDelta(t, tt.wantEase, ease, 1e-9)
		})
	}
}

func TestComputeNextSchedule_Scenarios(t *testing.T) {
	t.Run("new ayah reviewed perfectly", func(t *testing.T) {
		interval, ease := ComputeNextSchedule(QualityPerfect, DefaultIntervalDays, DefaultEaseFactor)
		assert.Equal(t, 1, interval)
		assert.InDelta(t, 2.6, ease, 1e-9)
	})

	t.Run("six day item reviewed with hesitation", func(t *testing.T) {
		interval, ease := ComputeNextSchedule(QualityHesitant, 6, 2.5)
		assert.InDelta(t, 2.5, ease, 1e-9)
		assert.Equal(t, 15, interval)
	})

	t.Run("fifteen day item forgotten", func(t *testing.T) {
		interval, ease := ComputeNextSchedule(QualityWrong, 15, 2.5)
		assert.Equal(t, 1, interval)
		assert.InDelta(t, 1.96, ease, 1e-9)
	})

	t.Run("blackout at the floor stays at the floor", func(t *testing.T) {
		interval, ease := ComputeNextSchedule(QualityBlackout, 30, 1.3)
		assert.Equal(t, 1, interval)
		assert.Equal(t, MinEaseFactor, ease)
	})
}

func TestComputeNextSchedule_OutOfRangeQualityIsDefined(t *testing.T) {
	interval, ease := ComputeNextSchedule(Quality(-3), 30, 2.5)
	assert.Equal(t, 1, interval)
	assert.Equal(t, MinEaseFactor, ease)

	interval, ease = ComputeNextSchedule(Quality(7), 10, 2.5)
	assert.Greater(t, ease, 2.5)
	assert.Greater(t, interval, 10)
}

func TestQualityValidate(t *testing.T) {
	for q := QualityBlackout; q <= QualityPerfect; q++ {
		assert.NoError(t, q.Validate())
	}
	assert.ErrorIs(t, Quality(-1).Validate(), ErrInvalidQuality)
	assert.ErrorIs(t, Quality(6).Validate(), ErrInvalidQuality)
}

func TestNextRevision(t *testing.T) {
	today := date(2026, 3, 30)

	t.Run("defaults for a new ayah", func(t *testing.T) {
		item := NextRevision(42, 2, 255, nil, QualityPerfect, today)

		assert.Equal(t, int64(42), item.UserID)
		assert.Equal(t, 2, item.SurahID)
		assert.Equal(t, 255, item.AyahNumber)
		assert.Equal(t, 1, item.IntervalDays)
		assert.InDelta(t, 2.6, item.EaseFactor, 1e-9)
		require.NotNil(t, item.LastReviewed)
		assert.Equal(t, today, *item.LastReviewed)
		assert.Equal(t, date(2026, 3, 31), item.NextReview)
	})

	t.Run("continues from previous state across month end", func(t *testing.T) {
		prev := &RevisionItem{IntervalDays: 6, EaseFactor: 2.5}
		item := NextRevision(42, 2, 255, prev, QualityHesitant, today)

		assert.Equal(t, 15, item.IntervalDays)
		assert.Equal(t, date(2026, 4, 14), item.NextReview)
		assert.Equal(t, item.LastReviewed.AddDays(item.IntervalDays), item.NextReview)
	})

	t.Run("does not mutate previous state", func(t *testing.T) {
		prev := &RevisionItem{IntervalDays: 15, EaseFactor: 2.5}
		_ = NextRevision(42, 2, 255, prev, QualityWrong, today)

		assert.Equal(t, 15, prev.IntervalDays)
		assert.Equal(t, 2.5, prev.EaseFactor)
	})
}

func TestStatus(t *testing.T) {
	today := date(2026, 1, 10)

	var missing *RevisionItem
	assert.Equal(t, StatusNew, missing.Status(today))
	assert.Equal(t, StatusNew, missing.Status(today), "new status does not depend on call order")

	tests := []struct {
		next civil.Date
		want AyahStatus
	}{
		{date(2026, 1, 9), StatusOverdue},
		{date(2025, 12, 31), StatusOverdue},
		{date(2026, 1, 10), StatusDue},
		{date(2026, 1, 11), StatusSafe},
		{date(2027, 1, 1), StatusSafe},
	}
	for _, tt := range tests {
		item := &RevisionItem{NextReview: tt.next}
		assert.Equal(t, tt.want, item.Status(today), tt.next.String())
	}
}

func TestFindAyah(t *testing.T) {
	items := []RevisionItem{{AyahNumber: 1}, {AyahNumber: 3}}

	require.NotNil(t, FindAyah(items, 3))
	assert.Equal(t, 3, FindAyah(items, 3).AyahNumber)
	assert.Nil(t, FindAyah(items, 2))
	assert.Nil(t, FindAyah(nil, 1))
}

func TestNextDue(t *testing.T) {
	today := date(2026, 5, 20)

	t.Run("empty schedule", func(t *testing.T) {
		_, ok := NextDue(nil, today)
		assert.False(t, ok)
	})

	t.Run("nothing due", func(t *testing.T) {
		items := []RevisionItem{
			{AyahNumber: 1, NextReview: date(2026, 5, 21)},
			{AyahNumber: 2, NextReview: date(2026, 6, 1)},
		}
		_, ok := NextDue(items, today)
		assert.False(t, ok)
	})

	t.Run("earliest next review wins", func(t *testing.T) {
		items := []RevisionItem{
			{AyahNumber: 1, NextReview: date(2026, 5, 20)},
			{AyahNumber: 2, NextReview: date(2026, 5, 25)},
			{AyahNumber: 3, NextReview: date(2026, 5, 2)},
			{AyahNumber: 4, NextReview: date(2026, 5, 18)},
		}
		got, ok := NextDue(items, today)
		require.True(t, ok)
		assert.Equal(t, 3, got)
	})

	t.Run("ties keep ayah order", func(t *testing.T) {
		items := []RevisionItem{
			{AyahNumber: 2, NextReview: date(2026, 5, 21)},
			{AyahNumber: 5, NextReview: date(2026, 5, 19)},
			{AyahNumber: 7, NextReview: date(2026, 5, 19)},
			{AyahNumber: 9, NextReview: date(2026, 5, 19)},
		}
		got, ok := NextDue(items, today)
		require.True(t, ok)
		assert.Equal(t, 5, got)
	})

	t.Run("never returns a future item", func(t *testing.T) {
		items := make([]RevisionItem, 0, 40)
		for i := 1; i <= 40; i++ {
			items = append(items, RevisionItem{AyahNumber: i, NextReview: today.AddDays(20 - i)})
		}
		got, ok := NextDue(items, today)
		require.True(t, ok)
		item := FindAyah(items, got)
		require.NotNil(t, item)
		assert.False(t, item.NextReview.After(today))
		assert.Equal(t, 40, got)
	})
}
