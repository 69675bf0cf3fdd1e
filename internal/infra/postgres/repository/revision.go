package repository

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/civil"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/aliskhannn/hifz-revision-bot/internal/domain/entities"
	"github.com/aliskhannn/hifz-revision-bot/internal/infra/postgres"
)

// RevisionRepository stores ayah review schedules.
type RevisionRepository struct {
	db postgres.DBTX
}

// NewRevisionRepository creates a new RevisionRepository with the provided database pool.
func NewRevisionRepository(db postgres.DBTX) *RevisionRepository {
	return &RevisionRepository{db: db}
}

// LoadSchedule returns the user's items for one surah ordered by ayah number.
func (r *RevisionRepository) LoadSchedule(ctx context.Context, userID int64, surahID int) ([]entities.RevisionItem, error) {
	query := `
		SELECT user_id, surah_id, ayah_number, interval_days, ease_factor,
		       last_reviewed, next_review
		FROM revision_items
		WHERE user_id = $1 AND surah_id = $2
		ORDER BY ayah_number
	`

	rows, err := r.db.Query(ctx, query, userID, surahID)
	if err != nil {
		return nil, fmt.Errorf("load schedule: %w", err)
	}
	defer rows.Close()

	var items []entities.RevisionItem
	for rows.Next() {
		var (
			it           entities.RevisionItem
			lastReviewed pgtype.Date
			nextReview   time.Time
		)
		err = rows.Scan(
			&it.UserID,
			&it.SurahID,
			&it.AyahNumber,
			&it.IntervalDays,
			&it.EaseFactor,
			&lastReviewed,
			&nextReview,
		)
		if err != nil {
			return nil, fmt.Errorf("scan revision item: %w", err)
		}

		if lastReviewed.Valid {
			d := civil.DateOf(lastReviewed.Time)
			it.LastReviewed = &d
		}
		it.NextReview = civil.DateOf(nextReview)
		items = append(items, it)
	}

	return items, rows.Err()
}

// UpsertRevisionItem creates or overwrites the item keyed by (user, surah, ayah).
func (r *RevisionRepository) UpsertRevisionItem(ctx context.Context, item entities.RevisionItem) error {
	query := `
		INSERT INTO revision_items (
			user_id, surah_id, ayah_number, interval_days, ease_factor,
			last_reviewed, next_review, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		ON CONFLICT (user_id, surah_id, ayah_number) DO UPDATE SET
			interval_days = EXCLUDED.interval_days,
			ease_factor = EXCLUDED.ease_factor,
			last_reviewed = EXCLUDED.last_reviewed,
			next_review = EXCLUDED.next_review,
			updated_at = EXCLUDED.updated_at
	`

	_, err := r.db.Exec(
		ctx,
		query,
		item.UserID,
		item.SurahID,
		item.AyahNumber,
		item.IntervalDays,
		item.EaseFactor,
		toPgDate(item.LastReviewed),
		item.NextReview.In(time.UTC),
	)
	if err != nil {
		return fmt.Errorf("upsert revision item: %w", err)
	}

	return nil
}

// DueOverview counts, per surah, the items due on or before today.
func (r *RevisionRepository) DueOverview(ctx context.Context, userID int64, today civil.Date) ([]entities.SurahDue, error) {
	query := `
		SELECT surah_id,
		       COUNT(*) AS due,
		       COUNT(*) FILTER (WHERE next_review < $2) AS overdue
		FROM revision_items
		WHERE user_id = $1 AND next_review <= $2
		GROUP BY surah_id
		ORDER BY surah_id
	`

	rows, err := r.db.Query(ctx, query, userID, today.In(time.UTC))
	if err != nil {
		return nil, fmt.Errorf("due overview: %w", err)
	}
	defer rows.Close()

	var res []entities.SurahDue
	for rows.Next() {
		var d entities.SurahDue
		if err := rows.Scan(&d.SurahID, &d.Due, &d.Overdue); err != nil {
			return nil, fmt.Errorf("scan due overview: %w", err)
		}
		res = append(res, d)
	}

	return res, rows.Err()
}

func toPgDate(d *civil.Date) pgtype.Date {
	if d == nil {
		return pgtype.Date{}
	}
	return pgtype.Date{Time: d.In(time.UTC), Valid: true}
}
