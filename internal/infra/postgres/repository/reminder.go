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

// ReminderRepository reads and updates the reminder state kept on users.
type ReminderRepository struct {
	db postgres.DBTX
}

// NewRemindersRepository creates a new ReminderRepository with the provided database pool.
func NewRemindersRepository(db postgres.DBTX) *ReminderRepository {
	return &ReminderRepository{db: db}
}

// ListReminderTargets pages through users with reminders enabled.
func (r *ReminderRepository) ListReminderTargets(ctx context.Context, limit, offset int) ([]*entities.ReminderTarget, error) {
	query := `
		SELECT id, chat_id, timezone, reminder_hour, last_reminded_on
		FROM users
		WHERE reminders_enabled
		ORDER BY id
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list reminder targets: %w", err)
	}
	defer rows.Close()

	targets := make([]*entities.ReminderTarget, 0, limit)
	for rows.Next() {
		var (
			t        entities.ReminderTarget
			reminded pgtype.Date
		)
		if err := rows.Scan(&t.UserID, &t.ChatID, &t.Timezone, &t.ReminderHour, &reminded); err != nil {
			return nil, fmt.Errorf("scan reminder target: %w", err)
		}
		t.LastRemindedOn = fromPgDate(reminded)
		targets = append(targets, &t)
	}

	return targets, rows.Err()
}

// MarkReminded records the local date on which the user was last reminded.
func (r *ReminderRepository) MarkReminded(ctx context.Context, userID int64, day civil.Date) error {
	_, err := r.db.Exec(ctx, `UPDATE users SET last_reminded_on = $2 WHERE id = $1`, userID, day.In(time.UTC))
	if err != nil {
		return fmt.Errorf("mark reminded: %w", err)
	}

	return nil
}
