package repository

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/civil"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/aliskhannn/hifz-revision-bot/internal/domain/entities"
	"github.com/aliskhannn/hifz-revision-bot/internal/infra/postgres"
)

var ErrUserNotFound = errors.New("user not found")

// UserRepository provides access to user data in the database.
type UserRepository struct {
	db postgres.DBTX
}

// NewUserRepository creates a new UserRepository with the provided database pool.
func NewUserRepository(db postgres.DBTX) *UserRepository {
	return &UserRepository{db: db}
}

// Save inserts a new user or refreshes the chat id of an existing one.
// It reports whether the user was created.
func (r *UserRepository) Save(ctx context.Context, user *entities.User) (bool, error) {
	query := `
		INSERT INTO users (id, chat_id, timezone, reminders_enabled, reminder_hour, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			chat_id = EXCLUDED.chat_id
		RETURNING (xmax = 0) AS created
	`

	var created bool
	err := r.db.QueryRow(
		ctx,
		query,
		user.ID,
		user.ChatID,
		user.Timezone,
		user.RemindersEnabled,
		user.ReminderHour,
		user.CreatedAt,
	).Scan(&created)
	if err != nil {
		return false, fmt.Errorf("save user: %w", err)
	}

	return created, nil
}

// GetByID retrieves a user by ID.
func (r *UserRepository) GetByID(ctx context.Context, userID int64) (*entities.User, error) {
	query := `
		SELECT id, chat_id, timezone, reminders_enabled, reminder_hour,
		       last_reminded_on, created_at
		FROM users
		WHERE id = $1
	`

	var (
		user     entities.User
		reminded pgtype.Date
	)
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&user.ID,
		&user.ChatID,
		&user.Timezone,
		&user.RemindersEnabled,
		&user.ReminderHour,
		&reminded,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	user.LastRemindedOn = fromPgDate(reminded)
	return &user, nil
}

// UpdateTimezone stores the user's timezone.
func (r *UserRepository) UpdateTimezone(ctx context.Context, userID int64, timezone string) error {
	tag, err := r.db.Exec(ctx, `UPDATE users SET timezone = $2 WHERE id = $1`, userID, timezone)
	if err != nil {
		return fmt.Errorf("update timezone: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}

	return nil
}

// UpdateReminders toggles the daily reminder and sets its local hour.
func (r *UserRepository) UpdateReminders(ctx context.Context, userID int64, enabled bool, hour int) error {
	query := `
		UPDATE users
		SET reminders_enabled = $2, reminder_hour = $3
		WHERE id = $1
	`

	tag, err := r.db.Exec(ctx, query, userID, enabled, hour)
	if err != nil {
		return fmt.Errorf("update reminders: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}

	return nil
}

func fromPgDate(d pgtype.Date) *civil.Date {
	if !d.Valid {
		return nil
	}
	cd := civil.DateOf(d.Time)
	return &cd
}
