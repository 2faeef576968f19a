package repository

import (
	"context"
	"database/sql"
	"time"
)

// HistoryEntry represents one recorded generation outcome
type HistoryEntry struct {
	ID           int
	Prompt       string
	Style        string
	Status       string
	ImageURL     string
	ErrorMessage string
	CreatedAt    time.Time
}

// HistoryRepository defines the interface for generation history access
type HistoryRepository interface {
	Save(ctx context.Context, entry HistoryEntry) error
	Recent(ctx context.Context, limit int) ([]HistoryEntry, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// PostgresHistoryRepository implements HistoryRepository for PostgreSQL
type PostgresHistoryRepository struct {
	db *sql.DB
}

// NewPostgresHistoryRepository creates a new PostgreSQL history repository
func NewPostgresHistoryRepository(db *sql.DB) *PostgresHistoryRepository {
	return &PostgresHistoryRepository{db: db}
}

// Save inserts a generation outcome
func (r *PostgresHistoryRepository) Save(ctx context.Context, entry HistoryEntry) error {
	query := `
		INSERT INTO wallpaper_history (prompt, style, status, image_url, error_message, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.ExecContext(ctx, query,
		entry.Prompt,
		entry.Style,
		entry.Status,
		entry.ImageURL,
		entry.ErrorMessage,
		time.Now(),
	)
	return err
}

// Recent retrieves the latest generation outcomes, newest first
func (r *PostgresHistoryRepository) Recent(ctx context.Context, limit int) ([]HistoryEntry, error) {
	query := `
		SELECT id, prompt, style, status, image_url, error_message, created_at
		FROM wallpaper_history
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []HistoryEntry
	for rows.Next() {
		var entry HistoryEntry
		if err := rows.Scan(
			&entry.ID,
			&entry.Prompt,
			&entry.Style,
			&entry.Status,
			&entry.ImageURL,
			&entry.ErrorMessage,
			&entry.CreatedAt,
		); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

// DeleteOlderThan removes entries created before the cutoff
func (r *PostgresHistoryRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `
		DELETE FROM wallpaper_history
		WHERE created_at < $1
	`

	res, err := r.db.ExecContext(ctx, query, cutoff)
	if err != nil {
		return 0, err
	}

	return res.RowsAffected()
}
