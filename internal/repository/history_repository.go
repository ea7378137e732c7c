package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/2dawng/CorsairStream-BE/internal/domain"
	"github.com/2dawng/CorsairStream-BE/pkg/database"
)

// watchHistoryRepository implements WatchHistoryRepository interface
type watchHistoryRepository struct {
	db *database.Postgres
}

// NewWatchHistoryRepository creates a new watch history repository
func NewWatchHistoryRepository(db *database.Postgres) WatchHistoryRepository {
	return &watchHistoryRepository{db: db}
}

// Upsert inserts a history entry or, if the (user, content) row already
// exists, refreshes watched_at and replaces the completed flag.
func (r *watchHistoryRepository) Upsert(ctx context.Context, entry *domain.WatchHistoryEntry) error {
	query := `
		INSERT INTO watch_history (user_id, content_id, watched_at, completed)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, content_id)
		DO UPDATE SET watched_at = EXCLUDED.watched_at, completed = EXCLUDED.completed
		RETURNING watched_at
	`

	if entry.WatchedAt.IsZero() {
		entry.WatchedAt = time.Now()
	}

	err := r.db.DB.QueryRowContext(ctx, query,
		entry.UserID,
		entry.ContentID,
		entry.WatchedAt,
		entry.Completed,
	).Scan(&entry.WatchedAt)

	if err != nil {
		return fmt.Errorf("failed to upsert watch history: %w", err)
	}

	return nil
}

// Get retrieves a history entry by its composite key.
func (r *watchHistoryRepository) Get(ctx context.Context, userID int64, contentID string) (*domain.WatchHistoryEntry, error) {
	query := `
		SELECT user_id, content_id, watched_at, completed
		FROM watch_history
		WHERE user_id = $1 AND content_id = $2
	`

	entry := &domain.WatchHistoryEntry{}
	err := r.db.DB.QueryRowContext(ctx, query, userID, contentID).Scan(
		&entry.UserID,
		&entry.ContentID,
		&entry.WatchedAt,
		&entry.Completed,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("watch history for content %s not found: %w", contentID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get watch history: %w", err)
	}

	return entry, nil
}

// ListByUser retrieves all history entries for a user.
func (r *watchHistoryRepository) ListByUser(ctx context.Context, userID int64) ([]*domain.WatchHistoryEntry, error) {
	query := `
		SELECT user_id, content_id, watched_at, completed
		FROM watch_history
		WHERE user_id = $1
		ORDER BY watched_at DESC
	`

	rows, err := r.db.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list watch history: %w", err)
	}
	defer rows.Close()

	var entries []*domain.WatchHistoryEntry
	for rows.Next() {
		entry := &domain.WatchHistoryEntry{}
		if err := rows.Scan(&entry.UserID, &entry.ContentID, &entry.WatchedAt, &entry.Completed); err != nil {
			return nil, fmt.Errorf("failed to scan watch history entry: %w", err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate watch history: %w", err)
	}

	return entries, nil
}

// UpdateCompleted updates the completed flag of a history entry.
func (r *watchHistoryRepository) UpdateCompleted(ctx context.Context, userID int64, contentID string, completed bool) error {
	query := `
		UPDATE watch_history
		SET completed = $3
		WHERE user_id = $1 AND content_id = $2
	`

	result, err := r.db.DB.ExecContext(ctx, query, userID, contentID, completed)
	if err != nil {
		return fmt.Errorf("failed to update watch history: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("watch history for content %s not found: %w", contentID, ErrNotFound)
	}

	return nil
}

// Delete removes a history entry by its composite key.
func (r *watchHistoryRepository) Delete(ctx context.Context, userID int64, contentID string) error {
	query := `
		DELETE FROM watch_history
		WHERE user_id = $1 AND content_id = $2
	`

	result, err := r.db.DB.ExecContext(ctx, query, userID, contentID)
	if err != nil {
		return fmt.Errorf("failed to delete watch history: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("watch history for content %s not found: %w", contentID, ErrNotFound)
	}

	return nil
}
