package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/2dawng/CorsairStream-BE/internal/domain"
	"github.com/2dawng/CorsairStream-BE/pkg/database"
	"github.com/lib/pq"
)

// watchlistRepository implements WatchlistRepository interface
type watchlistRepository struct {
	db *database.Postgres
}

// NewWatchlistRepository creates a new watchlist repository
func NewWatchlistRepository(db *database.Postgres) WatchlistRepository {
	return &watchlistRepository{db: db}
}

// Create creates a new watchlist item and fills in the generated id.
func (r *watchlistRepository) Create(ctx context.Context, item *domain.WatchlistItem) error {
	query := `
		INSERT INTO watchlist (user_id, content_id, added_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	if item.AddedAt.IsZero() {
		item.AddedAt = time.Now()
	}

	err := r.db.DB.QueryRowContext(ctx, query,
		item.UserID,
		item.ContentID,
		item.AddedAt,
	).Scan(&item.ID)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23505" { // unique_violation
				return fmt.Errorf("content %s already on watchlist: %w", item.ContentID, ErrDuplicateWatchlistItem)
			}
		}
		return fmt.Errorf("failed to create watchlist item: %w", err)
	}

	return nil
}

// GetByID retrieves a watchlist item by its id regardless of owner.
func (r *watchlistRepository) GetByID(ctx context.Context, id int64) (*domain.WatchlistItem, error) {
	query := `
		SELECT id, user_id, content_id, added_at
		FROM watchlist
		WHERE id = $1
	`

	item := &domain.WatchlistItem{}
	err := r.db.DB.QueryRowContext(ctx, query, id).Scan(
		&item.ID,
		&item.UserID,
		&item.ContentID,
		&item.AddedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("watchlist item %d not found: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get watchlist item: %w", err)
	}

	return item, nil
}

// GetByUserAndContent retrieves a user's watchlist item for a piece of content.
func (r *watchlistRepository) GetByUserAndContent(ctx context.Context, userID int64, contentID string) (*domain.WatchlistItem, error) {
	query := `
		SELECT id, user_id, content_id, added_at
		FROM watchlist
		WHERE user_id = $1 AND content_id = $2
	`

	item := &domain.WatchlistItem{}
	err := r.db.DB.QueryRowContext(ctx, query, userID, contentID).Scan(
		&item.ID,
		&item.UserID,
		&item.ContentID,
		&item.AddedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("watchlist item for content %s not found: %w", contentID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get watchlist item: %w", err)
	}

	return item, nil
}

// ListByUser retrieves all watchlist items for a user.
func (r *watchlistRepository) ListByUser(ctx context.Context, userID int64) ([]*domain.WatchlistItem, error) {
	query := `
		SELECT id, user_id, content_id, added_at
		FROM watchlist
		WHERE user_id = $1
		ORDER BY added_at DESC
	`

	rows, err := r.db.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list watchlist: %w", err)
	}
	defer rows.Close()

	var items []*domain.WatchlistItem
	for rows.Next() {
		item := &domain.WatchlistItem{}
		if err := rows.Scan(&item.ID, &item.UserID, &item.ContentID, &item.AddedAt); err != nil {
			return nil, fmt.Errorf("failed to scan watchlist item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate watchlist: %w", err)
	}

	return items, nil
}

// DeleteByUserAndContent deletes a user's watchlist item for a piece of content.
func (r *watchlistRepository) DeleteByUserAndContent(ctx context.Context, userID int64, contentID string) error {
	query := `
		DELETE FROM watchlist
		WHERE user_id = $1 AND content_id = $2
	`

	result, err := r.db.DB.ExecContext(ctx, query, userID, contentID)
	if err != nil {
		return fmt.Errorf("failed to delete watchlist item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("watchlist item for content %s not found: %w", contentID, ErrNotFound)
	}

	return nil
}
