package repository

import (
	"context"

	"github.com/2dawng/CorsairStream-BE/internal/domain"
)

// UserRepository defines methods for user operations
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// WatchlistRepository defines methods for watchlist operations
type WatchlistRepository interface {
	Create(ctx context.Context, item *domain.WatchlistItem) error
	GetByID(ctx context.Context, id int64) (*domain.WatchlistItem, error)
	GetByUserAndContent(ctx context.Context, userID int64, contentID string) (*domain.WatchlistItem, error)
	ListByUser(ctx context.Context, userID int64) ([]*domain.WatchlistItem, error)
	DeleteByUserAndContent(ctx context.Context, userID int64, contentID string) error
}

// WatchHistoryRepository defines methods for watch history operations.
// Entries are addressed by their (user_id, content_id) composite key.
type WatchHistoryRepository interface {
	Upsert(ctx context.Context, entry *domain.WatchHistoryEntry) error
	Get(ctx context.Context, userID int64, contentID string) (*domain.WatchHistoryEntry, error)
	ListByUser(ctx context.Context, userID int64) ([]*domain.WatchHistoryEntry, error)
	UpdateCompleted(ctx context.Context, userID int64, contentID string, completed bool) error
	Delete(ctx context.Context, userID int64, contentID string) error
}
