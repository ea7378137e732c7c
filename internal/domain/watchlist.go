package domain

import "time"

// WatchlistItem represents a movie saved to a user's watchlist.
// Rows carry their own id, so an item can exist yet belong to another user.
type WatchlistItem struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"user_id" db:"user_id"`
	ContentID string    `json:"content_id" db:"content_id"`
	AddedAt   time.Time `json:"added_at" db:"added_at"`
}
