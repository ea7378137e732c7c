package domain

import "time"

// WatchHistoryEntry records that a user watched a piece of content.
// Keyed by (user_id, content_id), so a lookup under the wrong user is
// indistinguishable from a missing row.
type WatchHistoryEntry struct {
	UserID    int64     `json:"user_id" db:"user_id"`
	ContentID string    `json:"content_id" db:"content_id"`
	WatchedAt time.Time `json:"watched_at" db:"watched_at"`
	Completed bool      `json:"completed" db:"completed"`
}
