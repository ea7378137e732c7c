package repository

import (
	"github.com/2dawng/CorsairStream-BE/pkg/database"
)

// Repositories holds all repository interfaces
type Repositories struct {
	User      UserRepository
	Watchlist WatchlistRepository
	History   WatchHistoryRepository
}

// NewRepositories creates all repositories
func NewRepositories(db *database.Postgres) *Repositories {
	return &Repositories{
		User:      NewUserRepository(db),
		Watchlist: NewWatchlistRepository(db),
		History:   NewWatchHistoryRepository(db),
	}
}
