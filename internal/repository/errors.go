package repository

import "errors"

// Common repository errors
var (
	// ErrNotFound is returned when a record is not found
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateEmail is returned when trying to create a user with an existing email
	ErrDuplicateEmail = errors.New("user with this email already exists")

	// ErrDuplicateWatchlistItem is returned when a movie is already on the user's watchlist
	ErrDuplicateWatchlistItem = errors.New("movie already in watchlist")
)
