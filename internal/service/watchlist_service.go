package service

import (
	"context"
	"fmt"

	"github.com/2dawng/CorsairStream-BE/internal/domain"
	"github.com/2dawng/CorsairStream-BE/internal/repository"
)

// watchlistService implements WatchlistService interface
type watchlistService struct {
	watchlistRepo repository.WatchlistRepository
}

// NewWatchlistService creates a new watchlist service
func NewWatchlistService(watchlistRepo repository.WatchlistRepository) WatchlistService {
	return &watchlistService{watchlistRepo: watchlistRepo}
}

// Add puts a movie on the user's watchlist
func (s *watchlistService) Add(ctx context.Context, userID int64, contentID string) (*domain.WatchlistItem, error) {
	item := &domain.WatchlistItem{
		UserID:    userID,
		ContentID: contentID,
	}

	if err := s.watchlistRepo.Create(ctx, item); err != nil {
		return nil, err
	}

	return item, nil
}

// List returns all watchlist items for the user
func (s *watchlistService) List(ctx context.Context, userID int64) ([]*domain.WatchlistItem, error) {
	return s.watchlistRepo.ListByUser(ctx, userID)
}

// GetOwned looks up a watchlist item by id and checks ownership. A missing
// row fails with ErrNotFound; a row belonging to another user fails with
// ErrForbidden. Items are keyed by a standalone id, so unlike watch history
// the two cases are distinguishable here.
func (s *watchlistService) GetOwned(ctx context.Context, id, userID int64) (*domain.WatchlistItem, error) {
	item, err := s.watchlistRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if item.UserID != userID {
		return nil, fmt.Errorf("watchlist item %d: %w", id, ErrForbidden)
	}

	return item, nil
}

// Remove deletes the user's watchlist item for a piece of content
func (s *watchlistService) Remove(ctx context.Context, userID int64, contentID string) error {
	return s.watchlistRepo.DeleteByUserAndContent(ctx, userID, contentID)
}
