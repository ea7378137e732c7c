package service

import (
	"context"

	"github.com/2dawng/CorsairStream-BE/internal/domain"
	"github.com/2dawng/CorsairStream-BE/internal/repository"
)

// watchHistoryService implements WatchHistoryService interface.
// History rows are keyed by (user_id, content_id), so every lookup already
// embeds the requesting user; a row under another user is simply not found.
type watchHistoryService struct {
	historyRepo repository.WatchHistoryRepository
}

// NewWatchHistoryService creates a new watch history service
func NewWatchHistoryService(historyRepo repository.WatchHistoryRepository) WatchHistoryService {
	return &watchHistoryService{historyRepo: historyRepo}
}

// Record inserts a history entry, or refreshes watched_at and replaces the
// completed flag when the user already has one for this content.
func (s *watchHistoryService) Record(ctx context.Context, userID int64, contentID string, completed bool) (*domain.WatchHistoryEntry, error) {
	entry := &domain.WatchHistoryEntry{
		UserID:    userID,
		ContentID: contentID,
		Completed: completed,
	}

	if err := s.historyRepo.Upsert(ctx, entry); err != nil {
		return nil, err
	}

	return entry, nil
}

// List returns all history entries for the user
func (s *watchHistoryService) List(ctx context.Context, userID int64) ([]*domain.WatchHistoryEntry, error) {
	return s.historyRepo.ListByUser(ctx, userID)
}

// Get returns the user's history entry for a piece of content
func (s *watchHistoryService) Get(ctx context.Context, userID int64, contentID string) (*domain.WatchHistoryEntry, error) {
	return s.historyRepo.Get(ctx, userID, contentID)
}

// SetCompleted updates the completed flag of the user's history entry
func (s *watchHistoryService) SetCompleted(ctx context.Context, userID int64, contentID string, completed bool) (*domain.WatchHistoryEntry, error) {
	if err := s.historyRepo.UpdateCompleted(ctx, userID, contentID, completed); err != nil {
		return nil, err
	}
	return s.historyRepo.Get(ctx, userID, contentID)
}

// Remove deletes the user's history entry for a piece of content
func (s *watchHistoryService) Remove(ctx context.Context, userID int64, contentID string) error {
	return s.historyRepo.Delete(ctx, userID, contentID)
}
