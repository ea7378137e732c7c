package service

import (
	"context"

	"github.com/2dawng/CorsairStream-BE/internal/domain"
	"github.com/2dawng/CorsairStream-BE/internal/dto"
)

// AuthService defines methods for credential and session operations
type AuthService interface {
	Signup(ctx context.Context, req *dto.SignupRequest) (*dto.SignupResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	IssueTokens(user *domain.User) (*dto.TokenResponse, error)
	Authenticate(ctx context.Context, token string) (*domain.User, error)
}

// OAuthService drives the external authorization-code flow
type OAuthService interface {
	AuthURL() (string, error)
	HandleCallback(ctx context.Context, code string) (*dto.TokenResponse, error)
}

// WatchlistService defines methods for watchlist operations
type WatchlistService interface {
	Add(ctx context.Context, userID int64, contentID string) (*domain.WatchlistItem, error)
	List(ctx context.Context, userID int64) ([]*domain.WatchlistItem, error)
	GetOwned(ctx context.Context, id, userID int64) (*domain.WatchlistItem, error)
	Remove(ctx context.Context, userID int64, contentID string) error
}

// WatchHistoryService defines methods for watch history operations
type WatchHistoryService interface {
	Record(ctx context.Context, userID int64, contentID string, completed bool) (*domain.WatchHistoryEntry, error)
	List(ctx context.Context, userID int64) ([]*domain.WatchHistoryEntry, error)
	Get(ctx context.Context, userID int64, contentID string) (*domain.WatchHistoryEntry, error)
	SetCompleted(ctx context.Context, userID int64, contentID string, completed bool) (*domain.WatchHistoryEntry, error)
	Remove(ctx context.Context, userID int64, contentID string) error
}
