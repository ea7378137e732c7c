package dto

import "time"

// SignupRequest represents a signup request
type SignupRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// SignupResponse represents a signup response
type SignupResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// TokenResponse is the bundle returned by login and refresh.
type TokenResponse struct {
	AccessToken    string  `json:"access_token"`
	RefreshToken   string  `json:"refresh_token"`
	TokenType      string  `json:"token_type"`
	ID             int64   `json:"id"`
	Username       string  `json:"username"`
	Email          string  `json:"email"`
	ProfilePicture *string `json:"profile_picture"`
}

// UserSummary is the user payload embedded in the OAuth callback redirect.
type UserSummary struct {
	ID             int64   `json:"id"`
	Username       string  `json:"username"`
	Email          string  `json:"email"`
	ProfilePicture *string `json:"profile_picture"`
}

// AuthURLResponse carries the provider authorization URL back to the caller.
type AuthURLResponse struct {
	AuthURL string `json:"auth_url"`
}

// WatchlistCreateRequest represents a request to add a movie to the watchlist
type WatchlistCreateRequest struct {
	ContentID string `json:"content_id" binding:"required"`
}

// WatchlistResponse represents a watchlist item response
type WatchlistResponse struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	ContentID string    `json:"content_id"`
	AddedAt   time.Time `json:"added_at"`
}

// HistoryCreateRequest represents a request to record a watch history entry
type HistoryCreateRequest struct {
	ContentID string `json:"content_id" binding:"required"`
	Completed bool   `json:"completed"`
}

// HistoryResponse represents a watch history entry response
type HistoryResponse struct {
	UserID    int64     `json:"user_id"`
	ContentID string    `json:"content_id"`
	WatchedAt time.Time `json:"watched_at"`
	Completed bool      `json:"completed"`
}

// SuccessResponse represents a success response
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string      `json:"error"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}
