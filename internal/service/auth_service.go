package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/2dawng/CorsairStream-BE/internal/domain"
	"github.com/2dawng/CorsairStream-BE/internal/dto"
	"github.com/2dawng/CorsairStream-BE/internal/repository"
	"github.com/2dawng/CorsairStream-BE/internal/utils"
)

// authService implements AuthService interface
type authService struct {
	userRepo   repository.UserRepository
	jwtManager *utils.JWTManager
	bcryptCost int
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repository.UserRepository, jwtManager *utils.JWTManager, bcryptCost int) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtManager: jwtManager,
		bcryptCost: bcryptCost,
	}
}

// Signup registers a new user
func (s *authService) Signup(ctx context.Context, req *dto.SignupRequest) (*dto.SignupResponse, error) {
	email := utils.SanitizeEmail(req.Email)
	if !utils.ValidateEmail(email) {
		return nil, fmt.Errorf("invalid email format")
	}

	// Check if user already exists; nothing is written when the email is taken
	_, err := s.userRepo.GetByEmail(ctx, email)
	if err == nil {
		return nil, ErrEmailRegistered
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to check user existence: %w", err)
	}

	passwordHash, err := utils.HashPassword(req.Password, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Username:     req.Username,
		Email:        email,
		PasswordHash: passwordHash,
		IsActive:     true,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailRegistered
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &dto.SignupResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}, nil
}

// Login authenticates a user by email and password
func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, utils.SanitizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrEmailNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	// An empty password never authenticates. OAuth-only accounts store a
	// digest of the empty string, which would otherwise satisfy the check.
	if req.Password == "" || !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, ErrIncorrectPassword
	}

	return s.IssueTokens(user)
}

// IssueTokens produces a fresh access/refresh token pair for the user.
func (s *authService) IssueTokens(user *domain.User) (*dto.TokenResponse, error) {
	accessToken, err := s.jwtManager.GenerateAccessToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := s.jwtManager.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return &dto.TokenResponse{
		AccessToken:    accessToken,
		RefreshToken:   refreshToken,
		TokenType:      "bearer",
		ID:             user.ID,
		Username:       user.Username,
		Email:          user.Email,
		ProfilePicture: user.ProfilePicture,
	}, nil
}

// Authenticate verifies an access token and loads the subject user.
// Any failure, including an unknown subject, is reported to the caller as a
// single credential error so resource existence never leaks at this boundary.
func (s *authService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	userID, err := s.jwtManager.VerifyToken(token)
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("could not resolve token subject: %w", err)
	}

	return user, nil
}
