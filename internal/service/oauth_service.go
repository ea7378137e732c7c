package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/2dawng/CorsairStream-BE/internal/config"
	"github.com/2dawng/CorsairStream-BE/internal/domain"
	"github.com/2dawng/CorsairStream-BE/internal/dto"
	"github.com/2dawng/CorsairStream-BE/internal/repository"
	"github.com/2dawng/CorsairStream-BE/internal/utils"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

// googleOAuthService implements OAuthService for Google's authorization-code
// flow. Both outbound calls (code exchange, profile fetch) run sequentially
// within the callback and share a bounded-timeout HTTP client.
type googleOAuthService struct {
	oauth       *oauth2.Config
	clientID    string
	userInfoURL string
	client      *http.Client
	userRepo    repository.UserRepository
	auth        AuthService
	bcryptCost  int
	logger      *zap.Logger
}

// NewGoogleOAuthService creates a new Google OAuth service
func NewGoogleOAuthService(
	cfg config.GoogleConfig,
	userRepo repository.UserRepository,
	auth AuthService,
	bcryptCost int,
	logger *zap.Logger,
) OAuthService {
	return &googleOAuthService{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURI,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint: oauth2.Endpoint{
				AuthURL:  cfg.AuthURL,
				TokenURL: cfg.TokenURL,
			},
		},
		clientID:    cfg.ClientID,
		userInfoURL: cfg.UserInfoURL,
		client:      &http.Client{Timeout: cfg.Timeout.Duration},
		userRepo:    userRepo,
		auth:        auth,
		bcryptCost:  bcryptCost,
		logger:      logger,
	}
}

// AuthURL builds the provider authorization URL. The URL is returned to the
// caller as data; the browser redirect happens client-side.
func (s *googleOAuthService) AuthURL() (string, error) {
	if s.clientID == "" {
		return "", ErrOAuthNotConfigured
	}

	return s.oauth.AuthCodeURL(
		uuid.New().String(),
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
		oauth2.SetAuthURLParam("include_granted_scopes", "true"),
	), nil
}

// HandleCallback exchanges the authorization code, fetches the Google profile,
// provisions or reuses the local user and issues a token pair.
func (s *googleOAuthService) HandleCallback(ctx context.Context, code string) (*dto.TokenResponse, error) {
	if s.clientID == "" {
		return nil, ErrOAuthNotConfigured
	}

	providerToken, err := s.exchangeCode(ctx, code)
	if err != nil {
		return nil, err
	}

	profile, err := s.fetchUserInfo(ctx, providerToken)
	if err != nil {
		return nil, err
	}

	if profile.Email == "" {
		return nil, ErrMissingEmail
	}

	user, err := s.resolveUser(ctx, profile)
	if err != nil {
		return nil, err
	}

	return s.auth.IssueTokens(user)
}

func (s *googleOAuthService) exchangeCode(ctx context.Context, code string) (*oauth2.Token, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, s.client)

	token, err := s.oauth.Exchange(ctx, code)
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) {
			return nil, &UpstreamError{Op: "exchange code", Detail: string(retrieveErr.Body)}
		}
		return nil, &UpstreamError{Op: "exchange code", Detail: err.Error()}
	}

	return token, nil
}

type googleProfile struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

func (s *googleOAuthService) fetchUserInfo(ctx context.Context, token *oauth2.Token) (*googleProfile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.userInfoURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build user info request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token.AccessToken)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &UpstreamError{Op: "fetch user info", Detail: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read user info response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &UpstreamError{Op: "fetch user info", Detail: string(body)}
	}

	profile := &googleProfile{}
	if err := json.Unmarshal(body, profile); err != nil {
		return nil, fmt.Errorf("failed to decode user info: %w", err)
	}

	return profile, nil
}

// resolveUser looks up an account by the provider email, provisioning one on
// first login. A repeat login reuses the stored record untouched, so the
// username and picture keep whatever was saved at first provisioning.
func (s *googleOAuthService) resolveUser(ctx context.Context, profile *googleProfile) (*domain.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, profile.Email)
	if err == nil {
		s.logger.Info("Found existing user for Google login",
			zap.Int64("user_id", user.ID),
			zap.String("email", user.Email),
		)
		return user, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	username := profile.Name
	if username == "" {
		username = utils.EmailLocalPart(profile.Email)
	}

	// OAuth-only accounts carry a sentinel digest of the empty string; the
	// login path rejects empty submitted passwords so it is never satisfiable.
	sentinelHash, err := utils.HashPassword("", s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash sentinel password: %w", err)
	}

	user = &domain.User{
		Username:     username,
		Email:        profile.Email,
		PasswordHash: sentinelHash,
		IsActive:     true,
	}
	if profile.Picture != "" {
		user.ProfilePicture = &profile.Picture
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to provision user: %w", err)
	}

	s.logger.Info("Provisioned user from Google profile",
		zap.Int64("user_id", user.ID),
		zap.String("email", user.Email),
	)

	return user, nil
}
