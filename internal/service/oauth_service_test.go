package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/2dawng/CorsairStream-BE/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// fakeProvider stands in for Google's token and userinfo endpoints.
type fakeProvider struct {
	server *httptest.Server

	tokenStatus    int
	tokenBody      string
	userInfoStatus int
	userInfoBody   string

	tokenCalls    int
	userInfoCalls int
	lastAuthz     string
}

func newFakeProvider(t *testing.T) *fakeProvider {
	t.Helper()

	p := &fakeProvider{
		tokenStatus:    http.StatusOK,
		tokenBody:      `{"access_token":"provider-access-token","token_type":"Bearer","expires_in":3600}`,
		userInfoStatus: http.StatusOK,
		userInfoBody:   `{"email":"alice@example.com","name":"Alice Liddell","picture":"https://cdn.example.com/alice.png"}`,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		p.tokenCalls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(p.tokenStatus)
		w.Write([]byte(p.tokenBody))
	})
	mux.HandleFunc("/userinfo", func(w http.ResponseWriter, r *http.Request) {
		p.userInfoCalls++
		p.lastAuthz = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(p.userInfoStatus)
		w.Write([]byte(p.userInfoBody))
	})

	p.server = httptest.NewServer(mux)
	t.Cleanup(p.server.Close)

	return p
}

func (p *fakeProvider) config() config.GoogleConfig {
	return config.GoogleConfig{
		ClientID:     "test-client-id",
		ClientSecret: "test-client-secret",
		RedirectURI:  "http://localhost:8080/api/auth/oauth2/callback",
		AuthURL:      p.server.URL + "/auth",
		TokenURL:     p.server.URL + "/token",
		UserInfoURL:  p.server.URL + "/userinfo",
		Timeout:      config.Duration{},
	}
}

func newTestOAuthService(t *testing.T, p *fakeProvider, repo *fakeUserRepo) OAuthService {
	t.Helper()

	auth := newTestAuthService(repo)
	return NewGoogleOAuthService(p.config(), repo, auth, bcrypt.MinCost, zap.NewNop())
}

func TestGoogleOAuthService_AuthURL(t *testing.T) {
	p := newFakeProvider(t)
	svc := newTestOAuthService(t, p, newFakeUserRepo())

	rawURL, err := svc.AuthURL()
	require.NoError(t, err)

	parsed, err := url.Parse(rawURL)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(rawURL, p.server.URL+"/auth"))

	query := parsed.Query()
	assert.Equal(t, "test-client-id", query.Get("client_id"))
	assert.Equal(t, "code", query.Get("response_type"))
	assert.Equal(t, "offline", query.Get("access_type"))
	assert.Equal(t, "consent", query.Get("prompt"))
	assert.Equal(t, "true", query.Get("include_granted_scopes"))
	assert.Contains(t, query.Get("scope"), "email")
	assert.NotEmpty(t, query.Get("state"))
}

func TestGoogleOAuthService_AuthURLStateIsFresh(t *testing.T) {
	p := newFakeProvider(t)
	svc := newTestOAuthService(t, p, newFakeUserRepo())

	first, err := svc.AuthURL()
	require.NoError(t, err)
	second, err := svc.AuthURL()
	require.NoError(t, err)

	firstState := mustQueryParam(t, first, "state")
	secondState := mustQueryParam(t, second, "state")
	assert.NotEqual(t, firstState, secondState)
}

func mustQueryParam(t *testing.T, rawURL, key string) string {
	t.Helper()
	parsed, err := url.Parse(rawURL)
	require.NoError(t, err)
	value := parsed.Query().Get(key)
	require.NotEmpty(t, value)
	return value
}

func TestGoogleOAuthService_AuthURLNotConfigured(t *testing.T) {
	p := newFakeProvider(t)
	cfg := p.config()
	cfg.ClientID = ""

	repo := newFakeUserRepo()
	svc := NewGoogleOAuthService(cfg, repo, newTestAuthService(repo), bcrypt.MinCost, zap.NewNop())

	_, err := svc.AuthURL()
	assert.ErrorIs(t, err, ErrOAuthNotConfigured)

	_, err = svc.HandleCallback(context.Background(), "any-code")
	assert.ErrorIs(t, err, ErrOAuthNotConfigured)
}

func TestGoogleOAuthService_HandleCallbackProvisionsUser(t *testing.T) {
	p := newFakeProvider(t)
	repo := newFakeUserRepo()
	svc := newTestOAuthService(t, p, repo)

	resp, err := svc.HandleCallback(context.Background(), "auth-code")
	require.NoError(t, err)

	assert.Equal(t, 1, p.tokenCalls)
	assert.Equal(t, 1, p.userInfoCalls)
	assert.Equal(t, "Bearer provider-access-token", p.lastAuthz)

	assert.Equal(t, "bearer", resp.TokenType)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "Alice Liddell", resp.Username)
	assert.Equal(t, "alice@example.com", resp.Email)
	require.NotNil(t, resp.ProfilePicture)
	assert.Equal(t, "https://cdn.example.com/alice.png", *resp.ProfilePicture)

	user, err := repo.GetByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.True(t, user.IsActive)
	// The sentinel hash is a valid bcrypt digest but the password login path
	// rejects empty submissions, so the account stays OAuth-only.
	assert.NotEmpty(t, user.PasswordHash)
}

func TestGoogleOAuthService_HandleCallbackReusesUser(t *testing.T) {
	p := newFakeProvider(t)
	repo := newFakeUserRepo()
	svc := newTestOAuthService(t, p, repo)

	_, err := svc.HandleCallback(context.Background(), "first-code")
	require.NoError(t, err)

	// The profile changed upstream; the stored record is reused untouched.
	p.userInfoBody = `{"email":"alice@example.com","name":"Renamed","picture":"https://cdn.example.com/new.png"}`

	resp, err := svc.HandleCallback(context.Background(), "second-code")
	require.NoError(t, err)
	assert.Equal(t, "Alice Liddell", resp.Username)
	require.NotNil(t, resp.ProfilePicture)
	assert.Equal(t, "https://cdn.example.com/alice.png", *resp.ProfilePicture)

	assert.Len(t, repo.users, 1)
}

func TestGoogleOAuthService_HandleCallbackUsernameFallback(t *testing.T) {
	p := newFakeProvider(t)
	p.userInfoBody = `{"email":"bob@example.com"}`

	repo := newFakeUserRepo()
	svc := newTestOAuthService(t, p, repo)

	resp, err := svc.HandleCallback(context.Background(), "auth-code")
	require.NoError(t, err)
	assert.Equal(t, "bob", resp.Username)
	assert.Nil(t, resp.ProfilePicture)
}

func TestGoogleOAuthService_HandleCallbackExchangeFails(t *testing.T) {
	p := newFakeProvider(t)
	p.tokenStatus = http.StatusBadRequest
	p.tokenBody = `{"error":"invalid_grant","error_description":"Code was already redeemed."}`

	repo := newFakeUserRepo()
	svc := newTestOAuthService(t, p, repo)

	_, err := svc.HandleCallback(context.Background(), "redeemed-code")
	require.Error(t, err)

	var upstream *UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, "exchange code", upstream.Op)
	// The provider's response body is carried through verbatim.
	assert.Contains(t, upstream.Detail, "invalid_grant")

	assert.Equal(t, 0, p.userInfoCalls)
	assert.Empty(t, repo.users)
}

func TestGoogleOAuthService_HandleCallbackUserInfoFails(t *testing.T) {
	p := newFakeProvider(t)
	p.userInfoStatus = http.StatusUnauthorized
	p.userInfoBody = `{"error":"invalid_token"}`

	repo := newFakeUserRepo()
	svc := newTestOAuthService(t, p, repo)

	_, err := svc.HandleCallback(context.Background(), "auth-code")
	require.Error(t, err)

	var upstream *UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, "fetch user info", upstream.Op)
	assert.Contains(t, upstream.Detail, "invalid_token")
	assert.Empty(t, repo.users)
}

func TestGoogleOAuthService_HandleCallbackMissingEmail(t *testing.T) {
	p := newFakeProvider(t)
	p.userInfoBody = `{"name":"No Email"}`

	repo := newFakeUserRepo()
	svc := newTestOAuthService(t, p, repo)

	_, err := svc.HandleCallback(context.Background(), "auth-code")
	assert.ErrorIs(t, err, ErrMissingEmail)
	assert.Empty(t, repo.users)
}
