package utils

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token verification errors.
var (
	ErrTokenExpired     = errors.New("token is expired")
	ErrInvalidSignature = errors.New("token signature is invalid")
	ErrMalformedClaims  = errors.New("token claims are malformed")
)

// JWTManager issues and verifies HMAC-SHA256 signed tokens.
// Tokens are stateless: validity is determined solely by signature and expiry,
// so an issued token stays valid until it naturally expires.
type JWTManager struct {
	secret             []byte
	accessTokenExpiry  time.Duration
	refreshTokenExpiry time.Duration
}

// NewJWTManager creates a new JWT manager.
func NewJWTManager(secret string, accessTokenExpiry, refreshTokenExpiry time.Duration) *JWTManager {
	return &JWTManager{
		secret:             []byte(secret),
		accessTokenExpiry:  accessTokenExpiry,
		refreshTokenExpiry: refreshTokenExpiry,
	}
}

// GenerateAccessToken generates a short-lived access token for the user.
func (j *JWTManager) GenerateAccessToken(userID int64) (string, error) {
	return j.sign(userID, j.accessTokenExpiry)
}

// GenerateRefreshToken generates a long-lived refresh token for the user.
// Same claim shape as an access token, only the lifetime differs.
func (j *JWTManager) GenerateRefreshToken(userID int64) (string, error) {
	return j.sign(userID, j.refreshTokenExpiry)
}

func (j *JWTManager) sign(userID int64, expiry time.Duration) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(userID, 10),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiry)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(j.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// VerifyToken verifies a token's signature and expiry and returns the subject
// user ID. Failures are reported as ErrTokenExpired, ErrInvalidSignature or
// ErrMalformedClaims.
func (j *JWTManager) VerifyToken(tokenString string) (int64, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return j.secret, nil
		},
		jwt.WithExpirationRequired(),
	)

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return 0, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return 0, ErrInvalidSignature
		default:
			return 0, fmt.Errorf("%w: %v", ErrMalformedClaims, err)
		}
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return 0, ErrMalformedClaims
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid subject %q", ErrMalformedClaims, claims.Subject)
	}

	return userID, nil
}

// GetAccessTokenExpiry returns the access token lifetime in seconds.
func (j *JWTManager) GetAccessTokenExpiry() int {
	return int(j.accessTokenExpiry.Seconds())
}
