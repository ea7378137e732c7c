package handler

import (
	"net/http"
	"strings"

	"github.com/2dawng/CorsairStream-BE/internal/domain"
	"github.com/2dawng/CorsairStream-BE/internal/dto"
	"github.com/2dawng/CorsairStream-BE/internal/service"
	"github.com/gin-gonic/gin"
)

const userContextKey = "current_user"

// AuthMiddleware resolves the session for a request. It extracts the bearer
// token from the Authorization header, verifies it and loads the subject user,
// making it available to the handler for the duration of this request only.
// Every failure mode is a 401: a token whose subject no longer exists must not
// be distinguishable from an invalid one.
func AuthMiddleware(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			unauthorized(c, "Authorization header is required")
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			unauthorized(c, "Invalid authorization header format")
			return
		}

		user, err := authService.Authenticate(c.Request.Context(), parts[1])
		if err != nil {
			unauthorized(c, "Could not validate credentials")
			return
		}

		c.Set(userContextKey, user)
		c.Next()
	}
}

// CurrentUser returns the user resolved by AuthMiddleware, or nil when the
// request did not pass through it.
func CurrentUser(c *gin.Context) *domain.User {
	v, ok := c.Get(userContextKey)
	if !ok {
		return nil
	}
	user, _ := v.(*domain.User)
	return user
}

func unauthorized(c *gin.Context, message string) {
	c.Header("WWW-Authenticate", "Bearer")
	c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
		Error:   "Unauthorized",
		Message: message,
	})
	c.Abort()
}
