package middleware

import (
	"net/http"
	"strings"

	"jobboard-backend/internal/delivery/http/response"
	"jobboard-backend/internal/domain"
	"jobboard-backend/pkg/auth"
	"jobboard-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

// TokenVerifier checks a bearer token and returns its claims.
type TokenVerifier interface {
	Verify(token string) (auth.Claims, error)
}

func bearerToken(c *gin.Context) string {
	// 1. Try to get token from Header
	if h := c.GetHeader("Authorization"); h != "" {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	// 2. Try to get token from Cookie
	if cookie, err := c.Cookie("auth_token"); err == nil {
		return cookie
	}
	return ""
}

// authenticate verifies the token and stores the subject and email.
func authenticate(c *gin.Context, verifier TokenVerifier) bool {
	token := bearerToken(c)
	if token == "" {
		response.Error(c, http.StatusUnauthorized, "Authorization header or auth_token cookie required", nil)
		c.Abort()
		return false
	}

	claims, err := verifier.Verify(token)
	if err != nil {
		logger.Log.Debug("Token validation failed", "error", err, "path", c.FullPath())
		response.Error(c, http.StatusUnauthorized, "Invalid token", nil)
		c.Abort()
		return false
	}

	c.Set(string(domain.KeyUserID), claims.Subject)
	c.Set(string(domain.KeyUserEmail), claims.Email)
	return true
}

// TokenMiddleware only verifies the token. It guards /auth/sync, which runs
// before a local user exists.
func TokenMiddleware(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if authenticate(c, verifier) {
			c.Next()
		}
	}
}

// AuthMiddleware verifies the token and loads the local user. The role comes
// from the users table, never from token claims.
func AuthMiddleware(verifier TokenVerifier, authUC domain.AuthUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !authenticate(c, verifier) {
			return
		}

		user, err := authUC.GetCurrentUser(c.Request.Context(), c.GetString(string(domain.KeyUserID)))
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "User not found, sync your account first", nil)
			c.Abort()
			return
		}
		if user.IsDisabled {
			response.Error(c, http.StatusForbidden, "Account is disabled", nil)
			c.Abort()
			return
		}

		c.Set(string(domain.KeyUserRole), user.Role)
		c.Next()
	}
}

// OptionalAuthMiddleware identifies the caller on public routes when a valid
// token is sent. Missing or bad tokens leave the request anonymous.
func OptionalAuthMiddleware(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := bearerToken(c); token != "" {
			if claims, err := verifier.Verify(token); err == nil {
				c.Set(string(domain.KeyUserID), claims.Subject)
			}
		}
		c.Next()
	}
}

// RequireRole lets only the listed roles through.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(string(domain.KeyUserRole))
		for _, r := range roles {
			if r == role {
				c.Next()
				return
			}
		}
		response.Error(c, http.StatusForbidden, "You do not have access to this resource", nil)
		c.Abort()
	}
}
