package middleware

import (
	"context"
	"errors"
	"net/http"

	"paroquia_connect/internal/model"
	"paroquia_connect/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const (
	SessionCookieName = "paroquia_session"

	AuthUserKey    = "authUser"
	AuthSessionKey = "authSession"
)

// Authenticator resolves a session cookie token to its user
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*model.User, *model.Session, error)
}

// LoadSession attaches the logged-in user to the context when the request
// carries a valid session cookie. Anonymous requests pass through untouched.
func LoadSession(auth Authenticator, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookieName)
		if err != nil || token == "" {
			c.Next()
			return
		}

		user, session, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, service.ErrUnauthenticated) {
				c.Next()
				return
			}
			log.Error().Err(err).Msg("failed to load session")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "erro ao carregar a sessão"})
			return
		}

		c.Set(AuthUserKey, user)
		c.Set(AuthSessionKey, session.ID)
		c.Next()
	}
}

// RequireAuth rejects requests without a logged-in user
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentUser(c); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": service.ErrUnauthenticated.Error()})
			return
		}
		c.Next()
	}
}

// CurrentUser returns the user set by LoadSession
func CurrentUser(c *gin.Context) (*model.User, bool) {
	v, exists := c.Get(AuthUserKey)
	if !exists {
		return nil, false
	}
	user, ok := v.(*model.User)
	return user, ok && user != nil
}

// SessionID returns the id of the current session, or "" for anonymous requests
func SessionID(c *gin.Context) string {
	return c.GetString(AuthSessionKey)
}
