package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"photofeed/internal/config"
	"photofeed/internal/models"
	"photofeed/internal/repository"
	"photofeed/internal/security"
)

// SessionCookie carries the signed session token; the server keeps no
// session state of its own.
const SessionCookie = "photofeed_session"

const currentUserKey = "current_user"

// Auth gates server-rendered pages: unauthenticated requests are sent to
// the login page.
func Auth(cfg *config.AppConfig, users *repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := resolveUser(c, cfg, users)
		if err != nil {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Set(currentUserKey, user)
		c.Next()
	}
}

// AuthJSON gates the JSON endpoints: unauthenticated requests get a 401
// body instead of a redirect.
func AuthJSON(cfg *config.AppConfig, users *repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := resolveUser(c, cfg, users)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Set(currentUserKey, user)
		c.Next()
	}
}

func resolveUser(c *gin.Context, cfg *config.AppConfig, users *repository.UserRepository) (models.User, error) {
	token, err := c.Cookie(SessionCookie)
	if err != nil || token == "" {
		return models.User{}, errors.New("no session")
	}

	claims, err := security.ParseSessionToken(token, cfg.Security.SessionSecret)
	if err != nil {
		return models.User{}, err
	}

	// The user row is re-read on every request so deleted or re-roled
	// accounts take effect without waiting for cookie expiry.
	user, err := users.GetByID(c.Request.Context(), claims.UserID)
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

// CurrentUser returns the authenticated user placed by Auth or AuthJSON.
func CurrentUser(c *gin.Context) (models.User, bool) {
	val, exists := c.Get(currentUserKey)
	if !exists {
		return models.User{}, false
	}
	user, ok := val.(models.User)
	return user, ok
}

// SessionActive reports whether the request carries a parseable session,
// without touching the store. Used by the root redirect.
func SessionActive(c *gin.Context, cfg *config.AppConfig) bool {
	token, err := c.Cookie(SessionCookie)
	if err != nil || token == "" {
		return false
	}
	_, err = security.ParseSessionToken(token, cfg.Security.SessionSecret)
	return err == nil
}
