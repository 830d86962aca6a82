package middleware

import (
	"errors"
	"net/http"
	"strings"

	"tierlist_backend/internal/domain"
	"tierlist_backend/internal/logger"
	"tierlist_backend/internal/repository"
	"tierlist_backend/internal/service"

	"github.com/gin-gonic/gin"
)

const adminKey = "admin"

// SessionCookie is the cookie carrying the signed session token.
const SessionCookie = "session"

// Session authenticates the request from the session cookie (or an
// Authorization: Bearer header) and loads the admin fresh from the store.
// Loading fresh — not caching on the token — means a permission revocation
// takes effect on the admin's next request.
func Session(admins repository.AdminStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := sessionToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
			return
		}

		adminID, err := service.ParseSessionToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
			return
		}

		admin, err := admins.AdminByID(c.Request.Context(), adminID)
		if errors.Is(err, repository.ErrNotFound) {
			// deleted admins lose access immediately
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
			return
		}
		if err != nil {
			logger.Error("session admin lookup failed", "admin_id", adminID, "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.Set(adminKey, admin)
		c.Next()
	}
}

func sessionToken(c *gin.Context) string {
	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie != "" {
		return cookie
	}
	auth := c.GetHeader("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}

// RequirePermission rejects admins that lack the given permission. Must run
// after Session.
func RequirePermission(p domain.Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		admin, ok := AdminFrom(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
			return
		}
		if !admin.Has(p) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "not authorized"})
			return
		}
		c.Next()
	}
}

// AdminFrom returns the authenticated admin stashed by Session.
func AdminFrom(c *gin.Context) (*domain.Admin, bool) {
	v, ok := c.Get(adminKey)
	if !ok {
		return nil, false
	}
	admin, ok := v.(*domain.Admin)
	return admin, ok
}
