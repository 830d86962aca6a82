package handlers

import (
	"errors"
	"net/http"

	"tierlist_backend/internal/http/middleware"
	"tierlist_backend/internal/logger"
	"tierlist_backend/internal/service"

	"github.com/gin-gonic/gin"
)

const sessionMaxAge = 24 * 60 * 60 // matches the token TTL

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login verifies credentials and starts a session. The token is set as an
// httpOnly cookie and also returned in the body for non-browser clients.
// POST /api/login
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	admin, token, err := h.Auth.Login(c.Request.Context(), req.Username, req.Password)
	if errors.Is(err, service.ErrBadCredentials) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid username or password"})
		return
	}
	if err != nil {
		logger.Error("login failed", "username", req.Username, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, token, sessionMaxAge, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"admin": admin,
	})
}

// Logout ends the session by expiring the cookie.
// POST /api/logout
func (h *Handler) Logout(c *gin.Context) {
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// CurrentUser returns the authenticated admin, without the password hash.
// GET /api/user
func (h *Handler) CurrentUser(c *gin.Context) {
	admin, ok := middleware.AdminFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}
	c.JSON(http.StatusOK, admin)
}
