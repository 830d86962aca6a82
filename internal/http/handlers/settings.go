package handlers

import (
	"net/http"

	"tierlist_backend/internal/logger"

	"github.com/gin-gonic/gin"
)

// GetSettings returns all site settings.
// GET /api/settings
func (h *Handler) GetSettings(c *gin.Context) {
	settings, err := h.Store.Settings(c.Request.Context())
	if err != nil {
		logger.Error("failed to load settings", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load settings"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

// UpdateSettings upserts the given key/value pairs.
// PUT /api/settings (change_settings)
func (h *Handler) UpdateSettings(c *gin.Context) {
	var req map[string]string
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}
	if len(req) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no settings provided"})
		return
	}

	ctx := c.Request.Context()
	for k, v := range req {
		if err := h.Store.SetSetting(ctx, k, v); err != nil {
			logger.Error("failed to save setting", "key", k, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save settings"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// GetStats returns site statistics.
// GET /api/stats
func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.Stats.GetStats(c.Request.Context())
	if err != nil {
		logger.Error("failed to compute stats", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute stats"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// ResetDatabase wipes all players and tiers. Admins and settings survive.
// POST /api/database/reset (delete_data)
func (h *Handler) ResetDatabase(c *gin.Context) {
	if err := h.Store.Reset(c.Request.Context()); err != nil {
		logger.Error("database reset failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "reset failed"})
		return
	}

	h.broadcast("player_deleted", 0)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
