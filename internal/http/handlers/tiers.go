package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"tierlist_backend/internal/domain"
	"tierlist_backend/internal/logger"
	"tierlist_backend/internal/repository"

	"github.com/gin-gonic/gin"
)

type upsertTierRequest struct {
	PlayerID int64  `json:"player_id" binding:"required"`
	Category string `json:"category" binding:"required"`
	Grade    string `json:"grade" binding:"required"`
}

// UpsertTier creates or updates the tier for a (player, category) pair.
// 201 when a new tier was created, 200 when an existing one was updated.
// A successful write schedules a webhook notification for the player.
// POST /api/tiers (manage_tiers)
func (h *Handler) UpsertTier(c *gin.Context) {
	var req upsertTierRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	category := domain.Category(req.Category)
	if !category.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown category", "field": "category"})
		return
	}
	grade := domain.Grade(req.Grade)
	if !grade.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown grade", "field": "grade"})
		return
	}

	ctx := c.Request.Context()

	if _, err := h.Store.PlayerByID(ctx, req.PlayerID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "player not found"})
			return
		}
		logger.Error("player lookup failed", "id", req.PlayerID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save tier"})
		return
	}

	tier := domain.Tier{
		PlayerID: req.PlayerID,
		Category: category,
		Grade:    grade,
	}

	created, err := h.Store.UpsertTier(ctx, &tier)
	if err != nil {
		logger.Error("tier upsert failed", "player_id", req.PlayerID, "category", category, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save tier"})
		return
	}

	h.notify(req.PlayerID)
	h.broadcast("tier_updated", req.PlayerID)

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, tier)
}

// DeleteTier removes a single tier by id.
// DELETE /api/tiers/:id (manage_tiers)
func (h *Handler) DeleteTier(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id", "field": "id"})
		return
	}

	deleted, err := h.Store.DeleteTier(c.Request.Context(), id)
	if err != nil {
		logger.Error("tier delete failed", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete tier"})
		return
	}

	if deleted {
		h.broadcast("tier_deleted", 0)
	}
	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}
