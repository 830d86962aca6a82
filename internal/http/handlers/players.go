package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"tierlist_backend/internal/domain"
	"tierlist_backend/internal/logger"
	"tierlist_backend/internal/repository"
	"tierlist_backend/internal/webhook"

	"github.com/gin-gonic/gin"
)

// ListPlayers returns the roster, optionally filtered by category.
// GET /api/players?category=melee
func (h *Handler) ListPlayers(c *gin.Context) {
	category := domain.Category(c.Query("category"))
	if category != "" && category != domain.CategoryOverall && !category.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown category", "field": "category"})
		return
	}

	roster, err := h.Roster.Roster(c.Request.Context(), category)
	if err != nil {
		logger.Error("failed to build roster", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load players"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"players": roster})
}

// SearchPlayers matches usernames by substring, case-insensitive.
// GET /api/players/search?q=luffy
func (h *Handler) SearchPlayers(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "q is required", "field": "q"})
		return
	}

	players, err := h.Store.SearchPlayers(c.Request.Context(), q)
	if err != nil {
		logger.Error("player search failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "search failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"players": players})
}

// GetPlayer returns a single player with tiers and rank.
// GET /api/players/:id
func (h *Handler) GetPlayer(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id", "field": "id"})
		return
	}

	player, err := h.Roster.PlayerWithTiers(c.Request.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "player not found"})
		return
	}
	if err != nil {
		logger.Error("failed to load player", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load player"})
		return
	}

	c.JSON(http.StatusOK, player)
}

type upsertPlayerRequest struct {
	UserID      string `json:"user_id" binding:"required"`
	Username    string `json:"username" binding:"required"`
	Avatar      string `json:"avatar"`
	CombatTitle string `json:"combat_title"`
	Points      *int   `json:"points"`
	Bounty      string `json:"bounty"`
	Region      string `json:"region"`
	WebhookURL  string `json:"webhook_url"`
}

// UpsertPlayer creates a player, or updates the existing one with the same
// external user_id. 201 on create, 200 on update.
// POST /api/players (manage_players)
func (h *Handler) UpsertPlayer(c *gin.Context) {
	var req upsertPlayerRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	if req.Bounty != "" && !domain.ValidBounty(req.Bounty) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed bounty", "field": "bounty"})
		return
	}
	if req.WebhookURL != "" && !webhook.ValidURL(req.WebhookURL) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported webhook url", "field": "webhook_url"})
		return
	}

	ctx := c.Request.Context()

	existing, err := h.Store.PlayerByUserID(ctx, req.UserID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		logger.Error("player lookup failed", "user_id", req.UserID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save player"})
		return
	}

	if existing != nil {
		update := domain.PlayerUpdate{
			Username: &req.Username,
			Points:   req.Points,
		}
		if req.Avatar != "" {
			update.Avatar = &req.Avatar
		}
		if req.CombatTitle != "" {
			update.CombatTitle = &req.CombatTitle
		}
		if req.Bounty != "" {
			update.Bounty = &req.Bounty
		}
		if req.Region != "" {
			update.Region = &req.Region
		}
		if req.WebhookURL != "" {
			update.WebhookURL = &req.WebhookURL
		}

		updated, err := h.Store.UpdatePlayer(ctx, existing.ID, update)
		if err != nil {
			logger.Error("player update failed", "id", existing.ID, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save player"})
			return
		}

		h.broadcast("player_updated", updated.ID)
		c.JSON(http.StatusOK, updated)
		return
	}

	player := domain.Player{
		UserID:      req.UserID,
		Username:    req.Username,
		Avatar:      req.Avatar,
		CombatTitle: req.CombatTitle,
		Bounty:      req.Bounty,
		Region:      req.Region,
		WebhookURL:  req.WebhookURL,
	}
	if req.Points != nil {
		player.Points = *req.Points
	}

	if err := h.Store.CreatePlayer(ctx, &player); err != nil {
		// a concurrent create for the same user_id won the race
		if errors.Is(err, repository.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"error": "player already exists", "field": "user_id"})
			return
		}
		logger.Error("player create failed", "user_id", req.UserID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save player"})
		return
	}

	h.broadcast("player_updated", player.ID)
	c.JSON(http.StatusCreated, player)
}

// UpdatePlayer partially updates a player; absent fields keep their values.
// PUT /api/players/:id (manage_players)
func (h *Handler) UpdatePlayer(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id", "field": "id"})
		return
	}

	var update domain.PlayerUpdate
	if err := c.BindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	if update.Bounty != nil && !domain.ValidBounty(*update.Bounty) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed bounty", "field": "bounty"})
		return
	}
	if update.WebhookURL != nil && *update.WebhookURL != "" && !webhook.ValidURL(*update.WebhookURL) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported webhook url", "field": "webhook_url"})
		return
	}

	player, err := h.Store.UpdatePlayer(c.Request.Context(), id, update)
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "player not found"})
		return
	}
	if err != nil {
		logger.Error("player update failed", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save player"})
		return
	}

	h.broadcast("player_updated", player.ID)
	c.JSON(http.StatusOK, player)
}

// DeletePlayer removes a player and all of their tiers.
// DELETE /api/players/:id (delete_data)
func (h *Handler) DeletePlayer(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id", "field": "id"})
		return
	}

	deleted, err := h.Store.DeletePlayer(c.Request.Context(), id)
	if err != nil {
		logger.Error("player delete failed", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete player"})
		return
	}

	if deleted {
		h.broadcast("player_deleted", id)
	}
	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}
