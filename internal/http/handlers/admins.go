package handlers

import (
	"errors"
	"net/http"

	"tierlist_backend/internal/domain"
	"tierlist_backend/internal/logger"
	"tierlist_backend/internal/service"

	"github.com/gin-gonic/gin"
)

// ListAdmins returns every admin account. Password hashes are excluded by
// the domain type's json tags.
// GET /api/admins (view_admins)
func (h *Handler) ListAdmins(c *gin.Context) {
	admins, err := h.Store.Admins(c.Request.Context())
	if err != nil {
		logger.Error("failed to list admins", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list admins"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"admins": admins})
}

type createAdminRequest struct {
	Username          string `json:"username" binding:"required"`
	Password          string `json:"password" binding:"required,min=8"`
	IsSuperAdmin      bool   `json:"is_super_admin"`
	CanManagePlayers  bool   `json:"can_manage_players"`
	CanManageTiers    bool   `json:"can_manage_tiers"`
	CanManageAdmins   bool   `json:"can_manage_admins"`
	CanDeleteData     bool   `json:"can_delete_data"`
	CanViewAdmins     bool   `json:"can_view_admins"`
	CanManageDatabase bool   `json:"can_manage_database"`
	CanChangeSettings bool   `json:"can_change_settings"`
}

// CreateAdmin creates a new admin account.
// POST /api/admins (manage_admins)
func (h *Handler) CreateAdmin(c *gin.Context) {
	var req createAdminRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	admin := domain.Admin{
		Username:          req.Username,
		IsSuperAdmin:      req.IsSuperAdmin,
		CanManagePlayers:  req.CanManagePlayers,
		CanManageTiers:    req.CanManageTiers,
		CanManageAdmins:   req.CanManageAdmins,
		CanDeleteData:     req.CanDeleteData,
		CanViewAdmins:     req.CanViewAdmins,
		CanManageDatabase: req.CanManageDatabase,
		CanChangeSettings: req.CanChangeSettings,
	}

	err := h.Auth.CreateAdmin(c.Request.Context(), &admin, req.Password)
	if errors.Is(err, service.ErrUsernameTaken) {
		c.JSON(http.StatusConflict, gin.H{"error": "username already taken", "field": "username"})
		return
	}
	if err != nil {
		logger.Error("admin create failed", "username", req.Username, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create admin"})
		return
	}

	c.JSON(http.StatusCreated, admin)
}
