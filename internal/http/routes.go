package http

import (
	"os"
	"strconv"
	"time"

	"tierlist_backend/internal/domain"
	"tierlist_backend/internal/http/handlers"
	"tierlist_backend/internal/http/middleware"
	"tierlist_backend/internal/repository"
	"tierlist_backend/internal/webhook"
	"tierlist_backend/internal/ws"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires the full API surface onto r.
func RegisterRoutes(r *gin.Engine, store repository.Store, dispatcher *webhook.Dispatcher, hub *ws.Hub, version string) {
	h := handlers.NewHandler(store, dispatcher, hub)
	healthHandler := handlers.NewHealthHandler(store, version)

	// read limits from env, with safe defaults
	apiRateLimit := 60
	if v := os.Getenv("API_RATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			apiRateLimit = n
		}
	}
	apiRateWindow := time.Minute
	if v := os.Getenv("API_RATE_WINDOW_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			apiRateWindow = time.Duration(n) * time.Second
		}
	}

	authRateLimit := 5
	if v := os.Getenv("AUTH_RATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			authRateLimit = n
		}
	}
	authRateWindow := time.Minute
	if v := os.Getenv("AUTH_RATE_WINDOW_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			authRateWindow = time.Duration(n) * time.Second
		}
	}

	// Health checks (no rate limiting)
	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)

	api := r.Group("/api")
	api.Use(middleware.RedisRateLimit(apiRateLimit, apiRateWindow))

	// Public reads
	api.GET("/players", h.ListPlayers)
	api.GET("/players/search", h.SearchPlayers)
	api.GET("/players/:id", h.GetPlayer)
	api.GET("/settings", h.GetSettings)
	api.GET("/stats", h.GetStats)

	// Session lifecycle
	api.POST("/login", middleware.RedisRateLimit(authRateLimit, authRateWindow), h.Login)
	api.POST("/logout", h.Logout)

	// Authenticated routes; each mutation declares the one permission it needs
	auth := api.Group("")
	auth.Use(middleware.Session(store))

	auth.GET("/user", h.CurrentUser)

	auth.POST("/players", middleware.RequirePermission(domain.PermManagePlayers), h.UpsertPlayer)
	auth.PUT("/players/:id", middleware.RequirePermission(domain.PermManagePlayers), h.UpdatePlayer)
	auth.DELETE("/players/:id", middleware.RequirePermission(domain.PermDeleteData), h.DeletePlayer)

	auth.POST("/tiers", middleware.RequirePermission(domain.PermManageTiers), h.UpsertTier)
	auth.DELETE("/tiers/:id", middleware.RequirePermission(domain.PermManageTiers), h.DeleteTier)

	auth.GET("/admins", middleware.RequirePermission(domain.PermViewAdmins), h.ListAdmins)
	auth.POST("/admins", middleware.RequirePermission(domain.PermManageAdmins), h.CreateAdmin)

	auth.PUT("/settings", middleware.RequirePermission(domain.PermChangeSettings), h.UpdateSettings)
	auth.POST("/database/reset", middleware.RequirePermission(domain.PermDeleteData), h.ResetDatabase)

	// Live updates
	r.GET("/ws", ws.Handle(hub))
}
