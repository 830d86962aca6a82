package handlers

import (
	"tierlist_backend/internal/repository"
	"tierlist_backend/internal/service"
	"tierlist_backend/internal/webhook"
	"tierlist_backend/internal/ws"
)

// Handler carries the shared dependencies for all API handlers. Webhooks and
// Hub may be nil (tests, stripped-down deployments); notifications and live
// updates are then simply skipped.
type Handler struct {
	Store    repository.Store
	Roster   *service.RosterService
	Auth     *service.AuthService
	Stats    *service.StatsService
	Webhooks *webhook.Dispatcher
	Hub      *ws.Hub
}

func NewHandler(store repository.Store, webhooks *webhook.Dispatcher, hub *ws.Hub) *Handler {
	return &Handler{
		Store:    store,
		Roster:   service.NewRosterService(store, store),
		Auth:     service.NewAuthService(store),
		Stats:    service.NewStatsService(store),
		Webhooks: webhooks,
		Hub:      hub,
	}
}

func (h *Handler) broadcast(eventType string, playerID int64) {
	if h.Hub != nil {
		h.Hub.Broadcast(ws.Event{Type: eventType, PlayerID: playerID})
	}
}

func (h *Handler) notify(playerID int64) {
	if h.Webhooks != nil {
		h.Webhooks.Notify(playerID)
	}
}
