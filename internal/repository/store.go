package repository

import (
	"context"
	"errors"

	"tierlist_backend/internal/domain"
)

// ErrNotFound is returned by lookups that match nothing. Callers decide
// whether that is an error.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned by creates that violate a uniqueness constraint
// (player user_id, admin username). Every backend reports it the same way.
var ErrDuplicate = errors.New("duplicate")

// PlayerStore is the player side of the persistence gateway.
type PlayerStore interface {
	Players(ctx context.Context) ([]domain.Player, error)
	PlayerByID(ctx context.Context, id int64) (*domain.Player, error)
	PlayerByUserID(ctx context.Context, userID string) (*domain.Player, error)
	// CreatePlayer assigns the id and applies defaults for unset optional
	// fields, mutating p in place.
	CreatePlayer(ctx context.Context, p *domain.Player) error
	// UpdatePlayer applies the non-nil fields of u and returns the updated row.
	UpdatePlayer(ctx context.Context, id int64, u domain.PlayerUpdate) (*domain.Player, error)
	// DeletePlayer reports whether a row was actually removed. The player's
	// tiers are removed with it.
	DeletePlayer(ctx context.Context, id int64) (bool, error)
	// SearchPlayers matches usernames by substring, case-insensitive.
	SearchPlayers(ctx context.Context, query string) ([]domain.Player, error)
}

// TierStore is the tier side of the persistence gateway.
type TierStore interface {
	Tiers(ctx context.Context) ([]domain.Tier, error)
	TiersByPlayer(ctx context.Context, playerID int64) ([]domain.Tier, error)
	TiersByCategory(ctx context.Context, c domain.Category) ([]domain.Tier, error)
	TierByPlayerCategory(ctx context.Context, playerID int64, c domain.Category) (*domain.Tier, error)
	// UpsertTier inserts or, when a tier for (player, category) exists,
	// updates it in place. It reports whether a new row was created.
	UpsertTier(ctx context.Context, t *domain.Tier) (bool, error)
	DeleteTier(ctx context.Context, id int64) (bool, error)
}

// AdminStore is the admin side of the persistence gateway.
type AdminStore interface {
	Admins(ctx context.Context) ([]domain.Admin, error)
	AdminByID(ctx context.Context, id int64) (*domain.Admin, error)
	AdminByUsername(ctx context.Context, username string) (*domain.Admin, error)
	CreateAdmin(ctx context.Context, a *domain.Admin) error
}

// SettingStore holds site settings as key/value pairs.
type SettingStore interface {
	Setting(ctx context.Context, key string) (string, error)
	SetSetting(ctx context.Context, key, value string) error
	Settings(ctx context.Context) (map[string]string, error)
}

// Store is the full persistence gateway. Every backend satisfies the same
// contract so handlers never care which one they are talking to.
type Store interface {
	PlayerStore
	TierStore
	AdminStore
	SettingStore

	// Reset wipes players and tiers. Admins and settings survive.
	Reset(ctx context.Context) error
	Ping(ctx context.Context) error
	Close()
}
