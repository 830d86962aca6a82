package repository

import (
	"context"

	"tierlist_backend/internal/domain"
	"tierlist_backend/internal/logger"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

// Gateway is the store handed to the rest of the application. The backing
// store initializes asynchronously; every call blocks until that finishes,
// so callers never see the indirection. If postgres cannot be reached the
// gateway falls back to the volatile in-memory store seeded with the default
// super-admin — availability over durability, for non-critical deployments.
type Gateway struct {
	ready   chan struct{}
	backend Store
}

// SeedAdmin describes the super-admin created when the store has none.
type SeedAdmin struct {
	Username string
	Password string
}

// Open starts backend initialization and returns immediately. An empty dsn
// skips postgres and goes straight to the in-memory store.
func Open(ctx context.Context, dsn string, seed SeedAdmin) *Gateway {
	g := &Gateway{ready: make(chan struct{})}

	go func() {
		defer close(g.ready)
		g.backend = openBackend(ctx, dsn)
		if err := ensureDefaultAdmin(ctx, g.backend, seed); err != nil {
			logger.Error("failed to seed default admin", "error", err)
		}
	}()

	return g
}

func openBackend(ctx context.Context, dsn string) Store {
	if dsn == "" {
		logger.Warn("no DATABASE_URL, using volatile in-memory store")
		return NewMemory()
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err == nil {
		err = pool.Ping(ctx)
	}
	if err != nil {
		logger.Error("postgres unavailable, falling back to in-memory store", "error", err)
		return NewMemory()
	}

	logger.Info("database connected")
	return NewPostgres(pool)
}

func ensureDefaultAdmin(ctx context.Context, s Store, seed SeedAdmin) error {
	if seed.Username == "" {
		return nil
	}
	if _, err := s.AdminByUsername(ctx, seed.Username); err == nil {
		return nil
	} else if err != ErrNotFound {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(seed.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	logger.Info("seeding default super-admin", "username", seed.Username)
	err = s.CreateAdmin(ctx, &domain.Admin{
		Username:     seed.Username,
		PasswordHash: string(hash),
		IsSuperAdmin: true,
	})
	if err == ErrDuplicate {
		// another instance seeded it first
		return nil
	}
	return err
}

// WrapReady returns a gateway over an already-initialized store. Used by
// tests and the CLI commands.
func WrapReady(s Store) *Gateway {
	g := &Gateway{ready: make(chan struct{}), backend: s}
	close(g.ready)
	return g
}

func (g *Gateway) store(ctx context.Context) (Store, error) {
	select {
	case <-g.ready:
		return g.backend, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (g *Gateway) Players(ctx context.Context) ([]domain.Player, error) {
	s, err := g.store(ctx)
	if err != nil {
		return nil, err
	}
	return s.Players(ctx)
}

func (g *Gateway) PlayerByID(ctx context.Context, id int64) (*domain.Player, error) {
	s, err := g.store(ctx)
	if err != nil {
		return nil, err
	}
	return s.PlayerByID(ctx, id)
}

func (g *Gateway) PlayerByUserID(ctx context.Context, userID string) (*domain.Player, error) {
	s, err := g.store(ctx)
	if err != nil {
		return nil, err
	}
	return s.PlayerByUserID(ctx, userID)
}

func (g *Gateway) CreatePlayer(ctx context.Context, p *domain.Player) error {
	s, err := g.store(ctx)
	if err != nil {
		return err
	}
	return s.CreatePlayer(ctx, p)
}

func (g *Gateway) UpdatePlayer(ctx context.Context, id int64, u domain.PlayerUpdate) (*domain.Player, error) {
	s, err := g.store(ctx)
	if err != nil {
		return nil, err
	}
	return s.UpdatePlayer(ctx, id, u)
}

func (g *Gateway) DeletePlayer(ctx context.Context, id int64) (bool, error) {
	s, err := g.store(ctx)
	if err != nil {
		return false, err
	}
	return s.DeletePlayer(ctx, id)
}

func (g *Gateway) SearchPlayers(ctx context.Context, query string) ([]domain.Player, error) {
	s, err := g.store(ctx)
	if err != nil {
		return nil, err
	}
	return s.SearchPlayers(ctx, query)
}

func (g *Gateway) Tiers(ctx context.Context) ([]domain.Tier, error) {
	s, err := g.store(ctx)
	if err != nil {
		return nil, err
	}
	return s.Tiers(ctx)
}

func (g *Gateway) TiersByPlayer(ctx context.Context, playerID int64) ([]domain.Tier, error) {
	s, err := g.store(ctx)
	if err != nil {
		return nil, err
	}
	return s.TiersByPlayer(ctx, playerID)
}

func (g *Gateway) TiersByCategory(ctx context.Context, c domain.Category) ([]domain.Tier, error) {
	s, err := g.store(ctx)
	if err != nil {
		return nil, err
	}
	return s.TiersByCategory(ctx, c)
}

func (g *Gateway) TierByPlayerCategory(ctx context.Context, playerID int64, c domain.Category) (*domain.Tier, error) {
	s, err := g.store(ctx)
	if err != nil {
		return nil, err
	}
	return s.TierByPlayerCategory(ctx, playerID, c)
}

func (g *Gateway) UpsertTier(ctx context.Context, t *domain.Tier) (bool, error) {
	s, err := g.store(ctx)
	if err != nil {
		return false, err
	}
	return s.UpsertTier(ctx, t)
}

func (g *Gateway) DeleteTier(ctx context.Context, id int64) (bool, error) {
	s, err := g.store(ctx)
	if err != nil {
		return false, err
	}
	return s.DeleteTier(ctx, id)
}

func (g *Gateway) Admins(ctx context.Context) ([]domain.Admin, error) {
	s, err := g.store(ctx)
	if err != nil {
		return nil, err
	}
	return s.Admins(ctx)
}

func (g *Gateway) AdminByID(ctx context.Context, id int64) (*domain.Admin, error) {
	s, err := g.store(ctx)
	if err != nil {
		return nil, err
	}
	return s.AdminByID(ctx, id)
}

func (g *Gateway) AdminByUsername(ctx context.Context, username string) (*domain.Admin, error) {
	s, err := g.store(ctx)
	if err != nil {
		return nil, err
	}
	return s.AdminByUsername(ctx, username)
}

func (g *Gateway) CreateAdmin(ctx context.Context, a *domain.Admin) error {
	s, err := g.store(ctx)
	if err != nil {
		return err
	}
	return s.CreateAdmin(ctx, a)
}

func (g *Gateway) Setting(ctx context.Context, key string) (string, error) {
	s, err := g.store(ctx)
	if err != nil {
		return "", err
	}
	return s.Setting(ctx, key)
}

func (g *Gateway) SetSetting(ctx context.Context, key, value string) error {
	s, err := g.store(ctx)
	if err != nil {
		return err
	}
	return s.SetSetting(ctx, key, value)
}

func (g *Gateway) Settings(ctx context.Context) (map[string]string, error) {
	s, err := g.store(ctx)
	if err != nil {
		return nil, err
	}
	return s.Settings(ctx)
}

func (g *Gateway) Reset(ctx context.Context) error {
	s, err := g.store(ctx)
	if err != nil {
		return err
	}
	return s.Reset(ctx)
}

func (g *Gateway) Ping(ctx context.Context) error {
	s, err := g.store(ctx)
	if err != nil {
		return err
	}
	return s.Ping(ctx)
}

func (g *Gateway) Close() {
	<-g.ready
	if g.backend != nil {
		g.backend.Close()
	}
}
