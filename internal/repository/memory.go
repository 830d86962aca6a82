package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"tierlist_backend/internal/domain"
)

// Memory is a volatile Store used as the fallback when postgres is
// unavailable, and by tests. Everything lives in process memory and is lost
// on restart.
type Memory struct {
	mu       sync.RWMutex
	players  map[int64]domain.Player
	tiers    map[int64]domain.Tier
	admins   map[int64]domain.Admin
	settings map[string]string

	nextPlayerID int64
	nextTierID   int64
	nextAdminID  int64
}

func NewMemory() *Memory {
	return &Memory{
		players:  make(map[int64]domain.Player),
		tiers:    make(map[int64]domain.Tier),
		admins:   make(map[int64]domain.Admin),
		settings: make(map[string]string),
	}
}

func (s *Memory) Players(ctx context.Context) ([]domain.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	res := make([]domain.Player, 0, len(s.players))
	for _, p := range s.players {
		res = append(res, p)
	}
	sort.Slice(res, func(i, j int) bool {
		if res[i].Points != res[j].Points {
			return res[i].Points > res[j].Points
		}
		return res[i].ID < res[j].ID
	})
	return res, nil
}

func (s *Memory) PlayerByID(ctx context.Context, id int64) (*domain.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.players[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (s *Memory) PlayerByUserID(ctx context.Context, userID string) (*domain.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.players {
		if p.UserID == userID {
			cp := p
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (s *Memory) CreatePlayer(ctx context.Context, p *domain.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// same contract as the UNIQUE constraint in postgres
	for _, existing := range s.players {
		if existing.UserID == p.UserID {
			return ErrDuplicate
		}
	}

	if p.CombatTitle == "" {
		p.CombatTitle = domain.DefaultCombatTitle
	}
	if p.Bounty == "" {
		p.Bounty = domain.DefaultBounty
	}

	s.nextPlayerID++
	p.ID = s.nextPlayerID
	p.CreatedAt = time.Now()
	s.players[p.ID] = *p
	return nil
}

func (s *Memory) UpdatePlayer(ctx context.Context, id int64, u domain.PlayerUpdate) (*domain.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.players[id]
	if !ok {
		return nil, ErrNotFound
	}

	if u.Username != nil {
		p.Username = *u.Username
	}
	if u.Avatar != nil {
		p.Avatar = *u.Avatar
	}
	if u.CombatTitle != nil {
		p.CombatTitle = *u.CombatTitle
	}
	if u.Points != nil {
		p.Points = *u.Points
	}
	if u.Bounty != nil {
		p.Bounty = *u.Bounty
	}
	if u.Region != nil {
		p.Region = *u.Region
	}
	if u.WebhookURL != nil {
		p.WebhookURL = *u.WebhookURL
	}

	s.players[id] = p
	return &p, nil
}

func (s *Memory) DeletePlayer(ctx context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.players[id]; !ok {
		return false, nil
	}
	delete(s.players, id)

	// cascade, same contract as the FK in postgres
	for tid, t := range s.tiers {
		if t.PlayerID == id {
			delete(s.tiers, tid)
		}
	}
	return true, nil
}

func (s *Memory) SearchPlayers(ctx context.Context, query string) ([]domain.Player, error) {
	all, _ := s.Players(ctx)
	q := strings.ToLower(query)

	res := make([]domain.Player, 0)
	for _, p := range all {
		if strings.Contains(strings.ToLower(p.Username), q) {
			res = append(res, p)
		}
	}
	return res, nil
}

func (s *Memory) sortedTiers(filter func(domain.Tier) bool) []domain.Tier {
	var res []domain.Tier
	for _, t := range s.tiers {
		if filter(t) {
			res = append(res, t)
		}
	}
	sort.Slice(res, func(i, j int) bool {
		if res[i].PlayerID != res[j].PlayerID {
			return res[i].PlayerID < res[j].PlayerID
		}
		return res[i].Category < res[j].Category
	})
	return res
}

func (s *Memory) Tiers(ctx context.Context) ([]domain.Tier, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sortedTiers(func(domain.Tier) bool { return true }), nil
}

func (s *Memory) TiersByPlayer(ctx context.Context, playerID int64) ([]domain.Tier, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sortedTiers(func(t domain.Tier) bool { return t.PlayerID == playerID }), nil
}

func (s *Memory) TiersByCategory(ctx context.Context, c domain.Category) ([]domain.Tier, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sortedTiers(func(t domain.Tier) bool { return t.Category == c }), nil
}

func (s *Memory) TierByPlayerCategory(ctx context.Context, playerID int64, c domain.Category) (*domain.Tier, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, t := range s.tiers {
		if t.PlayerID == playerID && t.Category == c {
			cp := t
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (s *Memory) UpsertTier(ctx context.Context, t *domain.Tier) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, existing := range s.tiers {
		if existing.PlayerID == t.PlayerID && existing.Category == t.Category {
			t.ID = id
			t.UpdatedAt = time.Now()
			s.tiers[id] = *t
			return false, nil
		}
	}

	s.nextTierID++
	t.ID = s.nextTierID
	t.UpdatedAt = time.Now()
	s.tiers[t.ID] = *t
	return true, nil
}

func (s *Memory) DeleteTier(ctx context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tiers[id]; !ok {
		return false, nil
	}
	delete(s.tiers, id)
	return true, nil
}

func (s *Memory) Admins(ctx context.Context) ([]domain.Admin, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	res := make([]domain.Admin, 0, len(s.admins))
	for _, a := range s.admins {
		res = append(res, a)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ID < res[j].ID })
	return res, nil
}

func (s *Memory) AdminByID(ctx context.Context, id int64) (*domain.Admin, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.admins[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &a, nil
}

func (s *Memory) AdminByUsername(ctx context.Context, username string) (*domain.Admin, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, a := range s.admins {
		if a.Username == username {
			cp := a
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (s *Memory) CreateAdmin(ctx context.Context, a *domain.Admin) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.admins {
		if existing.Username == a.Username {
			return ErrDuplicate
		}
	}

	s.nextAdminID++
	a.ID = s.nextAdminID
	a.CreatedAt = time.Now()
	s.admins[a.ID] = *a
	return nil
}

func (s *Memory) Setting(ctx context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.settings[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (s *Memory) SetSetting(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings[key] = value
	return nil
}

func (s *Memory) Settings(ctx context.Context) (map[string]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	res := make(map[string]string, len(s.settings))
	for k, v := range s.settings {
		res[k] = v
	}
	return res, nil
}

func (s *Memory) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.players = make(map[int64]domain.Player)
	s.tiers = make(map[int64]domain.Tier)
	return nil
}

func (s *Memory) Ping(ctx context.Context) error { return nil }

func (s *Memory) Close() {}
