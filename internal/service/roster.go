package service

import (
	"context"
	"sort"

	"tierlist_backend/internal/domain"
	"tierlist_backend/internal/repository"
)

// RosterService builds the composite player+tiers view.
type RosterService struct {
	players repository.PlayerStore
	tiers   repository.TierStore
}

func NewRosterService(players repository.PlayerStore, tiers repository.TierStore) *RosterService {
	return &RosterService{players: players, tiers: tiers}
}

// Roster returns every player paired with their tiers, sorted by points
// descending, with competition ranks filled in.
//
// An empty or "overall" category attaches all tiers and keeps every player,
// including those with none. A specific category attaches only matching
// tiers and drops players that have no tier in it.
func (s *RosterService) Roster(ctx context.Context, category domain.Category) ([]domain.PlayerWithTiers, error) {
	players, err := s.players.Players(ctx)
	if err != nil {
		return nil, err
	}

	filtered := category != "" && category != domain.CategoryOverall

	var tiers []domain.Tier
	if filtered {
		tiers, err = s.tiers.TiersByCategory(ctx, category)
	} else {
		tiers, err = s.tiers.Tiers(ctx)
	}
	if err != nil {
		return nil, err
	}

	byPlayer := make(map[int64][]domain.Tier, len(players))
	for _, t := range tiers {
		byPlayer[t.PlayerID] = append(byPlayer[t.PlayerID], t)
	}

	res := make([]domain.PlayerWithTiers, 0, len(players))
	for _, p := range players {
		pt := byPlayer[p.ID]
		if filtered && len(pt) == 0 {
			continue
		}
		if pt == nil {
			pt = []domain.Tier{}
		}
		sort.Slice(pt, func(i, j int) bool {
			return categoryIndex(pt[i].Category) < categoryIndex(pt[j].Category)
		})
		res = append(res, domain.PlayerWithTiers{Player: p, Tiers: pt})
	}

	sort.SliceStable(res, func(i, j int) bool {
		return res[i].Points > res[j].Points
	})

	// rank is computed against the list being displayed
	listed := make([]domain.Player, len(res))
	for i, pw := range res {
		listed[i] = pw.Player
	}
	for i := range res {
		res[i].Rank = Rank(res[i].Player, listed)
	}

	return res, nil
}

// PlayerWithTiers resolves a single player's composite view ranked against
// the full player list.
func (s *RosterService) PlayerWithTiers(ctx context.Context, id int64) (*domain.PlayerWithTiers, error) {
	p, err := s.players.PlayerByID(ctx, id)
	if err != nil {
		return nil, err
	}

	tiers, err := s.tiers.TiersByPlayer(ctx, id)
	if err != nil {
		return nil, err
	}
	if tiers == nil {
		tiers = []domain.Tier{}
	}
	sort.Slice(tiers, func(i, j int) bool {
		return categoryIndex(tiers[i].Category) < categoryIndex(tiers[j].Category)
	})

	all, err := s.players.Players(ctx)
	if err != nil {
		return nil, err
	}

	return &domain.PlayerWithTiers{
		Player: *p,
		Tiers:  tiers,
		Rank:   Rank(*p, all),
	}, nil
}

func categoryIndex(c domain.Category) int {
	for i, k := range domain.Categories {
		if c == k {
			return i
		}
	}
	return len(domain.Categories)
}
