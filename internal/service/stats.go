package service

import (
	"context"

	"tierlist_backend/internal/domain"
	"tierlist_backend/internal/repository"
)

// Stats represents site statistics for the admin dashboard.
type Stats struct {
	TotalPlayers     int64            `json:"total_players"`
	TotalTiers       int64            `json:"total_tiers"`
	TiersPerCategory map[string]int64 `json:"tiers_per_category"`
	TotalAdmins      int64            `json:"total_admins"`
	TopPoints        int              `json:"top_points"`
}

// StatsService aggregates counts for the dashboard.
type StatsService struct {
	store repository.Store
}

func NewStatsService(store repository.Store) *StatsService {
	return &StatsService{store: store}
}

// GetStats returns site statistics.
func (s *StatsService) GetStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{
		TiersPerCategory: make(map[string]int64, len(domain.Categories)),
	}
	for _, c := range domain.Categories {
		stats.TiersPerCategory[string(c)] = 0
	}

	players, err := s.store.Players(ctx)
	if err != nil {
		return nil, err
	}
	stats.TotalPlayers = int64(len(players))
	for _, p := range players {
		if p.Points > stats.TopPoints {
			stats.TopPoints = p.Points
		}
	}

	tiers, err := s.store.Tiers(ctx)
	if err != nil {
		return nil, err
	}
	stats.TotalTiers = int64(len(tiers))
	for _, t := range tiers {
		stats.TiersPerCategory[string(t.Category)]++
	}

	admins, err := s.store.Admins(ctx)
	if err != nil {
		return nil, err
	}
	stats.TotalAdmins = int64(len(admins))

	return stats, nil
}
