package service

import "tierlist_backend/internal/domain"

// Rank computes the 1-based competition rank of p within players: every
// player with strictly more points pushes p down one slot, equal points share
// the same rank, and no slots are skipped after a tie group. Returns 0 when
// p is not in the list at all.
//
// The comparison set changes between calls (category filters, edits), so the
// rank is recomputed for every render rather than cached.
func Rank(p domain.Player, players []domain.Player) int {
	found := false
	higher := 0
	for _, q := range players {
		if q.ID == p.ID {
			found = true
		}
		if q.Points > p.Points {
			higher++
		}
	}
	if !found {
		return 0
	}
	return higher + 1
}
