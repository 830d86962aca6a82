package service

import (
	"testing"

	"tierlist_backend/internal/domain"
)

func players(points ...int) []domain.Player {
	res := make([]domain.Player, len(points))
	for i, p := range points {
		res[i] = domain.Player{ID: int64(i + 1), Points: p}
	}
	return res
}

func TestRankCompetitionTies(t *testing.T) {
	list := players(300, 300, 100)

	want := []int{1, 1, 3}
	for i, p := range list {
		if got := Rank(p, list); got != want[i] {
			t.Fatalf("Rank(player %d) = %d; want %d", p.ID, got, want[i])
		}
	}
}

func TestRankAbsentPlayer(t *testing.T) {
	list := players(300, 100)
	outsider := domain.Player{ID: 99, Points: 200}

	if got := Rank(outsider, list); got != 0 {
		t.Fatalf("Rank(absent player) = %d; want 0", got)
	}
}

func TestRankMonotonicInPoints(t *testing.T) {
	list := players(500, 400, 400, 250, 100, 100, 100, 50)

	for _, a := range list {
		for _, b := range list {
			ra, rb := Rank(a, list), Rank(b, list)
			if a.Points > b.Points && ra >= rb {
				t.Fatalf("player with %d points ranked %d, not above player with %d points ranked %d",
					a.Points, ra, b.Points, rb)
			}
			if a.Points == b.Points && ra != rb {
				t.Fatalf("equal points %d got different ranks %d and %d", a.Points, ra, rb)
			}
		}
	}
}

func TestRankSinglePlayer(t *testing.T) {
	list := players(0)
	if got := Rank(list[0], list); got != 1 {
		t.Fatalf("Rank(only player) = %d; want 1", got)
	}
}
