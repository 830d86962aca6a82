package service

import (
	"context"
	"testing"

	"tierlist_backend/internal/domain"
	"tierlist_backend/internal/repository"
)

func rosterFixture(t *testing.T) (*RosterService, map[string]int64) {
	t.Helper()
	s := repository.NewMemory()
	ctx := context.Background()

	ids := make(map[string]int64)
	add := func(userID, name string, points int, tiers map[domain.Category]domain.Grade) {
		p := &domain.Player{UserID: userID, Username: name, Points: points}
		if err := s.CreatePlayer(ctx, p); err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
		ids[name] = p.ID
		for c, g := range tiers {
			if _, err := s.UpsertTier(ctx, &domain.Tier{PlayerID: p.ID, Category: c, Grade: g}); err != nil {
				t.Fatalf("tier for %s: %v", name, err)
			}
		}
	}

	add("u1", "Luffy", 300, map[domain.Category]domain.Grade{
		domain.CategoryMelee: domain.GradeSS,
		domain.CategoryFruit: domain.GradeS,
	})
	add("u2", "Zoro", 300, map[domain.Category]domain.Grade{
		domain.CategorySword: domain.GradeSS,
	})
	add("u3", "Usopp", 100, map[domain.Category]domain.Grade{
		domain.CategoryGun: domain.GradeA,
	})
	add("u4", "Chopper", 50, nil) // no tiers at all

	return NewRosterService(s, s), ids
}

func TestRosterOverallIncludesEveryone(t *testing.T) {
	svc, _ := rosterFixture(t)

	for _, cat := range []domain.Category{"", domain.CategoryOverall} {
		roster, err := svc.Roster(context.Background(), cat)
		if err != nil {
			t.Fatalf("roster(%q): %v", cat, err)
		}
		if len(roster) != 4 {
			t.Fatalf("roster(%q) has %d players; want 4 (zero-tier players included)", cat, len(roster))
		}
	}
}

func TestRosterCategoryFilterExcludesPlayersWithoutTier(t *testing.T) {
	svc, ids := rosterFixture(t)

	roster, err := svc.Roster(context.Background(), domain.CategoryMelee)
	if err != nil {
		t.Fatalf("roster: %v", err)
	}

	if len(roster) != 1 {
		t.Fatalf("melee roster has %d players; want 1", len(roster))
	}
	if roster[0].ID != ids["Luffy"] {
		t.Fatalf("melee roster contains player %d; want Luffy (%d)", roster[0].ID, ids["Luffy"])
	}
	// only matching tiers are attached
	if len(roster[0].Tiers) != 1 || roster[0].Tiers[0].Category != domain.CategoryMelee {
		t.Fatalf("attached tiers = %+v; want the melee tier only", roster[0].Tiers)
	}
}

func TestRosterSortedByPointsWithCompetitionRanks(t *testing.T) {
	svc, _ := rosterFixture(t)

	roster, err := svc.Roster(context.Background(), domain.CategoryOverall)
	if err != nil {
		t.Fatalf("roster: %v", err)
	}

	for i := 1; i < len(roster); i++ {
		if roster[i-1].Points < roster[i].Points {
			t.Fatalf("roster not sorted by points desc: %d before %d", roster[i-1].Points, roster[i].Points)
		}
	}

	// 300, 300, 100, 50 -> ranks 1, 1, 3, 4
	wantRanks := []int{1, 1, 3, 4}
	for i, pw := range roster {
		if pw.Rank != wantRanks[i] {
			t.Errorf("position %d rank = %d; want %d", i, pw.Rank, wantRanks[i])
		}
	}
}

func TestPlayerWithTiersNotFound(t *testing.T) {
	svc, _ := rosterFixture(t)

	if _, err := svc.PlayerWithTiers(context.Background(), 9999); err != repository.ErrNotFound {
		t.Fatalf("err = %v; want ErrNotFound", err)
	}
}
