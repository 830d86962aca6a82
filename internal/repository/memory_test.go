package repository

import (
	"context"
	"testing"

	"tierlist_backend/internal/domain"
)

func seedPlayer(t *testing.T, s *Memory, userID, username string, points int) *domain.Player {
	t.Helper()
	p := &domain.Player{UserID: userID, Username: username, Points: points}
	if err := s.CreatePlayer(context.Background(), p); err != nil {
		t.Fatalf("create player: %v", err)
	}
	return p
}

func TestCreatePlayerAppliesDefaults(t *testing.T) {
	s := NewMemory()
	p := seedPlayer(t, s, "u1", "Luffy", 0)

	if p.ID == 0 {
		t.Fatal("expected an assigned id")
	}
	if p.CombatTitle != domain.DefaultCombatTitle {
		t.Errorf("combat title = %q; want default %q", p.CombatTitle, domain.DefaultCombatTitle)
	}
	if p.Bounty != domain.DefaultBounty {
		t.Errorf("bounty = %q; want default %q", p.Bounty, domain.DefaultBounty)
	}
}

func TestCreatePlayerRejectsDuplicateUserID(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()
	seedPlayer(t, s, "dup", "Luffy", 100)

	err := s.CreatePlayer(ctx, &domain.Player{UserID: "dup", Username: "Impostor"})
	if err != ErrDuplicate {
		t.Fatalf("second create err = %v; want ErrDuplicate", err)
	}

	players, _ := s.Players(ctx)
	if len(players) != 1 {
		t.Fatalf("player count = %d; a duplicate user_id must not be stored", len(players))
	}
	if players[0].Username != "Luffy" {
		t.Fatalf("surviving player = %q; want the original", players[0].Username)
	}
}

func TestCreateAdminRejectsDuplicateUsername(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	if err := s.CreateAdmin(ctx, &domain.Admin{Username: "root"}); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if err := s.CreateAdmin(ctx, &domain.Admin{Username: "root"}); err != ErrDuplicate {
		t.Fatalf("second create err = %v; want ErrDuplicate", err)
	}
}

func TestPlayerLookupNotFound(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	if _, err := s.PlayerByID(ctx, 42); err != ErrNotFound {
		t.Fatalf("PlayerByID err = %v; want ErrNotFound", err)
	}
	if _, err := s.PlayerByUserID(ctx, "nobody"); err != ErrNotFound {
		t.Fatalf("PlayerByUserID err = %v; want ErrNotFound", err)
	}
}

func TestUpdatePlayerPartial(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()
	p := seedPlayer(t, s, "u1", "Luffy", 100)

	bounty := "5M"
	updated, err := s.UpdatePlayer(ctx, p.ID, domain.PlayerUpdate{Bounty: &bounty})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if updated.Bounty != "5M" {
		t.Errorf("bounty = %q; want 5M", updated.Bounty)
	}
	// unsupplied fields keep their prior values
	if updated.Username != "Luffy" || updated.Points != 100 {
		t.Errorf("unsupplied fields changed: %+v", updated)
	}
}

func TestUpsertTierUpdatesInPlace(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()
	p := seedPlayer(t, s, "u1", "Luffy", 100)

	first := &domain.Tier{PlayerID: p.ID, Category: domain.CategoryMelee, Grade: domain.GradeA}
	created, err := s.UpsertTier(ctx, first)
	if err != nil || !created {
		t.Fatalf("first upsert: created=%v err=%v; want created", created, err)
	}

	second := &domain.Tier{PlayerID: p.ID, Category: domain.CategoryMelee, Grade: domain.GradeSS}
	created, err = s.UpsertTier(ctx, second)
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if created {
		t.Error("second upsert for same (player, category) must update, not insert")
	}
	if second.ID != first.ID {
		t.Errorf("updated tier id = %d; want %d", second.ID, first.ID)
	}

	tiers, _ := s.TiersByPlayer(ctx, p.ID)
	if len(tiers) != 1 {
		t.Fatalf("tier count = %d; want 1", len(tiers))
	}
	if tiers[0].Grade != domain.GradeSS {
		t.Errorf("grade = %s; want SS", tiers[0].Grade)
	}
}

func TestDeletePlayerCascadesTiers(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()
	p := seedPlayer(t, s, "u1", "Luffy", 100)
	other := seedPlayer(t, s, "u2", "Zoro", 90)

	for _, c := range []domain.Category{domain.CategoryMelee, domain.CategorySword} {
		if _, err := s.UpsertTier(ctx, &domain.Tier{PlayerID: p.ID, Category: c, Grade: domain.GradeB}); err != nil {
			t.Fatalf("upsert: %v", err)
		}
	}
	if _, err := s.UpsertTier(ctx, &domain.Tier{PlayerID: other.ID, Category: domain.CategorySword, Grade: domain.GradeS}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	deleted, err := s.DeletePlayer(ctx, p.ID)
	if err != nil || !deleted {
		t.Fatalf("delete: deleted=%v err=%v", deleted, err)
	}

	orphans, _ := s.TiersByPlayer(ctx, p.ID)
	if len(orphans) != 0 {
		t.Fatalf("%d tiers still reference the deleted player", len(orphans))
	}

	kept, _ := s.TiersByPlayer(ctx, other.ID)
	if len(kept) != 1 {
		t.Fatalf("other player's tiers were harmed: %d left", len(kept))
	}

	// deleting again reports no row removed
	deleted, err = s.DeletePlayer(ctx, p.ID)
	if err != nil || deleted {
		t.Fatalf("second delete: deleted=%v err=%v; want false, nil", deleted, err)
	}
}

func TestSearchPlayersCaseInsensitive(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()
	seedPlayer(t, s, "u1", "MonkeyDLuffy", 100)
	seedPlayer(t, s, "u2", "RoronoaZoro", 90)

	res, err := s.SearchPlayers(ctx, "luffy")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(res) != 1 || res[0].Username != "MonkeyDLuffy" {
		t.Fatalf("search result = %+v; want MonkeyDLuffy only", res)
	}

	res, _ = s.SearchPlayers(ctx, "ORO")
	if len(res) != 1 || res[0].Username != "RoronoaZoro" {
		t.Fatalf("search should be case-insensitive, got %+v", res)
	}
}

func TestResetKeepsAdminsAndSettings(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()
	p := seedPlayer(t, s, "u1", "Luffy", 100)
	if _, err := s.UpsertTier(ctx, &domain.Tier{PlayerID: p.ID, Category: domain.CategoryGun, Grade: domain.GradeC}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if err := s.CreateAdmin(ctx, &domain.Admin{Username: "root", IsSuperAdmin: true}); err != nil {
		t.Fatalf("create admin: %v", err)
	}
	if err := s.SetSetting(ctx, "title", "Tier List"); err != nil {
		t.Fatalf("set setting: %v", err)
	}

	if err := s.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}

	players, _ := s.Players(ctx)
	tiers, _ := s.Tiers(ctx)
	if len(players) != 0 || len(tiers) != 0 {
		t.Fatalf("reset left %d players, %d tiers", len(players), len(tiers))
	}

	if _, err := s.AdminByUsername(ctx, "root"); err != nil {
		t.Error("reset must not touch admins")
	}
	if v, err := s.Setting(ctx, "title"); err != nil || v != "Tier List" {
		t.Error("reset must not touch settings")
	}
}
