package repository

import (
	"context"
	"testing"
	"time"
)

func TestGatewayFallsBackToMemory(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// empty dsn: no postgres, straight to the in-memory fallback
	g := Open(ctx, "", SeedAdmin{Username: "admin", Password: "changeme"})

	// calls block until init completes, then hit the fallback store
	admin, err := g.AdminByUsername(ctx, "admin")
	if err != nil {
		t.Fatalf("AdminByUsername: %v", err)
	}
	if !admin.IsSuperAdmin {
		t.Error("seeded default admin must be a super-admin")
	}
	if admin.PasswordHash == "" || admin.PasswordHash == "changeme" {
		t.Error("seeded password must be stored hashed")
	}

	if err := g.Ping(ctx); err != nil {
		t.Fatalf("Ping: %v", err)
	}
}

func TestGatewayRespectsContextBeforeReady(t *testing.T) {
	// never-ready gateway: the call must give up with the context
	g := &Gateway{ready: make(chan struct{})}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if _, err := g.Players(ctx); err != context.DeadlineExceeded {
		t.Fatalf("err = %v; want context.DeadlineExceeded", err)
	}
}
