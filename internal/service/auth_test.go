package service

import (
	"context"
	"errors"
	"testing"

	"tierlist_backend/internal/domain"
	"tierlist_backend/internal/repository"
)

func TestLoginRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	InitJWT()

	store := repository.NewMemory()
	svc := NewAuthService(store)
	ctx := context.Background()

	admin := &domain.Admin{Username: "root", IsSuperAdmin: true}
	if err := svc.CreateAdmin(ctx, admin, "correct horse"); err != nil {
		t.Fatalf("create admin: %v", err)
	}
	if admin.PasswordHash == "correct horse" {
		t.Fatal("password must be stored hashed")
	}

	got, token, err := svc.Login(ctx, "root", "correct horse")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if got.ID != admin.ID {
		t.Fatalf("logged in as id %d; want %d", got.ID, admin.ID)
	}

	id, err := ParseSessionToken(token)
	if err != nil || id != admin.ID {
		t.Fatalf("ParseSessionToken = (%d, %v); want (%d, nil)", id, err, admin.ID)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	InitJWT()

	store := repository.NewMemory()
	svc := NewAuthService(store)
	ctx := context.Background()

	if err := svc.CreateAdmin(ctx, &domain.Admin{Username: "root"}, "correct horse"); err != nil {
		t.Fatalf("create admin: %v", err)
	}

	cases := []struct {
		name, user, pass string
	}{
		{"wrong password", "root", "battery staple"},
		{"unknown user", "ghost", "correct horse"},
	}
	for _, tc := range cases {
		if _, _, err := svc.Login(ctx, tc.user, tc.pass); !errors.Is(err, ErrBadCredentials) {
			t.Errorf("%s: err = %v; want ErrBadCredentials", tc.name, err)
		}
	}
}

func TestCreateAdminRejectsDuplicateUsername(t *testing.T) {
	store := repository.NewMemory()
	svc := NewAuthService(store)
	ctx := context.Background()

	if err := svc.CreateAdmin(ctx, &domain.Admin{Username: "root"}, "password1"); err != nil {
		t.Fatalf("first create: %v", err)
	}
	err := svc.CreateAdmin(ctx, &domain.Admin{Username: "root"}, "password2")
	if !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("err = %v; want ErrUsernameTaken", err)
	}
}
