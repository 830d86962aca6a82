package main

import (
	"context"
	"log"
	"os"

	"tierlist_backend/internal/db"
	"tierlist_backend/internal/domain"
	"tierlist_backend/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// Creates (or verifies) the default super-admin account directly against the
// database. Useful for bootstrapping a fresh deployment.
func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}

	username := os.Getenv("DEFAULT_ADMIN_USER")
	if username == "" {
		username = "admin"
	}
	password := os.Getenv("DEFAULT_ADMIN_PASSWORD")
	if password == "" {
		log.Fatal("DEFAULT_ADMIN_PASSWORD not set")
	}

	pool := db.Connect(dsn)
	defer pool.Close()

	store := repository.NewPostgres(pool)
	ctx := context.Background()

	if existing, err := store.AdminByUsername(ctx, username); err == nil {
		log.Printf("admin already exists id=%d username=%s super=%v\n",
			existing.ID, existing.Username, existing.IsSuperAdmin)
		return
	} else if err != repository.ErrNotFound {
		log.Fatalf("admin lookup failed: %v", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	admin := &domain.Admin{
		Username:     username,
		PasswordHash: string(hash),
		IsSuperAdmin: true,
	}
	if err := store.CreateAdmin(ctx, admin); err != nil {
		log.Fatalf("create admin failed: %v", err)
	}

	log.Printf("admin created id=%d username=%s\n", admin.ID, admin.Username)
}
