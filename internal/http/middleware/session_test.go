package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"tierlist_backend/internal/domain"
	"tierlist_backend/internal/repository"
	"tierlist_backend/internal/service"

	"github.com/gin-gonic/gin"
)

// stubAdmins serves one admin, or fails every lookup with err.
type stubAdmins struct {
	admin *domain.Admin
	err   error
}

func (s *stubAdmins) Admins(ctx context.Context) ([]domain.Admin, error) {
	return nil, s.err
}

func (s *stubAdmins) AdminByID(ctx context.Context, id int64) (*domain.Admin, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.admin == nil || s.admin.ID != id {
		return nil, repository.ErrNotFound
	}
	return s.admin, nil
}

func (s *stubAdmins) AdminByUsername(ctx context.Context, username string) (*domain.Admin, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.admin == nil || s.admin.Username != username {
		return nil, repository.ErrNotFound
	}
	return s.admin, nil
}

func (s *stubAdmins) CreateAdmin(ctx context.Context, a *domain.Admin) error {
	return s.err
}

func sessionRouter(t *testing.T, admins repository.AdminStore) *gin.Engine {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	service.InitJWT()

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/private", Session(admins), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func getWithToken(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSessionStatusCodes(t *testing.T) {
	admin := &domain.Admin{ID: 1, Username: "root"}
	r := sessionRouter(t, &stubAdmins{admin: admin})

	token, err := service.GenerateSessionToken(admin.ID)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	staleToken, err := service.GenerateSessionToken(99)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	if w := getWithToken(r, token); w.Code != http.StatusOK {
		t.Errorf("valid session status = %d; want 200", w.Code)
	}
	if w := getWithToken(r, ""); w.Code != http.StatusUnauthorized {
		t.Errorf("missing token status = %d; want 401", w.Code)
	}
	if w := getWithToken(r, "not-a-token"); w.Code != http.StatusUnauthorized {
		t.Errorf("garbage token status = %d; want 401", w.Code)
	}
	// valid token for an admin that no longer exists
	if w := getWithToken(r, staleToken); w.Code != http.StatusUnauthorized {
		t.Errorf("deleted admin status = %d; want 401", w.Code)
	}
}

func TestSessionStoreFailureIsNotAuthFailure(t *testing.T) {
	r := sessionRouter(t, &stubAdmins{err: errors.New("connection refused")})

	token, err := service.GenerateSessionToken(1)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	// an unreachable store is our fault, not the caller's
	if w := getWithToken(r, token); w.Code != http.StatusInternalServerError {
		t.Fatalf("store failure status = %d; want 500", w.Code)
	}
}
