package middlewares_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"

	"codeclimb/internal/common"
	"codeclimb/internal/logger"
	"codeclimb/internal/middlewares"
	"codeclimb/internal/models"
	"codeclimb/internal/services"
)

var tokenSvc = services.NewTokenService("middleware-test-secret")

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	logger.InitLogger(false)
	os.Exit(m.Run())
}

type userStore struct {
	users map[string]*models.User
}

func (s *userStore) CreateUser(_ context.Context, user *models.User) error {
	s.users[user.ID] = user
	return nil
}

func (s *userStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	for _, user := range s.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, fmt.Errorf("user with email %s: %w", email, common.ErrNotFound)
}

func (s *userStore) GetUserByID(_ context.Context, userID string) (*models.User, error) {
	if user, ok := s.users[userID]; ok {
		return user, nil
	}
	return nil, fmt.Errorf("user %s: %w", userID, common.ErrNotFound)
}

func newProbeRouter(store *userStore) *gin.Engine {
	router := gin.New()
	router.GET("/me", middlewares.AuthMiddleware(tokenSvc, store), func(c *gin.Context) {
		user, _ := middlewares.CurrentUser(c)
		c.JSON(http.StatusOK, gin.H{"id": user.ID})
	})
	router.GET("/admin", middlewares.AuthMiddleware(tokenSvc, store), middlewares.RequireAdmin(store), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func get(t *testing.T, router *gin.Engine, path, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: "jwt", Value: token})
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestAuthMiddleware(t *testing.T) {
	user := &models.User{ID: "u-1", Email: "alice@example.com", Role: models.RoleUser}
	store := &userStore{users: map[string]*models.User{user.ID: user}}
	router := newProbeRouter(store)

	token, err := tokenSvc.GenerateToken(user.ID)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	if rec := get(t, router, "/me", ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("no cookie: status = %d, want 401", rec.Code)
	}
	if rec := get(t, router, "/me", "garbage"); rec.Code != http.StatusUnauthorized {
		t.Fatalf("malformed token: status = %d, want 401", rec.Code)
	}

	deleted, err := tokenSvc.GenerateToken("u-gone")
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	if rec := get(t, router, "/me", deleted); rec.Code != http.StatusNotFound {
		t.Fatalf("token for deleted user: status = %d, want 404", rec.Code)
	}

	rec := get(t, router, "/me", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("valid token: status = %d, want 200", rec.Code)
	}
}

func TestRequireAdmin(t *testing.T) {
	user := &models.User{ID: "u-1", Role: models.RoleUser}
	admin := &models.User{ID: "a-1", Role: models.RoleAdmin}
	store := &userStore{users: map[string]*models.User{user.ID: user, admin.ID: admin}}
	router := newProbeRouter(store)

	userToken, _ := tokenSvc.GenerateToken(user.ID)
	adminToken, _ := tokenSvc.GenerateToken(admin.ID)

	if rec := get(t, router, "/admin", userToken); rec.Code != http.StatusForbidden {
		t.Fatalf("USER role: status = %d, want 403", rec.Code)
	}
	if rec := get(t, router, "/admin", adminToken); rec.Code != http.StatusOK {
		t.Fatalf("ADMIN role: status = %d, want 200", rec.Code)
	}

	// Demoting the stored user must revoke access even while the old
	// token is still valid.
	admin.Role = models.RoleUser
	if rec := get(t, router, "/admin", adminToken); rec.Code != http.StatusForbidden {
		t.Fatalf("demoted admin: status = %d, want 403", rec.Code)
	}
}
