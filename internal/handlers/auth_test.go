package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"codeclimb/configs"
	"codeclimb/internal/handlers"
	"codeclimb/internal/middlewares"
	"codeclimb/internal/models"
	"codeclimb/internal/utils"
)

func newAuthRouter(userRepo *fakeUserRepo) *gin.Engine {
	router := gin.New()
	api := router.Group("/api/v1")

	cfg := &configs.Config{AppEnv: "development", JWTSecret: testSecret}
	auth := middlewares.AuthMiddleware(tokenSvc, userRepo)
	handlers.NewAuthHandler(userRepo, tokenSvc, cfg).RegisterRoutes(api, auth)
	return router
}

func findSessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == "jwt" {
			return cookie
		}
	}
	return nil
}

func TestRegisterCreatesUserAndSession(t *testing.T) {
	userRepo := newFakeUserRepo()
	router := newAuthRouter(userRepo)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", map[string]string{
		"email":    "alice@example.com",
		"name":     "Alice",
		"password": "secret123",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}

	cookie := findSessionCookie(rec)
	if cookie == nil || cookie.Value == "" {
		t.Fatalf("register did not set a session cookie")
	}
	if !cookie.HttpOnly {
		t.Fatalf("session cookie must be http-only")
	}

	claims, err := tokenSvc.ValidateToken(cookie.Value)
	if err != nil {
		t.Fatalf("session cookie holds an invalid token: %v", err)
	}

	stored, err := userRepo.GetUserByID(context.Background(), claims.UserID)
	if err != nil {
		t.Fatalf("registered user not stored: %v", err)
	}
	if stored.Role != models.RoleUser {
		t.Fatalf("new user role = %q, want %q", stored.Role, models.RoleUser)
	}
	if stored.PasswordHash == "secret123" {
		t.Fatalf("password stored in plaintext")
	}
	if !utils.CheckPasswordHash("secret123", stored.PasswordHash) {
		t.Fatalf("stored hash does not verify the password")
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	existing := testUser(models.RoleUser)
	existing.Email = "alice@example.com"
	router := newAuthRouter(newFakeUserRepo(existing))

	rec := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", map[string]string{
		"email":    "alice@example.com",
		"name":     "Alice",
		"password": "secret123",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if msg := decodeBody(t, rec)["message"]; msg != "User already exists" {
		t.Fatalf("message = %v, want duplicate-user error", msg)
	}
}

func TestRegisterRejectsWeakPassword(t *testing.T) {
	router := newAuthRouter(newFakeUserRepo())

	rec := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", map[string]string{
		"email":    "alice@example.com",
		"name":     "Alice",
		"password": "short",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestLoginWithWrongPassword(t *testing.T) {
	hash, err := utils.HashPassword("secret123")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	existing := testUser(models.RoleUser)
	existing.Email = "alice@example.com"
	existing.PasswordHash = hash
	router := newAuthRouter(newFakeUserRepo(existing))

	rec := doJSON(t, router, http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email":    "alice@example.com",
		"password": "wrong-password",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if findSessionCookie(rec) != nil {
		t.Fatalf("failed login set a session cookie")
	}
}

func TestLoginSuccess(t *testing.T) {
	hash, err := utils.HashPassword("secret123")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	existing := testUser(models.RoleUser)
	existing.Email = "alice@example.com"
	existing.PasswordHash = hash
	router := newAuthRouter(newFakeUserRepo(existing))

	rec := doJSON(t, router, http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email":    "alice@example.com",
		"password": "secret123",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if findSessionCookie(rec) == nil {
		t.Fatalf("login did not set a session cookie")
	}
}

func TestProfileRoundTrip(t *testing.T) {
	user := testUser(models.RoleUser)
	router := newAuthRouter(newFakeUserRepo(user))

	rec := doJSON(t, router, http.MethodGet, "/api/v1/auth/profile", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("profile without cookie: status = %d, want 401", rec.Code)
	}

	rec = doJSON(t, router, http.MethodGet, "/api/v1/auth/profile", nil, sessionCookie(t, user.ID))
	if rec.Code != http.StatusOK {
		t.Fatalf("profile with cookie: status = %d, want 200", rec.Code)
	}

	data, ok := decodeBody(t, rec)["data"].(map[string]interface{})
	if !ok || data["email"] != user.Email {
		t.Fatalf("profile payload = %v, want email %q", data, user.Email)
	}
}

func TestLogoutClearsCookie(t *testing.T) {
	user := testUser(models.RoleUser)
	router := newAuthRouter(newFakeUserRepo(user))

	rec := doJSON(t, router, http.MethodPost, "/api/v1/auth/logout", nil, sessionCookie(t, user.ID))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	cookie := findSessionCookie(rec)
	if cookie == nil {
		t.Fatalf("logout did not rewrite the session cookie")
	}
	if cookie.Value != "" || cookie.MaxAge >= 0 {
		t.Fatalf("logout cookie = %+v, want cleared and expired", cookie)
	}
}
