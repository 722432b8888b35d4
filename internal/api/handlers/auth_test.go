package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/monitool/backend/internal/auth"
	"github.com/monitool/backend/internal/models"
	"gorm.io/gorm"
)

func newAuthRouter(db *gorm.DB) *gin.Engine {
	issuer := auth.NewTokenIssuer("test-secret", 15*time.Minute, 7*24*time.Hour)
	svc := auth.NewService(db, issuer)

	r := newTestEngine()
	h := NewAuthHandler(svc)
	r.POST("/auth/register", h.Register)
	r.POST("/auth/login", h.Login)
	r.GET("/auth/me", h.Me)
	r.GET("/users", NewUserHandler(db).List)
	return r
}

func TestRegisterLoginMe(t *testing.T) {
	db := setupTestDB(t)
	r := newAuthRouter(db)

	w := doJSON(t, r, http.MethodPost, "/auth/register", gin.H{
		"username":  "alice",
		"email":     "alice@x.com",
		"password":  "s3cret",
		"full_name": "Alice",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if body := w.Body.String(); strings.Contains(body, "password_hash") || strings.Contains(body, "$2a$") {
		t.Error("response must never carry the password hash")
	}

	w = doJSON(t, r, http.MethodPost, "/auth/login", gin.H{
		"username": "alice",
		"password": "s3cret",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	pair := decode[auth.TokenPair](t, w)

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from /auth/me, got %d", rec.Code)
	}
	me := decode[models.User](t, rec)
	if me.Username != "alice" {
		t.Errorf("expected username alice, got %q", me.Username)
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	db := setupTestDB(t)
	r := newAuthRouter(db)

	doJSON(t, r, http.MethodPost, "/auth/register", gin.H{
		"username": "alice", "email": "alice@x.com", "password": "pw",
	})

	// Same username, different email
	w := doJSON(t, r, http.MethodPost, "/auth/register", gin.H{
		"username": "alice", "email": "alice2@x.com", "password": "pw",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	db := setupTestDB(t)
	r := newAuthRouter(db)

	doJSON(t, r, http.MethodPost, "/auth/register", gin.H{
		"username": "alice", "email": "alice@x.com", "password": "pw",
	})

	w := doJSON(t, r, http.MethodPost, "/auth/login", gin.H{
		"username": "alice", "password": "wrong",
	})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestMeWithoutToken(t *testing.T) {
	db := setupTestDB(t)
	r := newAuthRouter(db)

	w := doJSON(t, r, http.MethodGet, "/auth/me", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestListUsers(t *testing.T) {
	db := setupTestDB(t)
	r := newAuthRouter(db)

	doJSON(t, r, http.MethodPost, "/auth/register", gin.H{
		"username": "alice", "email": "alice@x.com", "password": "pw",
	})
	doJSON(t, r, http.MethodPost, "/auth/register", gin.H{
		"username": "bob", "email": "bob@x.com", "password": "pw",
	})

	w := doJSON(t, r, http.MethodGet, "/users?limit=1", nil)
	if users := decode[[]models.User](t, w); len(users) != 1 {
		t.Errorf("expected 1 user with limit=1, got %d", len(users))
	}

	w = doJSON(t, r, http.MethodGet, "/users", nil)
	if users := decode[[]models.User](t, w); len(users) != 2 {
		t.Errorf("expected 2 users, got %d", len(users))
	}
}
