package auth

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"galvani/pkg/database"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.OpenAndMigrate(database.Config{Path: filepath.Join(t.TempDir(), "auth.db")})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func testTokens() TokenService {
	return TokenService{Secret: []byte("test-secret"), Issuer: "galvani-test", Duration: time.Hour}
}

func newTestRouter(t *testing.T) (*gin.Engine, *Handler) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	h := NewHandler(NewRepo(testDB(t)), testTokens(), nil)
	h.Cost = bcrypt.MinCost

	r := gin.New()
	h.RegisterRoutes(r.Group("/auth"))
	return r, h
}

func call(t *testing.T, r http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type tokenResp struct {
	Token string `json:"token"`
	User  struct {
		ID       string `json:"id"`
		Username string `json:"username"`
	} `json:"user"`
	Error string `json:"error"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) tokenResp {
	t.Helper()
	var out tokenResp
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func register(t *testing.T, r http.Handler) tokenResp {
	t.Helper()
	w := call(t, r, http.MethodPost, "/auth/register", "", gin.H{
		"username": "volta", "email": "Volta@Lab.io", "password": "pile-1800",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode(t, w)
}

func TestRegisterLoginMe(t *testing.T) {
	r, _ := newTestRouter(t)
	reg := register(t, r)
	assert.NotEmpty(t, reg.Token)
	assert.Equal(t, "volta", reg.User.Username)

	w := call(t, r, http.MethodPost, "/auth/login", "", gin.H{"email": "volta@lab.io", "password": "pile-1800"})
	require.Equal(t, http.StatusOK, w.Code)
	login := decode(t, w)

	w = call(t, r, http.MethodGet, "/auth/me", login.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var me map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &me))
	assert.Equal(t, reg.User.ID, me["id"])
	assert.Equal(t, "volta@lab.io", me["email"])
}

func TestRegisterValidation(t *testing.T) {
	r, _ := newTestRouter(t)

	tests := []struct {
		name string
		body gin.H
		want string
	}{
		{"short username", gin.H{"username": "zn", "email": "a@b.io", "password": "12345678"}, "username must be at least 3 chars"},
		{"bad email", gin.H{"username": "daniell", "email": "nope", "password": "12345678"}, "invalid email"},
		{"short password", gin.H{"username": "daniell", "email": "a@b.io", "password": "123"}, "password must be at least 8 chars"},
		{"missing", gin.H{}, "username is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := call(t, r, http.MethodPost, "/auth/register", "", tt.body)
			require.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, decode(t, w).Error, tt.want)
		})
	}
}

func TestRegisterConflict(t *testing.T) {
	r, _ := newTestRouter(t)
	register(t, r)

	w := call(t, r, http.MethodPost, "/auth/register", "", gin.H{
		"username": "other", "email": "volta@lab.io", "password": "pile-1800",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestLoginWrongPassword(t *testing.T) {
	r, _ := newTestRouter(t)
	register(t, r)

	w := call(t, r, http.MethodPost, "/auth/login", "", gin.H{"email": "volta@lab.io", "password": "wrong-pass"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogoutRevokesToken(t *testing.T) {
	r, _ := newTestRouter(t)
	reg := register(t, r)

	w := call(t, r, http.MethodPost, "/auth/logout", reg.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = call(t, r, http.MethodGet, "/auth/me", reg.Token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestChangePassword(t *testing.T) {
	r, _ := newTestRouter(t)
	reg := register(t, r)

	w := call(t, r, http.MethodPost, "/auth/change-password", reg.Token, gin.H{"old_password": "pile-1800", "new_password": "salt-bridge"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = call(t, r, http.MethodGet, "/auth/me", reg.Token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = call(t, r, http.MethodPost, "/auth/login", "", gin.H{"email": "volta@lab.io", "password": "salt-bridge"})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMiddlewareRejects(t *testing.T) {
	r, _ := newTestRouter(t)

	w := call(t, r, http.MethodGet, "/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = call(t, r, http.MethodGet, "/auth/me", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestTokenService(t *testing.T) {
	ts := testTokens()
	u := &User{ID: "u1", Username: "faraday", TokenVersion: 3}

	raw, exp, err := ts.Sign(u)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, time.Minute)

	claims, err := ts.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, 3, claims.TokenVersion)

	other := ts
	other.Issuer = "elsewhere"
	_, err = other.Parse(raw)
	assert.Error(t, err)

	other = ts
	other.Secret = []byte("different")
	_, err = other.Parse(raw)
	assert.Error(t, err)
}

func TestRepoTokenVersion(t *testing.T) {
	repo := NewRepo(testDB(t))
	ctx := context.Background()

	require.NoError(t, repo.CreateUser(ctx, User{ID: "u1", Username: "ampere", Email: "a@lab.io", PasswordHash: "x"}))
	v, err := repo.GetTokenVersion(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 0, v)

	require.NoError(t, repo.BumpTokenVersion(ctx, "u1"))
	v, err = repo.GetTokenVersion(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	_, err = repo.GetTokenVersion(ctx, "missing")
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.ErrorIs(t, repo.BumpTokenVersion(ctx, "missing"), ErrUserNotFound)

	u, err := repo.GetByUsername(ctx, "nobody")
	require.NoError(t, err)
	assert.Nil(t, u)
}
