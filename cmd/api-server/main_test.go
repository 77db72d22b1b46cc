package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"galvani/internal/auth"
	"galvani/internal/catalog"
	"galvani/pkg/database"
)

func testRouter(t *testing.T) *gin.Engine {
	t.Helper()
	path := filepath.Join(t.TempDir(), "api.db")
	db, err := database.OpenAndMigrate(database.Config{Path: path})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	tokens := auth.TokenService{Secret: []byte("k"), Issuer: "test", Duration: time.Hour}
	return newApp(db, path, catalog.Extended(), tokens, zap.NewNop()).router()
}

func send(t *testing.T, r http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
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

func TestHealthAndReady(t *testing.T) {
	r := testRouter(t)

	w := send(t, r, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"catalog":"extended"`)

	w = send(t, r, http.MethodGet, "/ready", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"species":20`)
}

func TestEndToEnd(t *testing.T) {
	r := testRouter(t)

	w := send(t, r, http.MethodPost, "/cells", "", gin.H{"first": "Zn(s)", "second": "Cu2+(aq)"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"potential":"1.10 V"`)

	w = send(t, r, http.MethodPost, "/auth/register", "", gin.H{
		"username": "daniell", "email": "jfd@kings.ac.uk", "password": "copper-zinc",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var reg struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reg))

	w = send(t, r, http.MethodPost, "/users/notebook", reg.Token, gin.H{"first": "Ag+(aq)", "second": "Mg(s)"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = send(t, r, http.MethodGet, "/users/notebook", reg.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":1`)

	w = send(t, r, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.True(t, strings.Contains(body, `galvani_cell_resolutions_total{catalog="extended",mode="potential-ranked",source="http"} 1`), body)
	assert.True(t, strings.Contains(body, `galvani_cell_resolutions_total{catalog="extended",mode="potential-ranked",source="notebook"} 1`), body)
}
