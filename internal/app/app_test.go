package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdos10/think-like-genius/internal/domain"
	"github.com/abdos10/think-like-genius/internal/platform/logger"
)

func testConfig(t *testing.T) Config {
	t.Helper()
	cfg := DefaultConfig()
	// Nothing listens here; every LLM call falls back.
	cfg.OpenAI.BaseURL = "http://127.0.0.1:1"
	return cfg
}

func currentUser(t *testing.T, a *App) domain.User {
	t.Helper()
	rec := httptest.NewRecorder()
	a.Server.Engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/users/current", nil))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var u domain.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &u))
	return u
}

func TestNewWithConfigMemoryStore(t *testing.T) {
	a, err := NewWithConfig(context.Background(), logger.Nop(), testConfig(t))
	require.NoError(t, err)
	t.Cleanup(a.Close)

	assert.Nil(t, a.DB)
	assert.Equal(t, "Abdo", currentUser(t, a).Username)
	assert.Equal(t, "none", a.Services.Mirror.Name())

	rec := httptest.NewRecorder()
	a.Server.Engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestNewWithConfigSQLiteSeedsOnce(t *testing.T) {
	cfg := testConfig(t)
	cfg.Store = StoreConfig{Driver: StoreSQLite, DSN: filepath.Join(t.TempDir(), "genius.db")}

	first, err := NewWithConfig(context.Background(), logger.Nop(), cfg)
	require.NoError(t, err)
	require.NotNil(t, first.DB)
	assert.Equal(t, 1, currentUser(t, first).ID)
	skills, err := first.Store.ListSkills(context.Background())
	require.NoError(t, err)
	require.Len(t, skills, 4)
	first.Close()

	second, err := NewWithConfig(context.Background(), logger.Nop(), cfg)
	require.NoError(t, err)
	t.Cleanup(second.Close)
	skills, err = second.Store.ListSkills(context.Background())
	require.NoError(t, err)
	assert.Len(t, skills, 4)
}

func TestNewWithConfigUnreachableMirrorFallsBack(t *testing.T) {
	cfg := testConfig(t)
	cfg.Metrics = false
	cfg.History.Backend = "redis"
	cfg.History.RedisAddr = "127.0.0.1:1"

	a, err := NewWithConfig(context.Background(), logger.Nop(), cfg)
	require.NoError(t, err)
	t.Cleanup(a.Close)
	assert.Equal(t, "none", a.Services.Mirror.Name())

	rec := httptest.NewRecorder()
	a.Server.Engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRunStopsOnCancel(t *testing.T) {
	cfg := testConfig(t)
	cfg.HTTPAddr = "127.0.0.1:0"
	a, err := NewWithConfig(context.Background(), logger.Nop(), cfg)
	require.NoError(t, err)
	t.Cleanup(a.Close)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()
	cancel()
	require.NoError(t, <-done)
}
