package container

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Debyte404/Obscura/internal/config"
	"github.com/Debyte404/Obscura/internal/infrastructure/lock"
	"github.com/Debyte404/Obscura/internal/usecase/match"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memoryConfig() *config.Config {
	return &config.Config{
		Server:  config.ServerConfig{Host: "127.0.0.1", Port: 0, Env: "development"},
		JWT:     config.JWTConfig{AccessSecret: "0123456789abcdef0123456789abcdef", AccessExpiryMin: 15},
		Match:   config.MatchConfig{Cooldown: 12 * time.Hour, PoolLimit: 50, OracleTimeout: 4 * time.Second, RatePerMinute: 10},
		Storage: config.StorageConfig{Type: config.StorageTypeMemory},
		Lock:    config.LockConfig{Type: config.LockTypeLocal},
	}
}

func TestNewContainer_Memory(t *testing.T) {
	logger, _ := test.NewNullLogger()

	app, err := NewContainer(context.Background(), memoryConfig(), logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })

	assert.Nil(t, app.DB)
	assert.Nil(t, app.Redis)
	assert.Nil(t, app.Gemini)
	assert.NotNil(t, app.Match)
	assert.Equal(t, "127.0.0.1:0", app.Server.Addr())

	issuedAt := time.Now()
	token, expiresAt, err := app.Sessions.IssueToken("someone")
	require.NoError(t, err)
	assert.WithinDuration(t, issuedAt.Add(15*time.Minute), expiresAt, 5*time.Second)
	userID, err := app.Sessions.VerifyToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "someone", userID)
}

func TestContainer_Oracle(t *testing.T) {
	logger, _ := test.NewNullLogger()
	c := &Container{Log: logger}

	oracle := c.initOracle(context.Background(), memoryConfig())
	assert.IsType(t, match.KeywordOracle{}, oracle)
}

func TestContainer_Locker(t *testing.T) {
	logger, _ := test.NewNullLogger()
	c := &Container{Log: logger}

	locker, err := c.initLocker(memoryConfig())
	require.NoError(t, err)
	assert.IsType(t, &lock.LocalLocker{}, locker)
}

func TestNewContainer_ServesHealth(t *testing.T) {
	logger, _ := test.NewNullLogger()
	cfg := memoryConfig()

	app, err := NewContainer(context.Background(), cfg, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	app.Server.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
