package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func missingFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), "missing.env")
}

func TestLoadFile_Defaults(t *testing.T) {
	t.Setenv("STORAGE_TYPE", "memory")
	t.Setenv("LOCK_TYPE", "local")
	t.Setenv("JWT_ACCESS_SECRET", testSecret)

	cfg, err := LoadFile(missingFile(t))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "development", cfg.Server.Env)
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, 12*time.Hour, cfg.Match.Cooldown)
	assert.Equal(t, 50, cfg.Match.PoolLimit)
	assert.Equal(t, 4*time.Second, cfg.Match.OracleTimeout)
	assert.Equal(t, 30*time.Second, cfg.Match.LockTTL)
	assert.Equal(t, 10, cfg.Match.RatePerMinute)
	assert.Equal(t, "gemini-2.5-flash", cfg.Gemini.Model)
	assert.Equal(t, time.Hour, cfg.JWT.AccessTTL())
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadFile_OracleTimeoutClamp(t *testing.T) {
	tests := []struct {
		raw  string
		want time.Duration
	}{
		{raw: "100ms", want: time.Second},
		{raw: "3s", want: 3 * time.Second},
		{raw: "1m", want: 10 * time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			t.Setenv("STORAGE_TYPE", "memory")
			t.Setenv("LOCK_TYPE", "local")
			t.Setenv("JWT_ACCESS_SECRET", testSecret)
			t.Setenv("ORACLE_TIMEOUT", tt.raw)

			cfg, err := LoadFile(missingFile(t))
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.Match.OracleTimeout)
		})
	}
}

func TestLoadFile_EnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "DB_HOST=db.internal\nDB_USER=obscura\nDB_NAME=obscura\nJWT_ACCESS_SECRET=" + testSecret + "\nMATCH_POOL_LIMIT=20\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("MATCH_POOL_LIMIT", "25")

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 25, cfg.Match.PoolLimit, "environment overrides the file")
	assert.Equal(t, "host=db.internal port=5432 user=obscura password= dbname=obscura sslmode=disable", cfg.Database.GetDSN())
	assert.Equal(t, "localhost:6379", cfg.Redis.GetAddr())
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:   ServerConfig{Env: "development"},
			Database: DatabaseConfig{Host: "localhost", User: "u", DBName: "db"},
			Redis:    RedisConfig{Host: "localhost"},
			JWT:      JWTConfig{AccessSecret: testSecret},
			Match:    MatchConfig{Cooldown: time.Hour, PoolLimit: 50, RatePerMinute: 5},
			Storage:  StorageConfig{Type: StorageTypePostgres},
			Lock:     LockConfig{Type: LockTypeRedis},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "missing db host", mutate: func(c *Config) { c.Database.Host = "" }, wantErr: "database host is required"},
		{name: "memory without db", mutate: func(c *Config) {
			c.Storage.Type = StorageTypeMemory
			c.Database = DatabaseConfig{}
		}},
		{name: "memory in production", mutate: func(c *Config) {
			c.Storage.Type = StorageTypeMemory
			c.Server.Env = EnvProduction
		}, wantErr: "memory storage is not allowed in production"},
		{name: "unknown storage", mutate: func(c *Config) { c.Storage.Type = "mongo" }, wantErr: `unknown storage type "mongo"`},
		{name: "redis lock without host", mutate: func(c *Config) { c.Redis.Host = "" }, wantErr: "redis host is required"},
		{name: "unknown lock", mutate: func(c *Config) { c.Lock.Type = "etcd" }, wantErr: `unknown lock type "etcd"`},
		{name: "short secret", mutate: func(c *Config) { c.JWT.AccessSecret = "short" }, wantErr: "at least 32 characters"},
		{name: "pool too large", mutate: func(c *Config) { c.Match.PoolLimit = 51 }, wantErr: "between 1 and 50"},
		{name: "no cooldown", mutate: func(c *Config) { c.Match.Cooldown = 0 }, wantErr: "cooldown must be positive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
