package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

const (
	StorageTypePostgres = "postgres"
	StorageTypeMemory   = "memory"

	LockTypeRedis = "redis"
	LockTypeLocal = "local"

	EnvProduction = "production"

	minOracleTimeout = time.Second
	maxOracleTimeout = 10 * time.Second
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Gemini   GeminiConfig
	Match    MatchConfig
	Storage  StorageConfig
	Lock     LockConfig
	Logging  LoggingConfig
}

type ServerConfig struct {
	Host         string
	Port         int
	Env          string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type JWTConfig struct {
	AccessSecret    string
	AccessExpiryMin int
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

// MatchConfig tunes the matchmaking engine.
type MatchConfig struct {
	Cooldown      time.Duration
	PoolLimit     int
	OracleTimeout time.Duration
	LockTTL       time.Duration
	RatePerMinute int
}

type StorageConfig struct {
	Type string
}

type LockConfig struct {
	Type string
}

type LoggingConfig struct {
	Level  string
	Format string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("ENV", "development")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("JWT_ACCESS_EXPIRY_MIN", 60)
	v.SetDefault("GEMINI_MODEL", "gemini-2.5-flash")
	v.SetDefault("ORACLE_TIMEOUT", "4s")
	v.SetDefault("MATCH_COOLDOWN", "12h")
	v.SetDefault("MATCH_POOL_LIMIT", 50)
	v.SetDefault("MATCH_LOCK_TTL", "30s")
	v.SetDefault("MATCH_RATE_PER_MINUTE", 10)
	v.SetDefault("STORAGE_TYPE", StorageTypePostgres)
	v.SetDefault("LOCK_TYPE", LockTypeRedis)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
}

// Load loads configuration from environment variables or .env file
func Load() (*Config, error) {
	return LoadFile(".env")
}

// LoadFile reads path if it exists and lets the environment override it.
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	v.AutomaticEnv()
	setDefaults(v)

	// Try to read from .env file, but don't fail if it doesn't exist
	_ = v.ReadInConfig()

	config := &Config{
		Server: ServerConfig{
			Host:         v.GetString("SERVER_HOST"),
			Port:         v.GetInt("SERVER_PORT"),
			Env:          v.GetString("ENV"),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetInt("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			DBName:   v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSL_MODE"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetInt("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			AccessSecret:    v.GetString("JWT_ACCESS_SECRET"),
			AccessExpiryMin: v.GetInt("JWT_ACCESS_EXPIRY_MIN"),
		},
		Gemini: GeminiConfig{
			APIKey: v.GetString("GEMINI_API_KEY"),
			Model:  v.GetString("GEMINI_MODEL"),
		},
		Match: MatchConfig{
			Cooldown:      v.GetDuration("MATCH_COOLDOWN"),
			PoolLimit:     v.GetInt("MATCH_POOL_LIMIT"),
			OracleTimeout: clampDuration(v.GetDuration("ORACLE_TIMEOUT"), minOracleTimeout, maxOracleTimeout),
			LockTTL:       v.GetDuration("MATCH_LOCK_TTL"),
			RatePerMinute: v.GetInt("MATCH_RATE_PER_MINUTE"),
		},
		Storage: StorageConfig{
			Type: v.GetString("STORAGE_TYPE"),
		},
		Lock: LockConfig{
			Type: v.GetString("LOCK_TYPE"),
		},
		Logging: LoggingConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
	}

	// Validate critical configuration
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate validates critical configuration values
func (c *Config) Validate() error {
	switch c.Storage.Type {
	case StorageTypePostgres:
		if c.Database.Host == "" {
			return fmt.Errorf("database host is required")
		}
		if c.Database.User == "" {
			return fmt.Errorf("database user is required")
		}
		if c.Database.DBName == "" {
			return fmt.Errorf("database name is required")
		}
	case StorageTypeMemory:
		if c.IsProduction() {
			return fmt.Errorf("memory storage is not allowed in production")
		}
	default:
		return fmt.Errorf("unknown storage type %q", c.Storage.Type)
	}

	switch c.Lock.Type {
	case LockTypeRedis:
		if c.Redis.Host == "" {
			return fmt.Errorf("redis host is required for redis locks")
		}
	case LockTypeLocal:
	default:
		return fmt.Errorf("unknown lock type %q", c.Lock.Type)
	}

	if c.JWT.AccessSecret == "" {
		return fmt.Errorf("JWT access secret is required")
	}
	if len(c.JWT.AccessSecret) < 32 {
		return fmt.Errorf("JWT access secret must be at least 32 characters")
	}
	if c.Match.Cooldown <= 0 {
		return fmt.Errorf("match cooldown must be positive")
	}
	if c.Match.PoolLimit <= 0 || c.Match.PoolLimit > 50 {
		return fmt.Errorf("match pool limit must be between 1 and 50")
	}
	if c.Match.RatePerMinute <= 0 {
		return fmt.Errorf("match rate per minute must be positive")
	}
	return nil
}

// IsProduction reports whether development tooling must stay disabled.
func (c *Config) IsProduction() bool {
	return c.Server.Env == EnvProduction
}

// AccessTTL is the lifetime of issued bearer tokens.
func (c *JWTConfig) AccessTTL() time.Duration {
	return time.Duration(c.AccessExpiryMin) * time.Minute
}

// GetDSN returns PostgreSQL connection string
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// GetAddr returns Redis address
func (c *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func clampDuration(d, lo, hi time.Duration) time.Duration {
	if d < lo {
		return lo
	}
	if d > hi {
		return hi
	}
	return d
}
