package container

import (
	"context"
	"fmt"

	"github.com/Debyte404/Obscura/internal/config"
	"github.com/Debyte404/Obscura/internal/delivery/http"
	"github.com/Debyte404/Obscura/internal/delivery/http/handler"
	"github.com/Debyte404/Obscura/internal/delivery/http/middleware"
	"github.com/Debyte404/Obscura/internal/infrastructure/database"
	"github.com/Debyte404/Obscura/internal/infrastructure/gemini"
	"github.com/Debyte404/Obscura/internal/infrastructure/lock"
	"github.com/Debyte404/Obscura/internal/infrastructure/server"
	"github.com/Debyte404/Obscura/internal/repository"
	"github.com/Debyte404/Obscura/internal/repository/memory"
	"github.com/Debyte404/Obscura/internal/repository/postgres"
	"github.com/Debyte404/Obscura/internal/usecase/auth"
	"github.com/Debyte404/Obscura/internal/usecase/chat"
	"github.com/Debyte404/Obscura/internal/usecase/match"
	"github.com/Debyte404/Obscura/internal/usecase/profile"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Container holds all application dependencies
type Container struct {
	Config   *config.Config
	Log      *logrus.Logger
	DB       *sqlx.DB
	Redis    *redis.Client
	Server   *server.Server
	Gemini   *gemini.GeminiClient
	Sessions *auth.SessionUseCase
	Match    *match.MatchUseCase
	limiter  *middleware.MatchThrottle
}

type stores struct {
	users         repository.UserRepository
	conversations repository.ConversationRepository
	pairings      repository.PairingRepository
}

// NewContainer creates a new dependency injection container
func NewContainer(ctx context.Context, cfg *config.Config, log *logrus.Logger) (_ *Container, err error) {
	c := &Container{Config: cfg, Log: log}
	defer func() {
		if err != nil {
			_ = c.Close()
		}
	}()

	st, err := c.initStores(cfg)
	if err != nil {
		return nil, err
	}

	locker, err := c.initLocker(cfg)
	if err != nil {
		return nil, err
	}

	oracle := c.initOracle(ctx, cfg)

	c.Sessions = auth.NewSessionUseCase(cfg.JWT.AccessSecret, cfg.JWT.AccessTTL())
	c.Match = match.NewMatchUseCase(match.Dependencies{
		Users:    st.users,
		Pairings: st.pairings,
		Locker:   locker,
		Oracle:   oracle,
		Logger:   log,
	}, match.Config{
		Cooldown:      cfg.Match.Cooldown,
		PoolLimit:     cfg.Match.PoolLimit,
		OracleTimeout: cfg.Match.OracleTimeout,
		LockTTL:       cfg.Match.LockTTL,
	})
	chatUseCase := chat.NewChatUseCase(st.conversations, st.users, log)
	profileUseCase := profile.NewProfileUseCase(st.users)

	// Initialize handlers
	matchHandler := handler.NewMatchHandler(c.Match, log)
	chatHandler := handler.NewChatHandler(chatUseCase, log)
	profileHandler := handler.NewProfileHandler(profileUseCase, log)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(c.Sessions)
	c.limiter = middleware.NewMatchThrottle(cfg.Match.RatePerMinute, 1, 0)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := http.NewRouter(
		matchHandler,
		chatHandler,
		profileHandler,
		authMiddleware,
		c.limiter,
		log,
		!cfg.IsProduction(),
	)

	c.Server = server.NewServer(&cfg.Server, router.Setup(), log)
	return c, nil
}

func (c *Container) initStores(cfg *config.Config) (*stores, error) {
	switch cfg.Storage.Type {
	case config.StorageTypeMemory:
		c.Log.Warn("using in-memory storage, data is lost on restart")
		store := memory.NewStore()
		return &stores{
			users:         store.Users(),
			conversations: store.Conversations(),
			pairings:      store,
		}, nil
	default:
		db, err := database.NewPostgresDB(&cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		c.DB = db
		return &stores{
			users:         postgres.NewUserRepository(db),
			conversations: postgres.NewConversationRepository(db),
			pairings:      postgres.NewPairingRepository(db),
		}, nil
	}
}

func (c *Container) initLocker(cfg *config.Config) (repository.MatchLocker, error) {
	if cfg.Lock.Type == config.LockTypeLocal {
		return lock.NewLocalLocker(), nil
	}
	redisClient, err := database.NewRedisClient(&cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize redis: %w", err)
	}
	c.Redis = redisClient
	return lock.NewRedisLocker(redisClient), nil
}

// initOracle falls back to the offline keyword oracle when Gemini is unavailable.
func (c *Container) initOracle(ctx context.Context, cfg *config.Config) match.CompatibilityOracle {
	if cfg.Gemini.APIKey == "" {
		c.Log.Warn("GEMINI_API_KEY not set, using keyword compatibility oracle")
		return match.KeywordOracle{}
	}
	client, err := gemini.NewGeminiClient(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
	if err != nil {
		c.Log.WithError(err).Warn("failed to initialize gemini client, using keyword compatibility oracle")
		return match.KeywordOracle{}
	}
	c.Gemini = client
	return client
}

// Close closes all connections
func (c *Container) Close() error {
	if c.limiter != nil {
		c.limiter.Stop()
	}

	if c.Gemini != nil {
		if err := c.Gemini.Close(); err != nil {
			c.Log.WithError(err).Warn("error closing gemini client")
		}
	}

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.Log.WithError(err).Warn("error closing redis")
		}
	}

	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
	}

	return nil
}
