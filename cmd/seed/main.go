// Command seed loads demo profiles into Postgres and prints a bearer token for each.
package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/Debyte404/Obscura/internal/config"
	"github.com/Debyte404/Obscura/internal/infrastructure/database"
	"github.com/Debyte404/Obscura/internal/infrastructure/logger"
	"github.com/Debyte404/Obscura/internal/repository/postgres"
	"github.com/Debyte404/Obscura/internal/usecase/auth"
	"github.com/Debyte404/Obscura/internal/usecase/profile"
	"github.com/sirupsen/logrus"
)

func main() {
	count := flag.Int("n", 20, "number of demo profiles")
	seed := flag.Uint64("seed", 1, "random seed")
	tokenTTL := flag.Duration("token-ttl", 24*time.Hour, "lifetime of the printed tokens")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load config")
	}
	log := logger.New(cfg.Logging)

	if cfg.IsProduction() {
		log.Fatal("refusing to seed a production database")
	}
	if cfg.Storage.Type != config.StorageTypePostgres {
		log.Fatal("seeding requires STORAGE_TYPE=postgres")
	}

	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}
	defer db.Close()

	users := postgres.NewUserRepository(db)
	sessions := auth.NewSessionUseCase(cfg.JWT.AccessSecret, *tokenTTL)
	ctx := context.Background()

	for _, p := range profile.DemoProfiles(*count, *seed) {
		if err := users.Upsert(ctx, p); err != nil {
			log.WithError(err).WithField("user_id", p.ID).Fatal("failed to upsert profile")
		}
		token, _, err := sessions.IssueToken(p.ID)
		if err != nil {
			log.WithError(err).Fatal("failed to issue token")
		}
		fmt.Printf("%s\t%s\t%s\n", p.ID, p.HomeRegion, token)
	}
	log.WithField("count", *count).Info("demo profiles seeded")
}
