package main

import (
	"context"

	"github.com/caarlos0/env/v10"
	"github.com/imroc/req/v3"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/skynet2/conveyancing-inbox/pkg/dashboard"
	"github.com/skynet2/conveyancing-inbox/pkg/repo"
)

// Mirrors dashboard transactions into Postgres so the server can match without
// calling the dashboard per message.
func main() {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		log.Fatal().Err(err).Msg("failed to parse config")
	}

	ctx := log.Logger.WithContext(context.Background())

	transactions, err := dashboard.NewClient(cfg.DashboardApiKey, cfg.DashboardURL, req.DefaultClient()).
		ListTransactions(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to fetch dashboard transactions")
	}

	db, err := gorm.Open(postgres.Open(cfg.PostgresConnectionString), &gorm.Config{})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to get postgres")
	}

	pg := repo.NewPostgres(db)

	log.Info().Msg("[Db] start migrations")

	if err = pg.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate")
	}

	if err = pg.SyncTransactions(ctx, transactions); err != nil {
		log.Fatal().Err(err).Msg("failed to sync transactions")
	}

	log.Info().Int("count", len(transactions)).Msg("transactions synced")
}
