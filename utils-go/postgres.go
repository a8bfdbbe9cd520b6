package utils

import (
	"context"
	"database/sql"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/extra/bundebug"
	"go.uber.org/fx"
)

type PostgresConfig struct {
	Dsn          string
	IsProduction bool
}

func OpenPostgres(config *PostgresConfig) (*bun.DB, error) {
	sqlDb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(config.Dsn)))
	db := bun.NewDB(sqlDb, pgdialect.New())

	if !config.IsProduction {
		db.AddQueryHook(bundebug.NewQueryHook(bundebug.WithVerbose(true)))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// ProvidePostgres opens the shared pool and closes it when the app stops.
func ProvidePostgres(config *PostgresConfig, lc fx.Lifecycle) (*bun.DB, error) {
	db, err := OpenPostgres(config)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Closing postgres pool")
			return db.Close()
		},
	})

	return db, nil
}
