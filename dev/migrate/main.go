package main

import (
	"context"
	"flag"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/rs/zerolog/log"
	"github.com/sigap/sigap-server/migrations"
	"github.com/sigap/sigap-server/utils-go"
)

type Config struct {
	Dsn string `env:"DSN,required"`
}

// Usage: migrate [-env file] up|down|status
func main() {
	utils.ParseFlags()

	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		log.Fatal().Err(err).Msg("Failed to parse env config")
	}

	db, err := utils.OpenPostgres(&utils.PostgresConfig{Dsn: cfg.Dsn, IsProduction: true})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to postgres")
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	switch flag.Arg(0) {
	case "", "up":
		err = migrations.Up(ctx, db)
	case "down":
		err = migrations.Down(ctx, db)
	case "status":
		err = migrations.Status(ctx, db)
	default:
		log.Fatal().Str("command", flag.Arg(0)).Msg("Unknown command, expected up|down|status")
	}

	if err != nil {
		log.Fatal().Err(err).Msg("Migration failed")
	}
}
