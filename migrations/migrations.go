package migrations

import (
	"context"
	"embed"

	"github.com/rs/zerolog/log"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"
)

//go:embed *.sql
var sqlMigrations embed.FS

var Migrations = migrate.NewMigrations()

func init() {
	if err := Migrations.Discover(sqlMigrations); err != nil {
		panic(err)
	}
}

// Up applies every pending migration under the migration lock.
func Up(ctx context.Context, db *bun.DB) error {
	migrator := migrate.NewMigrator(db, Migrations)
	if err := migrator.Init(ctx); err != nil {
		return err
	}

	if err := migrator.Lock(ctx); err != nil {
		return err
	}
	defer migrator.Unlock(ctx)

	group, err := migrator.Migrate(ctx)
	if err != nil {
		return err
	}

	if group.IsZero() {
		log.Info().Msg("No new migrations to run")
		return nil
	}
	log.Info().Str("group", group.String()).Msg("Migrated")
	return nil
}

// Down rolls back the last applied migration group.
func Down(ctx context.Context, db *bun.DB) error {
	migrator := migrate.NewMigrator(db, Migrations)
	if err := migrator.Init(ctx); err != nil {
		return err
	}

	if err := migrator.Lock(ctx); err != nil {
		return err
	}
	defer migrator.Unlock(ctx)

	group, err := migrator.Rollback(ctx)
	if err != nil {
		return err
	}

	if group.IsZero() {
		log.Info().Msg("No groups to roll back")
		return nil
	}
	log.Info().Str("group", group.String()).Msg("Rolled back")
	return nil
}

func Status(ctx context.Context, db *bun.DB) error {
	migrator := migrate.NewMigrator(db, Migrations)
	if err := migrator.Init(ctx); err != nil {
		return err
	}

	ms, err := migrator.MigrationsWithStatus(ctx)
	if err != nil {
		return err
	}
	log.Info().Str("applied", ms.Applied().String()).Str("unapplied", ms.Unapplied().String()).Msg("Migration status")
	return nil
}
