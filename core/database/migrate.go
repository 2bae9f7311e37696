package database

import (
	"context"
	"embed"

	"hireflow-api/core/logger"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Migrate runs all embedded SQL migrations.
func Migrate(ctx context.Context, db Database) error {
	goose.SetBaseFS(migrations)

	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	if err := goose.UpContext(ctx, db.db, "migrations"); err != nil {
		logger.Error("Database:Migrate", err)
		return err
	}

	logger.Info("Database migrations applied")
	return nil
}
