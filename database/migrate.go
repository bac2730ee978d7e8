package database

import (
	"context"
	"database/sql"
	"fmt"

	"consultbr_backend/internal/logger"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	_ "consultbr_backend/database/migrations"
)

// MigrationStatus - состояние одной миграции для consultbr-migrate status
type MigrationStatus struct {
	Version int64
	Name    string
	Applied bool
}

func withProvider(ctx context.Context, dsn string, fn func(*goose.Provider) error) error {
	sqlDB, err := goose.OpenDBWithDriver("pgx", dsn)
	if err != nil {
		return fmt.Errorf("failed to open migration connection: %w", err)
	}
	defer func(db *sql.DB) { _ = db.Close() }(sqlDB)

	// Миграции написаны на Go и регистрируются глобально, файловая система не нужна
	provider, err := goose.NewProvider(goose.DialectPostgres, sqlDB, nil)
	if err != nil {
		return fmt.Errorf("failed to create migration provider: %w", err)
	}
	return fn(provider)
}

// Migrate применяет все зарегистрированные Go-миграции через goose
func Migrate(ctx context.Context, dsn string) error {
	return withProvider(ctx, dsn, func(p *goose.Provider) error {
		results, err := p.Up(ctx)
		if err != nil {
			return fmt.Errorf("failed to apply migrations: %w", err)
		}
		for _, r := range results {
			logger.Info("migration applied", "version", r.Source.Version, "path", r.Source.Path, "duration", r.Duration)
		}
		if len(results) == 0 {
			logger.Info("database schema is up to date")
		}
		return nil
	})
}

// Rollback откатывает последнюю миграцию
func Rollback(ctx context.Context, dsn string) error {
	return withProvider(ctx, dsn, func(p *goose.Provider) error {
		result, err := p.Down(ctx)
		if err != nil {
			return fmt.Errorf("failed to roll back migration: %w", err)
		}
		logger.Info("migration rolled back", "version", result.Source.Version)
		return nil
	})
}

func Status(ctx context.Context, dsn string) ([]MigrationStatus, error) {
	var out []MigrationStatus
	err := withProvider(ctx, dsn, func(p *goose.Provider) error {
		statuses, err := p.Status(ctx)
		if err != nil {
			return fmt.Errorf("failed to read migration status: %w", err)
		}
		for _, st := range statuses {
			out = append(out, MigrationStatus{
				Version: st.Source.Version,
				Name:    st.Source.Path,
				Applied: st.State == goose.StateApplied,
			})
		}
		return nil
	})
	return out, err
}
