package migrations

import (
	"context"
	"database/sql"

	"consultbr_backend/internal/models"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upInit, downInit)
}

// Порядок важен: внешние ключи ссылаются на уже созданные таблицы
var schema = []interface{}{
	&models.User{},
	&models.EntrepreneurProfile{},
	&models.ConsultantProfile{},
	&models.Specialization{},
	&models.PortfolioItem{},
	&models.Project{},
	&models.Proposal{},
	&models.Message{},
	&models.Favorite{},
	&models.Notification{},
	&models.Transaction{},
}

func upInit(ctx context.Context, tx *sql.Tx) error {
	if _, err := tx.ExecContext(ctx, `CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`); err != nil {
		return err
	}

	gormDB, err := openTx(tx)
	if err != nil {
		return err
	}

	if err := gormDB.WithContext(ctx).AutoMigrate(schema...); err != nil {
		return err
	}

	// Поиск консультантов: фильтр по industries @> ARRAY[...]
	_, err = tx.ExecContext(ctx,
		`CREATE INDEX IF NOT EXISTS idx_consultant_profiles_industries ON consultant_profiles USING GIN (industries)`)
	return err
}

func downInit(ctx context.Context, tx *sql.Tx) error {
	gormDB, err := openTx(tx)
	if err != nil {
		return err
	}

	reversed := make([]interface{}, 0, len(schema))
	for i := len(schema) - 1; i >= 0; i-- {
		reversed = append(reversed, schema[i])
	}
	return gormDB.WithContext(ctx).Migrator().DropTable(reversed...)
}
