package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upSeedSpecializations, downSeedSpecializations)
}

var defaultSpecializations = []struct {
	Name     string
	Category string
}{
	{"Tecnologia", "Tecnologia"},
	{"E-commerce", "Vendas"},
	{"Serviços", "Operações"},
	{"Manufatura", "Operações"},
	{"Saúde", "Setorial"},
	{"Educação", "Setorial"},
	{"Finanças", "Finanças"},
	{"Varejo", "Vendas"},
	{"Marketing", "Marketing"},
	{"Vendas", "Vendas"},
	{"Jurídico", "Gestão"},
	{"Recursos Humanos", "Gestão"},
	{"Estratégia", "Gestão"},
	{"Outros", "Outros"},
}

func upSeedSpecializations(ctx context.Context, tx *sql.Tx) error {
	for _, s := range defaultSpecializations {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO specializations (name, category, is_active) VALUES ($1, $2, true) ON CONFLICT (name) DO NOTHING`,
			s.Name, s.Category,
		); err != nil {
			return err
		}
	}
	return nil
}

func downSeedSpecializations(ctx context.Context, tx *sql.Tx) error {
	for _, s := range defaultSpecializations {
		if _, err := tx.ExecContext(ctx, `DELETE FROM specializations WHERE name = $1`, s.Name); err != nil {
			return err
		}
	}
	return nil
}
