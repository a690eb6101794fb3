package db

import (
	"context"
	"fmt"
)

// Migrate tworzy brakujące tabele. Istniejących nie rusza: ani kolumn, ani danych,
// więc można to wołać przy każdym starcie.
func (h *Handle) Migrate(ctx context.Context) error {
	m := h.DB.WithContext(ctx).Migrator()

	for _, t := range h.Catalog.Tables() {
		if m.HasTable(t.Name) {
			continue
		}
		if err := m.CreateTable(t.Model); err != nil {
			return fmt.Errorf("create table %s: %w", t.Name, err)
		}
		h.log.Info().Str("table", t.Name).Msg("utworzono tabelę")
	}
	return nil
}
