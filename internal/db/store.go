package db

import (
	"context"
	"fmt"
	"reflect"

	"github.com/bartek5186/sahamit-tms/internal/validation"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Record to wiersz w postaci kolumna -> wartość (natywne typy bazy, nil = NULL).
type Record map[string]any

const replaceBatchSize = 200

func (h *Handle) table(name string) (*Table, error) {
	t, ok := h.Catalog.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTable, name)
	}
	return t, nil
}

// ReadAll zwraca wszystkie wiersze tabeli. Brak tabeli lub błąd odczytu daje pusty wynik,
// żeby ekran mógł pokazać "brak danych" zamiast się wywrócić.
func (h *Handle) ReadAll(ctx context.Context, table string) []Record {
	t, err := h.table(table)
	if err != nil {
		h.log.Warn().Err(err).Msg("read-all: pomijam")
		return []Record{}
	}

	var rows []map[string]any
	if err := h.DB.WithContext(ctx).Table(t.Name).Order(orderBy(t.Key)).Find(&rows).Error; err != nil {
		h.log.Warn().Err(err).Str("table", t.Name).Msg("read-all nieudany, zwracam pusty wynik")
		return []Record{}
	}

	out := make([]Record, 0, len(rows))
	for _, r := range rows {
		out = append(out, Record(r))
	}
	return out
}

// ReadAllInto to typowana wersja ReadAll (dest: wskaźnik na slice modeli), z tą samą tolerancją błędów.
func (h *Handle) ReadAllInto(ctx context.Context, table string, dest any) {
	t, err := h.table(table)
	if err != nil {
		h.log.Warn().Err(err).Msg("read-all: pomijam")
		return
	}
	if err := h.DB.WithContext(ctx).Table(t.Name).Order(orderBy(t.Key)).Find(dest).Error; err != nil {
		h.log.Warn().Err(err).Str("table", t.Name).Msg("read-all nieudany, zwracam pusty wynik")
		resetSlice(dest)
	}
}

// ReadWhere zwraca wiersze gdzie column = value, posortowane po sortColumn.
func (h *Handle) ReadWhere(ctx context.Context, table, column string, value any, sortColumn string) ([]Record, error) {
	var rows []map[string]any
	if err := h.readWhere(ctx, table, column, value, sortColumn, &rows); err != nil {
		return nil, err
	}
	out := make([]Record, 0, len(rows))
	for _, r := range rows {
		out = append(out, Record(r))
	}
	return out, nil
}

func (h *Handle) ReadWhereInto(ctx context.Context, table, column string, value any, sortColumn string, dest any) error {
	return h.readWhere(ctx, table, column, value, sortColumn, dest)
}

func (h *Handle) readWhere(ctx context.Context, table, column string, value any, sortColumn string, dest any) error {
	t, err := h.table(table)
	if err != nil {
		return err
	}
	var ve validation.Errors
	where, ok := t.Column(column)
	if !ok {
		ve.Add(column, "unknown column in "+t.Name)
	}
	sortCol, ok := t.Column(sortColumn)
	if !ok {
		ve.Add(sortColumn, "unknown column in "+t.Name)
	}
	if err := ve.Err(); err != nil {
		return err
	}

	return h.DB.WithContext(ctx).
		Table(t.Name).
		Where(clause.Eq{Column: clause.Column{Name: where.Name}, Value: value}).
		Order(orderBy(sortCol.Name)).
		Find(dest).Error
}

func (h *Handle) Count(ctx context.Context, table string) (int64, error) {
	t, err := h.table(table)
	if err != nil {
		return 0, err
	}
	var n int64
	err = h.DB.WithContext(ctx).Table(t.Name).Count(&n).Error
	return n, err
}

// Upsert wstawia pełny rekord; przy konflikcie klucza nadpisuje wszystkie pozostałe kolumny.
// Kolumny nieobecne w rekordzie dostają wartość domyślną albo NULL, więc brak kolumny NOT NULL
// bez domyślnej kończy się błędem ograniczenia zwróconym przez bazę.
func (h *Handle) Upsert(ctx context.Context, table string, rec Record) error {
	t, err := h.table(table)
	if err != nil {
		return err
	}
	row, err := t.normalize(rec, true)
	if err != nil {
		return err
	}
	full := t.complete(row)

	update := make([]string, 0, len(full))
	for _, c := range t.Columns {
		if _, ok := full[c.Name]; ok && c.Name != t.Key {
			update = append(update, c.Name)
		}
	}
	onConflict := clause.OnConflict{Columns: []clause.Column{{Name: t.Key}}}
	if len(update) == 0 {
		onConflict.DoNothing = true
	} else {
		onConflict.DoUpdates = clause.AssignmentColumns(update)
	}

	if err := h.DB.WithContext(ctx).Table(t.Name).Clauses(onConflict).Create(map[string]any(full)).Error; err != nil {
		h.log.Error().Err(err).Str("table", t.Name).Interface("key", row[t.Key]).Msg("upsert nieudany")
		return err
	}
	h.log.Info().Str("table", t.Name).Interface("key", row[t.Key]).Msg("upsert")
	return nil
}

// PatchUpsert ustawia tylko kolumny obecne w partial. Istniejący wiersz zachowuje resztę kolumn,
// nowy wiersz dostaje dla pominiętych kolumn wartości domyślne bazy.
// Sprawdzenie istnienia i zapis idą w jednej transakcji tego wywołania.
func (h *Handle) PatchUpsert(ctx context.Context, table string, key any, partial Record) error {
	t, err := h.table(table)
	if err != nil {
		return err
	}
	merged := make(Record, len(partial)+1)
	for k, v := range partial {
		merged[k] = v
	}
	merged[t.Key] = key

	row, err := t.normalize(merged, true)
	if err != nil {
		return err
	}
	changes := make(map[string]any, len(row))
	for k, v := range row {
		if k != t.Key {
			changes[k] = v
		}
	}
	keyEq := clause.Eq{Column: clause.Column{Name: t.Key}, Value: key}

	err = h.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Table(t.Name).Where(keyEq).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return tx.Table(t.Name).Create(map[string]any(row)).Error
		}
		if len(changes) == 0 {
			return nil
		}
		return tx.Table(t.Name).Where(keyEq).Updates(changes).Error
	})
	if err != nil {
		h.log.Error().Err(err).Str("table", t.Name).Interface("key", key).Msg("patch-upsert nieudany")
		return err
	}
	h.log.Info().Str("table", t.Name).Interface("key", key).Int("columns", len(changes)).Msg("patch-upsert")
	return nil
}

// Replace kasuje całą zawartość tabeli i wstawia podane wiersze (import CSV/XLSX).
// To operacja niszcząca: klucze i NOT NULL pilnuje tylko baza przy zapisie.
// Definicja tabeli zostaje, więc baza odrzuci wiersze łamiące ograniczenia i całość się wycofa.
func (h *Handle) Replace(ctx context.Context, table string, rows []Record) (int, error) {
	t, err := h.table(table)
	if err != nil {
		return 0, err
	}

	keyCol, _ := t.Column(t.Key)
	batch := make([]map[string]any, 0, len(rows))
	for i, r := range rows {
		row, err := t.normalize(r, !keyCol.AutoIncrement)
		if err != nil {
			return 0, fmt.Errorf("row %d: %w", i+1, err)
		}
		batch = append(batch, map[string]any(row))
	}

	err = h.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM ?", clause.Table{Name: t.Name}).Error; err != nil {
			return err
		}
		if len(batch) == 0 {
			return nil
		}
		return tx.Table(t.Name).CreateInBatches(batch, replaceBatchSize).Error
	})
	if err != nil {
		h.log.Error().Err(err).Str("table", t.Name).Int("rows", len(batch)).Msg("replace nieudany")
		return 0, err
	}
	h.log.Info().Str("table", t.Name).Int("rows", len(batch)).Msg("tabela zastąpiona")
	return len(batch), nil
}

// LogImport zapisuje ślad po imporcie w shm_ImportLog.
func (h *Handle) LogImport(ctx context.Context, entry *ImportLog) error {
	return h.DB.WithContext(ctx).Create(entry).Error
}

func orderBy(column string) clause.OrderByColumn {
	return clause.OrderByColumn{Column: clause.Column{Name: column}}
}

func resetSlice(dest any) {
	v := reflect.ValueOf(dest)
	if v.Kind() == reflect.Pointer && !v.IsNil() {
		v.Elem().Set(reflect.Zero(v.Elem().Type()))
	}
}

// LogLogin zapisuje rozpoczęcie sesji operatora w shm_LoginLog.
func (h *Handle) LogLogin(ctx context.Context, entry *LoginLog) error {
	return h.DB.WithContext(ctx).Create(entry).Error
}
