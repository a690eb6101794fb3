package tms

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bartek5186/sahamit-tms/internal/dataio"
	"github.com/bartek5186/sahamit-tms/internal/db"
	"github.com/bartek5186/sahamit-tms/internal/validation"
)

// ImportTargets: tabele, które można zastąpić plikiem.
var ImportTargets = []string{"shm_POHeader", "shm_PODetails", "shm_Supplier", "shm_DC", "shm_Product", "shm_User"}

type ImportResult struct {
	Table  string
	Rows   int
	SHA256 string
}

func importTarget(cat *db.Catalog, name string) (*db.Table, error) {
	t, ok := cat.Lookup(name)
	if ok {
		for _, target := range ImportTargets {
			if t.Name == target {
				return t, nil
			}
		}
	}
	var ve validation.Errors
	ve.Add("table", "must be one of: "+strings.Join(ImportTargets, ", "))
	return nil, ve.Err()
}

// ImportFile zastępuje całą zawartość tabeli wierszami z pliku CSV albo XLSX.
// Nagłówek to nazwy kolumn tabeli; wartości są rzutowane na typy kolumn, puste komórki to NULL.
// Po udanym zastąpieniu zostaje wpis w shm_ImportLog.
func (s *Service) ImportFile(ctx context.Context, actor, table, path string) (ImportResult, error) {
	t, err := importTarget(s.db.Catalog, table)
	if err != nil {
		return ImportResult{}, err
	}
	format, err := dataio.FormatOf(path)
	if err != nil {
		return ImportResult{}, err
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return ImportResult{}, err
	}
	sum := sha256.Sum256(raw)

	sheet, err := dataio.Read(bytes.NewReader(raw), format, s.encoding)
	if err != nil {
		return ImportResult{}, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}

	cols := make([]db.Column, len(sheet.Header))
	known := make([]bool, len(sheet.Header))
	for i, h := range sheet.Header {
		cols[i], known[i] = t.Column(h)
	}
	rows := make([]db.Record, 0, len(sheet.Rows))
	for _, cells := range sheet.Rows {
		rec := make(db.Record, len(cells))
		for i, cell := range cells {
			if known[i] {
				rec[cols[i].Name] = cols[i].Coerce(cell)
			} else {
				// nieznaną kolumnę odrzuci walidacja rekordu w Replace
				rec[sheet.Header[i]] = cell
			}
		}
		rows = append(rows, rec)
	}

	n, err := s.db.Replace(ctx, t.Name, rows)
	if err != nil {
		return ImportResult{}, err
	}

	res := ImportResult{Table: t.Name, Rows: n, SHA256: hex.EncodeToString(sum[:])}
	entry := &db.ImportLog{
		Target:     t.Name,
		Filename:   filepath.Base(path),
		SHA256:     res.SHA256,
		Rows:       n,
		ImportedAt: s.stamp(),
		ImportedBy: actor,
	}
	if err := s.db.LogImport(ctx, entry); err != nil {
		// tabela już zastąpiona, brak wpisu w historii nie cofa importu
		s.log.Warn().Err(err).Str("table", t.Name).Msg("nie zapisano historii importu")
	}
	s.log.Info().Str("table", t.Name).Str("file", path).Int("rows", n).Str("sha256", res.SHA256).Msg("import zakończony")
	return res, nil
}

// ExportTable zapisuje całą tabelę do CSV albo XLSX (wg rozszerzenia), kolumny w kolejności schematu.
func (s *Service) ExportTable(ctx context.Context, table, path string) (int, error) {
	t, ok := s.db.Catalog.Lookup(table)
	if !ok {
		return 0, fmt.Errorf("%w: %q", db.ErrUnknownTable, table)
	}
	if _, err := dataio.FormatOf(path); err != nil {
		return 0, err
	}

	header := t.ColumnNames()
	out := &dataio.Table{Header: header}
	for _, r := range s.db.ReadAll(ctx, t.Name) {
		row := make([]string, len(header))
		for i, c := range header {
			row[i] = dataio.FormatValue(r[c])
		}
		out.Rows = append(out.Rows, row)
	}

	if err := dataio.WriteFile(path, t.Name, out); err != nil {
		return 0, err
	}
	s.log.Info().Str("table", t.Name).Str("file", path).Int("rows", len(out.Rows)).Msg("eksport zakończony")
	return len(out.Rows), nil
}

func (s *Service) Users(ctx context.Context) []db.User {
	var users []db.User
	s.db.ReadAllInto(ctx, "User", &users)
	return users
}

// Imports zwraca historię importów, od najstarszego.
func (s *Service) Imports(ctx context.Context) []db.ImportLog {
	var logs []db.ImportLog
	s.db.ReadAllInto(ctx, "ImportLog", &logs)
	return logs
}

// RecordSession zapisuje start sesji operatora w shm_LoginLog.
func (s *Service) RecordSession(ctx context.Context, actor string) error {
	now := s.now()
	return s.db.LogLogin(ctx, &db.LoginLog{
		User:    &actor,
		LogDate: ptr(now.Format(validation.DateLayout)),
		LogTime: ptr(now.Format("15:04:05")),
	})
}

func ptr[T any](v T) *T { return &v }
