package tms

import (
	"context"
	"fmt"
	"strings"

	"github.com/bartek5186/sahamit-tms/internal/dataio"
	"github.com/bartek5186/sahamit-tms/internal/db"
	"github.com/bartek5186/sahamit-tms/internal/validation"
)

// RefKind to rodzaj danych referencyjnych; każdy to tabela klucz -> shm_name.
type RefKind string

const (
	KindSupplier RefKind = "supplier"
	KindDC       RefKind = "dc"
	KindProduct  RefKind = "product"
)

var RefKinds = []RefKind{KindSupplier, KindDC, KindProduct}

var refTables = map[RefKind]string{
	KindSupplier: "Supplier",
	KindDC:       "DistributionCenter",
	KindProduct:  "Product",
}

const refNameColumn = "shm_name"

func ParseRefKind(s string) (RefKind, error) {
	k := RefKind(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := refTables[k]; !ok {
		var ve validation.Errors
		ve.Add("kind", fmt.Sprintf("must be one of: %s, %s, %s", KindSupplier, KindDC, KindProduct))
		return "", ve.Err()
	}
	return k, nil
}

type Reference struct {
	Code string
	Name string
}

func (s *Service) refTable(kind RefKind) (*db.Table, error) {
	name, ok := refTables[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", db.ErrUnknownTable, kind)
	}
	t, ok := s.db.Catalog.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", db.ErrUnknownTable, name)
	}
	return t, nil
}

// References zwraca wszystkie rekordy danego rodzaju, po kluczu.
func (s *Service) References(ctx context.Context, kind RefKind) ([]Reference, error) {
	t, err := s.refTable(kind)
	if err != nil {
		return nil, err
	}
	rows := s.db.ReadAll(ctx, t.Name)
	out := make([]Reference, 0, len(rows))
	for _, r := range rows {
		out = append(out, Reference{Code: dataio.FormatValue(r[t.Key]), Name: dataio.FormatValue(r[refNameColumn])})
	}
	return out, nil
}

// SaveReference dodaje albo zmienia nazwę rekordu referencyjnego (tylko klucz i shm_name).
func (s *Service) SaveReference(ctx context.Context, kind RefKind, code, name string) error {
	t, err := s.refTable(kind)
	if err != nil {
		return err
	}
	var ve validation.Errors
	validation.RequireField(&ve, "code", code)
	if err := ve.Err(); err != nil {
		return err
	}
	return s.db.PatchUpsert(ctx, t.Name, strings.TrimSpace(code), db.Record{refNameColumn: strings.TrimSpace(name)})
}
