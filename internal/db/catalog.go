package db

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/bartek5186/sahamit-tms/internal/validation"
	"gorm.io/gorm/schema"
)

// Column to statyczny opis kolumny wyprowadzony z modelu gorm.
type Column struct {
	Name          string
	Type          schema.DataType
	NotNull       bool
	PrimaryKey    bool
	AutoIncrement bool
	HasDefault    bool
	Default       any
}

type Table struct {
	Name    string
	Aliases []string
	Model   any
	Key     string
	Columns []Column

	byLower map[string]int
}

// Catalog trzyma opis wszystkich tabel aplikacji, w kolejności tworzenia.
type Catalog struct {
	tables []*Table
	lookup map[string]*Table
}

type entry struct {
	model   any
	aliases []string
}

var registry = []entry{
	{&Order{}, []string{"Order", "POHeader"}},
	{&OrderLine{}, []string{"OrderLine", "PODetails"}},
	{&Supplier{}, []string{"Supplier"}},
	{&DistributionCenter{}, []string{"DistributionCenter", "DC"}},
	{&Product{}, []string{"Product"}},
	{&User{}, []string{"User"}},
	{&LoginLog{}, []string{"LoginLog"}},
	{&KPITransport{}, []string{"KPITransport"}},
	{&KPISupplier{}, []string{"KPISupplier"}},
	{&ImportLog{}, []string{"ImportLog"}},
}

func NewCatalog() (*Catalog, error) {
	cache := &sync.Map{}
	c := &Catalog{lookup: map[string]*Table{}}

	for _, e := range registry {
		s, err := schema.Parse(e.model, cache, schema.NamingStrategy{})
		if err != nil {
			return nil, fmt.Errorf("parse schema %T: %w", e.model, err)
		}
		t := &Table{Name: s.Table, Aliases: e.aliases, Model: e.model, byLower: map[string]int{}}
		for _, f := range s.Fields {
			if f.DBName == "" {
				continue
			}
			col := Column{
				Name:          f.DBName,
				Type:          f.DataType,
				NotNull:       f.NotNull,
				PrimaryKey:    f.PrimaryKey,
				AutoIncrement: f.AutoIncrement,
				HasDefault:    f.HasDefaultValue && f.DefaultValueInterface != nil,
				Default:       f.DefaultValueInterface,
			}
			if col.PrimaryKey {
				t.Key = col.Name
			}
			t.byLower[strings.ToLower(col.Name)] = len(t.Columns)
			t.Columns = append(t.Columns, col)
		}
		if t.Key == "" {
			return nil, fmt.Errorf("tabela %s nie ma klucza głównego", t.Name)
		}

		c.tables = append(c.tables, t)
		c.lookup[strings.ToLower(t.Name)] = t
		for _, a := range e.aliases {
			c.lookup[strings.ToLower(a)] = t
		}
	}
	return c, nil
}

func (c *Catalog) Tables() []*Table { return c.tables }

// Lookup przyjmuje nazwę fizyczną (shm_POHeader) albo logiczną (Order), bez rozróżniania wielkości liter.
func (c *Catalog) Lookup(name string) (*Table, bool) {
	t, ok := c.lookup[strings.ToLower(strings.TrimSpace(name))]
	return t, ok
}

func (t *Table) Column(name string) (Column, bool) {
	i, ok := t.byLower[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Column{}, false
	}
	return t.Columns[i], true
}

// Coerce zamienia tekst komórki z importu na wartość dla kolumny: pusta komórka to NULL,
// liczby parsowane wg typu kolumny. Tekst, który się nie parsuje, idzie dalej bez zmian
// i to baza decyduje, czy go przyjmie.
func (c Column) Coerce(raw string) any {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	switch c.Type {
	case schema.Float:
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			return v
		}
	case schema.Int, schema.Uint:
		if v, err := strconv.ParseInt(s, 10, 64); err == nil {
			return v
		}
		// "2.0" z arkusza eksportowanego przez Excela
		if v, err := strconv.ParseFloat(s, 64); err == nil && v == math.Trunc(v) {
			return int64(v)
		}
	case schema.Bool:
		if v, err := strconv.ParseBool(s); err == nil {
			return v
		}
	}
	return raw
}

func (t *Table) ColumnNames() []string {
	out := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		out[i] = c.Name
	}
	return out
}

// normalize sprowadza nazwy kolumn do kanonicznych i odrzuca nieznane.
func (t *Table) normalize(rec Record, requireKey bool) (Record, error) {
	keys := make([]string, 0, len(rec))
	for k := range rec {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var ve validation.Errors
	out := make(Record, len(rec))
	for _, k := range keys {
		c, ok := t.Column(k)
		if !ok {
			ve.Add(k, "unknown column in "+t.Name)
			continue
		}
		out[c.Name] = rec[k]
	}
	if requireKey {
		if v, ok := out[t.Key]; !ok || blank(v) {
			ve.Add(t.Key, "is required")
		}
	}
	if err := ve.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// complete uzupełnia brakujące kolumny domyślną wartością albo NULL (pełne zastąpienie wiersza).
func (t *Table) complete(rec Record) Record {
	out := make(Record, len(t.Columns))
	for _, c := range t.Columns {
		if v, ok := rec[c.Name]; ok {
			out[c.Name] = v
			continue
		}
		if c.AutoIncrement {
			continue
		}
		if c.HasDefault {
			out[c.Name] = c.Default
		} else {
			out[c.Name] = nil
		}
	}
	return out
}

func blank(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(x) == ""
	}
	return false
}
