package dataio

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var ErrEmpty = errors.New("plik nie zawiera nagłówka")

// Table to arkusz w postaci tekstowej: nagłówek + wiersze o tej samej długości.
type Table struct {
	Header []string
	Rows   [][]string
}

// addRow dopełnia krótsze wiersze pustymi komórkami; dłuższe niż nagłówek to błąd.
func (t *Table) addRow(cells []string) error {
	if len(cells) > len(t.Header) {
		return fmt.Errorf("wiersz %d: %d komórek, nagłówek ma %d", len(t.Rows)+2, len(cells), len(t.Header))
	}
	row := make([]string, len(t.Header))
	copy(row, cells)
	t.Rows = append(t.Rows, row)
	return nil
}

func trimAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.TrimSpace(s)
	}
	return out
}

// FormatValue zamienia wartość z bazy na tekst komórki. NULL to pusta komórka.
func FormatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []byte:
		return string(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case int64:
		return strconv.FormatInt(x, 10)
	case int:
		return strconv.Itoa(x)
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case uint64:
		return strconv.FormatUint(x, 10)
	case bool:
		if x {
			return "1"
		}
		return "0"
	case time.Time:
		return x.Format(time.RFC3339)
	default:
		return fmt.Sprint(x)
	}
}
