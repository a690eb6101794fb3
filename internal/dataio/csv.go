package dataio

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html/charset"
)

const utf8BOM = "\uFEFF"

// ReadCSV czyta CSV z nagłówkiem. Pusty encoding oznacza autodetekcję (BOM, poprawność UTF-8),
// w przeciwnym razie etykieta charsetu, np. "windows-874" dla plików z tajskiego Excela.
func ReadCSV(r io.Reader, encoding string) (*Table, error) {
	dec, err := decoder(r, encoding)
	if err != nil {
		return nil, err
	}

	br := bufio.NewReader(dec)
	if bom, _ := br.Peek(len(utf8BOM)); string(bom) == utf8BOM {
		_, _ = br.Discard(len(utf8BOM))
	}

	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("csv header: %w", err)
	}
	t := &Table{Header: trimAll(header)}

	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv: %w", err)
		}
		if err := t.addRow(rec); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func WriteCSV(w io.Writer, t *Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Header); err != nil {
		return err
	}
	if err := cw.WriteAll(t.Rows); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

func decoder(r io.Reader, encoding string) (io.Reader, error) {
	label := normalizeCharset(encoding)
	if label == "" {
		br := bufio.NewReader(r)
		// charset.NewReader zagląda do pierwszych 1024 bajtów: BOM, potem poprawność UTF-8
		peek, _ := br.Peek(1024)
		enc, name, _ := charset.DetermineEncoding(peek, "text/csv")
		if name == "utf-8" {
			return br, nil
		}
		return enc.NewDecoder().Reader(br), nil
	}
	dec, err := charset.NewReaderLabel(label, r)
	if err != nil {
		return nil, fmt.Errorf("nieznane kodowanie %q: %w", encoding, err)
	}
	return dec, nil
}

// normalizeCharset mapuje nietypowe etykiety na nazwy rozpoznawane przez charset.NewReaderLabel
func normalizeCharset(cs string) string {
	c := strings.TrimSpace(strings.ToLower(cs))
	switch c {
	case "utf8":
		return "utf-8"
	case "cp874", "windows874", "win-874", "tis620", "tis-620", "thai":
		return "windows-874"
	case "latin ii", "latin-2", "latin2", "iso8859-2", "iso_8859-2":
		return "iso-8859-2"
	case "cp1250", "windows1250", "win-1250":
		return "windows-1250"
	default:
		return c
	}
}
