package dataio

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

type Format string

const (
	CSV  Format = "csv"
	XLSX Format = "xlsx"
)

// FormatOf rozpoznaje format po rozszerzeniu pliku.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return CSV, nil
	case ".xlsx":
		return XLSX, nil
	default:
		return "", fmt.Errorf("nieobsługiwany format pliku %q (csv albo xlsx)", filepath.Base(path))
	}
}

// Read: encoding dotyczy tylko CSV, xlsx zawsze jest w UTF-8.
func Read(r io.Reader, format Format, encoding string) (*Table, error) {
	switch format {
	case CSV:
		return ReadCSV(r, encoding)
	case XLSX:
		return ReadXLSX(r)
	default:
		return nil, fmt.Errorf("nieobsługiwany format %q", format)
	}
}

func ReadFile(path, encoding string) (*Table, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f, format, encoding)
}

// WriteFile tworzy (albo nadpisuje) plik; sheetName używany tylko dla xlsx.
func WriteFile(path, sheetName string, t *Table) (err error) {
	format, err := FormatOf(path)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	if format == XLSX {
		return WriteXLSX(f, sheetName, t)
	}
	return WriteCSV(f, t)
}
