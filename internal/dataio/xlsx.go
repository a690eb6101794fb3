package dataio

import (
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"
)

const colWidth = 18

// ReadXLSX czyta pierwszy arkusz skoroszytu; pierwszy wiersz to nagłówek.
func ReadXLSX(r io.Reader) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmpty
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("xlsx %s: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, ErrEmpty
	}

	t := &Table{Header: trimAll(rows[0])}
	for _, r := range rows[1:] {
		// excelize pomija puste wiersze na końcu, ale nie w środku
		if len(r) == 0 {
			continue
		}
		if err := t.addRow(r); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// WriteXLSX zapisuje tabelę do jednego arkusza z pogrubionym, szarym nagłówkiem.
// Komórki w kanonicznej postaci liczbowej trafiają do arkusza jako liczby.
func WriteXLSX(w io.Writer, sheetName string, t *Table) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#D3D3D3"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}

	for i, header := range t.Header {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheetName, cell, cell, headerStyle); err != nil {
			return err
		}
	}

	for rowIdx, row := range t.Rows {
		for colIdx, value := range row {
			if value == "" {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheetName, cell, cellValue(value)); err != nil {
				return err
			}
		}
	}

	if n := len(t.Header); n > 0 {
		last, _ := excelize.ColumnNumberToName(n)
		if err := f.SetColWidth(sheetName, "A", last, colWidth); err != nil {
			return err
		}
	}

	if sheetName != "Sheet1" {
		if err := f.DeleteSheet("Sheet1"); err != nil {
			return err
		}
	}
	return f.Write(w)
}

// cellValue: "12" i "12.5" jako liczby, "0012" czy "1e3" zostają tekstem
func cellValue(s string) any {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || strconv.FormatFloat(v, 'f', -1, 64) != s {
		return s
	}
	return v
}
