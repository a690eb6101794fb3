package dataio

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadCSVStripsBOMAndPadsRows(t *testing.T) {
	in := "\uFEFFshm_suppliercode, shm_name\nS100,Acme\nS101\n"

	tbl, err := ReadCSV(strings.NewReader(in), "")
	require.NoError(t, err)
	require.Equal(t, []string{"shm_suppliercode", "shm_name"}, tbl.Header)
	require.Equal(t, [][]string{{"S100", "Acme"}, {"S101", ""}}, tbl.Rows)
}

func TestReadCSVQuotedHeaderAfterBOM(t *testing.T) {
	in := "\uFEFF\"shm_dccode\",\"shm_name\"\n\"DC01\",\"Bang Na, DC 1\"\n"

	tbl, err := ReadCSV(strings.NewReader(in), "utf8")
	require.NoError(t, err)
	require.Equal(t, []string{"shm_dccode", "shm_name"}, tbl.Header)
	require.Equal(t, "Bang Na, DC 1", tbl.Rows[0][1])
}

func TestReadCSVWindows874(t *testing.T) {
	// 0xA1 w windows-874 to U+0E01 (ก)
	in := []byte("code,name\nS1,\xa1\n")

	tbl, err := ReadCSV(bytes.NewReader(in), "cp874")
	require.NoError(t, err)
	require.Equal(t, "ก", tbl.Rows[0][1])
}

func TestReadCSVErrors(t *testing.T) {
	_, err := ReadCSV(strings.NewReader(""), "")
	require.ErrorIs(t, err, ErrEmpty)

	_, err = ReadCSV(strings.NewReader("a,b\n1,2,3\n"), "")
	require.Error(t, err)

	_, err = ReadCSV(strings.NewReader("a\n1\n"), "klingon-8")
	require.Error(t, err)
}

func TestCSVRoundTrip(t *testing.T) {
	src := &Table{
		Header: []string{"shm_shmitem", "shm_name"},
		Rows:   [][]string{{"ITEM-100", "Product \"A\", big"}, {"ITEM-101", "สินค้า"}},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, src))

	got, err := ReadCSV(&buf, "")
	require.NoError(t, err)
	require.Equal(t, src, got)
}

func TestXLSXRoundTrip(t *testing.T) {
	src := &Table{
		Header: []string{"shm_ponumber", "shm_totalqty", "shm_trucktype", "shm_scmnote"},
		Rows: [][]string{
			{"PO2501-0001", "120", "6W", ""},
			{"PO2501-0002", "12.5", "0012", "ส่งด่วน"},
		},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, "shm_POHeader", src))

	got, err := ReadXLSX(&buf)
	require.NoError(t, err)
	require.Equal(t, src, got)
}

func TestFilesDispatchOnExtension(t *testing.T) {
	dir := t.TempDir()
	src := &Table{Header: []string{"k", "v"}, Rows: [][]string{{"1", "x"}}}

	for _, name := range []string{"out.csv", "out.XLSX"} {
		path := filepath.Join(dir, "nested", name)
		require.NoError(t, WriteFile(path, "Data", src))
		got, err := ReadFile(path, "")
		require.NoError(t, err)
		require.Equal(t, src, got, name)
	}

	require.Error(t, WriteFile(filepath.Join(dir, "out.json"), "Data", src))
	_, err := FormatOf("report.xls")
	require.Error(t, err)
}

func TestFormatValue(t *testing.T) {
	require.Equal(t, "", FormatValue(nil))
	require.Equal(t, "120", FormatValue(120.0))
	require.Equal(t, "0.5", FormatValue(0.5))
	require.Equal(t, "2", FormatValue(int64(2)))
	require.Equal(t, "abc", FormatValue([]byte("abc")))
}

func TestCellValue(t *testing.T) {
	require.Equal(t, 12.0, cellValue("12"))
	require.Equal(t, "0012", cellValue("0012"))
	require.Equal(t, "1e3", cellValue("1e3"))
	require.Equal(t, "PO-1", cellValue("PO-1"))
}
