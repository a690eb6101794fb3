package console

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLine(t *testing.T) {
	a, err := parseLine(`  ORDER po=PO1 supplier="Acme Foods" note='a=b c' Extra "x=y"  `)
	require.NoError(t, err)
	require.Equal(t, "order", a.cmd)
	require.Equal(t, map[string]string{"po": "PO1", "supplier": "Acme Foods", "note": "a=b c"}, a.kv)
	require.Equal(t, []string{"Extra", "x=y"}, a.pos)
}

func TestParseLineThaiAndEmpty(t *testing.T) {
	a, err := parseLine(`book po=PO1 transport="ว.ศรีประเสริฐ" truck=6W`)
	require.NoError(t, err)
	require.Equal(t, "ว.ศรีประเสริฐ", a.kv["transport"])

	a, err = parseLine("   ")
	require.NoError(t, err)
	require.Empty(t, a.cmd)

	a, err = parseLine(`master dc name=""`)
	require.NoError(t, err)
	v, ok := a.kv["name"]
	require.True(t, ok)
	require.Empty(t, v)
}

func TestParseLineUnterminatedQuote(t *testing.T) {
	_, err := parseLine(`order supplier="Acme`)
	require.ErrorIs(t, err, errUnterminatedQuote)
}

func TestArgsFloat(t *testing.T) {
	a, err := parseLine("order qty=12,5 cost=abc")
	require.NoError(t, err)

	v, err := a.float("qty")
	require.NoError(t, err)
	require.Equal(t, 12.5, v)

	v, err = a.float("missing")
	require.NoError(t, err)
	require.Zero(t, v)

	_, err = a.float("cost")
	require.EqualError(t, err, "cost: must be a number")
}
