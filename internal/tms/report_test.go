package tms_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bartek5186/sahamit-tms/internal/db"
	"github.com/bartek5186/sahamit-tms/internal/testutil"
	"github.com/bartek5186/sahamit-tms/internal/tms"
)

func TestBuildReport(t *testing.T) {
	orders := []db.Order{
		order("A", "s", "NF", "Done", "2025-01-05"),
		order("B", "s", "Foods", "Pending", "not a date"),
		order("C", "s", "NF", "Pending", "2025-01-09"),
		order("D", "s", "PCB", "Hold", "2025-01-07"),
	}
	orders[2].SlotBooking = 1
	orders[0].TotalQty = 10

	r := tms.BuildReport(orders)
	require.Equal(t, tms.Metrics{Total: 4, Done: 1, Pending: 2, SlotBooked: 1}, r.Metrics)
	require.Equal(t, []tms.DivisionCount{
		{Division: "Foods", Count: 1}, {Division: "NF", Count: 2}, {Division: "PCB", Count: 1},
	}, r.ByDivision)

	require.Len(t, r.Recent, 4)
	require.Equal(t, "C", r.Recent[0].Number)
	require.Equal(t, "D", r.Recent[1].Number)
	require.Equal(t, "A", r.Recent[2].Number)
	require.Equal(t, 10.0, r.Recent[2].TotalQty)
	require.Equal(t, "B", r.Recent[3].Number)
	require.Equal(t, "not a date", r.Recent[3].Date)
}

func TestBuildReportKeepsLast50(t *testing.T) {
	var orders []db.Order
	for i := 1; i <= 60; i++ {
		orders = append(orders, order(fmt.Sprintf("PO%02d", i), "s", "NF", "Done", fmt.Sprintf("2025-03-%02d", (i%28)+1)))
	}
	r := tms.BuildReport(orders)
	require.Len(t, r.Recent, 50)
	require.Equal(t, "2025-03-28", r.Recent[0].Date)
	require.Empty(t, tms.BuildReport(nil).Recent)
}

func TestRefreshKPI(t *testing.T) {
	svc, h := newService(t)
	ctx := context.Background()

	rows := []db.Order{
		order("1", "Acme", "NF", "Done", "2025-01-01"),
		order("2", "Acme", "NF", "Pending", "2025-01-01"),
		order("3", "Beta", "NF", "Done", "2025-01-01"),
		order("4", "Beta", "NF", "Done", "2025-01-01"),
	}
	rows[0].TransportName, rows[0].TransportCost = testutil.Str("KEL"), testutil.F64(1000)
	rows[1].TransportName, rows[1].TransportCost = testutil.Str("KEL"), testutil.F64(500)
	rows[2].TransportName = testutil.Str("SHM")
	for _, o := range rows {
		require.NoError(t, h.Upsert(ctx, "Order", o.Record()))
	}

	res, err := svc.RefreshKPI(ctx)
	require.NoError(t, err)
	require.Equal(t, tms.KPIResult{Transports: 2, Suppliers: 2}, res)

	transport, supplier := svc.KPIs(ctx)
	require.Equal(t, []tms.KPIValue{
		{Ref: "KEL", Name: "KEL", Value: 1500}, {Ref: "SHM", Name: "SHM", Value: 0},
	}, transport)
	require.Equal(t, []tms.KPIValue{
		{Ref: "Acme", Name: "Acme", Value: 50}, {Ref: "Beta", Name: "Beta", Value: 100},
	}, supplier)

	// ponowne przeliczenie nadpisuje wartości zamiast dokładać wierszy
	require.NoError(t, svc.SaveBooking(ctx, "x", tms.BookingForm{Number: "3", TransportName: "SHM", TruckType: "4W", TransportCost: 250}))
	_, err = svc.RefreshKPI(ctx)
	require.NoError(t, err)
	transport, _ = svc.KPIs(ctx)
	require.Len(t, transport, 2)
	require.Equal(t, 250.0, transport[1].Value)
}
