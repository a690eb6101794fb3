package tms_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bartek5186/sahamit-tms/internal/db"
	"github.com/bartek5186/sahamit-tms/internal/tms"
)

func TestSaveBookingPatchesOnlyBookingFields(t *testing.T) {
	svc, h := newService(t)
	ctx := context.Background()

	require.NoError(t, h.Upsert(ctx, "Order", order("PO1", "Acme", "PCB", "Hold", "2025-01-03").Record()))

	require.NoError(t, svc.SaveBooking(ctx, "ben", tms.BookingForm{
		Number: "PO1", TransportName: "บราโว่", TruckType: "10W", DeliveryDate: "2025-01-25",
		TruckNo: "  70-5555 ", TruckQty: 1, TransportCost: 9000, Note: "ramp 3",
	}))

	o, ok, err := svc.Order(ctx, "PO1")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "Hold", o.Status)
	require.Equal(t, "Acme", o.SupplierName)
	require.Equal(t, "2025-01-25", o.DeliveryDate)
	require.True(t, o.Booked())
	require.Equal(t, "บราโว่", *o.TransportName)
	require.Equal(t, "70-5555", *o.TruckNo)
	require.Equal(t, "ramp 3", *o.Note)
	require.Equal(t, "ben", *o.RecordedBy)
	require.Equal(t, "2025-01-20T10:15:30", *o.RecordedAt)
}

func TestSaveBookingDefaultsDeliveryToToday(t *testing.T) {
	svc, h := newService(t)
	ctx := context.Background()

	require.NoError(t, h.Upsert(ctx, "Order", order("PO1", "Acme", "PCB", "Hold", "2025-01-03").Record()))
	require.NoError(t, svc.SaveBooking(ctx, "ben", tms.BookingForm{Number: "PO1", TransportName: "KEL", TruckType: "4W"}))

	o, _, err := svc.Order(ctx, "PO1")
	require.NoError(t, err)
	require.Equal(t, "2025-01-20", o.DeliveryDate)
}

func TestSaveBookingValidation(t *testing.T) {
	svc, _ := newService(t)

	err := svc.SaveBooking(context.Background(), "ben", tms.BookingForm{
		Number: "PO1", TransportName: "DHL", TruckType: "2W", DeliveryDate: "soon", TransportCost: -1,
	})
	require.True(t, db.IsValidation(err))
	require.Contains(t, err.Error(), "transport:")
	require.Contains(t, err.Error(), "truck:")
	require.Contains(t, err.Error(), "delivery:")
	require.Contains(t, err.Error(), "cost:")
}

func TestSaveBookingForUnknownOrderIsConstraintViolation(t *testing.T) {
	svc, h := newService(t)
	ctx := context.Background()

	err := svc.SaveBooking(ctx, "ben", tms.BookingForm{Number: "PO-GHOST", TransportName: "KEL", TruckType: "4W"})
	require.Error(t, err)
	require.True(t, db.IsConstraintViolation(err), err.Error())

	n, err := h.Count(ctx, "Order")
	require.NoError(t, err)
	require.Zero(t, n)
}
