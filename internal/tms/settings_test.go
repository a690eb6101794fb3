package tms_test

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bartek5186/sahamit-tms/internal/db"
	"github.com/bartek5186/sahamit-tms/internal/tms"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestImportCSVReplacesSupplierTable(t *testing.T) {
	svc, h := newService(t)
	ctx := context.Background()

	require.NoError(t, svc.SaveReference(ctx, tms.KindSupplier, "S001", "Old"))
	content := "shm_suppliercode,shm_name\nS100,Acme\nS101,Beta\n"
	path := writeFile(t, "suppliers.csv", content)

	res, err := svc.ImportFile(ctx, "anna", "Supplier", path)
	require.NoError(t, err)
	require.Equal(t, "shm_Supplier", res.Table)
	require.Equal(t, 2, res.Rows)
	sum := sha256.Sum256([]byte(content))
	require.Equal(t, hex.EncodeToString(sum[:]), res.SHA256)

	refs, err := svc.References(ctx, tms.KindSupplier)
	require.NoError(t, err)
	require.Equal(t, []tms.Reference{{Code: "S100", Name: "Acme"}, {Code: "S101", Name: "Beta"}}, refs)

	logs := svc.Imports(ctx)
	require.Len(t, logs, 1)
	require.Equal(t, "shm_Supplier", logs[0].Target)
	require.Equal(t, "suppliers.csv", logs[0].Filename)
	require.Equal(t, 2, logs[0].Rows)
	require.Equal(t, "anna", logs[0].ImportedBy)
	require.Equal(t, "2025-01-20T10:15:30", logs[0].ImportedAt)

	n, err := h.Count(ctx, "Supplier")
	require.NoError(t, err)
	require.EqualValues(t, 2, n)
}

func TestImportCoercesTypesAndNulls(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	path := writeFile(t, "po.csv",
		"shm_ponumber,shm_suppliername,shm_podivision,shm_deliverystatus,shm_podate,shm_requestdate,shm_deliverydate,shm_totalqty,shm_slotbooking,shm_truckqty\n"+
			"PO1,Acme,NF,Done,2025-01-01,2025-01-02,2025-01-03,150,1,\n")

	_, err := svc.ImportFile(ctx, "anna", "shm_poheader", path)
	require.NoError(t, err)

	o, ok, err := svc.Order(ctx, "PO1")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 150.0, o.TotalQty)
	require.True(t, o.Booked())
	require.Nil(t, o.TruckQty)
	require.Nil(t, o.TransportName)
}

func TestImportMissingNotNullRollsBack(t *testing.T) {
	svc, h := newService(t)
	ctx := context.Background()

	require.NoError(t, h.Upsert(ctx, "Order", order("KEEP", "Acme", "NF", "Done", "2025-01-03").Record()))
	path := writeFile(t, "po.csv", "shm_ponumber,shm_totalqty\nPO1,5\n")

	_, err := svc.ImportFile(ctx, "anna", "Order", path)
	require.Error(t, err)
	require.True(t, db.IsConstraintViolation(err), err.Error())

	orders := svc.Orders(ctx)
	require.Len(t, orders, 1)
	require.Equal(t, "KEEP", orders[0].Number)
	require.Empty(t, svc.Imports(ctx))
}

func TestImportRejectsUnknownColumnAndTable(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	path := writeFile(t, "dc.csv", "shm_dccode,colour\nDC01,red\n")
	_, err := svc.ImportFile(ctx, "anna", "DC", path)
	require.True(t, db.IsValidation(err))

	_, err = svc.ImportFile(ctx, "anna", "LoginLog", path)
	require.True(t, db.IsValidation(err))

	_, err = svc.ImportFile(ctx, "anna", "DC", writeFile(t, "dc.txt", "x"))
	require.Error(t, err)
}

func TestExportThenImportXLSX(t *testing.T) {
	svc, h := newService(t)
	ctx := context.Background()

	o := order("PO1", "บริษัท เอ", "Import-NF", "MOQ", "2025-01-03")
	o.TotalQty = 42.5
	require.NoError(t, h.Upsert(ctx, "Order", o.Record()))
	require.NoError(t, svc.SaveBooking(ctx, "ben", tms.BookingForm{
		Number: "PO1", TransportName: "TDM", TruckType: "18W", DeliveryDate: "2025-01-03", TruckNo: "T-1", Note: "ok",
	}))
	before := svc.Orders(ctx)

	path := filepath.Join(t.TempDir(), "orders.xlsx")
	n, err := svc.ExportTable(ctx, "Order", path)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	_, err = h.Replace(ctx, "Order", nil)
	require.NoError(t, err)

	res, err := svc.ImportFile(ctx, "anna", "Order", path)
	require.NoError(t, err)
	require.Equal(t, 1, res.Rows)
	require.Equal(t, before, svc.Orders(ctx))
}

func TestExportCSVEmptyTable(t *testing.T) {
	svc, _ := newService(t)
	path := filepath.Join(t.TempDir(), "users.csv")

	n, err := svc.ExportTable(context.Background(), "User", path)
	require.NoError(t, err)
	require.Zero(t, n)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "shm_username,shm_fullname,shm_userclass\n", string(data))

	_, err = svc.ExportTable(context.Background(), "Nope", path)
	require.ErrorIs(t, err, db.ErrUnknownTable)
}

func TestUsersAndSession(t *testing.T) {
	svc, h := newService(t)
	ctx := context.Background()

	require.NoError(t, h.PatchUpsert(ctx, "User", "user@example.com", db.Record{"shm_fullname": "Demo User"}))
	users := svc.Users(ctx)
	require.Len(t, users, 1)
	require.Equal(t, 2, users[0].Class)

	require.NoError(t, svc.RecordSession(ctx, "anna"))
	var logins []db.LoginLog
	h.ReadAllInto(ctx, "LoginLog", &logins)
	require.Len(t, logins, 1)
	require.Equal(t, "anna", *logins[0].User)
	require.Equal(t, "2025-01-20", *logins[0].LogDate)
	require.Equal(t, "10:15:30", *logins[0].LogTime)
}
