package db_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	conf "github.com/bartek5186/sahamit-tms/internal/config"
	"github.com/bartek5186/sahamit-tms/internal/db"
	"github.com/bartek5186/sahamit-tms/internal/testutil"
)

func TestMigrateIsIdempotentAndKeepsData(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	h, err := db.OpenAt(dir, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, h.Migrate(ctx))
	require.NoError(t, h.PatchUpsert(ctx, "Product", "ITEM-1", db.Record{"shm_name": "Widget"}))
	require.NoError(t, h.Close())

	h, err = db.OpenAt(dir, zerolog.Nop())
	require.NoError(t, err)
	defer h.Close()
	require.NoError(t, h.Migrate(ctx))
	require.NoError(t, h.Migrate(ctx))

	for _, tbl := range h.Catalog.Tables() {
		require.True(t, h.DB.Migrator().HasTable(tbl.Name), tbl.Name)
	}
	rows := h.ReadAll(ctx, "Product")
	require.Len(t, rows, 1)
	require.Equal(t, "Widget", rows[0]["shm_name"])
}

func TestCatalogDescribesOrderTable(t *testing.T) {
	cat, err := db.NewCatalog()
	require.NoError(t, err)

	order, ok := cat.Lookup("order")
	require.True(t, ok)
	physical, ok := cat.Lookup("SHM_POHEADER")
	require.True(t, ok)
	require.Same(t, order, physical)

	require.Equal(t, "shm_POHeader", order.Name)
	require.Equal(t, "shm_ponumber", order.Key)
	require.Len(t, order.Columns, 17)

	supplier, ok := order.Column("SHM_SupplierName")
	require.True(t, ok)
	require.True(t, supplier.NotNull)
	require.False(t, supplier.HasDefault)

	slot, ok := order.Column("shm_slotbooking")
	require.True(t, ok)
	require.True(t, slot.HasDefault)
	require.EqualValues(t, 0, slot.Default)

	user, ok := cat.Lookup("User")
	require.True(t, ok)
	class, _ := user.Column("shm_userclass")
	require.EqualValues(t, 2, class.Default)

	dc, ok := cat.Lookup("DC")
	require.True(t, ok)
	require.Equal(t, "shm_DC", dc.Name)

	_, ok = cat.Lookup("Orders")
	require.False(t, ok)
}

func TestOpenUnknownDriver(t *testing.T) {
	_, err := db.Open(conf.DatabaseConfig{Driver: "oracle"}, t.TempDir(), zerolog.Nop())
	require.Error(t, err)
}

func TestOpenServerDriverRequiresDSN(t *testing.T) {
	_, err := db.Open(conf.DatabaseConfig{Driver: conf.DriverPostgres}, t.TempDir(), zerolog.Nop())
	require.ErrorContains(t, err, "database.dsn")
}

func TestIsConstraintViolationNil(t *testing.T) {
	require.False(t, db.IsConstraintViolation(nil))
	h := testutil.SetupTestDB(t)
	require.False(t, db.IsConstraintViolation(h.Upsert(context.Background(), "Supplier", db.Record{"shm_suppliercode": "S1"})))
}

func TestColumnCoerce(t *testing.T) {
	cat, err := db.NewCatalog()
	require.NoError(t, err)
	order, _ := cat.Lookup("Order")
	user, _ := cat.Lookup("User")

	qty, _ := order.Column("shm_totalqty")
	slot, _ := order.Column("shm_slotbooking")
	supplier, _ := order.Column("shm_suppliername")
	class, _ := user.Column("shm_userclass")

	require.Nil(t, qty.Coerce("  "))
	require.Nil(t, supplier.Coerce(""))
	require.Equal(t, 12.5, qty.Coerce("12.5"))
	require.Equal(t, "n/a", qty.Coerce("n/a"))
	require.Equal(t, int64(1), slot.Coerce("1"))
	require.Equal(t, int64(2), class.Coerce("2.0"))
	require.Equal(t, " Acme ", supplier.Coerce(" Acme "))
}
