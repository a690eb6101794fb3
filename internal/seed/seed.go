package seed

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/bartek5186/sahamit-tms/internal/db"
	"github.com/bartek5186/sahamit-tms/internal/validation"
)

const (
	orderCount = 50
	batchSize  = 100
	seedActor  = "demo_seed"
)

var (
	statuses   = []string{"Pending", "Done", "Hold"}
	transports = []string{"Supplier", "SHM", "KEL", "TDM"}
	trucks     = []string{"4W", "6W", "10W"}
)

// Result opisuje jedno wywołanie seedera.
type Result struct {
	Skipped   bool // tabela zamówień nie była pusta
	Orders    int
	Lines     int
	Suppliers int
	DCs       int
	Products  int
	Users     int
}

// Seeder wypełnia pustą bazę losowymi danymi demonstracyjnymi.
type Seeder struct {
	h   *db.Handle
	log zerolog.Logger
	rnd *rand.Rand
	now func() time.Time
}

func New(h *db.Handle, log zerolog.Logger) *Seeder {
	return &Seeder{
		h:   h,
		log: log,
		rnd: rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x5eed)),
		now: time.Now,
	}
}

// WithRand podmienia źródło losowości (testy).
func (s *Seeder) WithRand(r *rand.Rand) *Seeder {
	s.rnd = r
	return s
}

func (s *Seeder) WithClock(now func() time.Time) *Seeder {
	s.now = now
	return s
}

// Run seeduje tylko gdy shm_POHeader jest pusta. Sprawdzenie i wszystkie inserty idą w jednej transakcji,
// więc przerwany seed nie zostawia połowy danych.
func (s *Seeder) Run(ctx context.Context) (Result, error) {
	var res Result

	err := s.h.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&db.Order{}).Count(&n).Error; err != nil {
			return fmt.Errorf("count orders: %w", err)
		}
		if n > 0 {
			res.Skipped = true
			return nil
		}

		orders, lines := s.orders()
		if err := tx.CreateInBatches(&orders, batchSize).Error; err != nil {
			return fmt.Errorf("insert orders: %w", err)
		}
		if err := tx.CreateInBatches(&lines, batchSize).Error; err != nil {
			return fmt.Errorf("insert lines: %w", err)
		}
		res.Orders, res.Lines = len(orders), len(lines)

		// dane referencyjne nie nadpisują tego, co operator już wprowadził
		keep := clause.OnConflict{DoNothing: true}
		suppliers, dcs, products, users := references()
		for _, batch := range []any{&suppliers, &dcs, &products, &users} {
			if err := tx.Clauses(keep).Create(batch).Error; err != nil {
				return fmt.Errorf("insert reference data: %w", err)
			}
		}
		res.Suppliers, res.DCs, res.Products, res.Users = len(suppliers), len(dcs), len(products), len(users)
		return nil
	})
	if err != nil {
		s.log.Error().Err(err).Msg("seed danych demo nieudany")
		return Result{}, err
	}

	if res.Skipped {
		s.log.Debug().Msg("shm_POHeader nie jest pusta, pomijam seed")
	} else {
		s.log.Info().Int("orders", res.Orders).Int("lines", res.Lines).Msg("zaseedowano dane demo")
	}
	return res, nil
}

func (s *Seeder) orders() ([]db.Order, []db.OrderLine) {
	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	recordedAt := now.UTC().Format(validation.TimestampLayout)
	prefix := "PO" + today.Format("0601")

	orders := make([]db.Order, 0, orderCount)
	lines := make([]db.OrderLine, 0, orderCount*3)
	for i := 1; i <= orderCount; i++ {
		poDate := today.AddDate(0, 0, -s.between(0, 20))
		reqDate := poDate.AddDate(0, 0, s.between(0, 7))
		delDate := reqDate.AddDate(0, 0, s.between(0, 10))

		o := db.Order{
			Number:        fmt.Sprintf("%s-%04d", prefix, i),
			SupplierName:  fmt.Sprintf("Supplier %d", s.between(1, 8)),
			Division:      s.pick(validation.Divisions),
			Status:        s.pick(statuses),
			OrderDate:     poDate.Format(validation.DateLayout),
			RequestDate:   reqDate.Format(validation.DateLayout),
			DeliveryDate:  delDate.Format(validation.DateLayout),
			TotalQty:      float64(s.between(50, 800)),
			TransportName: ptr(s.pick(transports)),
			TruckType:     ptr(s.pick(trucks)),
			SlotBooking:   s.between(0, 1),
			TransportCost: ptr(float64(s.between(1000, 12000))),
			RecordedAt:    ptr(recordedAt),
			RecordedBy:    ptr(seedActor),
		}
		orders = append(orders, o)

		n := s.between(1, 5)
		for j := 1; j <= n; j++ {
			lines = append(lines, db.OrderLine{
				Index:       fmt.Sprintf("%s-%d", o.Number, j),
				OrderNumber: o.Number,
				Item:        ptr(fmt.Sprintf("ITEM-%d", s.between(100, 999))),
				Qty:         float64(s.between(1, 50)),
				UOM:         ptr("PCS"),
				Remark:      ptr(""),
			})
		}
	}
	return orders, lines
}

func references() ([]db.Supplier, []db.DistributionCenter, []db.Product, []db.User) {
	suppliers := make([]db.Supplier, 0, 8)
	for n := 1; n <= 8; n++ {
		suppliers = append(suppliers, db.Supplier{Code: fmt.Sprintf("S%03d", n), Name: ptr(fmt.Sprintf("Supplier %d", n))})
	}
	dcs := make([]db.DistributionCenter, 0, 5)
	for n := 1; n <= 5; n++ {
		dcs = append(dcs, db.DistributionCenter{Code: fmt.Sprintf("DC%02d", n), Name: ptr(fmt.Sprintf("DC %d", n))})
	}
	products := make([]db.Product, 0, 30)
	for n := 100; n < 130; n++ {
		products = append(products, db.Product{Item: fmt.Sprintf("ITEM-%d", n), Name: ptr(fmt.Sprintf("Product %d", n))})
	}
	users := []db.User{{Username: "user@example.com", FullName: ptr("Demo User"), Class: 2}}
	return suppliers, dcs, products, users
}

// between losuje liczbę z przedziału domkniętego [lo, hi]
func (s *Seeder) between(lo, hi int) int {
	return lo + s.rnd.IntN(hi-lo+1)
}

func (s *Seeder) pick(from []string) string {
	return from[s.rnd.IntN(len(from))]
}

func ptr[T any](v T) *T { return &v }
